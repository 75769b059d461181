package identity

import (
	"github.com/google/uuid"
)

// Role is the authorization role carried by an actor.
// Role checks happen at the transport boundary; core operations receive
// an already-authorized Actor value and only consult it where the order
// lifecycle requires it (driver auto-assignment, read scoping).
type Role string

const (
	RoleAdmin           Role = "ADMIN"
	RoleSalesRep        Role = "SALES_REP"
	RoleDriver          Role = "DRIVER"
	RoleCollectionAgent Role = "COLLECTION_AGENT"
)

// IsValid checks if the role is a known Role
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSalesRep, RoleDriver, RoleCollectionAgent:
		return true
	}
	return false
}

// String returns the string representation of Role
func (r Role) String() string {
	return string(r)
}

// Actor is the authorized identity performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// NewActor creates an actor value
func NewActor(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

// IsAdmin returns true for admin actors
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// IsDriver returns true for driver actors
func (a Actor) IsDriver() bool {
	return a.Role == RoleDriver
}

// IsSalesRep returns true for sales rep actors
func (a Actor) IsSalesRep() bool {
	return a.Role == RoleSalesRep
}

// IsCollectionAgent returns true for collection agent actors
func (a Actor) IsCollectionAgent() bool {
	return a.Role == RoleCollectionAgent
}
