package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distribops/backend/internal/domain/identity"
	"github.com/distribops/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:          "test-secret-key-at-least-32-characters",
		TokenExpiration: expiration,
		Issuer:          "distribops-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := newTestService(time.Hour)
	actor := identity.NewActor(uuid.New(), identity.RoleSalesRep)

	issued, err := service.GenerateToken(actor, "Ravi Kumar")
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.Equal(t, "Bearer", issued.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 5*time.Second)

	claims, err := service.ValidateToken(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, actor.ID.String(), claims.UserID)
	assert.Equal(t, "SALES_REP", claims.Role)
	assert.Equal(t, "Ravi Kumar", claims.Name)
	assert.Equal(t, "distribops-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	parsed, err := claims.Actor()
	require.NoError(t, err)
	assert.Equal(t, actor, parsed)
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	service := newTestService(-time.Minute)
	actor := identity.NewActor(uuid.New(), identity.RoleDriver)

	issued, err := service.GenerateToken(actor, "")
	require.NoError(t, err)

	_, err = service.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	service := newTestService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:          "a-completely-different-signing-secret!!",
		TokenExpiration: time.Hour,
		Issuer:          "distribops-test",
	})
	actor := identity.NewActor(uuid.New(), identity.RoleAdmin)

	issued, err := service.GenerateToken(actor, "")
	require.NoError(t, err)

	_, err = other.ValidateToken(issued.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateToken_Garbage(t *testing.T) {
	service := newTestService(time.Hour)

	_, err := service.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RoleRoundTrip(t *testing.T) {
	service := newTestService(time.Hour)

	roles := []identity.Role{
		identity.RoleAdmin,
		identity.RoleSalesRep,
		identity.RoleDriver,
		identity.RoleCollectionAgent,
	}

	for _, role := range roles {
		t.Run(role.String(), func(t *testing.T) {
			issued, err := service.GenerateToken(identity.NewActor(uuid.New(), role), "")
			require.NoError(t, err)

			claims, err := service.ValidateToken(issued.Token)
			require.NoError(t, err)

			actor, err := claims.Actor()
			require.NoError(t, err)
			assert.Equal(t, role, actor.Role)
		})
	}
}

func TestClaims_GetRemainingTTL(t *testing.T) {
	service := newTestService(30 * time.Minute)
	actor := identity.NewActor(uuid.New(), identity.RoleCollectionAgent)

	issued, err := service.GenerateToken(actor, "")
	require.NoError(t, err)

	claims, err := service.ValidateToken(issued.Token)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 29*time.Minute)
	assert.LessOrEqual(t, ttl, 30*time.Minute)
}

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	blacklist := NewInMemoryTokenBlacklist()

	revoked, err := blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = blacklist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestInMemoryTokenBlacklist_ExpiredEntryIsDropped(t *testing.T) {
	ctx := context.Background()
	blacklist := NewInMemoryTokenBlacklist()

	require.NoError(t, blacklist.Revoke(ctx, "jti-old", time.Nanosecond))
	time.Sleep(5 * time.Millisecond)

	revoked, err := blacklist.IsRevoked(ctx, "jti-old")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestInMemoryTokenBlacklist_NonPositiveTTLIsNoop(t *testing.T) {
	ctx := context.Background()
	blacklist := NewInMemoryTokenBlacklist()

	require.NoError(t, blacklist.Revoke(ctx, "jti-expired", 0))

	revoked, err := blacklist.IsRevoked(ctx, "jti-expired")
	require.NoError(t, err)
	assert.False(t, revoked)
}
