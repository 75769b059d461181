package partner

import (
	"context"

	"github.com/distribops/backend/internal/domain/identity"
	"github.com/distribops/backend/internal/domain/partner"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// RetailerService manages the retailer register
type RetailerService struct {
	retailerRepo partner.RetailerRepository
}

// NewRetailerService creates a new RetailerService
func NewRetailerService(retailerRepo partner.RetailerRepository) *RetailerService {
	return &RetailerService{retailerRepo: retailerRepo}
}

// Create registers a retailer. Sales reps register outlets on their beat;
// admins can too.
func (s *RetailerService) Create(ctx context.Context, actor identity.Actor, req CreateRetailerRequest) (*RetailerResponse, error) {
	if !actor.IsAdmin() && !actor.IsSalesRep() {
		return nil, shared.ErrForbidden
	}

	retailer, err := partner.NewRetailer(req.Name, req.Address, req.Phone, req.GSTIN)
	if err != nil {
		return nil, err
	}
	if err := s.retailerRepo.Save(ctx, retailer); err != nil {
		return nil, err
	}

	response := ToRetailerResponse(retailer)
	return &response, nil
}

// Update applies a partial update to a retailer. Admin only; edits never
// touch invoices already issued with the old snapshot.
func (s *RetailerService) Update(ctx context.Context, actor identity.Actor, retailerID uuid.UUID, req UpdateRetailerRequest) (*RetailerResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	retailer, err := s.retailerRepo.FindByID(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := retailer.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Address != nil || req.Phone != nil {
		address := retailer.Address
		phone := retailer.Phone
		if req.Address != nil {
			address = *req.Address
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		retailer.UpdateContact(address, phone)
	}
	if req.GSTIN != nil {
		if err := retailer.UpdateGSTIN(*req.GSTIN); err != nil {
			return nil, err
		}
	}
	if req.Active != nil {
		if *req.Active {
			retailer.Activate()
		} else {
			retailer.Deactivate()
		}
	}

	if err := s.retailerRepo.Save(ctx, retailer); err != nil {
		return nil, err
	}

	response := ToRetailerResponse(retailer)
	return &response, nil
}

// GetByID retrieves a retailer
func (s *RetailerService) GetByID(ctx context.Context, retailerID uuid.UUID) (*RetailerResponse, error) {
	retailer, err := s.retailerRepo.FindByID(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	response := ToRetailerResponse(retailer)
	return &response, nil
}

// List retrieves retailers with pagination
func (s *RetailerService) List(ctx context.Context, filter RetailerListFilter) ([]RetailerResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.Search = filter.Search

	retailers, err := s.retailerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.retailerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToRetailerResponses(retailers), total, nil
}
