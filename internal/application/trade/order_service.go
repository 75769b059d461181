package trade

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/distribops/backend/internal/domain/billing"
	"github.com/distribops/backend/internal/domain/catalog"
	"github.com/distribops/backend/internal/domain/identity"
	"github.com/distribops/backend/internal/domain/partner"
	"github.com/distribops/backend/internal/domain/shared"
	"github.com/distribops/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// OrderService handles the distributor order lifecycle: creation by sales
// reps, admin review with stock deduction and invoice generation, dispatch
// behind the cash-payment gate, and delivery confirmation.
type OrderService struct {
	txScope        TransactionScope
	orderRepo      trade.OrderRepository
	productRepo    catalog.ProductRepository
	retailerRepo   partner.RetailerRepository
	eventPublisher shared.EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(
	txScope TransactionScope,
	orderRepo trade.OrderRepository,
	productRepo catalog.ProductRepository,
	retailerRepo partner.RetailerRepository,
) *OrderService {
	return &OrderService{
		txScope:      txScope,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		retailerRepo: retailerRepo,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create places a new order in REQUESTED status. Product name, price and GST
// rate are snapshotted from the catalog at this moment; the acting sales rep
// becomes the order's owner.
func (s *OrderService) Create(ctx context.Context, actor identity.Actor, req CreateOrderRequest) (*OrderResponse, error) {
	if !actor.IsSalesRep() && !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	retailer, err := s.retailerRepo.FindByID(ctx, req.RetailerID)
	if err != nil {
		return nil, err
	}
	if !retailer.Active {
		return nil, shared.NewDomainError("RETAILER_INACTIVE", "Cannot place orders for an inactive retailer")
	}

	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	snapshots := make([]trade.ItemSnapshot, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND",
				fmt.Sprintf("Product %s not found", item.ProductID))
		}
		if !product.Active {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE",
				fmt.Sprintf("Product %s is not active", product.Name))
		}
		snapshots = append(snapshots, trade.ItemSnapshot{
			ProductID:     product.ID,
			ProductName:   product.Name,
			Quantity:      item.Quantity,
			UnitPrice:     product.GetUnitPriceMoney(),
			GSTPercentage: product.GSTPercentage,
		})
	}

	orderNumber, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	gps := trade.GPSCoordinate{Latitude: req.Latitude, Longitude: req.Longitude}
	order, err := trade.NewOrder(orderNumber, retailer.ID, retailer.Name, actor.ID,
		trade.PaymentMode(req.PaymentMode), gps, snapshots)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// UpdateStatus runs the order state machine for the given target status.
// Approval, dispatch and delivery each execute inside one transaction so
// stock, invoice and delivery records move together with the order.
func (s *OrderService) UpdateStatus(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req UpdateOrderStatusRequest) (*OrderResponse, error) {
	target := trade.OrderStatus(req.Status)
	if !target.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %q", req.Status))
	}

	switch target {
	case trade.OrderStatusApproved:
		return s.approve(ctx, actor, orderID)
	case trade.OrderStatusRejected:
		return s.reject(ctx, actor, orderID, req.Reason)
	case trade.OrderStatusDispatched:
		return s.dispatch(ctx, actor, orderID)
	case trade.OrderStatusDelivered:
		return s.deliver(ctx, actor, orderID)
	default:
		return nil, shared.NewDomainError("INVALID_TRANSITION",
			fmt.Sprintf("Cannot transition an order to %s directly", target))
	}
}

// approve locks and decrements stock for every line, transitions the order
// and generates the invoice, all in one transaction. Any insufficient line
// rolls the whole set back. Re-approval fails the transition before any
// stock is touched, so an order can never produce two invoices.
func (s *OrderService) approve(ctx context.Context, actor identity.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	retailerSnap := partner.Snapshot{}
	var order *trade.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.Approve(); err != nil {
			return err
		}

		// Lock stock rows in a stable order to avoid deadlocks between
		// concurrent approvals touching overlapping products.
		items := make([]trade.OrderItem, len(order.Items))
		copy(items, order.Items)
		sort.Slice(items, func(i, j int) bool {
			return items[i].ProductID.String() < items[j].ProductID.String()
		})

		for _, item := range items {
			stock, err := repos.StockRepo().FindByProductIDForUpdate(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if err := stock.DecrementStock(item.Quantity); err != nil {
				return err
			}
			if err := repos.StockRepo().Save(ctx, stock); err != nil {
				return err
			}
		}

		if err := repos.OrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}

		retailer, err := s.retailerRepo.FindByID(ctx, order.RetailerID)
		if err != nil {
			return err
		}
		retailerSnap = retailer.Snapshot()

		invoiceNumber := fmt.Sprintf("INV-%s-%d", order.OrderNumber, time.Now().Unix())
		invoice, err := billing.GenerateFromOrder(invoiceNumber, order, retailerSnap)
		if err != nil {
			return err
		}
		return repos.InvoiceRepo().Save(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

func (s *OrderService) reject(ctx context.Context, actor identity.Actor, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Reject(reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// dispatch moves an approved order out for delivery. A driver acting on an
// unassigned order claims it; cash orders must have a fully paid invoice
// unless an admin force-dispatches. The delivery record is created in the
// same transaction.
func (s *OrderService) dispatch(ctx context.Context, actor identity.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	if !actor.IsAdmin() && !actor.IsDriver() {
		return nil, shared.ErrForbidden
	}

	var order *trade.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if actor.IsDriver() {
			if order.DriverID == nil {
				if err := order.AssignDriver(actor.ID); err != nil {
					return err
				}
			} else if *order.DriverID != actor.ID {
				return shared.NewDomainError("FORBIDDEN", "Order is assigned to another driver")
			}
		}

		invoice, err := repos.InvoiceRepo().FindByOrderID(ctx, orderID)
		if err != nil {
			return err
		}

		if order.IsCash() && !invoice.IsPaid() {
			return shared.NewDomainError("PAYMENT_REQUIRED",
				fmt.Sprintf("Cash order requires full payment before dispatch, %s due", invoice.BalanceAmount.StringFixed(2)))
		}

		if err := order.Dispatch(); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}

		delivery, err := billing.NewDelivery(order.ID, invoice.ID, *order.DriverID, order.GPS)
		if err != nil {
			return err
		}
		return repos.DeliveryRepo().Save(ctx, delivery)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

func (s *OrderService) deliver(ctx context.Context, actor identity.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	var order *trade.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if !actor.IsAdmin() {
			if !actor.IsDriver() || order.DriverID == nil || *order.DriverID != actor.ID {
				return shared.ErrForbidden
			}
		}

		if err := order.Deliver(); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}

		delivery, err := repos.DeliveryRepo().FindByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := delivery.Complete(); err != nil {
			return err
		}
		return repos.DeliveryRepo().Save(ctx, delivery)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// AssignDriver assigns or reassigns the delivering driver. Admin only.
func (s *OrderService) AssignDriver(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req AssignDriverRequest) (*OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.AssignDriver(req.DriverID); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	response := ToOrderResponse(order)
	return &response, nil
}

// ForceDispatch is the admin override that dispatches a cash order past an
// unpaid invoice. The override is stamped on the order and flagged on the
// dispatch event for audit.
func (s *OrderService) ForceDispatch(ctx context.Context, actor identity.Actor, orderID uuid.UUID, req ForceDispatchRequest) (*OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrForbidden
	}

	var order *trade.Order

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = repos.OrderRepo().FindByID(ctx, orderID)
		if err != nil {
			return err
		}

		if err := order.ForceDispatch(req.DriverID, actor.ID); err != nil {
			return err
		}
		if err := repos.OrderRepo().SaveWithLock(ctx, order); err != nil {
			return err
		}

		invoice, err := repos.InvoiceRepo().FindByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		delivery, err := billing.NewDelivery(order.ID, invoice.ID, req.DriverID, order.GPS)
		if err != nil {
			return err
		}
		return repos.DeliveryRepo().Save(ctx, delivery)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves one order, scoped by the actor's role
func (s *OrderService) GetByID(ctx context.Context, actor identity.Actor, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canView(actor, order) {
		return nil, shared.ErrForbidden
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// canView applies role scoping: sales reps see their own orders, drivers see
// their assignments plus the unassigned approved pool, collection agents see
// orders in settlement, admins see everything.
func canView(actor identity.Actor, order *trade.Order) bool {
	switch {
	case actor.IsAdmin():
		return true
	case actor.IsSalesRep():
		return order.SalesRepID == actor.ID
	case actor.IsDriver():
		if order.DriverID != nil {
			return *order.DriverID == actor.ID
		}
		return order.IsApproved()
	case actor.IsCollectionAgent():
		return order.IsDispatched() || order.IsDelivered()
	}
	return false
}

// List retrieves orders scoped by the actor's role with pagination
func (s *OrderService) List(ctx context.Context, actor identity.Actor, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	var (
		orders []trade.Order
		err    error
	)
	switch {
	case actor.IsAdmin():
		orders, err = s.listForAdmin(ctx, filter, domainFilter)
	case actor.IsSalesRep():
		orders, err = s.orderRepo.FindBySalesRep(ctx, actor.ID, domainFilter)
	case actor.IsDriver():
		orders, err = s.listForDriver(ctx, actor, domainFilter)
	case actor.IsCollectionAgent():
		orders, err = s.orderRepo.FindByStatuses(ctx,
			[]trade.OrderStatus{trade.OrderStatusDispatched, trade.OrderStatusDelivered}, domainFilter)
	default:
		return nil, 0, shared.ErrForbidden
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.countForScope(ctx, actor, filter, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// countForScope returns the scope-wide total backing the pagination meta,
// mirroring the visibility each role's listing applies.
func (s *OrderService) countForScope(ctx context.Context, actor identity.Actor, filter OrderListFilter, domainFilter shared.Filter) (int64, error) {
	countFilter := domainFilter
	countFilter.Filters = make(map[string]interface{}, len(domainFilter.Filters)+1)
	for k, v := range domainFilter.Filters {
		countFilter.Filters[k] = v
	}

	switch {
	case actor.IsAdmin():
		if len(filter.Statuses) > 0 {
			countFilter.Filters["statuses"] = filter.Statuses
		} else if filter.Status != nil {
			countFilter.Filters["status"] = *filter.Status
		}
		return s.orderRepo.Count(ctx, countFilter)
	case actor.IsSalesRep():
		countFilter.Filters["sales_rep_id"] = actor.ID
		return s.orderRepo.Count(ctx, countFilter)
	case actor.IsDriver():
		pool, err := s.orderRepo.CountUnassignedApproved(ctx)
		if err != nil {
			return 0, err
		}
		countFilter.Filters["driver_id"] = actor.ID
		assigned, err := s.orderRepo.Count(ctx, countFilter)
		if err != nil {
			return 0, err
		}
		return pool + assigned, nil
	case actor.IsCollectionAgent():
		countFilter.Filters["statuses"] = []trade.OrderStatus{trade.OrderStatusDispatched, trade.OrderStatusDelivered}
		return s.orderRepo.Count(ctx, countFilter)
	}
	return 0, shared.ErrForbidden
}

func (s *OrderService) listForAdmin(ctx context.Context, filter OrderListFilter, domainFilter shared.Filter) ([]trade.Order, error) {
	if len(filter.Statuses) > 0 {
		return s.orderRepo.FindByStatuses(ctx, filter.Statuses, domainFilter)
	}
	if filter.Status != nil {
		return s.orderRepo.FindByStatuses(ctx, []trade.OrderStatus{*filter.Status}, domainFilter)
	}
	return s.orderRepo.FindAll(ctx, domainFilter)
}

// listForDriver merges the unassigned approved pool with the driver's own
// assignments so the app shows both claimable and claimed work.
func (s *OrderService) listForDriver(ctx context.Context, actor identity.Actor, domainFilter shared.Filter) ([]trade.Order, error) {
	pool, err := s.orderRepo.FindUnassignedApproved(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	assigned, err := s.orderRepo.FindByDriver(ctx, actor.ID, domainFilter)
	if err != nil {
		return nil, err
	}
	return append(pool, assigned...), nil
}

func toDomainFilter(filter OrderListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}

func (s *OrderService) publishEvents(ctx context.Context, order *trade.Order) {
	if s.eventPublisher == nil || order == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	// Best-effort: events drive logging and integration, never invariants.
	_ = s.eventPublisher.Publish(ctx, events...)
	order.ClearDomainEvents()
}
