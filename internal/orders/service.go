package orders

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/bazario/marketplace-backend/internal/customers"
	"github.com/bazario/marketplace-backend/internal/inventory"
	"github.com/bazario/marketplace-backend/internal/pricing"
	"github.com/bazario/marketplace-backend/internal/products"
	dbpkg "github.com/bazario/marketplace-backend/pkg/db"
	"github.com/bazario/marketplace-backend/pkg/db/models"
	"github.com/bazario/marketplace-backend/pkg/enums"
	pkgerrors "github.com/bazario/marketplace-backend/pkg/errors"
	"github.com/bazario/marketplace-backend/pkg/metrics"
	"github.com/bazario/marketplace-backend/pkg/outbox"
	"github.com/bazario/marketplace-backend/pkg/outbox/payloads"
	"github.com/bazario/marketplace-backend/pkg/pagination"
)

const orderNumberAttempts = 3

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service defines the order lifecycle operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Cancel(ctx context.Context, input CancelOrderInput) error
	UpdateStatus(ctx context.Context, input UpdateStatusInput) error
	ApplyPaymentUpdate(ctx context.Context, input PaymentUpdateInput) error
	Track(ctx context.Context, orderNumber string) (*TrackingView, error)
	List(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error)
	GetDetail(ctx context.Context, orderID, customerID uuid.UUID) (*models.Order, error)
}

type service struct {
	repo         Repository
	products     products.Repository
	customers    customers.Repository
	ledger       *inventory.Ledger
	calc         *pricing.Calculator
	numbers      *NumberGenerator
	tx           txRunner
	outbox       outboxPublisher
	metrics      *metrics.OrderMetrics
	returnWindow time.Duration
	now          func() time.Time
}

// ServiceParams wires the order service dependencies.
type ServiceParams struct {
	Repo         Repository
	Products     products.Repository
	Customers    customers.Repository
	Ledger       *inventory.Ledger
	Calculator   *pricing.Calculator
	Numbers      *NumberGenerator
	Tx           txRunner
	Outbox       outboxPublisher
	Metrics      *metrics.OrderMetrics
	ReturnWindow time.Duration
}

// NewService builds the order service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "orders repository required")
	}
	if params.Products == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "products repository required")
	}
	if params.Customers == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customers repository required")
	}
	if params.Ledger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "inventory ledger required")
	}
	if params.Calculator == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "pricing calculator required")
	}
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "transaction runner required")
	}
	if params.Outbox == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "outbox publisher required")
	}
	numbers := params.Numbers
	if numbers == nil {
		numbers = NewNumberGenerator()
	}
	return &service{
		repo:         params.Repo,
		products:     params.Products,
		customers:    params.Customers,
		ledger:       params.Ledger,
		calc:         params.Calculator,
		numbers:      numbers,
		tx:           params.Tx,
		outbox:       params.Outbox,
		metrics:      params.Metrics,
		returnWindow: params.ReturnWindow,
		now:          time.Now,
	}, nil
}

// Create places an order. Stock is reserved one product at a time with
// individually durable conditional updates, so a failure part-way through
// releases the acquired reservations in reverse order and leaves the
// ledger exactly as it was.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	start := s.now()

	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	if _, err := s.customers.FindByID(ctx, input.CustomerID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}
	catalog, err := s.products.FindActiveByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	for _, item := range input.Items {
		if _, ok := catalog[item.ProductID]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product unavailable").
				WithDetails(map[string]any{"product_id": item.ProductID.String()})
		}
	}

	reservations, err := s.reserveAll(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	order, err := s.persistOrder(ctx, input, catalog, reservations)
	if err != nil {
		return nil, multierr.Append(err, s.ledger.ReleaseAll(ctx, reservations))
	}

	s.metrics.IncCreated(string(input.DeliveryMethod))
	s.metrics.ObserveCreateDuration(s.now().Sub(start))
	return order, nil
}

// reservationOrder returns the items sorted by product id. Reserving in a
// fixed order keeps two overlapping carts from deadlocking each other or
// releasing in an order the other cart does not expect.
func reservationOrder(items []CreateOrderItemInput) []CreateOrderItemInput {
	sorted := make([]CreateOrderItemInput, len(items))
	copy(sorted, items)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].ProductID[:], sorted[j].ProductID[:]) < 0
	})
	return sorted
}

func (s *service) reserveAll(ctx context.Context, items []CreateOrderItemInput) ([]*inventory.Reservation, error) {
	acquired := make([]*inventory.Reservation, 0, len(items))
	for _, item := range reservationOrder(items) {
		reservation, err := s.ledger.Reserve(ctx, item.ProductID, item.Qty)
		if err != nil {
			if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeConflict {
				s.metrics.IncStockConflict(item.ProductID.String())
			}
			return nil, multierr.Append(err, s.ledger.ReleaseAll(ctx, acquired))
		}
		acquired = append(acquired, reservation)
	}
	return acquired, nil
}

func (s *service) persistOrder(ctx context.Context, input CreateOrderInput, catalog map[uuid.UUID]models.Product, reservations []*inventory.Reservation) (*models.Order, error) {
	lines := make([]pricing.LineInput, 0, len(input.Items))
	orderItems := make([]models.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		product := catalog[item.ProductID]
		original := product.PriceCents
		if product.CompareAtPriceCents != nil {
			original = *product.CompareAtPriceCents
		}
		lines = append(lines, pricing.LineInput{UnitPriceCents: product.PriceCents, Qty: item.Qty})
		orderItems = append(orderItems, models.OrderItem{
			ProductID:          product.ID,
			Name:               product.Title,
			UnitPriceCents:     product.PriceCents,
			OriginalPriceCents: original,
			Qty:                item.Qty,
			SubtotalCents:      product.PriceCents * int64(item.Qty),
		})
	}

	quote, err := s.calc.Calculate(lines, input.DeliveryMethod, input.DiscountCents)
	if err != nil {
		return nil, err
	}

	var created *models.Order
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		number, err := s.numbers.Generate()
		if err != nil {
			return nil, err
		}

		order := &models.Order{
			OrderNumber:     number,
			CustomerID:      input.CustomerID,
			Status:          enums.OrderStatusPending,
			DeliveryMethod:  input.DeliveryMethod,
			ShippingAddress: input.ShippingAddress,
			SubtotalCents:   quote.SubtotalCents,
			ShippingCents:   quote.ShippingCents,
			TaxCents:        quote.TaxCents,
			DiscountCents:   quote.DiscountCents,
			TotalCents:      quote.TotalCents,
			PaymentMethod:   input.PaymentMethod,
			PaymentStatus:   enums.PaymentStatusUnpaid,
			Items:           cloneItems(orderItems),
		}

		txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			repo := s.repo.WithTx(tx)
			if _, err := repo.Create(ctx, order); err != nil {
				return err
			}
			if err := repo.AppendStatusHistory(ctx, &models.OrderStatusHistory{
				OrderID: order.ID,
				Status:  enums.OrderStatusPending,
				Actor:   actorName(input.ActorRole),
			}); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record initial status")
			}
			ledger := s.ledger.WithTx(tx)
			for _, reservation := range reservations {
				if err := ledger.Commit(ctx, reservation); err != nil {
					return err
				}
			}
			if err := s.customers.WithTx(tx).ApplyOrderPlaced(ctx, input.CustomerID, order.TotalCents); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer aggregates")
			}
			return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventOrderCreated,
				AggregateType: enums.AggregateOrder,
				AggregateID:   order.ID,
				Version:       1,
				Actor:         buildActor(input.CustomerID, input.ActorRole),
				Data: payloads.OrderCreatedEvent{
					OrderID:        order.ID,
					OrderNumber:    order.OrderNumber,
					CustomerID:     order.CustomerID,
					TotalCents:     order.TotalCents,
					ItemCount:      totalQty(order.Items),
					DeliveryMethod: string(order.DeliveryMethod),
				},
			})
		})
		if txErr == nil {
			created = order
			break
		}
		if dbpkg.IsUniqueViolation(txErr, "ux_orders_order_number") {
			continue
		}
		if typed := pkgerrors.As(txErr); typed != nil {
			return nil, txErr
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, txErr, "persist order")
	}
	if created == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "could not allocate a unique order number")
	}
	return created, nil
}

// Cancel cancels a pre-shipment order and restores its stock. The status
// check and the cancellation write happen in one conditional update, so a
// concurrent packing transition can never race a cancellation. A repeated
// cancel is a conflict, so stock can never be restored twice.
func (s *service) Cancel(ctx context.Context, input CancelOrderInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if input.CustomerID != uuid.Nil && order.CustomerID != input.CustomerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to customer")
	}
	if order.Status == enums.OrderStatusCancelled {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order already cancelled").
			WithDetails(map[string]any{"status": order.Status.String()})
	}
	if !IsCancellable(order.Status) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled").
			WithDetails(map[string]any{"status": order.Status.String()})
	}

	now := s.now()
	cancelledBy := actorName(input.ActorRole)
	updates := map[string]any{
		"cancelled_at": now,
		"cancelled_by": cancelledBy,
	}
	if input.Reason != "" {
		updates["cancel_reason"] = input.Reason
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		updated, err := repo.UpdateStatusFrom(ctx, order.ID, cancellableStatuses, enums.OrderStatusCancelled, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel order")
		}
		if !updated {
			current, err := repo.FindByID(ctx, order.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
			}
			if current.Status == enums.OrderStatusCancelled {
				return pkgerrors.New(pkgerrors.CodeStateConflict, "order already cancelled").
					WithDetails(map[string]any{"status": current.Status.String()})
			}
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order can no longer be cancelled").
				WithDetails(map[string]any{"status": current.Status.String()})
		}

		ledger := s.ledger.WithTx(tx)
		for _, item := range order.Items {
			if err := ledger.Restock(ctx, item.ProductID, item.Qty); err != nil {
				return err
			}
		}

		var note *string
		if input.Reason != "" {
			reason := input.Reason
			note = &reason
		}
		if err := repo.AppendStatusHistory(ctx, &models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  enums.OrderStatusCancelled,
			Actor:   cancelledBy,
			Note:    note,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record cancellation")
		}

		if err := s.customers.WithTx(tx).ApplyOrderCancelled(ctx, order.CustomerID, order.TotalCents); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer aggregates")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderCancelled,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         buildActor(order.CustomerID, input.ActorRole),
			Data: payloads.OrderCancelledEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				CustomerID:  order.CustomerID,
				CancelledBy: cancelledBy,
				Reason:      input.Reason,
				CancelledAt: now,
			},
		})
	})
	if err != nil {
		return err
	}

	s.metrics.IncCancelled()
	return nil
}

// UpdateStatus applies an admin lifecycle transition. Cancellation must go
// through Cancel so the restock happens; returns are only accepted within
// the configured window after delivery.
func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) error {
	if input.OrderID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.ToStatus == enums.OrderStatusCancelled {
		return pkgerrors.New(pkgerrors.CodeValidation, "cancellation must go through the cancel operation")
	}

	order, err := s.repo.FindByID(ctx, input.OrderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if err := ValidateTransition(order.Status, input.ToStatus); err != nil {
		return err
	}

	now := s.now()
	if input.ToStatus == enums.OrderStatusReturned {
		if order.DeliveredAt == nil {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order has no delivery timestamp")
		}
		if s.returnWindow > 0 && now.After(order.DeliveredAt.Add(s.returnWindow)) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "return window has elapsed").
				WithDetails(map[string]any{"delivered_at": order.DeliveredAt})
		}
	}

	updates := map[string]any{}
	if input.ToStatus == enums.OrderStatusDelivered {
		updates["delivered_at"] = now
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		updated, err := repo.UpdateStatusFrom(ctx, order.ID, []enums.OrderStatus{order.Status}, input.ToStatus, updates)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !updated {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed concurrently")
		}

		if err := repo.AppendStatusHistory(ctx, &models.OrderStatusHistory{
			OrderID: order.ID,
			Status:  input.ToStatus,
			Actor:   actorName(input.ActorRole),
			Note:    input.Note,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record status change")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderStatusChanged,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         &outbox.ActorRef{Role: actorName(input.ActorRole)},
			Data: payloads.OrderStatusChangedEvent{
				OrderID:     order.ID,
				OrderNumber: order.OrderNumber,
				CustomerID:  order.CustomerID,
				FromStatus:  order.Status,
				ToStatus:    input.ToStatus,
				Actor:       actorName(input.ActorRole),
				ChangedAt:   now,
			},
		})
	})
}

// ApplyPaymentUpdate records a gateway payment result. A successful payment
// on a pending order confirms it automatically.
func (s *service) ApplyPaymentUpdate(ctx context.Context, input PaymentUpdateInput) error {
	if input.OrderNumber == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}
	if !input.PaymentStatus.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment status")
	}

	order, err := s.repo.FindByOrderNumber(ctx, input.OrderNumber)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdatePayment(ctx, order.ID, map[string]any{
			"payment_status":    input.PaymentStatus,
			"paid_amount_cents": input.PaidAmountCents,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment")
		}

		if input.PaymentStatus == enums.PaymentStatusPaid && order.Status == enums.OrderStatusPending {
			updated, err := repo.UpdateStatusFrom(ctx, order.ID, []enums.OrderStatus{enums.OrderStatusPending}, enums.OrderStatusConfirmed, nil)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "confirm order")
			}
			if updated {
				if err := repo.AppendStatusHistory(ctx, &models.OrderStatusHistory{
					OrderID: order.ID,
					Status:  enums.OrderStatusConfirmed,
					Actor:   actorName(enums.RoleSystem),
				}); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record confirmation")
				}
			}
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPaymentUpdated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   order.ID,
			Version:       1,
			Actor:         &outbox.ActorRef{Role: actorName(enums.RoleSystem)},
			Data: payloads.PaymentUpdatedEvent{
				OrderID:         order.ID,
				OrderNumber:     order.OrderNumber,
				PaymentStatus:   input.PaymentStatus,
				PaidAmountCents: input.PaidAmountCents,
				TransactionRef:  input.TransactionRef,
			},
		})
	})
}

// Track returns the public tracking view for an order number.
func (s *service) Track(ctx context.Context, orderNumber string) (*TrackingView, error) {
	if orderNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order number required")
	}

	order, err := s.repo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	timeline, err := s.repo.FindTimeline(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load timeline")
	}

	view := &TrackingView{
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		DeliveryMethod: order.DeliveryMethod,
		ItemCount:      totalQty(order.Items),
		PlacedAt:       order.CreatedAt,
		DeliveredAt:    order.DeliveredAt,
		Timeline:       make([]StatusHistoryEntry, 0, len(timeline)),
	}
	for _, entry := range timeline {
		view.Timeline = append(view.Timeline, StatusHistoryEntry{
			Status:    entry.Status,
			Actor:     entry.Actor,
			Note:      entry.Note,
			CreatedAt: entry.CreatedAt,
		})
	}
	return view, nil
}

// List returns the customer's orders, newest first.
func (s *service) List(ctx context.Context, customerID uuid.UUID, params pagination.Params, filters ListFilters) (*OrderList, error) {
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	list, err := s.repo.ListByCustomer(ctx, customerID, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

// GetDetail loads one order with its items and timeline, scoped to the
// owning customer unless customerID is nil (admin access).
func (s *service) GetDetail(ctx context.Context, orderID, customerID uuid.UUID) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindDetail(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if customerID != uuid.Nil && order.CustomerID != customerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to customer")
	}
	return order, nil
}

func validateCreateInput(input CreateOrderInput) error {
	if input.CustomerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "customer identity missing")
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one item is required")
	}
	seen := map[uuid.UUID]bool{}
	for _, item := range input.Items {
		if item.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "item product id required")
		}
		if item.Qty <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if seen[item.ProductID] {
			return pkgerrors.New(pkgerrors.CodeValidation, "duplicate product in order").
				WithDetails(map[string]any{"product_id": item.ProductID.String()})
		}
		seen[item.ProductID] = true
	}
	if !input.DeliveryMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid delivery method")
	}
	if !input.PaymentMethod.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid payment method")
	}
	if input.DiscountCents < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "discount cannot be negative")
	}
	if err := input.ShippingAddress.Validate(); err != nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid shipping address").
			WithDetails(map[string]any{"reason": err.Error()})
	}
	return nil
}

func actorName(role enums.ActorRole) string {
	if role.IsValid() {
		return string(role)
	}
	return string(enums.RoleSystem)
}

func buildActor(customerID uuid.UUID, role enums.ActorRole) *outbox.ActorRef {
	id := customerID
	return &outbox.ActorRef{CustomerID: &id, Role: actorName(role)}
}

func totalQty(items []models.OrderItem) int {
	total := 0
	for _, item := range items {
		total += item.Qty
	}
	return total
}

func cloneItems(items []models.OrderItem) []models.OrderItem {
	out := make([]models.OrderItem, len(items))
	copy(out, items)
	return out
}
