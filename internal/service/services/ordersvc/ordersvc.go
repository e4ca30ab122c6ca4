package ordersvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/dal/uow"
	"github.com/corray333/backend-labs/storefront/internal/metrics"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/corray333/backend-labs/storefront/internal/service/services/ordersvc")

// OrderService is a service for managing orders.
type OrderService struct {
	pgClient *postgres.Client
	now      func() time.Time
}

func (s *OrderService) newUOW() unitOfWork {
	return uow.NewUnitOfWork(s.pgClient)
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Close(ctx context.Context)

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.pgClient == nil {
		panic("ordersvc: postgres client is required")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithClock overrides the source of order dates.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.now = now
	}
}

// CreateOrder stores the order header and all of its items in one transaction
// and returns the generated order id. The order date is set here, not by the caller.
// Either everything is committed or nothing is.
func (s *OrderService) CreateOrder(ctx context.Context, o order.Order) (orderID int64, err error) {
	ctx, span := tracer.Start(ctx, "OrderService.CreateOrder")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("order.customer_id", o.CustomerID),
		attribute.Int("order.items", len(o.Items)),
	)

	work := s.newUOW()
	defer work.Close(ctx)
	defer func() {
		if err == nil {
			metrics.OrderTransactions.WithLabelValues(metrics.OutcomeCommitted).Inc()

			return
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		metrics.OrderTransactions.WithLabelValues(metrics.OutcomeFailed).Inc()
		if rbErr := work.Rollback(ctx); rbErr != nil {
			slog.ErrorContext(ctx, "Failed to rollback order transaction", "error", rbErr)
		}
	}()

	if err = work.Begin(ctx); err != nil {
		return 0, err
	}

	o.OrderDate = s.now()
	orderID, err = work.OrderRepository().Insert(ctx, o)
	if err != nil {
		return 0, err
	}

	for _, item := range o.Items {
		item.OrderID = orderID
		if err = work.OrderItemRepository().Insert(ctx, item); err != nil {
			return 0, err
		}
	}

	if err = work.Commit(ctx); err != nil {
		return 0, err
	}

	span.SetAttributes(attribute.Int64("order.id", orderID))

	return orderID, nil
}
