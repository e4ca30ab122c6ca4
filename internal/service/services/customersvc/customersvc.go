package customersvc

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/icustomerrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	customerrepo "github.com/corray333/backend-labs/storefront/internal/dal/repositories/customer/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/customer"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/corray333/backend-labs/storefront/internal/service/services/customersvc")

// CustomerService is a service for managing customers.
type CustomerService struct {
	pgClient *postgres.Client
}

type option func(*CustomerService)

// MustNewCustomerService creates a new CustomerService.
func MustNewCustomerService(opts ...option) *CustomerService {
	s := &CustomerService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.pgClient == nil {
		panic("customersvc: postgres client is required")
	}

	return s
}

// WithPostgresClient sets the Postgres client for the CustomerService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *CustomerService) {
		s.pgClient = pgClient
	}
}

func (s *CustomerService) repo(conn postgres.GenericConn) icustomerrepo.ICustomerRepository {
	return customerrepo.NewPostgresCustomerRepository(conn)
}

// ListCustomers returns every customer ordered by name.
func (s *CustomerService) ListCustomers(ctx context.Context) ([]customer.Customer, error) {
	ctx, span := tracer.Start(ctx, "CustomerService.ListCustomers")
	defer span.End()

	var customers []customer.Customer
	err := s.pgClient.WithConn(ctx, func(ctx context.Context, conn postgres.Conn) error {
		var err error
		customers, err = s.repo(conn).List(ctx)

		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	return customers, nil
}

// CreateCustomer stores a customer and returns it with its generated id.
func (s *CustomerService) CreateCustomer(
	ctx context.Context,
	c customer.Customer,
) (customer.Customer, error) {
	ctx, span := tracer.Start(ctx, "CustomerService.CreateCustomer")
	defer span.End()

	var created customer.Customer
	err := s.pgClient.WithConn(ctx, func(ctx context.Context, conn postgres.Conn) error {
		var err error
		created, err = s.repo(conn).Insert(ctx, c)

		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return customer.Customer{}, err
	}

	return created, nil
}
