package icustomerrepo

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/service/models/customer"
)

// ICustomerRepository is an interface for customer postgres repository.
type ICustomerRepository interface {
	List(ctx context.Context) ([]customer.Customer, error)
	Insert(ctx context.Context, c customer.Customer) (customer.Customer, error)
}
