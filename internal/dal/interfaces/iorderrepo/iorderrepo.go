package iorderrepo

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
)

// IOrderRepository is an interface for order postgres repository.
type IOrderRepository interface {
	// Insert stores the order header and returns its generated id.
	Insert(ctx context.Context, o order.Order) (int64, error)
}
