package iorderitemrepo

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
)

// IOrderItemRepository is an interface for order item postgres repository.
type IOrderItemRepository interface {
	Insert(ctx context.Context, item orderitem.OrderItem) error
}
