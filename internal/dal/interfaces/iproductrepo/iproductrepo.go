package iproductrepo

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/service/models/product"
)

// IProductRepository is an interface for product postgres repository.
type IProductRepository interface {
	List(ctx context.Context) ([]product.Product, error)
}
