package listproducts

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/models/product"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
)

type service interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
}

// ListProducts writes the product catalogue, each product carrying its supplier name.
func ListProducts(w http.ResponseWriter, r *http.Request, service service) error {
	products, err := service.ListProducts(r.Context())
	if err != nil {
		return err
	}
	if products == nil {
		products = []product.Product{}
	}

	return respond.JSON(w, http.StatusOK, products)
}
