package listcustomers

import (
	"context"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/models/customer"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
)

type service interface {
	ListCustomers(ctx context.Context) ([]customer.Customer, error)
}

// ListCustomers writes every customer as a JSON array.
func ListCustomers(w http.ResponseWriter, r *http.Request, service service) error {
	customers, err := service.ListCustomers(r.Context())
	if err != nil {
		return err
	}
	if customers == nil {
		customers = []customer.Customer{}
	}

	return respond.JSON(w, http.StatusOK, customers)
}
