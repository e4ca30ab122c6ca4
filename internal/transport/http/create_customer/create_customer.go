package createcustomer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/models/customer"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// service is an interface for the service layer.
type service interface {
	CreateCustomer(ctx context.Context, c customer.Customer) (customer.Customer, error)
}

// createCustomerRequest represents a create customer request.
// Fields are pointers so that a missing key is told apart from an empty value;
// only presence is checked.
type createCustomerRequest struct {
	Email   *string `json:"email"   validate:"required"`
	Name    *string `json:"name"    validate:"required"`
	Surname *string `json:"surname" validate:"required"`
}

// Validate validates the create customer request.
func (r *createCustomerRequest) Validate() error {
	return validate.Struct(r)
}

func (r *createCustomerRequest) toModel() customer.Customer {
	return customer.Customer{
		Email:   *r.Email,
		Name:    *r.Name,
		Surname: *r.Surname,
	}
}

// CreateCustomer handles the create customer request.
func CreateCustomer(w http.ResponseWriter, r *http.Request, service service) error {
	req := createCustomerRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	created, err := service.CreateCustomer(r.Context(), req.toModel())
	if err != nil {
		return err
	}

	return respond.JSON(w, http.StatusCreated, created)
}
