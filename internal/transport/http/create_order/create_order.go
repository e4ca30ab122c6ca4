package createorder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/go-playground/validator/v10"
)

// SuccessMessage is sent back with every created order.
const SuccessMessage = "Order created successfully!"

var validate = validator.New(validator.WithRequiredStructEnabled())

// service is an interface for the service layer.
type service interface {
	CreateOrder(ctx context.Context, o order.Order) (int64, error)
}

// itemInCreateOrderRequest represents an item in a create order request.
type itemInCreateOrderRequest struct {
	ProductID *int64 `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity"  validate:"required"`
}

// createOrderRequest represents a create order request.
// An empty items array is accepted; a missing one is not.
type createOrderRequest struct {
	CustomerID *int64                     `json:"customerId" validate:"required"`
	Items      []itemInCreateOrderRequest `json:"items"      validate:"required,dive"`
}

// Validate validates the create order request.
func (r *createOrderRequest) Validate() error {
	return validate.Struct(r)
}

// toModel converts createOrderRequest to order.Order.
func (r *createOrderRequest) toModel() order.Order {
	items := make([]orderitem.OrderItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = orderitem.OrderItem{
			ProductID: *item.ProductID,
			Quantity:  *item.Quantity,
		}
	}

	return order.Order{
		CustomerID: *r.CustomerID,
		Items:      items,
	}
}

type createOrderResponse struct {
	OrderID int64  `json:"orderId"`
	Message string `json:"message"`
}

// CreateOrder handles the create order request.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) error {
	req := createOrderRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}

	if err := req.Validate(); err != nil {
		return err
	}

	orderID, err := service.CreateOrder(r.Context(), req.toModel())
	if err != nil {
		return err
	}

	return respond.JSON(w, http.StatusCreated, createOrderResponse{
		OrderID: orderID,
		Message: SuccessMessage,
	})
}
