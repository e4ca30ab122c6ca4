package order

import (
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
)

// Order represents an order header and the items submitted with it.
type Order struct {
	ID         int64                 `json:"id"`
	CustomerID int64                 `json:"customerId"`
	OrderDate  time.Time             `json:"orderDate"`
	Items      []orderitem.OrderItem `json:"items"`
}
