package orderitem

// OrderItem represents a product line within an order.
type OrderItem struct {
	OrderID   int64 `json:"orderId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}
