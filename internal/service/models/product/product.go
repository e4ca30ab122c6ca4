package product

import "github.com/shopspring/decimal"

// Product represents a product together with the name of its supplier.
type Product struct {
	ID           int64           `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	SupplierName string          `json:"supplierName"`
}
