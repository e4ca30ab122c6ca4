package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/product"
	"github.com/shopspring/decimal"
)

// ProductDal represents a product row joined with its supplier.
type ProductDal struct {
	Id           int64           `db:"productid"`
	Code         string          `db:"productcode"`
	Name         string          `db:"productname"`
	Price        decimal.Decimal `db:"productprice"`
	SupplierName string          `db:"suppliername"`
}

// ToModel converts ProductDal to service layer Product model.
func (p *ProductDal) ToModel() product.Product {
	return product.Product{
		ID:           p.Id,
		Code:         p.Code,
		Name:         p.Name,
		Price:        p.Price,
		SupplierName: p.SupplierName,
	}
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.GenericConn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// List returns products that have a supplier, ordered by product name.
func (r *PostgresProductRepository) List(ctx context.Context) ([]product.Product, error) {
	sql, args, err := r.sb.
		Select(
			"p.productid",
			"p.productcode",
			"p.productname",
			"p.productprice",
			"s.suppliername",
		).
		From("products p").
		Join("suppliers s ON p.supplierid = s.supplierid").
		OrderBy("p.productname").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	result := make([]product.Product, 0)
	for rows.Next() {
		var dal ProductDal
		err := rows.Scan(
			&dal.Id,
			&dal.Code,
			&dal.Name,
			&dal.Price,
			&dal.SupplierName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}

		result = append(result, dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
