package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	OrderId   int64 `db:"orderid"`
	ProductId int64 `db:"productid"`
	Quantity  int   `db:"quantity"`
}

// OrderItemDalFromModel converts service layer OrderItem model to OrderItemDal.
func OrderItemDalFromModel(oi *orderitem.OrderItem) *OrderItemDal {
	return &OrderItemDal{
		OrderId:   oi.OrderID,
		ProductId: oi.ProductID,
		Quantity:  oi.Quantity,
	}
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores one order item row.
func (r *PostgresOrderItemRepository) Insert(ctx context.Context, item orderitem.OrderItem) error {
	dal := OrderItemDalFromModel(&item)

	sql, args, err := r.sb.
		Insert("orderitems").
		Columns("orderid", "productid", "quantity").
		Values(dal.OrderId, dal.ProductId, dal.Quantity).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to insert order item: %w", err)
	}

	return nil
}
