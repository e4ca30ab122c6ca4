package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
)

// OrderDal represents order data access layer model.
type OrderDal struct {
	Id         int64     `db:"orderid"`
	CustomerId int64     `db:"customerid"`
	OrderDate  time.Time `db:"orderdate"`
}

// OrderDalFromModel converts service layer Order model to OrderDal.
func OrderDalFromModel(o *order.Order) *OrderDal {
	return &OrderDal{
		Id:         o.ID,
		CustomerId: o.CustomerID,
		OrderDate:  o.OrderDate,
	}
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert stores the order header and returns the generated order id.
// Items are not touched.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (int64, error) {
	dal := OrderDalFromModel(&o)

	sql, args, err := r.sb.
		Insert("orders").
		Columns("customerid", "orderdate").
		Values(dal.CustomerId, dal.OrderDate).
		Suffix("RETURNING orderid").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&dal.Id); err != nil {
		return 0, fmt.Errorf("failed to insert order: %w", err)
	}

	return dal.Id, nil
}
