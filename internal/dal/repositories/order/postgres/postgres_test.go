package postgresrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/pashagolub/pgxmock/v3"
)

const insertOrderSQL = `^INSERT INTO orders \(customerid,\s*orderdate\) VALUES \(\$1,\s*\$2\) RETURNING orderid$`

func newMock(t *testing.T) pgxmock.PgxConnIface {
	t.Helper()

	mock, err := pgxmock.NewConn()
	if err != nil {
		t.Fatalf("Failed to create mock connection: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("Unfulfilled expectations: %v", err)
		}
	})

	return mock
}

func TestPostgresOrderRepository_Insert(t *testing.T) {
	t.Parallel()

	orderDate := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	mock := newMock(t)
	mock.ExpectQuery(insertOrderSQL).
		WithArgs(int64(1), orderDate).
		WillReturnRows(pgxmock.NewRows([]string{"orderid"}).AddRow(int64(42)))

	id, err := NewPostgresOrderRepository(mock).Insert(context.Background(), order.Order{
		CustomerID: 1,
		OrderDate:  orderDate,
	})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	if id != 42 {
		t.Errorf("Expected order id 42, got %d", id)
	}
}

func TestPostgresOrderRepository_Insert_UnknownCustomer(t *testing.T) {
	t.Parallel()

	errFK := errors.New(`insert or update on table "orders" violates foreign key constraint "orders_customerid_fkey"`)
	mock := newMock(t)
	mock.ExpectQuery(insertOrderSQL).
		WithArgs(int64(999), pgxmock.AnyArg()).
		WillReturnError(errFK)

	id, err := NewPostgresOrderRepository(mock).Insert(context.Background(), order.Order{
		CustomerID: 999,
		OrderDate:  time.Now(),
	})
	if !errors.Is(err, errFK) {
		t.Fatalf("Expected %v, got %v", errFK, err)
	}
	if id != 0 {
		t.Errorf("Expected zero id on failure, got %d", id)
	}
}
