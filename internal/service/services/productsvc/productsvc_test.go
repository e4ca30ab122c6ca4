package productsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
)

func TestListProducts(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewConn()
	if err != nil {
		t.Fatalf("Failed to create mock connection: %v", err)
	}
	mock.ExpectQuery(`^SELECT .* FROM products p JOIN suppliers s`).WillReturnRows(
		pgxmock.NewRows([]string{"productid", "productcode", "productname", "productprice", "suppliername"}).
			AddRow(int64(1), "P-001", "Anvil", decimal.RequireFromString("19.99"), "Acme"),
	)
	mock.ExpectClose()

	svc := MustNewProductService(WithPostgresClient(postgres.NewClient(
		func(context.Context) (postgres.Conn, error) { return mock, nil },
	)))

	products, err := svc.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("Expected 1 product, got %d", len(products))
	}
	if products[0].SupplierName != "Acme" || !products[0].Price.Equal(decimal.RequireFromString("19.99")) {
		t.Errorf("Unexpected product: %+v", products[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("Unfulfilled expectations: %v", err)
	}
}

func TestListProducts_ConnectFails(t *testing.T) {
	t.Parallel()

	errBoom := errors.New("boom")
	svc := MustNewProductService(WithPostgresClient(postgres.NewClient(
		func(context.Context) (postgres.Conn, error) { return nil, errBoom },
	)))

	if _, err := svc.ListProducts(context.Background()); !errors.Is(err, errBoom) {
		t.Fatalf("Expected %v, got %v", errBoom, err)
	}
}
