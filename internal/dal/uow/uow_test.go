package uow

import (
	"context"
	"errors"
	"testing"

	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/orderitem"
	"github.com/pashagolub/pgxmock/v3"
)

var errBoom = errors.New("boom")

func newMockUOW(t *testing.T) (*UnitOfWork, pgxmock.PgxConnIface) {
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

	client := postgres.NewClient(func(context.Context) (postgres.Conn, error) {
		return mock, nil
	})

	return NewUnitOfWork(client), mock
}

func TestUnitOfWork_BeginCommitClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	work, mock := newMockUOW(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO orderitems`).
		WithArgs(int64(1), int64(5), 2).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()
	mock.ExpectClose()

	if err := work.Begin(ctx); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if work.OrderRepository() == nil || work.OrderItemRepository() == nil {
		t.Fatal("Repositories must be bound after Begin")
	}

	err := work.OrderItemRepository().Insert(ctx, orderitem.OrderItem{OrderID: 1, ProductID: 5, Quantity: 2})
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	if err := work.Commit(ctx); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	// Nothing left to roll back after a commit.
	if err := work.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() after commit error = %v", err)
	}
	work.Close(ctx)
}

func TestUnitOfWork_RollbackClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	work, mock := newMockUOW(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectClose()

	if err := work.Begin(ctx); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := work.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	work.Close(ctx)
	// Second Close is a no-op.
	work.Close(ctx)
}

func TestUnitOfWork_RollbackWithoutBegin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	work, _ := newMockUOW(t)

	if err := work.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() without transaction error = %v", err)
	}
	work.Close(ctx)
}

func TestUnitOfWork_CommitWithoutBegin(t *testing.T) {
	t.Parallel()

	work, _ := newMockUOW(t)

	if err := work.Commit(context.Background()); !errors.Is(err, ErrNoTransaction) {
		t.Fatalf("Expected %v, got %v", ErrNoTransaction, err)
	}
}

func TestUnitOfWork_BeginFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	work, mock := newMockUOW(t)
	mock.ExpectBegin().WillReturnError(errBoom)
	mock.ExpectClose()

	if err := work.Begin(ctx); !errors.Is(err, errBoom) {
		t.Fatalf("Expected %v, got %v", errBoom, err)
	}
	// No transaction was opened, so no rollback reaches the connection.
	if err := work.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	work.Close(ctx)
}

func TestUnitOfWork_ConnectFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	client := postgres.NewClient(func(context.Context) (postgres.Conn, error) {
		return nil, errBoom
	})
	work := NewUnitOfWork(client)

	if err := work.Begin(ctx); !errors.Is(err, errBoom) {
		t.Fatalf("Expected %v, got %v", errBoom, err)
	}
	if err := work.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() error = %v", err)
	}
	work.Close(ctx)
}

func TestUnitOfWork_CommitFails(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	work, mock := newMockUOW(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errBoom)
	mock.ExpectClose()

	if err := work.Begin(ctx); err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	if err := work.Commit(ctx); !errors.Is(err, errBoom) {
		t.Fatalf("Expected %v, got %v", errBoom, err)
	}
	if err := work.Rollback(ctx); err != nil {
		t.Fatalf("Rollback() after failed commit error = %v", err)
	}
	work.Close(ctx)
}
