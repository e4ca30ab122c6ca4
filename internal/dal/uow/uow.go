package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	orderrepo "github.com/corray333/backend-labs/storefront/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/corray333/backend-labs/storefront/internal/dal/repositories/orderitem/postgres"
	"github.com/jackc/pgx/v5"
)

// ErrNoTransaction is returned by Commit when Begin has not succeeded.
var ErrNoTransaction = errors.New("no active transaction")

// UnitOfWork scopes the order repositories to one connection and one transaction.
// Call Close when done; it is safe on every path.
type UnitOfWork struct {
	client        *postgres.Client
	conn          postgres.Conn
	tx            pgx.Tx
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
}

func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *UnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func NewUnitOfWork(client *postgres.Client) *UnitOfWork {
	return &UnitOfWork{
		client: client,
	}
}

// Begin acquires a connection and opens a transaction on it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	conn, err := u.client.Acquire(ctx)
	if err != nil {
		return err
	}
	u.conn = conn

	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	// Repositories only ever see the transaction.
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)

	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}

	tx := u.tx
	u.tx = nil
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Rollback aborts the active transaction. It is a no-op when there is none.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	tx := u.tx
	u.tx = nil
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// Close releases the connection. It is a no-op when none was acquired.
func (u *UnitOfWork) Close(ctx context.Context) {
	if u.conn == nil {
		return
	}

	u.client.Release(ctx, u.conn)
	u.conn = nil
}
