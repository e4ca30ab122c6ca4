package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corray333/backend-labs/storefront/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// GenericConn is an interface that works with both a connection and a pgx.Tx.
type GenericConn interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// Conn is a single database connection owned by one request.
type Conn interface {
	GenericConn
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// ConnectFunc opens a new connection.
type ConnectFunc func(ctx context.Context) (Conn, error)

// Client represents a Postgres client.
// It holds no connections; every call opens its own and closes it when done.
type Client struct {
	connect ConnectFunc
}

// NewClient creates a client that opens connections with connect.
func NewClient(connect ConnectFunc) *Client {
	return &Client{
		connect: connect,
	}
}

// NewClientFromConfig creates a client for the configured connection string.
func NewClientFromConfig(cfg config.PostgresConfig) (*Client, error) {
	connConfig, err := pgx.ParseConfig(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if cfg.ConnectTimeout > 0 {
		connConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	return NewClient(func(ctx context.Context) (Conn, error) {
		conn, err := pgx.ConnectConfig(ctx, connConfig)
		if err != nil {
			return nil, err
		}

		return conn, nil
	}), nil
}

// MustNewClient creates a new Postgres client and, when configured, checks connectivity.
func MustNewClient(cfg config.PostgresConfig) *Client {
	client, err := NewClientFromConfig(cfg)
	if err != nil {
		panic(err)
	}

	if cfg.PingOnStart {
		if err := client.Ping(context.Background()); err != nil {
			panic(err)
		}
		slog.Info("Postgres reachable")
	}

	return client
}

// Acquire opens a connection. The caller must hand it back with Release.
func (c *Client) Acquire(ctx context.Context) (Conn, error) {
	conn, err := c.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return conn, nil
}

// Release closes a connection obtained from Acquire.
func (c *Client) Release(ctx context.Context, conn Conn) {
	if err := conn.Close(context.WithoutCancel(ctx)); err != nil {
		slog.ErrorContext(ctx, "Error closing database connection", "error", err)
	}
}

// WithConn runs fn on a fresh connection and closes it on every exit path.
func (c *Client) WithConn(ctx context.Context, fn func(ctx context.Context, conn Conn) error) error {
	conn, err := c.Acquire(ctx)
	if err != nil {
		return err
	}
	defer c.Release(ctx, conn)

	return fn(ctx, conn)
}

// Ping opens a connection and checks the server answers.
func (c *Client) Ping(ctx context.Context) error {
	return c.WithConn(ctx, func(ctx context.Context, conn Conn) error {
		if err := conn.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}

		return nil
	})
}
