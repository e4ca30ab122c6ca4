package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/corray333/backend-labs/storefront/internal/config"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	"github.com/corray333/backend-labs/storefront/internal/otel"
	"github.com/corray333/backend-labs/storefront/internal/service/services/customersvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/ordersvc"
	"github.com/corray333/backend-labs/storefront/internal/service/services/productsvc"
	"github.com/corray333/backend-labs/storefront/internal/transport/diagnostics"
	httptransport "github.com/corray333/backend-labs/storefront/internal/transport/http"
	"golang.org/x/sync/errgroup"
)

// App represents the application.
type App struct {
	cfg            *config.Config
	otel           *otel.OtelController
	postgresClient *postgres.Client
	transport      *httptransport.HTTPTransport
	diagnostics    *diagnostics.Server
}

// MustNewApp creates a new application.
func MustNewApp(cfg *config.Config) *App {
	otelController := otel.MustInitOtel(cfg.Otel)

	postgresClient := postgres.MustNewClient(cfg.Postgres)

	customerSvc := customersvc.MustNewCustomerService(
		customersvc.WithPostgresClient(postgresClient),
	)
	productSvc := productsvc.MustNewProductService(
		productsvc.WithPostgresClient(postgresClient),
	)
	orderSvc := ordersvc.MustNewOrderService(
		ordersvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(
		cfg.Server.HTTP,
		cfg.Otel.ServiceName,
		customerSvc,
		productSvc,
		orderSvc,
	)
	transport.RegisterRoutes()

	a := &App{
		cfg:            cfg,
		otel:           otelController,
		postgresClient: postgresClient,
		transport:      transport,
	}
	if cfg.Diagnostics.Enabled {
		a.diagnostics = diagnostics.NewServer(cfg.Diagnostics.Port, postgresClient)
	}

	return a
}

// Run serves until ctx is done, SIGINT/SIGTERM arrives or a server fails,
// then shuts every server down and flushes pending spans.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(a.transport.Run)
	if a.diagnostics != nil {
		g.Go(a.diagnostics.Start)
	}

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.HTTP.ShutdownTimeout)
		defer cancel()

		if err := a.transport.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		} else {
			slog.Info("HTTP server stopped gracefully")
		}

		if a.diagnostics != nil {
			if err := a.diagnostics.Shutdown(shutdownCtx); err != nil {
				slog.Error("Diagnostics server shutdown error", "error", err)
			}
		}

		return nil
	})

	err := g.Wait()

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.cfg.Server.HTTP.ShutdownTimeout)
	defer cancel()
	if shutdownErr := a.otel.Shutdown(flushCtx); shutdownErr != nil {
		slog.Error("Tracer shutdown error", "error", shutdownErr)
	}

	slog.Info("Application shutdown complete")

	return err
}
