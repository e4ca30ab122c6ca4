package httptransport

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/corray333/backend-labs/storefront/internal/config"
	"github.com/corray333/backend-labs/storefront/internal/metrics"
	"github.com/corray333/backend-labs/storefront/internal/service/models/customer"
	"github.com/corray333/backend-labs/storefront/internal/service/models/order"
	"github.com/corray333/backend-labs/storefront/internal/service/models/product"
	createcustomer "github.com/corray333/backend-labs/storefront/internal/transport/http/create_customer"
	createorder "github.com/corray333/backend-labs/storefront/internal/transport/http/create_order"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/index"
	listcustomers "github.com/corray333/backend-labs/storefront/internal/transport/http/list_customers"
	listproducts "github.com/corray333/backend-labs/storefront/internal/transport/http/list_products"
	"github.com/corray333/backend-labs/storefront/internal/transport/http/respond"
	"github.com/corray333/backend-labs/storefront/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/otel"
)

const tracerName = "github.com/corray333/backend-labs/storefront/internal/transport/http"

type customerService interface {
	ListCustomers(ctx context.Context) ([]customer.Customer, error)
	CreateCustomer(ctx context.Context, c customer.Customer) (customer.Customer, error)
}

type productService interface {
	ListProducts(ctx context.Context) ([]product.Product, error)
}

type orderService interface {
	CreateOrder(ctx context.Context, o order.Order) (int64, error)
}

// handlerFunc is an endpoint that reports failure by returning an error.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

type HTTPTransport struct {
	server    *http.Server
	router    *chi.Mux
	title     string
	customers customerService
	products  productService
	orders    orderService
}

func NewHTTPTransport(
	cfg config.HTTPConfig,
	title string,
	customers customerService,
	products productService,
	orders orderService,
) *HTTPTransport {
	router := newRouter(cfg.CORS)
	server := newServer(cfg.Port, router)

	return &HTTPTransport{
		server:    server,
		router:    router,
		title:     title,
		customers: customers,
		products:  products,
		orders:    orders,
	}
}

// Handler returns the router with every middleware applied.
func (h *HTTPTransport) Handler() http.Handler {
	return h.router
}

// Run serves until Shutdown is called. A graceful shutdown is not reported as an error.
func (h *HTTPTransport) Run() error {
	slog.Info("HTTP server listening", "addr", h.server.Addr)
	if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/", h.handle(h.index))
	h.router.Route("/api", func(r chi.Router) {
		r.Get("/customers", h.handle(h.listCustomers))
		r.Post("/customers", h.handle(h.createCustomer))
		r.Get("/products", h.handle(h.listProducts))
		r.Post("/orders", h.handle(h.createOrder))
	})
}

// handle maps any endpoint error to a 500 response with the error text.
func (h *HTTPTransport) handle(fn handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			slog.ErrorContext(r.Context(), "Error handling request",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
			)
			respond.Error(w, err)
		}
	}
}

func (h *HTTPTransport) index(w http.ResponseWriter, r *http.Request) error {
	return index.Index(w, r, h.title)
}

func (h *HTTPTransport) listCustomers(w http.ResponseWriter, r *http.Request) error {
	return listcustomers.ListCustomers(w, r, h.customers)
}

func (h *HTTPTransport) createCustomer(w http.ResponseWriter, r *http.Request) error {
	return createcustomer.CreateCustomer(w, r, h.customers)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) error {
	return listproducts.ListProducts(w, r, h.products)
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) error {
	return createorder.CreateOrder(w, r, h.orders)
}

func newRouter(corsCfg config.CORSConfig) *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(trace.NewTraceMiddleware(otel.GetTracerProvider(), tracerName))
	router.Use(metrics.NewMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(middleware.Recoverer)

	c := cors.New(cors.Options{
		AllowedOrigins:   corsCfg.AllowedOrigins,
		AllowedMethods:   corsCfg.AllowedMethods,
		AllowedHeaders:   corsCfg.AllowedHeaders,
		ExposedHeaders:   corsCfg.ExposedHeaders,
		AllowCredentials: corsCfg.AllowCredentials,
		MaxAge:           corsCfg.MaxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(port int, router http.Handler) *http.Server {
	return &http.Server{
		Addr:    net.JoinHostPort("0.0.0.0", strconv.Itoa(port)),
		Handler: router,
	}
}
