package productsvc

import (
	"context"

	"github.com/corray333/backend-labs/storefront/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/backend-labs/storefront/internal/dal/postgres"
	productrepo "github.com/corray333/backend-labs/storefront/internal/dal/repositories/product/postgres"
	"github.com/corray333/backend-labs/storefront/internal/service/models/product"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/corray333/backend-labs/storefront/internal/service/services/productsvc")

// ProductService serves the product catalogue.
type ProductService struct {
	pgClient *postgres.Client
}

type option func(*ProductService)

func MustNewProductService(opts ...option) *ProductService {
	s := &ProductService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.pgClient == nil {
		panic("productsvc: postgres client is required")
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *ProductService) {
		s.pgClient = pgClient
	}
}

func (s *ProductService) repo(conn postgres.GenericConn) iproductrepo.IProductRepository {
	return productrepo.NewPostgresProductRepository(conn)
}

// ListProducts returns products with their supplier name, ordered by product name.
func (s *ProductService) ListProducts(ctx context.Context) ([]product.Product, error) {
	ctx, span := tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	var products []product.Product
	err := s.pgClient.WithConn(ctx, func(ctx context.Context, conn postgres.Conn) error {
		var err error
		products, err = s.repo(conn).List(ctx)

		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	return products, nil
}
