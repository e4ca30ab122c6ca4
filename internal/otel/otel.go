package otel

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/corray333/backend-labs/storefront/internal/config"
	"github.com/corray333/backend-labs/storefront/internal/jaeger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

type OtelController struct {
	traceProvider *sdktrace.TracerProvider
}

// InitOtel builds the tracer provider for the configured exporter and installs it globally
// together with the W3C trace context and baggage propagators.
// With the "none" exporter spans are still created but never leave the process.
func InitOtel(cfg config.OtelConfig) (*OtelController, error) {
	exporter, err := newExporter(cfg, os.Stdout)
	if err != nil {
		return nil, err
	}

	tp := newTracerProvider(cfg.ServiceName, exporter)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &OtelController{
		traceProvider: tp,
	}, nil
}

func MustInitOtel(cfg config.OtelConfig) *OtelController {
	o, err := InitOtel(cfg)
	if err != nil {
		panic(err)
	}

	return o
}

func newExporter(cfg config.OtelConfig, stdout io.Writer) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case config.ExporterNone, "":
		return nil, nil
	case config.ExporterStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(stdout))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}

		return exp, nil
	case config.ExporterJaeger:
		exp, err := jaeger.NewJaeger(cfg.JaegerEndpoint)
		if err != nil {
			return nil, err
		}

		return exp, nil
	default:
		return nil, fmt.Errorf("unknown span exporter %q", cfg.Exporter)
	}
}

func newTracerProvider(serviceName string, exporter sdktrace.SpanExporter) *sdktrace.TracerProvider {
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	return sdktrace.NewTracerProvider(opts...)
}

// Shutdown flushes pending spans and stops the exporter.
func (o *OtelController) Shutdown(ctx context.Context) error {
	if err := o.traceProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}

	return nil
}
