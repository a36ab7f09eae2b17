// Package tracing configura OpenTelemetry para el servicio: proveedor OTLP/gRPC cuando hay
// colector configurado y proveedor noop en caso contrario.
package tracing

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/inventory-service/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "github.com/jhoicas/inventory-service"

// ShutdownFunc vacía y cierra el exportador.
type ShutdownFunc func(ctx context.Context) error

// Init instala el TracerProvider global y devuelve el tracer del servicio.
func Init(ctx context.Context, app config.AppConfig, cfg config.OTelConfig) (trace.Tracer, ShutdownFunc, error) {
	if !cfg.Enabled() {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		return tp.Tracer(instrumentationName), func(context.Context) error { return nil }, nil
	}

	exp, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("otlp exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", app.Name),
		attribute.String("service.version", app.Version),
		attribute.String("deployment.environment", app.Env),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)

	return tp.Tracer(instrumentationName), tp.Shutdown, nil
}

// Middleware abre un span de servidor por request y lo propaga en c.UserContext().
// Los errores se resuelven con el ErrorHandler de la app antes de leer el status final.
func Middleware(tracer trace.Tracer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, span := tracer.Start(c.UserContext(), c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", c.Method()),
				attribute.String("http.target", c.OriginalURL()),
			),
		)
		defer span.End()
		c.SetUserContext(ctx)

		if err := c.Next(); err != nil {
			span.RecordError(err)
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		if route := c.Route(); route != nil && route.Path != "" && route.Path != "/" {
			span.SetName(c.Method() + " " + route.Path)
			span.SetAttributes(attribute.String("http.route", route.Path))
		}
		status := c.Response().StatusCode()
		span.SetAttributes(attribute.Int("http.status_code", status))
		if status >= fiber.StatusInternalServerError {
			span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
		}
		return nil
	}
}
