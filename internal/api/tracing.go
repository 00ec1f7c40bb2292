package api

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/sajjad-MoBe/fetchprobe/outcome"
)

// Tracer manages distributed tracing for the probe service
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// NewTracer creates a new tracer exporting to a Jaeger collector
func NewTracer(serviceName string, endpoint string) (*Tracer, error) {
	exporter, err := jaeger.New(
		jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(endpoint)),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String(serviceName),
		)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Tracer{
		tracer:   tp.Tracer(serviceName),
		provider: tp,
	}, nil
}

// Shutdown flushes pending spans and stops the provider
func (t *Tracer) Shutdown(ctx context.Context) error {
	return t.provider.Shutdown(ctx)
}

// TracingMiddleware adds tracing to requests
func (t *Tracer) TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		// Continue a trace started by the caller, if any
		ctx = otel.GetTextMapPropagator().Extract(ctx, propagation.HeaderCarrier(r.Header))

		ctx, span := t.tracer.Start(ctx, r.URL.Path)
		defer span.End()

		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.url", r.URL.String()),
			attribute.String("http.user_agent", r.UserAgent()),
		)

		wrw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrw, r.WithContext(ctx))

		span.SetAttributes(
			attribute.Int("http.status_code", wrw.statusCode),
		)
	})
}

// TraceFetch traces one fetch operation
func (t *Tracer) TraceFetch(ctx context.Context, url string, fn func(context.Context) outcome.Outcome) outcome.Outcome {
	ctx, span := t.tracer.Start(ctx, "fetch")
	defer span.End()

	span.SetAttributes(attribute.String("fetch.url", url))

	out := fn(ctx)

	if ferr := out.Err(); ferr != nil {
		span.SetAttributes(attribute.String("fetch.kind", string(ferr.Kind)))
		span.RecordError(ferr)
		span.SetStatus(codes.Error, ferr.Message)
	}

	return out
}
