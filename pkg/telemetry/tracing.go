package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const defaultEndpoint = "localhost:4318"

// Options - параметры экспорта трасс.
type Options struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string  // host:port коллектора OTLP/HTTP
	SampleRatio    float64 // доля корневых спанов, [0..1]
}

// SetupTracing настраивает OTLP/HTTP экспорт, семплинг и глобальные пропагаторы.
// Возвращает функцию корректного завершения провайдера.
func SetupTracing(ctx context.Context, opts Options) (func(context.Context) error, error) {
	opts = opts.normalized()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	// Дочерние спаны (tool.<name> внутри HTTP-запроса) наследуют решение родителя.
	traceProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(opts.SampleRatio))),
		sdktrace.WithResource(Resource(opts)),
	)

	otel.SetTracerProvider(traceProvider)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{}, propagation.Baggage{},
		),
	)

	return traceProvider.Shutdown, nil
}

// Resource - атрибуты сервиса для всех спанов процесса.
func Resource(opts Options) *resource.Resource {
	attrs := []attribute.KeyValue{semconv.ServiceName(opts.ServiceName)}
	if opts.ServiceVersion != "" {
		attrs = append(attrs, semconv.ServiceVersion(opts.ServiceVersion))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

func (o Options) normalized() Options {
	if o.Endpoint == "" {
		o.Endpoint = defaultEndpoint
	}
	if o.ServiceName == "" {
		o.ServiceName = "ecommerce-analytics"
	}
	if o.SampleRatio < 0 {
		o.SampleRatio = 0
	}
	if o.SampleRatio > 1 {
		o.SampleRatio = 1
	}
	return o
}
