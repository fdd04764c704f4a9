// Package telemetry provides OpenTelemetry tracing for level generation.
package telemetry

import (
	"context"
	"os"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	serviceName    = "mapforge"
	serviceVersion = "0.1.0"
	tracerPrefix   = serviceName + "/"
)

// Options select where spans are exported. Empty fields fall back to the
// standard OTEL_EXPORTER_OTLP_* environment variables.
type Options struct {
	// Endpoint is the collector base URL, e.g. https://api.honeycomb.io.
	Endpoint string
	// Headers are sent with every export request.
	Headers map[string]string
}

// HoneycombHeaders builds the export headers for a Honeycomb API key.
// It returns nil when the key is empty.
func HoneycombHeaders(apiKey, dataset string) map[string]string {
	if apiKey == "" {
		return nil
	}
	h := map[string]string{"x-honeycomb-team": apiKey}
	if dataset != "" {
		h["x-honeycomb-dataset"] = dataset
	}
	return h
}

func (o Options) exporterOptions() []otlptracehttp.Option {
	var opts []otlptracehttp.Option
	if o.Endpoint != "" {
		opts = append(opts, otlptracehttp.WithEndpointURL(o.Endpoint))
	}
	if len(o.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(o.Headers))
	}
	return opts
}

// Setup installs a global tracer provider with an OTLP HTTP exporter and
// returns its shutdown function, which should be called on exit.
func Setup(ctx context.Context, o Options) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx, o.exporterOptions()...)
	if err != nil {
		return nil, err
	}

	// Built without merging resource.Default() to avoid schema URL conflicts.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
			attribute.String("telemetry.sdk.language", "go"),
			attribute.String("host.name", hostname()),
			attribute.String("os.type", runtime.GOOS),
			attribute.String("process.runtime.version", runtime.Version()),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

// Tracer returns a named tracer for the given component.
func Tracer(name string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(tracerPrefix + name)
}

// NoopTracer returns a no-op tracer for use when telemetry is disabled.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(tracerPrefix + "noop")
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}
