// Package otel wires OpenTelemetry tracing for ticketdesk commands.
package otel

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/ticketdesk/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Env is the tracing configuration read from the environment.
type Env struct {
	Endpoint    string  `env:"TICKETDESK_OTEL_ENDPOINT"`
	Enabled     string  `env:"TICKETDESK_OTEL_ENABLED"`
	SampleRatio float64 `env:"TICKETDESK_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// active reports whether tracing should be registered at all.
func (e Env) active() bool {
	if strings.EqualFold(strings.TrimSpace(e.Enabled), "false") {
		return false
	}
	return strings.TrimSpace(e.Endpoint) != ""
}

func (e Env) sampler() sdktrace.Sampler {
	if e.SampleRatio >= 1 {
		return sdktrace.AlwaysSample()
	}
	if e.SampleRatio <= 0 {
		return sdktrace.NeverSample()
	}
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(e.SampleRatio))
}

// Setup initialises OpenTelemetry tracing for the given service.
//
// Tracing is opt-in: when TICKETDESK_OTEL_ENDPOINT is empty or
// TICKETDESK_OTEL_ENABLED is "false", Setup returns a no-op shutdown
// function and no global provider is registered.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	var env Env
	if err := config.ParseEnv(&env); err != nil {
		return noop, err
	}
	return SetupWithEnv(ctx, serviceName, env)
}

// SetupWithEnv is Setup with an explicit configuration.
func SetupWithEnv(ctx context.Context, serviceName string, env Env) (func(context.Context) error, error) {
	if !env.active() {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(strings.TrimSpace(env.Endpoint)),
	)
	if err != nil {
		return noop, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("build otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(env.sampler()),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

func noop(context.Context) error { return nil }
