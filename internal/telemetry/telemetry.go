// Package telemetry installs the OpenTelemetry tracer provider that records
// the spans of a run.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName is reported as service.name on every span.
const ServiceName = "uetest"

// Options selects the span exporters. With neither set, tracing is disabled.
type Options struct {
	// File receives one JSON document per finished span.
	File string
	// OTLPEndpoint is an OTLP/gRPC collector, as host:port or URL.
	OTLPEndpoint string
	Version      string
}

// Enabled reports whether any exporter is configured.
func (o Options) Enabled() bool {
	return o.File != "" || o.OTLPEndpoint != ""
}

// Telemetry owns the tracer provider and the trace file.
type Telemetry struct {
	provider *sdktrace.TracerProvider
	file     *os.File
}

// New creates the tracer provider for opts. A disabled configuration yields
// a Telemetry whose tracers are no-ops.
func New(ctx context.Context, opts Options) (*Telemetry, error) {
	if !opts.Enabled() {
		return &Telemetry{}, nil
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", opts.Version),
	)
	providerOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	t := &Telemetry{}
	if opts.File != "" {
		f, err := os.Create(opts.File)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace file: %w", err)
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(f))
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to create trace file exporter: %w", err)
		}
		t.file = f
		providerOpts = append(providerOpts, sdktrace.WithSyncer(exp))
	}
	if opts.OTLPEndpoint != "" {
		exp, err := otlptracegrpc.New(ctx, endpointOptions(opts.OTLPEndpoint)...)
		if err != nil {
			if t.file != nil {
				_ = t.file.Close()
			}
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
		providerOpts = append(providerOpts, sdktrace.WithBatcher(exp))
	}

	t.provider = sdktrace.NewTracerProvider(providerOpts...)
	return t, nil
}

func endpointOptions(endpoint string) []otlptracegrpc.Option {
	if strings.Contains(endpoint, "://") {
		return []otlptracegrpc.Option{otlptracegrpc.WithEndpointURL(endpoint)}
	}
	return []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	}
}

// Tracer returns a named tracer from the provider.
func (t *Telemetry) Tracer(name string) trace.Tracer {
	if t == nil || t.provider == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return t.provider.Tracer(name)
}

// Shutdown flushes pending spans and closes the trace file.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	err := t.provider.Shutdown(ctx)
	if t.file != nil {
		err = errors.Join(err, t.file.Close())
	}
	return err
}
