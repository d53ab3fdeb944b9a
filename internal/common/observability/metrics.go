package observability

import (
	"context"
	"errors"
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type Options struct {
	ServiceName    string
	TracingEnabled bool
	// Registerer receives the prometheus exporter. Nil means the default registry.
	Registerer promclient.Registerer
	// SpanProcessors are attached to the tracer provider when tracing is enabled.
	SpanProcessors []sdktrace.SpanProcessor
}

type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer

	jobCounter      otelmetric.Int64Counter
	jobDuration     otelmetric.Float64Histogram
	recommendations otelmetric.Int64Counter
}

func New(opts Options) (*Observability, error) {
	exporterOpts := []prometheus.Option{}
	if opts.Registerer != nil {
		exporterOpts = append(exporterOpts, prometheus.WithRegisterer(opts.Registerer))
	}
	exporter, err := prometheus.New(exporterOpts...)
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	res := resource.NewSchemaless(attribute.String("service.name", opts.ServiceName))

	provider := metric.NewMeterProvider(metric.WithReader(exporter), metric.WithResource(res))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(opts.ServiceName)

	jobCounter, err := meter.Int64Counter(
		"jobs.processed",
		otelmetric.WithDescription("Number of jobs processed"),
	)
	if err != nil {
		return nil, err
	}

	jobDuration, err := meter.Float64Histogram(
		"jobs.duration",
		otelmetric.WithDescription("Job processing duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	recommendations, err := meter.Int64Counter(
		"advisor.recommendations",
		otelmetric.WithDescription("Recommendations produced by the resolver"),
	)
	if err != nil {
		return nil, err
	}

	o := &Observability{
		meterProvider:   provider,
		jobCounter:      jobCounter,
		jobDuration:     jobDuration,
		recommendations: recommendations,
		tracer:          noop.NewTracerProvider().Tracer(opts.ServiceName),
	}

	if opts.TracingEnabled {
		tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}
		for _, sp := range opts.SpanProcessors {
			tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
		}
		o.tracerProvider = sdktrace.NewTracerProvider(tpOpts...)
		otel.SetTracerProvider(o.tracerProvider)
		o.tracer = o.tracerProvider.Tracer(opts.ServiceName)
	}

	return o, nil
}

// Tracer never returns nil; with tracing disabled spans are no-ops.
func (o *Observability) Tracer() trace.Tracer {
	if o == nil || o.tracer == nil {
		return noop.NewTracerProvider().Tracer("")
	}
	return o.tracer
}

func (o *Observability) RecordJobProcessed(ctx context.Context, status string) {
	if o != nil && o.jobCounter != nil {
		o.jobCounter.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordJobDuration(ctx context.Context, duration time.Duration, status string) {
	if o != nil && o.jobDuration != nil {
		o.jobDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

func (o *Observability) RecordRecommendation(ctx context.Context, appType, outcome string) {
	if o != nil && o.recommendations != nil {
		o.recommendations.Add(ctx, 1, otelmetric.WithAttributes(
			attribute.String("app_type", appType),
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil {
		return nil
	}
	var errs []error
	if o.tracerProvider != nil {
		errs = append(errs, o.tracerProvider.Shutdown(ctx))
	}
	if o.meterProvider != nil {
		errs = append(errs, o.meterProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
