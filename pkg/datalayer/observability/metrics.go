package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records data layer metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEmit records one event emission with its duration and outcome.
	RecordEmit(ctx context.Context, eventName string, duration time.Duration, err error)

	// RecordValidationFailure records input that was rejected before emit.
	RecordValidationFailure(ctx context.Context, operation string)

	// RecordNullification records how many stale fields were explicitly
	// nulled in an emitted event.
	RecordNullification(ctx context.Context, eventName string, fields int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	emits              metric.Int64Counter
	emitLatency        metric.Float64Histogram
	emitErrors         metric.Int64Counter
	validationFailures metric.Int64Counter
	nulledFields       metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("datalayer")

	emits, err := meter.Int64Counter("datalayer.event.emits",
		metric.WithDescription("Number of events emitted to the queue"),
	)
	if err != nil {
		return nil, err
	}

	emitLatency, err := meter.Float64Histogram("datalayer.event.latency_ms",
		metric.WithDescription("Event assembly and append latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	emitErrors, err := meter.Int64Counter("datalayer.event.errors",
		metric.WithDescription("Number of failed emit attempts"),
	)
	if err != nil {
		return nil, err
	}

	validationFailures, err := meter.Int64Counter("datalayer.validation.failures",
		metric.WithDescription("Number of inputs rejected by validation"),
	)
	if err != nil {
		return nil, err
	}

	nulledFields, err := meter.Int64Histogram("datalayer.event.nulled_fields",
		metric.WithDescription("Stale fields explicitly nulled per event"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		emits:              emits,
		emitLatency:        emitLatency,
		emitErrors:         emitErrors,
		validationFailures: validationFailures,
		nulledFields:       nulledFields,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEmit records one event emission.
func (m *otelMetrics) RecordEmit(ctx context.Context, eventName string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("event", eventName),
	}

	m.emits.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.emitLatency.Record(ctx, float64(duration.Microseconds())/1000.0, metric.WithAttributes(attrs...))

	if err != nil {
		m.emitErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordValidationFailure records a rejected input.
func (m *otelMetrics) RecordValidationFailure(ctx context.Context, operation string) {
	m.validationFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordNullification records the nulled-field count for an event.
func (m *otelMetrics) RecordNullification(ctx context.Context, eventName string, fields int64) {
	m.nulledFields.Record(ctx, fields, metric.WithAttributes(
		attribute.String("event", eventName),
	))
}
