// Package observability provides structured logging, metrics, and tracing
// for the data layer.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
// Every log helper tolerates a nil logger, so call sites never need a guard.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds session context to a logger.
// Returns a new logger with site and session_id fields.
func EnrichLogger(logger *slog.Logger, siteName, sessionID string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("site", siteName),
		slog.String("session_id", sessionID),
	)
}

// LogInit logs successful data layer initialization.
func LogInit(logger *slog.Logger, siteName, env string) {
	if logger == nil {
		return
	}
	logger.Info("datalayer initialized",
		slog.String("site", siteName),
		slog.String("env", env),
	)
}

// LogEmit logs a successful event emission.
func LogEmit(logger *slog.Logger, eventName string, firstEvent bool, nulledFields int) {
	if logger == nil {
		return
	}
	logger.Debug("event emitted",
		slog.String("event", eventName),
		slog.Bool("first_event", firstEvent),
		slog.Int("nulled_fields", nulledFields),
	)
}

// LogHeadlessEmit logs an emit that was skipped because no queue-bearing
// environment exists (server render path).
func LogHeadlessEmit(logger *slog.Logger, eventName string) {
	if logger == nil {
		return
	}
	logger.Debug("headless environment, event returned without queue append",
		slog.String("event", eventName),
	)
}

// LogSuppressed logs a per-event failure that was contained at the module
// boundary. The event is not emitted; the host application continues.
func LogSuppressed(logger *slog.Logger, operation string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("event suppressed",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// LogCartMiss logs a cart mutation that targeted an absent line item.
// The operation is a tolerated no-op.
func LogCartMiss(logger *slog.Logger, operation, childSKU string) {
	if logger == nil {
		return
	}
	logger.Warn("cart item not found",
		slog.String("operation", operation),
		slog.String("child_sku", childSKU),
	)
}

// LogQueueError logs a failed queue append (non-fatal to the host).
func LogQueueError(logger *slog.Logger, eventName string, err error) {
	if logger == nil {
		return
	}
	logger.Error("queue append failed",
		slog.String("event", eventName),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed duration.
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
