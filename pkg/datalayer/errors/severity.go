// Package errors defines the data layer error taxonomy and its propagation
// policy.
//
// Two classes of failure exist:
//   - Setup failures (ConfigurationError, NotInitializedError) represent
//     integrator misuse and must escape to the caller.
//   - Per-event failures (ValidationError, NotFoundError) are contained at
//     the module boundary: logged, counted, and suppressed so that analytics
//     instrumentation can never break the host application's primary flow.
package errors

import "errors"

// Severity describes how an error should propagate.
type Severity int

const (
	// SeverityFatal means the error must surface to the integrator.
	// Examples: missing site info, emit before Init.
	SeverityFatal Severity = iota

	// SeveritySuppressed means the error is logged and swallowed; the
	// event is simply not emitted.
	// Examples: malformed product input.
	SeveritySuppressed

	// SeverityWarning means the operation is a tolerated no-op.
	// Examples: removing a cart line that is already gone.
	SeverityWarning
)

// String returns the severity name.
func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "fatal"
	case SeveritySuppressed:
		return "suppressed"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Classify determines how an error should be handled.
func Classify(err error) Severity {
	if err == nil {
		return SeveritySuppressed
	}

	var cfgErr *ConfigurationError
	if errors.As(err, &cfgErr) {
		return SeverityFatal
	}

	var initErr *NotInitializedError
	if errors.As(err, &initErr) {
		return SeverityFatal
	}

	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return SeverityWarning
	}

	// Validation and anything unrecognized: suppress. Analytics failures
	// must never crash the host.
	return SeveritySuppressed
}

// IsFatal reports whether the error must escape to the integrator.
func IsFatal(err error) bool {
	return err != nil && Classify(err) == SeverityFatal
}
