package errors

import (
	"fmt"
	"strings"
)

// ConfigurationError indicates the data layer was initialized with an
// incomplete or invalid configuration.
type ConfigurationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("datalayer configuration error: %s", e.Message)
}

// NotInitializedError indicates an emit was attempted before Init supplied
// the required site information.
type NotInitializedError struct {
	EventName string
}

// Error implements the error interface.
func (e *NotInitializedError) Error() string {
	if e.EventName != "" {
		return fmt.Sprintf("datalayer not initialized: cannot emit %q before Init", e.EventName)
	}
	return "datalayer not initialized: call Init with site info before emitting events"
}

// ValidationError aggregates every field-level failure found while checking
// one input value, so a caller debugging bad data sees all problems at once.
type ValidationError struct {
	// Param names the validated parameter (e.g. "productData").
	Param string

	// Messages holds one entry per failed check.
	Messages []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Messages) == 1 {
		return fmt.Sprintf("%s validation failed: %s", e.Param, e.Messages[0])
	}
	return fmt.Sprintf("%s validation failed:\n  + %s", e.Param, strings.Join(e.Messages, "\n  + "))
}

// Add records a failed check. A nil err is ignored.
func (e *ValidationError) Add(err error) {
	if err == nil {
		return
	}
	e.Messages = append(e.Messages, err.Error())
}

// AddMessage records a failed check from a plain string.
func (e *ValidationError) AddMessage(msg string) {
	e.Messages = append(e.Messages, msg)
}

// HasFailures reports whether any check failed.
func (e *ValidationError) HasFailures() bool {
	return len(e.Messages) > 0
}

// NotFoundError indicates a cart line lookup by SKU found nothing.
// Operations treat this as a tolerated race with the UI, not a failure.
type NotFoundError struct {
	ChildSKU string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cart item with SKU %q not found", e.ChildSKU)
}
