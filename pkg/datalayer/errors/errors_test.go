package errors_test

import (
	"fmt"
	"strings"
	"testing"

	dlerrors "github.com/unifiedtracking/datalayer/pkg/datalayer/errors"
)

func TestValidationErrorAggregation(t *testing.T) {
	verr := &dlerrors.ValidationError{Param: "productData"}
	if verr.HasFailures() {
		t.Error("fresh ValidationError should have no failures")
	}

	verr.Add(nil) // ignored
	verr.Add(fmt.Errorf("brand is required"))
	verr.AddMessage("category must be a non-empty list")

	if !verr.HasFailures() {
		t.Error("expected failures after Add")
	}
	if len(verr.Messages) != 2 {
		t.Errorf("expected 2 messages, got %d", len(verr.Messages))
	}

	msg := verr.Error()
	if msg == "" {
		t.Fatal("empty error message")
	}
	for _, want := range []string{"productData", "brand is required", "category must be a non-empty list"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message %q missing %q", msg, want)
		}
	}
}

func TestSingleMessageFormat(t *testing.T) {
	verr := &dlerrors.ValidationError{Param: "color"}
	verr.AddMessage("color is required")

	want := "color validation failed: color is required"
	if verr.Error() != want {
		t.Errorf("got %q, want %q", verr.Error(), want)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want dlerrors.Severity
	}{
		{"configuration", &dlerrors.ConfigurationError{Message: "siteInfo is required"}, dlerrors.SeverityFatal},
		{"not initialized", &dlerrors.NotInitializedError{}, dlerrors.SeverityFatal},
		{"validation", &dlerrors.ValidationError{Param: "p", Messages: []string{"m"}}, dlerrors.SeveritySuppressed},
		{"not found", &dlerrors.NotFoundError{ChildSKU: "x"}, dlerrors.SeverityWarning},
		{"wrapped fatal", fmt.Errorf("init: %w", &dlerrors.NotInitializedError{}), dlerrors.SeverityFatal},
		{"unknown", fmt.Errorf("boom"), dlerrors.SeveritySuppressed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dlerrors.Classify(tt.err); got != tt.want {
				t.Errorf("Classify = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsFatal(t *testing.T) {
	if !dlerrors.IsFatal(&dlerrors.ConfigurationError{Message: "m"}) {
		t.Error("ConfigurationError should be fatal")
	}
	if dlerrors.IsFatal(&dlerrors.NotFoundError{ChildSKU: "x"}) {
		t.Error("NotFoundError should not be fatal")
	}
	if dlerrors.IsFatal(nil) {
		t.Error("nil should not be fatal")
	}
}
