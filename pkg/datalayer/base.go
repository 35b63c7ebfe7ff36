package datalayer

import (
	"context"
	"log/slog"
	"strings"

	dlerrors "github.com/unifiedtracking/datalayer/pkg/datalayer/errors"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/format"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/observability"
)

// base is the shared helper composed into every domain module: the
// sequencer handle plus the central log-and-suppress policy for per-event
// failures.
type base struct {
	seq     *Sequencer
	logger  *slog.Logger
	metrics observability.MetricsRecorder
}

// push emits through the sequencer and applies the propagation policy:
// setup errors surface untouched, everything else is logged once here so
// call sites can ignore the returned error safely.
func (b *base) push(ctx context.Context, operation, eventName string, data Event) (Event, error) {
	envelope, err := b.seq.Emit(ctx, eventName, data)
	if err != nil && !dlerrors.IsFatal(err) {
		observability.LogSuppressed(b.logger, operation, err)
	}
	return envelope, err
}

// reject records a validation failure. The event is not emitted.
func (b *base) reject(ctx context.Context, operation string, err error) error {
	b.metrics.RecordValidationFailure(ctx, operation)
	observability.LogSuppressed(b.logger, operation, err)
	return err
}

// pageView builds the full default.page context for view-class events,
// reading path, title, and URL from the environment when present.
func (b *base) pageView(pageType, action string) map[string]any {
	page := map[string]any{
		"type":   pageType,
		"action": action,
		"path":   "",
		"title":  "",
		"url":    "",
	}
	if env := b.seq.env; env != nil {
		page["path"] = env.PagePath()
		page["title"] = format.Normalize(env.PageTitle())
		page["url"] = env.PageURL()
	}
	return page
}

// pageRef builds the minimal default.page context for interaction events
// that carry no location fields.
func pageRef(pageType, action string) map[string]any {
	return map[string]any{
		"type":   pageType,
		"action": action,
	}
}

// pageNamed is pageRef plus the page name some cart events carry.
func pageNamed(pageType, action, name string) map[string]any {
	page := pageRef(pageType, action)
	page["name"] = name
	return page
}

// withDefault wraps a page object into the default block of a payload.
func withDefault(page map[string]any, rest Event) Event {
	payload := Event{
		"default": map[string]any{"page": page},
	}
	for k, v := range rest {
		payload[k] = v
	}
	return payload
}

// pathSlug returns the last non-empty segment of the environment page path,
// used as the listing name fallback.
func (b *base) pathSlug() string {
	if b.seq.env == nil {
		return ""
	}
	segments := strings.Split(b.seq.env.PagePath(), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
