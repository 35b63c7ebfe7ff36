package datalayer

import (
	"log/slog"

	"github.com/unifiedtracking/datalayer/pkg/datalayer/observability"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/queue"
)

// Option configures a DataLayer at construction time.
type Option func(*settings)

type settings struct {
	queue   queue.Queue
	env     Environment
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	nullify map[string][]string
}

// WithQueue sets the event queue the sequencer appends to.
// Defaults to a fresh in-memory queue. Wrap with queue.Tee to mirror the
// emitted stream into a queue.SQLiteJournal.
func WithQueue(q queue.Queue) Option {
	return func(s *settings) {
		s.queue = q
	}
}

// WithEnvironment sets the host environment capability. Without it the data
// layer runs headless: emits return bare envelopes and nothing is queued.
func WithEnvironment(env Environment) Option {
	return func(s *settings) {
		s.env = env
	}
}

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder. Defaults to NoopMetrics.
func WithMetrics(metrics observability.MetricsRecorder) Option {
	return func(s *settings) {
		s.metrics = metrics
	}
}

// WithSpans sets the trace span manager. Defaults to NoopSpanManager.
func WithSpans(spans observability.SpanManager) Option {
	return func(s *settings) {
		s.spans = spans
	}
}

// WithNullifiedProperties replaces the default nested-nullification
// allow-list ({"default": ["error"]}).
func WithNullifiedProperties(properties map[string][]string) Option {
	return func(s *settings) {
		s.nullify = properties
	}
}
