package datalayer

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/unifiedtracking/datalayer/pkg/datalayer/config"
	dlerrors "github.com/unifiedtracking/datalayer/pkg/datalayer/errors"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/observability"
	"github.com/unifiedtracking/datalayer/pkg/datalayer/queue"
)

// Event is the envelope appended to the queue. The "event" key is always
// present as a string; the remaining keys are event-specific objects,
// arrays, or scalars.
type Event map[string]any

// Sequencer is the stateful core of the data layer. It assembles event
// envelopes, injects one-time session context, nulls fields that were
// present in the previous event but absent now, appends to the queue, and
// snapshots a cleaned copy of each envelope for the next diff.
//
// A Sequencer is safe for concurrent use; all mutation happens under one
// mutex so the previous-event ordering is well defined per session.
type Sequencer struct {
	mu sync.Mutex

	queue   queue.Queue
	env     Environment
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager

	site *config.SiteInfo
	user *UserInfo

	firstEventSent bool
	previous       Event

	// propertiesToNullify restricts nested nullification under a top-level
	// key to an allow-list. Other nested fields (page, user) are resupplied
	// in full on every event and must not be auto-nulled.
	propertiesToNullify map[string][]string
}

// NewSequencer creates a Sequencer. Most callers should use New, which
// wires a Sequencer into the facade and its domain modules.
func NewSequencer(q queue.Queue, env Environment, logger *slog.Logger, metrics observability.MetricsRecorder, spans observability.SpanManager) *Sequencer {
	if q == nil {
		q = queue.NewMemory()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if spans == nil {
		spans = observability.NoopSpanManager{}
	}
	return &Sequencer{
		queue:   q,
		env:     env,
		logger:  logger,
		metrics: metrics,
		spans:   spans,
		propertiesToNullify: map[string][]string{
			"default": {"error"},
		},
	}
}

// Init stores the per-session site identity and derives the session user
// state from the environment. It fails with a ConfigurationError when the
// site info is empty.
func (s *Sequencer) Init(site config.SiteInfo) error {
	if site.IsZero() {
		return &dlerrors.ConfigurationError{Message: "siteInfo is required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.site = &site

	if s.env != nil {
		identity := s.env.HashedIdentity()
		user := UserInfo{
			UserState:  "guest",
			LoginState: "anonymous",
			UEMHashed:  identity,
			SessionID:  uuid.New().String(),
		}
		if identity != "" {
			user.UserState = "customer"
			user.LoginState = "logged-in"
		}
		s.user = &user
	}

	observability.LogInit(s.logger, site.Name, site.Env)
	return nil
}

// Site returns the configured site info, if Init has run.
func (s *Sequencer) Site() (config.SiteInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.site == nil {
		return config.SiteInfo{}, false
	}
	return *s.site, true
}

// User returns the derived session user state, if any.
func (s *Sequencer) User() (UserInfo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return UserInfo{}, false
	}
	return *s.user, true
}

// Emit assembles the envelope for eventName, applies one-time context
// injection and the nullification pass, appends it to the queue, and
// returns it.
//
// The first emit of a session fails with a NotInitializedError unless Init
// has supplied site info. In headless mode (no Environment) the bare
// envelope is returned without queue append or sequencing.
func (s *Sequencer) Emit(ctx context.Context, eventName string, eventData Event) (Event, error) {
	done := observability.TimedOperation()
	ctx, span := s.spans.StartEmitSpan(ctx, eventName)

	envelope, err := s.emit(ctx, eventName, eventData)

	s.spans.EndSpanWithError(span, err)
	s.metrics.RecordEmit(ctx, eventName, done(), err)
	return envelope, err
}

func (s *Sequencer) emit(ctx context.Context, eventName string, eventData Event) (Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Events must not go out schema-incomplete: the first event of the
	// session carries the site context, so it cannot precede Init.
	if !s.firstEventSent && s.site == nil {
		return nil, &dlerrors.NotInitializedError{EventName: eventName}
	}

	// Headless fallback: no host to hold a queue, return the bare envelope.
	if s.env == nil {
		envelope := Event{"event": eventName}
		for k, v := range eventData {
			envelope[k] = v
		}
		observability.LogHeadlessEmit(s.logger, eventName)
		return envelope, nil
	}

	payload := make(Event, len(eventData)+1)
	for k, v := range eventData {
		payload[k] = v
	}

	firstEvent := !s.firstEventSent
	if firstEvent {
		def := defaultObject(payload)
		def["site"] = *s.site
		if s.user != nil {
			def["user"] = *s.user
		}
		payload["default"] = def
		s.firstEventSent = true
	}

	envelope := Event{"event": eventName}
	for k, v := range payload {
		envelope[k] = v
	}

	nulled := s.applyNullification(envelope)
	if nulled > 0 {
		s.metrics.RecordNullification(ctx, eventName, int64(nulled))
	}

	if err := s.queue.Push(envelope); err != nil {
		// The injected context never reached the queue; give the next emit
		// another chance to carry it.
		if firstEvent {
			s.firstEventSent = false
		}
		observability.LogQueueError(s.logger, eventName, err)
		return envelope, err
	}

	s.storeCleanPrevious(envelope)

	observability.LogEmit(s.logger, eventName, firstEvent, nulled)
	return envelope, nil
}

// ClearProducts appends a bare {products: null} entry to the queue,
// bypassing the envelope pipeline. Domain modules use it to force consumers
// to drop stale product context between unrelated events.
func (s *Sequencer) ClearProducts() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.env == nil {
		return
	}
	if err := s.queue.Push(map[string]any{"products": nil}); err != nil {
		observability.LogQueueError(s.logger, "clear_products", err)
	}
}

// ResetFirstEventFlag forces the next emit to re-inject site and user
// context, simulating a session boundary (page reload, SPA soft
// navigation, test isolation).
func (s *Sequencer) ResetFirstEventFlag() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.firstEventSent = false
}

// SetNullifiedProperties replaces the nested-nullification allow-list.
func (s *Sequencer) SetNullifiedProperties(properties map[string][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.propertiesToNullify = properties
}

// AddNullifiedProperties extends the allow-list for one top-level key.
func (s *Sequencer) AddNullifiedProperties(key string, properties []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.propertiesToNullify == nil {
		s.propertiesToNullify = make(map[string][]string)
	}
	s.propertiesToNullify[key] = append(s.propertiesToNullify[key], properties...)
}

// applyNullification reconciles the new envelope against the previous
// event: any top-level key present before and absent now is set to nil, and
// allow-listed nested keys under "default" get the same treatment. Returns
// the number of fields nulled.
func (s *Sequencer) applyNullification(envelope Event) int {
	if s.previous == nil {
		return 0
	}

	nulled := 0
	for key, prevValue := range s.previous {
		if key == "event" {
			continue
		}

		if key == "default" {
			nulled += s.nullifyDefault(envelope, prevValue)
			continue
		}

		if _, ok := envelope[key]; !ok {
			envelope[key] = nil
			nulled++
		}
	}
	return nulled
}

// nullifyDefault handles the nested pass for the "default" object. Only
// properties on the allow-list are nulled; page and user context is
// expected to be resupplied fully on every event, not carried forward.
func (s *Sequencer) nullifyDefault(envelope Event, prevValue any) int {
	prevDefault, ok := prevValue.(map[string]any)
	if !ok || prevDefault == nil {
		return 0
	}

	def, ok := envelope["default"].(map[string]any)
	if !ok || def == nil {
		def = make(map[string]any)
		envelope["default"] = def
	}

	nulled := 0
	for _, nestedKey := range s.propertiesToNullify["default"] {
		if _, inPrev := prevDefault[nestedKey]; !inPrev {
			continue
		}
		if _, inCurrent := def[nestedKey]; inCurrent {
			continue
		}
		def[nestedKey] = nil
		nulled++
	}
	return nulled
}

// storeCleanPrevious deep-copies the envelope and strips nulled fields so
// the next diff starts from what was last meaningfully present, not from
// null placeholders.
func (s *Sequencer) storeCleanPrevious(envelope Event) {
	raw, err := json.Marshal(envelope)
	if err != nil {
		// An unencodable payload cannot be diffed against; drop the
		// snapshot rather than carry a half-copied one.
		if s.logger != nil {
			s.logger.Warn("previous-event snapshot failed",
				slog.String("error", err.Error()))
		}
		s.previous = nil
		return
	}

	var clean map[string]any
	if err := json.Unmarshal(raw, &clean); err != nil {
		s.previous = nil
		return
	}

	for key, value := range clean {
		if key != "default" && value == nil {
			delete(clean, key)
		}
	}

	if def, ok := clean["default"].(map[string]any); ok {
		for nestedKey, value := range def {
			if value == nil {
				delete(def, nestedKey)
			}
		}
	}

	s.previous = clean
}

// defaultObject returns the payload's "default" map, replacing it with a
// fresh map when missing or not an object.
func defaultObject(payload Event) map[string]any {
	if def, ok := payload["default"].(map[string]any); ok && def != nil {
		return def
	}
	return make(map[string]any)
}
