package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testHandler captures log records for testing.
type testHandler struct {
	buf   *bytes.Buffer
	attrs []slog.Attr
}

func newTestHandler() *testHandler {
	return &testHandler{buf: &bytes.Buffer{}}
}

func (h *testHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *testHandler) Handle(_ context.Context, r slog.Record) error {
	data := map[string]any{
		"level": r.Level.String(),
		"msg":   r.Message,
	}
	for _, attr := range h.attrs {
		data[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		data[a.Key] = a.Value.Any()
		return true
	})
	return json.NewEncoder(h.buf).Encode(data)
}

func (h *testHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &testHandler{buf: h.buf, attrs: merged}
}

func (h *testHandler) WithGroup(_ string) slog.Handler {
	return h
}

// lastRecord decodes the most recent log line.
func (h *testHandler) lastRecord(t *testing.T) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(h.buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)

	var data map[string]any
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &data))
	return data
}

func TestEnrichLogger(t *testing.T) {
	h := newTestHandler()
	logger := EnrichLogger(slog.New(h), "example-store", "session-1")
	require.NotNil(t, logger)

	logger.Info("hello")

	rec := h.lastRecord(t)
	assert.Equal(t, "example-store", rec["site"])
	assert.Equal(t, "session-1", rec["session_id"])
}

func TestLogInit(t *testing.T) {
	h := newTestHandler()
	LogInit(slog.New(h), "example-store", "prod")

	rec := h.lastRecord(t)
	assert.Equal(t, "INFO", rec["level"])
	assert.Equal(t, "datalayer initialized", rec["msg"])
	assert.Equal(t, "prod", rec["env"])
}

func TestLogEmit(t *testing.T) {
	h := newTestHandler()
	LogEmit(slog.New(h), "product_view", true, 2)

	rec := h.lastRecord(t)
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Equal(t, "product_view", rec["event"])
	assert.Equal(t, true, rec["first_event"])
	assert.Equal(t, float64(2), rec["nulled_fields"])
}

func TestLogSuppressed(t *testing.T) {
	h := newTestHandler()
	LogSuppressed(slog.New(h), "display.view", errors.New("brand is required"))

	rec := h.lastRecord(t)
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "display.view", rec["operation"])
	assert.Equal(t, "brand is required", rec["error"])
}

func TestLogCartMiss(t *testing.T) {
	h := newTestHandler()
	LogCartMiss(slog.New(h), "cart.remove", "sku-1")

	rec := h.lastRecord(t)
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "sku-1", rec["child_sku"])
}

func TestLogQueueError(t *testing.T) {
	h := newTestHandler()
	LogQueueError(slog.New(h), "cart_add", errors.New("journal event: disk full"))

	rec := h.lastRecord(t)
	assert.Equal(t, "ERROR", rec["level"])
	assert.Equal(t, "cart_add", rec["event"])
}

// Every helper must tolerate a nil logger without panicking.
func TestNilLoggerTolerance(t *testing.T) {
	assert.Nil(t, EnrichLogger(nil, "site", "session"))

	LogInit(nil, "site", "env")
	LogEmit(nil, "event", false, 0)
	LogHeadlessEmit(nil, "event")
	LogSuppressed(nil, "op", errors.New("x"))
	LogCartMiss(nil, "op", "sku")
	LogQueueError(nil, "event", errors.New("x"))
}

func TestTimedOperation(t *testing.T) {
	done := TimedOperation()
	time.Sleep(5 * time.Millisecond)
	elapsed := done()

	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
}
