package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func newTestLogger(t *testing.T) (*SlogLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	h := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	return NewSlogLogger(slog.New(h)), &buf
}

func TestSlogLogger_Levels(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	log.Debug(ctx, "dbg", "a", 1)
	log.Info(ctx, "inf", "b", 2)
	log.Warn(ctx, "wrn", "c", 3)
	log.Error(ctx, "err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		assert.Contains(t, out, want)
	}
}

func TestSlogLogger_With(t *testing.T) {
	log, buf := newTestLogger(t)

	log.With("component", "form").Info(context.Background(), "hello", "k", "v")

	out := buf.String()
	assert.Contains(t, out, "component=form")
	assert.Contains(t, out, "k=v")
}

func TestNop_Discards(t *testing.T) {
	l := Nop()
	l.Info(context.Background(), "nothing")
	l.With("a", 1).Error(context.Background(), "still nothing")
}

func TestSetup_JSONStampsService(t *testing.T) {
	var buf bytes.Buffer
	l := Setup("lostfound", "test", "json", "debug", &buf)

	l.Debug("ready", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "lostfound", rec["service"])
	assert.Equal(t, "test", rec["version"])
	assert.Equal(t, "ready", rec["msg"])
	assert.NotContains(t, rec, "trace_id")
}

func TestSetup_TraceIDsFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := Setup("lostfound", "test", "text", "info", &buf)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l.InfoContext(ctx, "traced")

	out := buf.String()
	assert.Contains(t, out, "trace_id=4bf92f3577b34da6a3ce929d0e0e4736")
	assert.Contains(t, out, "span_id=00f067aa0ba902b7")
}

func TestSetup_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := Setup("lostfound", "test", "text", "warn", &buf)

	l.Info("hidden")
	l.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestLogError(t *testing.T) {
	log, buf := newTestLogger(t)
	ctx := context.Background()

	LogError(ctx, log, "plain failed", errors.New("boom"))
	LogError(ctx, log, "coded failed", oops.Code("SESSION_STORE").With("key", "user").Errorf("disk full"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "error=boom")
	assert.Contains(t, lines[1], "code=SESSION_STORE")
	assert.Contains(t, lines[1], "disk full")
}
