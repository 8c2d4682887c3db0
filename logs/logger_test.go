package logs

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestZerologLoggerMethods(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	l := New("test")
	if l == nil {
		t.Fatalf("nil logger")
	}
	l.Debugf("debug %d", 1)
	l.Debugw("debug", map[string]any{"k": 1})
	l.Infof("info %s", "test")
	l.Warnf("warn")
	l.Errorf("error")
}

func TestWrapWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	l := Wrap(zerolog.New(&buf))
	l.Infof("hello %s", "world")
	out := buf.String()
	assert.Contains(t, out, `"hello world"`)
	assert.Contains(t, out, `"level":"info"`)
}

func TestFromContextDefaultsToNop(t *testing.T) {
	l := FromContext(context.Background())
	if _, ok := l.(NopLogger); !ok {
		t.Fatalf("expected NopLogger, got %T", l)
	}
}

func TestWithLoggerRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := Wrap(zerolog.New(&buf))
	ctx := WithLogger(context.Background(), l)
	FromContext(ctx).Warnf("stored")
	if !strings.Contains(buf.String(), "stored") {
		t.Fatalf("logger not recovered from context: %q", buf.String())
	}
}

func TestWithTraceID(t *testing.T) {
	ctx := WithTraceID(context.Background())
	id := TraceID(ctx)
	if id == "" {
		t.Fatalf("expected generated trace id")
	}
	// A second call must not replace an existing id.
	if got := TraceID(WithTraceID(ctx)); got != id {
		t.Fatalf("trace id changed: %s != %s", got, id)
	}
}

func TestCapturePanicRepanics(t *testing.T) {
	var buf bytes.Buffer
	l := Wrap(zerolog.New(&buf))
	recovered := func() (r any) {
		defer func() { r = recover() }()
		defer CapturePanic(l)
		panic("boom")
	}()
	if recovered != "boom" {
		t.Fatalf("expected re-panic with boom, got %v", recovered)
	}
	assert.Contains(t, buf.String(), "panic")
}
