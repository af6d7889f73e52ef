package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies mapping from strings to zapcore.Level and handling of unknown values.
func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"panic": zapcore.PanicLevel,
		"fatal": zapcore.FatalLevel,
	}
	for s, lvl := range cases {
		got, ok := ParseLogLevel(s)
		require.True(t, ok)
		require.Equal(t, lvl, got)
	}

	got, ok := ParseLogLevel("  WARN ")
	require.True(t, ok)
	require.Equal(t, zapcore.WarnLevel, got)

	_, ok = ParseLogLevel("unknown")
	require.False(t, ok)

	got, ok = ParseLogLevel("")
	require.False(t, ok)
	require.Equal(t, zapcore.InfoLevel, got)
}

// TestContextHelpers verifies that loggers stored in a context are returned and
// that the global logger is the fallback.
func TestContextHelpers(t *testing.T) {
	t.Parallel()

	require.Same(t, Logger(), FromContext(context.Background()))

	var buf bytes.Buffer

	l := NewWithWriter(zapcore.DebugLevel, &buf)
	ctx := ToContext(context.Background(), l)
	require.Same(t, l, FromContext(ctx))

	ctx = WithName(ctx, "security")
	ctx = WithKV(ctx, "unit_id", "u-1")
	DebugKV(ctx, "Transition applied", "rule", "lock")

	out := buf.String()
	require.Contains(t, out, "security")
	require.Contains(t, out, "Transition applied")
	require.Contains(t, out, "u-1")
	require.Contains(t, out, "lock")
}

// TestWithLevel ensures the level option filters entries below the wrapped level.
func TestWithLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithWriter(zapcore.DebugLevel, &buf, WithLevel(zapcore.WarnLevel))
	l.Info("hidden")
	l.Warn("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}

// TestWithLevel_KeepsStricterCoreLevel ensures the floor never loosens the wrapped level.
func TestWithLevel_KeepsStricterCoreLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	l := NewWithWriter(zapcore.ErrorLevel, &buf, WithLevel(zapcore.WarnLevel))
	l.Warn("hidden")
	l.Error("shown")

	require.NotContains(t, buf.String(), "hidden")
	require.Contains(t, buf.String(), "shown")
}
