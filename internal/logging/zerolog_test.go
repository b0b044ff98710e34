package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		m := map[string]any{}
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestZerologLogger_FieldsAndLevels(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(&buf, "debug", false)
	ctx := context.Background()

	l.Debug(ctx, "dbg", "a", 1)
	l.Info(ctx, "inf", "b", "two")
	l.Warn(ctx, "wrn")
	l.Error(ctx, "err", "error", errors.New("boom"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	require.Equal(t, "debug", lines[0]["level"])
	require.Equal(t, "dbg", lines[0]["message"])
	require.EqualValues(t, 1, lines[0]["a"])

	require.Equal(t, "info", lines[1]["level"])
	require.Equal(t, "two", lines[1]["b"])

	require.Equal(t, "warn", lines[2]["level"])

	require.Equal(t, "error", lines[3]["level"])
	require.Equal(t, "boom", lines[3]["error"])
}

func TestZerologLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(&buf, "error", false)

	l.Info(context.Background(), "dropped")
	require.Zero(t, buf.Len())
}

func TestZerologLogger_WithAndBadKey(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(&buf, "info", false).With("req_id", "123")

	l.Info(context.Background(), "hello", 42, "k", "v")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "123", lines[0]["req_id"])
	require.EqualValues(t, 42, lines[0]["!BADKEY"])
	require.Equal(t, "v", lines[0]["k"])
}

func TestNew_ZerologBackend(t *testing.T) {
	var buf bytes.Buffer
	New(BackendZerolog, "info", &buf).Info(context.Background(), "pretty", "x", "y")
	require.Contains(t, buf.String(), "pretty")
	require.Contains(t, buf.String(), "x=")
}

func TestZerologLogger_RequestIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(&buf, "info", false)

	l.Info(WithRequestID(context.Background(), "req-2"), "sent")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "req-2", lines[0][RequestIDKey])
}
