package generator

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oastypes/internal/testutil"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestSlogAdapter_SessionScope(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	g := newTestGenerator(t, WithLogger(NewSlogAdapter(slog.New(handler))))

	repo := NewRepository()
	generateFor[testutil.OrderLine](t, g, repo)
	require.NoError(t, g.Finalize(context.Background(), repo))

	entries := decodeLines(t, &buf)
	require.NotEmpty(t, entries)

	var reserved, finalized map[string]any
	for _, e := range entries {
		switch e["msg"] {
		case "reserved schema id":
			if reserved == nil {
				reserved = e
			}
		case "finalized repository":
			finalized = e
		}
	}

	require.NotNil(t, reserved)
	assert.Equal(t, "DEBUG", reserved["level"])
	assert.Equal(t, "OrderLine", reserved["id"])
	assert.Equal(t, "github.com/erraggy/oastypes/internal/testutil.OrderLine", reserved["root"])

	require.NotNil(t, finalized)
	assert.Equal(t, "INFO", finalized["level"])
	assert.Equal(t, "finalize", finalized["op"])
	assert.EqualValues(t, repo.Len(), finalized["definitions"])
}

func TestSlogAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})
	l := NewSlogAdapter(slog.New(handler)).With("component", "test")

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown", "k", 1)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "test", entries[0]["component"])
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	assert.NotPanics(t, func() {
		l.With("k", "v").Warn("ignored")
	})
	assert.Equal(t, l, withContext(l, context.Background()))
}
