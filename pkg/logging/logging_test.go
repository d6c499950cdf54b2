package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, level slog.Level, json bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf, level, json)
	t.Cleanup(func() { SetOutput(os.Stderr, slog.LevelInfo, false) })
	return &buf
}

func TestCompactFormat(t *testing.T) {
	buf := capture(t, slog.LevelDebug, false)

	Debug("Object added", "id", 11, "type", "Button", "name", "OK Button")

	line := buf.String()
	assert.True(t, strings.HasPrefix(line, "[DEBUG] "), line)
	assert.Contains(t, line, "Object added | id=11 type=Button name=\"OK Button\"")
}

func TestLevelFilter(t *testing.T) {
	buf := capture(t, slog.LevelWarn, false)

	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "[WARN]  ")
}

func TestJSONOutput(t *testing.T) {
	buf := capture(t, slog.LevelInfo, true)

	Info("Project saved", "objects", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Project saved", entry["msg"])
	assert.EqualValues(t, 3, entry["objects"])
}

func TestWithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	h := NewCompactHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})
	slog.New(h).With("project", "pool.yaml").WithGroup("edit").Info("Applied", "label", "rename")

	assert.Contains(t, buf.String(), "project=pool.yaml edit.label=rename")
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"trace": LevelTrace,
		"DEBUG": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestRequestIDMiddleware(t *testing.T) {
	buf := capture(t, slog.LevelInfo, false)

	var seen string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusConflict)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/api/objects/10", nil)
	req.Header.Set("X-Request-ID", "0123456789abcdef")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "0123456789abcdef", seen)
	assert.Equal(t, "0123456789abcdef", rec.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), "request rejected | req=01234567")
	assert.Contains(t, buf.String(), "status=409")
}
