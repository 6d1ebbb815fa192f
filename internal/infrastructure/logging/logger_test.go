package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/enclave-favorites/internal/infrastructure/config"
)

type recordingPoster struct {
	mu    sync.Mutex
	tags  []string
	posts []map[string]interface{}
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tags = append(p.tags, tag)
	p.posts = append(p.posts, message.(map[string]interface{}))
	return nil
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "", want: slog.LevelInfo},
		{input: "loud", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(config.LogConfig{Level: "info", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("saved", "name", "Ilyra")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "saved", entry["msg"])
	assert.Equal(t, "Ilyra", entry["name"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(config.LogConfig{Level: "debug", Format: "text", NoColor: true}, &buf)
	require.NoError(t, err)
	defer closeFn()

	logger.Debug("loading favorites", "owner_id", "u1")

	out := buf.String()
	assert.Contains(t, out, "loading favorites")
	assert.Contains(t, out, "owner_id=u1")
}

func TestFluentHandler(t *testing.T) {
	poster := &recordingPoster{}
	logger := slog.New(NewFluentHandler(poster, "enclave", slog.LevelInfo)).
		With("component", "test").
		WithGroup("req")

	logger.Debug("dropped")
	logger.Error("store failed", "error", errors.New("boom"), slog.Group("db", "op", "insert"))

	require.Len(t, poster.posts, 1)
	assert.Equal(t, "enclave.error", poster.tags[0])

	post := poster.posts[0]
	assert.Equal(t, "store failed", post["message"])
	assert.Equal(t, "error", post["level"])
	assert.Equal(t, "test", post["component"])
	assert.Equal(t, "boom", post["req.error"])
	assert.Equal(t, "insert", post["req.db.op"])
	assert.NotEmpty(t, post["timestamp"])
}

func TestFanout(t *testing.T) {
	var buf bytes.Buffer
	poster := &recordingPoster{}
	console := slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	logger := slog.New(NewFanout(console, NewFluentHandler(poster, "enclave", slog.LevelWarn)))

	logger.Info("only console")
	logger.Warn("both")

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
	require.Len(t, poster.posts, 1)
	assert.Equal(t, "both", poster.posts[0]["message"])
}
