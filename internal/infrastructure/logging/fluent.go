package logging

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Poster is the part of *fluent.Fluent the handler needs.
type Poster interface {
	Post(tag string, message interface{}) error
}

// FluentHandler is a slog.Handler that posts each record to Fluent as a flat map
// tagged "<tag>.<level>".
type FluentHandler struct {
	client Poster
	tag    string
	level  slog.Leveler
	attrs  []slog.Attr
	group  string
}

// NewFluentHandler creates a FluentHandler.
func NewFluentHandler(client Poster, tag string, level slog.Leveler) *FluentHandler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &FluentHandler{client: client, tag: tag, level: level}
}

// Enabled implements slog.Handler.
func (h *FluentHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler. Post failures are dropped so logging never fails a request.
func (h *FluentHandler) Handle(_ context.Context, r slog.Record) error {
	data := make(map[string]interface{}, len(h.attrs)+r.NumAttrs()+3)
	for _, a := range h.attrs {
		addAttr(data, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		addAttr(data, h.group, a)
		return true
	})

	data["level"] = strings.ToLower(r.Level.String())
	data["message"] = r.Message
	data["timestamp"] = r.Time.UTC().Format(time.RFC3339Nano)

	_ = h.client.Post(h.tag+"."+strings.ToLower(r.Level.String()), data)
	return nil
}

// WithAttrs implements slog.Handler.
func (h *FluentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		clone.attrs = append(clone.attrs, a)
	}
	return &clone
}

// WithGroup implements slog.Handler.
func (h *FluentHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	if clone.group != "" {
		clone.group += "." + name
	} else {
		clone.group = name
	}
	return &clone
}

func addAttr(data map[string]interface{}, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			addAttr(data, key, ga)
		}
		return
	}

	switch v := a.Value.Any().(type) {
	case error:
		data[key] = v.Error()
	case time.Duration:
		data[key] = v.String()
	case time.Time:
		data[key] = v.UTC().Format(time.RFC3339Nano)
	default:
		data[key] = v
	}
}
