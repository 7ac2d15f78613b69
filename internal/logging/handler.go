package logging

import (
	"context"
	"log/slog"
	"strings"
)

// ErrorKey is the attribute key holding the error of a failure record.
const ErrorKey = "error"

// Reporter receives errors logged at error level.
type Reporter interface {
	Report(err error, extras map[string]any)
}

// ReportingHandler passes every record to the wrapped handler and reports
// error-level records that carry an error under ErrorKey.
type ReportingHandler struct {
	next     slog.Handler
	reporter Reporter
	attrs    []slog.Attr
	group    string
}

// NewReportingHandler wraps next.
func NewReportingHandler(next slog.Handler, reporter Reporter) *ReportingHandler {
	return &ReportingHandler{next: next, reporter: reporter}
}

func (h *ReportingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ReportingHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		h.report(r)
	}
	return h.next.Handle(ctx, r)
}

func (h *ReportingHandler) report(r slog.Record) {
	extras := map[string]any{"message": r.Message}
	var reported error

	collect := func(key string, v slog.Value) {
		v = v.Resolve()
		if key == ErrorKey {
			if err, ok := v.Any().(error); ok {
				reported = err
				return
			}
		}
		extras[key] = v.String()
	}
	// Handler attrs are stored with their group prefix already applied.
	for _, a := range h.attrs {
		collect(a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		collect(h.qualify(a.Key), a.Value)
		return true
	})

	if reported != nil {
		h.reporter.Report(reported, extras)
	}
}

func (h *ReportingHandler) qualify(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *ReportingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.next = h.next.WithAttrs(attrs)
	next.attrs = append(append([]slog.Attr{}, h.attrs...), qualifyAll(h.group, attrs)...)
	return &next
}

func (h *ReportingHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.next = h.next.WithGroup(name)
	next.group = strings.TrimPrefix(h.group+"."+name, ".")
	return &next
}

// qualifyAll prefixes attribute keys with group so they survive a later
// group change.
func qualifyAll(group string, attrs []slog.Attr) []slog.Attr {
	if group == "" {
		return attrs
	}
	out := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		out[i] = slog.Attr{Key: group + "." + a.Key, Value: a.Value}
	}
	return out
}
