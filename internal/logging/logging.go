// Package logging builds the slog.Logger used across glassroom.
package logging

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/rollbar/rollbar-go"

	"github.com/roach88/glassroom/internal/config"
)

// Version is reported to Rollbar as the code version.
var Version = "dev"

// New returns a logger writing to w at the configured level and format.
// With a Rollbar token, error records carrying an "error" attribute are
// also reported. The returned func waits for pending reports.
func New(cfg *config.Config, w io.Writer) (*slog.Logger, func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	switch cfg.LogFormat {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text", "":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}

	if cfg.RollbarToken == "" {
		return slog.New(h), func() {}, nil
	}
	reporter := NewRollbarReporter(cfg.RollbarToken, cfg.Environment)
	return slog.New(NewReportingHandler(h, reporter)), reporter.Wait, nil
}

// RollbarReporter sends reports to Rollbar.
type RollbarReporter struct {
	client *rollbar.Client
}

// NewRollbarReporter creates a reporter for token and environment.
func NewRollbarReporter(token, environment string) *RollbarReporter {
	return &RollbarReporter{client: rollbar.New(token, environment, Version, "", "")}
}

func (r *RollbarReporter) Report(err error, extras map[string]any) {
	r.client.ErrorWithExtras(rollbar.ERR, err, extras)
}

// Wait blocks until queued reports are sent.
func (r *RollbarReporter) Wait() {
	r.client.Wait()
}
