package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/roach88/glassroom/internal/cache"
	"github.com/roach88/glassroom/internal/classroom"
	"github.com/roach88/glassroom/internal/config"
	"github.com/roach88/glassroom/internal/logging"
	"github.com/roach88/glassroom/internal/rest"
	"github.com/roach88/glassroom/internal/session"
)

// env is what a command runs against: the formatter, the configuration, and
// a lazily opened session.
type env struct {
	out    *OutputFormatter
	cfg    *config.Config
	logger *slog.Logger
	flush  func()

	store   cache.Store
	session *session.Session
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	f := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
	if f.Format == "text" {
		f.Width = terminalWidth(f.Writer)
	}
	return f
}

// openEnv loads the configuration and logger. The caller must call close.
func openEnv(opts *RootOptions, cmd *cobra.Command) (*env, error) {
	out := newFormatter(opts, cmd)

	cfg, err := config.Load(opts.ConfigFile, opts.EnvFile)
	if err != nil {
		return nil, outputError(out, ErrCodeConfig, ExitCommandError, "failed to load configuration", err)
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	logger, flush, err := logging.New(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, outputError(out, ErrCodeConfig, ExitCommandError, "failed to configure logging", err)
	}
	return &env{out: out, cfg: cfg, logger: logger, flush: flush}, nil
}

// Session opens the cache store and the session on first use.
func (e *env) Session(ctx context.Context) (*session.Session, error) {
	if e.session != nil {
		return e.session, nil
	}

	store, err := cache.Open(e.cfg.CacheBackend, e.cfg.CacheDir)
	if err != nil {
		return nil, outputError(e.out, ErrCodeCache, ExitFailure, "failed to open cache", err)
	}
	s, err := session.New(ctx, e.Service(), store,
		session.WithCapacity(e.cfg.RegistryCapacity),
		session.WithLogger(e.logger),
	)
	if err != nil {
		store.Close()
		return nil, outputError(e.out, ErrCodeUsage, ExitCommandError, "failed to start session", err)
	}
	e.store, e.session = store, s
	return s, nil
}

// Service builds the classroom service from the configuration.
func (e *env) Service() *classroom.Service {
	opts := []rest.ClientOption{
		rest.WithBaseURL(e.cfg.BaseURL),
		rest.WithTimeout(e.cfg.RequestTimeout),
		rest.WithRetries(e.cfg.MaxRetries),
		rest.WithLogger(e.logger),
	}
	if e.cfg.AccessToken != "" {
		opts = append(opts, rest.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: e.cfg.AccessToken,
			TokenType:   "Bearer",
		})))
	}
	return classroom.NewService(rest.NewClient(opts...))
}

func (e *env) close() {
	if e.session != nil {
		e.session.Close()
	}
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.logger.Error("error closing cache", "error", err)
		}
	}
	e.flush()
}

// fail reports an API or cache error and maps it to an exit code.
func (e *env) fail(message string, err error) error {
	switch {
	case rest.StatusCode(err) == http.StatusNotFound:
		return outputError(e.out, ErrCodeNotFound, ExitFailure, message, err)
	case cache.IsCacheIOError(err):
		return outputError(e.out, ErrCodeCache, ExitFailure, message, err)
	case rest.Code(err) == rest.ErrCodeInvalidRequest, rest.IsMissingPathParameter(err):
		return outputError(e.out, ErrCodeUsage, ExitCommandError, message, err)
	case errors.Is(err, context.Canceled):
		return WrapExitError(ExitFailure, message, err)
	default:
		return outputError(e.out, ErrCodeRequest, ExitFailure, message, err)
	}
}

// outputError writes the error through the formatter and returns the
// matching ExitError.
func outputError(f *OutputFormatter, code string, exit int, message string, err error) error {
	var details any
	if err != nil {
		details = err.Error()
	}
	_ = f.Error(code, message, details)
	exitErr := WrapExitError(exit, message, err)
	exitErr.Reported = true
	return exitErr
}

// usageError reports bad arguments.
func usageError(f *OutputFormatter, message string) error {
	_ = f.Error(ErrCodeUsage, message, nil)
	exitErr := NewExitError(ExitCommandError, message)
	exitErr.Reported = true
	return exitErr
}
