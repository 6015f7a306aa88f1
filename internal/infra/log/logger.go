package logs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"supermarket/config"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the parameters required for the logger
type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
}

// New creates and initializes slog.Logger
func New(params Params) (*slog.Logger, error) {
	// Parse log level from config
	level, err := parseLogLevel(params.Config.Env.Log.Level)
	if err != nil {
		return nil, err
	}

	out, closeOutput, err := openOutput(params.Config.Env.Log.Output)
	if err != nil {
		return nil, err
	}
	if closeOutput != nil {
		params.Lifecycle.Append(fx.StopHook(func(context.Context) error {
			return closeOutput()
		}))
	}

	return newLogger(out, level, params.Config.Env.Log.Pretty), nil
}

func newLogger(out io.Writer, level slog.Level, pretty bool) *slog.Logger {
	// Text for humans, JSON otherwise
	if pretty {
		return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
	}

	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))
}

// openOutput resolves the configured sink. Only files need closing.
func openOutput(output string) (io.Writer, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(output)) {
	case "", "stderr":
		return os.Stderr, nil, nil
	case "stdout":
		return os.Stdout, nil, nil
	}

	f, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %s", output)
	}

	return f, f.Close, nil
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, errors.Errorf("unknown log level: %s", level)
	}
}
