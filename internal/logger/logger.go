package logger

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogging sends logs to stdout and, when path is set, also appends them
// to that file.
func InitLogging(path string) {
	var out io.Writer = os.Stdout
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log file %s: %v\n", path, err)
		} else {
			out = zerolog.MultiLevelWriter(os.Stdout, f)
		}
	}
	log = zerolog.New(out).With().Timestamp().Logger()
}

// SetOutput replaces the log destination.
func SetOutput(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel accepts zerolog level names; unknown names leave the level alone.
func SetLevel(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil && level != "" {
		zerolog.SetGlobalLevel(lvl)
	}
}

// WithRequestID returns a context whose log lines carry the request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func event(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if ctx == nil {
		return e
	}
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		e = e.Str("request_id", id)
	}
	return e
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Debug()).Msgf(format, args...)
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Info()).Msgf(format, args...)
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Warn()).Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Error()).Msgf(format, args...)
}
