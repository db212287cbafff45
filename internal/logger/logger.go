package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ctxKey string

const RequestIDKey ctxKey = "requestId"

// SlowThreshold marks tracked operations that took too long.
const SlowThreshold = 500 * time.Millisecond

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
		ForceColors:     true,
		DisableColors:   false,
	})
}

// Options mirrors the log section of the config file.
type Options struct {
	Level string
	Path  string
	JSON  bool
	// Discard drops output when no Path is set (the TUI owns the terminal).
	Discard bool
}

// Setup configures the standard logrus logger. The returned closer releases the log file.
func Setup(opts Options) (io.Closer, error) {
	lvl := logrus.WarnLevel
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("log level: %w", err)
		}
		lvl = parsed
	}
	logrus.SetLevel(lvl)

	if opts.JSON {
		logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			ForceColors:     opts.Path == "" && !opts.Discard,
		})
	}

	if opts.Path == "" {
		if opts.Discard {
			logrus.SetOutput(io.Discard)
		} else {
			logrus.SetOutput(os.Stderr)
		}
		return nopCloser{}, nil
	}

	f, err := os.OpenFile(opts.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	writers := []io.Writer{f}
	if !opts.Discard {
		writers = append(writers, os.Stderr)
	}
	logrus.SetOutput(io.MultiWriter(writers...))
	return f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func For(ctx context.Context) *logrus.Entry {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logrus.WithField("request_id", id)
}

func ContextWithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

// NewRequestContext tags ctx with a fresh request id and returns both.
func NewRequestContext(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return ContextWithID(ctx, id), id
}

func Track(ctx context.Context, msg string) func() {
	start := time.Now()
	return func() {
		dur := time.Since(start)
		entry := For(ctx).WithField("duration", dur.String())

		if dur > SlowThreshold {
			entry.Warnf("%s completed (SLOW)", msg)
		} else {
			entry.Debugf("%s completed", msg)
		}
	}
}
