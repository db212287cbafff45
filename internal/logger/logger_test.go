package logger

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestForCarriesRequestID(t *testing.T) {
	ctx, id := NewRequestContext(context.Background())
	if id == "" {
		t.Fatal("expected a request id")
	}
	entry := For(ctx)
	if got := entry.Data["request_id"]; got != id {
		t.Errorf("request_id = %v, want %s", got, id)
	}
	if _, ok := For(context.Background()).Data["request_id"]; ok {
		t.Error("plain context must not carry request_id")
	}
}

func TestTrackLogsCompletion(t *testing.T) {
	var buf bytes.Buffer
	logrus.SetOutput(&buf)
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true})
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.WarnLevel)
	})

	Track(ContextWithID(context.Background(), "abc"), "search Dune")()

	out := buf.String()
	if !strings.Contains(out, "search Dune completed") || !strings.Contains(out, "request_id=abc") {
		t.Errorf("unexpected track output: %s", out)
	}
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookfind.log")
	closer, err := Setup(Options{Level: "info", Path: path, Discard: true})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(func() {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.WarnLevel)
	})

	logrus.Info("hello file")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello file") {
		t.Errorf("log file missing entry: %s", data)
	}
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	if _, err := Setup(Options{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
