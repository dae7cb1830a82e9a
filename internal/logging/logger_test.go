package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nfog/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleLoggerFormatsComponentAndFields(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "nfog.log")
	logger, closeFn, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "generate").Info("wrote nfo",
		logging.String("path", "/tmp/a b.nfo"),
		logging.Int("lines", 42),
	)
	logger.Debug("hidden")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	content := readLog(t, logPath)
	for _, want := range []string{"INFO", "generate: wrote nfo", `path="/tmp/a b.nfo"`, "lines=42"} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in %q", want, content)
		}
	}
	if strings.Contains(content, "hidden") || strings.Contains(content, "\x1b[") {
		t.Fatalf("unexpected content %q", content)
	}
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestJSONLoggerIncludesCorrelationID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nfog.json")
	logger, closeFn, err := logging.New(logging.Options{Format: "json", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := logging.WithCorrelationID(context.Background(), "run-1")
	logging.WarnWithContext(logging.WithContext(ctx, logger), "cache unavailable", "cache_open_failed", logging.Error(errors.New("locked")))
	logger.Info("dropped")
	_ = closeFn()

	lines := strings.Split(strings.TrimSpace(readLog(t, logPath)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d: %q", len(lines), lines)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if entry["level"] != "warn" || entry["correlation_id"] != "run-1" || entry["event_type"] != "cache_open_failed" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["error_hint"] == nil || entry["ts"] == nil {
		t.Fatalf("expected defaults for hint and timestamp, got %v", entry)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{"debug": "DEBUG", "WARNING": "WARN", "error": "ERROR", "": "INFO", "bogus": "INFO"}
	for in, want := range tests {
		if got := logging.ParseLevel(in).String(); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestNopLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewComponentLogger(nil, "x")
	logger.Error("nothing", logging.String("k", buf.String()))
	if buf.Len() != 0 {
		t.Fatal("nop logger wrote output")
	}
	if _, ok := logging.CorrelationIDFromContext(context.Background()); ok {
		t.Fatal("expected no correlation id")
	}
}
