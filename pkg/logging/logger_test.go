package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Options{Level: "debug"}, buf)
	if err != nil {
		t.Fatalf("create logger failed: %v", err)
	}
	logger.Debug("hello", "key", "value")
	if err := logger.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if !strings.Contains(buf.String(), "key=value") {
		t.Fatalf("expected text output, got %q", buf.String())
	}
}

func TestNewLoggerJSON(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := New(Options{Level: "info", Format: "json"}, buf)
	if err != nil {
		t.Fatalf("create logger failed: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("Copied", "source", "a.md")
	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected a single json record, got %q: %v", buf.String(), err)
	}
	if record["source"] != "a.md" {
		t.Fatalf("unexpected record %v", record)
	}
}

func TestNewLoggerRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestNewLoggerRequiresWriter(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatalf("expected error without writers")
	}
}
