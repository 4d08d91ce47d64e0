package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug("catalog lookup", String("title", "Heat"), Int("candidates", 3))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["msg"] != "catalog lookup" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["title"] != "Heat" {
		t.Errorf("title = %v", entry["title"])
	}
}

func TestNewLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info line leaked through warn level:\n%s", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("warn line missing:\n%s", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	NewComponentLogger(logger, "validate").Info("tier rejected", Error(errors.New("boom")))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["component"] != "validate" {
		t.Errorf("component = %v", entry["component"])
	}
	if entry["error"] != "boom" {
		t.Errorf("error = %v", entry["error"])
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := NewNop()
	logger.Error("nobody hears this")
}
