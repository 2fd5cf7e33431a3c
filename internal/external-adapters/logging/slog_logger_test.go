package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ochairo/alignscan/internal/domain/interfaces"
)

func TestLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "json", "info")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Debug("hidden")
	l.Warn("failed to clean up workspace",
		interfaces.F("workspace", "ws1"),
		interfaces.F("error", errors.New("device busy")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["level"] != "WARN" || entry["msg"] != "failed to clean up workspace" {
		t.Errorf("entry = %v", entry)
	}
	if entry["workspace"] != "ws1" || entry["error"] != "device busy" {
		t.Errorf("fields = %v", entry)
	}
}

func TestLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "text", "debug")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Debug("workspace acquired", interfaces.F("workspace", "ws2"))

	if !strings.Contains(buf.String(), "level=DEBUG") || !strings.Contains(buf.String(), "workspace=ws2") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "xml", "info"); err == nil {
		t.Error("New() with unknown format should fail")
	}
	if _, err := New(&bytes.Buffer{}, "text", "loud"); err == nil {
		t.Error("New() with unknown level should fail")
	}
}
