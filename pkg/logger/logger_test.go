package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/goliatone/go-formschema/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]logger.Level{
		"DEBUG":   logger.DebugLevel,
		" warn ":  logger.WarnLevel,
		"error":   logger.ErrorLevel,
		"verbose": logger.InfoLevel,
		"":        logger.InfoLevel,
	}
	for input, want := range cases {
		if got := logger.ParseLevel(input); got != want {
			t.Fatalf("ParseLevel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNew_JSONOutputRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: logger.InfoLevel, Output: &buf, JSON: true})

	log.Debug("hidden")
	log.Info("transform complete", "field", "email")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one log line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["msg"] != "transform complete" || entry["field"] != "email" {
		t.Fatalf("unexpected entry %#v", entry)
	}
}

func TestNop(t *testing.T) {
	log := logger.Nop()
	log.Debug("ignored", "k", "v")
	log.Error("ignored")
}
