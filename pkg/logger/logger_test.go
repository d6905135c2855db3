package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
	}

	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSlogLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewSlogLoggerWithHandler(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	log.Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("debug must be filtered at info level, got %s", buf.String())
	}

	log.Errorf(errors.New("boom"), "checkout %s failed", "abc")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if rec["msg"] != "checkout abc failed" || rec["error"] != "boom" || rec["level"] != "ERROR" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
