package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var entries []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e LogEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		entries = append(entries, e)
	}
	return entries
}

func TestLogLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DebugLevel, "DEBUG"},
		{InfoLevel, "INFO"},
		{WarnLevel, "WARN"},
		{ErrorLevel, "ERROR"},
		{Level(42), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.level.String(); got != tt.expected {
				t.Errorf("Level.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"DEBUG", DebugLevel},
		{"debug", DebugLevel},
		{" Info ", InfoLevel},
		{"WARNING", WarnLevel},
		{"warn", WarnLevel},
		{"error", ErrorLevel},
		{"invalid", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestJSONLogger_BasicLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("run finished", RunID("abc"), Generation(100), Fitness(7))

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Level != "INFO" || e.Message != "run finished" {
		t.Errorf("unexpected entry %+v", e)
	}
	if e.Fields["run_id"] != "abc" {
		t.Errorf("run_id = %v", e.Fields["run_id"])
	}
	// JSON numbers decode as float64
	if e.Fields["generation"] != float64(100) || e.Fields["fitness"] != float64(7) {
		t.Errorf("numeric fields = %v", e.Fields)
	}
	if _, err := time.Parse(time.RFC3339Nano, e.Time); err != nil {
		t.Errorf("bad timestamp %q: %v", e.Time, err)
	}
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries at WARN, got %d", len(entries))
	}
	if entries[0].Level != "WARN" || entries[1].Level != "ERROR" {
		t.Errorf("unexpected levels %s, %s", entries[0].Level, entries[1].Level)
	}
}

func TestJSONLogger_With(t *testing.T) {
	var buf bytes.Buffer
	parent := NewJSONLogger(&buf, InfoLevel)
	child := parent.With(Component("genetic"), RunID("r1"))

	child.Info("generation", Generation(3))
	parent.Info("plain")

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Fields["component"] != "genetic" || entries[0].Fields["run_id"] != "r1" {
		t.Errorf("child fields missing: %v", entries[0].Fields)
	}
	if entries[1].Fields != nil {
		t.Errorf("parent gained child fields: %v", entries[1].Fields)
	}
}

func TestJSONLogger_ChildSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewJSONLogger(&buf, InfoLevel)
	child := parent.With(Component("search"))

	parent.SetLevel(ErrorLevel)
	child.Info("suppressed")

	if buf.Len() != 0 {
		t.Errorf("child ignored parent level change: %s", buf.String())
	}
	if child.GetLevel() != ErrorLevel {
		t.Errorf("child level = %v", child.GetLevel())
	}
}

func TestErrorField(t *testing.T) {
	if f := Error(errors.New("boom")); f.Key != "error" || f.Value != "boom" {
		t.Errorf("Error() = %+v", f)
	}
	if f := Error(nil); f.Value != nil {
		t.Errorf("Error(nil) = %+v", f)
	}
	if f := Duration("d", 1500*time.Millisecond); f.Value != "1.5s" {
		t.Errorf("Duration() = %+v", f)
	}
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	timer := StartTimer(logger, "search", RunID("x"))
	timer.End(Fitness(4))
	timer.EndError(errors.New("cancelled"))

	entries := decodeLines(t, &buf)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if _, ok := entries[0].Fields["latency"]; !ok {
		t.Error("End() did not record latency")
	}
	if entries[0].Fields["fitness"] != float64(4) {
		t.Errorf("End() extra field missing: %v", entries[0].Fields)
	}
	if entries[1].Level != "ERROR" || entries[1].Fields["error"] != "cancelled" {
		t.Errorf("EndError() entry = %+v", entries[1])
	}
}

func TestRotatingLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "steiner.log")
	logger, closer := NewRotatingLogger(RotateConfig{Filename: path, MaxSizeMB: 1}, InfoLevel)

	logger.Info("to file", Count(2))
	if err := closer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"to file"`) {
		t.Errorf("log file content = %s", data)
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored")
	if l.With(Count(1)) == nil {
		t.Error("NopLogger.With returned nil")
	}
	if l.GetLevel() != InfoLevel {
		t.Errorf("NopLogger level = %v", l.GetLevel())
	}
}

func BenchmarkJSONLogger_Info(b *testing.B) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		logger.Info("generation", Generation(i), Fitness(12))
		buf.Reset()
	}
}
