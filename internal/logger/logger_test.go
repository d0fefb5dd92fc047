package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	logDir := filepath.Join(configDir, "logs")
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", logDir)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if want := filepath.Join(logDir, "hotelcal.log"); Path() != want {
		t.Errorf("Path() = %q, want %q", Path(), want)
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitWritesWarningsToFile(t *testing.T) {
	configDir := t.TempDir()
	if err := Init(Config{ConfigDir: configDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	Info("hidden info message")
	Warn("bulk edit ignored days of week", "request_id", "abc")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "bulk edit ignored days of week") || !strings.Contains(out, "request_id=abc") {
		t.Errorf("log file missing warning: %q", out)
	}
	if strings.Contains(out, "hidden info message") {
		t.Error("info message written below the default warn level")
	}
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, Interactive: true, ConfigDir: t.TempDir()}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}

	Debug("Test debug message in debug mode")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Test debug message in debug mode") {
		t.Error("debug message not written in debug mode")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	// These should not panic when Logger is nil
	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
}

func TestInitJSONWith(t *testing.T) {
	if err := Init(Config{ConfigDir: t.TempDir(), JSON: true}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	child := With("request_id", "req-1")
	child.Warn("bulk edit field rejected", "field", "rates")
	child.Info("below the warn level")

	data, err := os.ReadFile(Path())
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"msg":"bulk edit field rejected"`, `"request_id":"req-1"`, `"field":"rates"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log file missing %s: %q", want, out)
		}
	}
	if strings.Contains(out, "below the warn level") {
		t.Error("info entry written below the default warn level")
	}
}

func TestWithBeforeInit(t *testing.T) {
	Logger = nil
	child := With("request_id", "req-2")
	if child == nil {
		t.Fatal("With() before Init returned nil")
	}
	child.Warn("not written")
}
