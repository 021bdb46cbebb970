package logger

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogRotation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "test.log")

	// 1MB is the smallest size lumberjack accepts.
	l, err := New(Options{
		Level: "debug",
		File:  FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 1},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	msg := strings.Repeat("x", 200)
	for i := 0; i < 15000; i++ {
		l.Sugar().Infof("entry %d: %s", i, msg)
	}
	_ = l.Sync()

	if _, err := os.Stat(logFile); err != nil {
		t.Fatalf("main log file: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := 0
	for _, e := range entries {
		name := e.Name()
		if name == "test.log" || !strings.HasPrefix(name, "test-") {
			continue
		}
		rotated++
		// test-YYYY-MM-DDTHH-MM-SS.SSS.log
		if !strings.Contains(name, "-20") {
			t.Errorf("rotated file %s has no timestamp", name)
		}
	}
	if rotated == 0 {
		t.Error("no rotated files found")
	}
}

func TestLogLevels(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{"error", []string{"ERROR"}, []string{"WARN", "INFO", "DEBUG"}},
		{"warn", []string{"ERROR", "WARN"}, []string{"INFO", "DEBUG"}},
		{"info", []string{"ERROR", "WARN", "INFO"}, []string{"DEBUG"}},
		{"debug", []string{"ERROR", "WARN", "INFO", "DEBUG"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logFile := filepath.Join(dir, tt.level+".log")
			err := InitWithOptions(Options{
				Level: tt.level,
				File:  FileConfig{Path: logFile, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1},
			})
			if err != nil {
				t.Fatalf("InitWithOptions: %v", err)
			}

			Debug("debug message")
			Info("info message")
			Warn("warn message")
			Error("error message")
			Sync()

			content, err := os.ReadFile(logFile)
			if err != nil {
				t.Fatal(err)
			}
			out := string(content)
			for _, exp := range tt.expected {
				if !strings.Contains(out, exp) {
					t.Errorf("expected %s in output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(out, exc) {
					t.Errorf("unexpected %s at level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestUnknownLevel(t *testing.T) {
	_, err := New(Options{Level: "verbose", Console: true})
	if !errors.Is(err, errLevel) {
		t.Errorf("expected errLevel, got %v", err)
	}
}

func TestNoSinks(t *testing.T) {
	l, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	if l.Core().Enabled(0) {
		t.Error("a logger without sinks should discard everything")
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")

	want := FileConfig{Path: "/tmp/test.log", MaxSizeMB: 50, MaxBackups: 3, MaxAgeDays: 7, Compress: true}
	if cfg != want {
		t.Errorf("DefaultFileConfig = %+v, want %+v", cfg, want)
	}
}

func TestJSONFormat(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "json.log")

	err := InitWithOptions(Options{
		Level:  "info",
		Format: "json",
		File:   FileConfig{Path: logFile, MaxSizeMB: 10, MaxBackups: 1, MaxAgeDays: 1},
	})
	if err != nil {
		t.Fatal(err)
	}

	Named("session").Info("box moved")
	Sync()

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatal(err)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v\n%s", err, content)
	}
	if entry["msg"] != "box moved" {
		t.Errorf("msg = %v", entry["msg"])
	}
	if entry["component"] != "session" {
		t.Errorf("component = %v, want session", entry["component"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
}
