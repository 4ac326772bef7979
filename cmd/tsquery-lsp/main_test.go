package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupLogger_ValidLevels(t *testing.T) {
	levels := []string{"error", "warn", "info", "debug", "trace"}
	for _, level := range levels {
		t.Run(level, func(t *testing.T) {
			logger, cleanup, err := setupLogger(level, "")
			if err != nil {
				t.Errorf("setupLogger(%q, \"\") returned error: %v", level, err)
				return
			}
			if logger == nil {
				t.Errorf("setupLogger(%q, \"\") returned nil logger", level)
			}
			if cleanup == nil {
				t.Errorf("setupLogger(%q, \"\") returned nil cleanup", level)
			}
			cleanup()
		})
	}
}

func TestSetupLogger_InvalidLevel(t *testing.T) {
	_, _, err := setupLogger("invalid", "")
	if err == nil {
		t.Fatal("setupLogger(\"invalid\", \"\") should return an error")
	}
	if !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("error should mention 'invalid log level': %v", err)
	}
}

func TestSetupLogger_FileCreation(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "test.log")

	logger, cleanup, err := setupLogger("info", logPath)
	if err != nil {
		t.Fatalf("setupLogger failed: %v", err)
	}
	defer cleanup()

	logger.Info("test message")
	cleanup()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "test message") {
		t.Errorf("log file doesn't contain test message: %s", data)
	}
}

func TestSetupLogger_FileAppends(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "test.log")

	if err := os.WriteFile(logPath, []byte("existing\n"), 0o600); err != nil {
		t.Fatalf("failed to create initial log file: %v", err)
	}

	logger, cleanup, err := setupLogger("info", logPath)
	if err != nil {
		t.Fatalf("setupLogger failed: %v", err)
	}

	logger.Info("appended message")
	cleanup()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "existing") {
		t.Error("log file should preserve existing content")
	}
	if !strings.Contains(content, "appended message") {
		t.Error("log file should contain appended message")
	}
}

func TestIsCleanShutdown(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil-ish EOF", io.EOF, true},
		{"closed", os.ErrClosed, true},
		{"wrapped EOF", errors.New("read: " + io.EOF.Error()), false},
		{"broken pipe", errors.New("write: broken pipe"), true},
		{"EPIPE", errors.New("write: EPIPE"), true},
		{"other", errors.New("connection reset by peer"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isCleanShutdown(tt.err); got != tt.want {
				t.Errorf("isCleanShutdown(%v) = %v; want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewRootCommand_Defaults(t *testing.T) {
	cmd := newRootCommand()

	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		t.Fatalf("GetString(log-level) error: %v", err)
	}
	if logLevel != "info" {
		t.Errorf("default log-level = %q; want %q", logLevel, "info")
	}

	logFile, err := cmd.Flags().GetString("log-file")
	if err != nil {
		t.Fatalf("GetString(log-file) error: %v", err)
	}
	if logFile != "" {
		t.Errorf("default log-file = %q; want empty", logFile)
	}

	stdio, err := cmd.Flags().GetBool("stdio")
	if err != nil {
		t.Fatalf("GetBool(stdio) error: %v", err)
	}
	if !stdio {
		t.Error("default stdio = false; want true")
	}
}

func TestNewRootCommand_ParsesFlags(t *testing.T) {
	cmd := newRootCommand()

	if err := cmd.ParseFlags([]string{"--log-level", "debug", "--log-file", "/tmp/does-not-matter.log"}); err != nil {
		t.Fatalf("ParseFlags error: %v", err)
	}
	logLevel, _ := cmd.Flags().GetString("log-level")
	if logLevel != "debug" {
		t.Errorf("log-level = %q; want %q", logLevel, "debug")
	}
	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile != "/tmp/does-not-matter.log" {
		t.Errorf("log-file = %q; want %q", logFile, "/tmp/does-not-matter.log")
	}
}
