package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew_Discard(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := New(Options{Stderr: &buf})
	defer func() { _ = closeFn() }()

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNew_Verbose(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn := New(Options{Verbose: true, Stderr: &buf})
	defer func() { _ = closeFn() }()

	logger.Debug("copy", "status", "copied")
	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "status=copied") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestNew_File(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "install.log")

	logger, closeFn := New(Options{Verbose: true, Stderr: &buf, File: path})
	logger.Debug("merged", "key", "mcp")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "key=mcp") {
		t.Errorf("log file = %q", data)
	}
	if !strings.Contains(buf.String(), "key=mcp") {
		t.Errorf("stderr = %q", buf.String())
	}
}
