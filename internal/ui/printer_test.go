package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinter_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Success("installed %d files", 3)
	p.Warn("path %s skipped", "/nope")
	p.KeyValue("Config", "/home/u/.config/opencode/opencode.json")

	out := buf.String()
	for _, want := range []string{
		"✓ installed 3 files",
		"! path /nope skipped",
		"  Config: /home/u/.config/opencode/opencode.json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("non-terminal output contains escape sequences: %q", out)
	}
}

func TestPrinter_Markdown(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	if err := p.Markdown("## Next steps\n\n1. Read AGENTS.md\n"); err != nil {
		t.Fatalf("Markdown() error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Next steps") || !strings.Contains(out, "Read AGENTS.md") {
		t.Errorf("rendered markdown = %q", out)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("buffer reported as terminal")
	}
}
