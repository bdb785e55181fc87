package framework

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestFS_Layout(t *testing.T) {
	fsys := FS()

	for _, name := range []string{
		"README.md",
		"LICENSE",
		"AGENTS.md",
		".opencode/agents/architect.md",
		".opencode/commands/plan.md",
		".opencode/skills/research/SKILL.md",
	} {
		if _, err := fs.Stat(fsys, name); err != nil {
			t.Errorf("%s missing from embedded assets: %v", name, err)
		}
	}
}

func TestFS_SkillsHaveManifest(t *testing.T) {
	fsys := FS()
	entries, err := fs.ReadDir(fsys, ".opencode/skills")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Fatal("no skills embedded")
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(fsys, ".opencode/skills/"+e.Name()+"/SKILL.md"); err != nil {
			t.Errorf("skill %s has no SKILL.md", e.Name())
		}
	}
}

func TestOpen(t *testing.T) {
	fsys, err := Open("")
	if err != nil {
		t.Fatalf("Open(\"\") error: %v", err)
	}
	if _, err := fs.Stat(fsys, "README.md"); err != nil {
		t.Errorf("embedded README.md: %v", err)
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("custom"), 0o644); err != nil {
		t.Fatal(err)
	}
	fsys, err = Open(dir)
	if err != nil {
		t.Fatalf("Open(dir) error: %v", err)
	}
	data, err := fs.ReadFile(fsys, "README.md")
	if err != nil || string(data) != "custom" {
		t.Errorf("README.md = %q, %v", data, err)
	}

	if _, err := Open(filepath.Join(dir, "README.md")); err == nil {
		t.Error("expected error for a file source")
	}
	if _, err := Open(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for a missing source")
	}
}
