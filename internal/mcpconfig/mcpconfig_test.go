package mcpconfig

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/superopencode/super-opencode/internal/catalog"
)

func record(args ...string) catalog.ServerConfig {
	return catalog.ServerConfig{Type: "local", Command: args}
}

func readJSON(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("invalid JSON in %s: %v\n%s", path, err, data)
	}
	return parsed
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWrite_NewFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "opencode.json")

	res, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"sqlite": record("uvx", "mcp-server-sqlite", "--memory")},
		TargetDir:  dir,
		ConfigPath: configPath,
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	if res.Fallback || res.Merged {
		t.Errorf("Fallback=%v Merged=%v, want both false", res.Fallback, res.Merged)
	}
	if res.Key != KeyPrimary {
		t.Errorf("Key = %q, want %q", res.Key, KeyPrimary)
	}
	if res.WrittenPath != configPath {
		t.Errorf("WrittenPath = %q, want %q", res.WrittenPath, configPath)
	}

	parsed := readJSON(t, configPath)
	mcp, ok := parsed["mcp"].(map[string]interface{})
	if !ok {
		t.Fatalf("mcp key missing: %v", parsed)
	}
	entry := mcp["sqlite"].(map[string]interface{})
	if entry["type"] != "local" {
		t.Errorf("type = %v", entry["type"])
	}
	if _, has := parsed["mcpServers"]; has {
		t.Error("primary file must not contain mcpServers")
	}
}

func TestWrite_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "deep", "opencode", "opencode.json")

	_, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"a": record("x")},
		TargetDir:  filepath.Dir(configPath),
		ConfigPath: configPath,
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if _, err := os.Stat(configPath); err != nil {
		t.Fatalf("config not written: %v", err)
	}
}

func TestWrite_MergeIsAdditive(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "opencode.json")
	writeFile(t, configPath, `{"mcp": {"a": {"type": "local", "command": ["a"]}}, "other": {"keep": true}}`)

	res, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"b": record("b")},
		TargetDir:  dir,
		ConfigPath: configPath,
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if !res.Merged {
		t.Error("expected Merged = true")
	}

	parsed := readJSON(t, configPath)
	mcp := parsed["mcp"].(map[string]interface{})
	if _, ok := mcp["a"]; !ok {
		t.Error("existing entry a was dropped")
	}
	if _, ok := mcp["b"]; !ok {
		t.Error("new entry b missing")
	}
	other, ok := parsed["other"].(map[string]interface{})
	if !ok || other["keep"] != true {
		t.Errorf("other = %v, want {keep: true}", parsed["other"])
	}
}

func TestWrite_MergeOverridesSameID(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "opencode.json")
	writeFile(t, configPath, `{"mcp": {"a": {"type": "local", "command": ["old"]}}}`)

	_, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"a": record("new", "--flag")},
		TargetDir:  dir,
		ConfigPath: configPath,
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	parsed := readJSON(t, configPath)
	cmd := parsed["mcp"].(map[string]interface{})["a"].(map[string]interface{})["command"].([]interface{})
	if len(cmd) != 2 || cmd[0] != "new" || cmd[1] != "--flag" {
		t.Errorf("command = %v, want [new --flag]", cmd)
	}
}

func TestWrite_PreservesKeyOrder(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "opencode.json")
	writeFile(t, configPath, `{"zeta": 1, "$schema": "https://opencode.ai/config.json", "alpha": 2}`)

	_, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"a": record("a")},
		TargetDir:  dir,
		ConfigPath: configPath,
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, _ := os.ReadFile(configPath)
	content := string(data)
	zeta := strings.Index(content, `"zeta"`)
	schema := strings.Index(content, `"$schema"`)
	alpha := strings.Index(content, `"alpha"`)
	mcp := strings.Index(content, `"mcp"`)
	if !(zeta < schema && schema < alpha && alpha < mcp) {
		t.Errorf("key order not preserved:\n%s", content)
	}
}

func TestWrite_PrettyPrinted(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "opencode.json")
	writeFile(t, configPath, `{"theme":"dark"}`)

	_, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"a": record("a")},
		TargetDir:  dir,
		ConfigPath: configPath,
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	data, _ := os.ReadFile(configPath)
	if !strings.Contains(string(data), "\n  \"theme\": \"dark\"") {
		t.Errorf("expected 2-space indentation:\n%s", data)
	}
	if !bytes.HasSuffix(data, []byte("\n")) {
		t.Error("expected trailing newline")
	}
}

func TestWrite_NullKeyIsReplaced(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "opencode.json")
	writeFile(t, configPath, `{"mcp": null}`)

	res, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"a": record("a")},
		TargetDir:  dir,
		ConfigPath: configPath,
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if res.Fallback {
		t.Fatalf("null key should merge, got fallback: %s", res.Reason)
	}
	parsed := readJSON(t, configPath)
	if _, ok := parsed["mcp"].(map[string]interface{})["a"]; !ok {
		t.Errorf("entry missing: %v", parsed)
	}
}

func TestWrite_FallbackOnUnparseable(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantReason string
	}{
		{
			name:       "comments",
			content:    "{\n  // my settings\n  \"theme\": \"dark\",\n}\n",
			wantReason: "comments",
		},
		{
			name:       "garbage",
			content:    "this is not json",
			wantReason: "not valid JSON",
		},
		{
			name:       "empty file",
			content:    "",
			wantReason: "not valid JSON",
		},
		{
			name:       "array root",
			content:    `[1, 2, 3]`,
			wantReason: "not an object",
		},
		{
			name:       "mcp is a string",
			content:    `{"mcp": "oops"}`,
			wantReason: `"mcp" is not an object`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			configPath := filepath.Join(dir, "opencode.json")
			writeFile(t, configPath, tt.content)

			res, err := Write(Request{
				Servers:    map[string]catalog.ServerConfig{"github": record("npx", "gh")},
				TargetDir:  dir,
				ConfigPath: configPath,
			})
			if err != nil {
				t.Fatalf("Write() error: %v", err)
			}

			if !res.Fallback {
				t.Fatal("expected fallback")
			}
			if !strings.Contains(res.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to contain %q", res.Reason, tt.wantReason)
			}
			if res.Key != KeyFallback {
				t.Errorf("Key = %q, want %q", res.Key, KeyFallback)
			}

			// Primary file is byte-identical.
			data, _ := os.ReadFile(configPath)
			if string(data) != tt.content {
				t.Errorf("primary file changed:\n%s", data)
			}

			fallbackPath := filepath.Join(dir, "mcp_settings.json")
			if res.WrittenPath != fallbackPath {
				t.Errorf("WrittenPath = %q, want %q", res.WrittenPath, fallbackPath)
			}
			parsed := readJSON(t, fallbackPath)
			servers, ok := parsed["mcpServers"].(map[string]interface{})
			if !ok {
				t.Fatalf("mcpServers missing: %v", parsed)
			}
			if _, ok := servers["github"]; !ok {
				t.Error("github entry missing from fallback")
			}
			if _, has := parsed["mcp"]; has {
				t.Error("fallback file must not contain mcp key")
			}
		})
	}
}

func TestWrite_FallbackLivesInTargetDir(t *testing.T) {
	cfgDir := t.TempDir()
	targetDir := t.TempDir()
	configPath := filepath.Join(cfgDir, "opencode.json")
	writeFile(t, configPath, "{ // nope\n}")

	res, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"a": record("a")},
		TargetDir:  targetDir,
		ConfigPath: configPath,
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	if filepath.Dir(res.WrittenPath) != targetDir {
		t.Errorf("fallback written to %q, want under %q", res.WrittenPath, targetDir)
	}
}

func TestWrite_FallbackStartsFresh(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "opencode.json")
	writeFile(t, configPath, "not json")
	writeFile(t, filepath.Join(dir, "mcp_settings.json"), `{"mcpServers": {"stale": {}}, "extra": 1}`)

	_, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"a": record("a")},
		TargetDir:  dir,
		ConfigPath: configPath,
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	parsed := readJSON(t, filepath.Join(dir, "mcp_settings.json"))
	if _, has := parsed["extra"]; has {
		t.Error("fallback file should start from a fresh document")
	}
	servers := parsed["mcpServers"].(map[string]interface{})
	if _, has := servers["stale"]; has {
		t.Error("stale fallback entry should be gone")
	}
}

func TestWrite_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	// A regular file where the parent directory should be.
	blocker := filepath.Join(dir, "blocker")
	writeFile(t, blocker, "x")

	_, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"a": record("a")},
		TargetDir:  dir,
		ConfigPath: filepath.Join(blocker, "opencode.json"),
	})
	if err == nil {
		t.Fatal("expected error when parent directory cannot be created")
	}
}

func TestWrite_RequiresPaths(t *testing.T) {
	if _, err := Write(Request{TargetDir: "/tmp"}); err == nil {
		t.Error("expected error without config path")
	}
	if _, err := Write(Request{ConfigPath: "/tmp/opencode.json"}); err == nil {
		t.Error("expected error without target dir")
	}
}

func TestKeyFor(t *testing.T) {
	if got := keyFor("/a/b/opencode.json"); got != KeyPrimary {
		t.Errorf("keyFor(opencode.json) = %q", got)
	}
	if got := keyFor("/a/b/mcp_settings.json"); got != KeyFallback {
		t.Errorf("keyFor(mcp_settings.json) = %q", got)
	}
}

func TestEscapePathKey(t *testing.T) {
	tests := map[string]string{
		"context7":            "context7",
		"sequential-thinking": "sequential-thinking",
		"my.server":           `my\.server`,
		"a*b?":                `a\*b\?`,
	}
	for in, want := range tests {
		if got := escapePathKey(in); got != want {
			t.Errorf("escapePathKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestWrite_DottedIdentifier(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "opencode.json")

	_, err := Write(Request{
		Servers:    map[string]catalog.ServerConfig{"my.server": record("x")},
		TargetDir:  dir,
		ConfigPath: configPath,
	})
	if err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	parsed := readJSON(t, configPath)
	if _, ok := parsed["mcp"].(map[string]interface{})["my.server"]; !ok {
		t.Errorf("dotted identifier not written as one key: %v", parsed)
	}
}
