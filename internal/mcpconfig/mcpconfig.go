// Package mcpconfig merges MCP server records into the OpenCode
// configuration file.
//
// The merge works on raw JSON so keys the installer does not own keep their
// values and their order. A configuration file that cannot be parsed is never
// rewritten; the records go to a fallback file next to it instead and the
// operator merges them by hand.
package mcpconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/superopencode/super-opencode/internal/catalog"
	"github.com/superopencode/super-opencode/internal/paths"
)

// Integration keys. The primary file uses KeyPrimary; the fallback file
// uses KeyFallback. A written document never holds both.
const (
	KeyPrimary  = "mcp"
	KeyFallback = "mcpServers"
)

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// Request describes one merge-and-write.
type Request struct {
	Servers    map[string]catalog.ServerConfig
	TargetDir  string // root that receives the fallback file
	ConfigPath string // primary opencode.json path
}

// Result reports where the records ended up.
type Result struct {
	ConfigPath  string
	WrittenPath string
	Key         string
	Servers     []string // identifiers written, sorted
	Merged      bool     // an existing primary file was merged into
	Fallback    bool     // the primary file could not be parsed
	Reason      string   // why the primary file could not be parsed
}

// Write merges req.Servers into the configuration file and writes it.
//
// Read and write failures are returned. A primary file that does not parse is
// left byte-for-byte untouched and the records go to mcp_settings.json under
// "mcpServers" instead.
func Write(req Request) (*Result, error) {
	if req.ConfigPath == "" {
		return nil, fmt.Errorf("config path is required")
	}
	if req.TargetDir == "" {
		return nil, fmt.Errorf("target directory is required")
	}

	res := &Result{
		ConfigPath:  req.ConfigPath,
		WrittenPath: req.ConfigPath,
	}

	existing, err := readConfigFile(req.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	doc := []byte("{}")
	if existing != nil {
		parsed := parseDocument(existing, KeyPrimary)
		if parsed.ok() {
			doc = parsed.doc
			res.Merged = true
		} else {
			res.Fallback = true
			res.Reason = parsed.reason
			res.WrittenPath = paths.FallbackFilePath(req.TargetDir)
			doc = []byte(`{"` + KeyFallback + `":{}}`)
		}
	}

	res.Key = keyFor(res.WrittenPath)

	doc, ids, err := mergeServers(doc, res.Key, req.Servers)
	if err != nil {
		return nil, err
	}
	res.Servers = ids

	if err := writeConfigFile(res.WrittenPath, formatDocument(doc)); err != nil {
		return nil, err
	}
	return res, nil
}

// keyFor selects the integrations key from the file being written.
func keyFor(target string) string {
	if filepath.Base(target) == paths.ConfigFileName {
		return KeyPrimary
	}
	return KeyFallback
}

// parseResult is the outcome of reading an existing configuration file.
// Exactly one of doc and reason is set.
type parseResult struct {
	doc    []byte
	reason string
}

func (p parseResult) ok() bool { return p.reason == "" }

// parseDocument checks that data is a JSON object whose integrations key,
// if present, is an object (or null) that records can be merged into.
func parseDocument(data []byte, key string) parseResult {
	if !gjson.ValidBytes(data) {
		_, err := hujson.Parse(data)
		if err == nil {
			return parseResult{reason: "contains comments or trailing commas"}
		}
		return parseResult{reason: fmt.Sprintf("is not valid JSON: %v", err)}
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return parseResult{reason: "top-level value is not an object"}
	}

	v := root.Get(escapePathKey(key))
	if v.Exists() && v.Type != gjson.Null && !v.IsObject() {
		return parseResult{reason: fmt.Sprintf("%q is not an object", key)}
	}
	return parseResult{doc: data}
}

// mergeServers sets each record under key, replacing records that share an
// identifier and leaving everything else alone.
func mergeServers(doc []byte, key string, servers map[string]catalog.ServerConfig) ([]byte, []string, error) {
	keyPath := escapePathKey(key)

	var err error
	if !gjson.GetBytes(doc, keyPath).IsObject() {
		doc, err = sjson.SetRawBytes(doc, keyPath, []byte("{}"))
		if err != nil {
			return nil, nil, fmt.Errorf("creating config key %q: %w", key, err)
		}
	}

	ids := make([]string, 0, len(servers))
	for id := range servers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		value, err := json.Marshal(servers[id])
		if err != nil {
			return nil, nil, fmt.Errorf("encoding MCP entry %q: %w", id, err)
		}
		doc, err = sjson.SetRawBytes(doc, keyPath+"."+escapePathKey(id), value)
		if err != nil {
			return nil, nil, fmt.Errorf("writing MCP entry %q: %w", id, err)
		}
	}
	return doc, ids, nil
}

// formatDocument pretty-prints with 2-space indentation and a final newline.
func formatDocument(doc []byte) []byte {
	out := pretty.PrettyOptions(doc, prettyOptions)
	if !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	return out
}

// escapePathKey escapes a single key for gjson/sjson path syntax.
func escapePathKey(key string) string {
	var b []byte
	for i := 0; i < len(key); i++ {
		c := key[i]
		if !isSafePathKeyChar(c) {
			if b == nil {
				b = append(make([]byte, 0, len(key)+4), key[:i]...)
			}
			b = append(b, '\\')
		}
		if b != nil {
			b = append(b, c)
		}
	}
	if b == nil {
		return key
	}
	return string(b)
}

func isSafePathKeyChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_' || c == '-' || c == ':'
}

// readConfigFile reads a config file. Returns nil if it does not exist.
func readConfigFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// writeConfigFile writes content atomically, creating parent directories.
func writeConfigFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
