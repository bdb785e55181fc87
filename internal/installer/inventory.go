package installer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/superopencode/super-opencode/internal/paths"
)

// Entry is one installed agent, command or skill.
type Entry struct {
	Name        string
	Description string
	Path        string
}

// Inventory lists what is installed under a root.
type Inventory struct {
	Agents   []Entry
	Commands []Entry
	Skills   []Entry
}

// Total returns the number of entries across all kinds.
func (inv *Inventory) Total() int {
	return len(inv.Agents) + len(inv.Commands) + len(inv.Skills)
}

type frontmatter struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ReadInventory scans the scope's agent, command and skill directories under
// root. Missing directories yield empty lists.
func ReadInventory(root string, scope paths.Scope) (*Inventory, error) {
	inv := &Inventory{}
	var err error

	inv.Agents, err = readMarkdownDir(filepath.Join(root, filepath.FromSlash(scopedDest(scope, ModuleAgents))))
	if err != nil {
		return nil, err
	}
	inv.Commands, err = readMarkdownDir(filepath.Join(root, filepath.FromSlash(scopedDest(scope, ModuleCommands))))
	if err != nil {
		return nil, err
	}
	inv.Skills, err = readSkillsDir(filepath.Join(root, filepath.FromSlash(scopedDest(scope, ModuleSkills))))
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// readMarkdownDir lists *.md files directly inside dir.
func readMarkdownDir(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var out []Entry
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".md" {
			continue
		}
		p := filepath.Join(dir, e.Name())
		out = append(out, entryFor(p, strings.TrimSuffix(e.Name(), ".md")))
	}
	sortEntries(out)
	return out, nil
}

// readSkillsDir lists directories inside dir that contain a SKILL.md.
func readSkillsDir(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var out []Entry
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		p := filepath.Join(dir, e.Name(), "SKILL.md")
		if _, err := os.Stat(p); err != nil {
			continue
		}
		out = append(out, entryFor(p, e.Name()))
	}
	sortEntries(out)
	return out, nil
}

// entryFor builds an Entry from a file's frontmatter, falling back to name
// when the file has none or it does not parse.
func entryFor(path, name string) Entry {
	entry := Entry{Name: name, Path: path}
	fm, err := parseFrontmatter(path)
	if err != nil || fm == nil {
		return entry
	}
	if fm.Name != "" {
		entry.Name = fm.Name
	}
	entry.Description = fm.Description
	return entry
}

// parseFrontmatter reads the YAML block between the leading --- markers.
// Returns nil without error when the file has no frontmatter.
func parseFrontmatter(path string) (*frontmatter, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return nil, scanner.Err()
	}

	var block strings.Builder
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			closed = true
			break
		}
		block.WriteString(line)
		block.WriteString("\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if !closed {
		return nil, fmt.Errorf("unterminated frontmatter in %s", path)
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(block.String()), &fm); err != nil {
		return nil, fmt.Errorf("parsing frontmatter in %s: %w", path, err)
	}
	return &fm, nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
}
