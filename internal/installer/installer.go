// Package installer copies framework modules into an install root.
//
// Every copy goes through CopyArtifact, which refuses destinations that
// resolve outside the root. Destinations are scope-aware: global installs
// place agents, commands and skills directly in the root, project installs
// keep them under .opencode/.
package installer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/superopencode/super-opencode/internal/paths"
)

// Module names.
const (
	ModuleCore     = "core"
	ModuleAgents   = "agents"
	ModuleCommands = "commands"
	ModuleSkills   = "skills"
)

// containerDir holds project-scope framework files.
const containerDir = ".opencode"

// Modules lists every module in display order.
var Modules = []string{ModuleCore, ModuleAgents, ModuleCommands, ModuleSkills}

// artifact is one source/destination pair. Both are slash paths; src is
// relative to the framework source and dest to the install root.
type artifact struct {
	src  string
	dest string
}

// moduleTable maps each module to its single primary artifact.
func moduleTable(scope paths.Scope) map[string]artifact {
	return map[string]artifact{
		ModuleCore:     {src: "README.md", dest: "README.md"},
		ModuleAgents:   {src: ".opencode/agents", dest: scopedDest(scope, "agents")},
		ModuleCommands: {src: ".opencode/commands", dest: scopedDest(scope, "commands")},
		ModuleSkills:   {src: ".opencode/skills", dest: scopedDest(scope, "skills")},
	}
}

// coreAuxiliary lists the extra files installed with the core module.
// The settings file is optional in the framework source.
func coreAuxiliary(scope paths.Scope) []artifact {
	return []artifact{
		{src: "LICENSE", dest: "LICENSE"},
		{src: "AGENTS.md", dest: "AGENTS.md"},
		{src: ".opencode/settings.json", dest: scopedDest(scope, "settings.json")},
	}
}

func scopedDest(scope paths.Scope, name string) string {
	if scope == paths.ScopeGlobal {
		return name
	}
	return containerDir + "/" + name
}

// Options configures an installation.
type Options struct {
	Root      string // install root (target directory)
	Scope     paths.Scope
	Overwrite bool
}

// Installer drives CopyArtifact for selected modules.
type Installer struct {
	source fs.FS
	log    *slog.Logger
}

// New creates an Installer reading framework files from source.
func New(source fs.FS, log *slog.Logger) *Installer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Installer{source: source, log: log}
}

// Install copies the given modules in order. Unknown module names are
// ignored. The first copy error stops the installation; results gathered up
// to that point are returned with it.
func (inst *Installer) Install(modules []string, opts Options) ([]CopyResult, error) {
	if opts.Root == "" {
		return nil, fmt.Errorf("target directory is required")
	}

	table := moduleTable(opts.Scope)
	var results []CopyResult

	for _, module := range modules {
		a, ok := table[module]
		if !ok {
			inst.log.Debug("ignoring unknown module", "module", module)
			continue
		}

		res, err := inst.copy(a, opts)
		if err != nil {
			return results, fmt.Errorf("installing module %q: %w", module, err)
		}
		results = append(results, res)

		if module != ModuleCore {
			continue
		}

		if err := ensureContainer(opts); err != nil {
			return results, err
		}
		for _, aux := range coreAuxiliary(opts.Scope) {
			res, err := inst.copy(aux, opts)
			if err != nil {
				return results, fmt.Errorf("installing module %q: %w", module, err)
			}
			results = append(results, res)
		}
	}

	return results, nil
}

func (inst *Installer) copy(a artifact, opts Options) (CopyResult, error) {
	res, err := CopyArtifact(inst.source, a.src, opts.Root, a.dest, opts.Overwrite)
	if err != nil {
		return res, err
	}
	inst.log.Debug("copy", "source", a.src, "dest", res.Dest, "status", res.Status)
	return res, nil
}

// ensureContainer creates the directory that holds framework files:
// .opencode/ for project installs, the root itself for global installs.
func ensureContainer(opts Options) error {
	dir := opts.Root
	if opts.Scope != paths.ScopeGlobal {
		dir = filepath.Join(opts.Root, containerDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	return nil
}

// Summarize counts results by status.
func Summarize(results []CopyResult) map[CopyStatus]int {
	counts := make(map[CopyStatus]int, 3)
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}
