// Package session runs the installer conversation: choose a scope, copy the
// selected framework modules, then optionally configure MCP servers.
//
// Run walks a fixed sequence of stages. Each stage asks at most a few
// questions and names the stage that follows it, so the order of prompts is
// visible in one place (the stages table).
package session

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/superopencode/super-opencode/internal/catalog"
	"github.com/superopencode/super-opencode/internal/installer"
	"github.com/superopencode/super-opencode/internal/mcpconfig"
	"github.com/superopencode/super-opencode/internal/paths"
	"github.com/superopencode/super-opencode/internal/prompt"
	"github.com/superopencode/super-opencode/internal/ui"
)

// Outcome is how a session ended.
type Outcome string

const (
	Completed Outcome = "completed"
	Cancelled Outcome = "cancelled"
	Failed    Outcome = "failed"
)

// Question keys. Non-interactive answers files use the same names.
const (
	KeyScope           = "scope"
	KeyProceed         = "proceed"
	KeyModules         = "modules"
	KeyOverwrite       = "overwrite"
	KeyConfigureMCP    = "configure_mcp"
	KeyServers         = "servers"
	KeyFilesystemPaths = "filesystem_paths"
	keyEnvPrefix       = "env."
)

// Session holds everything one installer run needs.
type Session struct {
	Prompter   prompt.Prompter
	Env        paths.Env
	Source     fs.FS  // framework files to install
	ProjectDir string // directory used for project installs
	Printer    *ui.Printer
	Log        *slog.Logger

	// Stat checks filesystem server paths. Defaults to os.Stat.
	Stat func(name string) (os.FileInfo, error)
}

// Report describes what a session did.
type Report struct {
	Outcome    Outcome
	Scope      paths.Scope
	TargetDir  string
	ConfigPath string
	Modules    []string
	Copies     []installer.CopyResult
	Servers    map[string]catalog.ServerConfig
	Config     *mcpconfig.Result
	Inventory  *installer.Inventory
}

type stage int

const (
	stageAnnounce stage = iota
	stageScope
	stageProceed
	stageModules
	stageInstall
	stageConfigure
	stageSelectServers
	stageCollect
	stageWriteConfig
	stageSummary
	stageDone
)

var stageNames = [...]string{
	"announce", "scope", "proceed", "modules", "install", "configure",
	"select-servers", "collect", "write-config", "summary", "done",
}

func (s stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// run holds the state carried between stages.
type run struct {
	*Session
	report    *Report
	overwrite bool
	selected  []string
}

type stageFunc func(*run) (stage, error)

var stages = map[stage]stageFunc{
	stageAnnounce:      (*run).announce,
	stageScope:         (*run).chooseScope,
	stageProceed:       (*run).confirmProceed,
	stageModules:       (*run).chooseModules,
	stageInstall:       (*run).install,
	stageConfigure:     (*run).askConfigure,
	stageSelectServers: (*run).chooseServers,
	stageCollect:       (*run).collectServers,
	stageWriteConfig:   (*run).writeConfig,
	stageSummary:       (*run).summarize,
}

// Run executes the session. The returned report is never nil; on error its
// outcome is Failed.
func (s *Session) Run() (*Report, error) {
	sc := *s
	r := &run{Session: &sc, report: &Report{}}
	if r.Log == nil {
		r.Log = slog.New(slog.DiscardHandler)
	}
	if r.Stat == nil {
		r.Stat = os.Stat
	}
	if r.Prompter == nil || r.Printer == nil || r.Source == nil {
		r.report.Outcome = Failed
		return r.report, fmt.Errorf("session is missing a prompter, printer or source")
	}

	for st := stageAnnounce; st != stageDone; {
		next, err := stages[st](r)
		if err != nil {
			r.report.Outcome = Failed
			return r.report, err
		}
		r.Log.Debug("stage complete", "stage", st, "next", next)
		st = next
	}
	return r.report, nil
}

func (r *run) announce() (stage, error) {
	p := r.Printer
	p.Title("Super OpenCode Installer")
	p.Muted("Platform: %s | Home: %s", r.Env.GOOS, r.Env.HomeDir)
	p.Println()

	globalDir := r.Env.FrameworkDir(paths.ScopeGlobal, r.ProjectDir)
	projectDir := r.Env.FrameworkDir(paths.ScopeProject, r.ProjectDir)

	p.Heading("Installation options")
	p.Info("Global install (recommended), available for all projects")
	p.KeyValue("Framework", globalDir)
	p.KeyValue("Config", r.Env.ConfigFilePath(paths.ScopeGlobal, globalDir))
	p.Info("Project install, this project only")
	p.KeyValue("Framework", projectDir)
	p.KeyValue("Config", r.Env.ConfigFilePath(paths.ScopeProject, projectDir))
	p.Println()
	return stageScope, nil
}

func (r *run) chooseScope() (stage, error) {
	answer, err := r.Prompter.Select(prompt.SelectQuestion{
		Key:     KeyScope,
		Message: "Where would you like to install Super OpenCode?",
		Choices: []prompt.Choice{
			{Label: "Global (recommended)", Value: string(paths.ScopeGlobal)},
			{Label: "Project (current directory)", Value: string(paths.ScopeProject)},
		},
		Default: string(paths.ScopeGlobal),
	})
	if err != nil {
		return stageDone, fmt.Errorf("choosing scope: %w", err)
	}
	scope, err := paths.ParseScope(answer)
	if err != nil {
		return stageDone, err
	}

	r.report.Scope = scope
	r.report.TargetDir = r.Env.FrameworkDir(scope, r.ProjectDir)
	r.report.ConfigPath = r.Env.ConfigFilePath(scope, r.report.TargetDir)
	return stageProceed, nil
}

func (r *run) confirmProceed() (stage, error) {
	r.Printer.Muted("This will create framework files (agents, commands, skills) and %s.", paths.ConfigFileName)

	ok, err := r.Prompter.Confirm(prompt.ConfirmQuestion{
		Key:     KeyProceed,
		Message: fmt.Sprintf("Install to %s?", r.report.TargetDir),
		Default: true,
	})
	if err != nil {
		return stageDone, fmt.Errorf("confirming installation: %w", err)
	}
	if !ok {
		r.Printer.Warn("Installation cancelled.")
		r.report.Outcome = Cancelled
		return stageDone, nil
	}
	return stageModules, nil
}

var moduleLabels = map[string]string{
	installer.ModuleCore:     "Core (README, LICENSE, AGENTS.md)",
	installer.ModuleAgents:   "Agents (specialized personas)",
	installer.ModuleCommands: "Commands (slash commands)",
	installer.ModuleSkills:   "Skills (capabilities)",
}

func (r *run) chooseModules() (stage, error) {
	choices := make([]prompt.Choice, 0, len(installer.Modules))
	for _, m := range installer.Modules {
		choices = append(choices, prompt.Choice{Label: moduleLabels[m], Value: m, Checked: true})
	}

	modules, err := r.Prompter.MultiSelect(prompt.MultiSelectQuestion{
		Key:     KeyModules,
		Message: "Select modules to install:",
		Choices: choices,
	})
	if err != nil {
		return stageDone, fmt.Errorf("choosing modules: %w", err)
	}

	overwrite, err := r.Prompter.Confirm(prompt.ConfirmQuestion{
		Key:     KeyOverwrite,
		Message: "Overwrite existing files?",
		Default: false,
	})
	if err != nil {
		return stageDone, fmt.Errorf("choosing overwrite: %w", err)
	}

	r.report.Modules = modules
	r.overwrite = overwrite
	return stageInstall, nil
}

func (r *run) install() (stage, error) {
	inst := installer.New(r.Source, r.Log)
	results, err := inst.Install(r.report.Modules, installer.Options{
		Root:      r.report.TargetDir,
		Scope:     r.report.Scope,
		Overwrite: r.overwrite,
	})
	r.report.Copies = results
	if err != nil {
		r.Printer.Error("Installation failed.")
		return stageDone, fmt.Errorf("installing framework: %w", err)
	}

	for _, res := range results {
		rel := r.relative(res.Dest)
		switch res.Status {
		case installer.CopyCopied:
			r.Printer.Success("Installed %s", rel)
		case installer.CopySkippedExists:
			r.Printer.Muted("Skipped %s (already exists)", rel)
		}
	}
	return stageConfigure, nil
}

func (r *run) askConfigure() (stage, error) {
	ok, err := r.Prompter.Confirm(prompt.ConfirmQuestion{
		Key:     KeyConfigureMCP,
		Message: "Would you like to configure MCP servers?",
		Default: false,
	})
	if err != nil {
		return stageDone, fmt.Errorf("asking about MCP servers: %w", err)
	}
	if !ok {
		return stageSummary, nil
	}
	return stageSelectServers, nil
}

func (r *run) chooseServers() (stage, error) {
	all := catalog.All()
	choices := make([]prompt.Choice, 0, len(all))
	for _, s := range all {
		choices = append(choices, prompt.Choice{Label: s.Label(), Value: s.ID, Checked: s.Recommended})
	}

	selected, err := r.Prompter.MultiSelect(prompt.MultiSelectQuestion{
		Key:     KeyServers,
		Message: "Select MCP servers to install:",
		Choices: choices,
	})
	if err != nil {
		return stageDone, fmt.Errorf("choosing MCP servers: %w", err)
	}
	if len(selected) == 0 {
		return stageSummary, nil
	}
	r.selected = selected
	return stageCollect, nil
}

func (r *run) collectServers() (stage, error) {
	records := make(map[string]catalog.ServerConfig, len(r.selected))

	for _, id := range r.selected {
		server, ok := catalog.Lookup(id)
		if !ok {
			r.Log.Debug("ignoring unknown MCP server", "id", id)
			continue
		}

		if server.TakesPaths() {
			dirs, err := r.filesystemPaths()
			if err != nil {
				return stageDone, err
			}
			records[id] = server.Record(nil, dirs...)
			continue
		}

		env, err := r.collectEnv(server)
		if err != nil {
			return stageDone, err
		}
		records[id] = server.Record(env)
	}

	r.report.Servers = records
	if len(records) == 0 {
		return stageSummary, nil
	}
	return stageWriteConfig, nil
}

// collectEnv asks for each environment variable of server. Required
// variables are asked again until the reply is non-empty; empty optional
// variables are left out.
func (r *run) collectEnv(server catalog.Server) (map[string]string, error) {
	env := make(map[string]string, len(server.Env))

	for _, ev := range server.Env {
		message := fmt.Sprintf("Enter %s for %s", ev.Name, server.Name)
		if ev.Optional {
			message += " (optional)"
		}

		for {
			value, err := r.Prompter.Input(prompt.InputQuestion{
				Key:      keyEnvPrefix + ev.Name,
				Message:  message + ":",
				Required: !ev.Optional,
				Secret:   isSecretName(ev.Name),
			})
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", ev.Name, err)
			}
			if value != "" {
				env[ev.Name] = value
				break
			}
			if ev.Optional {
				break
			}
			r.Printer.Warn("%s is required", ev.Name)
		}
	}
	return env, nil
}

// filesystemPaths asks for the filesystem server's allowed directories and
// keeps the ones that exist. With none left it falls back to the target
// directory.
func (r *run) filesystemPaths() ([]string, error) {
	target := r.report.TargetDir
	defaults := r.Env.DefaultFilesystemPaths(target)

	input, err := r.Prompter.Input(prompt.InputQuestion{
		Key:     KeyFilesystemPaths,
		Message: "Enter absolute paths for the Filesystem MCP server (comma separated):",
		Default: strings.Join(defaults, ", "),
	})
	if err != nil {
		return nil, fmt.Errorf("reading filesystem paths: %w", err)
	}

	var valid []string
	for _, p := range SplitPaths(input, r.Env) {
		info, err := r.Stat(p)
		switch {
		case err != nil:
			r.Printer.Warn("Path does not exist or is not accessible: %s", p)
		case !info.IsDir():
			r.Printer.Warn("Skipping non-directory path: %s", p)
		default:
			valid = append(valid, p)
		}
	}

	if len(valid) == 0 {
		r.Printer.Warn("No valid paths provided. Using target directory only.")
		valid = []string{target}
	}
	return valid, nil
}

func (r *run) writeConfig() (stage, error) {
	res, err := mcpconfig.Write(mcpconfig.Request{
		Servers:    r.report.Servers,
		TargetDir:  r.report.TargetDir,
		ConfigPath: r.report.ConfigPath,
	})
	if err != nil {
		r.Printer.Error("Could not write MCP configuration.")
		return stageDone, fmt.Errorf("writing MCP configuration: %w", err)
	}
	r.report.Config = res

	switch {
	case res.Fallback:
		r.Printer.Warn("Could not parse %s (%s); left it untouched.", res.ConfigPath, res.Reason)
		r.Printer.Success("MCP configuration saved to %s", res.WrittenPath)
		r.Printer.Warn("Manual merge required: copy the entries under %q into the %q section of %s",
			mcpconfig.KeyFallback, mcpconfig.KeyPrimary, res.ConfigPath)
	case res.Merged:
		r.Printer.Info("Found existing configuration at %s, merged.", res.ConfigPath)
		r.Printer.Success("OpenCode configuration updated at %s", res.WrittenPath)
	default:
		r.Printer.Success("OpenCode configuration written to %s", res.WrittenPath)
	}
	return stageSummary, nil
}

func (r *run) summarize() (stage, error) {
	rep := r.report
	p := r.Printer

	inv, err := installer.ReadInventory(rep.TargetDir, rep.Scope)
	if err != nil {
		r.Log.Warn("reading inventory", "error", err)
	}
	rep.Inventory = inv

	counts := installer.Summarize(rep.Copies)

	p.Println()
	p.Heading("Installation summary")
	p.KeyValue("Framework", rep.TargetDir)
	p.KeyValue("Config", rep.ConfigPath)
	p.KeyValue("Files", fmt.Sprintf("%d installed, %d skipped", counts[installer.CopyCopied], counts[installer.CopySkippedExists]))
	if inv != nil && inv.Total() > 0 {
		p.KeyValue("Available", fmt.Sprintf("%d agents, %d commands, %d skills",
			len(inv.Agents), len(inv.Commands), len(inv.Skills)))
	}
	if rep.Config != nil {
		p.KeyValue("MCP servers", strings.Join(rep.Config.Servers, ", "))
	}
	p.Println()

	md := nextSteps(rep.Scope)
	if err := p.Markdown(md); err != nil {
		r.Log.Debug("rendering next steps", "error", err)
		p.Println(md)
	}

	rep.Outcome = Completed
	return stageDone, nil
}

func nextSteps(scope paths.Scope) string {
	var b strings.Builder
	b.WriteString("## Next steps\n\n")
	b.WriteString("1. Read `AGENTS.md` for workflow guidelines\n")
	b.WriteString("2. Configure MCP servers if needed: `super-opencode install`\n")
	b.WriteString("3. Start OpenCode and try `/plan`\n\n")
	if scope == paths.ScopeGlobal {
		b.WriteString("The framework is now available globally, in every project.\n")
	} else {
		b.WriteString("The framework is installed in this project only.\n")
	}
	return b.String()
}

// relative shortens p to a path under the target directory when possible.
func (r *run) relative(p string) string {
	rel, err := filepath.Rel(r.report.TargetDir, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return filepath.ToSlash(rel)
}

// SplitPaths turns a comma-separated list into absolute, de-duplicated
// paths, keeping the first occurrence of each.
func SplitPaths(input string, env paths.Env) []string {
	var out []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		p := env.Abs(part)
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// isSecretName reports whether an environment variable likely holds a
// credential, so its prompt masks input.
func isSecretName(name string) bool {
	upper := strings.ToUpper(name)
	for _, marker := range []string{"TOKEN", "KEY", "SECRET", "PASSWORD"} {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
