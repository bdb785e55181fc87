// Package catalog is the static table of MCP servers the installer can
// configure, and the launch commands written for each of them.
//
// The table is built once at package initialization and never mutated;
// accessors hand out copies.
package catalog

import "slices"

// LaunchType is the only record type OpenCode accepts for stdio servers.
const LaunchType = "local"

// FilesystemID identifies the server that takes an allow-list of paths
// instead of environment variables.
const FilesystemID = "filesystem"

// EnvVar is an environment variable a server reads at launch.
type EnvVar struct {
	Name     string
	Optional bool
}

// Server describes one configurable MCP server.
type Server struct {
	ID          string
	Name        string
	Env         []EnvVar
	Recommended bool

	command []string
}

// ServerConfig is the record persisted under the "mcp" key of opencode.json.
type ServerConfig struct {
	Type        string            `json:"type"`
	Command     []string          `json:"command"`
	Environment map[string]string `json:"environment,omitempty"`
	Enabled     *bool             `json:"enabled,omitempty"`
}

// Label is the text shown in selection prompts.
func (s Server) Label() string {
	if s.Recommended {
		return s.Name + " (Recommended)"
	}
	return s.Name
}

// Command returns a copy of the server's base launch command.
func (s Server) Command() []string {
	return slices.Clone(s.command)
}

// TakesPaths reports whether the server is configured with an allow-list of
// directories appended to its command.
func (s Server) TakesPaths() bool {
	return s.ID == FilesystemID
}

// Record builds the persisted configuration for this server. Extra
// arguments are appended to the command after the base launch command;
// env is copied and omitted entirely when empty.
func (s Server) Record(env map[string]string, extraArgs ...string) ServerConfig {
	cfg := ServerConfig{
		Type:    LaunchType,
		Command: append(s.Command(), extraArgs...),
	}
	if len(env) > 0 {
		cfg.Environment = make(map[string]string, len(env))
		for k, v := range env {
			cfg.Environment[k] = v
		}
	}
	return cfg
}

var servers = []Server{
	{
		ID:          "context7",
		Name:        "Context7",
		Recommended: true,
		command:     []string{"npx", "-y", "@upstash/context7-mcp"},
	},
	{
		ID:          "serena",
		Name:        "Serena",
		Recommended: true,
		command: []string{
			"uvx", "--from", "git+https://github.com/oraios/serena",
			"serena", "start-mcp-server",
			"--context", "ide-assistant",
			"--enable-web-dashboard", "false",
			"--enable-gui-log-window", "false",
		},
	},
	{
		ID:          "tavily",
		Name:        "Tavily Search",
		Env:         []EnvVar{{Name: "TAVILY_API_KEY", Optional: true}},
		Recommended: true,
		command:     []string{"npx", "-y", "tavily-mcp@latest"},
	},
	{
		ID:          FilesystemID,
		Name:        "Filesystem",
		Recommended: true,
		command:     []string{"npx", "-y", "@modelcontextprotocol/server-filesystem"},
	},
	{
		ID:          "sequential-thinking",
		Name:        "Sequential Thinking",
		Recommended: true,
		command:     []string{"npx", "-y", "@modelcontextprotocol/server-sequential-thinking"},
	},
	{
		ID:      "github",
		Name:    "GitHub",
		Env:     []EnvVar{{Name: "GITHUB_PERSONAL_ACCESS_TOKEN"}},
		command: []string{"npx", "-y", "@modelcontextprotocol/server-github"},
	},
	{
		ID:      "sqlite",
		Name:    "SQLite",
		command: []string{"uvx", "mcp-server-sqlite", "--memory"},
	},
	{
		ID:      "chrome-devtools",
		Name:    "Chrome DevTools",
		command: []string{"npx", "-y", "chrome-devtools-mcp@latest"},
	},
	{
		ID:      "playwright",
		Name:    "Playwright",
		command: []string{"npx", "-y", "@playwright/mcp@latest"},
	},
}

var byID = func() map[string]int {
	m := make(map[string]int, len(servers))
	for i, s := range servers {
		m[s.ID] = i
	}
	return m
}()

// All returns every server in display order.
func All() []Server {
	out := make([]Server, len(servers))
	for i, s := range servers {
		out[i] = clone(s)
	}
	return out
}

// Lookup returns the server with the given identifier.
func Lookup(id string) (Server, bool) {
	i, ok := byID[id]
	if !ok {
		return Server{}, false
	}
	return clone(servers[i]), true
}

// IDs returns all server identifiers in display order.
func IDs() []string {
	ids := make([]string, len(servers))
	for i, s := range servers {
		ids[i] = s.ID
	}
	return ids
}

func clone(s Server) Server {
	s.Env = slices.Clone(s.Env)
	s.command = slices.Clone(s.command)
	return s
}
