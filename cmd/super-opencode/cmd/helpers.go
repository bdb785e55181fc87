package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/superopencode/super-opencode/internal/logging"
	"github.com/superopencode/super-opencode/internal/paths"
)

// resolveEnv captures the process environment, with the --dir flag as the
// working directory when set.
func resolveEnv(cmd *cobra.Command) (paths.Env, string, error) {
	env, err := paths.FromOS()
	if err != nil {
		return paths.Env{}, "", err
	}

	dir, _ := cmd.Flags().GetString("dir")
	if dir == "" {
		return env, env.WorkDir, nil
	}
	return env, env.Abs(dir), nil
}

// newLogger builds the debug logger from --verbose and --log-file.
func newLogger(cmd *cobra.Command) (*slog.Logger, func() error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logFile, _ := cmd.Flags().GetString("log-file")
	return logging.New(logging.Options{
		Verbose: verbose,
		Stderr:  cmd.ErrOrStderr(),
		File:    logFile,
	})
}

// scopeLabel is the title-cased scope name used in listings.
func scopeLabel(s paths.Scope) string {
	switch s {
	case paths.ScopeGlobal:
		return "Global"
	case paths.ScopeProject:
		return "Project"
	default:
		return fmt.Sprintf("%q", string(s))
	}
}
