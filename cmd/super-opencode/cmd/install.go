package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/superopencode/super-opencode/internal/framework"
	"github.com/superopencode/super-opencode/internal/prompt"
	"github.com/superopencode/super-opencode/internal/session"
	"github.com/superopencode/super-opencode/internal/ui"
)

// errNotTerminal is returned when the installer would prompt without a
// terminal to prompt on.
var errNotTerminal = errors.New("stdin is not a terminal; pass --answers <file> or --non-interactive")

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Run the installer",
	Long: `Install the Super OpenCode framework.

The installer asks where to install (global or project), which modules to
copy and whether existing files may be overwritten, then offers to add MCP
servers to opencode.json.

Answers can be supplied without a terminal:
  --answers answers.yaml   read answers from a YAML, JSON or TOML file
  --non-interactive        use SUPER_OPENCODE_* variables and defaults

Answer keys: scope, proceed, modules, overwrite, configure_mcp, servers,
filesystem_paths and env.<VARIABLE> (for example env.GITHUB_PERSONAL_ACCESS_TOKEN).
Each key can also be set as an environment variable, e.g.
SUPER_OPENCODE_SCOPE=project or SUPER_OPENCODE_ENV_GITHUB_PERSONAL_ACCESS_TOKEN.`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	addInstallFlags(installCmd)
	rootCmd.AddCommand(installCmd)
}

// addInstallFlags registers the flags shared by the root and install
// commands.
func addInstallFlags(cmd *cobra.Command) {
	cmd.Flags().String("answers", "", "Answers file (YAML, JSON or TOML); disables prompts")
	cmd.Flags().Bool("non-interactive", false, "Answer from SUPER_OPENCODE_* variables and defaults")
	cmd.Flags().String("source", "", "Install framework files from this directory instead of the built-in set")
}

func runInstall(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	env, projectDir, err := resolveEnv(cmd)
	if err != nil {
		return err
	}

	sourceDir, _ := cmd.Flags().GetString("source")
	source, err := framework.Open(sourceDir)
	if err != nil {
		return err
	}

	prompter, err := newPrompter(cmd, out)
	if err != nil {
		return err
	}

	log, closeLog := newLogger(cmd)
	defer func() { _ = closeLog() }()

	s := &session.Session{
		Prompter:   prompter,
		Env:        env,
		Source:     source,
		ProjectDir: projectDir,
		Printer:    ui.NewPrinter(out),
		Log:        log,
	}

	report, err := s.Run()
	if err != nil {
		return err
	}
	log.Debug("installer finished", "outcome", report.Outcome, "target", report.TargetDir)
	return nil
}

// newPrompter selects the answer source: an answers file, the environment,
// or the terminal.
func newPrompter(cmd *cobra.Command, out io.Writer) (prompt.Prompter, error) {
	answersPath, _ := cmd.Flags().GetString("answers")
	nonInteractive, _ := cmd.Flags().GetBool("non-interactive")

	if answersPath != "" || nonInteractive {
		answers, err := prompt.LoadAnswers(answersPath, out)
		if err != nil {
			return nil, fmt.Errorf("loading answers: %w", err)
		}
		return answers, nil
	}

	in := cmd.InOrStdin()
	if !ui.IsTerminal(in) {
		return nil, errNotTerminal
	}
	return prompt.NewTerminal(in, out), nil
}
