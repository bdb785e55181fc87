package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version info set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "super-opencode",
	Short: "Install the Super OpenCode framework and configure MCP servers",
	Long: `Super OpenCode installs agents, slash commands and skills for OpenCode,
either globally for every project or into the current project, and can add
MCP server entries to opencode.json.

Run without arguments to start the interactive installer.`,
	Args:          cobra.NoArgs,
	RunE:          runInstall,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "super-opencode %s (commit: %s, built: %s)\n", Version, Commit, Date)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Project directory (default: current directory)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Write debug logs to stderr")
	rootCmd.PersistentFlags().String("log-file", "", "Write debug logs to a rotating file")
	addInstallFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
