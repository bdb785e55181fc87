package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/superopencode/super-opencode/internal/paths"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show where each scope installs files and writes opencode.json",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, projectDir, err := resolveEnv(cmd)
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()

		type scopeJSON struct {
			Scope     paths.Scope `json:"scope"`
			Framework string      `json:"framework"`
			Config    string      `json:"config"`
		}
		var scopes []scopeJSON
		for _, scope := range []paths.Scope{paths.ScopeGlobal, paths.ScopeProject} {
			dir := env.FrameworkDir(scope, projectDir)
			scopes = append(scopes, scopeJSON{
				Scope:     scope,
				Framework: dir,
				Config:    env.ConfigFilePath(scope, dir),
			})
		}

		if asJSON {
			data, err := json.MarshalIndent(scopes, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding paths: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "Platform: %s\n", env.GOOS)
		fmt.Fprintf(out, "Home: %s\n", env.HomeDir)
		for _, s := range scopes {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s\n", scopeLabel(s.Scope))
			fmt.Fprintf(out, "  Framework: %s\n", s.Framework)
			fmt.Fprintf(out, "  Config:    %s\n", s.Config)
		}
		return nil
	},
}

func init() {
	pathsCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(pathsCmd)
}
