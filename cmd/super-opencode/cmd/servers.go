package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/superopencode/super-opencode/internal/catalog"
)

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "List the MCP servers the installer can configure",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		out := cmd.OutOrStdout()
		all := catalog.All()

		if asJSON {
			type envJSON struct {
				Name     string `json:"name"`
				Optional bool   `json:"optional"`
			}
			type serverJSON struct {
				ID          string    `json:"id"`
				Name        string    `json:"name"`
				Recommended bool      `json:"recommended"`
				Env         []envJSON `json:"env,omitempty"`
				Command     []string  `json:"command"`
			}

			list := make([]serverJSON, 0, len(all))
			for _, s := range all {
				sj := serverJSON{ID: s.ID, Name: s.Name, Recommended: s.Recommended, Command: s.Command()}
				for _, ev := range s.Env {
					sj.Env = append(sj.Env, envJSON{Name: ev.Name, Optional: ev.Optional})
				}
				list = append(list, sj)
			}
			data, err := json.MarshalIndent(list, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding servers: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		for _, s := range all {
			marker := " "
			if s.Recommended {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-20s %-20s %s\n", marker, s.ID, s.Name, envSummary(s))
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "* recommended")
		return nil
	},
}

// envSummary lists a server's variables, marking optional ones.
func envSummary(s catalog.Server) string {
	if s.TakesPaths() {
		return "allowed directories"
	}
	parts := make([]string, 0, len(s.Env))
	for _, ev := range s.Env {
		if ev.Optional {
			parts = append(parts, ev.Name+" (optional)")
		} else {
			parts = append(parts, ev.Name)
		}
	}
	return strings.Join(parts, ", ")
}

func init() {
	serversCmd.Flags().Bool("json", false, "Output as JSON")
	rootCmd.AddCommand(serversCmd)
}
