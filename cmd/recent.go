package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mabhi256/heapdiff/internal/config"
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened heap dumps",
	Long: `Recent lists the dump files most recently opened by any command,
newest first. Files that no longer exist are marked.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Load()
		if err != nil {
			return err
		}
		if len(settings.RecentFiles) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No recent files")
			return nil
		}
		for i, path := range settings.RecentFiles {
			marker := ""
			if _, err := os.Stat(path); os.IsNotExist(err) {
				marker = "  (missing)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s%s\n", i+1, path, marker)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recentCmd)
}
