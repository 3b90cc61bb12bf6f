package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mabhi256/heapdiff/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [dump.json] [other.json]",
	Short: "Browse a heap dump interactively",
	Long: `Tui opens an interactive browser over one heap dump, or over the diff
of two. Tabs: type summary, comparison (with two dumps), object search,
and a chart of the biggest types.`,
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: completeDumpFiles,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			if err := checkDumpFileArg(arg); err != nil {
				return err
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		otherPath := ""
		if len(args) == 2 {
			otherPath = args[1]
		}
		return tui.Start(args[0], otherPath)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
