package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mabhi256/heapdiff/internal/dump"
	"github.com/mabhi256/heapdiff/utils"
)

var validateCmd = &cobra.Command{
	Use:               "validate [dump.json]",
	Short:             "Validate a heap dump file",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeDumpFiles,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := dump.Load(args[0])
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		fmt.Printf("✅ %s is a valid heap dump\n", args[0])
		fmt.Println(utils.FormatKeyValue("Types", utils.FormatCount(len(store.Types)), 12))
		fmt.Println(utils.FormatKeyValue("Objects", utils.FormatCount(store.TotalObjects), 12))
		fmt.Println(utils.FormatKeyValue("Total size", store.TotalSize.String(), 12))

		if len(store.Warnings) > 0 {
			fmt.Printf("\n⚠️  %d field warning(s):\n", len(store.Warnings))
			for _, warning := range store.Warnings {
				fmt.Printf("  %s\n", warning)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
