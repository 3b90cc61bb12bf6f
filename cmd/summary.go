package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/mabhi256/heapdiff/internal/dump"
	"github.com/mabhi256/heapdiff/internal/export"
	"github.com/mabhi256/heapdiff/internal/render"
)

var (
	summaryMinSize string
	summaryMaxSize string
	summaryTypes   []string
	summaryOutput  string
	summaryFile    string
	summaryBars    bool
)

var summaryCmd = &cobra.Command{
	Use:               "summary [dump.json]",
	Short:             "Summarize a heap dump by object type",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeDumpFiles,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		validFormats := []string{"cli", "csv", "json"}
		summaryOutput = resolveOutputFormat(cmd, summaryOutput, validFormats)
		if !slices.Contains(validFormats, summaryOutput) {
			return fmt.Errorf("invalid output format: %s. Valid options: %v", summaryOutput, validFormats)
		}
		if _, err := parseSizeFlag(summaryMinSize); err != nil {
			return err
		}
		if _, err := parseSizeFlag(summaryMaxSize); err != nil {
			return err
		}
		return checkDumpFileArg(args[0])
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		store, err := loadStoreTracked(args[0])
		if err != nil {
			return err
		}

		minSize, _ := parseSizeFlag(summaryMinSize)
		maxSize, _ := parseSizeFlag(summaryMaxSize)
		result := dump.Run(store, nil, dump.Query{
			MinSize: minSize,
			MaxSize: maxSize,
			Types:   summaryTypes,
		})

		rows := render.TypeRows(result.Aggregates)

		w, closeOutput, err := outputWriter(summaryFile)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeOutput(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		switch summaryOutput {
		case "csv":
			return export.WriteTypesCSV(w, rows)
		case "json":
			return export.WriteJSON(w, rows)
		default:
			fmt.Fprintln(w, render.TypeTable(rows, store.TotalObjects, store.TotalSize))
			if summaryBars && len(rows) > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, render.SizeBars(rows, store.TotalSize, 30))
			}
			if len(store.Warnings) > 0 {
				fmt.Fprintf(w, "\n%d field warning(s); re-run with --verbose for details\n", len(store.Warnings))
			}
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringVar(&summaryMinSize, "min-size", "", "Keep types with total size >= this (e.g. 1M)")
	summaryCmd.Flags().StringVar(&summaryMaxSize, "max-size", "", "Keep types with total size <= this (e.g. 2G)")
	summaryCmd.Flags().StringSliceVar(&summaryTypes, "type", nil, "Restrict to the named object types")
	summaryCmd.Flags().StringVarP(&summaryOutput, "output", "o", "cli", "Output format")
	summaryCmd.Flags().StringVarP(&summaryFile, "file", "f", "", "Write output to a file instead of stdout")
	summaryCmd.Flags().BoolVar(&summaryBars, "bars", false, "Show per-type size bars")

	registerOutputCompletion(summaryCmd, []string{"cli", "csv", "json"})
}
