package cmd

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/mabhi256/heapdiff/internal/dump"
	"github.com/mabhi256/heapdiff/internal/export"
	"github.com/mabhi256/heapdiff/internal/render"
	"github.com/mabhi256/heapdiff/internal/tui"
)

var (
	compareMinSize  string
	compareMaxSize  string
	compareTypes    []string
	compareStatuses []string
	compareOutput   string
	compareFile     string
)

var compareCmd = &cobra.Command{
	Use:               "compare [main.json] [other.json]",
	Short:             "Diff two heap dumps by object type",
	Long: `Compare diffs two heap-dump snapshots. The first dump is the baseline
("main"), the second the one compared against it ("other"). Per type it
reports object counts on both sides, new/deleted object counts, and the
size delta with its percent change.`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeDumpFiles,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		validFormats := []string{"cli", "csv", "json", "html", "tui"}
		compareOutput = resolveOutputFormat(cmd, compareOutput, validFormats)
		if !slices.Contains(validFormats, compareOutput) {
			return fmt.Errorf("invalid output format: %s. Valid options: %v", compareOutput, validFormats)
		}
		if compareOutput == "html" && compareFile == "" {
			return fmt.Errorf("html output requires --file")
		}
		if _, err := parseStatusFlags(compareStatuses); err != nil {
			return err
		}
		for _, arg := range args {
			if err := checkDumpFileArg(arg); err != nil {
				return err
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		if compareOutput == "tui" {
			return tui.Start(args[0], args[1])
		}

		main, err := loadStoreTracked(args[0])
		if err != nil {
			return fmt.Errorf("unable to load main dump: %w", err)
		}
		other, err := loadStoreTracked(args[1])
		if err != nil {
			return fmt.Errorf("unable to load other dump: %w", err)
		}

		minSize, _ := parseSizeFlag(compareMinSize)
		maxSize, _ := parseSizeFlag(compareMaxSize)
		statuses, _ := parseStatusFlags(compareStatuses)

		result := dump.Run(main, other, dump.Query{
			MinSize:  minSize,
			MaxSize:  maxSize,
			Types:    compareTypes,
			Statuses: statuses,
		})
		rows := render.ComparisonRows(result.Comparison)

		if compareOutput == "html" {
			data := &export.ReportData{
				GeneratedAt: time.Now(),
				MainPath:    args[0],
				OtherPath:   args[1],
				Types:       render.TypeRows(result.Aggregates),
				Comparison:  rows,
			}
			path, err := export.WriteHTMLReport(data, compareFile)
			if err != nil {
				return err
			}
			fmt.Printf("Report written to %s\n", path)
			return nil
		}

		w, closeOutput, err := outputWriter(compareFile)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeOutput(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		switch compareOutput {
		case "csv":
			return export.WriteComparisonCSV(w, rows)
		case "json":
			return export.WriteJSON(w, rows)
		default:
			fmt.Fprintln(w, render.ComparisonTable(rows))
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&compareMinSize, "min-size", "", "Keep types with main total size >= this")
	compareCmd.Flags().StringVar(&compareMaxSize, "max-size", "", "Keep types with main total size <= this")
	compareCmd.Flags().StringSliceVar(&compareTypes, "type", nil, "Restrict to the named object types")
	compareCmd.Flags().StringSliceVar(&compareStatuses, "status", nil, "Keep types matching any status (new, deleted, old, modified)")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "cli", "Output format")
	compareCmd.Flags().StringVarP(&compareFile, "file", "f", "", "Write output to a file instead of stdout")

	registerOutputCompletion(compareCmd, []string{"cli", "csv", "json", "html", "tui"})
}
