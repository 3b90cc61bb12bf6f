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
	objectsID       string
	objectsAttr     string
	objectsAllTypes bool
	objectsCompare  string
	objectsOutput   string
	objectsFile     string
)

var objectsCmd = &cobra.Command{
	Use:   "objects [dump.json] [type]",
	Short: "List and search individual objects of a type",
	Long: `Objects lists the individual objects of one type, optionally narrowed
by an id substring and/or an attribute-value substring. With --all-types
the type argument may be omitted and every type is searched. With
--compare a second dump is loaded and each object gets its status
(Old, Modified, Deleted, New) against it.`,
	Args:              cobra.RangeArgs(1, 2),
	ValidArgsFunction: completeDumpFiles,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		validFormats := []string{"cli", "csv", "json"}
		objectsOutput = resolveOutputFormat(cmd, objectsOutput, validFormats)
		if !slices.Contains(validFormats, objectsOutput) {
			return fmt.Errorf("invalid output format: %s. Valid options: %v", objectsOutput, validFormats)
		}
		if len(args) < 2 && !objectsAllTypes {
			return fmt.Errorf("a type argument is required unless --all-types is set")
		}
		if objectsCompare != "" {
			if err := checkDumpFileArg(objectsCompare); err != nil {
				return err
			}
		}
		return checkDumpFileArg(args[0])
	},
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		store, err := loadStoreTracked(args[0])
		if err != nil {
			return err
		}

		query := dump.SearchQuery{
			IDSubstring:   objectsID,
			AttrSubstring: objectsAttr,
			AllTypes:      objectsAllTypes,
		}
		if len(args) == 2 {
			query.Type = args[1]
		}
		aggs := store.SearchObjects(query)

		var statuses map[string]map[string]dump.ObjectStatus
		if objectsCompare != "" {
			other, err := dump.Load(objectsCompare)
			if err != nil {
				return fmt.Errorf("unable to load comparison dump: %w", err)
			}
			statuses = make(map[string]map[string]dump.ObjectStatus, len(aggs))
			for typeName := range aggs {
				statuses[typeName] = store.ObjectStatuses(typeName, other)
			}
		}

		rows := render.ObjectRows(aggs, statuses)

		w, closeOutput, err := outputWriter(objectsFile)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := closeOutput(); cerr != nil && err == nil {
				err = cerr
			}
		}()

		switch objectsOutput {
		case "csv":
			return export.WriteObjectsCSV(w, rows, statuses != nil)
		case "json":
			return export.WriteJSON(w, rows)
		default:
			if len(rows) == 0 {
				fmt.Fprintln(w, "No matching objects")
				return nil
			}
			fmt.Fprintln(w, render.ObjectTable(rows, statuses != nil))
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(objectsCmd)

	objectsCmd.Flags().StringVar(&objectsID, "id", "", "Keep objects whose id contains this substring")
	objectsCmd.Flags().StringVar(&objectsAttr, "attr", "", "Keep objects with an attribute value containing this substring")
	objectsCmd.Flags().BoolVar(&objectsAllTypes, "all-types", false, "Search every object type")
	objectsCmd.Flags().StringVar(&objectsCompare, "compare", "", "Second dump to compute object statuses against")
	objectsCmd.Flags().StringVarP(&objectsOutput, "output", "o", "cli", "Output format")
	objectsCmd.Flags().StringVarP(&objectsFile, "file", "f", "", "Write output to a file instead of stdout")

	registerOutputCompletion(objectsCmd, []string{"cli", "csv", "json"})
}
