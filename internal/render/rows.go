package render

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/mabhi256/heapdiff/internal/dump"
	"github.com/mabhi256/heapdiff/utils"
)

// Display rows are the only thing the output layers (CLI tables, TUI,
// CSV/JSON/HTML export) ever see. They are computed once from the core's
// structured results; formatting decisions stop here and never feed back
// into the model.

// TypeRow is one line of a single-dump type summary.
type TypeRow struct {
	Type       string
	NumObjects int
	TotalSize  utils.MemorySize
}

// TypeRows flattens type aggregates, largest total size first.
func TypeRows(aggs map[string]*dump.TypeAggregate) []TypeRow {
	rows := make([]TypeRow, 0, len(aggs))
	for name, agg := range aggs {
		rows = append(rows, TypeRow{
			Type:       name,
			NumObjects: agg.NumObjects,
			TotalSize:  agg.TotalSize,
		})
	}
	slices.SortFunc(rows, func(a, b TypeRow) int {
		if c := cmp.Compare(b.TotalSize, a.TotalSize); c != 0 {
			return c
		}
		return cmp.Compare(a.Type, b.Type)
	})
	return rows
}

// ComparisonRow is one line of a two-dump comparison table.
type ComparisonRow struct {
	Type              string
	NumObjectsMain    int
	NumObjectsOther   int
	NumNewObjects     int
	NumDeletedObjects int
	TotalSizeMain     utils.MemorySize
	TotalSizeOther    utils.MemorySize
	SizeChange        utils.MemorySize
	SizePercentChange float64
}

// ComparisonRows flattens comparison entries, biggest absolute size change
// first.
func ComparisonRows(comparison map[string]*dump.ComparisonEntry) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(comparison))
	for name, entry := range comparison {
		rows = append(rows, ComparisonRow{
			Type:              name,
			NumObjectsMain:    entry.NumObjectsMain,
			NumObjectsOther:   entry.NumObjectsOther,
			NumNewObjects:     entry.NumNewObjects,
			NumDeletedObjects: entry.NumDeletedObjects,
			TotalSizeMain:     entry.TotalSizeMain,
			TotalSizeOther:    entry.TotalSizeOther,
			SizeChange:        entry.SizeChange,
			SizePercentChange: entry.SizePercentChange,
		})
	}
	slices.SortFunc(rows, func(a, b ComparisonRow) int {
		absA, absB := a.SizeChange, b.SizeChange
		if absA < 0 {
			absA = -absA
		}
		if absB < 0 {
			absB = -absB
		}
		if c := cmp.Compare(absB, absA); c != 0 {
			return c
		}
		return cmp.Compare(a.Type, b.Type)
	})
	return rows
}

// ObjectRow is one line of a per-object listing. Status is empty outside
// of comparisons.
type ObjectRow struct {
	Type   string
	ID     string
	Size   utils.MemorySize
	Attrs  string
	Status string
}

// ObjectRows flattens the objects of the given aggregates. statuses may be
// nil; when present it is keyed by object id per type.
func ObjectRows(aggs map[string]*dump.TypeAggregate, statuses map[string]map[string]dump.ObjectStatus) []ObjectRow {
	var rows []ObjectRow
	for typeName, agg := range aggs {
		for objID, obj := range agg.Objects {
			row := ObjectRow{
				Type:  typeName,
				ID:    objID,
				Size:  obj.Size,
				Attrs: AttrSummary(obj),
			}
			if statuses != nil {
				if byID, ok := statuses[typeName]; ok {
					if status, ok := byID[objID]; ok {
						row.Status = status.String()
					}
				}
			}
			rows = append(rows, row)
		}
	}
	slices.SortFunc(rows, func(a, b ObjectRow) int {
		if c := cmp.Compare(a.Type, b.Type); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return rows
}

// AttrSummary renders an object's attributes as "k=v" pairs in stable
// order, references in their Type:ID form.
func AttrSummary(obj *dump.RawObject) string {
	if len(obj.Attrs) == 0 {
		return ""
	}
	names := make([]string, 0, len(obj.Attrs))
	for name := range obj.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, obj.Attrs[name].Text()))
	}
	return strings.Join(parts, ", ")
}

// FormatPercent renders a percent change with its sign.
func FormatPercent(percent float64) string {
	return fmt.Sprintf("%+.2f%%", percent)
}
