package render

import (
	"fmt"
	"strings"

	"github.com/mabhi256/heapdiff/utils"
)

// Plain-text tables for CLI output. Column widths adapt to content; sizes
// stay in their human-readable form.

func TypeTable(rows []TypeRow, totalObjects int, totalSize utils.MemorySize) string {
	headers := []string{"TYPE", "OBJECTS", "TOTAL SIZE"}
	cells := make([][]string, 0, len(rows)+1)
	for _, row := range rows {
		cells = append(cells, []string{
			row.Type,
			utils.FormatCount(row.NumObjects),
			row.TotalSize.String(),
		})
	}
	cells = append(cells, []string{"(total)", utils.FormatCount(totalObjects), totalSize.String()})
	return textTable(headers, cells)
}

func ComparisonTable(rows []ComparisonRow) string {
	headers := []string{"TYPE", "MAIN", "OTHER", "NEW", "DELETED", "SIZE MAIN", "SIZE OTHER", "CHANGE", "CHANGE %"}
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		cells = append(cells, []string{
			row.Type,
			utils.FormatCount(row.NumObjectsMain),
			utils.FormatCount(row.NumObjectsOther),
			utils.FormatCount(row.NumNewObjects),
			utils.FormatCount(row.NumDeletedObjects),
			row.TotalSizeMain.String(),
			row.TotalSizeOther.String(),
			row.SizeChange.String(),
			FormatPercent(row.SizePercentChange),
		})
	}
	return textTable(headers, cells)
}

func ObjectTable(rows []ObjectRow, withStatus bool) string {
	headers := []string{"TYPE", "ID", "SIZE", "ATTRIBUTES"}
	if withStatus {
		headers = append(headers, "STATUS")
	}
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := []string{
			row.Type,
			row.ID,
			row.Size.String(),
			utils.TruncateString(row.Attrs, 60),
		}
		if withStatus {
			line = append(line, row.Status)
		}
		cells = append(cells, line)
	}
	return textTable(headers, cells)
}

func textTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}

	writeRow(headers)
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimRight(b.String(), "\n")
}
