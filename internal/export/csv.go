package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mabhi256/heapdiff/internal/render"
)

// CSV export operates purely on already-computed display rows; it never
// touches the raw dump. Sizes are written as raw byte counts so the
// output stays machine-sortable.

func WriteTypesCSV(w io.Writer, rows []render.TypeRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"type", "num_objects", "total_size"}); err != nil {
		return fmt.Errorf("unable to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Type,
			strconv.Itoa(row.NumObjects),
			strconv.FormatInt(row.TotalSize.Bytes(), 10),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("unable to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteComparisonCSV(w io.Writer, rows []render.ComparisonRow) error {
	cw := csv.NewWriter(w)
	header := []string{
		"type", "num_objects_main", "num_objects_other",
		"num_new_objects", "num_deleted_objects",
		"total_size_main", "total_size_other",
		"size_change", "size_percent_change",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("unable to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Type,
			strconv.Itoa(row.NumObjectsMain),
			strconv.Itoa(row.NumObjectsOther),
			strconv.Itoa(row.NumNewObjects),
			strconv.Itoa(row.NumDeletedObjects),
			strconv.FormatInt(row.TotalSizeMain.Bytes(), 10),
			strconv.FormatInt(row.TotalSizeOther.Bytes(), 10),
			strconv.FormatInt(row.SizeChange.Bytes(), 10),
			strconv.FormatFloat(row.SizePercentChange, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("unable to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteObjectsCSV(w io.Writer, rows []render.ObjectRow, withStatus bool) error {
	cw := csv.NewWriter(w)
	header := []string{"type", "id", "size", "attributes"}
	if withStatus {
		header = append(header, "status")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("unable to write CSV header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.Type,
			row.ID,
			strconv.FormatInt(row.Size.Bytes(), 10),
			row.Attrs,
		}
		if withStatus {
			record = append(record, row.Status)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("unable to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
