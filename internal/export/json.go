package export

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
)

// WriteJSON serializes display rows as indented JSON.
func WriteJSON(w io.Writer, rows any) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to marshal rows: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("unable to write JSON: %w", err)
	}
	return nil
}
