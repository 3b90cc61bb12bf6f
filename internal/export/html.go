package export

import (
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/mabhi256/heapdiff/internal/render"
)

//go:embed templates/report.html
var reportTemplate string

// ReportData contains everything the HTML report renders.
type ReportData struct {
	GeneratedAt time.Time
	MainPath    string
	OtherPath   string
	Types       []render.TypeRow
	Comparison  []render.ComparisonRow
}

// WriteHTMLReport renders a self-contained HTML report of the current
// display rows and writes it to outputPath. Returns the absolute path
// written.
func WriteHTMLReport(data *ReportData, outputPath string) (string, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return "", fmt.Errorf("unable to parse report template: %w", err)
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", fmt.Errorf("unable to create report file: %w", err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("unable to render report: %w", err)
	}
	return absPath, nil
}
