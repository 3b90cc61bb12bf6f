package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/heapdiff/utils"
)

const (
	DefaultLabelWidth = 24
	DefaultFilledChar = "█"
	DefaultEmptyChar  = "▱"
	MinBarWidth       = 1
)

// SizeBarConfig defines the appearance of the per-type size bars.
type SizeBarConfig struct {
	BarAreaWidth int
	LabelWidth   int
	FilledChar   string
	EmptyChar    string
	ShowPercent  bool
}

func DefaultSizeBarConfig(barAreaWidth int) SizeBarConfig {
	return SizeBarConfig{
		BarAreaWidth: barAreaWidth,
		LabelWidth:   DefaultLabelWidth,
		FilledChar:   DefaultFilledChar,
		EmptyChar:    DefaultEmptyChar,
		ShowPercent:  true,
	}
}

// SizeBar builds one horizontal bar line for a type's share of the total
// heap: "Label │████▱▱▱│ 1.2M (42.0%)".
func SizeBar(row TypeRow, total utils.MemorySize, style lipgloss.Style, config SizeBarConfig) string {
	percentage := row.TotalSize.Ratio(total) * 100

	barWidth := max(MinBarWidth, int(percentage*float64(config.BarAreaWidth)/100))
	if barWidth > config.BarAreaWidth {
		barWidth = config.BarAreaWidth
	}
	emptyWidth := max(0, config.BarAreaWidth-barWidth)

	bar := strings.Repeat(config.FilledChar, barWidth) +
		strings.Repeat(config.EmptyChar, emptyWidth)
	styledBar := style.Render(bar)

	value := row.TotalSize.String()
	if config.ShowPercent {
		value = fmt.Sprintf("%s (%4.1f%%)", value, percentage)
	}

	label := utils.TruncateString(row.Type, config.LabelWidth)
	return fmt.Sprintf("%-*s │%s│ %s", config.LabelWidth, label, styledBar, value)
}

// SizeBars renders bars for the given rows against the grand total.
func SizeBars(rows []TypeRow, total utils.MemorySize, barAreaWidth int) string {
	config := DefaultSizeBarConfig(barAreaWidth)

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		style := utils.InfoStyle
		if row.TotalSize.Ratio(total) > 0.5 {
			style = utils.WarningStyle
		}
		b.WriteString(SizeBar(row, total, style, config))
	}
	return b.String()
}
