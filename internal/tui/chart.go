package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/heapdiff/internal/render"
	"github.com/mabhi256/heapdiff/utils"
)

var chartBarStyle = lipgloss.NewStyle().Foreground(utils.InfoColor)

// renderChartTab draws the top N types by total size as a bar chart.
func (m *Model) renderChartTab() string {
	rows := render.TypeRows(m.store.Types)
	if len(rows) > m.chartTopN {
		rows = rows[:m.chartTopN]
	}
	if len(rows) == 0 {
		return utils.MutedStyle.Render("No types to chart.")
	}

	width := max(m.width-4, 20)
	height := max(m.height-chromeHeight-2, 5)

	bc := barchart.New(width, height)
	data := make([]barchart.BarData, 0, len(rows))
	for _, row := range rows {
		data = append(data, barchart.BarData{
			Label: utils.TruncateString(row.Type, 12),
			Values: []barchart.BarValue{
				{Name: row.Type, Value: float64(row.TotalSize), Style: chartBarStyle},
			},
		})
	}
	bc.PushAll(data)
	bc.Draw()

	title := utils.TitleStyle.Render(fmt.Sprintf("Top %d types by total size", len(rows)))

	var legend []string
	for _, row := range rows {
		legend = append(legend, fmt.Sprintf("%s  %s (%s objects)",
			utils.PadRight(utils.TruncateString(row.Type, 24), 24),
			row.TotalSize,
			utils.FormatCount(row.NumObjects)))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		bc.View(),
		utils.MutedStyle.Render(lipgloss.JoinVertical(lipgloss.Left, legend...)),
	)
}
