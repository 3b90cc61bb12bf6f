package tui

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mabhi256/heapdiff/internal/dump"
	"github.com/mabhi256/heapdiff/internal/render"
	"github.com/mabhi256/heapdiff/utils"
)

func newTable(columns []table.Column) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(utils.BorderColor).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(utils.InfoColor).
		Bold(false)
	t.SetStyles(styles)
	return t
}

func newTypesTable() table.Model {
	return newTable([]table.Column{
		{Title: "Type", Width: 32},
		{Title: "Objects", Width: 10},
		{Title: "Total Size", Width: 12},
	})
}

func newCompareTable() table.Model {
	return newTable([]table.Column{
		{Title: "Type", Width: 28},
		{Title: "Main", Width: 8},
		{Title: "Other", Width: 8},
		{Title: "New", Width: 6},
		{Title: "Del", Width: 6},
		{Title: "Δ Size", Width: 10},
		{Title: "Δ %", Width: 10},
	})
}

func newObjectsTable() table.Model {
	return newTable([]table.Column{
		{Title: "Type", Width: 20},
		{Title: "ID", Width: 16},
		{Title: "Size", Width: 8},
		{Title: "Status", Width: 10},
		{Title: "Attributes", Width: 50},
	})
}

func (m *Model) resizeTables() {
	height := max(m.height-chromeHeight, 3)
	for _, t := range []*table.Model{&m.typesTable, &m.compareTable, &m.objectsTable} {
		t.SetHeight(height)
	}
}

// filteredTypeNames narrows the store's type names by the fuzzy filter
// input. An empty pattern matches everything.
func (m *Model) filteredTypeNames() []string {
	names := m.store.TypeNames()
	pattern := m.typeFilter.Value()
	if pattern == "" {
		return names
	}

	matches := fuzzy.Find(pattern, names)
	filtered := make([]string, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, match.Str)
	}
	return filtered
}

func (m *Model) rebuildTypesTable() {
	if m.store == nil {
		return
	}

	aggs := m.store.FilterByType(m.filteredTypeNames())
	rows := render.TypeRows(aggs)

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, table.Row{
			row.Type,
			utils.FormatCount(row.NumObjects),
			row.TotalSize.String(),
		})
	}

	m.typesTable.SetRows(tableRows)
	m.resizeTables()
}

func (m *Model) rebuildCompareTable() {
	if m.store == nil || m.other == nil {
		return
	}

	comparison := dump.Compare(m.store, m.other)

	names := m.filteredTypeNames()
	keep := make(map[string]bool, len(names))
	for _, name := range names {
		keep[name] = true
	}
	if m.typeFilter.Value() != "" {
		for name := range comparison {
			if !keep[name] {
				delete(comparison, name)
			}
		}
	}

	rows := render.ComparisonRows(comparison)
	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		delta := int64(row.SizeChange)
		tableRows = append(tableRows, table.Row{
			row.Type,
			utils.FormatCount(row.NumObjectsMain),
			utils.FormatCount(row.NumObjectsOther),
			strconv.Itoa(row.NumNewObjects),
			strconv.Itoa(row.NumDeletedObjects),
			utils.GetSizeChangeStyle(delta).Render(row.SizeChange.String()),
			render.FormatPercent(row.SizePercentChange),
		})
	}

	m.compareTable.SetRows(tableRows)
	m.resizeTables()
}

func (m *Model) rebuildObjectsTable() {
	if m.store == nil {
		return
	}

	query := dump.SearchQuery{
		Type:          m.selectedType,
		IDSubstring:   m.idInput.Value(),
		AttrSubstring: m.attrInput.Value(),
		AllTypes:      m.selectedType == "",
	}
	aggs := m.store.SearchObjects(query)

	var statuses map[string]map[string]dump.ObjectStatus
	if m.other != nil {
		statuses = make(map[string]map[string]dump.ObjectStatus, len(aggs))
		for typeName := range aggs {
			statuses[typeName] = m.store.ObjectStatuses(typeName, m.other)
		}
		// Types present only in the other dump still need their statuses
		// so their objects can surface as New below.
		for typeName := range m.other.Types {
			if _, ok := statuses[typeName]; ok {
				continue
			}
			if m.selectedType != "" && typeName != m.selectedType {
				continue
			}
			statuses[typeName] = m.store.ObjectStatuses(typeName, m.other)
		}
	}

	rows := render.ObjectRows(aggs, statuses)

	// Objects that only exist in the other dump never show up in the main
	// aggregates, so the New rows get appended from the other side. Search
	// input narrows to the main dump only.
	if m.other != nil && query.IDSubstring == "" && query.AttrSubstring == "" {
		for typeName, byID := range statuses {
			otherAgg, ok := m.other.Types[typeName]
			if !ok {
				continue
			}
			for objID, status := range byID {
				if status != dump.StatusNew {
					continue
				}
				obj, ok := otherAgg.Objects[objID]
				if !ok {
					continue
				}
				rows = append(rows, render.ObjectRow{
					Type:   typeName,
					ID:     objID,
					Size:   obj.Size,
					Attrs:  render.AttrSummary(obj),
					Status: status.String(),
				})
			}
		}
		slices.SortFunc(rows, func(a, b render.ObjectRow) int {
			if c := cmp.Compare(a.Type, b.Type); c != 0 {
				return c
			}
			return cmp.Compare(a.ID, b.ID)
		})
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		tableRows = append(tableRows, table.Row{
			row.Type,
			row.ID,
			row.Size.String(),
			row.Status,
			utils.TruncateString(row.Attrs, 48),
		})
	}

	m.objectsTable.SetRows(tableRows)
	m.resizeTables()
}

func (m *Model) renderTypesTab() string {
	header := utils.TitleStyle.Render(fmt.Sprintf("%s  %s types, %s objects, %s",
		m.mainPath,
		utils.FormatCount(len(m.store.Types)),
		utils.FormatCount(m.store.TotalObjects),
		m.store.TotalSize))

	lines := []string{header}
	if m.filtering || m.typeFilter.Value() != "" {
		lines = append(lines, utils.HeaderStyle.Render("Filter")+" "+m.typeFilter.View())
	}
	lines = append(lines, m.typesTable.View())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderCompareTab() string {
	header := utils.TitleStyle.Render(fmt.Sprintf("%s  →  %s", m.mainPath, m.otherPath))

	delta := int64(m.other.TotalSize - m.store.TotalSize)
	percent := 0.0
	if m.store.TotalSize != 0 {
		percent = float64(delta) / float64(m.store.TotalSize) * 100
	}
	trend := fmt.Sprintf("%s %s (%s)",
		utils.GetTrendIcon(percent),
		utils.GetSizeChangeStyle(delta).Render(utils.MemorySize(delta).String()),
		render.FormatPercent(percent))

	lines := []string{header, trend}
	if m.filtering || m.typeFilter.Value() != "" {
		lines = append(lines, utils.HeaderStyle.Render("Filter")+" "+m.typeFilter.View())
	}
	lines = append(lines, m.compareTable.View())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) renderObjectsTab() string {
	scope := "all types"
	if m.selectedType != "" {
		scope = m.selectedType
	}
	header := utils.TitleStyle.Render("Objects: " + scope)

	lines := []string{header}
	if m.searchFocus > 0 || m.idInput.Value() != "" || m.attrInput.Value() != "" {
		search := lipgloss.JoinHorizontal(lipgloss.Top,
			utils.HeaderStyle.Render("ID")+" "+m.idInput.View(),
			"  "+utils.HeaderStyle.Render("Attr")+" "+m.attrInput.View())
		lines = append(lines, search)
	}
	lines = append(lines, m.objectsTable.View())
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
