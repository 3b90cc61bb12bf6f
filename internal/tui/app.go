package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mabhi256/heapdiff/internal/config"
	"github.com/mabhi256/heapdiff/internal/dump"
	"github.com/mabhi256/heapdiff/utils"
)

const chromeHeight = 7 // tab bar + margins + status bar + help bar

type loadedMsg struct {
	store *dump.Store
	other *dump.Store
	err   error
}

type progressTickMsg time.Time

func initialModel(mainPath, otherPath string) *Model {
	typeFilter := textinput.New()
	typeFilter.Placeholder = "type name"
	typeFilter.CharLimit = 64

	idInput := textinput.New()
	idInput.Placeholder = "id substring"
	idInput.CharLimit = 64

	attrInput := textinput.New()
	attrInput.Placeholder = "attribute substring"
	attrInput.CharLimit = 64

	chartTopN := 10
	if settings, err := config.Load(); err == nil && settings.ChartTopN > 0 {
		chartTopN = settings.ChartTopN
	}

	return &Model{
		mainPath:     mainPath,
		otherPath:    otherPath,
		loading:      true,
		loadProgress: &progressState{},
		progressBar:  progress.New(progress.WithDefaultGradient()),
		typesTable:   newTypesTable(),
		compareTable: newCompareTable(),
		objectsTable: newObjectsTable(),
		typeFilter:   typeFilter,
		idInput:      idInput,
		attrInput:    attrInput,
		chartTopN:    chartTopN,
		keys:         DefaultKeyMap(),
		help:         help.New(),
	}
}

// Start runs the interactive browser until the user quits.
func Start(mainPath, otherPath string) error {
	program := tea.NewProgram(initialModel(mainPath, otherPath), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("unable to start TUI: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), progressTick())
}

// loadCmd loads the dump(s) off the render loop. Loads are serialized:
// the other dump starts only after the main one finished, and no query
// runs until loadedMsg lands.
func (m *Model) loadCmd() tea.Cmd {
	mainPath, otherPath := m.mainPath, m.otherPath
	state := m.loadProgress

	return func() tea.Msg {
		onProgress := func(bytesRead, totalBytes int64) {
			state.read.Store(bytesRead)
			state.total.Store(totalBytes)
		}

		loader := dump.NewAsyncLoader()
		if err := loader.Start(mainPath, onProgress); err != nil {
			return loadedMsg{err: err}
		}
		store, err := loader.Wait()
		if err != nil {
			return loadedMsg{err: err}
		}

		var other *dump.Store
		if otherPath != "" {
			if err := loader.Start(otherPath, onProgress); err != nil {
				return loadedMsg{err: err}
			}
			if other, err = loader.Wait(); err != nil {
				return loadedMsg{err: err}
			}
		}
		return loadedMsg{store: store, other: other}
	}
}

func progressTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return progressTickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeTables()

	case progressTickMsg:
		if m.loading {
			return m, progressTick()
		}

	case loadedMsg:
		m.loading = false
		m.err = msg.err
		m.store = msg.store
		m.other = msg.other
		if m.err == nil {
			m.rebuildTypesTable()
			if m.other != nil {
				m.rebuildCompareTable()
			}
			m.rebuildObjectsTable()
		}

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Text inputs swallow everything except escape/enter while focused.
	if m.filtering || m.searchFocus > 0 {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "1":
		m.currentTab = TypesTab
	case "2":
		if m.other != nil {
			m.currentTab = CompareTab
		}
	case "3":
		m.currentTab = ObjectsTab
	case "4":
		m.currentTab = ChartTab

	case "tab":
		m.nextTab(1)
	case "shift+tab":
		m.nextTab(-1)

	case "/":
		return m.startFiltering()

	case "esc":
		m.clearFilters()

	case "enter":
		m.openSelectedType()

	default:
		return m.forwardToTable(msg)
	}

	return m, nil
}

func (m *Model) nextTab(direction int) {
	step := func(tab TabType) TabType {
		if direction < 0 {
			return utils.GetPrevEnum(tab, lastTab)
		}
		return utils.GetNextEnum(tab, lastTab)
	}
	m.currentTab = step(m.currentTab)
	// Skip the compare tab in single-dump mode.
	if m.currentTab == CompareTab && m.other == nil {
		m.currentTab = step(m.currentTab)
	}
}

func (m *Model) startFiltering() (tea.Model, tea.Cmd) {
	switch m.currentTab {
	case TypesTab, CompareTab:
		m.filtering = true
		return m, m.typeFilter.Focus()
	case ObjectsTab:
		m.searchFocus = 1
		m.attrInput.Blur()
		return m, m.idInput.Focus()
	}
	return m, nil
}

func (m *Model) clearFilters() {
	switch m.currentTab {
	case TypesTab, CompareTab:
		m.typeFilter.SetValue("")
		m.rebuildTypesTable()
		if m.other != nil {
			m.rebuildCompareTable()
		}
	case ObjectsTab:
		m.idInput.SetValue("")
		m.attrInput.SetValue("")
		m.selectedType = ""
		m.rebuildObjectsTable()
	}
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurInputs()
		return m, nil
	case "enter":
		m.blurInputs()
		return m, nil
	case "tab":
		// On the objects tab, tab moves between the two search inputs.
		if m.searchFocus == 1 {
			m.searchFocus = 2
			m.idInput.Blur()
			return m, m.attrInput.Focus()
		}
		if m.searchFocus == 2 {
			m.searchFocus = 1
			m.attrInput.Blur()
			return m, m.idInput.Focus()
		}
	}

	var cmd tea.Cmd
	switch {
	case m.filtering:
		m.typeFilter, cmd = m.typeFilter.Update(msg)
		m.rebuildTypesTable()
		if m.other != nil {
			m.rebuildCompareTable()
		}
	case m.searchFocus == 1:
		m.idInput, cmd = m.idInput.Update(msg)
		m.rebuildObjectsTable()
	case m.searchFocus == 2:
		m.attrInput, cmd = m.attrInput.Update(msg)
		m.rebuildObjectsTable()
	}
	return m, cmd
}

func (m *Model) blurInputs() {
	m.filtering = false
	m.searchFocus = 0
	m.typeFilter.Blur()
	m.idInput.Blur()
	m.attrInput.Blur()
}

// openSelectedType jumps from the types/compare table to the objects tab
// scoped to the highlighted type.
func (m *Model) openSelectedType() {
	var row []string
	switch m.currentTab {
	case TypesTab:
		row = m.typesTable.SelectedRow()
	case CompareTab:
		row = m.compareTable.SelectedRow()
	default:
		return
	}
	if len(row) == 0 {
		return
	}
	m.selectedType = row[0]
	m.currentTab = ObjectsTab
	m.rebuildObjectsTable()
}

func (m *Model) forwardToTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentTab {
	case TypesTab:
		m.typesTable, cmd = m.typesTable.Update(msg)
	case CompareTab:
		m.compareTable, cmd = m.compareTable.Update(msg)
	case ObjectsTab:
		m.objectsTable, cmd = m.objectsTable.Update(msg)
	}
	return m, cmd
}

func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	if m.err != nil {
		return utils.ErrorStyle.Render(fmt.Sprintf("Failed to load dump:\n%v\n\nPress q to quit.", m.err))
	}

	if m.loading {
		return m.renderLoading()
	}

	var content string
	switch m.currentTab {
	case TypesTab:
		content = m.renderTypesTab()
	case CompareTab:
		content = m.renderCompareTab()
	case ObjectsTab:
		content = m.renderObjectsTab()
	case ChartTab:
		content = m.renderChartTab()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabBar(),
		content,
		m.renderStatusBar(),
		m.renderHelpBar(),
	)
}

func (m *Model) renderStatusBar() string {
	status := fmt.Sprintf("%s types  %s objects  %s",
		utils.FormatCount(len(m.store.Types)),
		utils.FormatCount(m.store.TotalObjects),
		m.store.TotalSize)
	if m.other != nil {
		status += fmt.Sprintf("  |  other: %s objects  %s",
			utils.FormatCount(m.other.TotalObjects), m.other.TotalSize)
	}
	return utils.StatusBarStyle.Width(m.width).Render(status)
}

func (m *Model) renderLoading() string {
	m.progressBar.Width = min(m.width-10, 50)
	bar := m.progressBar.ViewAs(m.loadProgress.fraction())

	read := utils.MemorySize(m.loadProgress.read.Load())
	total := utils.MemorySize(m.loadProgress.total.Load())
	label := fmt.Sprintf("Loading %s  (%s / %s)", m.mainPath, read, total)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		utils.BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center, utils.TextStyle.Render(label), bar)))
}

func (m *Model) renderTabBar() string {
	tabs := []TabType{TypesTab, CompareTab, ObjectsTab, ChartTab}

	var rendered []string
	for _, tab := range tabs {
		if tab == CompareTab && m.other == nil {
			continue
		}
		label := fmt.Sprintf("%d %s", int(tab)+1, tab)
		if tab == m.currentTab {
			rendered = append(rendered, utils.TabActiveStyle.Render(label))
		} else {
			rendered = append(rendered, utils.TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderHelpBar() string {
	return utils.HelpBarStyle.Width(m.width).Render(m.help.View(m.keys))
}
