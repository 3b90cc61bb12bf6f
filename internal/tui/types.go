package tui

import (
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mabhi256/heapdiff/internal/dump"
)

type TabType int

const (
	TypesTab TabType = iota
	CompareTab
	ObjectsTab
	ChartTab
)

func (t TabType) String() string {
	switch t {
	case TypesTab:
		return "Types"
	case CompareTab:
		return "Compare"
	case ObjectsTab:
		return "Objects"
	case ChartTab:
		return "Chart"
	default:
		return "?"
	}
}

const lastTab = ChartTab

// progressState is shared between the load goroutine and the render loop.
type progressState struct {
	read  atomic.Int64
	total atomic.Int64
}

func (p *progressState) fraction() float64 {
	total := p.total.Load()
	if total == 0 {
		return 0
	}
	return float64(p.read.Load()) / float64(total)
}

type Model struct {
	mainPath  string
	otherPath string

	store *dump.Store
	other *dump.Store
	err   error

	loading      bool
	loadProgress *progressState
	progressBar  progress.Model

	currentTab TabType
	width      int
	height     int

	typesTable   table.Model
	compareTable table.Model
	objectsTable table.Model

	// Fuzzy filter over type names on the types/compare tabs.
	typeFilter textinput.Model
	filtering  bool

	// Object search inputs on the objects tab.
	idInput      textinput.Model
	attrInput    textinput.Model
	searchFocus  int // 0 = none, 1 = id, 2 = attr
	selectedType string

	chartTopN int

	keys KeyMap
	help help.Model
}

type KeyMap struct {
	Tab1   key.Binding
	Tab2   key.Binding
	Tab3   key.Binding
	Tab4   key.Binding
	Next   key.Binding
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Filter key.Binding
	Escape key.Binding
	Quit   key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Filter, k.Enter, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4},
		{k.Up, k.Down, k.Enter, k.Filter, k.Escape, k.Quit},
	}
}

func k(keys []string, help, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(help, desc),
	)
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Tab1:   k([]string{"1"}, "1", "types"),
		Tab2:   k([]string{"2"}, "2", "compare"),
		Tab3:   k([]string{"3"}, "3", "objects"),
		Tab4:   k([]string{"4"}, "4", "chart"),
		Next:   k([]string{"tab"}, "tab", "next tab"),
		Up:     k([]string{"up", "k"}, "↑/k", "up"),
		Down:   k([]string{"down", "j"}, "↓/j", "down"),
		Enter:  k([]string{"enter"}, "enter", "open type"),
		Filter: k([]string{"/"}, "/", "filter/search"),
		Escape: k([]string{"esc"}, "esc", "clear"),
		Quit:   k([]string{"q", "ctrl+c"}, "q", "quit"),
	}
}
