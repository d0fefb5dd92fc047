package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/engine"
	"github.com/julianstephens/hotelcal/internal/tui/components/grid"
	"github.com/julianstephens/hotelcal/internal/tui/components/month"
	"github.com/julianstephens/hotelcal/internal/tui/components/rooms"
	"github.com/julianstephens/hotelcal/internal/tui/handlers"
	"github.com/julianstephens/hotelcal/internal/validation"
)

// gridTop is the screen line the grid starts on: tabs, then the range line.
const gridTop = 2

type Model struct {
	engine              *engine.Engine
	source              string
	state               constants.SessionState
	previousState       constants.SessionState
	keys                KeyMap
	help                help.Model
	grid                grid.Model
	roomsModel          rooms.Model
	monthModel          month.Model
	input               textinput.Model
	form                *huh.Form
	bulkForm            *handlers.BulkFormModel
	rangeForm           *handlers.RangeFormModel
	filterForm          *handlers.FilterFormModel
	jumpForm            *handlers.JumpFormModel
	formError           string
	status              string
	statusErr           bool
	validationWarning   string                // Validation warning message to display
	validationConflicts []validation.Conflict // Detailed conflict information
	quitting            bool
	width               int
	height              int
}

// NewModel creates the TUI over eng. source names the feed in the header.
func NewModel(eng *engine.Engine, source string) Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 9

	m := Model{
		engine:     eng,
		source:     source,
		state:      constants.StateGrid,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		roomsModel: rooms.New(0, 0),
		monthModel: month.New(0, 0),
		input:      input,
	}
	m.grid.ShowCursor = true
	m.grid.Sync(eng)
	if len(m.grid.RoomIDs) > 0 {
		m.grid.Cursor = grid.Cursor{RoomID: m.grid.RoomIDs[0]}
	}
	m.refresh()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateGrid:
		if _, editing := m.engine.Editing(); editing {
			return []key.Binding{
				key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
				key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "save and leave")),
				key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "discard")),
			}
		}
		keys = append(keys, m.keys.Select, m.keys.Drag, m.keys.Next, m.keys.Previous)
	case constants.StateMonth:
		keys = append(keys, m.monthModel.Keys.PrevMonth, m.monthModel.Keys.NextMonth)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right, m.keys.Next, m.keys.Previous}

	var actions []key.Binding
	switch m.state {
	case constants.StateGrid:
		actions = []key.Binding{m.keys.Select, m.keys.Drag, m.keys.Cancel, m.keys.Jump, m.keys.Filter, m.keys.Bulk}
	case constants.StateMonth:
		actions = []key.Binding{m.monthModel.Keys.PrevMonth, m.monthModel.Keys.NextMonth}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// refresh brings every view in line with the engine's current store.
func (m *Model) refresh() {
	m.grid.Sync(m.engine)
	m.roomsModel.SetRooms(m.engine.Store(), m.engine.Filter())
	m.monthModel.SetStore(m.engine.Store())
	m.updateValidationStatus()
}

// updateValidationStatus runs validation and updates the warning message
func (m *Model) updateValidationStatus() {
	result := validation.New().ValidateStore(m.engine.Store())
	m.validationConflicts = result.Conflicts

	if len(result.Conflicts) > 0 {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s)", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func (m *Model) setStatus(msg string) {
	m.status, m.statusErr = msg, false
}

func (m *Model) setError(err error) {
	m.status, m.statusErr = err.Error(), true
}
