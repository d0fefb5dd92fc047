package rooms

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/models"
)

// FilterRoomMsg asks the grid to show only ID; an empty ID shows every room.
type FilterRoomMsg struct {
	ID string
}

// ShowMonthMsg asks for the month calendar of ID.
type ShowMonthMsg struct {
	ID string
}

type Item struct {
	Room       models.RoomType
	Closed     int
	Overbooked int
	Active     bool
}

func (i Item) Title() string {
	if i.Active {
		return "▸ " + i.Room.Name
	}
	return i.Room.Name
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | %d days | %d closed", i.Room.ID, i.Room.Data.Len(), i.Closed)
	if i.Overbooked > 0 {
		desc += fmt.Sprintf(" | %d overbooked", i.Overbooked)
	}
	return desc
}

func (i Item) FilterValue() string { return i.Room.Name + " " + i.Room.ID }

type KeyMap struct {
	Show  key.Binding
	All   key.Binding
	Month key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Show: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "show in grid"),
		),
		All: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all rooms"),
		),
		Month: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "month view"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Room types"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Show, keys.All, keys.Month}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Show, keys.All, keys.Month}
	}

	return Model{list: l, keys: keys}
}

// Items summarizes every room of s; active marks the room the grid is filtered to.
func Items(s *inventory.Store, active string) []Item {
	var items []Item
	for _, rt := range s.Rooms() {
		it := Item{Room: rt, Active: rt.ID == active}
		for _, closed := range s.ClosedDates(rt.ID) {
			if closed {
				it.Closed++
			}
		}
		// misaligned series report -1 and are counted by the validator instead
		for i := 0; i < rt.Data.Len(); i++ {
			if rt.Data.NetBooked[i] > rt.Data.RoomsToSell[i] {
				it.Overbooked++
			}
		}
		items = append(items, it)
	}
	return items
}

func (m *Model) SetRooms(s *inventory.Store, active string) {
	items := Items(s, active)
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}
	m.list.SetItems(listItems)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Show):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return FilterRoomMsg{ID: i.Room.ID} }
			}
		case key.Matches(msg, m.keys.All):
			return m, func() tea.Msg { return FilterRoomMsg{} }
		case key.Matches(msg, m.keys.Month):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ShowMonthMsg{ID: i.Room.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No room types in this feed.\n  Run 'hotelcal init' to create one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
