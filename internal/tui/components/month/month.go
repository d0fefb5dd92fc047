package month

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hotelcal/internal/calendar"
	"github.com/julianstephens/hotelcal/internal/inventory"
	"github.com/julianstephens/hotelcal/internal/utils"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	closedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	outsideStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

const closedMark = "✕"

type KeyMap struct {
	PrevMonth key.Binding
	NextMonth key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevMonth: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev month"),
		),
		NextMonth: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next month"),
		),
	}
}

// Model shows one calendar month of a room's closed dates.
type Model struct {
	viewport viewport.Model
	Keys     KeyMap
	store    *inventory.Store
	roomID   string
	month    time.Time
}

func New(width, height int) Model {
	return Model{
		viewport: viewport.New(width, height),
		Keys:     DefaultKeyMap(),
		month:    firstOfMonth(utils.Today()),
	}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.Keys.PrevMonth):
			m.month = m.month.AddDate(0, -1, 0)
			m.Render()
			return m, nil
		case key.Matches(msg, m.Keys.NextMonth):
			m.month = m.month.AddDate(0, 1, 0)
			m.Render()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.roomID == "" {
		return "No room selected. Pick one on the Rooms tab and press 'm'."
	}
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetRoom points the view at roomID and the month containing date.
func (m *Model) SetRoom(s *inventory.Store, roomID string, date time.Time) {
	m.store = s
	m.roomID = roomID
	m.month = firstOfMonth(date)
	m.Render()
}

// SetStore refreshes the data after an edit without moving the view.
func (m *Model) SetStore(s *inventory.Store) {
	m.store = s
	m.Render()
}

func (m Model) Month() time.Time { return m.month }

func (m *Model) Render() {
	m.viewport.SetContent(Render(m.store, m.roomID, m.month))
}

// Render draws the month of roomID. Days outside the feed's data range are dimmed.
func Render(s *inventory.Store, roomID string, month time.Time) string {
	if s == nil || roomID == "" {
		return ""
	}
	rt, ok := s.Room(roomID)
	if !ok {
		return fmt.Sprintf("Unknown room type %q", roomID)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s: %s", rt.Name, month.Format("January 2006"))))
	b.WriteString("\n")

	for _, d := range []time.Weekday{time.Sunday, time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday} {
		b.WriteString(weekdayStyle.Render(fmt.Sprintf("%4s", d.String()[:2])))
	}
	b.WriteString("\n")

	n := rt.Data.Len()
	closedCount := 0
	for _, week := range calendar.MonthGrid(month.Year(), month.Month()) {
		for _, day := range week {
			if day == nil {
				b.WriteString("    ")
				continue
			}
			idx := utils.DaysBetween(s.Base(), *day)
			switch {
			case s.IsClosed(roomID, *day):
				closedCount++
				b.WriteString(closedStyle.Render(fmt.Sprintf(" %2d%s", day.Day(), closedMark)))
			case idx < 0 || idx >= n:
				b.WriteString(outsideStyle.Render(fmt.Sprintf(" %2d ", day.Day())))
			default:
				b.WriteString(fmt.Sprintf(" %2d ", day.Day()))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%d closed date(s) this month", closedCount)))
	return b.String()
}
