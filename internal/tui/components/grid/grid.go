// Package grid renders the room-by-date inventory table and maps terminal
// coordinates back to cells for mouse gestures.
package grid

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hotelcal/internal/engine"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/selection"
	"github.com/julianstephens/hotelcal/internal/utils"
)

const (
	// LabelWidth is the width of the row header column.
	LabelWidth = 18
	// CellWidth is one date column: five characters of content plus a separator.
	CellWidth = 6
	// HeaderLines are the month, day-of-month and weekday lines.
	HeaderLines = 3
	// RowsPerRoom is the room name line followed by the data rows.
	RowsPerRoom = 5

	contentWidth = CellWidth - 1
)

// Lines of a room block below its name line.
const (
	lineName = iota
	lineStatus
	lineRoomsToSell
	lineNetBooked
	lineRates
)

var (
	monthStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	dayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	weekdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	weekendStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	roomNameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	openStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	closedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("124"))

	readOnlyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	overbookedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	dragStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("238"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("62"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)

	editStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("231")).
			Background(lipgloss.Color("25")).
			Underline(true)

	saturdayStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

const (
	openGlyph   = "·"
	closedGlyph = "✕"
)

// Hit is the cell under a terminal position.
type Hit struct {
	RoomID string
	Index  int
	Kind   models.CellKind
}

// Layout is the geometry of a rendered grid. Coordinates passed to its
// methods are relative to the grid's top-left corner.
type Layout struct {
	RoomIDs []string
	Days    int
	// Offset is the first window index drawn.
	Offset int
	// Width limits the number of date columns; zero draws them all.
	Width int
}

// Columns returns the number of date columns drawn.
func (l Layout) Columns() int {
	cols := l.Days - l.Offset
	if l.Width > 0 {
		fit := (l.Width - LabelWidth) / CellWidth
		if fit < 1 {
			fit = 1
		}
		if fit < cols {
			cols = fit
		}
	}
	if cols < 0 {
		return 0
	}
	return cols
}

// Height returns the number of lines the grid occupies.
func (l Layout) Height() int {
	return HeaderLines + len(l.RoomIDs)*RowsPerRoom
}

// Column maps x to a window index.
func (l Layout) Column(x int) (int, bool) {
	if x < LabelWidth {
		return 0, false
	}
	col := (x - LabelWidth) / CellWidth
	if col >= l.Columns() {
		return 0, false
	}
	return l.Offset + col, true
}

// RoomAt maps y to the room whose block contains it, name line included.
func (l Layout) RoomAt(y int) (string, bool) {
	if y < HeaderLines {
		return "", false
	}
	block := (y - HeaderLines) / RowsPerRoom
	if block >= len(l.RoomIDs) {
		return "", false
	}
	return l.RoomIDs[block], true
}

// HitTest maps a position to an editable cell. The name and net booked lines
// are not editable and never hit.
func (l Layout) HitTest(x, y int) (Hit, bool) {
	idx, ok := l.Column(x)
	if !ok {
		return Hit{}, false
	}
	roomID, ok := l.RoomAt(y)
	if !ok {
		return Hit{}, false
	}
	kind, ok := kindAt((y - HeaderLines) % RowsPerRoom)
	if !ok {
		return Hit{}, false
	}
	return Hit{RoomID: roomID, Index: idx, Kind: kind}, true
}

// CellY returns the line a room's row is drawn on, for the room at position
// room of RoomIDs.
func (l Layout) CellY(room int, kind models.CellKind) int {
	return HeaderLines + room*RowsPerRoom + lineFor(kind)
}

// ScrollTo returns the offset that keeps idx visible, moving as little as possible.
func (l Layout) ScrollTo(idx int) int {
	cols := l.Columns()
	if cols == 0 {
		return l.Offset
	}
	switch {
	case idx < l.Offset:
		return idx
	case idx >= l.Offset+cols:
		return idx - cols + 1
	}
	return l.Offset
}

func kindAt(line int) (models.CellKind, bool) {
	switch line {
	case lineStatus:
		return models.CellStatus, true
	case lineRoomsToSell:
		return models.CellRoomsToSell, true
	case lineRates:
		return models.CellRates, true
	}
	return 0, false
}

func lineFor(kind models.CellKind) int {
	switch kind {
	case models.CellRoomsToSell:
		return lineRoomsToSell
	case models.CellRates:
		return lineRates
	default:
		return lineStatus
	}
}

// Cursor is the keyboard position.
type Cursor struct {
	RoomID string
	Index  int
	Kind   models.CellKind
}

// Edit is the inline editor drawn over a cell.
type Edit struct {
	RoomID string
	Index  int
	Kind   models.CellKind
	Text   string
}

// Model is the drawable grid state owned by the TUI.
type Model struct {
	Layout
	Cursor     Cursor
	ShowCursor bool
	Edit       *Edit
}

// Sync refreshes the layout from the engine's visible rooms and window.
func (m *Model) Sync(e *engine.Engine) {
	rooms := e.VisibleRooms()
	ids := make([]string, 0, len(rooms))
	for _, rt := range rooms {
		ids = append(ids, rt.ID)
	}
	m.RoomIDs = ids
	m.Days = e.Window().Len()
	if m.Offset > m.Days-1 {
		m.Offset = 0
	}
}

// View draws the visible part of the window for every visible room.
func (m Model) View(e *engine.Engine) string {
	w := e.Window()
	cols := m.Columns()
	if cols == 0 || len(m.RoomIDs) == 0 {
		return hintStyle.Render("No rooms to show.")
	}
	dates := w.Dates[m.Offset : m.Offset+cols]

	lines := make([]string, 0, m.Height())
	lines = append(lines, m.monthLine(e, dates))
	lines = append(lines, m.dayLine(dates), m.weekdayLine(dates))

	machine := e.Machine()
	store := e.Store()
	for _, roomID := range m.RoomIDs {
		rt, _ := store.Room(roomID)
		name := roomNameStyle.Render(rt.Name)
		if store.HasClosedDates(roomID) {
			name += hintStyle.Render("  has closed dates")
		}
		lines = append(lines, name)

		closedAt := make(map[int]bool)
		for _, seg := range e.Segments(roomID) {
			if seg.Status != models.SegmentClosed {
				continue
			}
			for i := seg.StartIndex; i <= seg.EndIndex; i++ {
				closedAt[i] = true
			}
		}

		var status, rooms, booked, rates strings.Builder
		status.WriteString(label(models.CellStatus.Label()))
		rooms.WriteString(label(models.CellRoomsToSell.Label()))
		booked.WriteString(label("Net booked"))
		rates.WriteString(label(models.CellRates.Label()))

		for col, d := range dates {
			idx := m.Offset + col
			sep := separator(d)

			glyph, style := openGlyph, openStyle
			if closedAt[idx] {
				glyph, style = closedGlyph, closedStyle
			}
			status.WriteString(m.cell(machine, roomID, idx, models.CellStatus, center(glyph), style))
			// closed runs read as one bar
			if closedAt[idx] && closedAt[idx+1] && col < len(dates)-1 && d.Weekday() != time.Saturday {
				sep = closedStyle.Render(" ")
			}
			status.WriteString(sep)

			sell := store.Value(roomID, models.FieldRoomsToSell, d)
			rooms.WriteString(m.cell(machine, roomID, idx, models.CellRoomsToSell, number(sell), lipgloss.NewStyle()))
			rooms.WriteString(separator(d))

			net := store.Value(roomID, models.FieldNetBooked, d)
			bookedStyle := readOnlyStyle
			if net > sell {
				bookedStyle = overbookedStyle
			}
			booked.WriteString(bookedStyle.Render(number(net)))
			booked.WriteString(separator(d))

			rate := store.Value(roomID, models.FieldRates, d)
			rates.WriteString(m.cell(machine, roomID, idx, models.CellRates, number(rate), lipgloss.NewStyle()))
			rates.WriteString(separator(d))
		}
		lines = append(lines, status.String(), rooms.String(), booked.String(), rates.String())
	}
	return strings.Join(lines, "\n")
}

// cell renders one editable cell, layering drag, cursor and editor styles over base.
func (m Model) cell(h selection.Machine, roomID string, idx int, kind models.CellKind, text string, base lipgloss.Style) string {
	if e := m.Edit; e != nil && e.RoomID == roomID && e.Index == idx && e.Kind == kind {
		t := e.Text
		if r := []rune(t); len(r) > contentWidth {
			t = string(r[len(r)-contentWidth:])
		}
		return editStyle.Render(fmt.Sprintf("%-*s", contentWidth, t))
	}
	style := base
	switch {
	case h.InMultiCellRange(roomID, idx, kind):
		style = selectedStyle
	case h.InRange(roomID, idx):
		style = style.Background(dragStyle.GetBackground())
	}
	if m.ShowCursor && m.Cursor.RoomID == roomID && m.Cursor.Index == idx && m.Cursor.Kind == kind {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(text)
}

// monthLine writes each month title where the month starts. A window that is
// scrolled mid-month still names the month of its first column.
func (m Model) monthLine(e *engine.Engine, dates []time.Time) string {
	buf := []rune(strings.Repeat(" ", len(dates)*CellWidth))
	write := func(col int, title string) {
		for i, r := range []rune(title) {
			if p := col*CellWidth + i; p < len(buf) {
				buf[p] = r
			}
		}
	}
	headers := e.Window().MonthHeaders()
	startsAtHeader := false
	for _, h := range headers {
		if h.Index == m.Offset {
			startsAtHeader = true
		}
	}
	if !startsAtHeader && len(dates) > 0 {
		write(0, dates[0].Format("January 2006"))
	}
	for _, h := range headers {
		col := h.Index - m.Offset
		if col >= 0 && col < len(dates) {
			write(col, h.Title)
		}
	}
	return label("") + monthStyle.Render(string(buf))
}

func (m Model) dayLine(dates []time.Time) string {
	var b strings.Builder
	b.WriteString(label(""))
	for _, d := range dates {
		b.WriteString(dayStyle.Render(fmt.Sprintf("%*d", contentWidth, d.Day())))
		b.WriteString(separator(d))
	}
	return b.String()
}

func (m Model) weekdayLine(dates []time.Time) string {
	var b strings.Builder
	b.WriteString(label(""))
	for _, d := range dates {
		style := weekdayStyle
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			style = weekendStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%*s", contentWidth, utils.DayName(d))))
		b.WriteString(separator(d))
	}
	return b.String()
}

// separator closes a date column; weeks end with a rule after Saturday.
func separator(d time.Time) string {
	if d.Weekday() == time.Saturday {
		return saturdayStyle.Render("│")
	}
	return " "
}

func label(s string) string {
	r := []rune(s)
	if len(r) > LabelWidth-1 {
		r = append(r[:LabelWidth-2], '…')
	}
	return labelStyle.Render(fmt.Sprintf("%-*s", LabelWidth, string(r)))
}

func number(v int) string {
	return fmt.Sprintf("%*d", contentWidth, v)
}

func center(glyph string) string {
	pad := (contentWidth - 1) / 2
	return strings.Repeat(" ", pad) + glyph + strings.Repeat(" ", contentWidth-1-pad)
}
