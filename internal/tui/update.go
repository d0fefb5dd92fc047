package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/hotelcal/internal/bulkedit"
	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/engine"
	"github.com/julianstephens/hotelcal/internal/logger"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/selection"
	"github.com/julianstephens/hotelcal/internal/tui/components/grid"
	"github.com/julianstephens/hotelcal/internal/tui/components/rooms"
	"github.com/julianstephens/hotelcal/internal/tui/handlers"
	"github.com/julianstephens/hotelcal/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.grid.Width = msg.Width
		m.grid.Offset = m.grid.ScrollTo(m.grid.Cursor.Index)
		m.roomsModel.SetSize(msg.Width-4, msg.Height-6)
		m.monthModel.SetSize(msg.Width-4, msg.Height-6)
		return m, nil
	}

	switch m.state {
	case constants.StateBulkEdit, constants.StateRangeEdit, constants.StateFilter, constants.StateJumpDate:
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case rooms.FilterRoomMsg:
		m.applyFilter(msg.ID)
		m.state = constants.StateGrid
		return m, nil
	case rooms.ShowMonthMsg:
		m.monthModel.SetRoom(m.engine.Store(), msg.ID, m.engine.Window().Start)
		m.state = constants.StateMonth
		return m, nil
	case tea.MouseMsg:
		if m.state == constants.StateGrid {
			return m.updateMouse(msg)
		}
	case tea.KeyMsg:
		if m.state == constants.StateGrid {
			if _, editing := m.engine.Editing(); editing {
				return m.updateEditor(msg)
			}
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			m.switchTab(1)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.switchTab(-1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case constants.StateGrid:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return m.updateGridKeys(msg)
		}
	case constants.StateRooms:
		m.roomsModel, cmd = m.roomsModel.Update(msg)
	case constants.StateMonth:
		m.monthModel, cmd = m.monthModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab(step int) {
	if m.engine.Machine().Active {
		m.engine.CancelDrag()
	}
	m.state = constants.SessionState((int(m.state) + step + constants.TabCount) % constants.TabCount)
}

// updateMouse feeds left-button gestures on the grid into the drag machine.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button != tea.MouseButtonLeft && msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionRelease {
		return m, nil
	}
	y := msg.Y - gridTop

	switch msg.Action {
	case tea.MouseActionPress:
		if _, editing := m.engine.Editing(); editing {
			m.blurEditor()
		}
		hit, ok := m.grid.HitTest(msg.X, y)
		if !ok {
			return m, nil
		}
		m.grid.Cursor = grid.Cursor(hit)
		m.engine.PointerDown(hit.RoomID, hit.Index, hit.Kind)
	case tea.MouseActionMotion:
		if !m.engine.Machine().Active {
			return m, nil
		}
		roomID, okRoom := m.grid.RoomAt(y)
		idx, okCol := m.grid.Column(msg.X)
		if okRoom && okCol {
			m.engine.PointerMove(roomID, idx)
		}
	case tea.MouseActionRelease:
		if !m.engine.Machine().Active {
			return m, nil
		}
		out, err := m.engine.PointerUp()
		return m.handleOutcome(out, err)
	}
	return m, nil
}

// updateGridKeys drives the same machine from the keyboard: select is a click
// at the cursor, v anchors a drag that cursor moves extend.
func (m Model) updateGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Select):
		c := m.grid.Cursor
		if c.RoomID == "" {
			return m, nil
		}
		if !m.engine.Machine().Active {
			m.engine.PointerDown(c.RoomID, c.Index, c.Kind)
		}
		out, err := m.engine.PointerUp()
		return m.handleOutcome(out, err)
	case key.Matches(msg, m.keys.Drag):
		c := m.grid.Cursor
		if c.RoomID != "" && !m.engine.Machine().Active {
			m.engine.PointerDown(c.RoomID, c.Index, c.Kind)
			m.setStatus("Selecting: move the cursor, then enter")
		}
	case key.Matches(msg, m.keys.Cancel):
		if m.engine.Machine().Active {
			m.engine.CancelDrag()
			m.setStatus("Selection cancelled")
		}
	case key.Matches(msg, m.keys.Next):
		m.engine.CancelDrag()
		m.engine.Next()
		m.grid.Sync(m.engine)
	case key.Matches(msg, m.keys.Previous):
		m.engine.CancelDrag()
		m.engine.Previous()
		m.grid.Sync(m.engine)
	case key.Matches(msg, m.keys.Jump):
		m.engine.CancelDrag()
		m.jumpForm = &handlers.JumpFormModel{Date: utils.DateKey(m.engine.Window().Start)}
		return m.openForm(constants.StateJumpDate, handlers.NewJumpForm(m.jumpForm))
	case key.Matches(msg, m.keys.Filter):
		m.engine.CancelDrag()
		m.filterForm = &handlers.FilterFormModel{RoomID: m.engine.Filter()}
		return m.openForm(constants.StateFilter, handlers.NewFilterForm(m.filterForm, m.engine.Store().Rooms()))
	case key.Matches(msg, m.keys.Bulk):
		m.engine.CancelDrag()
		w := m.engine.Window()
		m.rangeForm = handlers.NewRangeFormModel(m.engine.Filter(), w.Start, w.End())
		return m.openForm(constants.StateRangeEdit, handlers.NewRangeForm(m.rangeForm, m.engine.Store().Rooms()))
	}
	return m, nil
}

// moveCursor steps the cursor by rows (across every room block) and dates.
func (m *Model) moveCursor(dRow, dCol int) {
	rows := m.cursorRows()
	if len(rows) == 0 {
		return
	}
	c := m.grid.Cursor
	pos := 0
	for i, r := range rows {
		if r.RoomID == c.RoomID && r.Kind == c.Kind {
			pos = i
		}
	}
	pos = clamp(pos+dRow, 0, len(rows)-1)
	c.RoomID, c.Kind = rows[pos].RoomID, rows[pos].Kind
	c.Index = clamp(c.Index+dCol, 0, m.engine.Window().Len()-1)
	m.grid.Cursor = c
	m.grid.Offset = m.grid.ScrollTo(c.Index)

	if m.engine.Machine().Active {
		m.engine.PointerMove(c.RoomID, c.Index)
	}
}

func (m Model) cursorRows() []grid.Cursor {
	var rows []grid.Cursor
	for _, id := range m.grid.RoomIDs {
		for _, kind := range models.CellKinds {
			rows = append(rows, grid.Cursor{RoomID: id, Kind: kind})
		}
	}
	return rows
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// handleOutcome reports what a released gesture did and opens the editor or
// bulk form it asks for.
func (m Model) handleOutcome(out engine.Outcome, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		logger.Warn("gesture failed", "action", out.Action.String(), "room", out.RoomID, "error", err)
		m.setError(err)
		return m, nil
	}

	switch out.Action {
	case selection.ActionToggleDate, selection.ActionStatusRange:
		date, _ := m.engine.Window().Date(out.Lo)
		verb := "Opened"
		if m.engine.Store().IsClosed(out.RoomID, date) {
			verb = "Closed"
		}
		m.setStatus(fmt.Sprintf("%s %s", verb, m.rangeLabel(out.Resolution)))
	case selection.ActionEditCell:
		if out.Session != nil {
			m.input.SetValue(out.Session.Initial)
			m.input.CursorEnd()
			m.setStatus(fmt.Sprintf("Editing %s on %s", out.Session.Field, utils.FormatDate(out.Session.Date)))
			cmd := m.input.Focus()
			return m, cmd
		}
	case selection.ActionBulkEdit:
		if out.Bulk != nil {
			rt, _ := m.engine.Store().Room(out.RoomID)
			m.bulkForm = &handlers.BulkFormModel{}
			return m.openForm(constants.StateBulkEdit, handlers.NewBulkForm(m.bulkForm, *out.Bulk, rt.Name))
		}
	}
	if out.Changed {
		m.refresh()
	}
	return m, nil
}

func (m Model) rangeLabel(res selection.Resolution) string {
	w := m.engine.Window()
	lo, _ := w.Date(res.Lo)
	if res.Len() == 1 {
		return utils.FormatDate(lo)
	}
	hi, _ := w.Date(res.Hi)
	return fmt.Sprintf("%s (%d dates)", utils.FormatDateRange(lo, hi), res.Len())
}

// updateEditor routes keys to the inline cell editor.
func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		changed, err := m.engine.CommitEdit(m.input.Value())
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.closeEditor(changed)
		return m, nil
	case tea.KeyTab:
		m.blurEditor()
		return m, nil
	case tea.KeyEsc:
		m.engine.CancelEdit()
		m.closeEditor(false)
		m.setStatus("Edit discarded")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) blurEditor() {
	changed, err := m.engine.BlurEdit(m.input.Value())
	m.closeEditor(changed)
	if err != nil {
		m.setError(err)
	}
}

func (m *Model) closeEditor(changed bool) {
	m.input.Blur()
	m.input.SetValue("")
	if changed {
		m.setStatus("Saved")
		m.refresh()
	}
}

func (m *Model) applyFilter(roomID string) {
	if err := m.engine.SetFilter(roomID); err != nil {
		m.setError(err)
		return
	}
	m.engine.CancelDrag()
	m.grid.Sync(m.engine)
	m.grid.Cursor = grid.Cursor{Index: m.grid.Cursor.Index}
	if len(m.grid.RoomIDs) > 0 {
		m.grid.Cursor.RoomID = m.grid.RoomIDs[0]
	}
	m.roomsModel.SetRooms(m.engine.Store(), roomID)
	if roomID == engine.AllRooms {
		m.setStatus("Showing all rooms")
	} else {
		rt, _ := m.engine.Store().Room(roomID)
		m.setStatus("Showing " + rt.Name)
	}
}

func (m Model) openForm(state constants.SessionState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.previousState = m.state
	m.state = state
	m.form = form
	m.formError = ""
	return m, m.form.Init()
}

func (m *Model) closeForm() {
	m.state = m.previousState
	m.form = nil
	m.formError = ""
}

// updateForm runs the active huh form and applies it once completed.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		if m.state == constants.StateBulkEdit {
			m.engine.DiscardPending()
		}
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitForm(); err != nil {
			// Stay in the form so the values can be corrected
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return m, tea.Batch(cmds...)
		}
		m.closeForm()
	case huh.StateAborted:
		if m.state == constants.StateBulkEdit {
			m.engine.DiscardPending()
		}
		m.closeForm()
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) submitForm() error {
	switch m.state {
	case constants.StateBulkEdit:
		res, err := m.engine.ApplyPending(m.bulkForm.RoomsToSell, m.bulkForm.Price, m.bulkForm.Status)
		if err != nil {
			return err
		}
		m.reportBulk([]bulkedit.Result{res})
	case constants.StateRangeEdit:
		req, all, err := m.rangeForm.Request()
		if err != nil {
			return err
		}
		results, err := m.engine.ApplyBulk(req, all)
		if err != nil {
			return err
		}
		m.reportBulk(results)
	case constants.StateFilter:
		m.applyFilter(m.filterForm.RoomID)
	case constants.StateJumpDate:
		date, err := m.jumpForm.Target()
		if err != nil {
			return err
		}
		m.engine.JumpTo(date)
		m.grid.Sync(m.engine)
		m.setStatus("Showing " + m.engine.Window().Label())
	}
	return nil
}

func (m *Model) reportBulk(results []bulkedit.Result) {
	dates, rejected := 0, 0
	for _, r := range results {
		dates += r.Affected
		rejected += len(r.Rejected)
	}
	m.refresh()
	if dates == 0 {
		m.setStatus("No dates in the window matched the range")
		return
	}
	msg := fmt.Sprintf("Bulk edit applied to %d date(s) in %d room type(s)", dates, len(results))
	if rejected > 0 {
		m.status, m.statusErr = msg+fmt.Sprintf(", %d field(s) rejected", rejected), true
		return
	}
	m.setStatus(msg)
}
