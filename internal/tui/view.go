package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/hotelcal/internal/constants"
	"github.com/julianstephens/hotelcal/internal/engine"
	"github.com/julianstephens/hotelcal/internal/models"
	"github.com/julianstephens/hotelcal/internal/tui/components/grid"
)

// maxBannerConflicts caps the conflicts listed under the grid.
const maxBannerConflicts = 3

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case constants.StateGrid:
		content = m.viewGrid()
	case constants.StateRooms:
		content = docStyle.Render(m.roomsModel.View())
	case constants.StateMonth:
		content = docStyle.Render(m.monthModel.View())
	case constants.StateBulkEdit, constants.StateRangeEdit, constants.StateFilter, constants.StateJumpDate:
		content = m.viewForm()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewHeader(),
		content,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	tabTitles := []string{"Grid", "Rooms", "Month"}
	active := m.state
	if active >= constants.TabCount {
		active = m.previousState
	}
	for i, title := range tabTitles {
		if active == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	tabs = append(tabs, inactiveTabStyle.Render(m.source))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// viewHeader is always one line so the grid starts at gridTop.
func (m Model) viewHeader() string {
	header := rangeStyle.Render(m.engine.Window().Label())
	if f := m.engine.Filter(); f != engine.AllRooms {
		rt, _ := m.engine.Store().Room(f)
		header += filterStyle.Render("  " + rt.Name)
	} else {
		header += filterStyle.Render("  All rooms")
	}
	if m.validationWarning != "" {
		header += "  " + warningStyle.Render(m.validationWarning)
	}
	return header
}

func (m Model) viewGrid() string {
	g := m.grid
	if sess, ok := m.engine.Editing(); ok {
		kind, _ := models.KindFor(sess.Field)
		g.Edit = &grid.Edit{
			RoomID: sess.RoomID,
			Index:  sess.Index,
			Kind:   kind,
			Text:   m.input.Value(),
		}
	}

	parts := []string{g.View(m.engine), m.viewStatus()}
	if banner := m.viewConflictBanner(); banner != "" {
		parts = append(parts, banner)
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render(m.status)
	}
	return statusStyle.Render(m.status)
}

func (m Model) viewConflictBanner() string {
	if len(m.validationConflicts) == 0 {
		return ""
	}
	var lines []string
	for i, c := range m.validationConflicts {
		if i == maxBannerConflicts {
			lines = append(lines, warningStyle.Render(fmt.Sprintf("  ... and %d more (run 'hotelcal validate')", len(m.validationConflicts)-maxBannerConflicts)))
			break
		}
		lines = append(lines, warningStyle.Render("  "+c.Description))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewForm() string {
	if m.form == nil {
		return ""
	}
	view := m.form.View()
	if m.formError != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, errorStyle.Render(m.formError))
	}
	return docStyle.Render(view)
}
