package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/model"
)

// handleCalendarKey moves the selected date. ok is false for keys it does
// not own.
func (m Model) handleCalendarKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	var next time.Time
	switch msg.String() {
	case "h", "left":
		next = m.SelectedDate.AddDate(0, 0, -1)
	case "l", "right":
		next = m.SelectedDate.AddDate(0, 0, 1)
	case "H":
		next = m.SelectedDate.AddDate(0, 0, -7)
	case "L":
		next = m.SelectedDate.AddDate(0, 0, 7)
	case "[":
		next = shiftMonth(m.SelectedDate, -1)
	case "]":
		next = shiftMonth(m.SelectedDate, 1)
	case "t":
		next = m.now().In(m.loc)
	default:
		return m, nil, false
	}
	updated, cmd := m.selectDate(next)
	return updated, cmd, true
}

func (m Model) selectDate(d time.Time) (Model, tea.Cmd) {
	d = dateOnly(d.In(m.loc))
	changed := !d.Equal(m.SelectedDate)
	m.SelectedDate = d
	if changed {
		m.Cursor = 0
		m.Tasks = nil
		m.Stats = model.DayStats{}
		m.refreshDetail()
	}
	m.Loading = true
	m.Status = StatusBar{Text: "date: " + m.selectedKey()}
	return m, tea.Batch(m.loadCmd(m.selectedKey(), ""), m.loadSpinner.Tick)
}

// shiftMonth keeps the day of month, clamped to the target month's length.
func shiftMonth(d time.Time, delta int) time.Time {
	first := time.Date(d.Year(), d.Month()+time.Month(delta), 1, 0, 0, 0, 0, d.Location())
	last := first.AddDate(0, 1, -1).Day()
	day := d.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, d.Location())
}
