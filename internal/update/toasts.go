package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/views"
)

// toast shows text until the configured duration elapses.
func (m *Model) toast(level, text string) tea.Cmd {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	m.nextToastID++
	id := m.nextToastID
	m.Toasts = append(m.Toasts, Toast{
		ID:    id,
		Text:  text,
		Level: level,
		At:    m.now(),
	})
	if len(m.Toasts) > maxToasts {
		m.Toasts = m.Toasts[len(m.Toasts)-maxToasts:]
	}
	return tea.Tick(m.toastTTL, func(time.Time) tea.Msg { return toastExpiredMsg{ID: id} })
}

func (m *Model) dropToast(id int) {
	kept := make([]Toast, 0, len(m.Toasts))
	for _, t := range m.Toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.Toasts = kept
}

func (m Model) renderToasts() string {
	data := make([]views.ToastData, 0, len(m.Toasts))
	for _, t := range m.Toasts {
		data = append(data, views.ToastData{Level: t.Level, Text: t.Text})
	}
	return views.RenderToasts(data)
}
