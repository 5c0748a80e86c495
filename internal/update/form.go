package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/views"
)

func (m *Model) openForm() {
	m.resetForm()
	m.Form.Active = true
	m.focusField(FieldTitle)
	m.Status = StatusBar{Text: "new task for " + m.selectedKey()}
}

// resetForm restores the defaults a fresh form starts with: medium
// priority, notifications on, empty fields.
func (m *Model) resetForm() {
	m.Form = FormState{
		Focus:         FieldTitle,
		Priority:      model.PriorityMedium,
		Notifications: true,
	}
	m.titleInput.SetValue("")
	m.timeInput.SetValue("")
	m.descArea.Reset()
	m.titleInput.Blur()
	m.timeInput.Blur()
	m.descArea.Blur()
}

func (m *Model) focusField(f FormField) {
	m.Form.Focus = f
	m.titleInput.Blur()
	m.timeInput.Blur()
	m.descArea.Blur()
	switch f {
	case FieldTitle:
		m.titleInput.Focus()
	case FieldDescription:
		m.descArea.Focus()
	case FieldTime:
		m.timeInput.Focus()
	case FieldPriority, FieldNotifications:
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.resetForm()
		m.Status = StatusBar{Text: "add cancelled"}
		return m, nil
	case "tab":
		m.focusField((m.Form.Focus + 1) % formFieldCount)
		return m, nil
	case "shift+tab":
		m.focusField((m.Form.Focus + formFieldCount - 1) % formFieldCount)
		return m, nil
	case "ctrl+p":
		m.Form.Priority = m.Form.Priority.Next()
		return m, nil
	case "ctrl+s":
		return m.submitForm()
	case "enter":
		if m.Form.Focus == FieldDescription {
			m.descArea.InsertRune('\n')
			return m, nil
		}
		return m.submitForm()
	case " ":
		switch m.Form.Focus {
		case FieldPriority:
			m.Form.Priority = m.Form.Priority.Next()
			return m, nil
		case FieldNotifications:
			m.Form.Notifications = !m.Form.Notifications
			return m, nil
		case FieldTitle, FieldDescription, FieldTime:
		}
	}

	switch m.Form.Focus {
	case FieldTitle:
		m.titleInput = editInput(m.titleInput, msg)
	case FieldTime:
		m.timeInput = editInput(m.timeInput, msg)
	case FieldDescription:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.descArea.InsertString(string(msg.Runes))
		} else {
			m.descArea, _ = m.descArea.Update(msg)
		}
	case FieldPriority, FieldNotifications:
	}
	return m, nil
}

func editInput(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		in.SetValue(in.Value() + string(msg.Runes))
		return in
	}
	in, _ = in.Update(msg)
	return in
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	draft := model.Draft{
		Title:         strings.TrimSpace(m.titleInput.Value()),
		Description:   strings.TrimSpace(m.descArea.Value()),
		Date:          m.selectedKey(),
		Time:          strings.TrimSpace(m.timeInput.Value()),
		Priority:      m.Form.Priority,
		Notifications: m.Form.Notifications,
	}
	switch {
	case draft.Title == "":
		m.Form.Err = "title is required"
		m.focusField(FieldTitle)
		return m, nil
	case draft.Time == "":
		m.Form.Err = "time is required"
		m.focusField(FieldTime)
		return m, nil
	}
	clock, err := model.ParseClock(draft.Time)
	if err != nil {
		m.Form.Err = "time must be HH:MM"
		m.focusField(FieldTime)
		return m, nil
	}
	draft.Time = clock.Format(model.ClockLayout)

	m.resetForm()
	return m, func() tea.Msg { return SubmitTaskMsg{Draft: draft} }
}

func (m Model) renderForm() string {
	return views.RenderForm(views.FormData{
		TitleView:       m.titleInput.View(),
		DescriptionView: m.descArea.View(),
		TimeView:        m.timeInput.View(),
		Priority:        string(m.Form.Priority),
		Notifications:   m.Form.Notifications,
		Focus:           int(m.Form.Focus),
		ErrorText:       m.Form.Err,
	})
}
