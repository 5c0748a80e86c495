package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/notify"
	"github.com/sandeepkv93/dayplan/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(m.selectedKey(), ""),
		m.loadSpinner.Tick,
		waitForReminderCmd(m.events),
		m.requestPermissionCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		keyStr := typed.String()
		if keyStr == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Form.Active {
			return m.handleFormKey(typed)
		}

		switch keyStr {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.Status = StatusBar{Text: "command palette active"}
			return m, nil
		case m.Keys.Add:
			m.openForm()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		if next, cmd, ok := m.handleCalendarKey(typed); ok {
			return next, cmd
		}
		return m.handleTaskKey(typed)
	case tea.WindowSizeMsg:
		m.Width = typed.Width
		m.helpModel.Width = typed.Width
		return m, nil
	case spinner.TickMsg:
		if m.Loading {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
		return m, nil
	case DateSelectedMsg:
		return m.selectDate(typed.Date)
	case SubmitTaskMsg:
		return m, m.addTaskCmd(typed.Draft)
	case UpdateTaskMsg:
		return m, m.updateTaskCmd(typed.Task)
	case DeleteTaskMsg:
		return m, m.deleteTaskCmd(typed.ID)
	case TasksLoadedMsg:
		return m.applyLoaded(typed)
	case OperationFailedMsg:
		m.Loading = false
		m.LastError = typed.Err
		text := fmt.Sprintf("%s failed: %v", typed.Op, typed.Err)
		m.Status = StatusBar{Text: text, IsError: true}
		m.log.Error("operation failed", zap.String("op", typed.Op), zap.Error(typed.Err))
		cmd := m.toast(notify.LevelError, text)
		return m, cmd
	case ReminderDueMsg:
		return m.onReminderDue(typed)
	case ReminderDeliveredMsg:
		return m.onReminderDelivered(typed)
	case PermissionMsg:
		return m.onPermission(typed)
	case toastExpiredMsg:
		m.dropToast(typed.ID)
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	left := views.RenderCalendar(views.CalendarData{
		Selected: m.SelectedDate,
		Today:    m.now().In(m.loc),
	}) + "\n\n" + views.RenderStats(views.StatsData{
		Completed:  m.Stats.Completed,
		InProgress: m.Stats.InProgress,
		NotDone:    m.Stats.NotDone,
		BarView:    m.statsBar.ViewAs(m.Stats.CompletionRatio()),
	}) + m.renderReminderLog()

	var right string
	if m.Form.Active {
		right = m.renderForm()
	} else {
		right = m.renderTaskList() + m.renderDetail()
	}
	right += views.RenderCommandPalette(m.Palette.Active, m.commandInput.View()) + m.renderHelpIfVisible()

	return views.RenderApp(views.AppData{
		Width:        m.Width,
		Header:       fmt.Sprintf("dayplan | %s | notifications: %s", m.SelectedDate.Format("Monday, 02 Jan 2006"), m.Permission),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderToasts(),
		Footer:       fmt.Sprintf("keys: %s add | %s cmd | %s help | %s quit", m.Keys.Add, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}
