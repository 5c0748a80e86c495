package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/notify"
	"github.com/sandeepkv93/dayplan/internal/views"
)

func (m Model) handleTaskKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.refreshDetail()
	case "down", "j":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
		m.refreshDetail()
	case " ":
		if task, ok := m.currentTask(); ok {
			task.Status = task.Status.Next()
			return m, m.updateTaskCmd(task)
		}
	case "1", "2", "3":
		if task, ok := m.currentTask(); ok {
			task.Status = statusForKey(msg.String())
			return m, m.updateTaskCmd(task)
		}
	case "n":
		if task, ok := m.currentTask(); ok {
			task.Notifications = !task.Notifications
			return m, m.updateTaskCmd(task)
		}
	case "x", "delete":
		if task, ok := m.currentTask(); ok {
			return m, m.deleteTaskCmd(task.ID)
		}
	}
	return m, nil
}

func statusForKey(k string) model.Status {
	switch k {
	case "2":
		return model.StatusInProgress
	case "3":
		return model.StatusDone
	default:
		return model.StatusNotDone
	}
}

// loadCmd lists date. Write commands run their write and this load in the
// same goroutine so the load observes the write.
func (m Model) loadCmd(date, toast string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()
		tasks, err := svc.ListForDate(ctx, date)
		if err != nil {
			return OperationFailedMsg{Op: "load", Err: err}
		}
		return TasksLoadedMsg{Date: date, Tasks: tasks, Toast: toast}
	}
}

func (m Model) addTaskCmd(d model.Draft) tea.Cmd {
	svc, date := m.svc, m.selectedKey()
	reload := m.loadCmd(date, toastAdded)
	return func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()
		if _, err := svc.Create(ctx, d); err != nil {
			return OperationFailedMsg{Op: "add", Err: err}
		}
		return reload()
	}
}

func (m Model) updateTaskCmd(task model.Task) tea.Cmd {
	svc := m.svc
	reload := m.loadCmd(m.selectedKey(), toastUpdated)
	return func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()
		if err := svc.Update(ctx, task); err != nil {
			return OperationFailedMsg{Op: "update", Err: err}
		}
		return reload()
	}
}

func (m Model) deleteTaskCmd(id string) tea.Cmd {
	svc, rem := m.svc, m.reminders
	reload := m.loadCmd(m.selectedKey(), toastDeleted)
	return func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()
		if err := svc.Remove(ctx, id); err != nil {
			return OperationFailedMsg{Op: "delete", Err: err}
		}
		if rem != nil {
			rem.Forget(id)
		}
		return reload()
	}
}

func (m Model) applyLoaded(msg TasksLoadedMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	if msg.Toast != "" {
		m.Status = StatusBar{Text: msg.Toast}
		cmd = m.toast(notify.LevelInfo, msg.Toast)
	}
	if msg.Date != m.selectedKey() {
		m.log.Debug("stale load ignored", zap.String("date", msg.Date), zap.String("selected", m.selectedKey()))
		return m, cmd
	}

	m.Loading = false
	m.Tasks = msg.Tasks
	m.Stats = model.ComputeDayStats(m.Tasks)
	if m.Cursor >= len(m.Tasks) {
		m.Cursor = len(m.Tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.refreshDetail()

	if m.reminders != nil {
		if err := m.reminders.Sync(msg.Date, m.Tasks); err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("reminder sync failed: %v", err), IsError: true}
			m.log.Warn("reminder sync failed", zap.String("date", msg.Date), zap.Error(err))
		}
	}
	return m, cmd
}

func (m *Model) refreshDetail() {
	task, ok := m.currentTask()
	if !ok {
		m.detailView.SetContent("")
		return
	}
	md := task.Description
	if strings.TrimSpace(md) == "" {
		md = "_No description_"
	}
	m.detailView.SetContent(views.RenderMarkdown(md, m.detailView.Width-2))
	m.detailView.GotoTop()
}

func (m Model) renderTaskList() string {
	items := make([]views.TaskItemData, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		armed := false
		if m.reminders != nil {
			_, armed = m.reminders.Pending(t.ID)
		}
		items = append(items, views.TaskItemData{
			ID:            t.ID,
			Title:         t.Title,
			Time:          t.Time,
			Priority:      string(t.Priority),
			Status:        string(t.Status),
			Notifications: t.Notifications,
			Armed:         armed,
		})
	}
	return views.RenderTaskList(views.TaskListData{
		Date:        m.selectedKey(),
		Items:       items,
		Cursor:      m.Cursor,
		Loading:     m.Loading,
		SpinnerView: m.loadSpinner.View(),
	})
}

func (m Model) renderDetail() string {
	task, ok := m.currentTask()
	if !ok {
		return ""
	}
	reminder := ""
	if m.reminders != nil {
		if a, armed := m.reminders.Pending(task.ID); armed {
			reminder = "armed for " + a.At.Format("15:04")
		}
	}
	return views.RenderTaskDetail(views.TaskDetailData{
		Title:           task.Title,
		When:            task.Date + " " + task.Time,
		Priority:        string(task.Priority),
		Status:          task.Status.Label(),
		Reminder:        reminder,
		DescriptionView: m.detailView.View(),
	})
}
