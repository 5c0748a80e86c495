package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/notify"
	"github.com/sandeepkv93/dayplan/internal/scheduler"
	"github.com/sandeepkv93/dayplan/internal/views"
)

const (
	reminderLogSize  = 20
	reminderLogShown = 3
)

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func (m Model) requestPermissionCmd() tea.Cmd {
	enabled, lookPath := m.desktop, m.lookPath
	return func() tea.Msg {
		p, err := notify.RequestPermission(enabled, lookPath)
		return PermissionMsg{Permission: p, Err: err}
	}
}

func (m Model) onPermission(msg PermissionMsg) (tea.Model, tea.Cmd) {
	m.Permission = msg.Permission
	if !msg.Permission.Granted() {
		m.log.Debug("desktop notifications unavailable", zap.Error(msg.Err))
		return m, nil
	}
	m.log.Info("desktop notifications enabled")
	cmd := m.toast(notify.LevelInfo, toastNotifyGrants)
	return m, cmd
}

func (m Model) onReminderDue(msg ReminderDueMsg) (tea.Model, tea.Cmd) {
	m.ReminderLog = append(m.ReminderLog, msg.Event)
	if len(m.ReminderLog) > reminderLogSize {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-reminderLogSize:]
	}
	if m.reminders != nil {
		m.reminders.Fired(msg.Event.TaskID)
	}
	return m, tea.Batch(m.deliverReminderCmd(msg.Event), waitForReminderCmd(m.events))
}

// deliverReminderCmd re-reads the task so a reminder for a task that was
// deleted, finished or muted after arming stays silent.
func (m Model) deliverReminderCmd(ev scheduler.ReminderEvent) tea.Cmd {
	svc, notifier, granted, now := m.svc, m.notifier, m.Permission.Granted(), m.now
	return func() tea.Msg {
		ctx, cancel := storeContext()
		defer cancel()
		task, err := svc.Get(ctx, ev.TaskID)
		if err != nil {
			return ReminderDeliveredMsg{TaskID: ev.TaskID, Skipped: true, Err: err}
		}
		if !task.Notifications || task.Status == model.StatusDone {
			return ReminderDeliveredMsg{TaskID: ev.TaskID, Skipped: true}
		}
		n := notify.Reminder(task.Title, now())
		if !granted {
			return ReminderDeliveredMsg{TaskID: ev.TaskID, Notification: n}
		}
		if err := notifier.Send(n); err != nil {
			return ReminderDeliveredMsg{TaskID: ev.TaskID, Notification: n, Err: err}
		}
		return ReminderDeliveredMsg{TaskID: ev.TaskID, Notification: n, Desktop: true}
	}
}

func (m Model) onReminderDelivered(msg ReminderDeliveredMsg) (tea.Model, tea.Cmd) {
	if msg.Skipped {
		m.log.Debug("reminder skipped", zap.String("task_id", msg.TaskID), zap.Error(msg.Err))
		return m, nil
	}
	m.Status = StatusBar{Text: msg.Notification.Title}
	if msg.Desktop {
		return m, nil
	}
	if msg.Err != nil {
		m.log.Warn("desktop notification failed", zap.String("task_id", msg.TaskID), zap.Error(msg.Err))
	}
	cmd := m.toast(notify.LevelInfo, msg.Notification.Title)
	return m, cmd
}

func (m Model) renderReminderLog() string {
	start := len(m.ReminderLog) - reminderLogShown
	if start < 0 {
		start = 0
	}
	entries := make([]string, 0, len(m.ReminderLog)-start)
	for _, ev := range m.ReminderLog[start:] {
		entries = append(entries, ev.TriggerAt.In(m.loc).Format(model.ClockLayout)+" "+ev.Title)
	}
	return views.RenderReminderLog(entries)
}
