package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/dayplan/internal/commands"
	"github.com/sandeepkv93/dayplan/internal/model"
	"github.com/sandeepkv93/dayplan/internal/notify"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, nil
	}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (tea.Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var next tea.Cmd
	emit := func(msg tea.Msg) { next = func() tea.Msg { return msg } }
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			clock := a.Time
			if clock == "" {
				clock = defaultAddTime
			}
			if c, err := model.ParseClock(clock); err == nil {
				clock = c.Format(model.ClockLayout)
			}
			emit(SubmitTaskMsg{Draft: model.Draft{
				Title:         a.Title,
				Date:          m.selectedKey(),
				Time:          clock,
				Priority:      a.Priority,
				Notifications: true,
			}})
			return commands.Result{Message: fmt.Sprintf("adding %q at %s", a.Title, clock)}, nil
		},
		Status: func(s commands.StatusArgs) (commands.Result, error) {
			task, err := commands.ResolveRef(s.Target, m.Tasks)
			if err != nil {
				return commands.Result{}, err
			}
			task.Status = s.Status
			emit(UpdateTaskMsg{Task: task})
			return commands.Result{Message: fmt.Sprintf("%s -> %s", task.Title, s.Status.Label())}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			task, err := commands.ResolveRef(d.Target, m.Tasks)
			if err != nil {
				return commands.Result{}, err
			}
			emit(DeleteTaskMsg{ID: task.ID})
			return commands.Result{Message: fmt.Sprintf("deleting %q", task.Title)}, nil
		},
		Notify: func(n commands.NotifyArgs) (commands.Result, error) {
			task, err := commands.ResolveRef(n.Target, m.Tasks)
			if err != nil {
				return commands.Result{}, err
			}
			task.Notifications = n.On
			emit(UpdateTaskMsg{Task: task})
			return commands.Result{Message: fmt.Sprintf("%s notifications %s", task.Title, onOff(n.On))}, nil
		},
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			d := g.Resolve(m.now().In(m.loc))
			emit(DateSelectedMsg{Date: d})
			return commands.Result{Message: "goto " + model.FormatDate(d)}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		toastCmd := m.toast(notify.LevelError, err.Error())
		return m, toastCmd
	}
	m.Status = StatusBar{Text: res.Message}
	return m, next
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
