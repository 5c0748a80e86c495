package update

import (
	"fmt"

	bkey "github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/dayplan/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []bkey.Binding
	full  [][]bkey.Binding
}

func (k helpKeyMap) ShortHelp() []bkey.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]bkey.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.contextBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	bindings := m.helpBindings()
	return views.RenderHelpPanel(views.HelpPanelData{
		Bindings: plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]bkey.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Add, Action: "add task"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) contextBindings() []KeyBinding {
	if m.Form.Active {
		return []KeyBinding{
			{Key: "tab/shift+tab", Action: "next/previous field"},
			{Key: "ctrl+p", Action: "cycle priority"},
			{Key: "space", Action: "toggle notifications"},
			{Key: "enter", Action: "save task"},
			{Key: "esc", Action: "cancel"},
		}
	}
	return []KeyBinding{
		{Key: "h/l", Action: "previous/next day"},
		{Key: "H/L", Action: "previous/next week"},
		{Key: "[/]", Action: "previous/next month"},
		{Key: "t", Action: "jump to today"},
		{Key: "j/k", Action: "move selection"},
		{Key: "space", Action: "cycle status"},
		{Key: "1/2/3", Action: "not done / in progress / done"},
		{Key: "n", Action: "toggle reminder"},
		{Key: "x", Action: "delete task"},
	}
}

func (m Model) helpBindings() []bkey.Binding {
	out := make([]bkey.Binding, 0, len(m.globalBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, bkey.NewBinding(bkey.WithKeys(kb.Key), bkey.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
