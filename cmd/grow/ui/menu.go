package ui

import (
	"fmt"
	"strings"

	"growingcode/internal/exercise"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// MenuKeyMap defines the menu key bindings.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Choose key.Binding
	Quit   key.Binding
}

// DefaultMenuKeyMap returns arrow/vim navigation with enter to choose.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "choose"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// MenuModel is a bubbletea model that picks one menu entry.
// Typing an entry key selects it directly.
type MenuModel struct {
	menu    exercise.Menu
	styles  Styles
	keys    MenuKeyMap
	cursor  int
	chosen  *exercise.MenuEntry
	quitted bool
}

// NewMenuModel creates a menu model over m.
func NewMenuModel(m exercise.Menu, styles Styles) MenuModel {
	return MenuModel{menu: m, styles: styles, keys: DefaultMenuKeyMap()}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitted = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = len(m.menu.Entries) - 1
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.menu.Entries)-1 {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case key.Matches(keyMsg, m.keys.Choose):
		if len(m.menu.Entries) == 0 {
			return m, nil
		}
		entry := m.menu.Entries[m.cursor]
		m.chosen = &entry
		return m, tea.Quit
	case keyMsg.Type == tea.KeyRunes:
		if entry, err := m.menu.Resolve(string(keyMsg.Runes)); err == nil {
			m.chosen = &entry
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.chosen != nil || m.quitted {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("🌱 Welcome to Growing Code! 🌱"))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render("Which exercise would you like to test?"))
	sb.WriteString("\n\n")

	for i, e := range m.menu.Entries {
		if i == m.cursor {
			sb.WriteString(m.styles.Cursor.Render("> "))
			sb.WriteString(m.styles.Selected.Render(e.Line()))
		} else {
			sb.WriteString("  ")
			sb.WriteString(m.styles.Body.Render(e.Line()))
		}
		sb.WriteString("\n")
	}

	help := fmt.Sprintf("%s %s • %s %s • %s %s",
		m.keys.Up.Help().Key, m.keys.Up.Help().Desc,
		m.keys.Choose.Help().Key, m.keys.Choose.Help().Desc,
		m.keys.Quit.Help().Key, m.keys.Quit.Help().Desc)
	sb.WriteString("\n")
	sb.WriteString(m.styles.Muted.Render(help))
	sb.WriteString("\n")
	return sb.String()
}

// Cursor returns the highlighted entry index.
func (m MenuModel) Cursor() int { return m.cursor }

// Chosen returns the selected entry, if any.
func (m MenuModel) Chosen() (exercise.MenuEntry, bool) {
	if m.chosen == nil {
		return exercise.MenuEntry{}, false
	}
	return *m.chosen, true
}
