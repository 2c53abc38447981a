package ui

import (
	"bytes"
	"strings"
	"testing"

	"growingcode/internal/exercise"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestMenu() MenuModel {
	return NewMenuModel(exercise.DefaultMenu(), NewStyles(LightTheme(), &bytes.Buffer{}))
}

func update(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("expected MenuModel, got %T", next)
	}
	return mm, cmd
}

func TestMenuModel_Navigation(t *testing.T) {
	m := newTestMenu()
	if m.Cursor() != 0 {
		t.Fatalf("expected initial cursor 0, got %d", m.Cursor())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 1 {
		t.Errorf("expected cursor 1 after Down, got %d", m.Cursor())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	if m.Cursor() != 2 {
		t.Errorf("expected cursor 2 after j, got %d", m.Cursor())
	}

	// Wrap to top
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.Cursor() != 0 {
		t.Errorf("expected cursor to wrap to 0, got %d", m.Cursor())
	}

	// Wrap to bottom
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Cursor() != 2 {
		t.Errorf("expected cursor to wrap to 2, got %d", m.Cursor())
	}
}

func TestMenuModel_EnterChooses(t *testing.T) {
	m := newTestMenu()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected quit command after choosing")
	}
	entry, ok := m.Chosen()
	if !ok {
		t.Fatal("expected an entry to be chosen")
	}
	if entry.Action != exercise.ActionAll {
		t.Errorf("expected ActionAll, got %v", entry.Action)
	}
	if m.View() != "" {
		t.Error("expected empty view once chosen")
	}
}

func TestMenuModel_KeyShortcut(t *testing.T) {
	m := newTestMenu()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}})

	if cmd == nil {
		t.Fatal("expected quit command after shortcut")
	}
	entry, ok := m.Chosen()
	if !ok || entry.Key != "5" {
		t.Fatalf("expected entry 5, got %+v (ok=%v)", entry, ok)
	}
}

func TestMenuModel_UnknownRuneIgnored(t *testing.T) {
	m := newTestMenu()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'z'}})
	if cmd != nil {
		t.Error("expected no command for unknown key")
	}
	if _, ok := m.Chosen(); ok {
		t.Error("expected nothing chosen")
	}
}

func TestMenuModel_Quit(t *testing.T) {
	m := newTestMenu()
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := m.Chosen(); ok {
		t.Error("quitting must not choose an entry")
	}
}

func TestMenuModel_View(t *testing.T) {
	view := newTestMenu().View()
	for _, want := range []string{"Welcome to Growing Code", "> 5 - ft_count_harvest", "  a - test all exercises", "enter choose"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestMenuModel_IgnoresNonKeyMessages(t *testing.T) {
	m := newTestMenu()
	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if cmd != nil || m.Cursor() != 0 {
		t.Error("expected window size message to be ignored")
	}
}
