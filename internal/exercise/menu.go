package exercise

import (
	"fmt"
	"io"
	"strings"
)

// Action is what choosing a menu entry does.
type Action uint8

const (
	ActionExercises Action = iota // run Exercises in order
	ActionAll                     // run every registered exercise
	ActionHistory                 // show run history
)

// MenuEntry is one line of the runner menu.
type MenuEntry struct {
	Key       string
	Label     string
	Summary   string
	Action    Action
	Exercises []string
}

// Menu is the ordered list of entries offered to the user.
type Menu struct {
	Entries []MenuEntry
}

// DefaultMenu mirrors the Growing Code helper's menu for the exercises grow ships.
func DefaultMenu() Menu {
	return Menu{Entries: []MenuEntry{
		{
			Key:       "5",
			Label:     "ft_count_harvest",
			Summary:   "Count days to harvest",
			Action:    ActionExercises,
			Exercises: []string{CountHarvestIterative, CountHarvestRecursive},
		},
		{Key: "a", Label: "test all exercises", Action: ActionAll},
		{Key: "h", Label: "show run history", Action: ActionHistory},
	}}
}

// Keys returns entry keys in menu order.
func (m Menu) Keys() []string {
	keys := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		keys[i] = e.Key
	}
	return keys
}

// Resolve maps a typed choice to its entry.
func (m Menu) Resolve(choice string) (MenuEntry, error) {
	choice = strings.TrimSpace(choice)
	for _, e := range m.Entries {
		if e.Key == choice {
			return e, nil
		}
	}
	return MenuEntry{}, fmt.Errorf("%w: %q", ErrInvalidChoice, choice)
}

// InvalidChoiceMessage lists the accepted keys, e.g. "Please enter 5, a, or h".
func (m Menu) InvalidChoiceMessage() string {
	return "❌ Invalid choice! Please enter " + joinChoices(m.Keys())
}

func joinChoices(keys []string) string {
	switch len(keys) {
	case 0:
		return ""
	case 1:
		return keys[0]
	case 2:
		return keys[0] + " or " + keys[1]
	}
	return strings.Join(keys[:len(keys)-1], ", ") + ", or " + keys[len(keys)-1]
}

// Line formats an entry the way the menu prints it.
func (e MenuEntry) Line() string {
	if e.Summary == "" {
		return fmt.Sprintf("%s - %s", e.Key, e.Label)
	}
	return fmt.Sprintf("%s - %-22s (%s)", e.Key, e.Label, e.Summary)
}

// Painter decorates runner and menu text. The plain painter returns text unchanged.
type Painter interface {
	Title(s string) string
	Header(s string) string
	Failure(s string) string
	Hint(s string) string
}

type plainPainter struct{}

func (plainPainter) Title(s string) string   { return s }
func (plainPainter) Header(s string) string  { return s }
func (plainPainter) Failure(s string) string { return s }
func (plainPainter) Hint(s string) string    { return s }

// PlainPainter returns the undecorated painter.
func PlainPainter() Painter { return plainPainter{} }

// WriteMenu prints the welcome banner, the entries, and the choice prompt.
func WriteMenu(w io.Writer, m Menu, p Painter) {
	if p == nil {
		p = PlainPainter()
	}
	fmt.Fprintln(w, p.Title("🌱 Welcome to Growing Code! 🌱"))
	fmt.Fprintln(w, "This helper will test your exercises for you.")
	fmt.Fprintln(w, "\nWhich exercise would you like to test?")
	fmt.Fprintln(w)
	for _, e := range m.Entries {
		fmt.Fprintln(w, e.Line())
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, "Enter your choice: ")
}
