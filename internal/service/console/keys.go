package console

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/oshokin/briefcase-alarm/internal/domain/briefcase"
)

// keyMap binds keys to panel controls.
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Center   key.Binding
	DialUp   key.Binding
	DialDown key.Binding
	Shake    key.Binding
	Quit     key.Binding
}

// defaultKeyMap returns the console key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "right")),
		Center:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "center")),
		DialUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "dial up")),
		DialDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "dial down")),
		Shake:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "shake")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Center, k.DialUp, k.DialDown, k.Shake, k.Quit}
}

// FullHelp groups the bindings for the expanded help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Center},
		{k.DialUp, k.DialDown, k.Shake, k.Quit},
	}
}

// buttonFor returns the joystick button bound to msg, if any.
func (k keyMap) buttonFor(msg tea.KeyMsg) (briefcase.Button, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return briefcase.ButtonUp, true
	case key.Matches(msg, k.Down):
		return briefcase.ButtonDown, true
	case key.Matches(msg, k.Left):
		return briefcase.ButtonLeft, true
	case key.Matches(msg, k.Right):
		return briefcase.ButtonRight, true
	case key.Matches(msg, k.Center):
		return briefcase.ButtonCenter, true
	default:
		return 0, false
	}
}
