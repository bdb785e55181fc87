package prompt

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keybindings shared by the terminal prompts.
type keyMap struct {
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Yes       key.Binding
	No        key.Binding
	Switch    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "esc"),
		key.WithHelp("esc", "abort"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("k/up", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("j/down", "down"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space/x", "toggle"),
	),
	ToggleAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all/none"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "no"),
	),
	Switch: key.NewBinding(
		key.WithKeys("left", "right", "h", "l", "tab", "shift+tab"),
		key.WithHelp("←/→", "switch"),
	),
}

// Help keymaps, one per prompt kind. Each implements help.KeyMap.

type confirmHelpKeyMap struct{}

func (confirmHelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Yes, keys.No, keys.Switch, keys.Enter, keys.Quit}
}

func (k confirmHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type selectHelpKeyMap struct {
	multi bool
}

func (k selectHelpKeyMap) ShortHelp() []key.Binding {
	if k.multi {
		return []key.Binding{keys.Up, keys.Down, keys.Toggle, keys.ToggleAll, keys.Enter, keys.Quit}
	}
	return []key.Binding{keys.Up, keys.Down, keys.Enter, keys.Quit}
}

func (k selectHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type inputHelpKeyMap struct{}

func (inputHelpKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Enter, keys.Quit}
}

func (k inputHelpKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
