package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Next   key.Binding
	Prev   key.Binding
	Toggle key.Binding
	AM     key.Binding
	PM     key.Binding
	Accept key.Binding
	Cancel key.Binding
	Help   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "+"), key.WithHelp("↑/k", "step up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "-"), key.WithHelp("↓/j", "step down")),
		Next:   key.NewBinding(key.WithKeys("right", "tab", "l"), key.WithHelp("→/tab", "next")),
		Prev:   key.NewBinding(key.WithKeys("left", "shift+tab", "h"), key.WithHelp("←", "prev")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "AM/PM")),
		AM:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "AM")),
		PM:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "PM")),
		Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Accept, k.Cancel, k.Help}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Next, k.Prev},
		{k.Toggle, k.AM, k.PM},
		{k.Accept, k.Cancel, k.Help},
	}
}

// setMeridian enables the AM/PM bindings only in meridian mode so help does
// not advertise them otherwise.
func (k *keyMap) setMeridian(on bool) {
	k.Toggle.SetEnabled(on)
	k.AM.SetEnabled(on)
	k.PM.SetEnabled(on)
}
