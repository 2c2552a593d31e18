// Package keymap binds terminal keys to viewer actions.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tvview/internal/viewer"
)

// Keymap holds the key bindings of the viewer. It implements help.KeyMap.
type Keymap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Left     key.Binding
	Right    key.Binding
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Confirm  key.Binding
	Cancel   key.Binding
}

// Default returns the default bindings.
func Default() Keymap {
	return Keymap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b", "b"),
			key.WithHelp("pgup/b", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f", " ", "f"),
			key.WithHelp("pgdn/space", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "bottom"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll right"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next button"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous button"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "press button"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc", "q", "ctrl+c"),
			key.WithHelp("n/esc/q", "close"),
		),
	}
}

// SetConfirmEnabled enables the yes binding; without a Yes button there is
// nothing to confirm.
func (k *Keymap) SetConfirmEnabled(enabled bool) {
	k.Confirm.SetEnabled(enabled)
	if enabled {
		k.Cancel.SetHelp("n/esc/q", "no")
	} else {
		k.Cancel.SetHelp("esc/q", "close")
	}
}

// Lookup returns the action bound to msg.
func (k Keymap) Lookup(msg tea.KeyMsg) (viewer.Action, bool) {
	bindings := []struct {
		binding key.Binding
		action  viewer.Action
	}{
		{k.Up, viewer.ActionScrollUp},
		{k.Down, viewer.ActionScrollDown},
		{k.PageUp, viewer.ActionPageUp},
		{k.PageDown, viewer.ActionPageDown},
		{k.Top, viewer.ActionTop},
		{k.Bottom, viewer.ActionBottom},
		{k.Left, viewer.ActionScrollLeft},
		{k.Right, viewer.ActionScrollRight},
		{k.Next, viewer.ActionFocusNext},
		{k.Prev, viewer.ActionFocusPrev},
		{k.Activate, viewer.ActionActivate},
		{k.Confirm, viewer.ActionConfirm},
		{k.Cancel, viewer.ActionCancel},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action, true
		}
	}
	return viewer.ActionNone, false
}

// ShortHelp returns the bindings shown in the compact help line.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PageDown, k.Next, k.Confirm, k.Cancel}
}

// FullHelp returns all bindings grouped into columns.
func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Top, k.Bottom, k.Left, k.Right},
		{k.Next, k.Prev, k.Activate},
		{k.Confirm, k.Cancel},
	}
}
