package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Iron-Ham/tvview/internal/viewer"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action viewer.Action
		found  bool
	}{
		{"up arrow", tea.KeyMsg{Type: tea.KeyUp}, viewer.ActionScrollUp, true},
		{"k", runes("k"), viewer.ActionScrollUp, true},
		{"down arrow", tea.KeyMsg{Type: tea.KeyDown}, viewer.ActionScrollDown, true},
		{"j", runes("j"), viewer.ActionScrollDown, true},
		{"page up", tea.KeyMsg{Type: tea.KeyPgUp}, viewer.ActionPageUp, true},
		{"ctrl+b", tea.KeyMsg{Type: tea.KeyCtrlB}, viewer.ActionPageUp, true},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, viewer.ActionPageDown, true},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, viewer.ActionPageDown, true},
		{"home", tea.KeyMsg{Type: tea.KeyHome}, viewer.ActionTop, true},
		{"G", runes("G"), viewer.ActionBottom, true},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, viewer.ActionScrollLeft, true},
		{"l", runes("l"), viewer.ActionScrollRight, true},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, viewer.ActionFocusNext, true},
		{"shift+tab", tea.KeyMsg{Type: tea.KeyShiftTab}, viewer.ActionFocusPrev, true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, viewer.ActionActivate, true},
		{"y", runes("y"), viewer.ActionConfirm, true},
		{"n", runes("n"), viewer.ActionCancel, true},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, viewer.ActionCancel, true},
		{"q", runes("q"), viewer.ActionCancel, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, viewer.ActionCancel, true},
		{"unbound", runes("z"), viewer.ActionNone, false},
	}

	k := Default()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, found := k.Lookup(tt.msg)
			if action != tt.action || found != tt.found {
				t.Errorf("Lookup(%q) = (%v, %v), want (%v, %v)",
					tt.msg.String(), action, found, tt.action, tt.found)
			}
		})
	}
}

func TestSetConfirmEnabled(t *testing.T) {
	k := Default()
	k.SetConfirmEnabled(false)

	if _, found := k.Lookup(runes("y")); found {
		t.Error("y should be unbound without a Yes button")
	}
	if got := k.Cancel.Help().Desc; got != "close" {
		t.Errorf("cancel help = %q, want close", got)
	}

	k.SetConfirmEnabled(true)
	if action, _ := k.Lookup(runes("y")); action != viewer.ActionConfirm {
		t.Errorf("y = %v, want confirm", action)
	}
	if got := k.Cancel.Help().Desc; got != "no" {
		t.Errorf("cancel help = %q, want no", got)
	}
}

func TestHelpCoversEveryBinding(t *testing.T) {
	k := Default()
	count := 0
	for _, column := range k.FullHelp() {
		count += len(column)
	}
	if count != 13 {
		t.Errorf("FullHelp has %d bindings, want 13", count)
	}
	if len(k.ShortHelp()) == 0 {
		t.Error("ShortHelp is empty")
	}
}
