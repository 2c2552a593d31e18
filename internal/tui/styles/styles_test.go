package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/tvview/internal/viewer"
)

func TestErrorPalette(t *testing.T) {
	p := ErrorPalette()
	if p.Background != lipgloss.Color("#5E0B16") {
		t.Errorf("Background = %q, want #5E0B16", p.Background)
	}
	if p.TitleBackground != lipgloss.Color("#5E0B16") {
		t.Errorf("TitleBackground = %q, want #5E0B16", p.TitleBackground)
	}
	if p.Text != DefaultPalette().Text {
		t.Error("error palette should keep the default text colour")
	}
}

func TestBuiltin(t *testing.T) {
	for _, name := range BuiltinThemes() {
		if !IsBuiltin(name) {
			t.Errorf("IsBuiltin(%q) = false", name)
		}
		if _, ok := Builtin(ThemeName(name)); !ok {
			t.Errorf("Builtin(%q) not found", name)
		}
	}
	if IsBuiltin("neon") {
		t.Error("IsBuiltin(neon) = true")
	}
	if _, ok := Builtin("neon"); ok {
		t.Error("Builtin(neon) should not exist")
	}
}

func TestStylesFor(t *testing.T) {
	p := DefaultPalette()
	s := New(p)

	tests := []struct {
		role viewer.Role
		bg   lipgloss.TerminalColor
	}{
		{viewer.RoleText, p.Background},
		{viewer.RoleTitle, p.TitleBackground},
		{viewer.RoleButton, p.Button},
		{viewer.RoleFocusedButton, p.Focused},
		{viewer.RoleStatus, p.Background},
		{viewer.RoleDim, p.Background},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			got := s.For(tt.role).GetBackground()
			if got != tt.bg {
				t.Errorf("For(%s) background = %v, want %v", tt.role, got, tt.bg)
			}
		})
	}

	if s.For(viewer.RoleStatus).GetForeground() != p.StatusText {
		t.Error("status role should use the status text colour")
	}
}

func TestPairSelect(t *testing.T) {
	theme, _ := Builtin(ThemeDefault)
	pair := NewPair(theme)

	if got := pair.Select(false).Text.GetBackground(); got != DefaultPalette().Background {
		t.Errorf("normal background = %v", got)
	}
	if got := pair.Select(true).Text.GetBackground(); got != lipgloss.Color(ErrorBackground) {
		t.Errorf("error background = %v, want %s", got, ErrorBackground)
	}
}
