package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Iron-Ham/tvview/internal/viewer"
)

// Styles holds the lipgloss style for each segment role of one palette.
type Styles struct {
	Text          lipgloss.Style
	Title         lipgloss.Style
	Button        lipgloss.Style
	FocusedButton lipgloss.Style
	Status        lipgloss.Style
	Dim           lipgloss.Style
}

// New builds the role styles for p.
func New(p Palette) Styles {
	base := lipgloss.NewStyle().Background(p.Background).Foreground(p.Text)
	return Styles{
		Text: base,
		Title: lipgloss.NewStyle().
			Background(p.TitleBackground).
			Foreground(p.TitleText).
			Bold(true),
		Button: lipgloss.NewStyle().
			Background(p.Button).
			Foreground(p.ButtonText),
		FocusedButton: lipgloss.NewStyle().
			Background(p.Focused).
			Foreground(p.FocusedText).
			Bold(true),
		Status: base.Foreground(p.StatusText),
		Dim:    base.Foreground(p.Muted),
	}
}

// For returns the style of role.
func (s Styles) For(role viewer.Role) lipgloss.Style {
	switch role {
	case viewer.RoleTitle:
		return s.Title
	case viewer.RoleButton:
		return s.Button
	case viewer.RoleFocusedButton:
		return s.FocusedButton
	case viewer.RoleStatus:
		return s.Status
	case viewer.RoleDim:
		return s.Dim
	default:
		return s.Text
	}
}

// Pair holds the styles for normal and error display.
type Pair struct {
	Normal Styles
	Error  Styles
}

// NewPair builds both style sets of a theme.
func NewPair(t Theme) Pair {
	return Pair{Normal: New(t.Normal), Error: New(t.Error)}
}

// Select returns the error styles when errorDisplay is set.
func (p Pair) Select(errorDisplay bool) Styles {
	if errorDisplay {
		return p.Error
	}
	return p.Normal
}
