// Package styles defines the colour palettes and lipgloss styles the
// terminal host uses to draw a view.
package styles

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// ThemeName represents a built-in colour theme.
type ThemeName string

// Available theme names.
const (
	ThemeDefault ThemeName = "default" // Dark grey window, blue title bar
	ThemeError   ThemeName = "error"   // Dark red window and title bar
)

// ErrorBackground is the window and title colour used to signal errors.
const ErrorBackground = "#5E0B16"

// Palette holds the colours for one display mode.
type Palette struct {
	Background lipgloss.Color
	Text       lipgloss.Color

	TitleBackground lipgloss.Color
	TitleText       lipgloss.Color

	Button      lipgloss.Color
	ButtonText  lipgloss.Color
	Focused     lipgloss.Color
	FocusedText lipgloss.Color
	StatusText  lipgloss.Color
	Muted       lipgloss.Color
}

// Theme pairs the normal palette with the palette used in error display.
type Theme struct {
	Name   string
	Normal Palette
	Error  Palette
}

// BuiltinThemes returns all built-in theme names.
func BuiltinThemes() []string {
	return []string{string(ThemeDefault), string(ThemeError)}
}

// IsBuiltin reports whether name is a built-in theme.
func IsBuiltin(name string) bool {
	return slices.Contains(BuiltinThemes(), name)
}

// DefaultPalette returns the palette for normal display.
func DefaultPalette() Palette {
	return Palette{
		Background:      lipgloss.Color("#1E1E24"),
		Text:            lipgloss.Color("#E6E6E6"),
		TitleBackground: lipgloss.Color("#294A7A"),
		TitleText:       lipgloss.Color("#FFFFFF"),
		Button:          lipgloss.Color("#3A3A46"),
		ButtonText:      lipgloss.Color("#E6E6E6"),
		Focused:         lipgloss.Color("#4296FA"),
		FocusedText:     lipgloss.Color("#FFFFFF"),
		StatusText:      lipgloss.Color("#9CA3AF"),
		Muted:           lipgloss.Color("#6B7280"),
	}
}

// ErrorPalette returns the palette for error display: the window and title
// take the error background.
func ErrorPalette() Palette {
	p := DefaultPalette()
	p.Background = lipgloss.Color(ErrorBackground)
	p.TitleBackground = lipgloss.Color(ErrorBackground)
	p.Button = lipgloss.Color("#7A2030")
	p.Focused = lipgloss.Color("#B83247")
	p.StatusText = lipgloss.Color("#E0B4BA")
	p.Muted = lipgloss.Color("#A86A74")
	return p
}

// Builtin returns the built-in theme called name. The "error" theme uses
// the error palette for normal display too.
func Builtin(name ThemeName) (Theme, bool) {
	switch name {
	case ThemeDefault, "":
		return Theme{Name: string(ThemeDefault), Normal: DefaultPalette(), Error: ErrorPalette()}, true
	case ThemeError:
		return Theme{Name: string(ThemeError), Normal: ErrorPalette(), Error: ErrorPalette()}, true
	default:
		return Theme{}, false
	}
}
