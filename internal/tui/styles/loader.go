package styles

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ThemeFile represents a custom theme definition loaded from YAML.
type ThemeFile struct {
	// Name is the theme's display name (e.g., "Kiosk Blue")
	Name string `yaml:"name"`
	// Author is the theme creator's name (optional)
	Author string `yaml:"author,omitempty"`
	// Version is the theme file format version (currently "1")
	Version string `yaml:"version"`
	// Colors defines the palette for normal display
	Colors ThemeColors `yaml:"colors"`
	// ErrorColors overrides the palette for error display (optional)
	ErrorColors ThemeColors `yaml:"error_colors,omitempty"`
}

// ThemeColors contains the colour definitions of one palette.
// All colors should be hex format (#RRGGBB or #RGB).
type ThemeColors struct {
	Background      string `yaml:"background"`
	Text            string `yaml:"text"`
	TitleBackground string `yaml:"title_background"`
	TitleText       string `yaml:"title_text"`
	Button          string `yaml:"button,omitempty"`
	ButtonText      string `yaml:"button_text,omitempty"`
	Focused         string `yaml:"focused,omitempty"`
	FocusedText     string `yaml:"focused_text,omitempty"`
	StatusText      string `yaml:"status_text,omitempty"`
	Muted           string `yaml:"muted,omitempty"`
}

// hexColorRegex validates hex color format.
var hexColorRegex = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)

// LoadThemeFile loads a theme from a YAML file.
func LoadThemeFile(path string) (*ThemeFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var theme ThemeFile
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	if err := theme.Validate(); err != nil {
		return nil, fmt.Errorf("invalid theme: %w", err)
	}

	return &theme, nil
}

// Validate checks that the theme file is well-formed.
func (t *ThemeFile) Validate() error {
	if t.Name == "" {
		return errors.New("theme name is required")
	}

	if t.Version == "" {
		return errors.New("theme version is required")
	}

	if t.Version != "1" {
		return fmt.Errorf("unsupported theme version: %s (supported: 1)", t.Version)
	}

	// Validate required base colors in a stable order
	required := []struct{ name, color string }{
		{"background", t.Colors.Background},
		{"text", t.Colors.Text},
		{"title_background", t.Colors.TitleBackground},
		{"title_text", t.Colors.TitleText},
	}
	for _, c := range required {
		if c.color == "" {
			return fmt.Errorf("color '%s' is required", c.name)
		}
	}

	if err := t.Colors.validateFormat("colors"); err != nil {
		return err
	}
	return t.ErrorColors.validateFormat("error_colors")
}

func (c ThemeColors) validateFormat(section string) error {
	fields := []struct{ name, color string }{
		{"background", c.Background},
		{"text", c.Text},
		{"title_background", c.TitleBackground},
		{"title_text", c.TitleText},
		{"button", c.Button},
		{"button_text", c.ButtonText},
		{"focused", c.Focused},
		{"focused_text", c.FocusedText},
		{"status_text", c.StatusText},
		{"muted", c.Muted},
	}
	for _, f := range fields {
		if f.color != "" && !isValidHexColor(f.color) {
			return fmt.Errorf("color '%s.%s' has invalid format: %s (expected #RGB or #RRGGBB)", section, f.name, f.color)
		}
	}
	return nil
}

// isValidHexColor checks if a string is a valid hex color.
func isValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

// ToTheme converts the theme file to a Theme. Missing optional colours fall
// back to the built-in palettes.
func (t *ThemeFile) ToTheme() Theme {
	normal := t.Colors.apply(DefaultPalette())
	errPalette := ErrorPalette()
	errPalette.Text = normal.Text
	errPalette.TitleText = normal.TitleText
	return Theme{
		Name:   t.Name,
		Normal: normal,
		Error:  t.ErrorColors.apply(errPalette),
	}
}

func (c ThemeColors) apply(p Palette) Palette {
	p.Background = colorOrDefault(c.Background, p.Background)
	p.Text = colorOrDefault(c.Text, p.Text)
	p.TitleBackground = colorOrDefault(c.TitleBackground, p.TitleBackground)
	p.TitleText = colorOrDefault(c.TitleText, p.TitleText)
	p.Button = colorOrDefault(c.Button, p.Button)
	p.ButtonText = colorOrDefault(c.ButtonText, p.ButtonText)
	p.Focused = colorOrDefault(c.Focused, p.Focused)
	p.FocusedText = colorOrDefault(c.FocusedText, p.FocusedText)
	p.StatusText = colorOrDefault(c.StatusText, p.StatusText)
	p.Muted = colorOrDefault(c.Muted, p.Muted)
	return p
}

// colorOrDefault returns the color if non-empty, otherwise returns the default.
func colorOrDefault(color string, defaultColor lipgloss.Color) lipgloss.Color {
	if color != "" {
		return lipgloss.Color(color)
	}
	return defaultColor
}

// Resolve returns the built-in theme called name, or loads name as a theme
// file path.
func Resolve(name string) (Theme, error) {
	if name == "" || IsBuiltin(name) {
		theme, _ := Builtin(ThemeName(name))
		return theme, nil
	}
	file, err := LoadThemeFile(name)
	if err != nil {
		return Theme{}, err
	}
	return file.ToTheme(), nil
}
