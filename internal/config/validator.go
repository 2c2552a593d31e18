package config

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "viewer.tab_width")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// BuiltinThemes returns the theme names that do not refer to a file
func BuiltinThemes() []string {
	return []string{"default", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateViewer()...)
	errors = append(errors, c.validateProcess()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// inRange appends a ValidationError when value is outside [lo, hi]
func inRange(errors []ValidationError, field string, value, lo, hi int) []ValidationError {
	if value < lo {
		return append(errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("must be at least %d", lo),
		})
	}
	if value > hi {
		return append(errors, ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("exceeds maximum of %d", hi),
		})
	}
	return errors
}

// validateViewer validates the ViewerConfig
func (c *Config) validateViewer() []ValidationError {
	var errors []ValidationError

	errors = inRange(errors, "viewer.tab_width", c.Viewer.TabWidth, 1, 16)
	errors = inRange(errors, "viewer.max_bytes_per_frame", c.Viewer.MaxBytesPerFrame, 512, 64*1024*1024)
	errors = inRange(errors, "viewer.layout_budget_bytes", c.Viewer.LayoutBudgetBytes, 4096, 1024*1024*1024)
	errors = inRange(errors, "viewer.frame_rate", c.Viewer.FrameRate, 1, 240)
	errors = inRange(errors, "viewer.wheel_lines", c.Viewer.WheelLines, 1, 100)

	return errors
}

// validateProcess validates the ProcessConfig
func (c *Config) validateProcess() []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(c.Process.Shell) != c.Process.Shell {
		errors = append(errors, ValidationError{
			Field:   "process.shell",
			Value:   c.Process.Shell,
			Message: "must not have leading or trailing whitespace",
		})
	}

	errors = inRange(errors, "process.read_buffer_size", c.Process.ReadBufferSize, 256, 1024*1024)
	errors = inRange(errors, "process.queue_depth", c.Process.QueueDepth, 1, 65536)

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	var errors []ValidationError

	if c.TUI.Theme == "" || slices.Contains(BuiltinThemes(), c.TUI.Theme) {
		return errors
	}

	info, err := os.Stat(expandHome(c.TUI.Theme))
	switch {
	case err != nil:
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: fmt.Sprintf("must be one of: %s, or a readable theme file", strings.Join(BuiltinThemes(), ", ")),
		})
	case info.IsDir():
		errors = append(errors, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: "theme path is a directory",
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errors
}
