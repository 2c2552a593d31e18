package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	err := ValidationError{
		Field:   "viewer.tab_width",
		Value:   0,
		Message: "must be at least 1",
	}

	expected := "viewer.tab_width: must be at least 1 (got: 0)"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty errors", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("Error() for empty = %q, want empty string", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "test.field", Value: 123, Message: "is invalid"},
		}
		expected := "test.field: is invalid (got: 123)"
		if errs.Error() != expected {
			t.Errorf("Error() = %q, want %q", errs.Error(), expected)
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "field1", Value: "bad", Message: "is invalid"},
			{Field: "field2", Value: -1, Message: "must be positive"},
		}
		result := errs.Error()
		if !strings.Contains(result, "2 validation errors") {
			t.Errorf("Error() should mention 2 errors: %s", result)
		}
		if !strings.Contains(result, "field1") || !strings.Contains(result, "field2") {
			t.Errorf("Error() should list both fields: %s", result)
		}
	})
}

func TestValidate(t *testing.T) {
	themeFile := filepath.Join(t.TempDir(), "kiosk.yaml")
	if err := os.WriteFile(themeFile, []byte("name: kiosk\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
	}{
		{"tab width zero", func(c *Config) { c.Viewer.TabWidth = 0 }, "viewer.tab_width"},
		{"tab width too large", func(c *Config) { c.Viewer.TabWidth = 64 }, "viewer.tab_width"},
		{"frame budget too small", func(c *Config) { c.Viewer.MaxBytesPerFrame = 10 }, "viewer.max_bytes_per_frame"},
		{"layout budget too small", func(c *Config) { c.Viewer.LayoutBudgetBytes = 1 }, "viewer.layout_budget_bytes"},
		{"frame rate zero", func(c *Config) { c.Viewer.FrameRate = 0 }, "viewer.frame_rate"},
		{"wheel lines zero", func(c *Config) { c.Viewer.WheelLines = 0 }, "viewer.wheel_lines"},
		{"shell with spaces", func(c *Config) { c.Process.Shell = " /bin/sh" }, "process.shell"},
		{"read buffer too small", func(c *Config) { c.Process.ReadBufferSize = 8 }, "process.read_buffer_size"},
		{"queue depth zero", func(c *Config) { c.Process.QueueDepth = 0 }, "process.queue_depth"},
		{"missing theme file", func(c *Config) { c.TUI.Theme = "/does/not/exist.yaml" }, "tui.theme"},
		{"theme is a directory", func(c *Config) { c.TUI.Theme = t.TempDir() }, "tui.theme"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"existing theme file", func(c *Config) { c.TUI.Theme = themeFile }, ""},
		{"builtin error theme", func(c *Config) { c.TUI.Theme = "error" }, ""},
		{"empty shell runs directly", func(c *Config) { c.Process.Shell = "" }, ""},
		{"upper-case log level", func(c *Config) { c.Logging.Level = "DEBUG" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			errs := cfg.Validate()

			if tt.wantField == "" {
				if len(errs) != 0 {
					t.Errorf("Validate() = %v, want no errors", errs)
				}
				return
			}
			if len(errs) != 1 {
				t.Fatalf("Validate() returned %d errors, want 1: %v", len(errs), errs)
			}
			if errs[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", errs[0].Field, tt.wantField)
			}
		})
	}
}
