package cmd

import (
	"strings"
	"testing"

	"github.com/Iron-Ham/tvview/internal/errors"
	"github.com/Iron-Ham/tvview/internal/source"
	"github.com/Iron-Ham/tvview/internal/viewer"
)

func TestInputValidate(t *testing.T) {
	tests := []struct {
		name   string
		input  Input
		errMsg string
	}{
		{"file", Input{File: "a.txt"}, ""},
		{"script", Input{Script: "./run.sh"}, ""},
		{"message", Input{Message: "hi", HasMessage: true}, ""},
		{"empty message", Input{HasMessage: true}, ""},
		{"follow file", Input{File: "a.log", Follow: true}, ""},
		{"nothing", Input{}, "no input given"},
		{"file and message", Input{File: "a.txt", Message: "hi", HasMessage: true}, "at the same time"},
		{"script and file", Input{File: "a.txt", Script: "./run.sh"}, ""},
		{"script and message", Input{Script: "./run.sh", HasMessage: true}, ""},
		{"script, file and message", Input{File: "a.txt", Script: "./run.sh", HasMessage: true}, "at the same time"},
		{"follow without file", Input{Message: "hi", HasMessage: true, Follow: true}, "--follow"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.errMsg)
			}
			if !errors.Is(err, errors.ErrInvalidInput) {
				t.Error("usage errors should match ErrInvalidInput")
			}
		})
	}
}

func TestInputResolveTitle(t *testing.T) {
	tests := []struct {
		name  string
		input Input
		want  string
	}{
		{"explicit title wins", Input{Title: "Logs", File: "a.txt", ErrorDisplay: true}, "Logs"},
		{"file name", Input{File: "/var/log/a.txt"}, "/var/log/a.txt"},
		{"file beats error", Input{File: "a.txt", ErrorDisplay: true}, "a.txt"},
		{"error display", Input{HasMessage: true, ErrorDisplay: true}, TitleError},
		{"script", Input{Script: "./update.sh"}, TitleDefault},
		{"script with error display", Input{Script: "./update.sh", ErrorDisplay: true}, TitleError},
		{"script with file", Input{Script: "./update.sh", File: "notes.txt"}, "notes.txt"},
		{"message", Input{HasMessage: true}, TitleDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.ResolveTitle(); got != tt.want {
				t.Errorf("ResolveTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInputViewConfig(t *testing.T) {
	in := Input{Script: "./run.sh", Yes: true, Wrap: true, ErrorDisplay: true}
	cfg := in.ViewConfig(viewer.DefaultConfig())

	if cfg.Title != TitleError || !cfg.ShowConfirm || !cfg.Wrap || !cfg.ProcessBacked || !cfg.ErrorDisplay {
		t.Errorf("ViewConfig() = %+v", cfg)
	}
	if cfg.Follow {
		t.Error("scripts are not followed files")
	}
	withFile := Input{Script: "./run.sh", File: "a.log", Follow: true}.ViewConfig(viewer.DefaultConfig())
	if withFile.Follow || !withFile.ProcessBacked {
		t.Errorf("script with a followed file: Follow = %v, ProcessBacked = %v", withFile.Follow, withFile.ProcessBacked)
	}
	if cfg.MaxBytesPerFrame != viewer.DefaultConfig().MaxBytesPerFrame {
		t.Error("ViewConfig() should keep the base budgets")
	}
}

func TestInputOpenSource(t *testing.T) {
	t.Run("message decodes escapes", func(t *testing.T) {
		src := Input{Message: `one\ntwo`, HasMessage: true}.OpenSource(source.DefaultOptions())
		defer src.Close()

		chunk, more := src.Poll(1024)
		if string(chunk) != "one\ntwo" || more {
			t.Errorf("Poll() = (%q, %v), want (%q, false)", chunk, more, "one\ntwo")
		}
	})

	t.Run("script wins over message", func(t *testing.T) {
		opts := source.DefaultOptions()
		opts.Shell = "/bin/sh"
		src := Input{Script: "echo from-script", Message: "from-message", HasMessage: true}.OpenSource(opts)
		defer src.Close()

		if _, ok := src.(*source.Process); !ok {
			t.Errorf("OpenSource() = %T, want a process", src)
		}
	})

	t.Run("missing file fails", func(t *testing.T) {
		src := Input{File: t.TempDir() + "/missing.txt"}.OpenSource(source.DefaultOptions())
		defer src.Close()

		if src.State() != source.Failed {
			t.Errorf("State() = %v, want failed", src.State())
		}
	})
}

func TestInputKind(t *testing.T) {
	tests := []struct {
		input Input
		want  errors.SourceKind
	}{
		{Input{Script: "x"}, errors.KindProcess},
		{Input{File: "x"}, errors.KindFile},
		{Input{HasMessage: true}, errors.KindText},
	}
	for _, tt := range tests {
		if got := tt.input.Kind(); got != tt.want {
			t.Errorf("Kind() = %q, want %q", got, tt.want)
		}
		if attrs := tt.input.LogAttrs(); len(attrs)%2 != 0 {
			t.Errorf("LogAttrs() has odd length %d", len(attrs))
		}
	}
}
