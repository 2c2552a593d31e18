package cmd

import (
	"fmt"

	"github.com/Iron-Ham/tvview/internal/errors"
	"github.com/Iron-Ham/tvview/internal/logging"
	"github.com/Iron-Ham/tvview/internal/source"
	"github.com/Iron-Ham/tvview/internal/util"
	"github.com/Iron-Ham/tvview/internal/viewer"
)

// Titles used when no title is given.
const (
	TitleError   = "Error!!"
	TitleDefault = "Info"
)

// Input is what the command line asked to show and how.
type Input struct {
	File    string
	Script  string
	Message string
	// HasMessage distinguishes an empty --message from no --message.
	HasMessage bool

	Title        string
	Yes          bool
	ErrorDisplay bool
	Wrap         bool
	Follow       bool
}

// usageError is an invalid combination of arguments. It makes Execute
// print the usage and return ExitInvalidArgs.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func (e *usageError) Unwrap() error { return errors.ErrInvalidInput }

func newUsageError(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// Validate checks that some content was requested and that input_file and
// message are not both given. A script takes precedence over either.
func (in Input) Validate() error {
	hasFile := in.File != ""

	switch {
	case !hasFile && in.Script == "" && !in.HasMessage:
		return newUsageError("no input given")
	case hasFile && in.HasMessage:
		return newUsageError("cannot use input_file and message at the same time")
	case in.Follow && !hasFile:
		return newUsageError("--follow requires an input_file")
	}
	return nil
}

// ResolveTitle returns the window title: the explicit title, else the input
// file, else "Error!!" for error display, else "Info".
func (in Input) ResolveTitle() string {
	switch {
	case in.Title != "":
		return in.Title
	case in.File != "":
		return in.File
	case in.ErrorDisplay:
		return TitleError
	default:
		return TitleDefault
	}
}

// Kind returns the source kind used in logs.
func (in Input) Kind() errors.SourceKind {
	switch {
	case in.Script != "":
		return errors.KindProcess
	case in.File != "":
		return errors.KindFile
	default:
		return errors.KindText
	}
}

// OpenSource opens the content source for the input. Opening never fails;
// problems show up as a failed source whose content explains them.
func (in Input) OpenSource(opts source.Options) source.Source {
	switch {
	case in.Script != "":
		return source.StartProcess(in.Script, opts)
	case in.File != "":
		opts.Follow = in.Follow
		return source.OpenFile(in.File, opts)
	default:
		return source.NewStatic(ReplaceEscapeSequences(in.Message))
	}
}

// ViewConfig returns the view configuration for the input with the given
// budgets.
func (in Input) ViewConfig(base viewer.Config) viewer.Config {
	base.Title = in.ResolveTitle()
	base.ShowConfirm = in.Yes
	base.Wrap = in.Wrap
	base.ProcessBacked = in.Script != ""
	base.Follow = in.Follow && in.Script == ""
	base.ErrorDisplay = in.ErrorDisplay
	return base
}

// LogAttrs returns the input as log key-value pairs.
func (in Input) LogAttrs() []any {
	attrs := []any{"kind", string(in.Kind()), "title", in.ResolveTitle()}
	switch in.Kind() {
	case errors.KindProcess:
		attrs = append(attrs, "script", util.TruncateString(in.Script, 100))
	case errors.KindFile:
		attrs = append(attrs, "file", in.File, "follow", in.Follow)
	default:
		attrs = append(attrs, "message_bytes", len(in.Message))
	}
	return attrs
}

// logInput records the resolved input.
func logInput(logger *logging.Logger, in Input) {
	logger.Info("input resolved", in.LogAttrs()...)
	if in.Script != "" && (in.File != "" || in.HasMessage) {
		logger.Warn("script_file given, ignoring other input",
			"file", in.File,
			"message_bytes", len(in.Message),
		)
	}
}
