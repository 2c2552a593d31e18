// Package cmd implements the tvview command line.
package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/Iron-Ham/tvview/internal/config"
	"github.com/Iron-Ham/tvview/internal/errors"
	"github.com/Iron-Ham/tvview/internal/logging"
	"github.com/Iron-Ham/tvview/internal/source"
	"github.com/Iron-Ham/tvview/internal/tui"
	"github.com/Iron-Ham/tvview/internal/tui/keymap"
	"github.com/Iron-Ham/tvview/internal/tui/styles"
	"github.com/Iron-Ham/tvview/internal/viewer"
)

// Exit codes returned by Execute besides the codes of the user's decision.
const (
	ExitInvalidArgs = -2
	ExitFailure     = -1
)

type rootFlags struct {
	script       string
	message      string
	title        string
	fontSize     int
	yes          bool
	errorDisplay bool
	wrap         bool

	configFile string
	logLevel   string
	follow     bool
	pty        bool
}

const longDescription = `tvview shows a text file, the output of a script, or a message in a
full-screen terminal window with a title bar and buttons.

The exit code reports the user's choice: 21 when Yes was pressed, 0 when
No or Close was pressed, -2 for invalid arguments.`

// NewRootCmd builds the tvview command. When the command succeeds, the exit
// code of the user's decision is stored in code.
func NewRootCmd(code *int) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "tvview [input_file]",
		Short: "Full-screen terminal text viewer",
		Long:  longDescription + "\n\nKeys:\n" + keyHelp(),
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return newUsageError("%s", err.Error())
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := run(cmd, args, flags)
			if err == nil {
				*code = c
			}
			return err
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newUsageError("%s", err.Error())
	})

	f := cmd.Flags()
	f.StringVarP(&flags.script, "script_file", "s", "", "script whose output to view")
	f.StringVarP(&flags.message, "message", "m", "", "text to show instead of viewing a file (supports \\n, \\t, ...)")
	f.IntVarP(&flags.fontSize, "font_size", "f", 0, "font size in pixels (ignored in a terminal)")
	f.StringVarP(&flags.title, "title", "t", "", "window title (file name by default)")
	f.BoolVarP(&flags.yes, "yes_button", "y", false, "show a Yes button that exits with code 21")
	f.BoolVarP(&flags.errorDisplay, "error_display", "e", false, "format as error with a red background")
	f.BoolVarP(&flags.wrap, "wrap_lines", "w", false, "wrap long lines of text")

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/tvview/config.yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "write a debug log at this level (debug, info, warn, error)")
	pf.BoolVar(&flags.follow, "follow", false, "keep reading input_file as it grows")
	pf.BoolVar(&flags.pty, "pty", false, "run the script under a pseudo-terminal")
	_ = viper.BindPFlag("process.use_pty", pf.Lookup("pty"))

	return cmd
}

// keyHelp renders the key bindings for the long help text.
func keyHelp() string {
	h := help.New()
	return h.FullHelpView(keymap.Default().FullHelp())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	code := viewer.ExitCancelled
	cmd := NewRootCmd(&code)
	if err := cmd.Execute(); err != nil {
		return reportError(cmd, err)
	}
	return code
}

// reportError prints err and returns the exit code for it.
func reportError(cmd *cobra.Command, err error) int {
	var usageErr *usageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n\n", usageErr.msg)
		fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
		return ExitInvalidArgs
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return ExitFailure
}

func initConfig(configFile string) {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if configFile == "" {
		configFile = config.ConfigFile()
	}
	viper.SetConfigFile(configFile)

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TVVIEW")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TVVIEW_PROCESS_USE_PTY for process.use_pty
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// inputFromFlags collects the content request from the parsed command line.
func inputFromFlags(cmd *cobra.Command, args []string, flags *rootFlags) Input {
	in := Input{
		Script:       flags.script,
		Message:      flags.message,
		HasMessage:   cmd.Flags().Changed("message"),
		Title:        flags.title,
		Yes:          flags.yes,
		ErrorDisplay: flags.errorDisplay,
		Wrap:         flags.wrap,
		Follow:       flags.follow,
	}
	if len(args) > 0 {
		in.File = args[0]
	}
	return in
}

func newLogger(cfg *config.Config, flags *rootFlags) (*logging.Logger, error) {
	level := cfg.Logging.Level
	if flags.logLevel != "" {
		level = flags.logLevel
	} else if !cfg.Logging.Enabled {
		return logging.NopLogger(), nil
	}
	if !slices.Contains(logging.ValidLevels(), strings.ToUpper(level)) {
		return nil, newUsageError("invalid --log-level %q", level)
	}
	return logging.NewLogger(cfg.Logging.LogDir(), logging.ParseLevel(level))
}

// viewConfig returns the view budgets from the configuration.
func viewConfig(cfg *config.Config) viewer.Config {
	vc := viewer.DefaultConfig()
	vc.TabWidth = cfg.Viewer.TabWidth
	vc.MaxBytesPerFrame = cfg.Viewer.MaxBytesPerFrame
	vc.LayoutBudgetBytes = cfg.Viewer.LayoutBudgetBytes
	vc.WheelLines = cfg.Viewer.WheelLines
	return vc
}

// sourceOptions returns the source options from the configuration.
func sourceOptions(cfg *config.Config, logger *logging.Logger) source.Options {
	return source.Options{
		Shell:          cfg.Process.Shell,
		UsePTY:         cfg.Process.UsePTY,
		ReadBufferSize: cfg.Process.ReadBufferSize,
		QueueDepth:     cfg.Process.QueueDepth,
		Logger:         logger,
	}
}

func run(cmd *cobra.Command, args []string, flags *rootFlags) (int, error) {
	in := inputFromFlags(cmd, args, flags)
	if err := in.Validate(); err != nil {
		return ExitInvalidArgs, err
	}

	initConfig(flags.configFile)
	cfg, err := config.Load()
	if err != nil {
		return ExitFailure, fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := newLogger(cfg, flags)
	if err != nil {
		return ExitFailure, err
	}
	defer func() { _ = logger.Close() }()

	logInput(logger, in)
	if cmd.Flags().Changed("font_size") {
		logger.Info("font size has no effect in a terminal", "font_size", flags.fontSize)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		logger.Warn("stdout is not a terminal")
	}

	theme, err := styles.Resolve(cfg.TUI.ThemePath())
	if err != nil {
		return ExitFailure, fmt.Errorf("failed to load theme: %w", err)
	}

	view := viewer.New(in.ViewConfig(viewConfig(cfg)), in.OpenSource(sourceOptions(cfg, logger)), logger)
	defer func() { _ = view.Close() }()

	app := tui.New(view, tui.Options{
		Theme:         theme,
		FrameInterval: cfg.Viewer.FrameInterval(),
		Mouse:         cfg.TUI.Mouse,
		Logger:        logger,
	})
	code, err := app.Run()
	if err != nil {
		return ExitFailure, fmt.Errorf("TUI error: %w", err)
	}
	return code, nil
}
