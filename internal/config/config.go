package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete tvview configuration
type Config struct {
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	Process ProcessConfig `mapstructure:"process"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ViewerConfig controls layout and the per-frame work budget of the view
type ViewerConfig struct {
	// TabWidth is the column multiple tabs expand to (default: 4)
	TabWidth int `mapstructure:"tab_width"`
	// MaxBytesPerFrame caps how many bytes are taken from the content source
	// in a single frame (default: 64KB)
	MaxBytesPerFrame int `mapstructure:"max_bytes_per_frame"`
	// LayoutBudgetBytes caps how many bytes the layout engine scans in a
	// single frame (default: 1MB)
	LayoutBudgetBytes int `mapstructure:"layout_budget_bytes"`
	// FrameRate is the number of frames per second driven by the host (default: 30)
	FrameRate int `mapstructure:"frame_rate"`
	// WheelLines is how many lines one mouse wheel notch scrolls (default: 3)
	WheelLines int `mapstructure:"wheel_lines"`
}

// ProcessConfig controls how scripts are launched
type ProcessConfig struct {
	// Shell runs the script as `<shell> -c <script>`. Empty executes the
	// script path directly. (default: "/bin/sh")
	Shell string `mapstructure:"shell"`
	// UsePTY runs the script under a pseudo-terminal so that programs which
	// buffer output when not attached to a terminal flush line by line
	UsePTY bool `mapstructure:"use_pty"`
	// ReadBufferSize is the size of each read from the output pipe (default: 4096)
	ReadBufferSize int `mapstructure:"read_buffer_size"`
	// QueueDepth is the number of chunks buffered between the reader
	// goroutine and the frame loop (default: 256)
	QueueDepth int `mapstructure:"queue_depth"`
}

// TUIConfig controls the terminal host
type TUIConfig struct {
	// Theme is "default", "error", or a path to a YAML theme file
	Theme string `mapstructure:"theme"`
	// Mouse enables wheel scrolling and clicking buttons (default: true)
	Mouse bool `mapstructure:"mouse"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: false)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// Dir is where debug.log is written. Empty means StateDir().
	Dir string `mapstructure:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			TabWidth:          4,
			MaxBytesPerFrame:  64 * 1024,
			LayoutBudgetBytes: 1024 * 1024,
			FrameRate:         30,
			WheelLines:        3,
		},
		Process: ProcessConfig{
			Shell:          "/bin/sh",
			UsePTY:         false,
			ReadBufferSize: 4096,
			QueueDepth:     256,
		},
		TUI: TUIConfig{
			Theme: "default",
			Mouse: true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "",
		},
	}
}

// FrameInterval returns the delay between two frames
func (c *ViewerConfig) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 30
	}
	return time.Second / time.Duration(c.FrameRate)
}

// LogDir returns the configured log directory, falling back to StateDir()
func (c *LoggingConfig) LogDir() string {
	if c.Dir != "" {
		return expandHome(c.Dir)
	}
	return StateDir()
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("viewer.tab_width", defaults.Viewer.TabWidth)
	viper.SetDefault("viewer.max_bytes_per_frame", defaults.Viewer.MaxBytesPerFrame)
	viper.SetDefault("viewer.layout_budget_bytes", defaults.Viewer.LayoutBudgetBytes)
	viper.SetDefault("viewer.frame_rate", defaults.Viewer.FrameRate)
	viper.SetDefault("viewer.wheel_lines", defaults.Viewer.WheelLines)

	viper.SetDefault("process.shell", defaults.Process.Shell)
	viper.SetDefault("process.use_pty", defaults.Process.UsePTY)
	viper.SetDefault("process.read_buffer_size", defaults.Process.ReadBufferSize)
	viper.SetDefault("process.queue_depth", defaults.Process.QueueDepth)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.mouse", defaults.TUI.Mouse)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v and validates it
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tvview")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tvview"
	}
	return filepath.Join(home, ".config", "tvview")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the directory for logs and other runtime state
func StateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tvview")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tvview")
	}
	return filepath.Join(home, ".local", "state", "tvview")
}

func expandHome(path string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ThemePath returns the theme with a leading ~/ expanded. Built-in theme
// names are returned unchanged.
func (c *TUIConfig) ThemePath() string {
	return expandHome(c.Theme)
}
