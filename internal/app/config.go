package app

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	apperrors "github.com/shhac/atrium/internal/errors"
	"github.com/shhac/atrium/internal/page"
	"github.com/shhac/atrium/internal/ui/dashboard"
)

// EnvPrefix is the prefix for configuration environment variables,
// e.g. ATRIUM_LOCATION or ATRIUM_LOG_FILE.
const EnvPrefix = "ATRIUM_"

// DefaultLocation is the dashboard shown when nothing else is configured.
const DefaultLocation = "http://localhost:8080/en/dashboard/"

var configFileNames = []string{"atrium.yaml", "atrium.yml"}

// Config holds application-wide configuration.
type Config struct {
	// Location is the dashboard page URL; its first path segment is the locale.
	Location string `koanf:"location"`

	// Debug enables debug logging and additional diagnostics
	Debug bool `koanf:"debug"`

	// Theme is "system", "light" or "dark". Empty keeps the saved preference.
	Theme string `koanf:"theme"`

	// Dashboard is a path to a replacement dashboard document template.
	Dashboard string `koanf:"dashboard"`

	// LogFile overrides the platform log file location.
	LogFile string `koanf:"log_file"`

	// FileUsed is the config file that was loaded, if any.
	FileUsed string `koanf:"-"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Location: DefaultLocation,
	}
}

// RegisterFlags adds the configuration flags to fs. Only flags the user
// sets override the file and environment.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default: atrium.yaml in the working or user config directory)")
	fs.String("location", DefaultLocation, "dashboard location URL; the first path segment is the locale")
	fs.Bool("debug", false, "enable debug logging")
	fs.String("theme", "", "theme: system, light or dark")
	fs.String("dashboard", "", "path to a replacement dashboard document")
	fs.String("log-file", "", "log file path")
}

// LoadConfig loads configuration from defaults, a YAML file, ATRIUM_*
// environment variables and explicitly set flags, in increasing precedence.
// cfgFile may be empty, in which case atrium.yaml is looked up in the
// working directory and then in the user config directory.
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := k.Load(confmap.Provider(map[string]any{
		"location":  defaults.Location,
		"debug":     defaults.Debug,
		"theme":     defaults.Theme,
		"dashboard": defaults.Dashboard,
		"log_file":  defaults.LogFile,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// ATRIUM_LOG_FILE -> log_file
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.FileUsed = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the location is absolute and the theme is known.
func (c *Config) Validate() error {
	if _, err := page.NewLocation(c.Location); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Theme != "" && !slices.Contains([]string{"system", "light", "dark"}, c.Theme) {
		return apperrors.ValidationError{
			Field:   "theme",
			Message: fmt.Sprintf("unknown theme %q (want system, light or dark)", c.Theme),
		}
	}
	return nil
}

// DashboardTemplate returns the dashboard document template: the file named
// by Dashboard, or the built-in document.
func (c *Config) DashboardTemplate() (string, error) {
	if c.Dashboard == "" {
		return dashboard.DefaultTemplate(), nil
	}
	data, err := os.ReadFile(c.Dashboard)
	if err != nil {
		return "", fmt.Errorf("read dashboard %s: %w", c.Dashboard, err)
	}
	return string(data), nil
}

// findConfigFile returns explicit when set, otherwise the first atrium.yaml
// found in the working directory or the user config directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	dirs := []string{"."}
	if cfgDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(cfgDir, "atrium"))
	}
	for _, dir := range dirs {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
