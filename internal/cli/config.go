package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Environment variables read by the CLI. A .env file in the working
// directory is loaded first; variables already set take precedence over it.
const (
	envAPIKey  = "BUILTWITH_API_KEY"
	envFormat  = "BUILTWITH_FORMAT"
	envBaseURL = "BUILTWITH_BASE_URL"
	envTimeout = "BUILTWITH_TIMEOUT"
)

// Config is the CLI configuration file (config.toml):
//
//	api_key  = "..."
//	format   = "json"
//	base_url = "https://{subdomain}.builtwith.com"
//	timeout  = "30s"
type Config struct {
	APIKey  string   `toml:"api_key"`
	Format  string   `toml:"format"`
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// Duration is a time.Duration read from a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// loadConfig reads the config file at path. An empty path means the default
// location, which may be missing; an explicit path must exist.
func loadConfig(path string) (Config, error) {
	var cfg Config

	explicit := path != ""
	if !explicit {
		p, err := configPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("parse config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// loadDotEnv loads .env from the working directory if present.
func loadDotEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// applyEnv overrides fields with non-empty environment variables. A timeout
// that is not a valid duration is an error.
func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(envAPIKey); v != "" {
		c.APIKey = v
	}
	if v := getenv(envFormat); v != "" {
		c.Format = v
	}
	if v := getenv(envBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(envTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envTimeout, err)
		}
		c.Timeout.Duration = d
	}
	return nil
}

// applyFlags overrides fields with flags that were set.
func (c *Config) applyFlags(f globalFlags) {
	if f.key != "" {
		c.APIKey = f.key
	}
	if f.format != "" {
		c.Format = f.format
	}
	if f.baseURL != "" {
		c.BaseURL = f.baseURL
	}
	if f.timeout > 0 {
		c.Timeout.Duration = f.timeout
	}
}

// maskKey shows only the last four characters of an API key.
func maskKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

// configCommand creates the config inspection command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the CLI configuration",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.flags.config
			if path == "" {
				p, err := configPath()
				if err != nil {
					return fmt.Errorf("get config dir: %w", err)
				}
				path = p
			}
			fmt.Fprintln(c.out, path)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (key masked)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.resolveConfig()
			if err != nil {
				return err
			}
			printKeyValue(c.out, "api_key", maskKey(cfg.APIKey))
			printKeyValue(c.out, "format", cfg.Format)
			printKeyValue(c.out, "base_url", orDefault(cfg.BaseURL, "(default)"))
			printKeyValue(c.out, "timeout", orDefault(durationString(cfg.Timeout.Duration), "(none)"))
			return nil
		},
	}
}

func durationString(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	return d.String()
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
