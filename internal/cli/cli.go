// Package cli implements the builtwith command-line interface.
package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/builtwith/pkg/buildinfo"
	"github.com/matzehuels/builtwith/pkg/builtwith"
	"github.com/matzehuels/builtwith/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "builtwith"

	// configFile is the name of the config file inside the config directory.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	logw  io.Writer // log destination, shared with status lines
	out   io.Writer // command output (response bodies)
	flags globalFlags
}

// globalFlags are the persistent flags shared by every lookup command.
type globalFlags struct {
	key     string
	format  string
	config  string
	baseURL string
	timeout time.Duration
	showURL bool
}

// New creates a new CLI instance with a default logger.
// Command output goes to stdout; logs go to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		logw:   w,
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output.
func (c *CLI) SetOutput(w io.Writer) {
	c.out = w
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Query the BuiltWith technology lookup APIs",
		Long:         `builtwith queries the BuiltWith APIs for the technologies a site uses, the sites using a technology, and related data.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.key, "key", "", "API key (default: $BUILTWITH_API_KEY or config file)")
	pf.StringVarP(&c.flags.format, "format", "f", "", "response format: xml, json or txt (default json)")
	pf.StringVar(&c.flags.config, "config", "", "config file (default: "+displayConfigPath()+")")
	pf.StringVar(&c.flags.baseURL, "base-url", "", "override the service host (may contain {subdomain})")
	pf.DurationVar(&c.flags.timeout, "timeout", 0, "request timeout, e.g. 30s (default: none)")
	pf.BoolVar(&c.flags.showURL, "show-url", false, "print the request URL (key redacted)")
	registerFlagCompletions(root)

	// Register all subcommands
	root.AddCommand(c.freeCommand())
	root.AddCommand(c.domainCommand())
	root.AddCommand(c.listsCommand())
	root.AddCommand(c.relationshipsCommand())
	root.AddCommand(c.keywordsCommand())
	root.AddCommand(c.trendsCommand())
	root.AddCommand(c.ctuCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// newClient builds an API client from the config file, the environment and
// the persistent flags, in increasing order of precedence. The client logs
// to logger.
func (c *CLI) newClient(logger *log.Logger) (*builtwith.Client, error) {
	cfg, err := c.resolveConfig()
	if err != nil {
		return nil, err
	}

	format, err := builtwith.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		return nil, errors.New(errors.ErrCodeConfiguration,
			"no API key: pass --key, set BUILTWITH_API_KEY or add api_key to %s", displayConfigPath())
	}

	opts := []builtwith.Option{
		builtwith.WithLogger(logger),
		builtwith.WithBaseURL(cfg.BaseURL),
	}
	if cfg.Timeout.Duration > 0 {
		opts = append(opts, builtwith.WithHTTPClient(&http.Client{Timeout: cfg.Timeout.Duration}))
	}
	return builtwith.New(cfg.APIKey, format, opts...)
}

// resolveConfig merges the config file, environment and flags.
func (c *CLI) resolveConfig() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg, err := loadConfig(c.flags.config)
	if err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	cfg.applyFlags(c.flags)
	if cfg.Format == "" {
		cfg.Format = string(builtwith.FormatJSON)
	}
	return cfg, nil
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/builtwith/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// configPath returns the default config file path.
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

func displayConfigPath() string {
	if p, err := configPath(); err == nil {
		return p
	}
	return filepath.Join("~", ".config", appName, configFile)
}
