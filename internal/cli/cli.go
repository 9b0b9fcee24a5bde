// Package cli implements the flowcanvas command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flowcanvas/pkg/buildinfo"
	"github.com/matzehuels/flowcanvas/pkg/cache"
	"github.com/matzehuels/flowcanvas/pkg/config"
	"github.com/matzehuels/flowcanvas/pkg/convert"
	"github.com/matzehuels/flowcanvas/pkg/layout"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "flowcanvas"
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

	// Config is loaded before any subcommand runs.
	Config     config.Config
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "flowcanvas converts workflow definitions to editable canvas graphs and back",
		Long: `flowcanvas turns workflow and pipeline definitions into node/edge graphs
with canvas positions, computes layered layouts, and rebuilds definitions
from edited graphs without losing the saved canvas arrangement.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/flowcanvas/config.toml)")

	// Register all subcommands
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.definitionCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.connectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("Starting "+appName, "version", buildinfo.Short())
	if cfg.Path != "" {
		c.Logger.Debug("Loaded config", "path", cfg.Path)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Converter & Layout Options
// =============================================================================

// layoutOptions returns the configured layout options, with the direction
// overridden when the flag is non-empty.
func (c *CLI) layoutOptions(direction string) (layout.Options, error) {
	opts := c.Config.LayoutOptions()
	if direction != "" {
		dir, err := layout.ParseDirection(direction)
		if err != nil {
			return layout.Options{}, err
		}
		opts.Direction = dir
	}
	opts.Orderer = newTracedOrderer(c.Logger, opts.Iterations)
	return opts, nil
}

// newConverter creates a converter that logs through the CLI logger.
func (c *CLI) newConverter(opts layout.Options) *convert.Converter {
	return convert.New(convert.Options{Layout: opts, Logger: c.Logger})
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache opens the configured cache for one key type. Redis is used when
// an address is configured and reachable; otherwise results go to the file
// cache.
func (c *CLI) newCache(ctx context.Context, keyType string, noCache bool) (cache.Cache, error) {
	cfg := c.Config.Cache
	if noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}

	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   cfg.RedisAddr,
			DB:     cfg.RedisDB,
			Prefix: cfg.Prefix,
		})
		if err == nil {
			return cache.Instrument(rc, keyType), nil
		}
		c.Logger.Warn("Redis unavailable, using file cache", "addr", cfg.RedisAddr, "err", err)
	}

	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return cache.Instrument(fc, keyType), nil
}

// newKeyer returns the cache keyer, scoped by the configured namespace.
func (c *CLI) newKeyer() cache.Keyer {
	keyer := cache.NewDefaultKeyer()
	if ns := strings.TrimSpace(c.Config.Cache.Namespace); ns != "" {
		keyer = cache.NewScopedKeyer(keyer, ns+":")
	}
	return keyer
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/flowcanvas/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// derivePath builds an output path next to input: "flow.yaml" with suffix
// ".graph.json" becomes "flow.graph.json". A ".graph" infix left by an
// earlier step is dropped first.
func derivePath(input, suffix string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	base = strings.TrimSuffix(base, ".graph")
	base = strings.TrimSuffix(base, ".layout")
	return base + suffix
}
