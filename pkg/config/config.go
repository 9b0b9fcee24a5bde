// Package config loads the flowcanvas settings file.
//
// Settings are TOML. A missing file is not an error: every key has a
// default, and keys absent from the file keep it.
//
//	[layout]
//	direction   = "LR"
//	node_width  = 200
//	iterations  = 12
//
//	[cache]
//	ttl        = "24h"
//	redis_addr = "localhost:6379"
//	namespace  = "payments"
//
//	[render]
//	format = "svg"
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/flowcanvas/pkg/cache"
	"github.com/matzehuels/flowcanvas/pkg/errors"
	"github.com/matzehuels/flowcanvas/pkg/layout"
)

const (
	appName  = "flowcanvas"
	fileName = "config.toml"

	// DefaultTTL is how long cached graphs and layouts stay valid.
	DefaultTTL = 7 * 24 * time.Hour

	// DefaultRenderFormat is used by the render command when -f is not given.
	DefaultRenderFormat = "svg"
)

// Config is the parsed settings file.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Render RenderConfig `toml:"render"`

	// Path is the file the settings were read from, empty for defaults.
	Path string `toml:"-"`
}

// LayoutConfig mirrors layout.Options.
type LayoutConfig struct {
	Direction  string  `toml:"direction"`
	NodeWidth  float64 `toml:"node_width"`
	NodeHeight float64 `toml:"node_height"`
	RankSep    float64 `toml:"rank_sep"`
	NodeSep    float64 `toml:"node_sep"`
	Iterations int     `toml:"iterations"`
}

// CacheConfig selects and tunes the result cache.
type CacheConfig struct {
	Disabled bool     `toml:"disabled"`
	Dir      string   `toml:"dir"`
	TTL      Duration `toml:"ttl"`

	// RedisAddr switches from the file cache to a shared Redis instance.
	RedisAddr string `toml:"redis_addr"`
	RedisDB   int    `toml:"redis_db"`
	Prefix    string `toml:"prefix"`

	// Namespace scopes keys so several projects can share one store.
	Namespace string `toml:"namespace"`
}

// RenderConfig holds defaults for the render command.
type RenderConfig struct {
	Format string `toml:"format"`
}

// Duration is a time.Duration written as a Go duration string ("90m").
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
	return []byte(d.Duration.String()), nil
}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			Direction:  string(layout.TopBottom),
			NodeWidth:  layout.DefaultNodeWidth,
			NodeHeight: layout.DefaultNodeHeight,
			RankSep:    layout.DefaultRankSep,
			NodeSep:    layout.DefaultNodeSep,
			Iterations: layout.DefaultIterations,
		},
		Cache: CacheConfig{
			TTL:    Duration{DefaultTTL},
			Prefix: cache.DefaultRedisPrefix,
		},
		Render: RenderConfig{Format: DefaultRenderFormat},
	}
}

// Load reads the settings. An explicit path must exist; otherwise the
// first file found by [SearchPaths] is used, or the defaults if none is.
func Load(path string) (Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	for _, p := range SearchPaths() {
		cfg, err := LoadFile(p)
		if errors.Is(err, errors.ErrCodeFileNotFound) {
			continue
		}
		return cfg, err
	}
	return Default(), nil
}

// LoadFile reads and validates one settings file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, err
	}
	cfg.Path = path
	return cfg, nil
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the layout and cache cannot recover from.
func (c Config) Validate() error {
	if _, err := layout.ParseDirection(c.Layout.Direction); err != nil {
		return err
	}
	switch {
	case c.Layout.NodeWidth < 0, c.Layout.NodeHeight < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "node size must not be negative")
	case c.Layout.Iterations < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "iterations must not be negative")
	case c.Cache.TTL.Duration < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	case c.Cache.RedisDB < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "redis_db must not be negative")
	}
	switch c.Render.Format {
	case "dot", "svg", "png":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown render format %q (want dot, svg or png)", c.Render.Format)
	}
	return nil
}

// LayoutOptions converts the [layout] section.
func (c Config) LayoutOptions() layout.Options {
	dir, err := layout.ParseDirection(c.Layout.Direction)
	if err != nil {
		dir = layout.TopBottom
	}
	return layout.Options{
		Direction:  dir,
		NodeWidth:  c.Layout.NodeWidth,
		NodeHeight: c.Layout.NodeHeight,
		RankSep:    c.Layout.RankSep,
		NodeSep:    c.Layout.NodeSep,
		Iterations: c.Layout.Iterations,
	}
}

// KeyOpts returns the layout settings in cache-key form.
func KeyOpts(opts layout.Options) cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Direction:  string(opts.Direction),
		NodeWidth:  opts.NodeWidth,
		NodeHeight: opts.NodeHeight,
		RankSep:    opts.RankSep,
		NodeSep:    opts.NodeSep,
		Iterations: opts.Iterations,
	}
}

// SearchPaths lists the locations checked when no explicit file is given.
func SearchPaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, appName, fileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, fileName))
	}
	return paths
}
