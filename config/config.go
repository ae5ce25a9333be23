// Package config loads clip-browser settings from YAML over built-in defaults.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/user/clip-browser/clip"
	"gopkg.in/yaml.v3"
)

type contextKey string

const configKey contextKey = "config"

// Config holds all application configuration
type Config struct {
	// DataDir is scanned for *.db data sources
	DataDir string `yaml:"data_dir"`
	// DefaultSource is the .db file opened first; empty means the first one found
	DefaultSource string `yaml:"default_source"`
	// Table is the table each data source is read from
	Table string `yaml:"table"`

	Columns ColumnConfig `yaml:"columns"`
	Embed   EmbedConfig  `yaml:"embed"`
	Player  PlayerConfig `yaml:"player"`
	Server  ServerConfig `yaml:"server"`

	// LogFile receives log output while the terminal UI owns the screen
	LogFile string `yaml:"log_file"`
}

// ColumnConfig maps source columns onto clip row fields.
type ColumnConfig struct {
	MediaID     string   `yaml:"media_id"`
	Start       string   `yaml:"start"`
	End         string   `yaml:"end"`
	Description string   `yaml:"description"`
	Hidden      []string `yaml:"hidden"`
}

// EmbedConfig holds the base addresses used to build playback URLs.
type EmbedConfig struct {
	EmbedBase string `yaml:"embed_base"`
	WatchBase string `yaml:"watch_base"`
}

// PlayerConfig configures the mpv player.
type PlayerConfig struct {
	SocketPath string `yaml:"socket_path"`
	Launch     bool   `yaml:"launch"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Load reads configuration from file or returns defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// IsHidden reports whether a column is excluded from display.
func (c *Config) IsHidden(column string) bool {
	for _, h := range c.Columns.Hidden {
		if h == column {
			return true
		}
	}
	return false
}

// ColumnMap returns the configured column names as a clip.ColumnMap.
func (c *Config) ColumnMap() clip.ColumnMap {
	return clip.ColumnMap{
		MediaID:     c.Columns.MediaID,
		Start:       c.Columns.Start,
		End:         c.Columns.End,
		Description: c.Columns.Description,
	}
}

// VisibleColumns filters out hidden columns, keeping order.
func (c *Config) VisibleColumns(columns []string) []string {
	var out []string
	for _, col := range columns {
		if !c.IsHidden(col) {
			out = append(out, col)
		}
	}
	return out
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir: ".",
		Table:   "descriptions",
		Columns: ColumnConfig{
			MediaID:     "video_id",
			Start:       "start_timecode",
			End:         "end_timecode",
			Description: "description",
			Hidden:      []string{"document_name"},
		},
		Embed: EmbedConfig{
			EmbedBase: "https://www.youtube.com/embed",
			WatchBase: "https://www.youtube.com/watch",
		},
		Player: PlayerConfig{
			SocketPath: "/tmp/clip-browser-mpv.sock",
			Launch:     true,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8050",
		},
		LogFile: filepath.Join(os.TempDir(), "clip-browser.log"),
	}
}

func findConfigFile() string {
	candidates := []string{
		"./clipbrowser.yaml",
		"./clipbrowser.yml",
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "clipbrowser", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// WithConfig stores config in context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) *Config {
	if ctx == nil {
		return Default()
	}
	if cfg, ok := ctx.Value(configKey).(*Config); ok {
		return cfg
	}
	return Default()
}
