package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/rohanthewiz/serr"

	"typeahead/internal/domain"
	"typeahead/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	Widget  WidgetSettings `toml:"widget"`
	Catalog CatalogConfig  `toml:"catalog"`
	Server  ServerConfig   `toml:"server"`
	Log     LogConfig      `toml:"log"`
}

// WidgetSettings configures a search widget instance
type WidgetSettings struct {
	Placeholder      string `toml:"placeholder"`
	Endpoint         string `toml:"endpoint"`           // empty selects the delegated strategy
	DebounceMs       int    `toml:"debounce_ms"`        // not validated; <= 0 fires immediately
	InitiallyOpen    bool   `toml:"initially_open"`
	Channel          string `toml:"channel"`            // side-channel name
	RequestTimeoutMs int    `toml:"request_timeout_ms"` // self-fetch timeout
	MaxLabelWidth    int    `toml:"max_label_width"`
}

// CatalogConfig configures the demo catalog
type CatalogConfig struct {
	Path  string `toml:"path"`
	Limit int    `toml:"limit"` // max entries per section
}

// ServerConfig configures the endpoint server
type ServerConfig struct {
	Address string `toml:"address"`
	Verbose bool   `toml:"verbose"`
}

// LogConfig configures logging
type LogConfig struct {
	Level  string `toml:"level"`
	File   string `toml:"file"`
	Format string `toml:"format"`
}

// Debounce returns the debounce delay as a duration
func (w WidgetSettings) Debounce() time.Duration {
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// RequestTimeout returns the self-fetch timeout as a duration
func (w WidgetSettings) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutMs) * time.Millisecond
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service rooted in the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "typeahead", "config.toml"),
	}
}

// NewConfigServiceAt creates a config service for an explicit file path
func NewConfigServiceAt(path string) ConfigService {
	return &configService{filePath: path}
}

// WithBus attaches an event bus that receives ConfigLoaded/ConfigSaved events
func WithBus(cs ConfigService, bus eventbus.EventBus) ConfigService {
	if c, ok := cs.(*configService); ok {
		c.bus = bus
	}
	return cs
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the file does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, serr.New("config file not found: " + path)
		}
		return nil, serr.Wrap(err, "failed to read config file", "path", path)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, serr.Wrap(err, "failed to parse config", "path", path)
	}

	if cfg.Widget.Channel == "" {
		cfg.Widget.Channel = domain.DefaultResultsChannel
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return serr.Wrap(err, "failed to create config directory", "path", path)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return serr.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return serr.Wrap(err, "failed to write config file", "path", path)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Widget: WidgetSettings{
			Placeholder:      "Search",
			DebounceMs:       300,
			Channel:          domain.DefaultResultsChannel,
			RequestTimeoutMs: 5000,
			MaxLabelWidth:    60,
		},
		Catalog: CatalogConfig{
			Path:  "typeahead.db",
			Limit: 5,
		},
		Server: ServerConfig{
			Address: ":8000",
		},
		Log: LogConfig{
			Level:  "info",
			File:   "typeahead.log",
			Format: "json",
		},
	}
}
