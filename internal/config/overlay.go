package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. TYPEAHEAD_WIDGET_ENDPOINT
const EnvPrefix = "TYPEAHEAD"

// NewOverlay returns a viper instance reading TYPEAHEAD_* environment
// variables. Command flags can be bound onto it with BindPFlag.
func NewOverlay() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ApplyOverlay copies every key set in v (by flag or environment) over cfg.
// Keys mirror the TOML layout.
func ApplyOverlay(cfg *Config, v *viper.Viper) {
	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}
	num := func(key string, dst *int) {
		if v.IsSet(key) {
			*dst = v.GetInt(key)
		}
	}
	flag := func(key string, dst *bool) {
		if v.IsSet(key) {
			*dst = v.GetBool(key)
		}
	}

	str("widget.placeholder", &cfg.Widget.Placeholder)
	str("widget.endpoint", &cfg.Widget.Endpoint)
	num("widget.debounce_ms", &cfg.Widget.DebounceMs)
	flag("widget.initially_open", &cfg.Widget.InitiallyOpen)
	str("widget.channel", &cfg.Widget.Channel)
	num("widget.request_timeout_ms", &cfg.Widget.RequestTimeoutMs)
	num("widget.max_label_width", &cfg.Widget.MaxLabelWidth)

	str("catalog.path", &cfg.Catalog.Path)
	num("catalog.limit", &cfg.Catalog.Limit)

	str("server.address", &cfg.Server.Address)
	flag("server.verbose", &cfg.Server.Verbose)

	str("log.level", &cfg.Log.Level)
	str("log.file", &cfg.Log.File)
	str("log.format", &cfg.Log.Format)
}
