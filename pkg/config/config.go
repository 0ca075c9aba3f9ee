// Package config loads generator settings from struct defaults, an optional
// YAML file and FORMSCHEMA_ environment variables, in increasing precedence.
package config

import (
	"github.com/goliatone/go-formschema/pkg/layout"
	"github.com/goliatone/go-formschema/pkg/transformer"
	"github.com/goliatone/go-formschema/pkg/translation"
)

// EnvPrefix marks environment variables read by Load.
const EnvPrefix = "FORMSCHEMA_"

// Config holds generator settings.
type Config struct {
	// DefaultLayout is written to options.layout unless a field overrides it.
	DefaultLayout string `koanf:"default_layout" validate:"required"`
	// DefaultDomain is the last-resort translation domain.
	DefaultDomain string `koanf:"default_domain" validate:"required"`
	// DefaultLocale is used by the catalog when a form carries no locale.
	DefaultLocale string `koanf:"default_locale" validate:"required"`
	// FallbackLocale is consulted by the catalog when a locale chain misses.
	FallbackLocale string `koanf:"fallback_locale"`
	// SanitizeHTML strips markup from translated strings.
	SanitizeHTML bool `koanf:"sanitize_html"`
	// Widgets renames block prefixes to widget names; an empty value
	// suppresses the prefix.
	Widgets map[string]string `koanf:"widgets"`
	// Currencies lists the ISO 4217 codes offered by currency fields.
	Currencies []string `koanf:"currencies" validate:"dive,len=3,alpha"`
	// Catalogs is a directory of <domain>.<locale>.(yaml|json) files.
	Catalogs string `koanf:"catalogs"`

	Log LogConfig `koanf:"log"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `koanf:"json"`
}

// Default returns the baseline configuration.
func Default() *Config {
	return &Config{
		DefaultLayout: layout.DefaultName,
		DefaultDomain: translation.DefaultDomain,
		DefaultLocale: translation.DefaultLocale,
		Widgets:       map[string]string{},
		Currencies:    append([]string(nil), transformer.DefaultCurrencies...),
		Log: LogConfig{
			Level: "info",
		},
	}
}
