package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// topLevelKeys maps environment suffixes onto keys that contain underscores
// themselves and therefore cannot be split on the first underscore.
var topLevelKeys = map[string]string{
	"default_layout":  "default_layout",
	"default_domain":  "default_domain",
	"default_locale":  "default_locale",
	"fallback_locale": "fallback_locale",
	"sanitize_html":   "sanitize_html",
	"currencies":      "currencies",
	"catalogs":        "catalogs",
}

// Load layers defaults, the YAML file at path (skipped when path is empty)
// and the environment, then validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	if strings.TrimSpace(path) != "" {
		if err := k.Load(file.Provider(path), nullSafe{yaml.Parser()}); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: transformEnv,
	}), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &cfg,
			TagName:          "koanf",
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
		},
	}); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct constraints on cfg.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config: configuration is nil")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config: validation failed: %w", err)
	}
	return nil
}

// transformEnv converts FORMSCHEMA_LOG_LEVEL into log.level and
// FORMSCHEMA_DEFAULT_LAYOUT into default_layout.
func transformEnv(key, value string) (string, any) {
	name := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	if mapped, ok := topLevelKeys[name]; ok {
		return mapped, value
	}
	section, rest, found := strings.Cut(name, "_")
	if !found || section == "" || rest == "" {
		return name, value
	}
	return section + "." + rest, value
}

// nullSafe drops null entries from parsed documents.
type nullSafe struct {
	koanf.Parser
}

func (p nullSafe) Unmarshal(data []byte) (map[string]any, error) {
	out, err := p.Parser.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return dropNil(out), nil
}

// dropNil removes null entries so they do not clear defaults.
func dropNil(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for key, value := range in {
		switch typed := value.(type) {
		case nil:
			continue
		case map[string]any:
			out[key] = dropNil(typed)
		default:
			out[key] = value
		}
	}
	return out
}
