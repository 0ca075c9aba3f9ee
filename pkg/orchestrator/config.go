package orchestrator

import (
	"fmt"
	"os"
	"strings"

	"github.com/goliatone/go-formschema/pkg/config"
	"github.com/goliatone/go-formschema/pkg/layout"
	"github.com/goliatone/go-formschema/pkg/translation"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

// FromConfig builds an Orchestrator from loaded settings. Catalogs are read
// from cfg.Catalogs when set. Explicit options are applied last and win over
// the configured values.
func FromConfig(cfg *config.Config, options ...Option) (*Orchestrator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}

	base := []Option{
		WithLayout(layout.Static(cfg.DefaultLayout)),
		WithDefaultDomain(cfg.DefaultDomain),
		WithCurrencies(cfg.Currencies...),
		WithWidgets(widgets.NewRegistry(widgets.WithRenames(cfg.Widgets))),
	}

	if dir := strings.TrimSpace(cfg.Catalogs); dir != "" {
		catalog, err := translation.LoadCatalogFS(os.DirFS(dir),
			translation.WithDefaultDomain(cfg.DefaultDomain),
			translation.WithDefaultLocale(cfg.DefaultLocale),
			translation.WithFallbackLocale(cfg.FallbackLocale),
		)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load catalogs: %w", err)
		}
		var resolverOpts []translation.ResolverOption
		if cfg.SanitizeHTML {
			resolverOpts = append(resolverOpts, translation.WithSanitizer(translation.TextSanitizer()))
		}
		base = append(base, WithTranslator(catalog, resolverOpts...))
	} else if cfg.SanitizeHTML {
		base = append(base, WithTranslator(nil, translation.WithSanitizer(translation.TextSanitizer())))
	}

	return New(append(base, options...)...), nil
}
