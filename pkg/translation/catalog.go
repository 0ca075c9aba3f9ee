package translation

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

const (
	// DefaultDomain is the catalog namespace used when callers pass no domain.
	DefaultDomain = "messages"
	// DefaultLocale is the locale looked up when callers pass no locale.
	DefaultLocale = "en"
)

// Translator looks messages up by id. Implementations return id unchanged
// (after parameter substitution) when no entry exists; callers rely on that
// to detect misses. Catalog values are not guaranteed to be strings.
type Translator interface {
	Trans(id string, params map[string]any, domain, locale string) any
}

// TranslatorFunc adapts a function into a Translator.
type TranslatorFunc func(id string, params map[string]any, domain, locale string) any

// Trans calls the wrapped function.
func (fn TranslatorFunc) Trans(id string, params map[string]any, domain, locale string) any {
	return fn(id, params, domain, locale)
}

// CatalogOption customises a Catalog.
type CatalogOption func(*Catalog)

// WithDefaultDomain overrides the domain used for empty domain lookups.
func WithDefaultDomain(domain string) CatalogOption {
	return func(c *Catalog) {
		if trimmed := strings.TrimSpace(domain); trimmed != "" {
			c.defaultDomain = trimmed
		}
	}
}

// WithDefaultLocale overrides the locale used for empty locale lookups.
func WithDefaultLocale(locale string) CatalogOption {
	return func(c *Catalog) {
		if normalised := NormalizeLocale(locale); normalised != "" {
			c.defaultLocale = normalised
		}
	}
}

// WithFallbackLocale sets the locale consulted after the requested locale and
// its parents are exhausted.
func WithFallbackLocale(locale string) CatalogOption {
	return func(c *Catalog) {
		c.fallbackLocale = NormalizeLocale(locale)
	}
}

// Catalog is an in-memory message store keyed by locale, domain and id. It is
// populated once during start-up and read concurrently afterwards.
type Catalog struct {
	mu             sync.RWMutex
	messages       map[string]map[string]map[string]any
	defaultDomain  string
	defaultLocale  string
	fallbackLocale string
}

// NewCatalog returns an empty catalog.
func NewCatalog(opts ...CatalogOption) *Catalog {
	c := &Catalog{
		messages:      make(map[string]map[string]map[string]any),
		defaultDomain: DefaultDomain,
		defaultLocale: DefaultLocale,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Add merges messages for locale/domain. Nested maps are flattened into dotted
// ids, so {"user": {"email": "E-mail"}} registers "user.email".
func (c *Catalog) Add(locale, domain string, messages map[string]any) {
	locale = NormalizeLocale(locale)
	domain = c.domainOrDefault(domain)

	flat := make(map[string]any)
	flatten("", messages, flat)

	c.mu.Lock()
	defer c.mu.Unlock()

	domains, ok := c.messages[locale]
	if !ok {
		domains = make(map[string]map[string]any)
		c.messages[locale] = domains
	}
	entries, ok := domains[domain]
	if !ok {
		entries = make(map[string]any, len(flat))
		domains[domain] = entries
	}
	for id, value := range flat {
		entries[id] = value
	}
}

// Lookup returns the raw catalog value, walking the locale fallback chain. An
// empty locale resolves to the catalog default locale.
func (c *Catalog) Lookup(id, domain, locale string) (any, bool) {
	if c == nil {
		return nil, false
	}
	domain = c.domainOrDefault(domain)

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, candidate := range c.localeChain(locale) {
		entries := c.messages[candidate][domain]
		if value, ok := entries[id]; ok {
			return value, true
		}
	}
	return nil, false
}

// Trans implements Translator. String values get params substituted; other
// values are returned as stored.
func (c *Catalog) Trans(id string, params map[string]any, domain, locale string) any {
	value, ok := c.Lookup(id, domain, locale)
	if !ok {
		return Substitute(id, params)
	}
	if message, ok := value.(string); ok {
		return Substitute(message, params)
	}
	return value
}

// Locales lists the normalised locales present in the catalog.
func (c *Catalog) Locales() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.messages))
	for locale := range c.messages {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) domainOrDefault(domain string) string {
	if trimmed := strings.TrimSpace(domain); trimmed != "" {
		return trimmed
	}
	return c.defaultDomain
}

// DefaultLocale returns the locale used for empty locale lookups.
func (c *Catalog) DefaultLocale() string {
	return c.defaultLocale
}

func (c *Catalog) localeChain(locale string) []string {
	if strings.TrimSpace(locale) == "" {
		locale = c.defaultLocale
	}
	chain := LocaleChain(locale)
	if c.fallbackLocale == "" {
		return chain
	}
	for _, existing := range chain {
		if existing == c.fallbackLocale {
			return chain
		}
	}
	return append(chain, c.fallbackLocale)
}

// NormalizeLocale canonicalises POSIX and BCP 47 spellings ("fr_CA",
// "fr-ca") into BCP 47 form. Unparseable values are returned trimmed.
func NormalizeLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(trimmed, "_", "-"))
	if err != nil {
		return trimmed
	}
	return tag.String()
}

// LocaleChain returns locale followed by its parents ("fr-CA", "fr").
func LocaleChain(locale string) []string {
	normalised := NormalizeLocale(locale)
	if normalised == "" {
		return nil
	}
	tag, err := language.Parse(normalised)
	if err != nil {
		return []string{normalised}
	}
	chain := []string{tag.String()}
	for i := 0; i < 8; i++ {
		tag = tag.Parent()
		if tag == language.Und {
			break
		}
		chain = append(chain, tag.String())
	}
	return chain
}

// Substitute replaces each params key found in message with its value. Keys
// are used verbatim, so both "%name%" and "{name}" placeholder styles work.
func Substitute(message string, params map[string]any) string {
	if len(params) == 0 || message == "" {
		return message
	}
	keys := make([]string, 0, len(params))
	for key := range params {
		if key != "" {
			keys = append(keys, key)
		}
	}
	// longer keys first so "%name_full%" is not shadowed by "%name"
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) == len(keys[j]) {
			return keys[i] < keys[j]
		}
		return len(keys[i]) > len(keys[j])
	})
	pairs := make([]string, 0, len(keys)*2)
	for _, key := range keys {
		pairs = append(pairs, key, fmt.Sprint(params[key]))
	}
	return strings.NewReplacer(pairs...).Replace(message)
}

func flatten(prefix string, in map[string]any, out map[string]any) {
	for key, value := range in {
		id := key
		if prefix != "" {
			id = prefix + "." + key
		}
		switch nested := value.(type) {
		case map[string]any:
			flatten(id, nested, out)
		case map[any]any:
			converted := make(map[string]any, len(nested))
			for k, v := range nested {
				converted[fmt.Sprint(k)] = v
			}
			flatten(id, converted, out)
		default:
			out[id] = value
		}
	}
}
