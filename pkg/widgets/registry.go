package widgets

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-formschema/pkg/field"
)

// Built-in widget identifiers exposed by the registry.
const (
	WidgetText       = "text"
	WidgetRadio      = "radio"
	WidgetCheckboxes = "checkboxes"
	WidgetCurrency   = "currency"
)

// Matcher decides whether a widget should be used for the supplied node.
type Matcher func(node field.Node) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Option customises a Registry.
type Option func(*Registry)

// WithRenames registers block prefix rename rules (see Registry.Rename).
func WithRenames(renames map[string]string) Option {
	return func(r *Registry) {
		for prefix, widget := range renames {
			r.Rename(prefix, widget)
		}
	}
}

// WithoutBuiltins skips the built-in matchers.
func WithoutBuiltins() Option {
	return func(r *Registry) {
		r.skipBuiltins = true
	}
}

// Registry resolves widget names from field block prefixes. Registered
// matchers run first: higher priority wins and ties fall back to registration
// order. When no matcher applies, the most specific non-unique block prefix
// names the widget, optionally renamed.
type Registry struct {
	mu           sync.RWMutex
	rules        []rule
	renames      map[string]string
	skipBuiltins bool
}

// NewRegistry constructs a registry with the built-in matchers registered.
func NewRegistry(opts ...Option) *Registry {
	reg := &Registry{renames: make(map[string]string)}
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	if !reg.skipBuiltins {
		reg.registerBuiltins()
	}
	return reg
}

// Register adds a widget matcher with the provided name and priority. Higher
// priority values take precedence.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Rename maps a block prefix onto a widget name. Renaming to "" suppresses the
// prefix so resolution continues with the next, more generic one.
func (r *Registry) Rename(prefix, widget string) {
	if r == nil {
		return
	}
	key := strings.TrimSpace(prefix)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renames[key] = strings.TrimSpace(widget)
}

// Resolve returns the widget name for a node and whether one was found.
func (r *Registry) Resolve(node field.Node) (string, bool) {
	if r == nil {
		return fromPrefixes(node, nil)
	}
	r.mu.RLock()
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(node) {
			return entry.name, true
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return fromPrefixes(node, r.renames)
}

// WidgetFor returns the resolved widget or "" when undetermined.
func (r *Registry) WidgetFor(node field.Node) string {
	widget, _ := r.Resolve(node)
	return widget
}

func fromPrefixes(node field.Node, renames map[string]string) (string, bool) {
	prefixes := node.BlockPrefixes()
	for idx := len(prefixes) - 1; idx >= 0; idx-- {
		prefix := strings.TrimSpace(prefixes[idx])
		// unique prefixes ("_user_email") address one field, not a widget
		if prefix == "" || strings.HasPrefix(prefix, "_") {
			continue
		}
		if renamed, ok := renames[prefix]; ok {
			if renamed == "" {
				continue
			}
			return renamed, true
		}
		return prefix, true
	}
	return "", false
}

func (r *Registry) registerBuiltins() {
	r.Register(WidgetCheckboxes, 90, func(node field.Node) bool {
		return isChoice(node) && isTrue(node, field.OptionExpanded) && isTrue(node, field.OptionMultiple)
	})

	r.Register(WidgetRadio, 80, func(node field.Node) bool {
		return isChoice(node) && isTrue(node, field.OptionExpanded) && !isTrue(node, field.OptionMultiple)
	})
}

func isChoice(node field.Node) bool {
	for _, prefix := range node.BlockPrefixes() {
		if prefix == "choice" {
			return true
		}
	}
	return false
}

func isTrue(node field.Node, key string) bool {
	value, _ := node.Option(key, false).(bool)
	return value
}
