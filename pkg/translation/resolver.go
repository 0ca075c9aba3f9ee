package translation

import (
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Domains pairs the field-scoped translation domain with the form-wide one
// consulted when the first lookup misses. An empty Primary means no domain
// was configured and disables the fallback.
type Domains struct {
	Primary  string
	Fallback string
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithSanitizer passes every resolved string through policy.
func WithSanitizer(policy *bluemonday.Policy) ResolverOption {
	return func(r *Resolver) {
		r.sanitizer = policy
	}
}

// Resolver turns option values into display strings using a Translator.
type Resolver struct {
	translator Translator
	sanitizer  *bluemonday.Policy
}

// NewResolver wraps translator. A nil translator resolves every text to
// itself.
func NewResolver(translator Translator, opts ...ResolverOption) *Resolver {
	r := &Resolver{translator: translator}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve translates text in the primary domain and retries the fallback
// domain when the primary lookup hands the input back unchanged. Nil text,
// non-scalar text and non-string catalog values all resolve to "".
func (r *Resolver) Resolve(text any, params map[string]any, domains Domains, locale string) string {
	message, ok := textOf(text)
	if !ok {
		return ""
	}
	if r == nil || r.translator == nil {
		return r.sanitize(message)
	}

	translated := r.translator.Trans(message, params, domains.Primary, locale)
	if domains.Primary != "" && isUntranslated(translated, message) {
		translated = r.translator.Trans(message, params, domains.Fallback, locale)
	}

	result, ok := translated.(string)
	if !ok {
		return ""
	}
	return r.sanitize(result)
}

func (r *Resolver) sanitize(value string) string {
	if r == nil || r.sanitizer == nil || value == "" {
		return value
	}
	return strings.TrimSpace(r.sanitizer.Sanitize(value))
}

func isUntranslated(result any, input string) bool {
	str, ok := result.(string)
	return ok && str == input
}

func textOf(value any) (string, bool) {
	switch typed := value.(type) {
	case nil:
		return "", false
	case string:
		return typed, true
	case fmt.Stringer:
		return typed.String(), true
	case bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(typed), true
	default:
		return "", false
	}
}
