package translation

import (
	"strings"

	"github.com/goliatone/go-formschema/pkg/field"
)

// LocaleOf returns the form locale declared on the root node as attr.lang, or
// "" when unset.
func LocaleOf(node field.Node) string {
	root := node.Root()
	attr, ok := field.StringMap(root.Option(field.OptionAttr, nil))
	if !ok {
		return ""
	}
	lang, _ := attr["lang"].(string)
	return strings.TrimSpace(lang)
}

// DomainsFor computes the translation domains for node. The primary domain is
// the node's own translation_domain or the nearest ancestor's; the fallback is
// the root's domain when it differs, otherwise defaultDomain. A
// translation_domain of false stops inheritance and leaves Primary empty.
func DomainsFor(node field.Node, defaultDomain string) Domains {
	primary := inheritedDomain(node)
	fallback := strings.TrimSpace(defaultDomain)
	if root := ownDomain(node.Root()); root != "" && root != primary {
		fallback = root
	}
	return Domains{Primary: primary, Fallback: fallback}
}

func inheritedDomain(node field.Node) string {
	current := node
	for {
		if value, ok := current.LookupOption(field.OptionTranslationDomain); ok {
			if domain, ok := value.(string); ok && strings.TrimSpace(domain) != "" {
				return strings.TrimSpace(domain)
			}
			if disabled, ok := value.(bool); ok && !disabled {
				return ""
			}
		}
		parent, ok := current.Parent()
		if !ok {
			return ""
		}
		current = parent
	}
}

func ownDomain(node field.Node) string {
	value, ok := node.LookupOption(field.OptionTranslationDomain)
	if !ok {
		return ""
	}
	domain, _ := value.(string)
	return strings.TrimSpace(domain)
}
