package field

import "fmt"

// Option keys understood by the schema pipeline.
const (
	OptionLabel                  = "label"
	OptionLabelTranslationParams = "label_translation_parameters"
	OptionHelp                   = "help"
	OptionHelpTranslationParams  = "help_translation_parameters"
	OptionData                   = "data"
	OptionDisabled               = "disabled"
	OptionMapped                 = "mapped"
	OptionAttr                   = "attr"
	OptionAttrTranslationParams  = "attr_translation_parameters"
	OptionTranslationDomain      = "translation_domain"
	OptionRequired               = "required"
	OptionChoices                = "choices"
	OptionMultiple               = "multiple"
	OptionExpanded               = "expanded"
	OptionSchema                 = "json_schema"
)

// Options is the read-only option snapshot attached to a node.
type Options map[string]any

// Lookup returns the value stored under key. Nil values count as absent.
func (o Options) Lookup(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	value, ok := o[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// Clone returns a shallow copy of the options.
func (o Options) Clone() Options {
	if o == nil {
		return nil
	}
	out := make(Options, len(o))
	for key, value := range o {
		out[key] = value
	}
	return out
}

// StringMap converts the supported mapping shapes into map[string]any. YAML
// and JSON decoders produce map[string]any; Go callers often pass
// map[string]string. The second result is false for non-mapping values.
func StringMap(value any) (map[string]any, bool) {
	switch typed := value.(type) {
	case map[string]any:
		return typed, true
	case Options:
		return map[string]any(typed), true
	case map[string]string:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[key] = val
		}
		return out, true
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, val := range typed {
			out[fmt.Sprint(key)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
