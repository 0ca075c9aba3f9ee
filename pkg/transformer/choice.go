package transformer

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/schema"
)

// ChoiceEntry is one allowed value with its display label.
type ChoiceEntry struct {
	Label any
	Value any
}

// Choice emits enumerations from the choices option. Single choices produce
// an enum; multiple choices produce an array of unique enum items. Labels are
// translated into options.enum_titles unless custom options already set it.
type Choice struct {
	// Defaults supplies entries when the node has no choices option.
	Defaults func(s *Scope, node field.Node) ([]ChoiceEntry, error)
}

// Transform implements Transformer.
func (t Choice) Transform(s *Scope, node field.Node) (schema.Fragment, error) {
	fragment, err := Enrich(s, node)
	if err != nil {
		return nil, err
	}
	entries, err := t.entries(s, node)
	if err != nil {
		return nil, err
	}

	values := make([]any, 0, len(entries))
	titles := make([]string, 0, len(entries))
	for _, entry := range entries {
		values = append(values, entry.Value)
		titles = append(titles, s.Translate(node, entry.Label, ""))
	}

	// no entries, no enum
	itemSchema := schema.Fragment{schema.KeyType: enumType(values)}
	if len(values) > 0 {
		itemSchema[schema.KeyEnum] = values
	}

	if multiple, ok := node.Option(field.OptionMultiple, nil).(bool); ok && multiple {
		fragment[schema.KeyType] = schema.TypeArray
		fragment[schema.KeyItems] = itemSchema
		fragment[schema.KeyUniqueItems] = true
	} else {
		for key, value := range itemSchema {
			fragment[key] = value
		}
	}

	options := fragment.Options()
	if _, exists := options[schema.OptionEnumTitles]; !exists && len(titles) > 0 {
		options[schema.OptionEnumTitles] = titles
	}
	return fragment, nil
}

func (t Choice) entries(s *Scope, node field.Node) ([]ChoiceEntry, error) {
	raw, ok := node.LookupOption(field.OptionChoices)
	if !ok {
		if t.Defaults == nil {
			return nil, nil
		}
		return t.Defaults(s, node)
	}
	return ParseChoices(node, raw)
}

// ParseChoices accepts a list of scalars, a list of {label, value} mappings,
// or a label to value mapping (ordered by label).
func ParseChoices(node field.Node, raw any) ([]ChoiceEntry, error) {
	invalid := func(reason string) error {
		return &ConfigurationError{Field: node.Path(), Option: field.OptionChoices, Reason: reason}
	}

	switch typed := raw.(type) {
	case []any:
		entries := make([]ChoiceEntry, 0, len(typed))
		for idx, item := range typed {
			if mapping, ok := field.StringMap(item); ok {
				value, exists := mapping["value"]
				if !exists {
					return nil, invalid(fmt.Sprintf("entry %d has no value", idx))
				}
				label, exists := mapping["label"]
				if !exists {
					label = value
				}
				entries = append(entries, ChoiceEntry{Label: label, Value: value})
				continue
			}
			entries = append(entries, ChoiceEntry{Label: item, Value: item})
		}
		return entries, nil
	case []string:
		entries := make([]ChoiceEntry, 0, len(typed))
		for _, item := range typed {
			entries = append(entries, ChoiceEntry{Label: item, Value: item})
		}
		return entries, nil
	}

	mapping, ok := field.StringMap(raw)
	if !ok {
		return nil, invalid(fmt.Sprintf("expected a list or mapping, got %T", raw))
	}
	labels := make([]string, 0, len(mapping))
	for label := range mapping {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	entries := make([]ChoiceEntry, 0, len(labels))
	for _, label := range labels {
		entries = append(entries, ChoiceEntry{Label: label, Value: mapping[label]})
	}
	return entries, nil
}

func enumType(values []any) string {
	if len(values) == 0 {
		return schema.TypeString
	}
	kind := ""
	for _, value := range values {
		current := valueKind(value)
		switch {
		case kind == "":
			kind = current
		case kind == current:
		case isNumeric(kind) && isNumeric(current):
			kind = schema.TypeNumber
		default:
			return schema.TypeString
		}
	}
	return kind
}

func isNumeric(kind string) bool {
	return kind == schema.TypeInteger || kind == schema.TypeNumber
}

func valueKind(value any) string {
	switch typed := value.(type) {
	case bool:
		return schema.TypeBoolean
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return schema.TypeInteger
	case float32:
		if float32(int64(typed)) == typed {
			return schema.TypeInteger
		}
		return schema.TypeNumber
	case float64:
		if float64(int64(typed)) == typed {
			return schema.TypeInteger
		}
		return schema.TypeNumber
	default:
		return schema.TypeString
	}
}
