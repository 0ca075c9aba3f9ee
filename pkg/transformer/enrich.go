package transformer

import (
	"fmt"

	"github.com/mohae/deepcopy"

	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/widgets"
)

// Enrich runs the base pipeline shared by every field kind. It seeds the
// fragment with type "string" and then applies, in order: title,
// description, default, readOnly, writeOnly, widget/layout options, custom
// schema options and attr. Later steps may overwrite keys written earlier.
func Enrich(s *Scope, node field.Node) (schema.Fragment, error) {
	custom, err := customOptions(node)
	if err != nil {
		return nil, err
	}

	fragment := schema.New(schema.TypeString)
	addTitle(s, node, fragment)
	addDescription(s, node, fragment)
	addDefault(node, fragment)
	addReadOnly(node, fragment)
	addWriteOnly(node, fragment)
	addOptions(s, node, fragment, custom)
	addCustomOptions(fragment, custom)
	addAttr(s, node, fragment)
	return fragment, nil
}

func addTitle(s *Scope, node field.Node, fragment schema.Fragment) {
	label, ok := node.LookupOption(field.OptionLabel)
	switch {
	case !ok:
		if node.IsRoot() {
			fragment[schema.KeyTitle] = node.Name()
		} else {
			fragment[schema.KeyTitle] = ""
		}
	case label == false:
		fragment[schema.KeyTitle] = ""
	default:
		fragment[schema.KeyTitle] = s.Translate(node, label, field.OptionLabelTranslationParams)
	}
}

func addDescription(s *Scope, node field.Node, fragment schema.Fragment) {
	if help, ok := node.LookupOption(field.OptionHelp); ok {
		fragment[schema.KeyDescription] = s.Translate(node, help, field.OptionHelpTranslationParams)
	}
}

func addDefault(node field.Node, fragment schema.Fragment) {
	if data, ok := node.LookupOption(field.OptionData); ok {
		fragment[schema.KeyDefault] = data
	}
}

func addReadOnly(node field.Node, fragment schema.Fragment) {
	if disabled, ok := node.Option(field.OptionDisabled, nil).(bool); ok && disabled {
		fragment[schema.KeyReadOnly] = true
	}
}

func addWriteOnly(node field.Node, fragment schema.Fragment) {
	if mapped, ok := node.Option(field.OptionMapped, nil).(bool); ok && !mapped {
		fragment[schema.KeyWriteOnly] = true
	}
}

func addOptions(s *Scope, node field.Node, fragment schema.Fragment, custom map[string]any) {
	widget := s.env.Widgets.WidgetFor(node)
	if widget == "" {
		widget = widgets.WidgetText
	}

	var layoutName any = s.env.Layout.DefaultLayout()
	if override, ok := custom[schema.OptionLayout]; ok && override != nil {
		layoutName = override
	}

	options := fragment.Options()
	options[schema.OptionWidget] = widget
	options[schema.OptionLayout] = layoutName
}

func addCustomOptions(fragment schema.Fragment, custom map[string]any) {
	if custom == nil {
		return
	}
	options := fragment.Options()
	for key, value := range custom {
		// widget and layout keep their resolved defaults when unset
		if value == nil && (key == schema.OptionWidget || key == schema.OptionLayout) {
			continue
		}
		options[key] = value
	}
}

func addAttr(s *Scope, node field.Node, fragment schema.Fragment) {
	raw, ok := node.LookupOption(field.OptionAttr)
	if !ok {
		return
	}
	attr, ok := field.StringMap(raw)
	if !ok {
		s.env.Logger.Debug("skip non-mapping attr option", "field", node.Path(), "type", fmt.Sprintf("%T", raw))
		return
	}
	if len(attr) == 0 {
		return
	}

	copied, _ := deepcopy.Copy(attr).(map[string]any)
	for _, key := range []string{"title", "placeholder"} {
		if value, exists := copied[key]; exists {
			copied[key] = s.Translate(node, value, field.OptionAttrTranslationParams)
		}
	}
	fragment.Options()[schema.OptionAttr] = copied
}

// customOptions returns a private copy of the json_schema option. A value
// that is not a mapping is reported as a ConfigurationError.
func customOptions(node field.Node) (map[string]any, error) {
	raw, ok := node.LookupOption(field.OptionSchema)
	if !ok {
		return nil, nil
	}
	custom, ok := field.StringMap(raw)
	if !ok {
		return nil, &ConfigurationError{
			Field:  node.Path(),
			Option: field.OptionSchema,
			Reason: fmt.Sprintf("expected a mapping, got %T", raw),
		}
	}
	copied, _ := deepcopy.Copy(custom).(map[string]any)
	return copied, nil
}

// explicitWidget reports whether the caller configured json_schema.widget.
func explicitWidget(node field.Node) bool {
	custom, ok := field.StringMap(node.Option(field.OptionSchema, nil))
	if !ok {
		return false
	}
	return custom[schema.OptionWidget] != nil
}
