package schema

import (
	"bytes"
	"encoding/json"
)

// Reserved fragment keys.
const (
	KeyType        = "type"
	KeyTitle       = "title"
	KeyDescription = "description"
	KeyDefault     = "default"
	KeyReadOnly    = "readOnly"
	KeyWriteOnly   = "writeOnly"
	KeyOptions     = "options"
	KeyItems       = "items"
	KeyUniqueItems = "uniqueItems"
	KeyEnum        = "enum"
	KeyProperties  = "properties"
	KeyRequired    = "required"
	KeyFormat      = "format"
)

// Reserved keys inside the options mapping.
const (
	OptionWidget     = "widget"
	OptionLayout     = "layout"
	OptionAttr       = "attr"
	OptionEnumTitles = "enum_titles"
)

// Type names emitted by the builtin transformers.
const (
	TypeString  = "string"
	TypeInteger = "integer"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeArray   = "array"
	TypeObject  = "object"
)

// Fragment is the JSON-Schema-like mapping produced for one field. It is
// created fresh per transform and owned by the caller afterwards.
type Fragment map[string]any

// New returns a fragment seeded with the given type.
func New(typ string) Fragment {
	return Fragment{KeyType: typ}
}

// Type returns the type keyword or "" when unset.
func (f Fragment) Type() string {
	value, _ := f[KeyType].(string)
	return value
}

// Title returns the title keyword or "" when unset.
func (f Fragment) Title() string {
	value, _ := f[KeyTitle].(string)
	return value
}

// Options returns the rendering options mapping, creating it when missing.
func (f Fragment) Options() map[string]any {
	if opts, ok := f[KeyOptions].(map[string]any); ok {
		return opts
	}
	opts := make(map[string]any)
	f[KeyOptions] = opts
	return opts
}

// Option returns one rendering option.
func (f Fragment) Option(key string) (any, bool) {
	opts, ok := f[KeyOptions].(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := opts[key]
	return value, ok
}

// Widget returns options.widget or "" when unset.
func (f Fragment) Widget() string {
	value, _ := f.Option(OptionWidget)
	widget, _ := value.(string)
	return widget
}

// Properties returns the child fragments of an object fragment.
func (f Fragment) Properties() map[string]Fragment {
	props, _ := f[KeyProperties].(map[string]Fragment)
	return props
}

// JSON marshals the fragment. Map keys are emitted in sorted order so the
// output is stable across runs.
func (f Fragment) JSON() ([]byte, error) {
	return json.Marshal(f)
}

// Indent marshals the fragment with two-space indentation.
func (f Fragment) Indent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String implements fmt.Stringer; marshal failures yield "".
func (f Fragment) String() string {
	data, err := f.JSON()
	if err != nil {
		return ""
	}
	return string(data)
}
