package schema_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/schema"
)

func TestFragment_OptionsCreatedOnDemand(t *testing.T) {
	fragment := schema.New(schema.TypeString)
	if _, ok := fragment.Option(schema.OptionWidget); ok {
		t.Fatalf("expected no options on a fresh fragment")
	}

	fragment.Options()[schema.OptionWidget] = "text"

	if fragment.Widget() != "text" {
		t.Fatalf("expected widget text, got %q", fragment.Widget())
	}
	if fragment.Type() != "string" {
		t.Fatalf("expected string type, got %q", fragment.Type())
	}
}

func TestFragment_JSONIsSorted(t *testing.T) {
	fragment := schema.Fragment{
		"type":    "string",
		"title":   "Email",
		"options": map[string]any{"widget": "email", "layout": "vertical"},
	}

	data, err := fragment.JSON()
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	want := `{"options":{"layout":"vertical","widget":"email"},"title":"Email","type":"string"}`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("json mismatch (-want +got):\n%s", diff)
	}
	if fragment.String() != want {
		t.Fatalf("String should match JSON output")
	}
}

func TestFragment_IndentKeepsHTML(t *testing.T) {
	fragment := schema.Fragment{"title": "<b>Email</b>"}
	data, err := fragment.Indent()
	if err != nil {
		t.Fatalf("indent: %v", err)
	}
	if !strings.Contains(string(data), "<b>Email</b>") {
		t.Fatalf("expected unescaped HTML, got %s", data)
	}
	if !strings.Contains(string(data), "\n  \"title\"") {
		t.Fatalf("expected two-space indentation, got %s", data)
	}
}

func TestFragment_Properties(t *testing.T) {
	child := schema.New(schema.TypeInteger)
	fragment := schema.Fragment{
		"type":       "object",
		"properties": map[string]schema.Fragment{"age": child},
	}
	if diff := cmp.Diff(map[string]schema.Fragment{"age": child}, fragment.Properties()); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
	if schema.New(schema.TypeString).Properties() != nil {
		t.Fatalf("expected nil properties on scalar fragment")
	}
}

func TestFragment_Validate(t *testing.T) {
	fragment := schema.Fragment{
		"type":    "integer",
		"title":   "Age",
		"options": map[string]any{"widget": "integer"},
	}

	ok, err := fragment.Validate(42)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !ok.Valid {
		t.Fatalf("expected 42 to validate against integer")
	}

	bad, err := fragment.Validate("forty-two")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if bad.Valid {
		t.Fatalf("expected string to fail integer validation")
	}
}

func TestFragment_ValidateEnum(t *testing.T) {
	fragment := schema.Fragment{
		"type":        "array",
		"items":       schema.Fragment{"type": "string", "enum": []any{"a", "b"}},
		"uniqueItems": true,
	}

	result, err := fragment.Validate([]string{"a", "b"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected unique enum members to validate")
	}

	result, err = fragment.Validate([]string{"a", "a"})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected duplicate members to fail")
	}
}

func TestFragment_NilCompile(t *testing.T) {
	var fragment schema.Fragment
	compiled, err := fragment.Compile()
	if err != nil || compiled != nil {
		t.Fatalf("expected nil schema without error, got %v %v", compiled, err)
	}
}
