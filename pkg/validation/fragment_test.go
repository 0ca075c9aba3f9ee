package validation

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/schema"
)

func TestValidateFragment_Valid(t *testing.T) {
	fragment := schema.Fragment{
		"type":  "object",
		"title": "user",
		"properties": map[string]schema.Fragment{
			"age": {"type": "integer", "default": 30},
			"plan": {
				"type":    "string",
				"enum":    []any{"basic", "pro"},
				"options": map[string]any{"enum_titles": []string{"Basic", "Pro"}},
			},
		},
	}
	result := ValidateFragment(context.Background(), fragment)
	if !result.Valid {
		t.Fatalf("expected fragment to be valid: %#v", result.Issues)
	}
	if result.Err() != nil {
		t.Fatalf("expected nil error, got %v", result.Err())
	}
}

func TestValidateFragment_DefaultMismatch(t *testing.T) {
	fragment := schema.Fragment{
		"type": "object",
		"properties": map[string]schema.Fragment{
			"age": {"type": "integer", "default": "thirty"},
		},
	}
	result := ValidateFragment(context.Background(), fragment)
	if result.Valid {
		t.Fatalf("expected default mismatch to be reported")
	}
	if got := result.Issues[0]; got.Field != "age" || got.Path != "#/properties/age/default" {
		t.Fatalf("unexpected issue location %#v", got)
	}
	if result.Err() == nil {
		t.Fatalf("expected error from invalid result")
	}
}

func TestValidateFragment_EnumTitlesMismatch(t *testing.T) {
	fragment := schema.Fragment{
		"type": "array",
		"items": schema.Fragment{
			"type": "string",
			"enum": []any{"a", "b"},
		},
		"uniqueItems": true,
		"options":     map[string]any{"enum_titles": []string{"A"}},
	}
	result := ValidateFragment(context.Background(), fragment)
	want := []SchemaIssue{{
		Path:    "#/options/enum_titles",
		Message: "enum_titles has 1 entries, enum has 2",
	}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateFragment_Nil(t *testing.T) {
	if result := ValidateFragment(context.Background(), nil); result.Valid {
		t.Fatalf("expected nil fragment to be invalid")
	}
}

func TestValidateFragment_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if result := ValidateFragment(ctx, schema.Fragment{"type": "string"}); result.Valid {
		t.Fatalf("expected cancelled context to be reported")
	}
}

func TestFieldPathFromPointer(t *testing.T) {
	cases := map[string]string{
		"#":                                   "",
		"#/properties/address/properties/zip": "address.zip",
		"#/properties/tags/items":             "tags.items",
		"#/properties/a~1b/default":           "a/b",
	}
	for pointer, want := range cases {
		if got := fieldPathFromPointer(pointer); got != want {
			t.Fatalf("fieldPathFromPointer(%q) = %q, want %q", pointer, got, want)
		}
	}
}
