package validation

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-formschema/pkg/schema"
)

// SchemaIssue represents a validation error with optional location metadata.
type SchemaIssue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// SchemaValidationResult captures validation outcomes for generated fragments.
type SchemaValidationResult struct {
	Valid  bool          `json:"valid"`
	Issues []SchemaIssue `json:"issues,omitempty"`
}

func (r *SchemaValidationResult) add(pointer, message string) {
	r.Valid = false
	r.Issues = append(r.Issues, SchemaIssue{
		Path:    pointer,
		Field:   fieldPathFromPointer(pointer),
		Message: strings.TrimSpace(message),
	})
}

// Err returns nil for valid results and an error summarising the issues
// otherwise.
func (r SchemaValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	parts := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if issue.Field != "" {
			parts = append(parts, issue.Field+": "+issue.Message)
			continue
		}
		parts = append(parts, issue.Message)
	}
	return fmt.Errorf("validation: %s", strings.Join(parts, "; "))
}

// ValidateFragment checks that fragment compiles as a JSON Schema, that every
// default value satisfies the fragment it sits on and that enum_titles lines
// up with enum. Nested properties and items are visited recursively.
func ValidateFragment(ctx context.Context, fragment schema.Fragment) SchemaValidationResult {
	result := SchemaValidationResult{Valid: true}
	if fragment == nil {
		result.add("#", "fragment is nil")
		return result
	}
	if _, err := fragment.Compile(); err != nil {
		result.add("#", strings.TrimPrefix(err.Error(), "schema: "))
		return result
	}
	walk(ctx, "#", fragment, &result)
	return result
}

func walk(ctx context.Context, pointer string, fragment schema.Fragment, result *SchemaValidationResult) {
	if ctx.Err() != nil {
		result.add(pointer, ctx.Err().Error())
		return
	}

	checkDefault(pointer, fragment, result)
	checkEnumTitles(pointer, fragment, result)

	props := fragment.Properties()
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		walk(ctx, pointer+"/properties/"+escapePointer(name), props[name], result)
	}
	if items, ok := fragment[schema.KeyItems].(schema.Fragment); ok && len(items) > 0 {
		walk(ctx, pointer+"/items", items, result)
	}
}

func checkDefault(pointer string, fragment schema.Fragment, result *SchemaValidationResult) {
	value, ok := fragment[schema.KeyDefault]
	if !ok {
		return
	}
	subschema := make(schema.Fragment, len(fragment))
	for key, val := range fragment {
		if key == schema.KeyDefault {
			continue
		}
		subschema[key] = val
	}
	evaluation, err := subschema.Validate(value)
	if err != nil {
		result.add(pointer+"/default", strings.TrimPrefix(err.Error(), "schema: "))
		return
	}
	if evaluation == nil || evaluation.Valid {
		return
	}
	keywords := make([]string, 0, len(evaluation.Errors))
	for keyword := range evaluation.Errors {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	for _, keyword := range keywords {
		result.add(pointer+"/default", fmt.Sprintf("default does not satisfy %s: %s", keyword, evaluation.Errors[keyword].Error()))
	}
}

func checkEnumTitles(pointer string, fragment schema.Fragment, result *SchemaValidationResult) {
	raw, ok := fragment.Option(schema.OptionEnumTitles)
	if !ok {
		return
	}
	enum := fragment[schema.KeyEnum]
	if items, ok := fragment[schema.KeyItems].(schema.Fragment); ok && enum == nil {
		enum = items[schema.KeyEnum]
	}
	titles, values := length(raw), length(enum)
	if titles < 0 || values < 0 {
		return
	}
	if titles != values {
		result.add(pointer+"/options/enum_titles", fmt.Sprintf("enum_titles has %d entries, enum has %d", titles, values))
	}
}

func length(value any) int {
	switch typed := value.(type) {
	case []string:
		return len(typed)
	case []any:
		return len(typed)
	default:
		return -1
	}
}

func escapePointer(segment string) string {
	segment = strings.ReplaceAll(segment, "~", "~0")
	return strings.ReplaceAll(segment, "/", "~1")
}

func fieldPathFromPointer(pointer string) string {
	trimmed := strings.TrimSpace(pointer)
	trimmed = strings.TrimPrefix(trimmed, "#")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if trimmed == "" {
		return ""
	}

	parts := strings.Split(trimmed, "/")
	out := make([]string, 0, len(parts))
	for idx := 0; idx < len(parts); idx++ {
		segment := strings.ReplaceAll(parts[idx], "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		switch segment {
		case "properties":
			if idx+1 < len(parts) {
				next := strings.ReplaceAll(parts[idx+1], "~1", "/")
				next = strings.ReplaceAll(next, "~0", "~")
				out = append(out, next)
				idx++
			}
		case "items":
			out = append(out, "items")
		case "default", "options", "enum_titles":
		default:
			if segment == "" {
				continue
			}
			out = append(out, segment)
		}
	}
	return strings.Join(out, ".")
}
