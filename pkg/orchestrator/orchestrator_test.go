package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formschema/pkg/config"
	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/testsupport"
	"github.com/goliatone/go-formschema/pkg/transformer"
)

func newUserOrchestrator(t *testing.T, opts ...orchestrator.Option) *orchestrator.Orchestrator {
	t.Helper()
	catalog := testsupport.LoadCatalog(t, filepath.Join("testdata", "catalogs"))
	base := []orchestrator.Option{
		orchestrator.WithTranslator(catalog),
		orchestrator.WithCurrencies("EUR", "CHF"),
	}
	return orchestrator.New(append(base, opts...)...)
}

func TestOrchestrator_GenerateGolden(t *testing.T) {
	orch := newUserOrchestrator(t)

	fragment, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		FS:   os.DirFS("testdata"),
		Path: "user_form.yaml",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	testsupport.AssertGoldenJSON(t, filepath.Join("testdata", "user_form.golden.json"), fragment)
}

func TestOrchestrator_SelectsFieldAndType(t *testing.T) {
	orch := newUserOrchestrator(t)
	tree := testsupport.LoadTree(t, filepath.Join("testdata", "user_form.yaml"))

	fragment, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Tree:  tree,
		Field: "name",
		Type:  "textarea",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if fragment.Title() != "Nom" {
		t.Fatalf("nested field should keep the root locale, got title %q", fragment.Title())
	}

	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{Tree: tree, Field: "missing"}); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestOrchestrator_AppliesDecoratorsPerNode(t *testing.T) {
	var visited []string
	decorator := schema.DecoratorFunc(func(node field.Node, fragment schema.Fragment) error {
		visited = append(visited, node.Path())
		fragment.Options()["path"] = node.Path()
		return nil
	})
	orch := newUserOrchestrator(t, orchestrator.WithDecorators(decorator))

	fragment, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Tree: testsupport.LoadTree(t, filepath.Join("testdata", "user_form.yaml")),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := []string{"user", "user.email", "user.name", "user.plan", "user.price_currency", "user.tags"}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Fatalf("decorator order mismatch (-want +got):\n%s", diff)
	}
	if path, _ := fragment.Properties()["email"].Option("path"); path != "user.email" {
		t.Fatalf("decorator should mutate nested fragments, got %#v", path)
	}
}

func TestOrchestrator_DecoratorErrorStops(t *testing.T) {
	boom := errors.New("boom")
	orch := orchestrator.New(orchestrator.WithDecorators(schema.DecoratorFunc(func(field.Node, schema.Fragment) error {
		return boom
	})))
	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Tree: testsupport.LoadTree(t, filepath.Join("testdata", "user_form.yaml")),
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected decorator error, got %v", err)
	}
}

func TestOrchestrator_PresetTransformer(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS("testdata"), "preset.yaml")
	if err != nil {
		t.Fatalf("load preset: %v", err)
	}
	orch := newUserOrchestrator(t, orchestrator.WithTransformers(preset))

	fragment, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Tree: testsupport.LoadTree(t, filepath.Join("testdata", "user_form.yaml")),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if layout, _ := fragment.Option("layout"); layout != "horizontal" {
		t.Fatalf("expected root layout override, got %#v", layout)
	}
	email := fragment.Properties()["email"]
	if email.Title() != "Courriel" || email.Widget() != "email_input" {
		t.Fatalf("unexpected email patch result %#v", email)
	}
	items, _ := fragment.Properties()["tags"]["items"].(schema.Fragment)
	if items.Widget() != "tag" {
		t.Fatalf("expected items patch, got %#v", items)
	}
}

func TestPresetTransformer_UnknownField(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformer([]byte(`{"fields": {"nope": {"title": "x"}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := preset.Transform(context.Background(), schema.Fragment{"type": "object"}); err == nil {
		t.Fatalf("expected error for unknown field")
	}
	if _, err := orchestrator.NewPresetTransformer(nil); err == nil {
		t.Fatalf("expected error for empty document")
	}
}

func TestPresetTransformer_ItemsSegment(t *testing.T) {
	preset, err := orchestrator.NewPresetTransformer([]byte(`{"fields": {
		"items": {"title": "Line items"},
		"tags.items": {"options": {"widget": "tag"}}
	}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tagItems := schema.Fragment{"type": "string"}
	fragment := schema.Fragment{
		"type": "object",
		"properties": map[string]schema.Fragment{
			"items": {"type": "array", "title": ""},
			"tags":  {"type": "array", "items": tagItems},
		},
	}

	if err := preset.Transform(context.Background(), fragment); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if got := fragment.Properties()["items"].Title(); got != "Line items" {
		t.Fatalf("expected child named items to be patched, got %q", got)
	}
	if tagItems.Widget() != "tag" {
		t.Fatalf("expected array items patch, got %#v", tagItems)
	}

	onObject, err := orchestrator.NewPresetTransformer([]byte(`{"fields": {"items.name": {"title": "x"}}}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := onObject.Transform(context.Background(), schema.Fragment{"type": "object"}); err == nil {
		t.Fatalf("expected missing child error")
	}
}

func TestOrchestrator_ValidationRejectsBadDefault(t *testing.T) {
	b := field.NewBuilder()
	root := b.Root(field.Spec{Name: "profile", Type: "form"})
	b.Add(root, field.Spec{Name: "age", Type: "integer", Options: field.Options{"data": "old"}})
	tree, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	lenient := orchestrator.New()
	if _, err := lenient.Generate(context.Background(), orchestrator.Request{Tree: tree}); err != nil {
		t.Fatalf("validation is opt-in, got %v", err)
	}

	strict := orchestrator.New(orchestrator.WithValidation(true))
	if _, err := strict.Generate(context.Background(), orchestrator.Request{Tree: tree}); err == nil {
		t.Fatalf("expected default validation failure")
	}
}

func TestOrchestrator_CustomRegistry(t *testing.T) {
	orch := orchestrator.New(orchestrator.WithRegistry(transformer.NewEmptyRegistry()))
	_, err := orch.Generate(context.Background(), orchestrator.Request{
		Tree: testsupport.LoadTree(t, filepath.Join("testdata", "user_form.yaml")),
	})
	if !errors.Is(err, transformer.ErrTypeNotRegistered) {
		t.Fatalf("expected ErrTypeNotRegistered, got %v", err)
	}
}

func TestOrchestrator_RequestErrors(t *testing.T) {
	orch := orchestrator.New()
	if _, err := orch.Generate(nil, orchestrator.Request{}); err == nil {
		t.Fatalf("expected error for nil context")
	}
	if _, err := orch.Generate(context.Background(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected error without tree or filesystem")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := orch.Generate(ctx, orchestrator.Request{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultLayout = "grid"
	cfg.Catalogs = filepath.Join("testdata", "catalogs")
	cfg.Currencies = []string{"JPY"}
	cfg.Widgets = map[string]string{"collection": "tag_list"}
	cfg.SanitizeHTML = true

	orch, err := orchestrator.FromConfig(cfg)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	fragment, err := orch.Generate(testsupport.Context(), orchestrator.Request{
		Tree: testsupport.LoadTree(t, filepath.Join("testdata", "user_form.yaml")),
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	props := fragment.Properties()
	if layout, _ := props["email"].Option("layout"); layout != "grid" {
		t.Fatalf("expected configured layout, got %#v", layout)
	}
	if props["email"].Title() != "Adresse e-mail" {
		t.Fatalf("expected catalog translation, got %q", props["email"].Title())
	}
	if diff := cmp.Diff([]any{"JPY"}, props["price_currency"]["enum"]); diff != "" {
		t.Fatalf("currencies mismatch (-want +got):\n%s", diff)
	}
	if props["tags"].Widget() != "tag_list" {
		t.Fatalf("expected renamed widget, got %q", props["tags"].Widget())
	}
}

func TestFromConfig_FormWithoutLocaleUsesDefaultLocale(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultLocale = "fr"
	cfg.Catalogs = filepath.Join("testdata", "catalogs")

	orch, err := orchestrator.FromConfig(cfg)
	if err != nil {
		t.Fatalf("from config: %v", err)
	}
	b := field.NewBuilder()
	b.Root(field.Spec{Name: "name", Type: "text", Options: field.Options{"label": "generic.name"}})
	tree, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	fragment, err := orch.Generate(testsupport.Context(), orchestrator.Request{Tree: tree})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if fragment.Title() != "Nom" {
		t.Fatalf("expected default locale translation, got %q", fragment.Title())
	}
}

func TestFromConfig_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.DefaultLayout = ""
	if _, err := orchestrator.FromConfig(cfg); err == nil {
		t.Fatalf("expected validation error")
	}
}
