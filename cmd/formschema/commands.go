package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formschema/pkg/field"
	"github.com/goliatone/go-formschema/pkg/openapi"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
	"github.com/goliatone/go-formschema/pkg/schema"
	"github.com/goliatone/go-formschema/pkg/validation"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Definition string `arg:"" help:"Field definition file (YAML or JSON)" type:"existingfile"`
	Field      string `short:"f" help:"Dotted path of the field to generate, relative to the root"`
	Type       string `short:"t" help:"Override the field type used for dispatch"`
	Preset     string `short:"p" help:"Preset document applied to the generated fragment" type:"existingfile"`
	Output     string `short:"o" help:"Output file path (stdout if empty)"`
	Validate   bool   `help:"Fail when the fragment does not validate"`
}

// Run executes the generate command.
func (cmd *GenerateCmd) Run(app *App) error {
	var extra []orchestrator.Option
	if cmd.Preset != "" {
		preset, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(cmd.Preset)), filepath.Base(cmd.Preset))
		if err != nil {
			return err
		}
		extra = append(extra, orchestrator.WithTransformers(preset))
	}
	if cmd.Validate {
		extra = append(extra, orchestrator.WithValidation(true))
	}

	fragment, err := generate(app, cmd.Definition, cmd.Field, cmd.Type, extra...)
	if err != nil {
		return err
	}
	data, err := fragment.Indent()
	if err != nil {
		return fmt.Errorf("encode fragment: %w", err)
	}
	return app.write(cmd.Output, data)
}

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct {
	Definitions []string `arg:"" help:"Field definition files" type:"existingfile"`
}

// Run executes the validate command.
func (cmd *ValidateCmd) Run(app *App) error {
	failed := 0
	for _, path := range cmd.Definitions {
		fragment, err := generate(app, path, "", "")
		if err != nil {
			return err
		}
		result := validation.ValidateFragment(context.Background(), fragment)
		if result.Valid {
			fmt.Fprintf(app.Out, "%s: ok\n", path)
			continue
		}
		failed++
		for _, issue := range result.Issues {
			location := issue.Field
			if location == "" {
				location = issue.Path
			}
			fmt.Fprintf(app.Out, "%s: %s: %s\n", path, location, issue.Message)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d definitions failed validation", failed, len(cmd.Definitions))
	}
	return nil
}

// OpenAPICmd implements the 'openapi' command.
type OpenAPICmd struct {
	Definitions []string `arg:"" help:"Field definition files; each root becomes a component schema" type:"existingfile"`
	Title       string   `help:"Document title" default:"Forms"`
	Version     string   `help:"Document version" default:"1.0.0"`
	Format      string   `short:"F" help:"Output format: json, yaml" default:"json" enum:"json,yaml"`
	Output      string   `short:"o" help:"Output file path (stdout if empty)"`
}

// Run executes the openapi command.
func (cmd *OpenAPICmd) Run(app *App) error {
	components := make(map[string]schema.Fragment, len(cmd.Definitions))
	for _, path := range cmd.Definitions {
		tree, err := loadTree(path)
		if err != nil {
			return err
		}
		name := tree.Root().Name()
		if _, exists := components[name]; exists {
			return fmt.Errorf("duplicate component %q (%s)", name, path)
		}
		fragment, err := generate(app, path, "", "")
		if err != nil {
			return err
		}
		components[name] = fragment
	}

	doc, err := openapi.NewDocument(cmd.Title, cmd.Version, components)
	if err != nil {
		return err
	}
	if err := openapi.Validate(context.Background(), doc); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	if cmd.Format == "yaml" {
		var generic map[string]any
		if err := json.Unmarshal(data, &generic); err != nil {
			return fmt.Errorf("decode document: %w", err)
		}
		if data, err = yaml.Marshal(generic); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
	} else {
		data = append(data, '\n')
	}
	app.Logger.Info("openapi document generated", "components", len(components), "format", cmd.Format)
	return app.write(cmd.Output, data)
}

// TypesCmd implements the 'types' command.
type TypesCmd struct{}

// Run executes the types command.
func (cmd *TypesCmd) Run(app *App) error {
	orch, err := app.Orchestrator()
	if err != nil {
		return err
	}
	for _, name := range orch.Registry().List() {
		fmt.Fprintln(app.Out, name)
	}
	return nil
}

func generate(app *App, path, fieldPath, typeName string, extra ...orchestrator.Option) (schema.Fragment, error) {
	orch, err := app.Orchestrator(extra...)
	if err != nil {
		return nil, err
	}
	tree, err := loadTree(path)
	if err != nil {
		return nil, err
	}
	app.Logger.Debug("generating fragment", "definition", path, "field", fieldPath)
	return orch.Generate(context.Background(), orchestrator.Request{
		Tree:  tree,
		Field: fieldPath,
		Type:  typeName,
	})
}

func loadTree(path string) (*field.Tree, error) {
	return field.LoadFS(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}

func (a *App) write(path string, data []byte) error {
	if path == "" {
		_, err := a.Out.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	a.Logger.Info("output written", "file", path)
	return nil
}
