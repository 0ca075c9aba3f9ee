package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-formschema/pkg/config"
	"github.com/goliatone/go-formschema/pkg/logger"
	"github.com/goliatone/go-formschema/pkg/orchestrator"
)

// CLI definition & global flags.
type CLI struct {
	Config   string `short:"c" help:"Configuration file path (YAML)" type:"path"`
	Catalogs string `help:"Translation catalog directory; overrides the configured one" type:"path"`
	Verbose  bool   `short:"v" help:"Enable debug logging"`
	LogJSON  bool   `name:"log-json" help:"Emit logs as JSON"`

	Generate GenerateCmd `cmd:"" help:"Generate the schema fragment for a field definition"`
	Validate ValidateCmd `cmd:"" help:"Generate and validate a field definition"`
	OpenAPI  OpenAPICmd  `cmd:"" name:"openapi" help:"Export field definitions as OpenAPI component schemas"`
	Types    TypesCmd    `cmd:"" help:"List the registered field types"`
}

// App carries the state shared by every command.
type App struct {
	Config *config.Config
	Logger logger.Logger
	Out    io.Writer
}

// Orchestrator builds the generator from the loaded configuration.
func (a *App) Orchestrator(extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	opts := append([]orchestrator.Option{orchestrator.WithLogger(a.Logger)}, extra...)
	return orchestrator.FromConfig(a.Config, opts...)
}

func newApp(cli *CLI, out, errOut io.Writer) (*App, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	if cli.Catalogs != "" {
		cfg.Catalogs = cli.Catalogs
	}

	logCfg := logger.DefaultConfig()
	logCfg.Output = errOut
	logCfg.Level = logger.ParseLevel(cfg.Log.Level)
	logCfg.JSON = cfg.Log.JSON || cli.LogJSON
	if cli.Verbose {
		logCfg.Level = logger.DebugLevel
	}

	return &App{
		Config: cfg,
		Logger: logger.New(logCfg),
		Out:    out,
	}, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("formschema"),
		kong.Description("Transform form field definitions into JSON-Schema-like fragments."),
		kong.UsageOnError(),
	)

	app, err := newApp(&cli, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "formschema: %v\n", err)
		os.Exit(1)
	}

	if err := ctx.Run(app); err != nil {
		app.Logger.Error("command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
