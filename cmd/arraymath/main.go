package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/panbanda/arraymath/internal/logging"
	"github.com/panbanda/arraymath/internal/output"
	"github.com/panbanda/arraymath/pkg/config"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "arraymath",
		Usage:    "Hash table and percentile selection playground",
		Version:  version,
		Metadata: make(map[string]interface{}),
		Description: `arraymath demonstrates an open-addressed hash table with quadratic probing
and quickselect-based percentile extraction over integer arrays.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"ARRAYMATH_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, json, markdown, toon (overrides config)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "Pivot seed for quickselect and sample generation (0 = random)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Hide progress bars",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: setup,
		After: func(c *cli.Context) error {
			if env, ok := c.App.Metadata[envKey].(*runtimeEnv); ok {
				_ = env.log.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			tableCmd(),
			percentileCmd(),
			selectCmd(),
			sameCmd(),
			distanceCmd(),
			trialsCmd(),
			configCmd(),
		},
	}
}

const envKey = "env"

// runtimeEnv is built once per invocation from config and global flags.
type runtimeEnv struct {
	cfg    *config.Config
	source string
	log    *zap.Logger
}

func setup(c *cli.Context) error {
	cfg, source, err := config.LoadOrDefault(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if f := c.String("format"); f != "" {
		cfg.Output.Format = f
	}
	if c.IsSet("seed") {
		cfg.Selection.Seed = c.Uint64("seed")
	}
	if c.Bool("no-color") {
		cfg.Output.Color = false
	}
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.NewWithWriter(c.App.ErrWriter, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	if source != "" {
		logger.Debug("config loaded", zap.String("path", source))
	}

	c.App.Metadata[envKey] = &runtimeEnv{cfg: cfg, source: source, log: logger}
	return nil
}

func envFrom(c *cli.Context) *runtimeEnv {
	return c.App.Metadata[envKey].(*runtimeEnv)
}

// newFormatter writes to --output when set and to the app writer otherwise.
func (e *runtimeEnv) newFormatter(c *cli.Context) (*output.Formatter, error) {
	format := output.ParseFormat(e.cfg.Output.Format)
	if path := c.String("output"); path != "" {
		return output.NewFormatter(format, path, false)
	}
	return output.NewWriterFormatter(format, c.App.Writer, e.cfg.Output.Color), nil
}

// emit renders r through a fresh formatter.
func (e *runtimeEnv) emit(c *cli.Context, r output.Renderable) error {
	f, err := e.newFormatter(c)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Output(r)
}
