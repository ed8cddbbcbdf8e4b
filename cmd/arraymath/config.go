package main

import (
	"github.com/pelletier/go-toml"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/arraymath/internal/output"
)

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Print the effective configuration as TOML",
				Action: runConfigShowCmd,
			},
			{
				Name:   "validate",
				Usage:  "Validate the configuration file",
				Action: runConfigValidateCmd,
			},
		},
	}
}

// runConfigShowCmd ignores --format; the dump is always TOML.
func runConfigShowCmd(c *cli.Context) error {
	env := envFrom(c)
	out, err := toml.Marshal(*env.cfg)
	if err != nil {
		return err
	}

	f, err := env.newFormatter(c)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Writer().Write(out)
	return err
}

// runConfigValidateCmd relies on setup having loaded and validated the config.
func runConfigValidateCmd(c *cli.Context) error {
	env := envFrom(c)
	f := output.NewWriterFormatter(output.FormatText, c.App.Writer, env.cfg.Output.Color)
	if env.source == "" {
		f.Info("No config file found, using defaults")
		return nil
	}
	f.Success("Configuration is valid: %s", env.source)
	return nil
}
