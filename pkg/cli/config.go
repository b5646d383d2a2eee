package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/mchmarny/riq/pkg/config"
	urfave "github.com/urfave/cli/v3"
)

var errConfigExists = errors.New("customized config file already exists")

func newConfigCmd() *urfave.Command {
	return &urfave.Command{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Manage the riq config file",
		Commands: []*urfave.Command{
			{
				Name:   "show",
				Usage:  "Print the effective config (file values with flag overrides)",
				Action: cmdConfigShow,
			},
			{
				Name:   "init",
				Usage:  "Write the default config file",
				Action: cmdConfigInit,
				Flags: []urfave.Flag{
					&urfave.BoolFlag{
						Name:  forceFlag,
						Usage: "Overwrite an existing config file",
					},
				},
			},
		},
	}
}

// configView is the config as printed by config show.
type configView struct {
	Path              string `json:"path" yaml:"path"`
	Format            string `json:"format" yaml:"format"`
	LogLevel          string `json:"log_level" yaml:"log_level"`
	Workers           int    `json:"workers" yaml:"workers"`
	ParallelThreshold int    `json:"parallel_threshold" yaml:"parallel_threshold"`
	Sort              bool   `json:"sort" yaml:"sort"`
}

func (v configView) header() []string {
	return []string{"KEY", "VALUE"}
}

func (v configView) rows() [][]string {
	return [][]string{
		{"path", v.Path},
		{"format", v.Format},
		{"log_level", v.LogLevel},
		{"workers", strconv.Itoa(v.Workers)},
		{"parallel_threshold", strconv.Itoa(v.ParallelThreshold)},
		{"sort", strconv.FormatBool(v.Sort)},
	}
}

func cmdConfigShow(ctx context.Context, cmd *urfave.Command) error {
	app := getConfig(ctx)
	c := app.Config

	return encode(writer(cmd), c.Format, configView{
		Path:              config.FilePath(app.Dir),
		Format:            c.Format,
		LogLevel:          c.LogLevel,
		Workers:           c.Workers,
		ParallelThreshold: c.ParallelThreshold,
		Sort:              c.Sort,
	})
}

func cmdConfigInit(ctx context.Context, cmd *urfave.Command) error {
	app := getConfig(ctx)
	path := config.FilePath(app.Dir)

	// loading the app creates a default file, so only a customized file
	// needs --force to be replaced
	if !cmd.Bool(forceFlag) {
		existing, err := config.ReadOrCreate(app.Dir)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}
		if *existing != *config.Default() {
			return fmt.Errorf("%w: %s (use --force to overwrite)", errConfigExists, path)
		}
	}

	if err := config.Save(app.Dir, config.Default()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	slog.Info("config written", "path", path)
	return nil
}
