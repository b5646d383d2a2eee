package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mchmarny/riq/pkg/config"
	"github.com/mchmarny/riq/pkg/logging"
	urfave "github.com/urfave/cli/v3"
)

type contextKey string

const (
	appConfigKey contextKey = "app-config"
	noColorEnv              = "NO_COLOR"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	logLevel = &slog.LevelVar{}
)

// flag names shared between the command definitions and their actions
const (
	debugFlag       = "debug"
	logLevelFlag    = "log-level"
	noColorFlag     = "no-color"
	formatFlag      = "format"
	configDirFlag   = "config-dir"
	inputFormatFlag = "input-format"
	sortFlag        = "sort"
	detailFlag      = "detail"
	workersFlag     = "workers"
	forceFlag       = "force"
)

// Execute creates and runs the CLI application.
func Execute() {
	initLogging(os.Getenv(noColorEnv) != "")

	app := newApp()
	if err := app.Run(context.Background(), os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Dir    string
	Config *config.Config
}

func getConfig(ctx context.Context) *appConfig {
	if cfg, ok := ctx.Value(appConfigKey).(*appConfig); ok {
		return cfg
	}
	return &appConfig{Config: config.Default()}
}

func newApp() *urfave.Command {
	return &urfave.Command{
		Name:                  "riq",
		Version:               fmt.Sprintf("%s (%s - %s)", version, commit, date),
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Usage:                 "Rank intuitionistic fuzzy values by their RIQ score",
		Flags: []urfave.Flag{
			&urfave.BoolFlag{
				Name:  debugFlag,
				Usage: "Prints verbose logs (optional, default: false)",
			},
			&urfave.StringFlag{
				Name:    logLevelFlag,
				Usage:   "Log level [debug, info, warn, error]",
				Sources: urfave.EnvVars("RIQ_LOG_LEVEL"),
			},
			&urfave.BoolFlag{
				Name:  noColorFlag,
				Usage: "Disable colored logs",
			},
			&urfave.StringFlag{
				Name:    formatFlag,
				Aliases: []string{"o"},
				Usage:   fmt.Sprintf("Output format [%s]", strings.Join(config.OutputFormats, ", ")),
			},
			&urfave.StringFlag{
				Name:    configDirFlag,
				Usage:   fmt.Sprintf("Directory holding config.yaml (default: $HOME/%s)", config.DirName),
				Sources: urfave.EnvVars("RIQ_CONFIG_DIR"),
			},
		},
		Commands: []*urfave.Command{
			newScoreCmd(),
			newConfigCmd(),
		},
		Before: loadConfig,
	}
}

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig(ctx context.Context, cmd *urfave.Command) (context.Context, error) {
	if cmd.Bool(noColorFlag) {
		initLogging(true)
	}

	dir := cmd.String(configDirFlag)
	if dir == "" {
		d, _, err := config.GetOrCreateHomeDir()
		if err != nil {
			return ctx, fmt.Errorf("resolving config dir: %w", err)
		}
		dir = d
	}

	cfg, err := config.ReadOrCreate(dir)
	if err != nil {
		return ctx, fmt.Errorf("reading config: %w", err)
	}

	if cmd.IsSet(formatFlag) {
		cfg.Format = config.NormalizeFormat(cmd.String(formatFlag))
	}
	if cmd.IsSet(logLevelFlag) {
		cfg.LogLevel = cmd.String(logLevelFlag)
	}
	if cmd.Bool(debugFlag) {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return ctx, err
	}

	logLevel.Set(logging.ParseLogLevel(cfg.LogLevel))
	slog.Debug("config loaded", "dir", dir, "format", cfg.Format, "workers", cfg.WorkerCount())

	return context.WithValue(ctx, appConfigKey, &appConfig{
		Dir:    dir,
		Config: cfg,
	}), nil
}

func initLogging(plain bool) {
	h := logging.NewCLIHandler(os.Stderr, logLevel)
	if plain {
		h = h.Plain()
	}
	slog.SetDefault(slog.New(h))
}
