package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/samdwyer/mapforge/internal/config"
	"github.com/samdwyer/mapforge/internal/level"
	"github.com/samdwyer/mapforge/internal/telemetry"
)

var (
	configPath string
	seed       int64
	depth      int
	difficulty int
	width      int
	height     int
	recipe     string

	cfg      *config.Config
	log      *zap.Logger
	shutdown func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "mapforge",
	Short: "Procedural roguelike level generator",
	Long: `mapforge builds roguelike levels from chains of generation stages.

Examples:
  mapforge generate --depth 5 --seed 42
  mapforge generate --recipe cave --width 64 --height 64
  mapforge view --recipe wfc --history
  mapforge recipes`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configPath, "config", "", "Config file (default $MAPFORGE_CONFIG or mapforge.toml)")
	f.Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	f.IntVarP(&depth, "depth", "d", 0, "Level depth (1 = town, 2 = forest)")
	f.IntVar(&difficulty, "difficulty", 0, "Spawn difficulty")
	f.IntVar(&width, "width", 0, "Map width")
	f.IntVar(&height, "height", 0, "Map height")
	f.StringVarP(&recipe, "recipe", "r", "", "Named recipe (see 'mapforge recipes'); empty picks by depth")
}

// setup loads the config, applies env and flag overrides and starts logging
// and telemetry.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.LoadOrDefault(config.Path(configPath))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return fmt.Errorf("config env: %w", err)
	}
	applyFlags(cmd, &cfg.Generation)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err = newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if cfg.Telemetry.Enabled {
		opts := telemetryOptions(cfg.Telemetry.Endpoint, cfg.Telemetry.Dataset)
		shutdown, err = telemetry.Setup(cmd.Context(), opts)
		if err != nil {
			log.Warn("telemetry setup failed, running without observability", zap.Error(err))
			shutdown = nil
		}
	}
	return nil
}

func teardown(cmd *cobra.Command, _ []string) error {
	if shutdown != nil {
		if err := shutdown(context.Background()); err != nil {
			log.Warn("telemetry shutdown", zap.Error(err))
		}
	}
	if log != nil {
		_ = log.Sync()
	}
	return nil
}

func applyFlags(cmd *cobra.Command, g *config.GenerationConfig) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		g.Seed = seed
	}
	if flags.Changed("depth") {
		g.Depth = depth
	}
	if flags.Changed("difficulty") {
		g.Difficulty = difficulty
	}
	if flags.Changed("width") {
		g.Width = width
	}
	if flags.Changed("height") {
		g.Height = height
	}
	if flags.Changed("recipe") {
		g.Recipe = recipe
	}
}

func params() level.Params {
	g := cfg.Generation
	return level.Params{
		Depth:      g.Depth,
		Difficulty: g.Difficulty,
		Width:      g.Width,
		Height:     g.Height,
		Seed:       g.Seed,
		Recipe:     g.Recipe,
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(cfg.Level)); err != nil {
		lvl = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)

	return zapCfg.Build()
}
