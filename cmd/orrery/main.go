package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/bodies"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/gui"
	"github.com/san-kum/orrery/internal/logging"
	"github.com/san-kum/orrery/internal/session"
	"github.com/san-kum/orrery/internal/telemetry"
	"github.com/san-kum/orrery/internal/viz"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	v = viper.New()

	// live
	pick bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "orrery",
		Short:         "n-body solar system with a rocket you can launch",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "yaml config file, layered over the preset")
	pf.String("preset", "", "named preset (see 'orrery presets')")
	pf.String("log-level", config.DefaultLogLevel, "trace, debug, info, warn or error")
	pf.String("log-file", "orrery.log", "log file for the terminal view")
	pf.String("store", config.DefaultStore, "run log database")
	pf.Float64("dt", config.DefaultDt, "seconds per step")
	pf.String("reference", config.DefaultReferenceBody, "body the rocket launches from")
	pf.Float64("preview-hours", config.DefaultPreviewHours, "simulated hours covered by the trajectory preview")
	pf.Float64("width", config.DefaultWidth, "canvas width in pixels")
	pf.Float64("height", config.DefaultHeight, "canvas height in pixels")
	pf.String("influx-url", "", "InfluxDB v2 url; enables telemetry for headless runs")
	pf.String("influx-token", "", "InfluxDB token")
	pf.String("influx-org", "", "InfluxDB organisation")
	pf.String("influx-bucket", "", "InfluxDB bucket")

	v.SetEnvPrefix("ORRERY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(pf); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "terminal view (default)",
		RunE:  runLive,
	}
	liveCmd.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu first")
	rootCmd.Flags().BoolVar(&pick, "pick", false, "choose a preset from a menu first")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "desktop window",
		RunE:  runWindow,
	}

	rootCmd.AddCommand(liveCmd, windowCmd, newRunCmd(), newSweepCmd(), newAimCmd(), newRunsCmd(), newPlotCmd(),
		newExportCmd(), newSnapshotCmd(), newBodiesCmd(), newPresetsCmd(), newConfigCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves the preset, overlays the config file and then any
// flag or ORRERY_* environment overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if name := v.GetString("preset"); name != "" {
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have %s)", name, strings.Join(config.ListPresets(), ", "))
		}
	}
	if path := v.GetString("config"); path != "" {
		if err := config.LoadInto(path, cfg); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	if v.IsSet("log-level") {
		cfg.LogLevel = v.GetString("log-level")
	}
	if v.IsSet("store") {
		cfg.Store = v.GetString("store")
	}
	if v.IsSet("dt") {
		cfg.Dt = v.GetFloat64("dt")
	}
	if v.IsSet("reference") {
		cfg.ReferenceBody = v.GetString("reference")
	}
	if v.IsSet("preview-hours") {
		cfg.PreviewHorizon = v.GetFloat64("preview-hours") * dynamo.Hour
	}
	if v.IsSet("width") {
		cfg.Canvas.Width = v.GetFloat64("width")
	}
	if v.IsSet("height") {
		cfg.Canvas.Height = v.GetFloat64("height")
	}
	for key, dst := range map[string]*string{
		"influx-url":    &cfg.Telemetry.URL,
		"influx-token":  &cfg.Telemetry.Token,
		"influx-org":    &cfg.Telemetry.Org,
		"influx-bucket": &cfg.Telemetry.Bucket,
	} {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func stderrLogger(cfg *config.Config) zerolog.Logger {
	return logging.New(os.Stderr, cfg.LogLevel)
}

func newSession(cfg *config.Config, log zerolog.Logger) (*session.Session, error) {
	specs, err := cfg.Specs()
	if err != nil {
		return nil, err
	}
	meters, err := telemetry.NewMeters(nil)
	if err != nil {
		return nil, fmt.Errorf("meters: %w", err)
	}
	return session.New(cfg, bodies.Resolve(specs), log, session.WithMeters(meters))
}

func tableName(cfg *config.Config) string {
	if len(cfg.Bodies) > 0 {
		return "custom"
	}
	return cfg.Table
}

func runLive(cmd *cobra.Command, args []string) error {
	if pick {
		name, err := viz.Pick()
		if err != nil {
			return err
		}
		if name == "" {
			return nil
		}
		v.Set("preset", name)
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, closer, err := logging.NewFile(v.GetString("log-file"), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	sess, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	return viz.Run(cmd.Context(), sess, log)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := stderrLogger(cfg)
	sess, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	return gui.Run(cmd.Context(), sess, log)
}
