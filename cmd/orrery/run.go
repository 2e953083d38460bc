package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/automation"
	"github.com/san-kum/orrery/internal/bodies"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/metrics"
	"github.com/san-kum/orrery/internal/optim"
	"github.com/san-kum/orrery/internal/session"
	"github.com/san-kum/orrery/internal/sim"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/san-kum/orrery/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	// run
	steps       int
	sampleEvery int
	launchStep  int
	launchAngle float64

	scenarioFile string

	// sweep
	sweepAngles int
	sweepSteps  int

	// aim
	aimTarget string
	aimPoints int
	aimRounds int
	aimSteps  int
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "headless run, recorded to the run log",
		RunE:  runHeadless,
	}
	cmd.Flags().IntVar(&steps, "steps", 0, "steps to run (0 uses the config)")
	cmd.Flags().IntVar(&sampleEvery, "sample-every", 24, "record every n-th step")
	cmd.Flags().IntVar(&launchStep, "launch-step", -1, "launch the rocket before this step (-1 never)")
	cmd.Flags().Float64Var(&launchAngle, "launch-angle", 0, "launch angle in degrees")
	cmd.Flags().StringVar(&scenarioFile, "scenario", "", "yaml scenario with steps and launches")
	return cmd
}

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "launch at evenly spaced angles and report what each rocket hits",
		RunE:  runSweep,
	}
	cmd.Flags().IntVar(&sweepAngles, "angles", 12, "number of launch angles")
	cmd.Flags().IntVar(&sweepSteps, "steps", 24*90, "steps per launch")
	return cmd
}

func newAimCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aim",
		Short: "search for the launch angle that passes closest to a body",
		RunE:  runAim,
	}
	cmd.Flags().StringVar(&aimTarget, "target", "Mars", "body to aim at")
	cmd.Flags().IntVar(&aimPoints, "points", 36, "angles per grid")
	cmd.Flags().IntVar(&aimRounds, "rounds", 2, "refinement rounds")
	cmd.Flags().IntVar(&aimSteps, "steps", 24*180, "steps per launch")
	return cmd
}

func runHeadless(cmd *cobra.Command, args []string) error {
	var sc *automation.Scenario
	if scenarioFile != "" {
		var err error
		if sc, err = automation.LoadScenario(scenarioFile); err != nil {
			return err
		}
		if sc.Preset != "" && !v.IsSet("preset") {
			v.Set("preset", sc.Preset)
		}
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := stderrLogger(cfg)
	ctx := cmd.Context()

	sess, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	n := steps
	if n <= 0 {
		n = cfg.Steps
	}
	simCfg := sim.Config{Steps: n, SampleEvery: sampleEvery}
	if sc != nil {
		simCfg = sc.SimConfig(n)
		if simCfg.SampleEvery <= 0 {
			simCfg.SampleEvery = sampleEvery
		}
		n = simCfg.Steps
		log.Info().Str("scenario", sc.Name).Int("launches", len(simCfg.Launches)).Msg("scenario loaded")
	}
	if launchStep >= 0 {
		simCfg.Launches = append(simCfg.Launches, sim.Launch{Step: launchStep, Angle: launchAngle * math.Pi / 180})
	}

	store, err := storage.Open(cfg.Store, log)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Begin(ctx, tableName(cfg), cfg.Dt, len(sess.Bodies()), cfg)
	if err != nil {
		return err
	}
	log.Info().Uint("run", run.ID).Str("name", run.Name).Int("steps", n).Msg("run started")

	r := sim.New(sess, log)
	r.SetRunName(run.Name)
	energy := metrics.NewEnergyDrift()
	r.AddMetric(energy)
	r.AddMetric(metrics.NewMomentumDrift())
	closest := metrics.NewClosestApproach()
	r.AddMetric(closest)
	r.AddSink(store.Sink(run.ID))
	r.AddObserver(sim.ObserverFunc(func(ctx context.Context, ev sim.Event) {
		if err := store.RecordEvent(ctx, run.ID, ev.Step, ev.Kind, ev.Detail); err != nil {
			log.Warn().Err(err).Str("kind", ev.Kind).Msg("event not recorded")
		}
	}))

	if cfg.Telemetry.Enabled() {
		influx := telemetry.NewInfluxSink(cfg.Telemetry, log)
		defer influx.Close()
		if err := influx.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("telemetry disabled")
		} else {
			r.AddSink(influx)
		}
	}

	res, err := r.Run(ctx, simCfg)
	if res == nil {
		return err
	}
	halt := res.Halt
	if halt == nil {
		halt = err
	}
	// ctx may be cancelled already; the run log is still closed out.
	if ferr := store.Finish(context.Background(), run.ID, res.StepsTaken, res.Metrics, halt); ferr != nil {
		return errors.Join(err, ferr)
	}

	fmt.Printf("run %d (%s): %d/%d steps in %s\n", run.ID, run.Name, res.StepsTaken, n, res.Duration.Round(time.Millisecond))
	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-18s %.6g\n", name, res.Metrics[name])
	}
	fmt.Printf("  %-18s %.6g J\n", "total energy", energy.Current())
	if closest.A != "" {
		fmt.Printf("  closest pair       %s/%s at step %d\n", closest.A, closest.B, closest.Step)
	}
	for _, ev := range res.Events {
		fmt.Printf("  step %-6d %-10s %s\n", ev.Step, ev.Kind, ev.Detail)
	}
	if res.Halt != nil {
		fmt.Printf("  halted: %v\n", res.Halt)
	}
	return err
}

// sessionFactory builds independent sessions from one config, for
// commands that run many launches.
func sessionFactory(cfg *config.Config, log zerolog.Logger) (sim.Factory, error) {
	specs, err := cfg.Specs()
	if err != nil {
		return nil, err
	}
	meters, err := telemetry.NewMeters(nil)
	if err != nil {
		return nil, err
	}
	return func() (*session.Session, error) {
		return session.New(cfg, bodies.Resolve(specs), log, session.WithMeters(meters))
	}, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if sweepAngles <= 0 {
		return fmt.Errorf("angles must be positive, got %d", sweepAngles)
	}
	log := stderrLogger(cfg)
	factory, err := sessionFactory(cfg, log)
	if err != nil {
		return err
	}

	out := sim.NewSweep(factory, sweepAngles, log).Run(cmd.Context(), sweepSteps)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANGLE\tOUTCOME\tSTEP\tSPEED (km/s)")
	for _, o := range out {
		deg := o.Angle * 180 / math.Pi
		if o.Err != nil {
			fmt.Fprintf(w, "%.1f\terror: %v\t-\t-\n", deg, o.Err)
			continue
		}
		outcome, at := "miss", "-"
		for _, ev := range o.Result.Events {
			if ev.Kind == sim.EventHit || ev.Kind == sim.EventCollision {
				outcome, at = ev.Kind+" "+ev.Detail, fmt.Sprint(ev.Step)
				break
			}
		}
		fmt.Fprintf(w, "%.1f\t%s\t%s\t%.2f\n", deg, outcome, at, o.Result.Rocket.Vel.Norm()/1000)
	}
	return w.Flush()
}

func runAim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := stderrLogger(cfg)
	// every evaluation builds a session; keep its debug lines out of the way
	factory, err := sessionFactory(cfg, log.Level(zerolog.WarnLevel))
	if err != nil {
		return err
	}

	search := optim.GridSearch{Points: aimPoints, Rounds: aimRounds}
	angle, miss, err := search.Search(cmd.Context(), optim.MissDistance(factory, aimTarget, aimSteps))
	if err != nil {
		return err
	}
	if miss == 0 {
		fmt.Printf("hit %s launching at %.3f deg from %s\n", aimTarget, angle*180/math.Pi, cfg.ReferenceBody)
		return nil
	}
	fmt.Printf("closest pass to %s: %.4f AU launching at %.3f deg from %s\n",
		aimTarget, miss/dynamo.AU, angle*180/math.Pi, cfg.ReferenceBody)
	return nil
}
