package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/san-kum/orrery/internal/bodies"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/palette"
	"github.com/spf13/cobra"
)

var (
	// snapshot
	snapTicks  int
	snapAimX   float64
	snapAimY   float64
	snapLaunch bool
	snapLabels bool
	snapOut    string
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write one frame as svg",
		RunE:  snapshot,
	}
	f := cmd.Flags()
	f.IntVar(&snapTicks, "ticks", 0, "steps to run before drawing")
	f.Float64Var(&snapAimX, "aim-x", 0, "cursor x offset from the canvas center")
	f.Float64Var(&snapAimY, "aim-y", 0, "cursor y offset from the canvas center")
	f.BoolVar(&snapLaunch, "launch", false, "launch toward the aim before running")
	f.BoolVar(&snapLabels, "labels", true, "label bodies")
	f.StringVarP(&snapOut, "out", "o", "orrery.svg", "output file, - for stdout")
	return cmd
}

func newBodiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bodies",
		Short: "show the resolved body table",
		RunE:  listBodies,
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [file]",
		Short: "write the resolved config as yaml, a starting point for custom bodies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Bodies) == 0 {
				if cfg.Bodies, err = cfg.Specs(); err != nil {
					return err
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d bodies)\n", args[0], len(cfg.Bodies))
			return nil
		},
	}
}

func newPresetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTABLE\tBODIES\tFARTHEST (AU)\tREFERENCE\tDT (s)")
			for _, name := range config.ListPresets() {
				c := config.GetPreset(name)
				table := c.Table
				if len(c.Bodies) > 0 {
					table = "inline"
				}
				specs, _ := c.Specs()
				fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\t%.0f\n",
					name, table, len(specs), bodies.FarthestAU(specs), c.ReferenceBody, c.Dt)
			}
			w.Flush()
		},
	}
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := stderrLogger(cfg)
	sess, err := newSession(cfg, log)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	aimed := cmd.Flags().Changed("aim-x") || cmd.Flags().Changed("aim-y")
	if aimed {
		sess.MoveCursor(snapAimX, snapAimY)
	}
	if snapLaunch {
		if !aimed {
			return fmt.Errorf("--launch needs --aim-x or --aim-y")
		}
		if err := sess.Launch(snapAimX, snapAimY); err != nil {
			return err
		}
	}
	for i := 0; i < snapTicks; i++ {
		f, err := sess.Tick(ctx)
		if err != nil {
			return fmt.Errorf("tick %d: %w", i, err)
		}
		if f.Hit != "" {
			fmt.Fprintf(os.Stderr, "rocket hit %s at step %d\n", f.Hit, f.Step)
		}
	}

	svg := export.FrameToSVG(sess.Frame(ctx), cfg.Canvas.Width, cfg.Canvas.Height, snapLabels)
	if snapOut == "-" {
		_, err := os.Stdout.WriteString(svg)
		return err
	}
	if err := os.WriteFile(snapOut, []byte(svg), 0o644); err != nil {
		return err
	}
	log.Info().Str("file", snapOut).Int("step", sess.Step()).Msg("snapshot written")
	return nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, err := newSession(cfg, zerolog.Nop())
	if err != nil {
		return err
	}
	bs, primary, ref := sess.Bodies(), sess.Primary(), sess.Reference()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tNAME\tMASS (kg)\tX (AU)\tY (AU)\tVX (km/s)\tVY (km/s)\tCOLOR")
	for i, b := range bs {
		mark := ""
		switch i {
		case primary:
			mark = "*"
		case ref:
			mark = ">"
		}
		color := b.Color
		if !palette.Known(color) {
			color += " (shown as white)"
		}
		fmt.Fprintf(w, "%s\t%s\t%.4g\t%.5f\t%.5f\t%.3f\t%.3f\t%s\n", mark, b.Name, b.Mass,
			b.Pos.X/dynamo.AU, b.Pos.Y/dynamo.AU, b.Vel.X/1000, b.Vel.Y/1000, color)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	rs := sess.Scale()
	fmt.Printf("\n* primary  > launch body   farthest %.2f AU  scale %.3f  exaggeration %.2f\n",
		rs.FarthestAU, rs.ScaleFactor, rs.OrbitExaggeration)
	return nil
}
