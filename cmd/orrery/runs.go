package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orrery/internal/analysis"
	"github.com/san-kum/orrery/internal/config"
	"github.com/san-kum/orrery/internal/dynamo"
	"github.com/san-kum/orrery/internal/export"
	"github.com/san-kum/orrery/internal/storage"
	"github.com/spf13/cobra"
)

var (
	// plot, export
	trackBody string
	outFile   string
)

func newRunsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [id]",
		Short: "plot a body's distance from the barycenter",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	cmd.Flags().StringVar(&trackBody, "body", config.DefaultReferenceBody, "body to plot")
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [id]",
		Short: "export a body's track as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	cmd.Flags().StringVar(&trackBody, "body", config.DefaultReferenceBody, "body to export")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	return cmd
}

func openStore() (*storage.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return storage.Open(cfg.Store, stderrLogger(cfg))
}

func parseRunID(arg string) (uint, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid run id %q", arg)
	}
	return uint(id), nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context())
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTABLE\tBODIES\tSTEPS\tDAYS\tSTARTED\tHALTED")
	for _, r := range runs {
		halted := "-"
		if r.Halted != "" {
			halted = r.Halted
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%.1f\t%s\t%s\n",
			r.ID, r.Name, r.Table, r.BodyCount, r.Steps,
			float64(r.Steps)*r.Dt/86400,
			r.StartedAt.Local().Format("2006-01-02 15:04"), halted)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	ctx := cmd.Context()

	run, err := store.Load(ctx, id)
	if err != nil {
		return err
	}
	track, err := store.Track(ctx, id, trackBody)
	if err != nil {
		return err
	}
	if len(track) == 0 {
		names, _ := store.BodyNames(ctx, id)
		return fmt.Errorf("no samples for %q in run %d (have %s)", trackBody, id, strings.Join(names, ", "))
	}
	bary, err := store.Track(ctx, id, storage.BarycenterBody)
	if err != nil {
		return err
	}
	center := make(map[int]dynamo.Vec2, len(bary))
	for _, s := range bary {
		center[s.Step] = dynamo.Vec2{X: s.X, Y: s.Y}
	}

	data := make([]float64, 0, len(track))
	for _, s := range track {
		c := center[s.Step]
		data = append(data, dynamo.Vec2{X: s.X, Y: s.Y}.Sub(c).Norm()/dynamo.AU)
	}
	if len(data) < 2 {
		return fmt.Errorf("run %d has only %d sample(s) of %s", id, len(data), trackBody)
	}

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s distance from barycenter (AU), run %d", trackBody, id)),
	))

	peri, apo, ecc := analysis.Apsides(data)
	fmt.Printf("periapsis %.4f AU  apoapsis %.4f AU  eccentricity %.4f\n", peri, apo, ecc)
	if period, ok := analysis.DominantPeriod(evenlySpaced(track, data)); ok {
		fmt.Printf("dominant period %.1f days\n", period*run.Dt/86400)
	}

	evs, err := store.Events(ctx, id)
	if err != nil {
		return err
	}
	for _, ev := range evs {
		fmt.Printf("step %-6d %-10s %s\n", ev.Step, ev.Kind, ev.Detail)
	}
	return nil
}

// evenlySpaced drops samples off the regular sampling grid, such as the
// final step of a run, and returns the series with its spacing in steps.
func evenlySpaced(track []storage.Sample, data []float64) ([]float64, float64) {
	if len(track) < 2 {
		return data, 1
	}
	every := track[1].Step - track[0].Step
	if every <= 0 {
		return data, 1
	}
	out := make([]float64, 0, len(data))
	for i, s := range track {
		if (s.Step-track[0].Step)%every == 0 {
			out = append(out, data[i])
		}
	}
	return out, float64(every)
}

func exportRun(cmd *cobra.Command, args []string) error {
	id, err := parseRunID(args[0])
	if err != nil {
		return err
	}
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	track, err := store.Track(cmd.Context(), id, trackBody)
	if err != nil {
		return err
	}
	if len(track) == 0 {
		return fmt.Errorf("no samples for %q in run %d", trackBody, id)
	}

	w := os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return export.TrackCSV(w, track)
}
