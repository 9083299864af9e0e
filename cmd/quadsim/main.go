package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/quadsim/internal/config"
	"github.com/san-kum/quadsim/internal/control"
	"github.com/san-kum/quadsim/internal/export"
	"github.com/san-kum/quadsim/internal/metrics"
	"github.com/san-kum/quadsim/internal/mission"
	"github.com/san-kum/quadsim/internal/quad"
	"github.com/san-kum/quadsim/internal/sim"
	"github.com/san-kum/quadsim/internal/storage"
	"github.com/san-kum/quadsim/internal/viz"
)

var (
	dataDir     string
	dt          float64
	duration    float64
	configFile  string
	missionFile string
	preset      string
	frameRate   int
	svgOut      string
	svgTrack    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quadsim",
		Short: "quadrotor flight dynamics and control sandbox",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".quadsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [mission]",
		Short: "fly a mission and store the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMission,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides config)")
	runCmd.Flags().Float64Var(&duration, "time", 0, "duration (defaults to the mission length)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&missionFile, "mission-file", "", "mission file path (yaml)")
	runCmd.Flags().StringVar(&preset, "vehicle", "", "vehicle preset name")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "fly interactively with a live terminal view",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (overrides config)")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "vehicle", "", "vehicle preset name")
	liveCmd.Flags().IntVar(&frameRate, "fps", 20, "frame rate")

	missionsCmd := &cobra.Command{
		Use:   "missions",
		Short: "list built-in missions",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range mission.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	vehiclesCmd := &cobra.Command{
		Use:   "vehicles",
		Short: "list vehicle presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print the run trace as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the run as an svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")
	exportSVGCmd.Flags().BoolVar(&svgTrack, "track", false, "plot the x/y ground track instead of the altitude profile")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the control-and-integration loop",
		RunE:  benchLoop,
	}

	rootCmd.AddCommand(runCmd, liveCmd, missionsCmd, vehiclesCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown vehicle preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if dt > 0 {
		cfg.Sim.Dt = dt
	}
	return cfg, nil
}

func buildSimulator(cfg *config.Config) (*sim.Simulator, error) {
	vehicle, err := quad.New(cfg.Params())
	if err != nil {
		return nil, err
	}
	return sim.New(vehicle, control.NewCascade(cfg.Gains), cfg.SimConfig()), nil
}

func runMission(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var m *mission.Mission
	switch {
	case missionFile != "":
		if m, err = mission.Load(missionFile); err != nil {
			return fmt.Errorf("failed to load mission: %w", err)
		}
	case len(args) == 1:
		if m = mission.Preset(args[0]); m == nil {
			return fmt.Errorf("unknown mission: %s (available: %v)", args[0], mission.ListPresets())
		}
	default:
		m = mission.Preset("hover")
	}

	runTime := m.Duration()
	if duration > 0 {
		runTime = duration
	}
	steps := int(runTime / cfg.Sim.Dt)

	s, err := buildSimulator(cfg)
	if err != nil {
		return err
	}

	hover := cfg.Vehicle.Mass * s.Vehicle().Params().Gravity
	ms := []metrics.Metric{
		metrics.NewControlEffort(hover),
		metrics.NewAltitudeOvershoot(),
		metrics.NewSettlingTime(0.05),
	}
	metrics.Attach(s, ms...)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("flying %s for %.1fs at dt=%.3fs...\n", m.Name, runTime, cfg.Sim.Dt)
	start := time.Now()

	for i := 0; i < steps; i++ {
		es := s.ExtendedState()
		ref := m.At(es.SimTime)
		s.SetReferences(ref.Roll, ref.Pitch, ref.Yaw, ref.Z)
		if _, err := s.Step(cfg.Sim.Dt); err != nil {
			return err
		}
	}
	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Mission:  m.Name,
		Dt:       cfg.Sim.Dt,
		Duration: runTime,
		Steps:    steps,
		Mass:     cfg.Vehicle.Mass,
		Metrics:  metrics.Collect(ms),
	}, s.History().Entries())
	if err != nil {
		return err
	}

	final := s.ExtendedState()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final: z=%.3fm (err %+.3f) roll=%.3f pitch=%.3f yaw=%.3f\n",
		final.State.Z, final.ZErr, final.State.Roll, final.State.Pitch, final.State.Yaw)
	fmt.Println("\nmetrics:")
	for name, val := range metrics.Collect(ms) {
		fmt.Printf("  %s: %.4f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, err := buildSimulator(cfg)
	if err != nil {
		return err
	}
	return viz.Run(s, cfg.Sim.Dt, frameRate)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMISSION\tTIME\tDURATION\tDT\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fs\t%.3fs\t%d\n",
			run.ID,
			run.Mission,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mission: %s\n", meta.Mission)
	fmt.Printf("samples: %d\n\n", len(trace))

	channels := []struct {
		caption string
		pick    func(quad.State) float64
	}{
		{"z altitude (m)", func(s quad.State) float64 { return s.Z }},
		{"vz (m/s)", func(s quad.State) float64 { return s.VZ }},
		{"roll (rad)", func(s quad.State) float64 { return s.Roll }},
		{"pitch (rad)", func(s quad.State) float64 { return s.Pitch }},
		{"yaw (rad)", func(s quad.State) float64 { return s.Yaw }},
		{"thrust (N)", func(s quad.State) float64 { return s.Thrust }},
	}

	for _, ch := range channels {
		data := make([]float64, len(trace))
		for i, e := range trace {
			data[i] = ch.pick(e.State)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(ch.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	f, err := os.Open(st.TracePath(args[0]))
	if err != nil {
		return err
	}
	defer f.Close()

	// Re-encode instead of raw copy so a truncated trace fails loudly.
	r := csv.NewReader(f)
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()
	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	var doc string
	if svgTrack {
		doc = export.GroundTrackSVG(trace, 800, 400)
	} else {
		doc = export.AltitudeProfileSVG(trace, 800, 400)
	}
	if doc == "" {
		return fmt.Errorf("trace too short to plot")
	}

	out := svgOut
	if out == "" {
		out = args[0] + ".svg"
	}
	if err := os.WriteFile(out, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func benchLoop(cmd *cobra.Command, args []string) error {
	durations := []float64{10.0, 60.0}
	dts := []float64{0.01, 0.02, 0.05}

	fmt.Println("benchmarking control-and-integration loop")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIMTIME\tDT\tSTEPS\tWALL\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			cfg := config.DefaultConfig()
			cfg.Sim.Dt = step
			s, err := buildSimulator(cfg)
			if err != nil {
				return err
			}
			s.SetReferences(0, 0, 0, 5.0)

			steps := int(dur / step)
			start := time.Now()
			for i := 0; i < steps; i++ {
				if _, err := s.Step(step); err != nil {
					return err
				}
			}
			wall := time.Since(start)
			fmt.Fprintf(w, "%.0fs\t%.3fs\t%d\t%v\t%.0f\n",
				dur, step, steps, wall.Round(time.Microsecond),
				float64(steps)/wall.Seconds(),
			)
		}
	}
	return w.Flush()
}
