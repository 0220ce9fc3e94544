package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bouncebox/internal/analysis"
	"github.com/san-kum/bouncebox/internal/automation"
	"github.com/san-kum/bouncebox/internal/config"
	"github.com/san-kum/bouncebox/internal/export"
	"github.com/san-kum/bouncebox/internal/metrics"
	"github.com/san-kum/bouncebox/internal/runner"
	"github.com/san-kum/bouncebox/internal/storage"
	"github.com/san-kum/bouncebox/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir       string
	configFile    string
	preset        string
	particles     int
	frameRate     float64
	duration      float64
	resetInterval float64
	seed          int64
	sampleEvery   int
	theme         string
	outPath       string
	svgPath       string
	numRuns       int
	sweepParam    string
	sweepMin      float64
	sweepMax      float64
	sweepSteps    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bounce",
		Short: "spheres bouncing in a box",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bouncebox", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&particles, "particles", config.DefaultParticles, "number of spheres")
	rootCmd.PersistentFlags().Float64Var(&resetInterval, "reset", config.DefaultResetInterval, "seconds between re-randomizations, 0 disables")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	rootCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&frameRate, "fps", config.DefaultFrameRate, "simulated frames per second")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	runCmd.Flags().IntVar(&sampleEvery, "sample", 1, "record every n-th frame")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and collisions of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the energy curve as SVG")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "render the final particles of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().StringVar(&outPath, "out", "snapshot.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the resolved configuration as YAML",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame throughput by particle count",
		RunE:  bench,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run independently seeded simulations in parallel",
		RunE:  runEnsemble,
	}
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of runs")
	ensembleCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summarize and find the dominant frequency of a run's series",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run and store every step of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one physics parameter over a seeded scene",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "e_wall", "parameter name")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.2, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportJSONCmd, snapshotCmd, presetsCmd, initCmd, benchCmd, ensembleCmd, analyzeCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("reset") {
		cfg.ResetInterval = resetInterval
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FrameRate = frameRate
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	runCfg, err := runner.FromConfig(cfg)
	if err != nil {
		return err
	}
	runCfg.SampleEvery = sampleEvery

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	r := runner.New()
	for _, m := range metrics.Defaults(cfg.SpeedLimit) {
		r.AddMetric(m)
	}

	fmt.Printf("running %d spheres for %.1fs...\n", cfg.Particles, cfg.Duration)
	start := time.Now()

	result, err := r.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(runCfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.FramesRun)
	fmt.Printf("repeats: %d\n", result.Repeats)
	fmt.Printf("collisions: %d\n", result.Collisions)
	fmt.Println("\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.Params()
	if err != nil {
		return err
	}

	return viz.Run(viz.LiveConfig{
		Particles:     cfg.Particles,
		ResetInterval: time.Duration(cfg.ResetInterval * float64(time.Second)),
		Params:        params,
		Seed:          cfg.Seed,
		Theme:         theme,
	})
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
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tDURATION\tFRAMES\tREPEATS\tCOLLISIONS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Duration,
			run.FramesRun,
			run.Repeats,
			run.Collisions,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d\n", meta.Particles)
	fmt.Printf("samples: %d\n\n", len(frames))

	energy := make([]float64, len(frames))
	collisions := make([]float64, len(frames))
	for i, f := range frames {
		energy[i] = f.KineticEnergy + f.PotentialEnergy
		collisions[i] = float64(f.Collisions)
	}

	for _, series := range []struct {
		caption string
		data    []float64
	}{
		{"total energy (J)", energy},
		{"collisions per frame", collisions},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.SeriesToSVG(energy, 800, 300, "#00ffff")), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	data, err := st.Export(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return storage.WriteJSON(os.Stdout, data)
	}
	return storage.ExportJSON(outPath, data)
}

func snapshot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	particles, err := st.LoadParticles(runID)
	if err != nil {
		return err
	}

	box := float32(meta.Params["box_size"])
	if box <= 0 {
		box = float32(config.DefaultPhysics().BoxSize)
	}

	svg := export.SnapshotSVG(particles, box, viz.BoxCamera(box), 800, 600)
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d particles)\n", outPath, len(particles))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARTICLES\tRESET\tGRAVITY\tE_SPHERE\tE_WALL\tC_AIR")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.1fs\t%.3f\t%.2f\t%.2f\t%.3f\n",
			name,
			p.Particles,
			p.ResetInterval,
			p.Physics.Gravity,
			p.Physics.ESphere,
			p.Physics.EWall,
			p.Physics.CAir,
		)
	}

	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	counts := []int{10, 50, 200, 1000}
	const simSeconds = 2.0

	fmt.Printf("benchmarking %.0fs of simulated time per count\n\n", simSeconds)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tFRAMES\tCOLLISIONS\tTIME\tFRAMES/SEC")

	for _, n := range counts {
		cfg := runner.DefaultConfig()
		cfg.Particles = n
		cfg.Duration = simSeconds
		cfg.ResetInterval = 0
		cfg.Seed = 42
		cfg.SampleEvery = int(cfg.FrameRate * simSeconds)
		cfg.ValidateState = false

		start := time.Now()
		result, err := runner.New().Run(context.Background(), cfg)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n",
			n, result.FramesRun, result.Collisions, elapsed, float64(result.FramesRun)/elapsed.Seconds())
	}

	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	runCfg, err := runner.FromConfig(cfg)
	if err != nil {
		return err
	}
	runCfg.SampleEvery = int(runCfg.FrameRate)

	ens := runner.NewEnsemble(numRuns, cfg.Seed, func() []metrics.Metric {
		return metrics.Defaults(cfg.SpeedLimit)
	})

	start := time.Now()
	results, err := ens.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}
	fmt.Printf("%d runs in %v\n\n", len(results), time.Since(start))

	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED\tCOLLISIONS")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for i, res := range results {
		fmt.Fprintf(w, "%d\t%d", cfg.Seed+int64(i), res.Collisions)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", res.Metrics[name])
		}
		fmt.Fprintln(w)
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("not enough samples to analyze")
	}

	rate := float64(len(frames)-1) / (frames[len(frames)-1].Time - frames[0].Time)

	series := map[string][]float64{
		"kinetic_energy":   make([]float64, len(frames)),
		"potential_energy": make([]float64, len(frames)),
		"collisions":       make([]float64, len(frames)),
		"wall_bounces":     make([]float64, len(frames)),
	}
	for i, f := range frames {
		series["kinetic_energy"][i] = f.KineticEnergy
		series["potential_energy"][i] = f.PotentialEnergy
		series["collisions"][i] = float64(f.Collisions)
		series["wall_bounces"][i] = float64(f.WallBounces)
	}

	fmt.Printf("run: %s (%d samples at %.2f Hz)\n\n", meta.ID, len(frames), rate)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SERIES\tMEAN\tSTDDEV\tMIN\tMAX\tPEAK HZ\tPEAK AMP")
	for _, name := range []string{"kinetic_energy", "potential_energy", "collisions", "wall_bounces"} {
		data := series[name]
		sum := analysis.Summarize(data)
		freq, amp := 0.0, 0.0
		if spec, err := analysis.PowerSpectrum(data, rate); err == nil {
			freq, amp = spec.Dominant()
		}
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\t%.3f\t%.4f\n",
			name, sum.Mean, sum.StdDev, sum.Min, sum.Max, freq, amp)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	results, err := automation.RunScenario(context.Background(), sc, config.DefaultSpeedLimit)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN ID\tPARTICLES\tFRAMES\tCOLLISIONS")
	for _, res := range results {
		runID, saveErr := st.Save(res.Config, res.Result)
		if saveErr != nil {
			return saveErr
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
			res.Step, runID, res.Config.Particles, res.Result.FramesRun, res.Result.Collisions)
	}
	if flushErr := w.Flush(); flushErr != nil {
		return flushErr
	}

	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	base, err := runner.FromConfig(cfg)
	if err != nil {
		return err
	}
	base.SampleEvery = int(base.FrameRate)

	results, err := automation.RunSweep(context.Background(), &automation.ParameterSweep{
		Base:      base,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCOLLISIONS\tWALL HITS\tFINAL KE\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%d\t%.4f\n", r.ParamValue, r.Collisions, r.WallBounces, r.FinalKinetic)
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
