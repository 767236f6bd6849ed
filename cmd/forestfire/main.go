package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/forestfire/internal/automation"
	"github.com/san-kum/forestfire/internal/config"
	"github.com/san-kum/forestfire/internal/engine"
	"github.com/san-kum/forestfire/internal/export"
	"github.com/san-kum/forestfire/internal/forest"
	"github.com/san-kum/forestfire/internal/metrics"
	"github.com/san-kum/forestfire/internal/screen"
	"github.com/san-kum/forestfire/internal/storage"
	"github.com/san-kum/forestfire/internal/tui"
	"github.com/spf13/cobra"
)

const debugEnv = "FORESTFIRE_DEBUG"

var (
	dataDir    string
	configFile string
	preset     string
	seed       uint32
	fps        int
	driver     string
	steps      int
	svgPath    string
	runs       int
	workers    int
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	points     int
)

// main registers the commands, plays the forest when no subcommand is given,
// and exits with status 1 when a command fails.
func main() {
	closeLog, err := setupLogging()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = newRootCmd().Execute()
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

// setupLogging sends log output to the file named by FORESTFIRE_DEBUG, or
// discards it. The terminal belongs to the simulation either way.
func setupLogging() (func(), error) {
	path := os.Getenv(debugEnv)
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "forestfire")
	if err != nil {
		return nil, fmt.Errorf("open debug log: %w", err)
	}
	return func() { f.Close() }, nil
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "forestfire",
		Short:        "forest fire cellular automaton",
		SilenceUsage: true,
		RunE:         runPlay,
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	addWorldFlags(rootCmd)
	addPlayFlags(rootCmd)

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "play in the terminal (left click plants, right click ignites)",
		Args:  cobra.NoArgs,
		RunE:  runPlay,
	}
	addWorldFlags(playCmd)
	addPlayFlags(playCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and archive the census",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addWorldFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", 1000, "generations to simulate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a run's population",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the chart to this svg file")

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "run several seeds in parallel and compare them",
		Args:  cobra.NoArgs,
		RunE:  runBatch,
	}
	addWorldFlags(batchCmd)
	batchCmd.Flags().IntVar(&steps, "steps", 1000, "generations per run")
	batchCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")
	batchCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 uses every cpu)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one rule probability",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addWorldFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&steps, "steps", 1000, "generations per point")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "spread_prob", "rule to vary (sapling_prob, spread_prob, fire_prob)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.05, "last value")
	sweepCmd.Flags().IntVar(&points, "points", 6, "number of values")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario and archive it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list rule presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(playCmd, runCmd, listCmd, plotCmd, presetsCmd, batchCmd, sweepCmd, scenarioCmd)
	return rootCmd
}

func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().Uint32Var(&seed, "seed", 0, "random seed (0 derives one from the clock)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use rule preset")
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&driver, "driver", config.DefaultDriver, "terminal driver (tea, tcell)")
}

// resolveConfig layers defaults, the preset, the config file and finally any
// flag the user set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Rules = *p
	}

	if configFile != "" {
		loaded, err := config.LoadOver(cfg, configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("driver") {
		cfg.Driver = driver
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func sessionOptions(cfg *config.Config) engine.Options {
	return engine.Options{
		Width:  forest.DefaultWidth,
		Height: forest.DefaultHeight,
		Rules:  cfg.ForestRules(),
		Seed:   cfg.ResolveSeed(time.Now),
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s := engine.NewSession(sessionOptions(cfg))
	log.Printf("play: driver=%s seed=%d fps=%d rules=%+v", cfg.Driver, s.Seed(), cfg.FPS, s.Rules())

	if cfg.Driver == "tcell" {
		return playTerminal(s, cfg.Interval())
	}
	return tui.Run(s, cfg.Interval())
}

func playTerminal(s *engine.Session, interval time.Duration) error {
	term, err := screen.New()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer term.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return engine.Run(ctx, s, term, term, interval)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	opts := sessionOptions(cfg)
	opts.History = steps
	s := engine.NewSession(opts)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("simulating %d generations (seed %d)...\n", steps, s.Seed())
	start := time.Now()
	if err := engine.RunHeadless(ctx, s, steps); err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := archive(st, s, preset)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	report(s, runID)
	return nil
}

// archive saves the session's census log and metrics.
func archive(st *storage.Store, s *engine.Session, presetName string) (string, error) {
	sum := s.Summary()
	rules := s.Rules()
	return st.Save(storage.RunMetadata{
		Seed:        sum.Seed,
		Width:       s.Grid().Width(),
		Height:      s.Grid().Height(),
		Steps:       int(sum.Generations),
		Preset:      presetName,
		SaplingProb: rules.SaplingProb,
		SpreadProb:  rules.SpreadProb,
		FireProb:    rules.FireProb,
		Metrics:     sum.Metrics,
	}, s.History().Entries())
}

func report(s *engine.Session, runID string) {
	sum := s.Summary()
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final: trees=%d saplings=%d burning=%d ash=%d\n", sum.Final.Trees, sum.Final.Saplings, sum.Final.Burning, sum.Final.Ash)
	printMetrics(sum.Metrics)
	fmt.Println()
	printGraphs(s.History().Trees(), s.History().Burning())
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, values[name])
	}
}

func printGraphs(trees, burning []float64) {
	if len(trees) < 2 {
		return
	}
	fmt.Println(asciigraph.Plot(trees,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("trees"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(burning,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("burning"),
	))
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
	fmt.Fprintln(w, "ID\tTIME\tSEED\tSTEPS\tPRESET\tPEAK FIRE")

	for _, run := range runs {
		name := run.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%.0f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Steps,
			name,
			run.Metrics["peak_fire"],
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

	census, err := st.LoadCensus(runID)
	if err != nil {
		return err
	}

	if len(census) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("generations: %d\n\n", len(census))

	h := metrics.NewHistory(len(census))
	for _, c := range census {
		h.Add(c)
	}
	printGraphs(h.Trees(), h.Burning())

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.CensusToSVG(census, 800, 300)), 0644); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSAPLING\tSPREAD\tFIRE")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\n", name, p.SaplingProb, p.SpreadProb, p.FireProb)
	}
	return w.Flush()
}

func runBatch(cmd *cobra.Command, args []string) error {
	if steps <= 0 || runs <= 0 {
		return fmt.Errorf("steps and runs must be positive, got %d and %d", steps, runs)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	e := engine.NewEnsemble(sessionOptions(cfg), runs)
	e.SetWorkers(workers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("simulating %d seeds x %d generations...\n", runs, steps)
	start := time.Now()
	results, err := e.Run(ctx, steps)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tTREES\tBURNING\tASH\tPEAK FIRE\tCOVERAGE\tCALM")
	var peak, coverage float64
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.0f\t%.4f\t%.3f\n",
			r.Seed,
			r.Final.Trees,
			r.Final.Burning,
			r.Final.Ash,
			r.Metrics["peak_fire"],
			r.Metrics["tree_coverage"],
			r.Metrics["calm"],
		)
		peak += r.Metrics["peak_fire"]
		coverage += r.Metrics["tree_coverage"]
	}
	if err := w.Flush(); err != nil {
		return err
	}

	n := float64(len(results))
	fmt.Printf("\nmean peak fire: %.1f\nmean coverage: %.4f\n", peak/n, coverage/n)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.Sweep{
		Base:   sessionOptions(cfg),
		Param:  sweepParam,
		Min:    sweepMin,
		Max:    sweepMax,
		Points: points,
		Steps:  steps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tTREES\tPEAK FIRE\tCOVERAGE\tCALM\n", strings.ToUpper(sweepParam))
	peaks := make([]float64, len(results))
	for i, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%.0f\t%.4f\t%.3f\n",
			r.Value,
			r.Final.Trees,
			r.Metrics["peak_fire"],
			r.Metrics["tree_coverage"],
			r.Metrics["calm"],
		)
		peaks[i] = r.Metrics["peak_fire"]
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(peaks,
		asciigraph.Height(8),
		asciigraph.Caption("peak fire by "+sweepParam),
	))
	return nil
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

	s := engine.NewSession(engine.Options{
		Width:   forest.DefaultWidth,
		Height:  forest.DefaultHeight,
		Rules:   sc.ForestRules(),
		Seed:    (&config.Config{Seed: sc.Seed}).ResolveSeed(time.Now),
		History: sc.Steps,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running scenario %s (%d generations)...\n", sc.Name, sc.Steps)
	if sc.Description != "" {
		fmt.Println(sc.Description)
	}
	if err := automation.RunScenario(ctx, s, sc); err != nil {
		return err
	}

	runID, err := archive(st, s, sc.Preset)
	if err != nil {
		return err
	}
	report(s, runID)
	return nil
}
