package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/dipolesim/internal/analysis"
	"github.com/san-kum/dipolesim/internal/config"
	"github.com/san-kum/dipolesim/internal/export"
	"github.com/san-kum/dipolesim/internal/metrics"
	"github.com/san-kum/dipolesim/internal/noise"
	"github.com/san-kum/dipolesim/internal/pathgen"
	"github.com/san-kum/dipolesim/internal/pathio"
	"github.com/san-kum/dipolesim/internal/pipeline"
	"github.com/san-kum/dipolesim/internal/record"
	"github.com/san-kum/dipolesim/internal/solver"
	"github.com/san-kum/dipolesim/internal/storage"
	"github.com/san-kum/dipolesim/internal/viz"
)

var (
	dataDir string
	verbose bool
	log     zerolog.Logger

	configFile string
	preset     string
	shape      string
	points     int
	duration   float64
	scale      float64
	dt         float64
	solverName string
	trials     int
	sigma      float64
	seed       int64
	m          int
	b          float64
	mu         float64

	plotWidth  int
	plotHeight int
	svgWidth   int
	svgHeight  int
	component  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dipolesim",
		Short: "controlled quantum dipole path lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".dipolesim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [path-file]",
		Short: "bind a desired path and run the solver and noise stages",
		Long: "Reads a [t x y] table from path-file (or [x y] with --dt), or generates one\n" +
			"from --shape, then runs the field solver and noise analyzer and saves the run.",
		Args: cobra.MaximumNArgs(1),
		RunE: runPath,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&shape, "shape", config.DefaultShape, "formula path when no file is given")
	runCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "number of time points for --shape")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration for --shape")
	runCmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "amplitude for --shape")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "time step for two-column [x y] files")
	runCmd.Flags().StringVar(&solverName, "solver", config.DefaultSolver, "field solver")
	runCmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "noise trials (0 disables the analyzer)")
	runCmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "measurement noise standard deviation")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().IntVar(&m, "m", record.DefaultM, "maximum quantum number")
	runCmd.Flags().Float64Var(&b, "B", record.DefaultB, "rotational constant (a.u.)")
	runCmd.Flags().Float64Var(&mu, "mu", record.DefaultMu, "dipole moment (a.u.)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show run summary",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot desired vs observed path and the field",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a path component",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&component, "component", "x", "x, y, ex or ey")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportPathCmd := &cobra.Command{
		Use:   "export-path [run_id] [file]",
		Short: "write the desired path as a [t x y] table",
		Args:  cobra.ExactArgs(2),
		RunE:  exportPath,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "write the desired and observed paths as SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 600, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets and path shapes",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Printf("  %-10s %s, %d points, solver %s\n", p, cfg.Path.Shape, cfg.Path.Points, cfg.Solver)
			}
			fmt.Println("shapes:")
			for _, s := range pathgen.Shapes() {
				fmt.Printf("  %s\n", s)
			}
		},
	}

	solversCmd := &cobra.Command{
		Use:   "solvers",
		Short: "list field solvers",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range solver.NewRegistry().List() {
				fmt.Println(s)
			}
		},
	}

	constsCmd := &cobra.Command{
		Use:   "consts",
		Short: "print the physical constants bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := record.NewConstants(m, b, mu)
			if err != nil {
				return err
			}
			rec, err := record.New(c)
			if err != nil {
				return err
			}
			fmt.Println(rec.Const())
			return nil
		},
	}
	constsCmd.Flags().IntVar(&m, "m", record.DefaultM, "maximum quantum number")
	constsCmd.Flags().Float64Var(&b, "B", record.DefaultB, "rotational constant (a.u.)")
	constsCmd.Flags().Float64Var(&mu, "mu", record.DefaultMu, "dipole moment (a.u.)")

	rootCmd.AddCommand(runCmd, listCmd, showCmd, plotCmd, analyzeCmd, exportCmd, exportPathCmd, exportSVGCmd, presetsCmd, solversCmd, constsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPath(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	// Load config file if specified (overrides preset)
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	applyFlags(cmd, cfg, args)
	if err := cfg.Validate(); err != nil {
		return err
	}

	consts, err := cfg.GetConstants()
	if err != nil {
		return err
	}

	table, label, err := loadTable(cfg)
	if err != nil {
		return err
	}

	rec, err := record.FromTable(consts, table)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	log.Debug().Int("points", rec.N()).Str("consts", consts.String()).Msg("record bound")

	fieldSolver, err := solver.NewRegistry().Get(cfg.Solver)
	if err != nil {
		return err
	}

	noiseSeed := cfg.Noise.ResolveSeed(seed)

	p := pipeline.New(log, fieldSolver)
	if cfg.Noise.Trials > 0 {
		p.AddStage(noise.NewAnalyzer(log, noise.Ensemble{
			Trials: cfg.Noise.Trials,
			Sigma:  cfg.Noise.Sigma,
			Seed:   noiseSeed,
		}))
	}
	for _, metric := range metrics.Default() {
		p.AddMetric(metric)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := p.Run(ctx, rec)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(rec, storage.RunInfo{
		Label:   label,
		Solver:  cfg.Solver,
		Trials:  cfg.Noise.Trials,
		Sigma:   cfg.Noise.Sigma,
		Seed:    noiseSeed,
		Metrics: result.Metrics,
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("points: %d\n", rec.N())
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, metric := range metrics.Default() {
		fmt.Fprintf(w, "  %s\t%.6g\n", metric.Name(), result.Metrics[metric.Name()])
	}
	return w.Flush()
}

// applyFlags lets explicitly set flags override preset and config values.
func applyFlags(cmd *cobra.Command, cfg *config.Config, args []string) {
	flags := cmd.Flags()
	if len(args) > 0 {
		cfg.Path.File = args[0]
	}
	if flags.Changed("shape") {
		cfg.Path.Shape = shape
		cfg.Path.File = ""
	}
	if flags.Changed("points") {
		cfg.Path.Points = points
	}
	if flags.Changed("time") {
		cfg.Path.Duration = duration
	}
	if flags.Changed("scale") {
		cfg.Path.Scale = scale
	}
	if flags.Changed("solver") {
		cfg.Solver = solverName
	}
	if flags.Changed("trials") {
		cfg.Noise.Trials = trials
	}
	if flags.Changed("sigma") {
		cfg.Noise.Sigma = sigma
	}
	if flags.Changed("seed") {
		cfg.Noise.Seed = &seed
	}
	if flags.Changed("m") {
		cfg.Constants.M = m
	}
	if flags.Changed("B") {
		cfg.Constants.B = b
	}
	if flags.Changed("mu") {
		cfg.Constants.Mu = mu
	}
}

func loadTable(cfg *config.Config) ([][]float64, string, error) {
	if cfg.Path.File == "" {
		table, err := pathgen.Generate(cfg.Path.Shape, cfg.Path.Points, cfg.Path.Duration, cfg.Path.Scale)
		return table, cfg.Path.Shape, err
	}

	table, err := pathio.ReadFile(cfg.Path.File)
	if err != nil {
		return nil, "", err
	}
	if dt > 0 && len(table[0]) == 2 {
		table, err = pathio.WithTimes(table, dt)
		if err != nil {
			return nil, "", err
		}
	}
	label := strings.TrimSuffix(filepath.Base(cfg.Path.File), filepath.Ext(cfg.Path.File))
	return table, label, nil
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
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tPOINTS\tM\tSOLVER\tTRIALS\tRMS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%d\t%.4g\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Constants.M,
			run.Solver,
			run.Trials,
			run.Metrics["tracking_rms"],
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *record.Record, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	rec, err := st.LoadRecord(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, rec, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, rec, err := loadRun(args[0])
	if err != nil {
		return err
	}
	fmt.Print(viz.Summary(meta, rec))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, rec, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("points: %d\n\n", rec.N())
	fmt.Print(viz.PlotPaths(rec, plotWidth, plotHeight))
	fmt.Println(viz.PlotField(rec, plotWidth, plotHeight))
	fmt.Println()
	fmt.Print(analysis.PathPortrait(rec).ToASCII(plotWidth, 2*plotHeight))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, rec, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var src *mat.Dense
	col := 0
	switch component {
	case "x":
		src = rec.PathDesired
	case "y":
		src, col = rec.PathDesired, 1
	case "ex":
		src = rec.Field
	case "ey":
		src, col = rec.Field, 1
	default:
		return fmt.Errorf("unknown component: %s (want x, y, ex or ey)", component)
	}

	samples := mat.Col(nil, col, src)
	ps := analysis.PowerSpectrum(samples)

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)
	fmt.Println(viz.PlotSpectrum(ps, fmt.Sprintf("power spectrum (%s)", component), 80, 15))
	fmt.Println()

	freq, ok := analysis.DominantFrequency(rec.T, samples)
	if !ok {
		fmt.Println("no dominant frequency")
		return nil
	}
	fmt.Printf("dominant frequency: %.4g (1/time)\n", freq)
	fmt.Printf("period: %.4g\n", 1/freq)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, rec, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, rec)
}

func exportPath(cmd *cobra.Command, args []string) error {
	_, rec, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := pathio.WriteFile(args[1], rec.Table()); err != nil {
		return err
	}
	log.Info().Str("file", args[1]).Int("points", rec.N()).Msg("path written")
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, rec, err := loadRun(args[0])
	if err != nil {
		return err
	}
	svg := export.PortraitToSVG(analysis.PathPortrait(rec), svgWidth, svgHeight)
	if err := os.WriteFile(args[1], []byte(svg), 0644); err != nil {
		return err
	}
	log.Info().Str("file", args[1]).Msg("svg written")
	return nil
}
