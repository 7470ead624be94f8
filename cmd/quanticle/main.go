package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/quanticle/internal/analysis"
	"github.com/san-kum/quanticle/internal/config"
	"github.com/san-kum/quanticle/internal/dynamo"
	"github.com/san-kum/quanticle/internal/export"
	"github.com/san-kum/quanticle/internal/logging"
	"github.com/san-kum/quanticle/internal/metrics"
	"github.com/san-kum/quanticle/internal/motion"
	"github.com/san-kum/quanticle/internal/params"
	"github.com/san-kum/quanticle/internal/physics"
	"github.com/san-kum/quanticle/internal/sandbox"
	"github.com/san-kum/quanticle/internal/server"
	"github.com/san-kum/quanticle/internal/sim"
	"github.com/san-kum/quanticle/internal/storage"
	"github.com/san-kum/quanticle/internal/viz"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configFile string
	dataDir    string
	strict     bool
	logLevel   string
	logFile    string

	preset     string
	integrator string
	steps      int
	frameRate  int
	theme      string

	angleXY   float64
	angleZ    float64
	speed     float64
	length    float64
	mass      float64
	amplitude float64
	frequency float64

	// configure
	bodyShape string
	bodyMass  float64
	gravity   bool
	color     string

	addr   string
	plane  string
	stroke string
)

// extraCommands are registered by files behind build tags.
var extraCommands []func() *cobra.Command

// fieldFlags maps parameter fields to their override flags.
var fieldFlags = []struct {
	field, flag string
	value       *float64
}{
	{"angleXY", "angle-xy", &angleXY},
	{"angleZ", "angle-z", &angleZ},
	{"speed", "speed", &speed},
	{"length", "length", &length},
	{"mass", "mass", &mass},
	{"amplitude", "amplitude", &amplitude},
	{"frequency", "frequency", &frequency},
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "quanticle",
		Short:         "interactive classical-mechanics demos",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml, default <data-dir>/config.yaml)")
	pf.StringVar(&dataDir, "data-dir", "", "data directory")
	pf.BoolVar(&strict, "strict", false, "reject out-of-range parameters instead of clamping")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "log file (live views default to <data-dir>/quanticle.log)")

	liveCmd := &cobra.Command{
		Use:   "live [variant]",
		Short: "run a variant with the live terminal view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addParamFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	sandboxCmd := &cobra.Command{
		Use:   "sandbox [config_id]",
		Short: "open the rigid-body sandbox",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSandbox,
	}
	sandboxCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	sandboxCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme")

	configureCmd := &cobra.Command{
		Use:   "configure [config_id]",
		Short: "create or update a saved sandbox configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  configureSandbox,
	}
	configureCmd.Flags().StringVar(&bodyShape, "shape", "box", "body shape (box, sphere)")
	configureCmd.Flags().Float64Var(&bodyMass, "mass", 1, "body mass")
	configureCmd.Flags().BoolVar(&gravity, "gravity", true, "gravity on")
	configureCmd.Flags().StringVar(&color, "color", "#ff8800", "body color (#rrggbb)")

	runCmd := &cobra.Command{
		Use:   "run [variant]",
		Short: "record a run headlessly",
		Args:  cobra.ExactArgs(1),
		RunE:  runRecord,
	}
	addParamFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "maximum steps")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run trajectory as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&plane, "plane", "xy", "projection plane (xy, xz, zy)")
	exportSVGCmd.Flags().StringVar(&stroke, "color", "#00ffff", "stroke color")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "dominant frequency of a periodic run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [variant]",
		Short: "list parameter presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream samples over websockets",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")

	rootCmd.AddCommand(liveCmd, sandboxCmd, configureCmd, runCmd, listCmd, plotCmd,
		exportJSONCmd, exportSVGCmd, analyzeCmd, presetsCmd, serveCmd)
	for _, mk := range extraCommands {
		rootCmd.AddCommand(mk())
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset parameters")
	cmd.Flags().StringVar(&integrator, "integrator", "", "pendulum integrator (symplectic, euler, rk4, verlet, leapfrog)")
	cmd.Flags().Float64Var(&angleXY, "angle-xy", 45, "projectile vertical launch angle (deg)")
	cmd.Flags().Float64Var(&angleZ, "angle-z", 0, "projectile horizontal launch angle (deg)")
	cmd.Flags().Float64Var(&speed, "speed", 10, "projectile launch speed (m/s)")
	cmd.Flags().Float64Var(&length, "length", 2, "pendulum length (m)")
	cmd.Flags().Float64Var(&mass, "mass", 1, "pendulum mass (kg)")
	cmd.Flags().Float64Var(&amplitude, "amplitude", 2, "shm amplitude (m)")
	cmd.Flags().Float64Var(&frequency, "frequency", 0.5, "shm frequency (Hz)")
}

// loadSettings reads the config file and applies the global flags that were
// set explicitly.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path := configFile
	if path == "" {
		dir := config.DefaultConfig().DataDir
		if flags.Changed("data-dir") {
			dir = dataDir
		}
		path = filepath.Join(dir, "config.yaml")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flags.Changed("data-dir") {
		cfg.DataDir = dataDir
	}
	if strict {
		cfg.Policy = params.Reject.String()
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Lookup("integrator") != nil && flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Lookup("steps") != nil && flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.Server.Addr = addr
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, terminal bool) (*zap.Logger, error) {
	path := cfg.LogFile
	if path == "" && terminal {
		path = filepath.Join(cfg.DataDir, "quanticle.log")
	}
	return logging.New(cfg.LogLevel, path)
}

// resolveParams starts from the configured parameters, applies a preset and
// then any explicitly set field flags.
func resolveParams(cmd *cobra.Command, cfg *config.Config, v params.Variant) (params.Parameters, error) {
	p, err := cfg.Params(v)
	if err != nil {
		return nil, err
	}
	if preset != "" {
		p = config.GetPreset(v.String(), preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %v (have %s)", preset, v,
				strings.Join(config.ListPresets(v.String()), ", "))
		}
	}

	known := make(map[string]bool)
	for _, f := range params.Fields(p) {
		known[f.Name] = true
	}
	for _, ff := range fieldFlags {
		if !known[ff.field] || !cmd.Flags().Changed(ff.flag) {
			continue
		}
		if p, err = params.Set(p, ff.field, *ff.value); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func variantArg(args []string, fallback params.Variant) (params.Variant, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	return params.ParseVariant(args[0])
}

func runLive(cmd *cobra.Command, args []string) error {
	v, err := variantArg(args, params.VariantProjectile)
	if err != nil {
		return err
	}
	if v == params.VariantSandbox {
		return runSandbox(cmd, nil)
	}
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	p, err := resolveParams(cmd, cfg, v)
	if err != nil {
		return err
	}
	return launch(cfg, viz.Options{
		Variant: v,
		Initial: map[params.Variant]params.Parameters{v: p},
	})
}

func runSandbox(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	id := sandbox.DefaultConfigID
	if len(args) > 0 {
		id = args[0]
	}
	return launch(cfg, viz.Options{Variant: params.VariantSandbox, ConfigID: id})
}

func launch(cfg *config.Config, opts viz.Options) error {
	policy, err := cfg.ValidationPolicy()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer log.Sync()

	st := storage.New(cfg.DataDir)
	opts.Configs = st.Configs()
	opts.Policy = policy
	opts.Integrator = cfg.Integrator
	opts.FPS = cfg.FPS
	opts.Theme = cfg.Theme
	opts.Log = log
	return viz.Run(opts)
}

func configureSandbox(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	id := sandbox.DefaultConfigID
	if len(args) > 0 {
		id = args[0]
	}

	st := storage.New(cfg.DataDir)
	saved, err := st.LoadConfig(cmd.Context(), id)
	if errors.Is(err, dynamo.ErrNotFound) {
		saved, err = sandbox.DefaultConfig(), nil
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("shape") {
		if saved.Shape, err = dynamo.ParseShape(bodyShape); err != nil {
			return err
		}
	}
	if flags.Changed("mass") {
		saved.Mass = bodyMass
	}
	if flags.Changed("gravity") {
		saved.Gravity = gravity
	}
	if flags.Changed("color") {
		saved.Color = color
	}
	if err := saved.Validate(); err != nil {
		return err
	}
	if err := st.SaveConfig(id, saved); err != nil {
		return err
	}

	fmt.Printf("saved sandbox config %s: shape=%s mass=%.2f gravity=%v color=%s\n",
		id, saved.Shape, saved.Mass, saved.Gravity, saved.Color)
	return nil
}

func runRecord(cmd *cobra.Command, args []string) error {
	v, err := params.ParseVariant(args[0])
	if err != nil {
		return err
	}
	if v == params.VariantSandbox {
		return fmt.Errorf("run: sandbox runs are interactive only")
	}
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	policy, err := cfg.ValidationPolicy()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	p, err := resolveParams(cmd, cfg, v)
	if err != nil {
		return err
	}
	if p, err = params.Normalize(p, policy); err != nil {
		return err
	}

	info := storage.RunInfo{Params: p, Dt: motion.Dt}
	if v == params.VariantPendulum {
		info.Integrator = cfg.Integrator
	}
	model, err := motion.New(p, motion.Options{Integrator: info.Integrator})
	if err != nil {
		return err
	}

	rec := sim.NewRecorder(model)
	recorded := metrics.ForParams(p)
	for _, m := range recorded {
		rec.AddMetric(m)
	}

	start := time.Now()
	result, err := rec.Run(cmd.Context(), sim.RunConfig{Steps: cfg.Steps, ValidateState: true})
	if err != nil {
		return err
	}
	log.Info("run finished",
		zap.Stringer("variant", v),
		zap.Int("steps", result.StepsTaken),
		zap.Bool("terminal", result.Terminal),
		zap.Duration("elapsed", time.Since(start)))

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(info, result)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("steps: %d (%.2fs simulated)\n", result.StepsTaken, float64(result.StepsTaken)*motion.Dt)
	if result.Terminal {
		fmt.Println("terminal: yes")
	}
	for _, m := range recorded {
		fmt.Printf("%s: %.4f\n", m.Name(), result.Metrics[m.Name()])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIANT\tTIME\tSTEPS\tDT\tINTEG\tTERMINAL")
	for _, run := range runs {
		integ := run.Integrator
		if integ == "" {
			integ = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%s\t%v\n",
			run.ID,
			run.Variant,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			integ,
			run.Terminal,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("variant: %s\n", meta.Variant)
	fmt.Printf("samples: %d\n\n", len(samples))

	type series struct {
		caption string
		value   func(dynamo.Sample) float64
	}
	var plots []series
	if meta.Variant == params.VariantPendulum.String() {
		plots = []series{
			{"theta (deg)", func(s dynamo.Sample) float64 {
				if a, ok := s.Readout.(dynamo.AngleReadout); ok {
					return a.Theta * 180 / math.Pi
				}
				return 0
			}},
			{"energy (J)", func(s dynamo.Sample) float64 { return s.Energy }},
		}
	} else {
		plots = []series{
			{"x (m)", func(s dynamo.Sample) float64 { return s.Position.X() }},
			{"y (m)", func(s dynamo.Sample) float64 { return s.Position.Y() }},
			{"z (m)", func(s dynamo.Sample) float64 { return s.Position.Z() }},
		}
	}

	for _, p := range plots {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = p.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	return storage.New(cfg.DataDir).ExportJSON(os.Stdout, args[0])
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pl, err := export.ParsePlane(plane)
	if err != nil {
		return err
	}
	samples, err := storage.New(cfg.DataDir).LoadSamples(args[0])
	if err != nil {
		return err
	}
	return export.WriteTrajectory(os.Stdout, samples, pl, stroke)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	var data []float64
	var expected float64
	switch meta.Variant {
	case params.VariantPendulum.String():
		for _, s := range samples {
			if a, ok := s.Readout.(dynamo.AngleReadout); ok {
				data = append(data, a.Theta)
			}
		}
		expected = math.Sqrt(physics.StandardGravity/meta.Params["length"]) / (2 * math.Pi)
	case params.VariantSHM.String():
		for _, s := range samples {
			data = append(data, s.Position.X())
		}
		expected = meta.Params["frequency"]
	default:
		return fmt.Errorf("analyze: %s runs are not periodic", meta.Variant)
	}

	dt := meta.Dt
	if dt <= 0 {
		dt = motion.Dt
	}
	freq := analysis.DominantFrequency(data, dt)
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("dominant frequency: %.4f Hz\n", freq)
	fmt.Printf("expected: %.4f Hz\n", expected)
	if freq > 0 {
		fmt.Printf("period: %.4f s\n\n", 1/freq)
	}

	ps := analysis.PowerSpectrum(data)
	if len(ps) > 80 {
		ps = ps[:80]
	}
	if len(ps) > 1 {
		fmt.Println(asciigraph.Plot(ps,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum"),
		))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	variants := []string{"projectile", "pendulum", "shm"}
	if len(args) > 0 {
		v, err := params.ParseVariant(args[0])
		if err != nil {
			return err
		}
		variants = []string{v.String()}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tPRESET\tPARAMS")
	for _, v := range variants {
		for _, name := range config.ListPresets(v) {
			p := config.GetPreset(v, name)
			fields := make([]string, 0, 3)
			for _, f := range params.Fields(p) {
				fields = append(fields, fmt.Sprintf("%s=%g%s", f.Name, f.Value, f.Unit))
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", v, name, strings.Join(fields, " "))
		}
	}
	return w.Flush()
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	policy, err := cfg.ValidationPolicy()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Server.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Server.SentryDSN}); err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Options{
		Addr:         cfg.Server.Addr,
		TickInterval: cfg.Server.TickInterval,
		Configs:      storage.New(cfg.DataDir).Configs(),
		Policy:       policy,
		Integrator:   cfg.Integrator,
		Log:          log,
	})
	return srv.ListenAndServe(ctx)
}
