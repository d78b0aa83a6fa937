package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/icrf-tools/icrlab/internal/config"
	"github.com/icrf-tools/icrlab/internal/export"
	"github.com/icrf-tools/icrlab/internal/plasma"
	"github.com/icrf-tools/icrlab/internal/scan"
	"github.com/icrf-tools/icrlab/internal/storage"
	"github.com/icrf-tools/icrlab/internal/viz"
)

var (
	dataDir    string
	current    float64
	freq       float64
	ionName    string
	ionZ       int
	ionA       int
	harmonic   int
	rMin       float64
	rMax       float64
	points     int
	maxN       int
	configFile string
	preset     string
	// search flags
	iMin      float64
	iMax      float64
	fMin      float64
	fMax      float64
	logFreq   bool
	targetMin float64
	targetMax float64
	iters     int64
	maxHits   int
	seed      int64
	xlsxFile  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "icrlab",
		Short: "ion cyclotron resonance layer calculator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".icrlab", "data directory")

	radiusCmd := &cobra.Command{
		Use:   "radius",
		Short: "compute the resonance layer radius",
		RunE:  runRadius,
	}
	addPhysicsFlags(radiusCmd)

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot the field profile and resonance layers",
		RunE:  runProfile,
	}
	addPhysicsFlags(profileCmd)
	addWindowFlags(profileCmd)

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "run a radial scan and save it",
		RunE:  runScan,
	}
	addPhysicsFlags(scanCmd)
	addWindowFlags(scanCmd)

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "random-search operating points hitting a target radius window",
		RunE:  runSearch,
	}
	searchCmd.Flags().Float64Var(&iMin, "i-min", 500, "coil current range low (A)")
	searchCmd.Flags().Float64Var(&iMax, "i-max", 2500, "coil current range high (A)")
	searchCmd.Flags().Float64Var(&fMin, "f-min", 20e6, "frequency range low (Hz)")
	searchCmd.Flags().Float64Var(&fMax, "f-max", 120e6, "frequency range high (Hz)")
	searchCmd.Flags().BoolVar(&logFreq, "log-freq", true, "sample frequency log-uniformly")
	searchCmd.Flags().Float64Var(&targetMin, "target-min", 2.0, "target window low (m)")
	searchCmd.Flags().Float64Var(&targetMax, "target-max", 3.0, "target window high (m)")
	searchCmd.Flags().Int64Var(&iters, "iters", 1_000_000, "samples to draw")
	searchCmd.Flags().IntVar(&maxHits, "max-hits", 100, "accepted samples to keep")
	searchCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	searchCmd.Flags().StringVar(&xlsxFile, "xlsx", "", "write results to xlsx file")
	searchCmd.Flags().StringVar(&ionName, "ion", "H", "ion species")
	searchCmd.Flags().IntVar(&harmonic, "harmonic", 1, "harmonic index")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run's profile to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportXLSXCmd := &cobra.Command{
		Use:   "export-xlsx [run_id] [file]",
		Short: "export a run to an xlsx workbook",
		Args:  cobra.ExactArgs(2),
		RunE:  exportXLSX,
	}

	ionsCmd := &cobra.Command{
		Use:   "ions",
		Short: "list built-in ion species",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tZ\tA\tMASS (kg)")
			for _, ion := range plasma.ListSpecies() {
				fmt.Fprintf(w, "%s\t%d\t%d\t%.6e\n", ion.Name, ion.Z, ion.A, ion.Mass())
			}
			return w.Flush()
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list heating scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactive resonance explorer",
		RunE:  runExplore,
	}
	addPhysicsFlags(exploreCmd)
	addWindowFlags(exploreCmd)

	rootCmd.AddCommand(radiusCmd, profileCmd, scanCmd, searchCmd, listCmd, showCmd,
		exportJSONCmd, exportCSVCmd, exportXLSXCmd, ionsCmd, presetsCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&current, "current", 0, "toroidal coil current (A)")
	cmd.Flags().Float64Var(&freq, "freq", 0, "wave frequency (Hz)")
	cmd.Flags().StringVar(&ionName, "ion", "", "ion species name")
	cmd.Flags().IntVar(&ionZ, "z", 0, "ion atomic number (with --a)")
	cmd.Flags().IntVar(&ionA, "a", 0, "ion mass number (with --z)")
	cmd.Flags().IntVar(&harmonic, "harmonic", 1, "harmonic index")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&rMin, "r-min", config.DefaultRMin, "radial window low (m)")
	cmd.Flags().Float64Var(&rMax, "r-max", config.DefaultRMax, "radial window high (m)")
	cmd.Flags().IntVar(&points, "points", config.DefaultPoints, "scan sample count")
	cmd.Flags().IntVar(&maxN, "max-harmonic", config.DefaultMaxHarmonic, "highest harmonic to mark")
}

// resolveInputs merges preset, config file and flags into an operating
// point. Precedence: flags > config file > preset. With neither a
// preset nor a config file, the current, frequency and ion flags are
// required.
func resolveInputs(cmd *cobra.Command) (float64, float64, plasma.Ion, int, error) {
	cfg := config.DefaultConfig()
	haveSource := false

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return 0, 0, plasma.Ion{}, 0, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		// copy so flag overrides don't leak into the preset table
		c := *p
		cfg = &c
		haveSource = true
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return 0, 0, plasma.Ion{}, 0, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		haveSource = true
	}

	if cmd.Flags().Changed("current") {
		cfg.Device.CoilCurrent = current
	} else if !haveSource {
		return 0, 0, plasma.Ion{}, 0, fmt.Errorf("--current is required (or use --config/--preset)")
	}
	if cmd.Flags().Changed("freq") {
		cfg.Wave.Frequency = freq
	} else if !haveSource {
		return 0, 0, plasma.Ion{}, 0, fmt.Errorf("--freq is required (or use --config/--preset)")
	}
	if cmd.Flags().Changed("harmonic") {
		cfg.Harmonic = harmonic
	} else if !haveSource {
		return 0, 0, plasma.Ion{}, 0, fmt.Errorf("--harmonic is required (or use --config/--preset)")
	}
	if cmd.Flags().Changed("ion") {
		cfg.Ion = config.IonConfig{Species: ionName}
	} else if cmd.Flags().Changed("z") || cmd.Flags().Changed("a") {
		cfg.Ion = config.IonConfig{Z: ionZ, A: ionA}
	} else if !haveSource {
		return 0, 0, plasma.Ion{}, 0, fmt.Errorf("--ion or --z/--a is required (or use --config/--preset)")
	}
	if !cmd.Flags().Changed("r-min") && cfg.Device.RMin > 0 {
		rMin = cfg.Device.RMin
	}
	if !cmd.Flags().Changed("r-max") && cfg.Device.RMax > 0 {
		rMax = cfg.Device.RMax
	}
	if !cmd.Flags().Changed("points") && cfg.Scan.Points > 0 {
		points = cfg.Scan.Points
	}
	if !cmd.Flags().Changed("max-harmonic") && cfg.Scan.MaxHarmonic > 0 {
		maxN = cfg.Scan.MaxHarmonic
	}

	ion, err := cfg.ResolveIon()
	if err != nil {
		return 0, 0, plasma.Ion{}, 0, err
	}

	return cfg.Device.CoilCurrent, cfg.Wave.Frequency, ion, cfg.Harmonic, nil
}

func runRadius(cmd *cobra.Command, args []string) error {
	amps, f, ion, n, err := resolveInputs(cmd)
	if err != nil {
		return err
	}

	r, err := plasma.ResonanceRadius(amps, f, ion, n)
	if err != nil {
		return err
	}

	fmt.Printf("ion: %s (Z=%d, A=%d)\n", ion, ion.Z, ion.A)
	fmt.Printf("coil current: %g A\n", amps)
	fmt.Printf("frequency: %g Hz\n", f)
	fmt.Printf("harmonic: %d\n", n)
	fmt.Printf("R_c = %.9f m\n", r)
	return nil
}

func buildProfile(cmd *cobra.Command) (*scan.Profile, error) {
	amps, f, ion, _, err := resolveInputs(cmd)
	if err != nil {
		return nil, err
	}
	return scan.RadialProfile(scan.Params{
		Current:     amps,
		Frequency:   f,
		Ion:         ion,
		MaxHarmonic: maxN,
		RMin:        rMin,
		RMax:        rMax,
		Points:      points,
	})
}

func runProfile(cmd *cobra.Command, args []string) error {
	prof, err := buildProfile(cmd)
	if err != nil {
		return err
	}

	fmt.Println(viz.ProfileGraph(prof, 80, 12))
	fmt.Println()
	fmt.Print(viz.LayerTable(prof))
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	prof, err := buildProfile(cmd)
	if err != nil {
		return err
	}

	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	id, err := st.Save(prof)
	if err != nil {
		return err
	}

	fmt.Printf("run id: %s\n", id)
	fmt.Printf("samples: %d\n", len(prof.Radii))
	fmt.Print(viz.LayerTable(prof))
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	ion, err := plasma.Species(ionName)
	if err != nil {
		return err
	}

	fScale := scan.Linear
	if logFreq {
		fScale = scan.Log
	}

	cfg := scan.SearchConfig{
		Current:   scan.ParamSpec{Name: "I", Min: iMin, Max: iMax, Scale: scan.Linear},
		Frequency: scan.ParamSpec{Name: "f", Min: fMin, Max: fMax, Scale: fScale},
		Ion:       ion,
		Harmonic:  harmonic,
		Target:    scan.Window{Min: targetMin, Max: targetMax},
		Iters:     iters,
		MaxHits:   maxHits,
		Seed:      seed,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	res, err := scan.Search(ctx, cfg)
	if err != nil && res == nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("seed: %d\n", cfg.Seed)
	fmt.Printf("tried: %d in %v\n", res.Tried, elapsed)
	fmt.Printf("accepted: %d (rate %.4g)\n", res.Accepted, res.HitRate())

	if len(res.Hits) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NO\tI (A)\tF (MHz)\tR_C (m)")
		for i, h := range res.Hits {
			fmt.Fprintf(w, "%d\t%.1f\t%.3f\t%.6f\n", i+1, h.Current, h.Frequency/1e6, h.Radius)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if xlsxFile != "" {
		if err := export.SearchXLSX(xlsxFile, cfg, res); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", xlsxFile)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tION\tI (A)\tF (MHz)\tLAYERS\tAGE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%.3f\t%d\t%s\n",
			run.ID, run.Ion, run.CoilCurrent, run.Frequency/1e6,
			run.LayerCount, humanize.Time(run.Created()))
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	layers, err := meta.Layers()
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("saved: %s\n", meta.Created().Format("2006-01-02 15:04:05"))
	fmt.Printf("ion: %s (Z=%d, A=%d)\n", meta.Ion, meta.Z, meta.A)
	fmt.Printf("coil current: %g A\n", meta.CoilCurrent)
	fmt.Printf("frequency: %g Hz\n", meta.Frequency)
	fmt.Printf("samples: %d\n\n", meta.Points)
	for _, l := range layers {
		fmt.Printf("  n=%d  R_c = %.6f m\n", l.Harmonic, l.Radius)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	layers, err := meta.Layers()
	if err != nil {
		return err
	}
	radii, field, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}

	return export.WriteJSON(os.Stdout, export.RunData{
		ID:          meta.ID,
		Ion:         meta.Ion,
		CoilCurrent: meta.CoilCurrent,
		Frequency:   meta.Frequency,
		MaxHarmonic: meta.MaxHarmonic,
		Radii:       radii,
		Field:       field,
		Layers:      layers,
	})
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	radii, field, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"radius_m", "field_t"}); err != nil {
		return err
	}
	for i := range radii {
		row := []string{
			strconv.FormatFloat(radii[i], 'f', 6, 64),
			strconv.FormatFloat(field[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportXLSX(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	layers, err := meta.Layers()
	if err != nil {
		return err
	}
	radii, field, err := st.LoadProfile(args[0])
	if err != nil {
		return err
	}

	if err := export.ProfileXLSX(args[1], meta.ID, radii, field, layers, meta.CoilCurrent, meta.Frequency, meta.Ion); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[1])
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	amps, f, ion, n, err := resolveInputs(cmd)
	if err != nil {
		// the explorer is for poking around; fall back to the
		// reference operating point when nothing is given
		amps, f, n = config.DefaultCurrent, config.DefaultFrequency, config.DefaultHarmonic
		ion, _ = plasma.Species("H")
	}
	return viz.RunExplorer(amps, f, ion, n, rMin, rMax)
}
