package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"rcsim/internal/circuit"
	"rcsim/internal/config"
	"rcsim/internal/display"
	"rcsim/internal/sim"
	"rcsim/internal/storage"
	"rcsim/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string

	emf         float64
	resistance  float64
	capacitance float64
	closed      bool
	duration    float64
	record      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rcsim",
		Short: "interactive RC circuit charge simulator",
		RunE:  runInteractive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rcsim", "data directory")
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().StringVar(&preset, "preset", "", "start from a named preset")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and plot the charge curve",
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&emf, "emf", circuit.DefaultEMF, "emf (V)")
	runCmd.Flags().Float64Var(&resistance, "resistance", circuit.DefaultResistance, "resistance (Ω)")
	runCmd.Flags().Float64Var(&capacitance, "capacitance", circuit.DefaultCapacitance, "capacitance (µF)")
	runCmd.Flags().BoolVar(&closed, "closed", true, "switch closed (charging)")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration (s)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
	runCmd.Flags().BoolVar(&record, "record", false, "save the run under the data directory")

	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "cycle through the demonstration presets",
		RunE:  runDemo,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded charge trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata and trace as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list the named presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEMF\tRESISTANCE\tCAPACITANCE\tSWITCH")
			for _, name := range config.PresetOrder {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					name,
					display.EMF(cfg.EMF),
					display.Resistance(cfg.Resistance),
					display.Capacitance(cfg.Capacitance),
					display.Switch(cfg.SwitchClosed),
				)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, demoCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadSetup resolves preset, then config file, into a Config. Flags the
// caller already applied win by being read afterwards.
func loadSetup() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	return cfg, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadSetup()
	if err != nil {
		return err
	}

	state := circuit.New()
	if err := cfg.Apply(state); err != nil {
		return err
	}
	return tui.Run(state, sim.New(state))
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadSetup()
	if err != nil {
		return err
	}
	// Without a preset or config file the flags are the setup; with one,
	// only explicitly passed flags override it.
	bare := preset == "" && configFile == ""
	if bare || cmd.Flags().Changed("emf") {
		cfg.EMF = emf
	}
	if bare || cmd.Flags().Changed("resistance") {
		cfg.Resistance = resistance
	}
	if bare || cmd.Flags().Changed("capacitance") {
		cfg.Capacitance = capacitance
	}
	if bare || cmd.Flags().Changed("closed") {
		cfg.SwitchClosed = closed
	}
	if bare || cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}

	state := circuit.New()
	if err := cfg.Apply(state); err != nil {
		return err
	}

	simulator := sim.New(state)
	recorder := storage.NewRecorder()
	simulator.AddObserver(recorder)

	if err := simulator.Run(context.Background(), cfg.Duration); err != nil {
		return err
	}

	snap := state.Snapshot()
	fmt.Printf("τ = %s   switch %s   final charge %s\n\n",
		display.TimeConstant(snap.TimeConstant),
		display.Switch(snap.SwitchClosed),
		display.Charge(snap.ChargeLevel),
	)

	graph := asciigraph.Plot(recorder.Charges(),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Caption("charge level (%) vs ticks"),
	)
	fmt.Println(graph)

	if record {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(snap, sim.TickSeconds, cfg.Duration, recorder.Trace())
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	fmt.Println("RC Circuit Simulator - Demo Mode")
	fmt.Println("================================")

	for _, name := range config.PresetOrder {
		cfg := config.GetPreset(name)

		fmt.Printf("\npreset %q\n", name)
		fmt.Printf("  EMF: %s\n", display.EMF(cfg.EMF))
		fmt.Printf("  Resistance: %s\n", display.Resistance(cfg.Resistance))
		fmt.Printf("  Capacitance: %s\n", display.Capacitance(cfg.Capacitance))
		fmt.Printf("  Switch: %s\n", display.Switch(cfg.SwitchClosed))

		state := circuit.New()
		if err := cfg.Apply(state); err != nil {
			return err
		}
		if !cfg.SwitchClosed {
			// Start the discharging presets from a full capacitor so the
			// segment shows a curve rather than a flat zero line.
			state.SetChargeLevel(100.0)
		}

		simulator := sim.New(state)
		recorder := storage.NewRecorder()
		simulator.AddObserver(recorder)

		if err := simulator.Run(context.Background(), 3.0); err != nil {
			return err
		}

		snap := state.Snapshot()
		fmt.Printf("  τ = %s, charge after 3 s: %s\n",
			display.TimeConstant(snap.TimeConstant), display.Charge(snap.ChargeLevel))
		fmt.Println(asciigraph.Plot(recorder.Charges(),
			asciigraph.Height(6),
			asciigraph.Width(60),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(100),
		))
	}

	fmt.Println("\ndemo complete")
	return nil
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
	fmt.Fprintln(w, "ID\tTIME\tEMF\tR\tC\tSWITCH\tτ\tFINAL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			display.EMF(run.EMF),
			display.Resistance(run.Resistance),
			display.Capacitance(run.Capacitance),
			display.Switch(run.SwitchClosed),
			display.TimeConstant(run.TimeConstant),
			display.Charge(run.FinalCharge),
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

	charges := make([]float64, len(trace))
	for i, s := range trace {
		charges[i] = s.Charge
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("τ = %s, %d samples\n\n", display.TimeConstant(meta.TimeConstant), len(trace))
	fmt.Println(asciigraph.Plot(charges,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Caption("charge level (%)"),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta  *storage.RunMetadata `json:"metadata"`
		Trace []storage.Sample     `json:"trace"`
	}{meta, trace}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
