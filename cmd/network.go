package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kilianp07/solarsim/app"
	"github.com/kilianp07/solarsim/core/roster"
	"github.com/kilianp07/solarsim/core/simulator"
	"github.com/kilianp07/solarsim/core/solar"
	"github.com/kilianp07/solarsim/pkg/export"
)

var (
	plantsFile string
	days       int
	format     string
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Power plant network commands",
}

var networkSimulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate a network file without storing it",
	RunE:  runNetworkSimulate,
}

var networkLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Replace the stored network with a file",
	RunE:  runNetworkLoad,
}

var networkStateCmd = &cobra.Command{
	Use:   "state",
	Short: "Project the stored network T days ahead",
	RunE:  runNetworkState,
}

func init() {
	for _, c := range []*cobra.Command{networkSimulateCmd, networkLoadCmd} {
		c.Flags().StringVarP(&plantsFile, "file", "f", "", "JSON array of {name, age} plants")
		_ = c.MarkFlagRequired("file")
	}
	for _, c := range []*cobra.Command{networkSimulateCmd, networkStateCmd} {
		c.Flags().IntVarP(&days, "days", "t", 1, "number of days to project (T)")
		c.Flags().StringVar(&format, "format", string(export.FormatJSON), "output format: json or csv")
	}
	networkCmd.AddCommand(networkSimulateCmd, networkLoadCmd, networkStateCmd)
	rootCmd.AddCommand(networkCmd)
}

func runNetworkSimulate(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	file, err := os.Open(plantsFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", plantsFile, err)
	}
	defer func() { _ = file.Close() }()

	sim := simulator.New(roster.NewMemoryStore(nil), solar.NewCalculator(solar.NewCurve()))
	res, err := sim.UploadAndSimulate(cmd.Context(), days, file)
	if err != nil {
		return err
	}
	return export.WriteSimulation(cmd.OutOrStdout(), f, res)
}

func runNetworkLoad(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	file, err := os.Open(plantsFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", plantsFile, err)
	}
	defer func() { _ = file.Close() }()
	plants, err := simulator.ParsePlants(file)
	if err != nil {
		return err
	}

	sim, store, err := app.OpenSimulator(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	if err := sim.Load(cmd.Context(), plants); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "loaded %d plants into %s store\n", len(plants), cfg.Store.Type)
	return err
}

func runNetworkState(cmd *cobra.Command, args []string) error {
	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sim, store, err := app.OpenSimulator(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	outs, err := sim.NetworkState(cmd.Context(), days)
	if err != nil {
		return err
	}
	return export.WriteState(cmd.OutOrStdout(), f, outs)
}
