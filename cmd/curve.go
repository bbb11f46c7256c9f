package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/solarsim/core/solar"
)

var curveAge int

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Print the degradation curve at a plant age",
	RunE: func(cmd *cobra.Command, args []string) error {
		if curveAge < 0 || curveAge > solar.MaxAge {
			return fmt.Errorf("age must be within [0, %d]", solar.MaxAge)
		}
		c := solar.NewCurve()
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "age=%d daily_kwh=%s cumulative_kwh=%s\n",
			curveAge, solar.DailyOutput(curveAge), c.Cumulative(curveAge))
		return err
	},
}

func init() {
	curveCmd.Flags().IntVar(&curveAge, "age", 0, "plant age in days")
	rootCmd.AddCommand(curveCmd)
}
