package cli

import (
	"github.com/spf13/cobra"

	"battery-arbitrage/internal/app"
)

var (
	simDir        string
	simPatterns   []string
	simCapacity   float64
	simPower      float64
	simEfficiency float64
	simMaxGap     int
	simText       string
	simCSV        string
	simHourlyCSV  string
	simChart      string
	simRecord     bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Find the best charge/discharge cycle of every day and report monthly profit",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := getApp()
		cfg := a.Config

		if cmd.Flags().Changed("dir") {
			cfg.Data.Dir = simDir
		}
		if cmd.Flags().Changed("pattern") {
			cfg.Data.Patterns = simPatterns
		}

		var maxGap *int
		if cmd.Flags().Changed("max-gap") {
			maxGap = &simMaxGap
		}
		if err := a.OverrideBattery(simCapacity, simPower, simEfficiency, maxGap); err != nil {
			return err
		}

		for flag, dst := range map[string]*string{
			"text":       &cfg.Report.TextPath,
			"csv":        &cfg.Report.CSVPath,
			"hourly-csv": &cfg.Report.HourlyCSVPath,
			"chart":      &cfg.Report.ChartPath,
		} {
			if f := cmd.Flags().Lookup(flag); f.Changed {
				*dst = f.Value.String()
			}
		}

		_, err := a.Simulate(cmd.Context(), app.SimulateOptions{Record: simRecord})
		return err
	},
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simDir, "dir", "", "Directory with hourly price files (default from config)")
	f.StringSliceVar(&simPatterns, "pattern", nil, "Glob pattern(s) for price files, e.g. 'Tuulikutasu*.csv'")
	f.Float64Var(&simCapacity, "capacity", 0, "Battery capacity in MWh")
	f.Float64Var(&simPower, "power", 0, "Grid connection power in MW")
	f.Float64Var(&simEfficiency, "efficiency", 0, "Round-trip efficiency in (0, 1]")
	f.IntVar(&simMaxGap, "max-gap", 0, "Max hours between last charge and last discharge hour")
	f.StringVar(&simText, "text", "", "Also write the text report to this path")
	f.StringVar(&simCSV, "csv", "", "Write one row per cycle to this CSV path")
	f.StringVar(&simHourlyCSV, "hourly-csv", "", "Write one row per hour to this CSV path")
	f.StringVar(&simChart, "chart", "", "Write a PNG bar chart of monthly profit to this path")
	f.BoolVar(&simRecord, "record", false, "Store the run in the configured SQLite database")
}
