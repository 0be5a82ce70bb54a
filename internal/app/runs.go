package app

import (
	"context"
	"fmt"
	"text/tabwriter"
)

// Runs prints the most recent recorded runs, newest first.
func (a *App) Runs(ctx context.Context, limit int) error {
	rec, err := a.openRecorder()
	if err != nil {
		return err
	}
	defer rec.Close()

	runs, err := rec.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(a.Out, "no recorded runs")
		return nil
	}

	tw := tabwriter.NewWriter(a.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tSOURCE\tBATTERY\tDAYS\tCYCLES\tTOTAL PROFIT\tAVG PROFIT")
	for _, r := range runs {
		b := r.Battery
		fmt.Fprintf(tw, "%s\t%s\t%s\t%g MWh/%g MW/%g/%dh\t%d\t%d\t%.2f\t%.2f\n",
			r.ID,
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.Source,
			b.CapacityMWh, b.PowerMW, b.Efficiency, b.MaxGapHours,
			r.DaysEvaluated,
			r.CycleCount,
			r.TotalProfit,
			r.AverageProfit,
		)
	}
	return tw.Flush()
}
