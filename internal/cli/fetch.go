package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"battery-arbitrage/internal/app"
)

const dateLayout = "2006-01-02"

var (
	fetchFrom string
	fetchTo   string
	fetchOut  string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download hourly spot prices into the data directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := time.Parse(dateLayout, fetchFrom)
		if err != nil {
			return fmt.Errorf("--from: %w", err)
		}
		to := from
		if fetchTo != "" {
			if to, err = time.Parse(dateLayout, fetchTo); err != nil {
				return fmt.Errorf("--to: %w", err)
			}
		}

		path, n, err := getApp().Fetch(cmd.Context(), app.FetchOptions{From: from, To: to, Out: fetchOut})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d prices to %s\n", n, path)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchFrom, "from", "", "First day to download (YYYY-MM-DD)")
	fetchCmd.Flags().StringVar(&fetchTo, "to", "", "Last day to download, inclusive (default --from)")
	fetchCmd.Flags().StringVar(&fetchOut, "out", "", "Output JSON path (default inside data.dir)")
	_ = fetchCmd.MarkFlagRequired("from")
}
