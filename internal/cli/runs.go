package cli

import "github.com/spf13/cobra"

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded simulation runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Runs(cmd.Context(), runsLimit)
	},
}

func init() {
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "Maximum number of runs to list")
}
