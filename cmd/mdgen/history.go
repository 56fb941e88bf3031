package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdgen/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs",
	Long: `History lists recent conversions, newest first, with their input, method,
and outcome. Runs are recorded by the pdf, website, and serve commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, _ := cmd.Flags().GetInt("limit")

		store, err := history.NewStore(pipelineConfig().History)
		if err != nil {
			return err
		}
		defer store.Close()

		return store.Report(context.Background(), os.Stdout, n)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 0, "maximum runs to list (0 = use default)")

	rootCmd.AddCommand(historyCmd)
}
