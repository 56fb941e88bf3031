package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/mdgen/pkg/types"
)

var websiteCmd = &cobra.Command{
	Use:   "website [url]",
	Short: "Convert a web page to Markdown",
	Long: `Website converts a web page to Markdown. The local method fetches and
parses the page itself; the cloud method asks the remote article API for the
page's content objects.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversion(cmd, types.KindWebsite, args[0])
	},
}

func init() {
	addConversionFlags(websiteCmd)
	rootCmd.AddCommand(websiteCmd)
}
