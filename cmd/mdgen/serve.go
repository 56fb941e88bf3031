package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdgen/internal/convert"
	"github.com/pdiddy/mdgen/internal/history"
	"github.com/pdiddy/mdgen/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion form over HTTP",
	Long: `Serve starts a small web interface: upload a PDF or enter a URL, pick the
extraction method, and download the generated Markdown. Conversions run
through the same pipelines as the pdf and website commands and are recorded
in history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := pipelineConfig()
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		store, err := history.NewStore(cfg.History)
		if err != nil {
			return err
		}
		defer store.Close()

		svc := convert.NewService(cfg, store, os.Stderr)
		srv := server.New(svc, cfg.Server)

		fmt.Fprintf(os.Stderr, "mdgen listening on %s\n", cfg.Server.Addr)
		return srv.ListenAndServe()
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")

	rootCmd.AddCommand(serveCmd)
}
