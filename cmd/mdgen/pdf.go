package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdgen/internal/convert"
	"github.com/pdiddy/mdgen/internal/history"
	"github.com/pdiddy/mdgen/pkg/types"
)

var pdfCmd = &cobra.Command{
	Use:   "pdf [file]",
	Short: "Convert a PDF document to Markdown",
	Long: `Pdf converts a PDF file to Markdown. The local method extracts text,
images, and tables with open-source parsing; the cloud method submits the
document to the remote extraction service and assembles its result bundle.
Extracted images are re-hosted to object storage when credentials are
configured.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConversion(cmd, types.KindPDF, args[0])
	},
}

func init() {
	addConversionFlags(pdfCmd)
	rootCmd.AddCommand(pdfCmd)
}

func addConversionFlags(cmd *cobra.Command) {
	cmd.Flags().String("method", "local", "extraction method: local or cloud")
	cmd.Flags().String("out", "", "write Markdown to this file instead of stdout (a .yaml run sidecar is written beside it)")
}

func runConversion(cmd *cobra.Command, kind types.InputKind, source string) error {
	methodFlag, _ := cmd.Flags().GetString("method")
	method := types.ExtractionMethod(methodFlag)
	if method != types.MethodLocal && method != types.MethodCloud {
		return fmt.Errorf("unknown method %q: use local or cloud", methodFlag)
	}
	outPath, _ := cmd.Flags().GetString("out")

	cfg := pipelineConfig()
	store, err := history.NewStore(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	svc := convert.NewService(cfg, store, os.Stderr)
	md, run, err := svc.Convert(context.Background(), convert.Request{
		Kind:   kind,
		Method: method,
		Source: source,
	})
	if err != nil {
		return err
	}

	if outPath != "" {
		if _, err := convert.Save(md, outPath, run); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(md), outPath)
		return nil
	}

	fmt.Print(md)
	return nil
}
