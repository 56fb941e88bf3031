// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfcloud

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/pdiddy/mdgen/internal/markdown"
	"github.com/pdiddy/mdgen/internal/rehost"
	"github.com/pdiddy/mdgen/pkg/types"
)

// Convert submits the PDF to the extraction service, downloads the result
// bundle, and renders it as Markdown. Missing credentials, a remote-service
// failure, or an invalid bundle all fail the pipeline with no partial output.
func Convert(ctx context.Context, pdfPath string, cfg types.DocumentCloudConfig, httpClient *http.Client, up rehost.Uploader, logw io.Writer) (string, error) {
	client := NewClient(cfg, httpClient)

	zipPath, err := client.Extract(ctx, pdfPath)
	if err != nil {
		fmt.Fprintf(logw, "cloud document extraction failed: %v\n", err)
		return "", err
	}

	bundle, err := OpenBundle(zipPath)
	if err != nil {
		fmt.Fprintf(logw, "cloud document extraction failed: %v\n", err)
		return "", err
	}

	return Assemble(ctx, bundle, up), nil
}

// Assemble renders a parsed bundle: manifest text and table elements in
// manifest order, then spreadsheet tables, then re-hosted figures. A figure
// whose upload fails or is skipped falls back to its local filesystem path.
func Assemble(ctx context.Context, bundle *Bundle, up rehost.Uploader) string {
	var b strings.Builder
	b.WriteString("# Extracted PDF Data (Enterprise)\n\n")

	for _, el := range bundle.Elements {
		switch el.Kind {
		case types.ElementText:
			fmt.Fprintf(&b, "## Text Element\n%s\n\n", el.Text)
		case types.ElementTable:
			b.WriteString("## Table Element\n")
			b.WriteString(markdown.PipeTable(el.Rows, true))
			b.WriteString("\n")
		}
	}

	for _, sheet := range bundle.Sheets {
		fmt.Fprintf(&b, "## Table from %s\n", sheet.File)
		b.WriteString(markdown.PipeTable(sheet.Rows, true))
		b.WriteString("\n")
	}

	if len(bundle.Figures) > 0 {
		b.WriteString("## Images\n\n")
		for _, fig := range bundle.Figures {
			ref := fig
			if url, err := up.Upload(ctx, fig); err == nil {
				ref = url
			}
			fmt.Fprintf(&b, "![Figure](%s)\n\n", ref)
		}
	}

	return b.String()
}
