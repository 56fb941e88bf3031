// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webcloud

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/mdgen/internal/markdown"
	"github.com/pdiddy/mdgen/pkg/types"
)

// Convert runs the cloud-page pipeline for pageURL and returns the assembled
// Markdown document.
func Convert(ctx context.Context, httpClient *http.Client, pageURL string, cfg types.PageCloudConfig) (string, error) {
	objects, err := NewClient(cfg, httpClient).Extract(ctx, pageURL)
	if err != nil {
		return "", err
	}
	return Assemble(objects), nil
}

// Assemble renders the API's content objects in returned order. Images and
// Tables sections appear only when an object carries them.
func Assemble(objects []ArticleObject) string {
	var b strings.Builder
	for _, obj := range objects {
		title := obj.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&b, "# %s\n\n", title)
		fmt.Fprintf(&b, "%s\n\n", obj.Text)

		if len(obj.Images) > 0 {
			b.WriteString("## Images\n\n")
			for _, img := range obj.Images {
				caption := img.Caption
				if caption == "" {
					caption = "Image"
				}
				b.WriteString(markdown.Image(caption, img.URL))
				b.WriteString("\n\n")
			}
		}

		if len(obj.Tables) > 0 {
			b.WriteString("## Tables\n\n")
			for _, table := range obj.Tables {
				if len(table.Rows) == 0 {
					continue
				}
				b.WriteString(markdown.PipeTable(table.Rows, true))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
