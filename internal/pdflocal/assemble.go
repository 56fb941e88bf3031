// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdflocal

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/mdgen/internal/markdown"
	"github.com/pdiddy/mdgen/internal/rehost"
	"github.com/pdiddy/mdgen/pkg/types"
)

// Document is the normalized extraction result for one local document:
// image, text, and table elements in backend order, ready for assembly.
type Document struct {
	// Name is the source filename used in the title line.
	Name string

	// Elements holds image elements (page order), then one text element per
	// page, then table elements in document order.
	Elements []types.Element

	// TableErr records a table-extraction failure. It degrades the Tables
	// section to a single failure line; the rest of the document assembles
	// normally.
	TableErr error
}

// Convert runs the local extractors over the PDF at pdfPath, normalizes their
// results, and assembles the Markdown document. Extracted image files live in
// a temporary directory scoped to this call; each is removed immediately
// after its upload is attempted.
func Convert(ctx context.Context, pdfPath string, ex Extractors, up rehost.Uploader, logw io.Writer) (string, error) {
	tmpDir, err := os.MkdirTemp("", "mdgen-images-")
	if err != nil {
		return "", fmt.Errorf("creating image temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	doc := Document{Name: filepath.Base(pdfPath)}

	images, err := ex.Image.Images(pdfPath, tmpDir)
	if err != nil {
		return "", err
	}
	for _, ref := range images {
		doc.Elements = append(doc.Elements, types.ImageElement(ref))
	}

	pages, err := ex.Text.PageTexts(pdfPath)
	if err != nil {
		return "", err
	}
	for _, page := range pages {
		doc.Elements = append(doc.Elements, types.TextElement(page))
	}

	tables, err := ex.Table.Tables(pdfPath)
	if err != nil {
		doc.TableErr = err
	}
	for _, rows := range tables {
		doc.Elements = append(doc.Elements, types.TableElement(rows))
	}

	return Assemble(ctx, doc, up, logw), nil
}

// Assemble renders a normalized Document as Markdown: title line, then the
// Extracted Images, Extracted Text, and Extracted Tables sections, in that
// order. Identical input yields byte-identical output.
func Assemble(ctx context.Context, doc Document, up rehost.Uploader, logw io.Writer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Extracted Content from %s\n", doc.Name)

	b.WriteString("\n## Extracted Images\n")
	for _, el := range doc.Elements {
		if el.Kind != types.ElementImage {
			continue
		}
		ref := el.Image
		url := ref.URL
		if url == "" && ref.Path != "" {
			url = uploadAndRemove(ctx, up, ref.Path, logw)
		}
		if url != "" {
			fmt.Fprintf(&b, "![Image page %d - %d](%s)\n", ref.Page, ref.Index, url)
		} else {
			fmt.Fprintf(&b, "\n**[Warning: Failed to upload image (page %d, index %d) to S3]**\n", ref.Page, ref.Index)
		}
	}

	b.WriteString("\n## Extracted Text\n")
	page := 0
	for _, el := range doc.Elements {
		if el.Kind != types.ElementText {
			continue
		}
		page++
		fmt.Fprintf(&b, "\n### Page %d\n", page)
		b.WriteString(markdown.Fence(el.Text))
	}

	b.WriteString("\n## Extracted Tables\n")
	if doc.TableErr != nil {
		fmt.Fprintf(&b, "\nFailed to process tables: %v\n", doc.TableErr)
		return b.String()
	}
	table := 0
	for _, el := range doc.Elements {
		if el.Kind != types.ElementTable {
			continue
		}
		table++
		fmt.Fprintf(&b, "\n### Table %d\n", table)
		b.WriteString(markdown.PipeTable(el.Rows, true))
	}

	return b.String()
}

// uploadAndRemove re-hosts one extracted image and deletes the local file
// regardless of the outcome. Returns the public URL, or "" when the upload
// was skipped or failed.
func uploadAndRemove(ctx context.Context, up rehost.Uploader, path string, logw io.Writer) string {
	url, err := up.Upload(ctx, path)
	os.Remove(path)
	if err != nil {
		fmt.Fprintf(logw, "image re-hosting unavailable for %s: %v\n", filepath.Base(path), err)
		return ""
	}
	return url
}
