// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package weblocal

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pdiddy/mdgen/internal/markdown"
	"github.com/pdiddy/mdgen/pkg/types"
)

// Convert fetches and parses the page at pageURL and assembles the Markdown
// document. Any fetch or parse failure aborts with no partial output.
func Convert(client *http.Client, pageURL string, cfg types.HTTPConfig) (string, error) {
	doc, err := Fetch(client, pageURL, cfg)
	if err != nil {
		return "", err
	}
	page, err := Parse(doc, pageURL)
	if err != nil {
		return "", err
	}
	return Assemble(page), nil
}

// Assemble renders a normalized Page: title line, Text Content, Images,
// Links, and Tables sections, in that order. A table's first row is promoted
// to the header only when the table has more than one row.
func Assemble(page *Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Extracted Content from %s\n\n", page.URL)

	b.WriteString("## Text Content\n\n")
	for _, el := range page.Elements {
		if el.Kind == types.ElementText {
			b.WriteString(el.Text)
			b.WriteString("\n\n")
		}
	}

	b.WriteString("## Images\n\n")
	for _, el := range page.Elements {
		if el.Kind == types.ElementImage {
			b.WriteString(markdown.Image("Image", el.Image.URL))
			b.WriteString("\n\n")
		}
	}

	b.WriteString("## Links\n\n")
	for _, link := range page.Links {
		b.WriteString(markdown.LinkBullet(link))
	}
	b.WriteString("\n")

	b.WriteString("## Tables\n\n")
	table := 0
	for _, el := range page.Elements {
		if el.Kind != types.ElementTable {
			continue
		}
		table++
		fmt.Fprintf(&b, "### Table %d\n\n", table)
		b.WriteString(markdown.PipeTable(el.Rows, len(el.Rows) > 1))
		b.WriteString("\n")
	}

	return b.String()
}
