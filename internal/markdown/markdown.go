// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markdown renders the shared Markdown fragments emitted by all four
// conversion pipelines: pipe-tables, fenced code blocks, and image references.
// Fragment layouts are fixed so that downstream consumers can treat output
// interchangeably regardless of which backend produced it.
package markdown

import (
	"fmt"
	"strings"
)

// PipeTable renders rows as a Markdown pipe-table. When header is true the
// first row is promoted to the header and followed by a separator row whose
// dash run matches each header cell's length. Ragged rows render raggedly;
// column counts are not enforced.
func PipeTable(rows [][]string, header bool) string {
	if len(rows) == 0 {
		return ""
	}
	var b strings.Builder
	for i, row := range rows {
		writeRow(&b, row)
		if i == 0 && header {
			seps := make([]string, len(row))
			for j, cell := range row {
				seps[j] = strings.Repeat("-", len(cell))
			}
			writeRow(&b, seps)
		}
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

// Fence wraps text in a fenced code block, verbatim. Empty text produces an
// empty block.
func Fence(text string) string {
	return "```\n" + text + "\n```\n"
}

// Image renders an image reference with the given alt text.
func Image(alt, url string) string {
	return fmt.Sprintf("![%s](%s)", alt, url)
}

// LinkBullet renders one Markdown link list item, labeled with its own URL.
func LinkBullet(url string) string {
	return fmt.Sprintf("- [%s](%s)\n", url, url)
}
