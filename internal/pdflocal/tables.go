// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdflocal

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Whitespace-detection parameters. A horizontal gap wider than maxCellGap
// points splits a row into cells; runs of at least minRows consecutive rows
// with the same cell count (at least minCols) form a table.
const (
	maxCellGap = 18.0
	minRows    = 2
	minCols    = 2
)

// GapTableExtractor detects tables from word positions: columns appear as
// consistent horizontal gaps across consecutive text rows.
type GapTableExtractor struct{}

// Tables scans every page and returns detected tables in document order.
func (GapTableExtractor) Tables(pdfPath string) ([][][]string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	var tables [][][]string
	total := r.NumPage()
	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading page %d of %s: %w", pageIndex, pdfPath, err)
		}

		cells := make([][]string, 0, len(rows))
		for _, row := range rows {
			cells = append(cells, splitRow(row))
		}
		tables = append(tables, groupTables(cells)...)
	}
	return tables, nil
}

// splitRow clusters a row's words into cells, breaking where the horizontal
// gap between adjacent words exceeds maxCellGap.
func splitRow(row *pdf.Row) []string {
	var (
		cells []string
		cur   strings.Builder
		endX  float64
	)
	for i, word := range row.Content {
		if i > 0 && word.X-endX > maxCellGap {
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		}
		cur.WriteString(word.S)
		endX = word.X + word.W
	}
	if cur.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cur.String()))
	}
	return cells
}

// groupTables collects maximal runs of consecutive rows that share a cell
// count of at least minCols. Runs shorter than minRows are discarded as
// ordinary text lines.
func groupTables(rows [][]string) [][][]string {
	var tables [][][]string
	var run [][]string

	flush := func() {
		if len(run) >= minRows {
			tables = append(tables, run)
		}
		run = nil
	}

	for _, cells := range rows {
		if len(cells) < minCols {
			flush()
			continue
		}
		if len(run) > 0 && len(run[0]) != len(cells) {
			flush()
		}
		run = append(run, cells)
	}
	flush()
	return tables
}
