// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdflocal

import (
	"reflect"
	"testing"

	"github.com/ledongthuc/pdf"
)

func row(words ...pdf.Text) *pdf.Row {
	return &pdf.Row{Content: pdf.TextHorizontal(words)}
}

func word(s string, x, w float64) pdf.Text {
	return pdf.Text{S: s, X: x, W: w}
}

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name string
		row  *pdf.Row
		want []string
	}{
		{
			name: "wide gaps split cells",
			row:  row(word("Name", 10, 30), word("Qty", 100, 20), word("Price", 200, 30)),
			want: []string{"Name", "Qty", "Price"},
		},
		{
			name: "adjacent words stay in one cell",
			row:  row(word("unit", 10, 20), word(" price", 31, 30)),
			want: []string{"unit price"},
		},
		{
			name: "mixed",
			row:  row(word("total", 10, 25), word(" due", 36, 20), word("42", 150, 10)),
			want: []string{"total due", "42"},
		},
		{
			name: "empty row",
			row:  row(),
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitRow(tt.row); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitRow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGroupTables(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
		want [][][]string
	}{
		{
			name: "run of matching rows forms a table",
			rows: [][]string{
				{"prose line"},
				{"A", "B"},
				{"1", "2"},
				{"3", "4"},
				{"more prose"},
			},
			want: [][][]string{{{"A", "B"}, {"1", "2"}, {"3", "4"}}},
		},
		{
			name: "single table-like row is discarded",
			rows: [][]string{{"A", "B"}, {"prose"}},
			want: nil,
		},
		{
			name: "column count change splits runs",
			rows: [][]string{
				{"A", "B"},
				{"1", "2"},
				{"x", "y", "z"},
				{"p", "q", "r"},
			},
			want: [][][]string{
				{{"A", "B"}, {"1", "2"}},
				{{"x", "y", "z"}, {"p", "q", "r"}},
			},
		},
		{
			name: "no rows",
			rows: nil,
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := groupTables(tt.rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("groupTables() = %v, want %v", got, tt.want)
			}
		})
	}
}
