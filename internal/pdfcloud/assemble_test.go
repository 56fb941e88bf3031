// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfcloud

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/mdgen/pkg/types"
)

type fakeUploader struct {
	configured bool
	err        error
	calls      int
}

func (f *fakeUploader) Configured() bool { return f.configured }

func (f *fakeUploader) Upload(_ context.Context, path string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return "https://md-assets.s3.amazonaws.com/uploaded.png", nil
}

func TestAssembleManifestElements(t *testing.T) {
	bundle := &Bundle{
		Elements: []types.Element{
			types.TextElement("First paragraph."),
			types.TableElement([][]string{{"A", "B"}, {"1", "2"}}),
		},
	}
	got := Assemble(context.Background(), bundle, &fakeUploader{})

	if !strings.HasPrefix(got, "# Extracted PDF Data (Enterprise)\n\n") {
		t.Errorf("missing title in %q", got)
	}
	if !strings.Contains(got, "## Text Element\nFirst paragraph.\n\n") {
		t.Errorf("missing text element in %q", got)
	}
	if !strings.Contains(got, "## Table Element\n| A | B |\n| - | - |\n| 1 | 2 |\n\n") {
		t.Errorf("missing table element in %q", got)
	}
}

func TestAssembleSheetTables(t *testing.T) {
	bundle := &Bundle{
		Sheets: []SheetTable{
			{File: "table-1.xlsx", Rows: [][]string{{"Name", "Qty"}, {"ink", "3"}}},
		},
	}
	got := Assemble(context.Background(), bundle, &fakeUploader{})

	want := "## Table from table-1.xlsx\n| Name | Qty |\n| ---- | --- |\n| ink | 3 |\n\n"
	if !strings.Contains(got, want) {
		t.Errorf("Assemble() = %q, want fragment %q", got, want)
	}
}

func TestAssembleFiguresRehosted(t *testing.T) {
	up := &fakeUploader{configured: true}
	bundle := &Bundle{Figures: []string{"/tmp/bundle/figures/fig-0.png"}}

	got := Assemble(context.Background(), bundle, up)
	if !strings.Contains(got, "## Images\n\n![Figure](https://md-assets.s3.amazonaws.com/uploaded.png)\n\n") {
		t.Errorf("missing re-hosted figure in %q", got)
	}
	if up.calls != 1 {
		t.Errorf("upload calls = %d, want 1", up.calls)
	}
}

func TestAssembleFigureFallsBackToLocalPath(t *testing.T) {
	up := &fakeUploader{err: errors.New("object storage not configured")}
	bundle := &Bundle{Figures: []string{"/tmp/bundle/figures/fig-0.png"}}

	got := Assemble(context.Background(), bundle, up)
	if !strings.Contains(got, "![Figure](/tmp/bundle/figures/fig-0.png)\n\n") {
		t.Errorf("figure should fall back to local path, got %q", got)
	}
}

func TestAssembleNoFiguresNoImagesHeading(t *testing.T) {
	got := Assemble(context.Background(), &Bundle{}, &fakeUploader{})
	if strings.Contains(got, "## Images") {
		t.Errorf("empty bundle should not emit an Images heading, got %q", got)
	}
}

func TestAssembleIdempotent(t *testing.T) {
	bundle := &Bundle{
		Elements: []types.Element{types.TextElement("x")},
		Sheets:   []SheetTable{{File: "t.xlsx", Rows: [][]string{{"A"}, {"1"}}}},
	}
	first := Assemble(context.Background(), bundle, &fakeUploader{})
	second := Assemble(context.Background(), bundle, &fakeUploader{})
	if first != second {
		t.Error("Assemble should be byte-identical for identical input")
	}
}
