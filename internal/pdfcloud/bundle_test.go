// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfcloud

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/mdgen/pkg/types"
)

// writeBundle builds a result-bundle zip on disk from a map of entry name to
// content and returns its path.
func writeBundle(t *testing.T, entries map[string][]byte) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "extraction_2026-01-02T15-04-05.zip")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// sheetBytes builds a one-sheet xlsx with the given rows.
func sheetBytes(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for r, row := range rows {
		for c, cell := range row {
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", name, cell); err != nil {
				t.Fatal(err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const sampleManifest = `{
	"elements": [
		{"Text": "Opening paragraph."},
		{"Table": {"Rows": [["A", "B"], ["1", "2"]]}},
		{"Text": "Closing paragraph."}
	]
}`

func TestOpenBundle(t *testing.T) {
	zipPath := writeBundle(t, map[string][]byte{
		"structuredData.json": []byte(sampleManifest),
		"tables/table-2.xlsx": sheetBytes(t, [][]string{{"X", "Y"}, {"9", "8"}}),
		"tables/table-1.xlsx": sheetBytes(t, [][]string{{"H"}, {"v"}}),
		"figures/fig-1.png":   []byte("png"),
		"figures/fig-0.png":   []byte("png"),
	})

	bundle, err := OpenBundle(zipPath)
	if err != nil {
		t.Fatalf("OpenBundle: %v", err)
	}

	if len(bundle.Elements) != 3 {
		t.Fatalf("elements = %d, want 3", len(bundle.Elements))
	}
	if bundle.Elements[0].Kind != types.ElementText || bundle.Elements[0].Text != "Opening paragraph." {
		t.Errorf("element 0 = %+v", bundle.Elements[0])
	}
	if bundle.Elements[1].Kind != types.ElementTable || len(bundle.Elements[1].Rows) != 2 {
		t.Errorf("element 1 = %+v", bundle.Elements[1])
	}

	// Sheets sorted by filename.
	if len(bundle.Sheets) != 2 || bundle.Sheets[0].File != "table-1.xlsx" || bundle.Sheets[1].File != "table-2.xlsx" {
		t.Fatalf("sheets = %+v", bundle.Sheets)
	}
	if bundle.Sheets[1].Rows[0][0] != "X" || bundle.Sheets[1].Rows[1][1] != "8" {
		t.Errorf("sheet rows = %v", bundle.Sheets[1].Rows)
	}

	// Figures sorted by filename.
	if len(bundle.Figures) != 2 || filepath.Base(bundle.Figures[0]) != "fig-0.png" {
		t.Errorf("figures = %v", bundle.Figures)
	}
}

func TestOpenBundleMissingManifest(t *testing.T) {
	zipPath := writeBundle(t, map[string][]byte{
		"figures/fig.png": []byte("png"),
	})
	_, err := OpenBundle(zipPath)
	if err == nil || !strings.Contains(err.Error(), "structuredData.json") {
		t.Fatalf("err = %v, want missing manifest error", err)
	}
}

func TestOpenBundleNoOptionalFolders(t *testing.T) {
	zipPath := writeBundle(t, map[string][]byte{
		"structuredData.json": []byte(`{"elements": []}`),
	})
	bundle, err := OpenBundle(zipPath)
	if err != nil {
		t.Fatalf("OpenBundle: %v", err)
	}
	if len(bundle.Elements) != 0 || len(bundle.Sheets) != 0 || len(bundle.Figures) != 0 {
		t.Errorf("bundle = %+v, want empty", bundle)
	}
}

func TestOpenBundleRejectsEscapingEntries(t *testing.T) {
	zipPath := writeBundle(t, map[string][]byte{
		"../evil.txt": []byte("x"),
	})
	if _, err := OpenBundle(zipPath); err == nil {
		t.Fatal("expected error for entry escaping bundle directory")
	}
}
