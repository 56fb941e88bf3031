// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfcloud

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/mdgen/pkg/types"
)

const (
	manifestFile = "structuredData.json"
	tablesDir    = "tables"
	figuresDir   = "figures"
)

// SheetTable is one spreadsheet from the bundle's tables folder.
type SheetTable struct {
	File string
	Rows [][]string
}

// Bundle is the normalized content of a downloaded result bundle: manifest
// elements in manifest order, then spreadsheet tables and figure images
// sorted by filename.
type Bundle struct {
	Elements []types.Element
	Sheets   []SheetTable
	Figures  []string
}

// manifest element shapes. An element carries a Text body, a Table, or both.
type manifest struct {
	Elements []manifestElement `json:"elements"`
}

type manifestElement struct {
	Text  string         `json:"Text,omitempty"`
	Table *manifestTable `json:"Table,omitempty"`
}

type manifestTable struct {
	Rows [][]string `json:"Rows"`
}

// OpenBundle unpacks the archive at zipPath next to itself and parses its
// contents. A bundle without structuredData.json is invalid: the whole
// pipeline fails rather than producing partial output.
func OpenBundle(zipPath string) (*Bundle, error) {
	outDir := strings.TrimSuffix(zipPath, ".zip")
	if err := unzip(zipPath, outDir); err != nil {
		return nil, fmt.Errorf("unpacking bundle %s: %w", zipPath, err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("%s not found in bundle: %w", manifestFile, err)
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestFile, err)
	}

	b := &Bundle{}
	for _, el := range m.Elements {
		if el.Text != "" {
			b.Elements = append(b.Elements, types.TextElement(el.Text))
		}
		if el.Table != nil {
			b.Elements = append(b.Elements, types.TableElement(el.Table.Rows))
		}
	}

	if err := b.loadSheets(filepath.Join(outDir, tablesDir)); err != nil {
		return nil, err
	}
	b.Figures = listFiles(filepath.Join(outDir, figuresDir))
	return b, nil
}

// loadSheets reads every spreadsheet in the bundle's tables folder, sorted by
// filename. Absent cells read as empty strings.
func (b *Bundle) loadSheets(dir string) error {
	for _, path := range listFiles(dir) {
		if !strings.HasSuffix(path, ".xlsx") {
			continue
		}
		rows, err := readSheet(path)
		if err != nil {
			return fmt.Errorf("reading bundle table %s: %w", filepath.Base(path), err)
		}
		b.Sheets = append(b.Sheets, SheetTable{File: filepath.Base(path), Rows: rows})
	}
	return nil
}

func readSheet(path string) ([][]string, error) {
	doc, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	sheets := doc.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	return doc.GetRows(sheets[0])
}

// listFiles returns the files directly under dir, sorted by name. A missing
// directory is an empty result, not an error: table and figure folders are
// optional in a bundle.
func listFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files
}

// unzip extracts the archive into destDir, refusing entries that escape it.
func unzip(zipPath, destDir string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer zr.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	for _, f := range zr.File {
		target := filepath.Join(destDir, f.Name)
		if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return fmt.Errorf("archive entry escapes bundle directory: %s", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := writeEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
