// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdflocal implements the local-document pipeline: locally run
// extractors pull images, text, and tables out of a PDF, and an assembler
// renders them into one Markdown document.
package pdflocal

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/mdgen/pkg/types"
)

// TextExtractor returns the text of each page, in page order. A page with no
// text yields an empty string, not a missing entry.
type TextExtractor interface {
	PageTexts(pdfPath string) ([]string, error)
}

// ImageExtractor writes every embedded image to dir and returns references in
// page order, then within-page discovery order. Page and Index are 1-based.
type ImageExtractor interface {
	Images(pdfPath, dir string) ([]types.ImageRef, error)
}

// TableExtractor returns every table found across the document, in document
// order. The first row of each table is the header row.
type TableExtractor interface {
	Tables(pdfPath string) ([][][]string, error)
}

// Extractors bundles the three local backends.
type Extractors struct {
	Text  TextExtractor
	Image ImageExtractor
	Table TableExtractor
}

// DefaultExtractors returns the standard local backends.
func DefaultExtractors() Extractors {
	return Extractors{
		Text:  RowTextExtractor{},
		Image: EmbeddedImageExtractor{},
		Table: GapTableExtractor{},
	}
}

// RowTextExtractor reads page text row by row.
type RowTextExtractor struct{}

// PageTexts extracts the text of every page, joining rows with newlines.
func (RowTextExtractor) PageTexts(pdfPath string) ([]string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", pdfPath, err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for pageIndex := 1; pageIndex <= total; pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}

		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("reading page %d of %s: %w", pageIndex, pdfPath, err)
		}

		var b strings.Builder
		for idx, row := range rows {
			if idx > 0 {
				b.WriteByte('\n')
			}
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
		}
		pages = append(pages, b.String())
	}
	return pages, nil
}

// EmbeddedImageExtractor pulls embedded raster images out of the PDF.
type EmbeddedImageExtractor struct{}

// imagePagePattern matches the page number embedded in extracted image
// filenames (<base>_page_<n>_<id>.<ext>).
var imagePagePattern = regexp.MustCompile(`_page_(\d+)_`)

// Images extracts all embedded images into dir and returns references sorted
// by page, then by filename within a page.
func (EmbeddedImageExtractor) Images(pdfPath, dir string) ([]types.ImageRef, error) {
	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(pdfPath, dir, nil, conf); err != nil {
		return nil, fmt.Errorf("extracting images from %s: %w", pdfPath, err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing extracted images: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var refs []types.ImageRef
	for _, name := range names {
		page := 1
		if m := imagePagePattern.FindStringSubmatch(name); m != nil {
			page, _ = strconv.Atoi(m[1])
		}
		refs = append(refs, types.ImageRef{Path: filepath.Join(dir, name), Page: page})
	}

	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Page < refs[j].Page })

	index := 0
	lastPage := 0
	for i := range refs {
		if refs[i].Page != lastPage {
			lastPage = refs[i].Page
			index = 0
		}
		index++
		refs[i].Index = index
	}
	return refs, nil
}
