// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package weblocal implements the local-page pipeline: the page is fetched
// over HTTP, parsed locally, and its paragraphs, images, links, and tables
// are rendered as Markdown. Relative and protocol-relative URLs are resolved
// against the page URL before rendering.
package weblocal

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/mdgen/pkg/types"
)

// Page is the normalized parse result for one web page: text, image, and
// table elements in document order, plus the absolutized link targets.
type Page struct {
	URL      string
	Elements []types.Element
	Links    []string
}

// Fetch retrieves the page and parses its markup. A non-success status aborts
// the whole pipeline: this pipeline has no per-element degradation.
func Fetch(client *http.Client, pageURL string, cfg types.HTTPConfig) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: HTTP %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing markup from %s: %w", pageURL, err)
	}
	return doc, nil
}

// Parse normalizes the parsed markup into a Page.
func Parse(doc *goquery.Document, pageURL string) (*Page, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parsing page URL %q: %w", pageURL, err)
	}

	page := &Page{URL: pageURL}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		paragraphs = append(paragraphs, strings.TrimSpace(s.Text()))
	})
	page.Elements = append(page.Elements, types.TextElement(strings.Join(paragraphs, "\n")))

	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok {
			return
		}
		page.Elements = append(page.Elements, types.ImageElement(types.ImageRef{
			URL: absolutizeImage(base, src),
		}))
	})

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		page.Links = append(page.Links, absolutize(base, href))
	})

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		var rows [][]string
		table.Find("tr").Each(func(_ int, tr *goquery.Selection) {
			var cells []string
			tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, strings.TrimSpace(cell.Text()))
			})
			rows = append(rows, cells)
		})
		if len(rows) > 0 {
			page.Elements = append(page.Elements, types.TableElement(rows))
		}
	})

	return page, nil
}

// absolutizeImage resolves an image source. Protocol-relative sources are
// pinned to https regardless of the page scheme; everything else resolves
// against the page URL.
func absolutizeImage(base *url.URL, src string) string {
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return absolutize(base, src)
}

// absolutize resolves a reference against the page URL. Already-absolute
// references pass through unchanged; unparseable ones are returned as-is.
func absolutize(base *url.URL, ref string) string {
	if strings.HasPrefix(ref, "http:") || strings.HasPrefix(ref, "https:") {
		return ref
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(parsed).String()
}
