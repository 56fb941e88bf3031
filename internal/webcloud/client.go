// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package webcloud implements the cloud-page pipeline: the page URL is handed
// to a remote article-extraction API, and the returned content objects are
// rendered as Markdown. Nothing is fetched or parsed locally.
package webcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pdiddy/mdgen/pkg/types"
)

// DefaultBaseURL is the article API endpoint root used when no override is
// configured.
const DefaultBaseURL = "https://api.diffbot.com"

// ArticleImage is one extracted image, with an optional caption.
type ArticleImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

// ArticleTable is one extracted table.
type ArticleTable struct {
	Rows [][]string `json:"rows"`
}

// ArticleObject is one content object returned by the article API.
type ArticleObject struct {
	Title  string         `json:"title"`
	Text   string         `json:"text"`
	Images []ArticleImage `json:"images"`
	Tables []ArticleTable `json:"tables"`
}

type articleResponse struct {
	Objects []ArticleObject `json:"objects"`
}

// Client calls the remote article-extraction API.
type Client struct {
	cfg  types.PageCloudConfig
	http *http.Client
}

// NewClient builds an article API client. A nil httpClient falls back to
// http.DefaultClient.
func NewClient(cfg types.PageCloudConfig, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient}
}

// Extract asks the article API for the content objects of pageURL. A missing
// token, a non-success status, or an empty object list is a pipeline failure;
// there is no partial output and no retry.
func (c *Client) Extract(ctx context.Context, pageURL string) ([]ArticleObject, error) {
	if !c.cfg.Configured() {
		return nil, fmt.Errorf("article API token not configured")
	}

	endpoint := fmt.Sprintf("%s/v3/article?token=%s&url=%s",
		c.cfg.BaseURL, url.QueryEscape(c.cfg.Token), url.QueryEscape(pageURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating article request: %w", err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling article API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("article API returned HTTP %d", resp.StatusCode)
	}

	var parsed articleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding article response: %w", err)
	}
	if len(parsed.Objects) == 0 {
		return nil, fmt.Errorf("article API returned no content objects for %s", pageURL)
	}
	return parsed.Objects, nil
}
