// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfcloud implements the cloud-document pipeline: the PDF is
// submitted to a remote extraction service as a job, the job is polled to
// completion, and the downloaded result bundle is rendered as Markdown.
package pdfcloud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/mdgen/pkg/types"
)

const (
	defaultPollInterval = 2 * time.Second
	defaultMaxPolls     = 60
)

// Client talks to the remote document-extraction service. One Client performs
// one job at a time; requests block and are never retried.
type Client struct {
	cfg  types.DocumentCloudConfig
	http *http.Client
}

// NewClient builds a client from explicit configuration.
func NewClient(cfg types.DocumentCloudConfig, httpClient *http.Client) *Client {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.MaxPolls <= 0 {
		cfg.MaxPolls = defaultMaxPolls
	}
	return &Client{cfg: cfg, http: httpClient}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type assetResponse struct {
	AssetID   string `json:"assetID"`
	UploadURI string `json:"uploadUri"`
}

type jobStatus struct {
	Status  string `json:"status"`
	Error   string `json:"error,omitempty"`
	Content struct {
		DownloadURI string `json:"downloadUri"`
	} `json:"content"`
}

// Extract submits the PDF at pdfPath, awaits job completion, and downloads
// the result bundle into cfg.BundleDir under a timestamped name. It returns
// the bundle archive path. The archive is deliberately left on disk.
func (c *Client) Extract(ctx context.Context, pdfPath string) (string, error) {
	if !c.cfg.Configured() {
		return "", fmt.Errorf("document extraction credentials not configured")
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return "", fmt.Errorf("reading PDF %s: %w", pdfPath, err)
	}

	token, err := c.authenticate(ctx)
	if err != nil {
		return "", err
	}

	assetID, err := c.uploadAsset(ctx, token, data)
	if err != nil {
		return "", err
	}

	jobURL, err := c.createJob(ctx, token, assetID)
	if err != nil {
		return "", err
	}

	downloadURI, err := c.pollJob(ctx, token, jobURL)
	if err != nil {
		return "", err
	}

	return c.downloadBundle(ctx, token, downloadURI)
}

// authenticate exchanges client credentials for an access token.
func (c *Client) authenticate(ctx context.Context) (string, error) {
	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request returned HTTP %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("parsing token response: %w", err)
	}
	if tr.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access token")
	}
	return tr.AccessToken, nil
}

// uploadAsset registers an asset slot and PUTs the document bytes to it.
func (c *Client) uploadAsset(ctx context.Context, token string, data []byte) (string, error) {
	body := `{"mediaType":"application/pdf"}`
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/assets",
		strings.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating asset request: %w", err)
	}
	c.setHeaders(req, token, "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("asset request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("asset request returned HTTP %d", resp.StatusCode)
	}

	var ar assetResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return "", fmt.Errorf("parsing asset response: %w", err)
	}

	put, err := http.NewRequestWithContext(ctx, http.MethodPut, c.resolve(ar.UploadURI),
		bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating upload request: %w", err)
	}
	put.Header.Set("Content-Type", "application/pdf")
	put.Header.Set("User-Agent", c.cfg.UserAgent)

	putResp, err := c.http.Do(put)
	if err != nil {
		return "", fmt.Errorf("uploading document: %w", err)
	}
	io.Copy(io.Discard, putResp.Body)
	putResp.Body.Close()

	if putResp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("document upload returned HTTP %d", putResp.StatusCode)
	}
	return ar.AssetID, nil
}

// createJob starts an extraction job for the uploaded asset and returns the
// job status URL from the Location header.
func (c *Client) createJob(ctx context.Context, token, assetID string) (string, error) {
	payload := map[string]any{
		"assetID":             assetID,
		"elementsToExtract":   []string{"text", "tables"},
		"renditionsToExtract": []string{"figures", "tables"},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding job request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/operation/extractpdf",
		bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating job request: %w", err)
	}
	c.setHeaders(req, token, "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("job request: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusAccepted {
		return "", fmt.Errorf("job request returned HTTP %d", resp.StatusCode)
	}

	loc := resp.Header.Get("Location")
	if loc == "" {
		return "", fmt.Errorf("job response missing Location header")
	}
	return c.resolve(loc), nil
}

// pollJob checks job status at the configured interval until the job is done,
// fails, the context is cancelled, or the poll budget is exhausted. Individual
// failed polls are terminal; there are no retries.
func (c *Client) pollJob(ctx context.Context, token, jobURL string) (string, error) {
	for attempt := 0; attempt < c.cfg.MaxPolls; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(c.cfg.PollInterval):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, jobURL, nil)
		if err != nil {
			return "", fmt.Errorf("creating status request: %w", err)
		}
		c.setHeaders(req, token, "")

		resp, err := c.http.Do(req)
		if err != nil {
			return "", fmt.Errorf("status request: %w", err)
		}

		var st jobStatus
		err = json.NewDecoder(resp.Body).Decode(&st)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("parsing status response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("status request returned HTTP %d", resp.StatusCode)
		}

		switch st.Status {
		case "done":
			if st.Content.DownloadURI == "" {
				return "", fmt.Errorf("completed job reported no download URI")
			}
			return c.resolve(st.Content.DownloadURI), nil
		case "failed":
			return "", fmt.Errorf("extraction job failed: %s", st.Error)
		}
	}
	return "", fmt.Errorf("extraction job did not complete after %d polls", c.cfg.MaxPolls)
}

// downloadBundle fetches the result archive to cfg.BundleDir.
func (c *Client) downloadBundle(ctx context.Context, token, downloadURI string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURI, nil)
	if err != nil {
		return "", fmt.Errorf("creating download request: %w", err)
	}
	c.setHeaders(req, token, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("bundle download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bundle download returned HTTP %d", resp.StatusCode)
	}

	if err := os.MkdirAll(c.cfg.BundleDir, 0o755); err != nil {
		return "", fmt.Errorf("creating bundle directory: %w", err)
	}
	name := fmt.Sprintf("extraction_%s.zip", time.Now().Format("2006-01-02T15-04-05"))
	zipPath := filepath.Join(c.cfg.BundleDir, name)

	out, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("creating bundle file: %w", err)
	}
	_, copyErr := io.Copy(out, resp.Body)
	closeErr := out.Close()
	if copyErr != nil {
		os.Remove(zipPath)
		return "", fmt.Errorf("writing bundle: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(zipPath)
		return "", fmt.Errorf("closing bundle file: %w", closeErr)
	}
	return zipPath, nil
}

func (c *Client) setHeaders(req *http.Request, token, contentType string) {
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
}

// resolve makes service-relative URIs absolute against the configured base.
func (c *Client) resolve(uri string) string {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri
	}
	return c.cfg.BaseURL + uri
}
