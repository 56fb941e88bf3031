// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExtractionMethod selects which backend performs extraction.
type ExtractionMethod string

const (
	MethodLocal ExtractionMethod = "local"
	MethodCloud ExtractionMethod = "cloud"
)

// InputKind identifies what is being converted.
type InputKind string

const (
	KindPDF     InputKind = "pdf"
	KindWebsite InputKind = "website"
)

// HTTPConfig holds shared HTTP settings used by pipelines that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests (e.g. "mdgen/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StorageConfig holds object-storage settings for asset re-hosting.
// All fields are optional; re-hosting is skipped unless Bucket, AccessKey,
// and SecretKey are all present.
type StorageConfig struct {
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty"`

	// Region defaults to us-east-1 when empty.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// Configured reports whether enough settings are present to attempt uploads.
func (c StorageConfig) Configured() bool {
	return c.Bucket != "" && c.AccessKey != "" && c.SecretKey != ""
}

// DocumentCloudConfig holds settings for the cloud document-extraction backend.
type DocumentCloudConfig struct {
	HTTPConfig `yaml:",inline"`

	// ClientID and ClientSecret authenticate against the extraction service.
	// Both must be present for the cloud-document pipeline to run.
	ClientID     string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`

	// BaseURL is the service endpoint root.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// PollInterval is the delay between job status polls (default 2s).
	PollInterval time.Duration `json:"poll_interval" yaml:"poll_interval"`

	// MaxPolls caps the number of status polls before giving up (default 60).
	MaxPolls int `json:"max_polls" yaml:"max_polls"`

	// BundleDir is where downloaded result bundles are kept. Bundle archives
	// are deliberately left on disk after a run.
	BundleDir string `json:"bundle_dir" yaml:"bundle_dir"`
}

// Configured reports whether credentials are present.
func (c DocumentCloudConfig) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// PageCloudConfig holds settings for the cloud content-extraction backend.
type PageCloudConfig struct {
	HTTPConfig `yaml:",inline"`

	// Token authenticates article API calls. Required for the cloud-page pipeline.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// BaseURL is the article API endpoint root.
	BaseURL string `json:"base_url" yaml:"base_url"`
}

// Configured reports whether the API token is present.
func (c PageCloudConfig) Configured() bool {
	return c.Token != ""
}

// HistoryConfig holds settings for the conversion-run history store.
type HistoryConfig struct {
	// DataDir is the directory containing the history database.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ServerConfig holds settings for the HTTP form interface.
type ServerConfig struct {
	// Addr is the listen address (e.g. ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// MaxUploadMB limits the size of uploaded documents (default 32).
	MaxUploadMB int64 `json:"max_upload_mb" yaml:"max_upload_mb"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	HTTP          HTTPConfig          `json:"http" yaml:"http"`
	Storage       StorageConfig       `json:"storage" yaml:"storage"`
	DocumentCloud DocumentCloudConfig `json:"document_cloud" yaml:"document_cloud"`
	PageCloud     PageCloudConfig     `json:"page_cloud" yaml:"page_cloud"`
	History       HistoryConfig       `json:"history" yaml:"history"`
	Server        ServerConfig        `json:"server" yaml:"server"`
}
