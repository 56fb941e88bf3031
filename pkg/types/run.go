// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// RunStatus indicates how a conversion run ended.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// Run records a single conversion: one input, one pipeline, one Markdown result.
type Run struct {
	// ID is a generated unique identifier for the run.
	ID string `json:"id" yaml:"id"`

	// Kind is the input type: pdf or website.
	Kind InputKind `json:"kind" yaml:"kind"`

	// Method is the extraction backend: local or cloud.
	Method ExtractionMethod `json:"method" yaml:"method"`

	// Source is the input filename or page URL.
	Source string `json:"source" yaml:"source"`

	// OutputPath is where the Markdown was saved, if it was saved.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Bytes is the length of the generated Markdown.
	Bytes int `json:"bytes" yaml:"bytes"`

	// Status records success or failure.
	Status RunStatus `json:"status" yaml:"status"`

	// Error holds the failure message for failed runs.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// CreatedAt is when the run started.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}
