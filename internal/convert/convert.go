// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert dispatches conversion requests to the four pipelines and
// records each run. The CLI and the HTTP form interface both go through it,
// so a conversion behaves identically regardless of the entry surface.
package convert

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdgen/internal/history"
	"github.com/pdiddy/mdgen/internal/pdfcloud"
	"github.com/pdiddy/mdgen/internal/pdflocal"
	"github.com/pdiddy/mdgen/internal/rehost"
	"github.com/pdiddy/mdgen/internal/webcloud"
	"github.com/pdiddy/mdgen/internal/weblocal"
	"github.com/pdiddy/mdgen/pkg/types"
)

// Request describes one conversion: what to convert and with which backend.
type Request struct {
	// Kind selects the document or page path.
	Kind types.InputKind

	// Method selects the local or cloud backend.
	Method types.ExtractionMethod

	// Source is the PDF path (document kinds) or the page URL (website kinds).
	Source string

	// SourceName overrides the source recorded in history. The form interface
	// sets it to the uploaded filename instead of the temp path.
	SourceName string
}

// Service runs conversions through the configured pipelines. A nil history
// store disables run recording but not conversion.
type Service struct {
	cfg      types.PipelineConfig
	uploader rehost.Uploader
	http     *http.Client
	store    *history.Store
	logw     io.Writer
}

// NewService wires the pipelines from one configuration. Asset re-hosting is
// built from cfg.Storage and degrades to warnings when unconfigured.
func NewService(cfg types.PipelineConfig, store *history.Store, logw io.Writer) *Service {
	if logw == nil {
		logw = os.Stderr
	}
	return &Service{
		cfg:      cfg,
		uploader: rehost.NewS3(cfg.Storage, logw),
		http:     &http.Client{Timeout: cfg.HTTP.Timeout},
		store:    store,
		logw:     logw,
	}
}

// Convert runs the pipeline selected by the request and returns the Markdown
// together with the run record. The run is recorded in history whether the
// pipeline succeeded or failed.
func (s *Service) Convert(ctx context.Context, req Request) (string, types.Run, error) {
	source := req.SourceName
	if source == "" {
		source = req.Source
	}
	run := types.Run{
		ID:        uuid.NewString(),
		Kind:      req.Kind,
		Method:    req.Method,
		Source:    source,
		Status:    types.RunSucceeded,
		CreatedAt: time.Now().UTC(),
	}

	md, err := s.dispatch(ctx, req)
	if err != nil {
		run.Status = types.RunFailed
		run.Error = err.Error()
	}
	run.Bytes = len(md)

	if s.store != nil {
		if _, recErr := s.store.Record(ctx, run); recErr != nil {
			fmt.Fprintf(s.logw, "warning: recording run: %v\n", recErr)
		}
	}
	return md, run, err
}

func (s *Service) dispatch(ctx context.Context, req Request) (string, error) {
	switch {
	case req.Kind == types.KindPDF && req.Method == types.MethodLocal:
		return pdflocal.Convert(ctx, req.Source, pdflocal.DefaultExtractors(), s.uploader, s.logw)
	case req.Kind == types.KindPDF && req.Method == types.MethodCloud:
		return pdfcloud.Convert(ctx, req.Source, s.cfg.DocumentCloud, s.http, s.uploader, s.logw)
	case req.Kind == types.KindWebsite && req.Method == types.MethodLocal:
		return weblocal.Convert(s.http, req.Source, s.cfg.HTTP)
	case req.Kind == types.KindWebsite && req.Method == types.MethodCloud:
		return webcloud.Convert(ctx, s.http, req.Source, s.cfg.PageCloud)
	default:
		return "", fmt.Errorf("unknown conversion: kind %q, method %q", req.Kind, req.Method)
	}
}

// Save writes the Markdown to outPath and a YAML sidecar with the run record
// beside it. The sidecar shares the output's base name with a .yaml extension.
func Save(md string, outPath string, run types.Run) (types.Run, error) {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return run, fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		return run, fmt.Errorf("writing markdown: %w", err)
	}
	run.OutputPath = outPath

	sidecar := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + ".yaml"
	data, err := yaml.Marshal(&run)
	if err != nil {
		return run, fmt.Errorf("marshaling run sidecar: %w", err)
	}
	if err := os.WriteFile(sidecar, data, 0o644); err != nil {
		return run, fmt.Errorf("writing run sidecar: %w", err)
	}
	return run, nil
}

// DownloadName returns the filename offered when the converted Markdown is
// downloaded from the form interface.
func DownloadName(kind types.InputKind) string {
	if kind == types.KindWebsite {
		return "extracted_website.md"
	}
	return "extracted_markdown.md"
}
