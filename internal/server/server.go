// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server provides the HTTP form interface: upload a PDF or enter a
// URL, pick the extraction method, and get the generated Markdown back with
// a download control.
package server

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/mdgen/internal/convert"
	"github.com/pdiddy/mdgen/pkg/types"
)

const defaultMaxUploadMB = 32

// Server serves the conversion form and runs conversions through the shared
// service.
type Server struct {
	svc    *convert.Service
	cfg    types.ServerConfig
	router chi.Router
}

// New builds the server and its routes.
func New(svc *convert.Service, cfg types.ServerConfig) *Server {
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = defaultMaxUploadMB
	}

	s := &Server{svc: svc, cfg: cfg}

	r := chi.NewRouter()
	r.Get("/", s.handleIndex)
	r.Post("/convert", s.handleConvert)
	r.Post("/download", s.handleDownload)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true,"service":"mdgen"}`))
	})
	s.router = r

	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving on the configured address.
func (s *Server) ListenAndServe() error {
	return http.ListenAndServe(s.cfg.Addr, s.router)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, indexTmpl, nil)
}

// handleConvert runs the selected pipeline on the uploaded document or the
// submitted URL. Uploaded documents are staged in a per-request temp
// directory that is removed when the request finishes.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.MaxUploadMB << 20); err != nil {
		s.renderError(w, http.StatusBadRequest, fmt.Sprintf("reading form: %v", err))
		return
	}

	kind := types.InputKind(r.FormValue("input_type"))
	method := types.ExtractionMethod(r.FormValue("method"))
	if method == "" {
		method = types.MethodLocal
	}

	req := convert.Request{Kind: kind, Method: method}

	switch kind {
	case types.KindPDF:
		file, header, err := r.FormFile("document")
		if err != nil {
			s.renderError(w, http.StatusBadRequest, "please upload a PDF first")
			return
		}
		defer file.Close()

		tmpDir, err := os.MkdirTemp("", "mdgen-upload-")
		if err != nil {
			s.renderError(w, http.StatusInternalServerError, fmt.Sprintf("staging upload: %v", err))
			return
		}
		defer os.RemoveAll(tmpDir)

		staged := filepath.Join(tmpDir, filepath.Base(header.Filename))
		out, err := os.Create(staged)
		if err != nil {
			s.renderError(w, http.StatusInternalServerError, fmt.Sprintf("staging upload: %v", err))
			return
		}
		if _, err := out.ReadFrom(file); err != nil {
			out.Close()
			s.renderError(w, http.StatusInternalServerError, fmt.Sprintf("staging upload: %v", err))
			return
		}
		out.Close()

		req.Source = staged
		req.SourceName = header.Filename

	case types.KindWebsite:
		pageURL := r.FormValue("url")
		if pageURL == "" {
			s.renderError(w, http.StatusBadRequest, "please enter a URL first")
			return
		}
		req.Source = pageURL

	default:
		s.renderError(w, http.StatusBadRequest, fmt.Sprintf("unknown input type %q", kind))
		return
	}

	md, _, err := s.svc.Convert(r.Context(), req)
	if err != nil {
		s.renderError(w, http.StatusBadGateway, fmt.Sprintf("conversion failed: %v", err))
		return
	}

	s.render(w, http.StatusOK, resultTmpl, resultData{
		Markdown: md,
		Kind:     string(kind),
		Filename: convert.DownloadName(kind),
	})
}

// handleDownload streams previously generated Markdown back as a file
// attachment. The result page posts the Markdown in a hidden field so the
// pipeline does not run twice.
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("reading form: %v", err), http.StatusBadRequest)
		return
	}
	md := r.FormValue("markdown")
	if md == "" {
		http.Error(w, "nothing to download", http.StatusBadRequest)
		return
	}
	name := convert.DownloadName(types.InputKind(r.FormValue("kind")))

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write([]byte(md))
}

type resultData struct {
	Markdown string
	Kind     string
	Filename string
	Error    string
}

func (s *Server) render(w http.ResponseWriter, status int, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.Execute(w, data); err != nil {
		fmt.Fprintf(os.Stderr, "rendering template: %v\n", err)
	}
}

func (s *Server) renderError(w http.ResponseWriter, status int, msg string) {
	s.render(w, status, resultTmpl, resultData{Error: msg})
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Markdown Generator</title></head>
<body>
<h1>Markdown Generator</h1>
<form method="post" action="/convert" enctype="multipart/form-data">
  <fieldset>
    <legend>Input</legend>
    <label><input type="radio" name="input_type" value="pdf" checked> PDF to Markdown</label>
    <label><input type="radio" name="input_type" value="website"> Website URL to Markdown</label>
    <p><input type="file" name="document" accept=".pdf"></p>
    <p><input type="text" name="url" placeholder="https://example.com/article" size="60"></p>
  </fieldset>
  <fieldset>
    <legend>Extraction method</legend>
    <label><input type="radio" name="method" value="local" checked> Open-source (local)</label>
    <label><input type="radio" name="method" value="cloud"> Enterprise (cloud)</label>
  </fieldset>
  <p><button type="submit">Generate Markdown</button></p>
</form>
</body>
</html>
`))

var resultTmpl = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html>
<head><title>Markdown Generator</title></head>
<body>
<h1>Markdown Generator</h1>
{{if .Error}}
<p class="error">{{.Error}}</p>
<p><a href="/">Back</a></p>
{{else}}
<textarea rows="30" cols="100" readonly>{{.Markdown}}</textarea>
<form method="post" action="/download">
  <input type="hidden" name="markdown" value="{{.Markdown}}">
  <input type="hidden" name="kind" value="{{.Kind}}">
  <p><button type="submit">Download {{.Filename}}</button></p>
</form>
<p><a href="/">Convert another</a></p>
{{end}}
</body>
</html>
`))
