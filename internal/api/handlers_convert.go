package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/tanmay031/xml2delimiter/internal/convert"
	"github.com/tanmay031/xml2delimiter/internal/doctree"
	"github.com/tanmay031/xml2delimiter/internal/parser"
	"github.com/tanmay031/xml2delimiter/internal/template"
)

// handleConvert accepts a multipart form with a "document" file, a
// "template" file and optional "delimiter"/"strip" fields, and responds
// with the delimited records as plain text.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	docData, docName, err := s.formFile(r, "document")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !parser.IsSupportedExtension(docName) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(docName)), http.StatusBadRequest)
		return
	}

	tmplData, tmplName, err := s.formFile(r, "template")
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	schema, err := parseTemplate(tmplData, tmplName)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := parser.ForFile(docName)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := p.Parse(bytes.NewReader(docData), docName)
	if err != nil {
		var pe *doctree.ParseError
		if errors.As(err, &pe) {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
		jsonError(w, "failed to parse document", http.StatusInternalServerError)
		return
	}

	opts := convert.Options{
		Delimiter:   s.cfg.DefaultDelimiter,
		Strip:       r.FormValue("strip") == "true",
		BufferLines: s.cfg.BufferLines,
	}
	if d := r.FormValue("delimiter"); d != "" {
		opts.Delimiter = d
	}

	var out bytes.Buffer
	sink := convert.NewSink(&out, opts.BufferLines)
	res, err := convert.Run(doc, schema, opts, sink, s.log)
	if err != nil {
		jsonError(w, "conversion failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	if err := sink.Close(); err != nil {
		jsonError(w, "conversion failed: "+err.Error(), http.StatusInternalServerError)
		return
	}

	s.stats.Record(res)
	s.log.Info("converted document",
		"document", docName,
		"groups", res.Groups,
		"lines", res.Lines,
		"duration_ms", res.Elapsed.Milliseconds(),
	)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Record-Lines", fmt.Sprintf("%d", res.Lines))
	w.Write(out.Bytes())
}

func (s *Server) formFile(r *http.Request, field string) ([]byte, string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("%s file is required: %v", field, err)
	}
	defer file.Close()

	data, err := readLimited(file, s.cfg.MaxUploadBytes)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %v", field, err)
	}
	return data, sanitizeFilename(header.Filename), nil
}

func readLimited(f multipart.File, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		return nil, errors.New("failed to read file")
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("file exceeds max size (%d bytes)", limit)
	}
	return data, nil
}

func parseTemplate(data []byte, filename string) (*template.Schema, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return template.ParseYAML(data)
	default:
		return template.ParseJSON(data)
	}
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
