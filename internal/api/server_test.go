package api

import (
	"bytes"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tanmay031/xml2delimiter/internal/config"
	"github.com/tanmay031/xml2delimiter/internal/convert"
)

func newTestServer(apiKey string) *Server {
	cfg := config.Config{
		Port:             "8091",
		APIKey:           apiKey,
		MaxUploadBytes:   1 << 20,
		DefaultDelimiter: "|",
		BufferLines:      10,
		StatsWindow:      time.Hour,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(convert.NewRunStats(cfg.StatsWindow), log, cfg)
}

func convertRequest(t *testing.T, document, tmpl string, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("document", "library.xml")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(document))

	fw, err = mw.CreateFormFile("template", "template.json")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(tmpl))

	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/convert", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

const testXML = `<library>
  <book><title>The Great Gatsby</title><author>F. Scott Fitzgerald</author></book>
  <book><title>Moby Dick</title><author>Herman Melville</author></book>
</library>`

const testTemplate = `{"book": {"100": ["title", "author"]}}`

func TestHandleConvert(t *testing.T) {
	s := newTestServer("")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, convertRequest(t, testXML, testTemplate, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	want := "100|The Great Gatsby|F. Scott Fitzgerald\n100|Moby Dick|Herman Melville\n"
	if rec.Body.String() != want {
		t.Errorf("unexpected body:\n%s", rec.Body.String())
	}

	// The run is visible through the stats endpoint.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats/runs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"runs":1`) {
		t.Errorf("expected 1 recorded run, got %s", rec.Body.String())
	}
}

func TestHandleConvert_CustomDelimiterAndStrip(t *testing.T) {
	s := newTestServer("")
	rec := httptest.NewRecorder()
	doc := `<library><book><title> Padded </title><author>A</author></book></library>`
	s.ServeHTTP(rec, convertRequest(t, doc, testTemplate, map[string]string{
		"delimiter": ";",
		"strip":     "true",
	}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Body.String() != "100;Padded;A\n" {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestHandleConvert_InvalidTemplate(t *testing.T) {
	s := newTestServer("")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, convertRequest(t, testXML, `{"book": {"100": []}}`, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHandleConvert_MalformedDocument(t *testing.T) {
	s := newTestServer("")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, convertRequest(t, "<library><book></library>", testTemplate, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuth(t *testing.T) {
	s := newTestServer("secret")

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, convertRequest(t, testXML, testTemplate, nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	req := convertRequest(t, testXML, testTemplate, nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with key, got %d", rec.Code)
	}

	// Health stays public.
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected public health, got %d", rec.Code)
	}
}
