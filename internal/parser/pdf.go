package parser

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/tanmay031/xml2delimiter/internal/doctree"
)

// PDFParser handles PDF files. Every page becomes a page element with a
// number attribute and the page's plain text as content.
type PDFParser struct{}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "xml2delimiter-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	f, reader, err := pdflib.Open(tmpPath)
	if err != nil {
		return nil, &doctree.ParseError{Format: "pdf", Err: err}
	}
	defer f.Close()

	root := &doctree.Element{Name: "document"}
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		root.Children = append(root.Children, &doctree.Element{
			Name:  "page",
			Attrs: []doctree.Attr{{Name: "number", Value: strconv.Itoa(i)}},
			Text:  text,
		})
	}

	return &doctree.Document{Root: root}, nil
}
