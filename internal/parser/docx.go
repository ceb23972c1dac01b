package parser

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/tanmay031/xml2delimiter/internal/doctree"
)

// DOCXParser handles .docx files. Paragraphs become paragraph elements
// (with a style attribute when one is set) and tables become
// table/row/cell subtrees under a document root.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	// go-docx needs a ReadSeeker+size, so write to temp file.
	tmp, err := os.CreateTemp("", "xml2delimiter-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, &doctree.ParseError{Format: "docx", Err: err}
	}

	root := &doctree.Element{Name: "document"}
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			elem := &doctree.Element{Name: "paragraph", Text: docxParagraphText(it)}
			if it.Properties != nil && it.Properties.Style != nil {
				elem.Attrs = []doctree.Attr{{Name: "style", Value: it.Properties.Style.Val}}
			}
			root.Children = append(root.Children, elem)
		case *docx.Table:
			root.Children = append(root.Children, convertDocxTable(it))
		}
	}

	return &doctree.Document{Root: root}, nil
}

func convertDocxTable(t *docx.Table) *doctree.Element {
	table := &doctree.Element{Name: "table"}
	for _, tr := range t.TableRows {
		row := &doctree.Element{Name: "row"}
		for _, tc := range tr.TableCells {
			var buf strings.Builder
			for _, para := range tc.Paragraphs {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
				buf.WriteString(docxParagraphText(para))
			}
			row.Children = append(row.Children, &doctree.Element{Name: "cell", Text: buf.String()})
		}
		table.Children = append(table.Children, row)
	}
	return table
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
