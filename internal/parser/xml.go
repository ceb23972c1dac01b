package parser

import (
	"encoding/xml"
	"errors"
	"io"

	"github.com/tanmay031/xml2delimiter/internal/doctree"
)

// XMLParser handles XML files. The whole document is decoded into an
// element tree with a token stack; namespaces prefixes are dropped and
// only local names kept, matching how templates address elements.
type XMLParser struct{}

func (p *XMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	dec := xml.NewDecoder(r)

	var stack []*doctree.Element
	var root *doctree.Element

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &doctree.ParseError{Format: "xml", Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, &doctree.ParseError{Format: "xml", Err: errors.New("content after document element")}
			}
			elem := &doctree.Element{
				Name:  t.Name.Local,
				Attrs: convertAttrs(t.Attr),
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, elem)
			} else {
				root = elem
			}
			stack = append(stack, elem)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, &doctree.ParseError{Format: "xml", Err: io.ErrUnexpectedEOF}
	}
	if len(stack) > 0 {
		return nil, &doctree.ParseError{Format: "xml", Err: io.ErrUnexpectedEOF}
	}

	return &doctree.Document{Root: root}, nil
}

func convertAttrs(attrs []xml.Attr) []doctree.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]doctree.Attr, 0, len(attrs))
	for _, a := range attrs {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		out = append(out, doctree.Attr{Name: a.Name.Local, Value: a.Value})
	}
	return out
}
