package parser

import (
	"io"
	"strings"

	"github.com/tanmay031/xml2delimiter/internal/doctree"
	"golang.org/x/net/html"
)

// HTMLParser handles HTML files. Each HTML element becomes a tree element
// of the same tag name; attributes carry over and an element's own text is
// the concatenation of its direct text children.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, &doctree.ParseError{Format: "html", Err: err}
	}

	rootNode := findRootElement(doc)
	if rootNode == nil {
		return nil, &doctree.ParseError{Format: "html", Err: io.ErrUnexpectedEOF}
	}

	return &doctree.Document{Root: convertHTMLNode(rootNode)}, nil
}

func convertHTMLNode(n *html.Node) *doctree.Element {
	elem := &doctree.Element{Name: n.Data}
	for _, a := range n.Attr {
		elem.Attrs = append(elem.Attrs, doctree.Attr{Name: a.Key, Value: a.Val})
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			text.WriteString(c.Data)
		case html.ElementNode:
			switch c.Data {
			case "script", "style":
				continue
			}
			elem.Children = append(elem.Children, convertHTMLNode(c))
		}
	}
	elem.Text = text.String()
	return elem
}

func findRootElement(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if e := findRootElement(c); e != nil {
			return e
		}
	}
	return nil
}
