package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/tanmay031/xml2delimiter/internal/doctree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Block nodes map to
// named elements so templates can address them: heading (level attribute),
// paragraph, list/item, codeblock (language attribute). Links inside a
// block become link children with an href attribute.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, &doctree.ParseError{Format: "markdown", Err: err}
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	root := &doctree.Element{Name: "document"}
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if e := convertMarkdownBlock(n, src); e != nil {
			root.Children = append(root.Children, e)
		}
	}

	return &doctree.Document{Root: root}, nil
}

func convertMarkdownBlock(n ast.Node, src []byte) *doctree.Element {
	switch node := n.(type) {
	case *ast.Heading:
		return &doctree.Element{
			Name:  "heading",
			Attrs: []doctree.Attr{{Name: "level", Value: fmt.Sprintf("%d", node.Level)}},
			Text:  mdText(node, src),
		}

	case *ast.Paragraph:
		elem := &doctree.Element{Name: "paragraph", Text: mdText(node, src)}
		elem.Children = collectLinks(node, src)
		return elem

	case *ast.List:
		elem := &doctree.Element{Name: "list"}
		if node.IsOrdered() {
			elem.Attrs = []doctree.Attr{{Name: "ordered", Value: "true"}}
		}
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			elem.Children = append(elem.Children, &doctree.Element{
				Name: "item",
				Text: mdText(item, src),
			})
		}
		return elem

	case *ast.FencedCodeBlock:
		elem := &doctree.Element{Name: "codeblock", Text: mdLines(node, src)}
		if lang := node.Language(src); len(lang) > 0 {
			elem.Attrs = []doctree.Attr{{Name: "language", Value: string(lang)}}
		}
		return elem

	case *ast.Blockquote:
		return &doctree.Element{Name: "blockquote", Text: mdText(node, src)}

	default:
		if t := mdText(n, src); t != "" {
			return &doctree.Element{Name: "paragraph", Text: t}
		}
		return nil
	}
}

// mdText flattens a node's inline content into plain text.
func mdText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(mdText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}

func mdLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

func collectLinks(n ast.Node, src []byte) []*doctree.Element {
	var links []*doctree.Element
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if l, ok := c.(*ast.Link); ok {
			links = append(links, &doctree.Element{
				Name:  "link",
				Attrs: []doctree.Attr{{Name: "href", Value: string(l.Destination)}},
				Text:  mdText(l, src),
			})
			continue
		}
		links = append(links, collectLinks(c, src)...)
	}
	return links
}
