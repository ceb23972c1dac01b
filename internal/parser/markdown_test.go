package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_BlocksBecomeElements(t *testing.T) {
	in := "# Catalog\n\nSee [the index](https://example.com/index) for details.\n\n- first\n- second\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(in), "catalog.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Root.Name != "document" {
		t.Fatalf("expected document root, got %q", doc.Root.Name)
	}
	if len(doc.Root.Children) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(doc.Root.Children))
	}

	heading := doc.Root.Children[0]
	if heading.Name != "heading" || heading.Text != "Catalog" {
		t.Errorf("unexpected heading: %+v", heading)
	}
	if lvl, _ := heading.Attr("level"); lvl != "1" {
		t.Errorf("expected level 1, got %q", lvl)
	}

	para := doc.Root.Children[1]
	if para.Name != "paragraph" {
		t.Fatalf("expected paragraph, got %q", para.Name)
	}
	link := para.Child("link")
	if link == nil {
		t.Fatal("expected a link child")
	}
	if href, _ := link.Attr("href"); href != "https://example.com/index" {
		t.Errorf("unexpected href %q", href)
	}
	if link.Text != "the index" {
		t.Errorf("unexpected link text %q", link.Text)
	}

	list := doc.Root.Children[2]
	if list.Name != "list" || len(list.Children) != 2 {
		t.Fatalf("unexpected list: %+v", list)
	}
	if list.Children[0].Text != "first" || list.Children[1].Text != "second" {
		t.Errorf("unexpected items: %q, %q", list.Children[0].Text, list.Children[1].Text)
	}
}

func TestMarkdownParser_CodeBlockLanguage(t *testing.T) {
	in := "```go\nfmt.Println(\"hi\")\n```\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(in), "snippet.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cb := doc.Root.Child("codeblock")
	if cb == nil {
		t.Fatal("expected codeblock element")
	}
	if lang, _ := cb.Attr("language"); lang != "go" {
		t.Errorf("expected language go, got %q", lang)
	}
	if cb.Text != "fmt.Println(\"hi\")" {
		t.Errorf("unexpected code text %q", cb.Text)
	}
}

func TestMarkdownParser_ChildlessBlockReadsSourceSegments(t *testing.T) {
	// An HTML block has no inline children; its text comes straight from
	// the source line segments.
	in := "<div>standalone</div>\n\nafter\n"
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(in), "raw.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Root.Children) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(doc.Root.Children))
	}
	if got := doc.Root.Children[0].Text; got != "<div>standalone</div>" {
		t.Errorf("unexpected block text %q", got)
	}
	if got := doc.Root.Children[1].Text; got != "after" {
		t.Errorf("unexpected paragraph text %q", got)
	}
}

func TestMarkdownParser_Empty(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Root.Children) != 0 {
		t.Errorf("expected no blocks, got %d", len(doc.Root.Children))
	}
}
