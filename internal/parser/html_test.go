package parser

import (
	"strings"
	"testing"
)

func TestHTMLParser_ElementsAndAttributes(t *testing.T) {
	in := `<html><body>
		<div class="book" data-id="bk-1"><span>The Great Gatsby</span></div>
		<div class="book" data-id="bk-2"><span>Moby Dick</span></div>
	</body></html>`

	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(in), "books.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Root.Name != "html" {
		t.Fatalf("expected html root, got %q", doc.Root.Name)
	}

	divs := doc.FindAll("div")
	if len(divs) != 2 {
		t.Fatalf("expected 2 divs, got %d", len(divs))
	}
	if id, _ := divs[0].Attr("data-id"); id != "bk-1" {
		t.Errorf("expected bk-1 first, got %q", id)
	}
	if span := divs[0].Child("span"); span == nil || span.Text != "The Great Gatsby" {
		t.Errorf("unexpected span: %+v", span)
	}
}

func TestHTMLParser_SkipsScriptAndStyle(t *testing.T) {
	in := `<html><head><style>p{}</style></head><body><script>alert(1)</script><p>hi</p></body></html>`
	p := &HTMLParser{}
	doc, err := p.Parse(strings.NewReader(in), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.FindAll("script")) != 0 || len(doc.FindAll("style")) != 0 {
		t.Error("expected script and style elements to be dropped")
	}
	if len(doc.FindAll("p")) != 1 {
		t.Error("expected the paragraph to survive")
	}
}
