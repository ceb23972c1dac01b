package doctree

// Document is the root of a parsed markup document.
type Document struct {
	Root *Element
}

// Element is a named node in the document tree. Attrs and Children keep
// source order; Text is the element's own character data.
type Element struct {
	Name     string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// Attr is a single name/value attribute pair.
type Attr struct {
	Name  string
	Value string
}

// Attr returns the value of the named attribute, and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first direct child with the given name, or nil.
func (e *Element) Child(name string) *Element {
	for _, c := range e.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindAll returns every element with the given name anywhere in the
// document, in depth-first document order. The root element itself is
// a candidate.
func (d *Document) FindAll(name string) []*Element {
	if d == nil || d.Root == nil {
		return nil
	}
	var found []*Element
	var walk func(*Element)
	walk = func(e *Element) {
		if e.Name == name {
			found = append(found, e)
		}
		for _, c := range e.Children {
			walk(c)
		}
	}
	walk(d.Root)
	return found
}
