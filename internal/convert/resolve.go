package convert

import (
	"github.com/tanmay031/xml2delimiter/internal/doctree"
	"github.com/tanmay031/xml2delimiter/internal/template"
)

// Resolve evaluates one field path against a record group's root element.
// An element-only path yields the text of the first direct child with that
// name; an attribute path yields the named attribute of that child. The
// second return is false when the child or attribute does not exist —
// absence is an expected condition, not an error.
func Resolve(root *doctree.Element, path template.FieldPath) (string, bool) {
	child := root.Child(path.Element)
	if child == nil {
		return "", false
	}
	if path.Attribute == "" {
		return child.Text, true
	}
	return child.Attr(path.Attribute)
}
