package template

import (
	"fmt"
	"regexp"
	"strings"
)

// Schema is a validated mapping template: root element names, each carrying
// an ordered list of sections. Declaration order is significant everywhere
// and is preserved exactly as written in the template file.
type Schema struct {
	Roots []RootMapping
}

// RootMapping groups the sections emitted for every occurrence of one
// root element name in the source document.
type RootMapping struct {
	Root     string
	Sections []Section
}

// Section is a record label plus the ordered field paths resolved for it.
type Section struct {
	Code   string
	Fields []FieldPath
}

// FieldPath references a value relative to a record group's root element:
// the text of a direct child (Attribute empty), or one of that child's
// attributes.
type FieldPath struct {
	Element   string
	Attribute string
}

func (p FieldPath) String() string {
	if p.Attribute == "" {
		return p.Element
	}
	return p.Element + "=" + p.Attribute
}

// SchemaError reports a template that is structurally invalid.
type SchemaError struct {
	Root    string
	Section string
	Msg     string
}

func (e *SchemaError) Error() string {
	switch {
	case e.Section != "":
		return fmt.Sprintf("template: root %q section %q: %s", e.Root, e.Section, e.Msg)
	case e.Root != "":
		return fmt.Sprintf("template: root %q: %s", e.Root, e.Msg)
	default:
		return "template: " + e.Msg
	}
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.:-]*$`)

// ParseFieldPath parses "element" or "element=attribute". Anything else,
// including a second "=", is rejected.
func ParseFieldPath(s string) (FieldPath, error) {
	elem, attr, hasAttr := strings.Cut(s, "=")
	if !identRe.MatchString(elem) {
		return FieldPath{}, fmt.Errorf("invalid field path %q", s)
	}
	if hasAttr && !identRe.MatchString(attr) {
		return FieldPath{}, fmt.Errorf("invalid field path %q", s)
	}
	return FieldPath{Element: elem, Attribute: attr}, nil
}

// Validate checks the structural rules a loaded schema must satisfy:
// at least one root, every root has at least one section, every section
// has at least one field path.
func (s *Schema) Validate() error {
	if len(s.Roots) == 0 {
		return &SchemaError{Msg: "no root mappings defined"}
	}
	seen := make(map[string]bool, len(s.Roots))
	for _, rm := range s.Roots {
		if rm.Root == "" {
			return &SchemaError{Msg: "empty root element name"}
		}
		if seen[rm.Root] {
			return &SchemaError{Root: rm.Root, Msg: "duplicate root mapping"}
		}
		seen[rm.Root] = true
		if len(rm.Sections) == 0 {
			return &SchemaError{Root: rm.Root, Msg: "no sections defined"}
		}
		for _, sec := range rm.Sections {
			if sec.Code == "" {
				return &SchemaError{Root: rm.Root, Msg: "empty section code"}
			}
			if len(sec.Fields) == 0 {
				return &SchemaError{Root: rm.Root, Section: sec.Code, Msg: "empty field list"}
			}
		}
	}
	return nil
}
