package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadFile reads and validates a template file. The format is chosen by
// extension: .yaml/.yml parse as YAML, everything else as JSON. Both
// loaders preserve the order keys appear in the file, which drives the
// emission order of roots and sections.
func LoadFile(path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseJSON(data)
	}
}

// ParseJSON parses a JSON template of the shape
// {"root": {"code": ["path", ...], ...}, ...}.
//
// encoding/json maps discard key order, so the object is walked with the
// token decoder instead.
func ParseJSON(data []byte) (*Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, &SchemaError{Msg: "expected top-level object: " + err.Error()}
	}

	var s Schema
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &SchemaError{Msg: err.Error()}
		}
		root, ok := tok.(string)
		if !ok {
			return nil, &SchemaError{Msg: fmt.Sprintf("expected root name, got %v", tok)}
		}

		rm, err := parseJSONRoot(dec, root)
		if err != nil {
			return nil, err
		}
		s.Roots = append(s.Roots, rm)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func parseJSONRoot(dec *json.Decoder, root string) (RootMapping, error) {
	rm := RootMapping{Root: root}

	if err := expectDelim(dec, '{'); err != nil {
		return rm, &SchemaError{Root: root, Msg: "expected section object: " + err.Error()}
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return rm, &SchemaError{Root: root, Msg: err.Error()}
		}
		code, ok := tok.(string)
		if !ok {
			return rm, &SchemaError{Root: root, Msg: fmt.Sprintf("expected section code, got %v", tok)}
		}

		var raw []string
		if err := dec.Decode(&raw); err != nil {
			return rm, &SchemaError{Root: root, Section: code, Msg: "expected list of field paths: " + err.Error()}
		}
		fields, err := parseFields(root, code, raw)
		if err != nil {
			return rm, err
		}
		rm.Sections = append(rm.Sections, Section{Code: code, Fields: fields})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return rm, &SchemaError{Root: root, Msg: err.Error()}
	}
	return rm, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// ParseYAML parses the same mapping shape from YAML. The yaml.Node API is
// used because decoding into map[string]any would lose key order.
func ParseYAML(data []byte) (*Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SchemaError{Msg: err.Error()}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &SchemaError{Msg: "empty template document"}
	}

	top := doc.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, &SchemaError{Msg: "expected top-level mapping"}
	}

	var s Schema
	for i := 0; i < len(top.Content); i += 2 {
		root := top.Content[i].Value
		rm, err := parseYAMLRoot(root, top.Content[i+1])
		if err != nil {
			return nil, err
		}
		s.Roots = append(s.Roots, rm)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func parseYAMLRoot(root string, node *yaml.Node) (RootMapping, error) {
	rm := RootMapping{Root: root}
	if node.Kind != yaml.MappingNode {
		return rm, &SchemaError{Root: root, Msg: "expected section mapping"}
	}
	for i := 0; i < len(node.Content); i += 2 {
		code := node.Content[i].Value
		seq := node.Content[i+1]
		if seq.Kind != yaml.SequenceNode {
			return rm, &SchemaError{Root: root, Section: code, Msg: "expected list of field paths"}
		}
		raw := make([]string, 0, len(seq.Content))
		for _, item := range seq.Content {
			raw = append(raw, item.Value)
		}
		fields, err := parseFields(root, code, raw)
		if err != nil {
			return rm, err
		}
		rm.Sections = append(rm.Sections, Section{Code: code, Fields: fields})
	}
	return rm, nil
}

func parseFields(root, code string, raw []string) ([]FieldPath, error) {
	fields := make([]FieldPath, 0, len(raw))
	for _, r := range raw {
		fp, err := ParseFieldPath(r)
		if err != nil {
			return nil, &SchemaError{Root: root, Section: code, Msg: err.Error()}
		}
		fields = append(fields, fp)
	}
	return fields, nil
}
