package convert

import (
	"log/slog"
	"strings"

	"github.com/tanmay031/xml2delimiter/internal/doctree"
	"github.com/tanmay031/xml2delimiter/internal/template"
)

// Assembler turns record groups into delimited output lines.
type Assembler struct {
	opts Options
	log  *slog.Logger
}

func NewAssembler(opts Options, log *slog.Logger) *Assembler {
	return &Assembler{opts: opts.withDefaults(), log: log}
}

// Group produces the full ordered set of section lines for one occurrence
// of a schema root. Sections come out in declaration order; lines whose
// resolved values are all empty are suppressed.
func (a *Assembler) Group(node *doctree.Element, sections []template.Section) []string {
	lines := make([]string, 0, len(sections))
	for _, sec := range sections {
		if line, ok := a.Line(sec.Code, node, sec.Fields); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// Line builds a single record: the section code followed by every field
// value in declared order, joined by the delimiter. A missing element or
// attribute contributes an empty column so the column count stays stable.
// The second return is false when every value resolved empty.
func (a *Assembler) Line(code string, node *doctree.Element, fields []template.FieldPath) (string, bool) {
	values := make([]string, 0, len(fields)+1)
	values = append(values, code)

	nonEmpty := false
	for _, fp := range fields {
		v, ok := Resolve(node, fp)
		if !ok {
			a.log.Debug("field absent", "root", node.Name, "path", fp.String())
		}
		if a.opts.Strip {
			v = strings.TrimSpace(v)
		}
		if v != "" {
			nonEmpty = true
		}
		values = append(values, v)
	}

	if !nonEmpty {
		return "", false
	}
	return strings.Join(values, a.opts.Delimiter), true
}
