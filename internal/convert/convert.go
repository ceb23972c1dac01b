package convert

import (
	"log/slog"
	"time"

	"github.com/tanmay031/xml2delimiter/internal/doctree"
	"github.com/tanmay031/xml2delimiter/internal/template"
)

// Options controls how records are assembled and buffered. A zero value
// means defaults: "|" delimiter, no whitespace stripping, 1000-line buffer.
type Options struct {
	Delimiter   string
	Strip       bool
	BufferLines int
}

const (
	DefaultDelimiter   = "|"
	DefaultBufferLines = 1000
)

func (o Options) withDefaults() Options {
	if o.Delimiter == "" {
		o.Delimiter = DefaultDelimiter
	}
	if o.BufferLines <= 0 {
		o.BufferLines = DefaultBufferLines
	}
	return o
}

// Result summarizes a completed conversion run.
type Result struct {
	Groups  int
	Lines   int
	Elapsed time.Duration
}

// Run walks the schema's roots in declaration order, extracts every
// matching record group from the document, assembles its section lines
// and hands them to the sink. The sink is not closed; the caller owns it.
func Run(doc *doctree.Document, schema *template.Schema, opts Options, sink *Sink, log *slog.Logger) (Result, error) {
	opts = opts.withDefaults()
	asm := NewAssembler(opts, log)

	start := time.Now()
	var res Result

	for _, rm := range schema.Roots {
		nodes := doc.FindAll(rm.Root)
		log.Debug("extracted record groups", "root", rm.Root, "count", len(nodes))

		for _, node := range nodes {
			for _, line := range asm.Group(node, rm.Sections) {
				if err := sink.WriteLine(line); err != nil {
					return res, err
				}
				res.Lines++
			}
			res.Groups++
			if res.Groups%100 == 0 {
				elapsed := time.Since(start)
				log.Info("progress",
					"groups", res.Groups,
					"rate_per_sec", rate(res.Groups, elapsed),
				)
			}
		}
	}

	res.Elapsed = time.Since(start)
	return res, nil
}

func rate(n int, elapsed time.Duration) int64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return 0
	}
	return int64(float64(n) / secs)
}
