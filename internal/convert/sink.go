package convert

import (
	"bytes"
	"fmt"
	"io"
)

// Sink accepts output lines in emission order and writes them to the
// destination in batches. Lines are never reordered.
type Sink struct {
	w       io.Writer
	buf     bytes.Buffer
	pending int
	limit   int
}

// NewSink wraps w with a line buffer that flushes every bufferLines lines.
func NewSink(w io.Writer, bufferLines int) *Sink {
	if bufferLines <= 0 {
		bufferLines = DefaultBufferLines
	}
	return &Sink{w: w, limit: bufferLines}
}

// WriteLine appends one record (without terminator) to the buffer,
// flushing when the buffered line count reaches the threshold.
func (s *Sink) WriteLine(line string) error {
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	s.pending++
	if s.pending >= s.limit {
		return s.Flush()
	}
	return nil
}

// Flush writes any buffered lines to the destination.
func (s *Sink) Flush() error {
	if s.pending == 0 {
		return nil
	}
	if _, err := s.w.Write(s.buf.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	s.buf.Reset()
	s.pending = 0
	return nil
}

// Close flushes the remaining buffer. It must be called at the end of
// every run, including runs that produced no lines.
func (s *Sink) Close() error {
	return s.Flush()
}
