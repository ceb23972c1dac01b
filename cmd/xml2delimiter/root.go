package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/tanmay031/xml2delimiter/internal/convert"
	"github.com/tanmay031/xml2delimiter/internal/parser"
	"github.com/tanmay031/xml2delimiter/internal/template"
)

func newRootCmd() *cobra.Command {
	var (
		delimiter   string
		strip       bool
		bufferLines int
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "xml2delimiter <source> <template> <destination>",
		Short: "Convert hierarchical markup documents into delimited text records",
		Long: `xml2delimiter converts a markup document (XML, HTML, Markdown, DOCX or
PDF) into flat delimited records, driven by a JSON or YAML template that
maps root element names to section codes and ordered field paths.

A field path is either an element name (resolving to the text of the
first matching direct child) or element=attribute (resolving to that
child's attribute value). Missing fields produce empty columns.`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := convert.Options{
				Delimiter:   delimiter,
				Strip:       strip,
				BufferLines: bufferLines,
			}
			return runConvert(args[0], args[1], args[2], opts, verbose)
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", convert.DefaultDelimiter, "string used to join fields")
	cmd.Flags().BoolVar(&strip, "strip", false, "trim leading/trailing whitespace from resolved values")
	cmd.Flags().IntVar(&bufferLines, "buffer-lines", convert.DefaultBufferLines, "output lines buffered between flushes")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newServeCmd())
	return cmd
}

func runConvert(srcPath, tmplPath, dstPath string, opts convert.Options, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// The template is validated before the document is touched, and the
	// document is parsed before the destination is created.
	schema, err := template.LoadFile(tmplPath)
	if err != nil {
		return err
	}

	p, err := parser.ForFile(srcPath)
	if err != nil {
		return err
	}
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open source %s: %w", srcPath, err)
	}
	doc, err := p.Parse(src, filepath.Base(srcPath))
	src.Close()
	if err != nil {
		return err
	}

	out, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create destination %s: %w", dstPath, err)
	}

	sink := convert.NewSink(out, opts.BufferLines)
	res, err := convert.Run(doc, schema, opts, sink, log)
	if err == nil {
		err = sink.Close()
	}
	if err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close destination %s: %w", dstPath, err)
	}

	log.Info("conversion complete",
		"groups", res.Groups,
		"lines", res.Lines,
		"elapsed", res.Elapsed.Round(time.Millisecond).String(),
	)
	return nil
}
