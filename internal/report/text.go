package report

import (
	"fmt"
	"io"
)

// TextFormatter writes a summary as compact text
type TextFormatter struct {
	writer io.Writer
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(w io.Writer) *TextFormatter {
	return &TextFormatter{writer: w}
}

// Format writes the summary in compact text format
func (f *TextFormatter) Format(s *Summary) error {
	_, _ = fmt.Fprintln(f.writer, "TABLES")
	for _, t := range s.Tables {
		_, _ = fmt.Fprintf(f.writer, "  %s: %d\n", t.Table, t.Rows)
	}

	if len(s.Systems) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "SYSTEMS")
		for _, sys := range s.Systems {
			_, _ = fmt.Fprintf(f.writer, "  %s: %d bodies\n", sys.System, sys.Bodies)
		}
	}
	return nil
}
