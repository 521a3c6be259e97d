package report

import (
	"fmt"
	"io"
)

// MarkdownFormatter formats a summary as markdown
type MarkdownFormatter struct {
	writer io.Writer
}

// NewMarkdownFormatter creates a new markdown formatter
func NewMarkdownFormatter(w io.Writer) *MarkdownFormatter {
	return &MarkdownFormatter{writer: w}
}

// Format writes the summary in markdown format
func (f *MarkdownFormatter) Format(s *Summary) error {
	_, _ = fmt.Fprintln(f.writer, "# Galaxy Database")
	_, _ = fmt.Fprintln(f.writer)

	_, _ = fmt.Fprintln(f.writer, "## Tables")
	_, _ = fmt.Fprintln(f.writer)
	_, _ = fmt.Fprintln(f.writer, "| Table | Rows |")
	_, _ = fmt.Fprintln(f.writer, "|-------|------|")
	for _, t := range s.Tables {
		_, _ = fmt.Fprintf(f.writer, "| %s | %d |\n", t.Table, t.Rows)
	}

	if len(s.Systems) > 0 {
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "## Systems")
		_, _ = fmt.Fprintln(f.writer)
		_, _ = fmt.Fprintln(f.writer, "| System | Bodies |")
		_, _ = fmt.Fprintln(f.writer, "|--------|--------|")
		for _, sys := range s.Systems {
			_, _ = fmt.Fprintf(f.writer, "| %s | %d |\n", sys.System, sys.Bodies)
		}
	}
	return nil
}
