// Package editor is the interactive fixer for raw survey records. It exists
// for the two fields volunteers most often mangle: day length and
// habitability rank.
package editor

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/wrenholt/galaxydb/internal/survey"
)

// Editor walks a system's bodies and lets the operator replace field values
// in place. Replacements are written back under the record's stored key
// spelling, everything else is left untouched.
type Editor struct {
	in  *bufio.Scanner
	out io.Writer
}

// New creates an Editor reading answers from in and prompting on out.
func New(in io.Reader, out io.Writer) *Editor {
	return &Editor{in: bufio.NewScanner(in), out: out}
}

// EditSystem prompts for new planet length and habitability rank values for
// every body of the named system, matched case-insensitively. It reports
// whether any record changed.
func (e *Editor) EditSystem(s survey.Survey, systemName string) (bool, error) {
	stored, bodies, ok := s.System(systemName)
	if !ok {
		return false, fmt.Errorf("system %q not found in survey", systemName)
	}
	_, _ = fmt.Fprintf(e.out, "Editing system: %s\n", stored)

	names := make([]string, 0, len(bodies))
	for name := range bodies {
		names = append(names, name)
	}
	sort.Strings(names)

	changed := false
	for _, name := range names {
		ch, err := e.editBody(name, bodies[name])
		if err != nil {
			return changed, err
		}
		changed = changed || ch
	}
	return changed, nil
}

func (e *Editor) editBody(name string, rec survey.Record) (bool, error) {
	_, _ = fmt.Fprintf(e.out, "\nBody: %s\n", name)
	_, _ = fmt.Fprintf(e.out, "Current planet length: %s\n", display(rec, "planet_length"))
	_, _ = fmt.Fprintf(e.out, "Current habitability rank: %s\n", display(rec, "hab_rank"))

	changed := false
	length, err := e.prompt("Enter new planet length (or press Enter to keep current): ")
	if err != nil {
		return changed, err
	}
	if length != "" {
		rec.Set("planet_length", length)
		_, _ = fmt.Fprintf(e.out, "Planet length for %s updated\n", name)
		changed = true
	}

	rank, err := e.prompt("Enter new habitability rank (or press Enter to keep current): ")
	if err != nil {
		return changed, err
	}
	if rank != "" {
		rec.Set("hab_rank", rank)
		_, _ = fmt.Fprintf(e.out, "Habitability rank for %s updated\n", name)
		changed = true
	}
	return changed, nil
}

// prompt reads one line of input. End of input counts as an empty answer, so
// a closed stdin keeps all remaining values.
func (e *Editor) prompt(msg string) (string, error) {
	_, _ = fmt.Fprint(e.out, msg)
	if !e.in.Scan() {
		if err := e.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", nil
	}
	return e.in.Text(), nil
}

func display(rec survey.Record, key string) string {
	_, v, ok := rec.Lookup(key)
	if !ok {
		return "Unknown"
	}
	return fmt.Sprintf("%v", v)
}
