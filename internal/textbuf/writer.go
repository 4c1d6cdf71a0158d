// Package textbuf assembles indented source text line by line.
// The emitters use it for computed code bodies that would be awkward to
// express inside a template.
package textbuf

import (
	"fmt"
	"strings"
)

// Writer accumulates lines at the current indentation depth.
// The zero value is not usable; use New.
type Writer struct {
	sb     strings.Builder
	depth  int
	unit   string
	wasGap bool
}

// New returns a Writer indenting with four spaces per level.
func New() *Writer {
	return &Writer{unit: "    "}
}

// NewUnit returns a Writer using the given indentation unit.
func NewUnit(unit string) *Writer {
	return &Writer{unit: unit}
}

// Push increases the indentation depth by one level.
func (w *Writer) Push() *Writer {
	w.depth++
	return w
}

// Pop decreases the indentation depth by one level.
func (w *Writer) Pop() *Writer {
	if w.depth > 0 {
		w.depth--
	}
	return w
}

// Line writes a formatted line at the current depth.
func (w *Writer) Line(format string, args ...any) *Writer {
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	if format == "" {
		return w.Blank()
	}
	w.sb.WriteString(strings.Repeat(w.unit, w.depth))
	w.sb.WriteString(format)
	w.sb.WriteByte('\n')
	w.wasGap = false
	return w
}

// Blank writes a single empty line. Consecutive calls coalesce.
func (w *Writer) Blank() *Writer {
	if !w.wasGap && w.sb.Len() > 0 {
		w.sb.WriteByte('\n')
		w.wasGap = true
	}
	return w
}

// Block writes a multi-line string, re-indenting every non-empty line
// to the current depth.
func (w *Writer) Block(text string) *Writer {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		trimmed := strings.TrimRight(line, " \t")
		if trimmed == "" {
			w.Blank()
			continue
		}
		w.sb.WriteString(strings.Repeat(w.unit, w.depth))
		w.sb.WriteString(trimmed)
		w.sb.WriteByte('\n')
		w.wasGap = false
	}
	return w
}

// String returns the accumulated text.
func (w *Writer) String() string {
	return w.sb.String()
}
