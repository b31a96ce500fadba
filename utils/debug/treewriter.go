// Package debug renders intermediate structures in human readable form for
// debug reports.
package debug

import (
	"fmt"
	"strconv"
	"strings"

	"restyle/rewrite"
)

type TreeWriter struct {
	w *strings.Builder
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{w: &strings.Builder{}}
}

func (tw TreeWriter) String() string {
	return tw.w.String()
}

func (tw TreeWriter) indent(depth int) {
	for range depth {
		tw.w.WriteString("  ")
	}
}

func (tw TreeWriter) Line(depth int, format string, args ...any) {
	tw.indent(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// Value writes label followed by the value and its Go type, strings are
// quoted.
func (tw TreeWriter) Value(depth int, label string, value any) {
	tw.indent(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	if s, ok := value.(string); ok {
		tw.w.WriteString(strconv.Quote(s))
	} else {
		fmt.Fprintf(tw.w, "%s (%T)", rewrite.String(value), value)
	}
	tw.w.WriteByte('\n')
}

// Style writes style tree: nested blocks are indented, lists get an entry per
// item.
func (tw TreeWriter) Style(depth int, style rewrite.Block) {
	for _, d := range style {
		switch v := d.Value.(type) {
		case rewrite.Block:
			tw.Line(depth, "%s {%d}", d.Name, len(v))
			tw.Style(depth+1, v)
		case []any:
			tw.Line(depth, "%s [%d]", d.Name, len(v))
			for i, item := range v {
				tw.Value(depth+1, strconv.Itoa(i), item)
			}
		default:
			tw.Value(depth, d.Name, v)
		}
	}
}

// DumpStyle returns style tree as text.
func DumpStyle(style rewrite.Block) string {
	tw := NewTreeWriter()
	tw.Style(0, style)
	return tw.String()
}
