package debug

import (
	"testing"

	"restyle/rewrite"
)

func TestDumpStyle(t *testing.T) {
	style := rewrite.Block{
		{Name: "@import", Value: []any{`"a.css"`, 2}},
		{Name: ".a", Value: rewrite.Block{
			{Name: "color", Value: "red"},
			{Name: "zIndex", Value: 2},
			{Name: "&:hover", Value: rewrite.Block{{Name: "opacity", Value: 0.5}}},
		}},
	}

	want := `@import [2]
  0: "\"a.css\""
  1: 2 (int)
.a {3}
  color: "red"
  zIndex: 2 (int)
  &:hover {1}
    opacity: 0.5 (float64)
`
	if got := DumpStyle(style); got != want {
		t.Errorf("DumpStyle() =\n%s\nwant\n%s", got, want)
	}
}

func TestTreeWriter_Line(t *testing.T) {
	tw := NewTreeWriter()
	tw.Line(0, "root")
	tw.Line(2, "child %d", 1)

	if got := tw.String(); got != "root\n    child 1\n" {
		t.Errorf("String() = %q", got)
	}
}

func TestDumpStyle_Empty(t *testing.T) {
	if got := DumpStyle(nil); got != "" {
		t.Errorf("DumpStyle(nil) = %q, want empty", got)
	}
}
