package css

import (
	"fmt"
	"io"
	"strings"
)

// Declaration is a single property assignment.
type Declaration struct {
	Property string
	Value    string
	Custom   bool // custom property (--name)
}

// Rule is a ruleset: selector list and its declarations in source order.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// Get returns value of the last declaration of the property.
func (r Rule) Get(property string) (string, bool) {
	for i := len(r.Declarations) - 1; i >= 0; i-- {
		if r.Declarations[i].Property == property {
			return r.Declarations[i].Value, true
		}
	}
	return "", false
}

// Group is a conditional group rule (@media, @supports and such) with its
// nested items.
type Group struct {
	Name    string // "@media"
	Prelude string // "(min-width:640px)"
	Items   []Item
}

// Statement is an at-rule without a block (@import "a.css").
type Statement struct {
	Name    string
	Prelude string
}

// Item is a single entry of a stylesheet or a group.
// Exactly one of Rule, Group, or Statement is non-nil.
type Item struct {
	Rule      *Rule
	Group     *Group
	Statement *Statement
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []Item
	Warnings []string
}

// Rules returns all rules including the ones nested in groups, in source order.
func (s *Stylesheet) Rules() []Rule {
	return collectRules(s.Items, nil)
}

func collectRules(items []Item, out []Rule) []Rule {
	for _, item := range items {
		switch {
		case item.Rule != nil:
			out = append(out, *item.Rule)
		case item.Group != nil:
			out = collectRules(item.Group.Items, out)
		}
	}
	return out
}

// RulesBySelector returns all rules (at any level) which selector list
// contains the selector.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, r := range s.Rules() {
		for _, sel := range r.Selectors {
			if sel == selector {
				matches = append(matches, r)
				break
			}
		}
	}
	return matches
}

// WriteTo writes indented stylesheet to w, implementing io.WriterTo.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	writeItems(cw, s.Items, "")
	return cw.n, cw.err
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (cw *countingWriter) printf(format string, args ...any) {
	if cw.err != nil {
		return
	}
	n, err := fmt.Fprintf(cw.w, format, args...)
	cw.n += int64(n)
	cw.err = err
}

func writeItems(cw *countingWriter, items []Item, indent string) {
	for i, item := range items {
		if i > 0 && item.Statement == nil && items[i-1].Statement == nil {
			cw.printf("\n")
		}
		switch {
		case item.Statement != nil:
			cw.printf("%s%s %s;\n", indent, item.Statement.Name, item.Statement.Prelude)
		case item.Group != nil:
			cw.printf("%s%s %s {\n", indent, item.Group.Name, item.Group.Prelude)
			writeItems(cw, item.Group.Items, indent+"  ")
			cw.printf("%s}\n", indent)
		case item.Rule != nil:
			cw.printf("%s%s {\n", indent, strings.Join(item.Rule.Selectors, ", "))
			for _, d := range item.Rule.Declarations {
				cw.printf("%s  %s: %s;\n", indent, d.Property, d.Value)
			}
			cw.printf("%s}\n", indent)
		}
	}
}
