// Package stringify walks a style tree and serializes it into compact CSS text,
// giving a replacer the chance to rewrite every visited pair on the way.
package stringify

import (
	"slices"
	"strings"

	"restyle/casing"
	"restyle/rewrite"
)

// Replacer returns replacement for the visited pair or nil to keep it.
type Replacer func(name string, value any) (rewrite.Block, error)

// Stringify serializes style. Nested blocks under at-rule names become
// conditions, nested blocks under other names become (possibly "&" relative)
// selectors. Replacement blocks are walked in place of the pair which produced
// them; the replacer is not called again for an identical pair inside its own
// replacement. The first replacer error aborts the walk.
func Stringify(style rewrite.Block, replace Replacer) (string, error) {
	w := &walker{replace: replace}
	if err := w.walk(style, nil, nil, origin{}); err != nil {
		return "", err
	}
	w.reopen(nil)
	return w.out.String(), nil
}

// origin is the pair a replacement block was produced from.
type origin struct {
	set   bool
	name  string
	value any
}

func (o origin) is(name string, value any) bool {
	return o.set && o.name == name && rewrite.SameValue(o.value, value)
}

type walker struct {
	replace Replacer
	out     strings.Builder
	// open holds headers (conditions followed by selector list) of the blocks
	// currently open in the output
	open []string
}

func (w *walker) walk(style rewrite.Block, selectors, conditions []string, from origin) error {
	for _, d := range style {
		atRule := strings.HasPrefix(d.Name, "@")

		values := []any{d.Value}
		if list, ok := d.Value.([]any); ok && atRule {
			values = list
		}

		for _, value := range values {
			if w.replace != nil && !from.is(d.Name, value) {
				next, err := w.replace(d.Name, value)
				if err != nil {
					return err
				}
				if next != nil {
					if err := w.walk(next, selectors, conditions, origin{set: true, name: d.Name, value: value}); err != nil {
						return err
					}
					continue
				}
			}

			if block, ok := value.(rewrite.Block); ok {
				var err error
				if atRule {
					err = w.walk(block, selectors, append(slices.Clip(conditions), d.Name), origin{})
				} else {
					err = w.walk(block, Resolve(selectors, Split(d.Name)), conditions, origin{})
				}
				if err != nil {
					return err
				}
				continue
			}

			w.reopen(headers(conditions, selectors))
			if atRule {
				w.out.WriteString(d.Name + " " + rewrite.String(value) + ";")
			} else {
				w.out.WriteString(casing.ToKebab(d.Name) + ":" + rewrite.String(value) + ";")
			}
		}
	}
	return nil
}

// reopen closes blocks which do not match requested headers and opens the
// missing ones.
func (w *walker) reopen(want []string) {
	common := 0
	for common < len(w.open) && common < len(want) && w.open[common] == want[common] {
		common++
	}
	for range len(w.open) - common {
		w.out.WriteByte('}')
	}
	for _, h := range want[common:] {
		w.out.WriteString(h + "{")
	}
	w.open = append(w.open[:common], want[common:]...)
}

func headers(conditions, selectors []string) []string {
	h := slices.Clone(conditions)
	if len(selectors) > 0 {
		h = append(h, strings.Join(selectors, ","))
	}
	return h
}

// Split splits selector list on commas which are not enclosed in parentheses.
func Split(list string) []string {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(list[start:i]))
				start = i + 1
			}
		}
	}
	return append(parts, strings.TrimSpace(list[start:]))
}

// Resolve combines every parent selector with every nested one. Nested
// selectors refer to the parent with "&", otherwise they are descendants.
func Resolve(parents, nested []string) []string {
	if len(parents) == 0 {
		return nested
	}
	out := make([]string, 0, len(parents)*len(nested))
	for _, p := range parents {
		for _, n := range nested {
			if !strings.Contains(n, "&") {
				out = append(out, p+" "+n)
				continue
			}
			ref := p
			if strings.ContainsAny(p, " +>|~") && strings.Count(n, "&") > 1 {
				ref = ":is(" + p + ")"
			}
			out = append(out, strings.ReplaceAll(n, "&", ref))
		}
	}
	return out
}
