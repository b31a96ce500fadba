package rewrite

import (
	"strings"

	strconvParse "github.com/tdewolff/parse/v2/strconv"
)

// rangeEpsilon turns inclusive min-/max- features into exclusive bounds.
const rangeEpsilon = 0.0625

// rangeClause is a parsed media range comparison: "(left op right)" or
// "(left op right op2 third)".
type rangeClause struct {
	left, op, right string
	op2, third      string
}

// ExpandAtRule resolves "@alias" against media aliases and expands range
// comparisons in the resulting at-rule prelude.
func ExpandAtRule(name string, media map[string]string) string {
	if q, ok := media[name[1:]]; ok {
		name = "@media " + q
	}
	return ExpandMediaRanges(name)
}

// ExpandMediaRanges rewrites every parenthesized range comparison of the query
// into min-/max- media features. Anything it does not recognize is kept as is.
func ExpandMediaRanges(query string) string {
	if !strings.ContainsAny(query, "<=>") {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	for i := 0; i < len(query); {
		if query[i] == '(' {
			if c, n, ok := parseRange(query[i:]); ok {
				b.WriteString(c.String())
				i += n
				continue
			}
		}
		b.WriteByte(query[i])
		i++
	}
	return b.String()
}

// parseRange parses range clause at the beginning of s and returns number of
// bytes consumed.
func parseRange(s string) (c rangeClause, n int, ok bool) {
	sc := &rangeScanner{s: s, pos: 1}
	sc.spaces()
	if c.left, ok = sc.word(); !ok {
		return
	}
	sc.spaces()
	if c.op, ok = sc.operator(true); !ok {
		return
	}
	sc.spaces()
	if c.right, ok = sc.word(); !ok {
		return
	}
	sc.spaces()
	if sc.peek() != ')' {
		if c.op2, ok = sc.operator(false); !ok {
			return
		}
		sc.spaces()
		if c.third, ok = sc.word(); !ok {
			return
		}
		sc.spaces()
	}
	if sc.peek() != ')' {
		return c, 0, false
	}
	return c, sc.pos + 1, true
}

func (c rangeClause) String() string {
	valueFirst := strings.IndexFunc(c.left, func(r rune) bool { return r < 0x80 && isDigit(byte(r)) }) >= 0
	name, value := c.left, c.right
	shift := rangeEpsilon
	if valueFirst {
		name, value = c.right, c.left
		shift = -shift
	}

	var b strings.Builder
	b.WriteByte('(')
	if c.op != "=" {
		if (c.op[0] == '>') == valueFirst {
			b.WriteString("max-")
		} else {
			b.WriteString("min-")
		}
		if len(c.op) == 1 {
			if c.op == ">" {
				value = shiftNumber(value, shift)
			} else {
				value = shiftNumber(value, -shift)
			}
		}
	}
	b.WriteString(name)
	b.WriteByte(':')
	b.WriteString(value)

	if c.op2 != "" {
		b.WriteString(") and (")
		if c.op2[0] == '>' {
			b.WriteString("min-")
		} else {
			b.WriteString("max-")
		}
		third := c.third
		if len(c.op2) == 1 {
			if c.op2 == ">" {
				third = shiftNumber(third, -shift)
			} else {
				third = shiftNumber(third, shift)
			}
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(third)
	}
	b.WriteByte(')')
	return b.String()
}

// shiftNumber adds delta to the first number found in value, keeping whatever
// surrounds it (normally a unit).
func shiftNumber(value string, delta float64) string {
	start := strings.IndexFunc(value, func(r rune) bool { return r == '.' || r < 0x80 && isDigit(byte(r)) })
	if start < 0 {
		return value
	}
	end := start
	for end < len(value) && (value[end] == '.' || isDigit(value[end])) {
		end++
	}
	f, n := strconvParse.ParseFloat([]byte(value[start:end]))
	if n != end-start {
		return value[:start] + "NaN" + value[end:]
	}
	return value[:start] + FormatNumber(f+delta) + value[end:]
}

type rangeScanner struct {
	s   string
	pos int
}

func (sc *rangeScanner) peek() byte {
	if sc.pos < len(sc.s) {
		return sc.s[sc.pos]
	}
	return 0
}

func (sc *rangeScanner) spaces() {
	for sc.pos < len(sc.s) && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
}

func (sc *rangeScanner) word() (string, bool) {
	start := sc.pos
	for sc.pos < len(sc.s) && isWord(sc.s[sc.pos]) {
		sc.pos++
	}
	return sc.s[start:sc.pos], sc.pos > start
}

// operator accepts <, <=, >, >= and, when allowed, a single =.
func (sc *rangeScanner) operator(allowEq bool) (string, bool) {
	switch c := sc.peek(); c {
	case '=':
		if !allowEq {
			return "", false
		}
		sc.pos++
		return "=", true
	case '<', '>':
		sc.pos++
		if sc.peek() == '=' {
			sc.pos++
			return string(c) + "=", true
		}
		return string(c), true
	}
	return "", false
}
