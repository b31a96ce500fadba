package rewrite

import "strings"

// TokenKind distinguishes plain text from token references inside a value.
type TokenKind int

const (
	// Literal is text copied to the output unchanged.
	Literal TokenKind = iota
	// Ref is a "$name" theme reference or a "--name" custom property reference,
	// optionally preceded by a sign and a numeric multiplier.
	Ref
)

// Token is a single element of a scanned declaration value.
type Token struct {
	Kind TokenKind
	// Text holds the exact source text of the token.
	Text string

	// The rest is filled only for references.
	Sign       string // "+", "-" or empty
	Multiplier string // numeric text as written, empty when absent
	Separator  string // "$" or "--"
	Name       string // identifier following the separator, may contain '$'
}

// ScanTokens splits value into literal runs and references. Concatenating Text of
// all returned tokens always gives back the original value.
func ScanTokens(value string) []Token {
	var (
		tokens []Token
		lit    int
	)
	for i := 0; i < len(value); {
		ref, n := scanRef(value[i:])
		if n == 0 {
			i++
			continue
		}
		if lit < i {
			tokens = append(tokens, Token{Kind: Literal, Text: value[lit:i]})
		}
		tokens = append(tokens, ref)
		i += n
		lit = i
	}
	if lit < len(value) {
		tokens = append(tokens, Token{Kind: Literal, Text: value[lit:]})
	}
	return tokens
}

// scanRef matches a reference at the very beginning of s and returns its length,
// zero when there is none. Sign is optional: a leading '-' which cannot start a
// signed reference may still be the first half of "--".
func scanRef(s string) (Token, int) {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		if t, n := scanUnsigned(s[1:]); n > 0 {
			t.Sign, t.Text = s[:1], s[:n+1]
			return t, n + 1
		}
	}
	return scanUnsigned(s)
}

func scanUnsigned(s string) (Token, int) {
	t := Token{Kind: Ref}
	i := scanNumber(s)
	t.Multiplier = s[:i]

	switch {
	case strings.HasPrefix(s[i:], "$"):
		t.Separator = "$"
	case strings.HasPrefix(s[i:], "--"):
		t.Separator = "--"
	default:
		return Token{}, 0
	}
	i += len(t.Separator)

	start := i
	for i < len(s) && (isWord(s[i]) || s[i] == '$') {
		i++
	}
	if i == start {
		return Token{}, 0
	}
	t.Name = s[start:i]
	t.Text = s[:i]
	return t, i
}

// scanNumber returns length of the unsigned decimal number (with optional
// fraction and exponent) at the beginning of s.
func scanNumber(s string) int {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	switch {
	case i > 0:
		if i < len(s) && s[i] == '.' {
			i++
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		}
	case len(s) > 1 && s[0] == '.' && isDigit(s[1]):
		i = 1
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	default:
		return 0
	}
	// exponent is taken only when complete
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

// ReplaceTokens rewrites theme and custom property references found in value.
// Scope, when not empty, qualifies simple "$name" references with the scale
// name ("$4" in scope "space" becomes "var(--space-4)").
func ReplaceTokens(value, scope string) string {
	if !strings.ContainsAny(value, "$-") {
		return value
	}
	var b strings.Builder
	b.Grow(len(value) + 16)
	for _, t := range ScanTokens(value) {
		b.WriteString(t.Render(scope))
	}
	return b.String()
}

// Render produces CSS text for a token.
//
//	$name        -> var(--scope-name)
//	-$name       -> calc(var(--scope-name) * -1)
//	2$name       -> calc(var(--scope-name) * 2)
//	-1.5--name   -> calc(var(--name) * -1.5)
//	--name       -> --name (already a custom property reference)
func (t Token) Render(scope string) string {
	if t.Kind != Ref {
		return t.Text
	}

	var ref string
	switch t.Separator {
	case "$":
		ref = "--"
		if scope != "" && !strings.Contains(t.Name, "$") {
			ref += scope + "-"
		}
		ref += strings.ReplaceAll(t.Name, "$", "-")
	default:
		if t.Multiplier == "" {
			return t.Text
		}
		ref = t.Separator + t.Name
	}

	if t.Sign == "" && t.Multiplier == "" {
		return "var(" + ref + ")"
	}
	multiplier := t.Multiplier
	if multiplier == "" {
		multiplier = "1"
	}
	return "calc(var(" + ref + ") * " + t.Sign + multiplier + ")"
}
