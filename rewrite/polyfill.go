package rewrite

import "strings"

// Polyfill expands a single declaration into its vendor-compatible form.
type Polyfill interface {
	Apply(value any) Block
}

// prefixed emits vendor prefixed declaration followed by the standard one.
type prefixed struct {
	vendor string
	name   string
}

func (p prefixed) Apply(value any) Block {
	return Block{
		{Name: p.vendor + strings.ToUpper(p.name[:1]) + p.name[1:], Value: value},
		{Name: p.name, Value: value},
	}
}

// quotedContent wraps plain text of content property into a string literal.
type quotedContent struct{}

var contentKeywords = map[string]bool{
	"inherit": true,
	"initial": true,
	"none":    true,
	"normal":  true,
	"revert":  true,
	"unset":   true,
}

func (quotedContent) Apply(value any) Block {
	s := String(value)
	if !keepsContent(s) {
		s = `"` + s + `"`
	}
	return Block{{Name: "content", Value: s}}
}

// keepsContent reports whether content value is already a string, a function
// call, a quote keyword or a CSS wide keyword.
func keepsContent(s string) bool {
	if strings.ContainsAny(s, `"'`) || strings.HasSuffix(s, "-quote") || contentKeywords[s] {
		return true
	}
	i := 0
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	return i > 0 && i < len(s) && s[i] == '('
}

// logical splits shorthand of a logical property into its two longhands. Second
// longhand defaults to the first one.
type logical struct {
	first, second string
}

func (l logical) Apply(value any) Block {
	s, ok := value.(string)
	if !ok {
		return Block{{Name: l.first, Value: value}, {Name: l.second, Value: value}}
	}
	parts := splitSpaces(s)
	start, end := parts[0], ""
	if len(parts) > 1 {
		end = parts[1]
	}
	if end == "" {
		end = start
	}
	return Block{{Name: l.first, Value: start}, {Name: l.second, Value: end}}
}

// splitSpaces splits value on runs of white space which are not enclosed in
// parentheses, so "calc(1px + 2px) 3px" yields two parts.
func splitSpaces(s string) []string {
	var (
		parts []string
		start int
	)
	for i := 0; i < len(s); {
		if !isSpace(s[i]) {
			i++
			continue
		}
		j := i
		for j < len(s) && isSpace(s[j]) {
			j++
		}
		if !insideParens(s[j:]) {
			parts = append(parts, s[start:i])
			start = j
		}
		i = j
	}
	return append(parts, s[start:])
}

// insideParens reports whether the closing parenthesis comes before any opening
// one in the rest of the value.
func insideParens(rest string) bool {
	i := strings.IndexAny(rest, "()")
	return i >= 0 && rest[i] == ')'
}

var polyfills = map[string]Polyfill{
	"appearance":         prefixed{"Webkit", "appearance"},
	"backfaceVisibility": prefixed{"Webkit", "backfaceVisibility"},
	"backgroundClip":     prefixed{"Webkit", "backgroundClip"},
	"clipPath":           prefixed{"Webkit", "clipPath"},
	"content":            quotedContent{},
	"hyphens":            prefixed{"Webkit", "hyphens"},
	"maskImage":          prefixed{"Webkit", "maskImage"},
	"tabSize":            prefixed{"Moz", "tabSize"},
	"userSelect":         prefixed{"Webkit", "userSelect"},

	"marginBlock":   logical{"marginBlockStart", "marginBlockEnd"},
	"marginInline":  logical{"marginInlineStart", "marginInlineEnd"},
	"maxSize":       logical{"maxBlockSize", "maxInlineSize"},
	"minSize":       logical{"minBlockSize", "minInlineSize"},
	"paddingBlock":  logical{"paddingBlockStart", "paddingBlockEnd"},
	"paddingInline": logical{"paddingInlineStart", "paddingInlineEnd"},
}

// LookupPolyfill returns polyfill registered for camel case property name.
func LookupPolyfill(camelName string) (Polyfill, bool) {
	p, ok := polyfills[camelName]
	return p, ok
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// isWord matches identifier characters of the token and media range grammars.
func isWord(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '-'
}
