package css

import (
	"bytes"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser reads generated CSS back into rules and reports problems found on
// the way.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	st := &state{
		parser: css.NewParser(parse.NewInput(bytes.NewReader(data)), false),
		sheet:  &Stylesheet{Items: make([]Item, 0), Warnings: make([]string, 0)},
		log:    p.log,
	}
	st.sheet.Items = st.items(false)
	return st.sheet
}

type state struct {
	parser *css.Parser
	sheet  *Stylesheet
	log    *zap.Logger
	done   bool
}

func (st *state) warn(msg string, fields ...zap.Field) {
	st.sheet.Warnings = append(st.sheet.Warnings, msg)
	st.log.Debug(msg, fields...)
}

// items parses until end of input or, when nested, until end of the enclosing
// at-rule block.
func (st *state) items(nested bool) []Item {
	var (
		items     []Item
		selectors []string
	)
	for !st.done {
		gt, _, data := st.parser.Next()

		switch gt {
		case css.ErrorGrammar:
			st.done = true
			if err := st.parser.Err(); err != io.EOF {
				st.warn("parse error: "+err.Error(), zap.Error(err))
			} else if nested {
				st.warn("unexpected end of input inside block")
			}

		case css.EndAtRuleGrammar:
			if nested {
				return items
			}
			st.warn("unbalanced closing brace")

		case css.AtRuleGrammar:
			items = append(items, Item{Statement: &Statement{Name: string(data), Prelude: join(st.parser.Values())}})

		case css.BeginAtRuleGrammar:
			g := &Group{Name: string(data), Prelude: join(st.parser.Values())}
			g.Items = st.items(true)
			items = append(items, Item{Group: g})

		case css.QualifiedRuleGrammar:
			selectors = append(selectors, splitSelectors(data, st.parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors = append(selectors, splitSelectors(data, st.parser.Values())...)
			items = append(items, Item{Rule: st.rule(selectors)})
			selectors = nil

		case css.DeclarationGrammar, css.CustomPropertyGrammar:
			st.warn("declaration outside of rule: " + string(data))

		case css.TokenGrammar:
			st.warn("unexpected token: " + string(data))
		}
	}
	return items
}

// rule collects declarations until end of the ruleset.
func (st *state) rule(selectors []string) *Rule {
	r := &Rule{Selectors: selectors}
	for {
		gt, _, data := st.parser.Next()

		switch gt {
		case css.ErrorGrammar:
			st.done = true
			if err := st.parser.Err(); err != io.EOF {
				st.warn("parse error: "+err.Error(), zap.Error(err))
			} else {
				st.warn("unexpected end of input inside rule " + strings.Join(selectors, ","))
			}
			return r

		case css.EndRulesetGrammar:
			return r

		case css.DeclarationGrammar:
			values := st.parser.Values()
			d := Declaration{Property: string(data), Value: join(values)}
			if len(d.Value) == 0 {
				st.warn("empty value for " + d.Property)
			}
			if unresolved(values) {
				st.warn("unresolved token reference in " + d.Property + ": " + d.Value)
			}
			r.Declarations = append(r.Declarations, d)

		case css.CustomPropertyGrammar:
			r.Declarations = append(r.Declarations, Declaration{Property: string(data), Value: join(st.parser.Values()), Custom: true})

		case css.BeginRulesetGrammar, css.BeginAtRuleGrammar:
			st.warn("nested block inside rule " + strings.Join(selectors, ","))
		}
	}
}

// join builds value text from tokens collapsing whitespace.
func join(tokens []css.Token) string {
	var sb strings.Builder
	space := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			space = sb.Len() > 0
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.Write(t.Data)
	}
	return strings.TrimSpace(sb.String())
}

// unresolved reports "$" outside of strings: a theme token which was never
// turned into a custom property reference.
func unresolved(tokens []css.Token) bool {
	for _, t := range tokens {
		if t.TokenType == css.DelimToken && bytes.Equal(t.Data, []byte("$")) {
			return true
		}
	}
	return false
}

// splitSelectors builds selector list from grammar data and values.
func splitSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	depth, start := 0, 0
	s := sb.String()
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				selectors = appendSelector(selectors, s[start:i])
				start = i + 1
			}
		}
	}
	return appendSelector(selectors, s[start:])
}

func appendSelector(selectors []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		selectors = append(selectors, s)
	}
	return selectors
}
