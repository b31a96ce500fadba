// Package rewrite turns authoring shorthands of a style tree into plain CSS:
// utilities, vendor and logical property polyfills, media range comparisons and
// theme token references.
package rewrite

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"restyle/casing"
)

// Utility produces replacement declarations for a value assigned to a
// registered name.
type Utility interface {
	Apply(cfg *Config, value any) (Block, error)
}

// UtilityFunc is an adapter to allow the use of ordinary functions as utilities.
type UtilityFunc func(cfg *Config, value any) (Block, error)

// Apply calls f(cfg, value).
func (f UtilityFunc) Apply(cfg *Config, value any) (Block, error) {
	return f(cfg, value)
}

// Config is supplied by the caller and is never modified by the rewriter.
type Config struct {
	// Media maps breakpoint alias to media query ("bp1" -> "(min-width: 640px)").
	Media map[string]string
	// ThemeMap maps camel case property name to theme scale ("padding" -> "space").
	ThemeMap map[string]string
	// Utils maps exact declaration or rule name to utility.
	Utils map[string]Utility
}

// Rewriter rewrites visited (name, value) pairs of a single document pass.
type Rewriter struct {
	cfg       *Config
	memo      *Memo
	unitProps func(string) bool
	log       *zap.Logger
}

// Option configures Rewriter.
type Option func(*Rewriter)

// WithLogger sets logger for dispatch tracing.
func WithLogger(log *zap.Logger) Option {
	return func(r *Rewriter) {
		if log != nil {
			r.log = log
		}
	}
}

// WithMemo makes rewriter use caller owned memoization cell.
func WithMemo(m *Memo) Option {
	return func(r *Rewriter) {
		if m != nil {
			r.memo = m
		}
	}
}

// WithUnitProps replaces predicate deciding which kebab case properties get
// pixel units for bare numbers.
func WithUnitProps(fn func(string) bool) Option {
	return func(r *Rewriter) {
		if fn != nil {
			r.unitProps = fn
		}
	}
}

// New creates rewriter for a single document pass. Unless WithMemo is given it
// owns a fresh Memo.
func New(cfg *Config, opts ...Option) *Rewriter {
	if cfg == nil {
		cfg = &Config{}
	}
	r := &Rewriter{
		cfg:       cfg,
		memo:      NewMemo(),
		unitProps: IsUnitProp,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.Named("rewrite")
	return r
}

// Memo returns memoization cell used by the rewriter.
func (r *Rewriter) Memo() *Memo {
	return r.memo
}

// Func returns Rewrite as a plain function value.
func (r *Rewriter) Func() func(name string, value any) (Block, error) {
	return r.Rewrite
}

// Rewrite returns replacement for the visited pair or nil when the pair should be
// kept as is. The only source of errors are utilities; they are returned to the
// caller wrapped with the utility name.
func (r *Rewriter) Rewrite(name string, value any) (Block, error) {
	if name == "" {
		return nil, nil
	}

	atRule := name[0] == '@'
	camelName, kebabName := name, name
	if !atRule {
		camelName, kebabName = casing.ToCamel(name), casing.ToKebab(name)
	}

	if util, ok := r.cfg.Utils[name]; ok {
		if id := utilityID(util); !r.memo.util.same(id, value) {
			r.memo.util.remember(name, id, value)
			r.log.Debug("Applying utility", zap.String("name", name), zap.Any("value", value))
			out, err := util.Apply(r.cfg, value)
			if err != nil {
				return nil, fmt.Errorf("utility %q: %w", name, err)
			}
			return out, nil
		}
	}
	r.memo.util.value = value

	if poly, ok := polyfills[camelName]; ok && !r.memo.poly.same(camelName, value) {
		r.memo.poly.remember(camelName, camelName, value)
		r.log.Debug("Applying polyfill", zap.String("name", camelName), zap.Any("value", value))
		return poly.Apply(value), nil
	}

	newName := name
	switch {
	case atRule:
		newName = ExpandAtRule(name, r.cfg.Media)
	case name[0] == '$':
		newName = customPropertyName(name)
	}

	newValue, changed := r.rewriteValue(value, camelName, kebabName)
	if !changed && newName == name {
		return nil, nil
	}
	return Block{{Name: newName, Value: newValue}}, nil
}

// rewriteValue returns rewritten value and whether it differs from the original.
func (r *Rewriter) rewriteValue(value any, camelName, kebabName string) (any, bool) {
	if _, ok := value.(Block); ok {
		return value, false
	}
	if f, ok := Number(value); ok && f != 0 && !math.IsNaN(f) && r.unitProps(kebabName) {
		return FormatNumber(f) + "px", true
	}
	s := String(value)
	out := ReplaceTokens(s, r.cfg.ThemeMap[camelName])
	if out == s {
		return value, false
	}
	return out, true
}

// customPropertyName turns "$foo$bar" declaration name into "-foo-bar".
func customPropertyName(name string) string {
	b := []byte(name[1:])
	for i := range b {
		if b[i] == '$' {
			b[i] = '-'
		}
	}
	return "-" + string(b)
}
