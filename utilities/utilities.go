// Package utilities builds the registry of utilities available to the
// rewriter: template utilities declared in configuration and aliases for
// built-in ones.
package utilities

import (
	"bytes"
	"fmt"
	"slices"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	strconvParse "github.com/tdewolff/parse/v2/strconv"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"restyle/config"
	"restyle/rewrite"
)

// builtins are utilities available by alias.
var builtins = map[string]rewrite.Utility{
	"marginX":        spread("marginLeft", "marginRight"),
	"marginY":        spread("marginTop", "marginBottom"),
	"paddingX":       spread("paddingLeft", "paddingRight"),
	"paddingY":       spread("paddingTop", "paddingBottom"),
	"size":           spread("width", "height"),
	"linearGradient": rewrite.UtilityFunc(linearGradient),
}

// Builtins returns names of built-in utilities.
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// spreader assigns the value to every listed property.
type spreader struct {
	names []string
}

func spread(names ...string) *spreader {
	return &spreader{names: names}
}

func (s *spreader) Apply(_ *rewrite.Config, value any) (rewrite.Block, error) {
	out := make(rewrite.Block, 0, len(s.names))
	for _, name := range s.names {
		out = append(out, rewrite.Decl{Name: name, Value: value})
	}
	return out, nil
}

func linearGradient(_ *rewrite.Config, value any) (rewrite.Block, error) {
	s := rewrite.String(value)
	if len(s) == 0 {
		return nil, fmt.Errorf("empty gradient")
	}
	return rewrite.Block{{Name: "backgroundImage", Value: "linear-gradient(" + s + ")"}}, nil
}

type property struct {
	name string
	tmpl *template.Template
}

// Template is a utility producing declarations from text templates, template
// data is the value utility was given.
type Template struct {
	name  string
	props []property
}

// NewTemplate parses property templates of utility name.
func NewTemplate(name string, props config.Properties) (*Template, error) {
	t := &Template{name: name, props: make([]property, 0, len(props))}
	for _, p := range props {
		tmpl, err := template.New(name + "." + p.Name).Funcs(sprig.FuncMap()).Parse(p.Template)
		if err != nil {
			return nil, fmt.Errorf("unable to parse template for property %s: %w", p.Name, err)
		}
		t.props = append(t.props, property{name: p.Name, tmpl: tmpl})
	}
	return t, nil
}

// Apply expands templates in order. Properties expanding to nothing are
// skipped, results which are plain numbers are returned as numbers so they get
// units like any other bare number.
func (t *Template) Apply(_ *rewrite.Config, value any) (rewrite.Block, error) {
	out := make(rewrite.Block, 0, len(t.props))
	buf := new(bytes.Buffer)
	for _, p := range t.props {
		buf.Reset()
		if err := p.tmpl.Execute(buf, value); err != nil {
			return nil, fmt.Errorf("unable to expand template for property %s: %w", p.name, err)
		}
		if buf.Len() == 0 {
			continue
		}
		out = append(out, rewrite.Decl{Name: p.name, Value: scalar(buf.Bytes())})
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func scalar(b []byte) any {
	if f, n := strconvParse.ParseFloat(b); n > 0 && n == len(b) {
		return f
	}
	return string(b)
}

// FromConfig returns utilities registry. All problems with definitions are
// reported together.
func FromConfig(cfg *config.StylingConfig, log *zap.Logger) (map[string]rewrite.Utility, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("utilities")

	var err error
	utils := make(map[string]rewrite.Utility, len(cfg.Utilities)+len(cfg.Builtins))
	for alias, name := range cfg.Builtins {
		util, ok := builtins[name]
		if !ok {
			err = multierr.Append(err, fmt.Errorf("utility %s: unknown built-in utility %s", alias, name))
			continue
		}
		utils[alias] = util
	}
	for name, props := range cfg.Utilities {
		if _, exists := utils[name]; exists {
			err = multierr.Append(err, fmt.Errorf("utility %s: name is already taken by built-in utility", name))
			continue
		}
		util, e := NewTemplate(name, props)
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("utility %s: %w", name, e))
			continue
		}
		utils[name] = util
	}
	if err != nil {
		return nil, err
	}
	log.Debug("Utilities registered", zap.Int("builtin", len(cfg.Builtins)), zap.Int("template", len(cfg.Utilities)))
	return utils, nil
}
