// Package render turns style documents into CSS: the document is walked and
// every visited pair goes through the rewriter configured from the styling
// section of program configuration.
package render

import (
	"fmt"
	"maps"
	"time"

	"go.uber.org/zap"

	"restyle/config"
	"restyle/css"
	"restyle/rewrite"
	"restyle/stringify"
	"restyle/theme"
	"restyle/utilities"
)

// Renderer keeps everything which does not change between documents. Every
// Render call uses its own rewriter with fresh memoization.
type Renderer struct {
	cfg    *rewrite.Config
	root   rewrite.Block
	parser *css.Parser
	log    *zap.Logger
}

// New prepares renderer. Empty theme map selects default one.
func New(cfg *config.StylingConfig, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}

	utils, err := utilities.FromConfig(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare utilities: %w", err)
	}

	themeMap := cfg.ThemeMap
	if len(themeMap) == 0 {
		themeMap = maps.Clone(theme.DefaultThemeMap)
	}

	r := &Renderer{
		cfg: &rewrite.Config{
			Media:    maps.Clone(cfg.Media),
			ThemeMap: themeMap,
			Utils:    utils,
		},
		parser: css.NewParser(log),
		log:    log.Named("render"),
	}
	if cfg.EmitTheme {
		r.root = theme.Root(cfg.RootSelector, cfg.Theme)
	}
	return r, nil
}

// Render converts style document into compact CSS.
func (r *Renderer) Render(doc []byte) ([]byte, error) {
	style, err := Decode(doc)
	if err != nil {
		return nil, err
	}
	if len(r.root) > 0 {
		style = append(append(rewrite.Block{}, r.root...), style...)
	}

	start := time.Now()
	rw := rewrite.New(r.cfg, rewrite.WithLogger(r.log))
	out, err := stringify.Stringify(style, rw.Func())
	if err != nil {
		return nil, err
	}
	r.log.Debug("Document rendered", zap.Int("rules", len(style)), zap.Int("bytes", len(out)), zap.Duration("elapsed", time.Since(start)))
	return []byte(out), nil
}

// Verify parses generated CSS. Problems are logged and reported as a single
// error.
func (r *Renderer) Verify(out []byte, source string) (*css.Stylesheet, error) {
	sheet := r.parser.Parse(out, source)
	for _, w := range sheet.Warnings {
		r.log.Warn("Generated CSS problem", zap.String("source", source), zap.String("problem", w))
	}
	if len(sheet.Warnings) > 0 {
		return sheet, fmt.Errorf("generated CSS has %d problem(s), first: %s", len(sheet.Warnings), sheet.Warnings[0])
	}
	r.log.Debug("Generated CSS verified", zap.String("source", source), zap.Int("rules", len(sheet.Rules())))
	return sheet, nil
}
