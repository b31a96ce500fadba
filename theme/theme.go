// Package theme turns theme scales into CSS custom properties.
package theme

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"restyle/rewrite"
)

// Scales maps scale name to its tokens: {"space": {"1": "4px", "2": "8px"}}.
type Scales map[string]map[string]string

// DefaultThemeMap associates camel case properties with the scale their bare
// "$token" values are taken from.
var DefaultThemeMap = map[string]string{
	"gap":        "space",
	"gridGap":    "space",
	"columnGap":  "space",
	"rowGap":     "space",
	"inset":      "space",
	"top":        "space",
	"right":      "space",
	"bottom":     "space",
	"left":       "space",
	"margin":     "space",
	"marginTop":  "space",
	"marginLeft": "space",

	"marginRight":   "space",
	"marginBottom":  "space",
	"marginBlock":   "space",
	"marginInline":  "space",
	"padding":       "space",
	"paddingTop":    "space",
	"paddingRight":  "space",
	"paddingBottom": "space",
	"paddingLeft":   "space",
	"paddingBlock":  "space",
	"paddingInline": "space",

	"fontSize":      "fontSizes",
	"fontFamily":    "fonts",
	"fontWeight":    "fontWeights",
	"lineHeight":    "lineHeights",
	"letterSpacing": "letterSpacings",

	"width":      "sizes",
	"height":     "sizes",
	"minWidth":   "sizes",
	"maxWidth":   "sizes",
	"minHeight":  "sizes",
	"maxHeight":  "sizes",
	"flexBasis":  "sizes",
	"blockSize":  "sizes",
	"inlineSize": "sizes",

	"color":           "colors",
	"background":      "colors",
	"backgroundColor": "colors",
	"borderColor":     "colors",
	"outlineColor":    "colors",
	"fill":            "colors",
	"stroke":          "colors",
	"caretColor":      "colors",

	"borderWidth":  "borderWidths",
	"borderStyle":  "borderStyles",
	"borderRadius": "radii",
	"boxShadow":    "shadows",
	"textShadow":   "shadows",
	"zIndex":       "zIndices",
	"transition":   "transitions",
}

// Root returns block of custom property declarations for all scales nested
// under selector. Scales and tokens follow natural order ("2" before "10").
// Token values may reference other tokens; bare references resolve within the
// same scale.
func Root(selector string, scales Scales) rewrite.Block {
	if len(scales) == 0 {
		return nil
	}
	decls := make(rewrite.Block, 0, len(scales)*8)
	for _, scale := range sortedKeys(scales) {
		tokens := scales[scale]
		for _, token := range sortedKeys(tokens) {
			decls = append(decls, rewrite.Decl{
				Name:  "--" + scale + "-" + token,
				Value: rewrite.ReplaceTokens(tokens[token], scale),
			})
		}
	}
	return rewrite.Block{{Name: selector, Value: decls}}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	sort.Sort(natural.StringSlice(keys))
	return keys
}
