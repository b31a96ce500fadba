package rewrite

import "strings"

// unitProps lists kebab case properties whose bare numeric values are lengths.
var unitProps = map[string]bool{
	"block-size":          true,
	"border":              true,
	"border-block":        true,
	"border-block-end":    true,
	"border-block-start":  true,
	"border-bottom":       true,
	"border-inline":       true,
	"border-inline-end":   true,
	"border-inline-start": true,
	"border-left":         true,
	"border-radius":       true,
	"border-right":        true,
	"border-spacing":      true,
	"border-top":          true,
	"border-width":        true,
	"bottom":              true,
	"column-gap":          true,
	"column-rule-width":   true,
	"column-width":        true,
	"flex-basis":          true,
	"font-size":           true,
	"gap":                 true,
	"grid-gap":            true,
	"height":              true,
	"inline-size":         true,
	"inset":               true,
	"left":                true,
	"letter-spacing":      true,
	"outline":             true,
	"outline-offset":      true,
	"outline-width":       true,
	"perspective":         true,
	"right":               true,
	"row-gap":             true,
	"text-indent":         true,
	"top":                 true,
	"width":               true,
	"word-spacing":        true,
}

// unitPrefixes cover whole families of longhands (margin-top, scroll-padding-left, ...).
var unitPrefixes = []string{
	"border-bottom-",
	"border-end-",
	"border-left-",
	"border-right-",
	"border-start-",
	"border-top-",
	"inset-",
	"margin",
	"max-",
	"min-",
	"padding",
	"scroll-margin",
	"scroll-padding",
}

// IsUnitProp reports whether bare numbers assigned to kebab case property are
// pixel lengths.
func IsUnitProp(kebabName string) bool {
	if unitProps[kebabName] {
		return true
	}
	for _, p := range unitPrefixes {
		if !strings.HasPrefix(kebabName, p) {
			continue
		}
		if strings.HasPrefix(p, "border-") {
			// border-top-color and friends are not lengths
			return strings.HasSuffix(kebabName, "-width") || strings.HasSuffix(kebabName, "-radius")
		}
		return true
	}
	return false
}
