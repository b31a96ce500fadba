package rewrite

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Decl is a single name/value pair of a style tree. Value is a string, a number,
// a bool, a nested Block or, for repeated at-rules, a []any.
type Decl struct {
	Name  string
	Value any
}

// Block is an ordered set of declarations and nested rules.
type Block []Decl

// Get returns value of the first declaration with requested name.
func (b Block) Get(name string) (any, bool) {
	for _, d := range b {
		if d.Name == name {
			return d.Value, true
		}
	}
	return nil, false
}

// Names returns declaration names in order.
func (b Block) Names() []string {
	names := make([]string, 0, len(b))
	for _, d := range b {
		names = append(names, d.Name)
	}
	return names
}

// String returns CSS text form of a declaration value.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return FormatNumber(t)
	case float32:
		return FormatNumber(float64(t))
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, String(e))
		}
		return strings.Join(parts, ",")
	case fmt.Stringer:
		return t.String()
	}
	if f, ok := Number(v); ok {
		return FormatNumber(f)
	}
	return fmt.Sprint(v)
}

// Number reports numeric value of v if v holds any of Go numeric kinds.
func Number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// FormatNumber prints number in the shortest form which reads back to the same
// value, switching to exponent notation only for very large or very small
// magnitudes.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		// strip Go's zero padding of the exponent
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SameValue reports whether two declaration values are the same for the purpose
// of suppressing repeated rewrites. Composite values compare by identity, scalars
// by their CSS text form.
func SameValue(a, b any) bool {
	ca, cb := composite(a), composite(b)
	if ca || cb {
		if !ca || !cb {
			return false
		}
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		if va.Type() != vb.Type() {
			return false
		}
		if va.Kind() == reflect.Slice && va.Len() != vb.Len() {
			return false
		}
		return va.Pointer() == vb.Pointer()
	}
	return String(a) == String(b)
}

func composite(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Func:
		return true
	}
	return false
}
