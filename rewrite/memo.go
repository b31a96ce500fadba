package rewrite

import "reflect"

// call remembers a single dispatch: what was invoked and the value it got. Key
// is the name used for the lookup, id tells invoked implementation apart.
type call struct {
	valid bool
	key   string
	id    any
	value any
}

// same reports whether dispatching id with value would repeat the remembered call.
func (c *call) same(id, value any) bool {
	return c.valid && c.id == id && SameValue(c.value, value)
}

func (c *call) remember(key string, id, value any) {
	c.valid, c.key, c.id, c.value = true, key, id, value
}

// funcID identifies function valued utilities.
type funcID struct {
	typ  reflect.Type
	code uintptr
}

// utilityID returns comparable identity of u, so names registered for the same
// utility share memoization. Functions are not comparable and are identified by
// their code: closures made by the same function literal count as one utility.
func utilityID(u Utility) any {
	v := reflect.ValueOf(u)
	switch v.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice, reflect.Chan:
		return funcID{typ: v.Type(), code: v.Pointer()}
	case reflect.Pointer, reflect.UnsafePointer:
		return u
	}
	if v.Type().Comparable() && !hasInterface(v.Type()) {
		return u
	}
	// values which cannot be compared safely are never deduplicated
	return new(byte)
}

// hasInterface reports whether values of t may hold interfaces, comparing those
// panics when dynamic types are not comparable.
func hasInterface(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return hasInterface(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if hasInterface(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

// Memo keeps the last utility and the last polyfill invocation of a document pass.
// A walker may visit the same declaration more than once and the rewriter uses
// Memo to avoid running utilities and polyfills again for an identical pair.
//
// Each document pass needs its own Memo. It is not safe for concurrent use.
type Memo struct {
	util call
	poly call
}

// NewMemo returns empty memoization cell.
func NewMemo() *Memo {
	return &Memo{}
}

// Reset forgets remembered invocations.
func (m *Memo) Reset() {
	*m = Memo{}
}

// LastUtility returns name and value of the last utility invocation.
func (m *Memo) LastUtility() (string, any, bool) {
	return m.util.key, m.util.value, m.util.valid
}

// LastPolyfill returns property name and value of the last polyfill invocation.
func (m *Memo) LastPolyfill() (string, any, bool) {
	return m.poly.key, m.poly.value, m.poly.valid
}
