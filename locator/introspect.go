package locator

import (
	"math"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// minSubstringLen is the shortest candidate name used for substring
// matching. Shorter names ("x", "row") only match exactly.
const minSubstringLen = 6

// Names lists candidate member names for the cursor column and row.
// Order matters: earlier names win.
type Names struct {
	Column []string
	Row    []string
}

// DefaultNames are looked up on the terminal object itself.
var DefaultNames = Names{
	Column: []string{"cursorX", "cursorCol", "cursorColumn", "caretX", "caretColumn"},
	Row:    []string{"cursorY", "cursorRow", "cursorLine", "caretY", "caretLine"},
}

// NestedNames are looked up on a nested caret/cursor object.
var NestedNames = Names{
	Column: []string{"x", "col", "column", "cursorX", "cursorCol"},
	Row:    []string{"y", "row", "line", "cursorY", "cursorRow"},
}

// nestedHints identify members that hold a caret object.
var nestedHints = []string{"cursor", "caret"}

// combinedGetters return both coordinates at once: (int, int).
var combinedGetters = []string{"CursorPosition", "GetCursorPosition", "CaretPosition", "GetCaretPosition"}

// Strategy is one lookup step. It reports the column and row on success.
type Strategy struct {
	Name string
	Find func(obj reflect.Value, names Names) (x, y int, ok bool)
}

// Strategies are tried in order by Introspect. The nested strategy is
// appended at call time because it recurses into the others.
var Strategies = []Strategy{
	{Name: "field", Find: exactField},
	{Name: "field-substring", Find: substringField},
	{Name: "accessor", Find: accessor},
}

// Introspect reads the cursor column and row from target.
//
// The strategies run in order: exact field name, substring field name,
// getter methods, and finally a nested caret/cursor object on which the
// first three are repeated with the nested names. The first strategy
// yielding two non-negative integers wins. Failures of any kind, panics
// included, advance to the next strategy.
func Introspect(target any, top, nested Names) (x, y int, strategy string, ok bool) {
	if target == nil {
		return 0, 0, "", false
	}
	obj := reflect.ValueOf(target)
	if x, y, name, ok := runStrategies(obj, top); ok {
		return x, y, name, true
	}
	for _, sub := range nestedObjects(obj) {
		if x, y, name, ok := runStrategies(sub, nested); ok {
			return x, y, "nested-" + name, true
		}
	}
	return 0, 0, "", false
}

func runStrategies(obj reflect.Value, names Names) (int, int, string, bool) {
	for _, s := range Strategies {
		if x, y, ok := try(s.Find, obj, names); ok && x >= 0 && y >= 0 {
			return x, y, s.Name, true
		}
	}
	return 0, 0, "", false
}

// try runs find and turns a panic into a miss.
func try(find func(reflect.Value, Names) (int, int, bool), obj reflect.Value, names Names) (x, y int, ok bool) {
	defer func() {
		if recover() != nil {
			x, y, ok = 0, 0, false
		}
	}()
	return find(obj, names)
}

// exactField looks up fields by exact name, including promoted fields.
func exactField(obj reflect.Value, names Names) (int, int, bool) {
	s, ok := structOf(obj)
	if !ok {
		return 0, 0, false
	}
	lookup := func(candidates []string) (int, bool) {
		for _, name := range candidates {
			for _, variant := range []string{name, capitalize(name)} {
				if f := s.FieldByName(variant); f.IsValid() {
					if n, ok := intValue(f); ok {
						return n, true
					}
				}
			}
		}
		return 0, false
	}
	return pair(lookup, names)
}

// substringField matches field names containing a candidate, ignoring case.
func substringField(obj reflect.Value, names Names) (int, int, bool) {
	s, ok := structOf(obj)
	if !ok {
		return 0, 0, false
	}
	t := s.Type()
	lookup := func(candidates []string) (int, bool) {
		for _, name := range candidates {
			if utf8.RuneCountInString(name) < minSubstringLen {
				continue
			}
			want := strings.ToLower(name)
			for i := 0; i < t.NumField(); i++ {
				if !strings.Contains(strings.ToLower(t.Field(i).Name), want) {
					continue
				}
				if n, ok := intValue(s.Field(i)); ok {
					return n, true
				}
			}
		}
		return 0, false
	}
	return pair(lookup, names)
}

// accessor calls zero-argument getters: Name, GetName, or a combined getter
// returning two integers.
func accessor(obj reflect.Value, names Names) (int, int, bool) {
	if !obj.IsValid() {
		return 0, 0, false
	}
	lookup := func(candidates []string) (int, bool) {
		for _, name := range candidates {
			for _, m := range getterNames(name) {
				out, ok := callGetter(obj, m)
				if !ok || len(out) != 1 {
					continue
				}
				if n, ok := intValue(out[0]); ok {
					return n, true
				}
			}
		}
		return 0, false
	}
	if x, y, ok := pair(lookup, names); ok {
		return x, y, true
	}
	for _, m := range combinedGetters {
		out, ok := callGetter(obj, m)
		if !ok || len(out) != 2 {
			continue
		}
		x, okx := intValue(out[0])
		y, oky := intValue(out[1])
		if okx && oky {
			return x, y, true
		}
	}
	return 0, 0, false
}

// nestedObjects collects caret/cursor sub-objects: fields whose name
// contains a hint, then zero-argument methods named after a hint.
func nestedObjects(obj reflect.Value) []reflect.Value {
	var out []reflect.Value
	if s, ok := structOf(obj); ok {
		t := s.Type()
		for i := 0; i < t.NumField(); i++ {
			if !containsHint(t.Field(i).Name) {
				continue
			}
			f := s.Field(i)
			if _, ok := structOf(f); ok {
				out = append(out, f)
			}
		}
	}
	for _, hint := range nestedHints {
		for _, m := range getterNames(hint) {
			res, ok := callGetter(obj, m)
			if !ok || len(res) != 1 {
				continue
			}
			if _, ok := structOf(res[0]); ok {
				out = append(out, res[0])
			}
		}
	}
	return out
}

func pair(lookup func([]string) (int, bool), names Names) (int, int, bool) {
	x, ok := lookup(names.Column)
	if !ok {
		return 0, 0, false
	}
	y, ok := lookup(names.Row)
	if !ok {
		return 0, 0, false
	}
	return x, y, true
}

// callGetter invokes a zero-argument method by name. Methods with pointer
// receivers are found when obj is a pointer.
func callGetter(obj reflect.Value, name string) (out []reflect.Value, ok bool) {
	defer func() {
		if recover() != nil {
			out, ok = nil, false
		}
	}()
	m := obj.MethodByName(name)
	if !m.IsValid() {
		return nil, false
	}
	if m.Type().NumIn() != 0 || m.Type().NumOut() == 0 {
		return nil, false
	}
	return m.Call(nil), true
}

// getterNames returns the exported method names tried for a member name.
func getterNames(name string) []string {
	exported := capitalize(name)
	if exported == "" {
		return nil
	}
	return []string{exported, "Get" + exported}
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ""
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func containsHint(name string) bool {
	lower := strings.ToLower(name)
	for _, h := range nestedHints {
		if strings.Contains(lower, h) {
			return true
		}
	}
	return false
}

// structOf dereferences pointers and interfaces down to a struct value.
func structOf(v reflect.Value) (reflect.Value, bool) {
	v, ok := indirect(v)
	if !ok || v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	return v, true
}

func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// intValue reads any integer kind. Reading works on unexported fields since
// it does not go through Interface.
func intValue(v reflect.Value) (int, bool) {
	v, ok := indirect(v)
	if !ok {
		return 0, false
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt32 {
			return 0, false
		}
		return int(u), true
	}
	return 0, false
}
