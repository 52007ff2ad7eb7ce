package attrs

import "sort"

// Kind identifies the shape of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindString
	KindBool
	KindInt
	KindFloat
	KindSequence
	KindMap
)

// String renders the kind label used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindSequence:
		return "sequence"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a tagged attribute value decoded from a metadata document. The
// permissive document syntaxes (YAML, JSON) collapse into this closed set so
// downstream consumers never see parser-specific types.
type Value struct {
	kind Kind
	str  string
	b    bool
	i    int64
	f    float64
	seq  []Value
	m    *Map
}

// Nil returns the null value.
func Nil() Value { return Value{kind: KindNil} }

// String wraps a string scalar.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bool wraps a boolean scalar.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an integer scalar.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float wraps a floating point scalar.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Sequence wraps an ordered list of values.
func Sequence(values ...Value) Value {
	return Value{kind: KindSequence, seq: append([]Value(nil), values...)}
}

// Strings builds a sequence of string values.
func Strings(values ...string) Value {
	seq := make([]Value, 0, len(values))
	for _, v := range values {
		seq = append(seq, String(v))
	}
	return Value{kind: KindSequence, seq: seq}
}

// FromMap wraps a nested map.
func FromMap(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: KindMap, m: m}
}

// Kind reports the value's shape.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether the value is null.
func (v Value) IsNil() bool { return v.kind == KindNil }

// Str returns the string payload; empty unless KindString.
func (v Value) Str() string { return v.str }

// Bool returns the boolean payload; false unless KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload; zero unless KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; zero unless KindFloat.
func (v Value) Float() float64 { return v.f }

// Sequence returns the list payload; nil unless KindSequence.
func (v Value) Sequence() []Value { return v.seq }

// Map returns the nested map payload; nil unless KindMap.
func (v Value) Map() *Map { return v.m }

// Interface converts the value into plain Go types (string, bool, int64,
// float64, []any, map[string]any, nil) for consumers that do not understand
// the tagged representation.
func (v Value) Interface() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindSequence:
		out := make([]any, 0, len(v.seq))
		for _, item := range v.seq {
			out = append(out, item.Interface())
		}
		return out
	case KindMap:
		return v.m.Interface()
	default:
		return nil
	}
}

// Map is an ordered key/value attribute document. Keys keep the position of
// their first insertion; setting an existing key updates the value in place.
type Map struct {
	keys   []string
	values map[string]Value
}

// NewMap returns an empty attribute map.
func NewMap() *Map {
	return &Map{values: map[string]Value{}}
}

// Len reports the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key, keeping the key's original position when it
// already exists.
func (m *Map) Set(key string, value Value) {
	if m.values == nil {
		m.values = map[string]Value{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// SetIfAbsent stores value under key only when the key is missing. It returns
// true when the value was stored. Derivation steps use this so explicitly
// parsed metadata always wins.
func (m *Map) SetIfAbsent(key string, value Value) bool {
	if m.Has(key) {
		return false
	}
	m.Set(key, value)
	return true
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Interface converts the document into a plain map. Ordering is lost; callers
// that need it should walk Keys instead.
func (m *Map) Interface() map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m.keys))
	for _, key := range m.keys {
		out[key] = m.values[key].Interface()
	}
	return out
}

// SortedKeys returns the keys sorted lexically, for deterministic logging.
func (m *Map) SortedKeys() []string {
	keys := m.Keys()
	sort.Strings(keys)
	return keys
}
