// Package header implements the immutable metadata tree carried in the
// "header" section of a JSON well log.
//
// A Value is a JSON-shaped tree of null, boolean, integer, float, number,
// string, object and array nodes. Values never change after construction: every
// mutation (With, Without) returns a new tree, which lets a log publish a new
// header snapshot while readers keep using the previous one.
package header

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/arloliu/logio/format"
)

// Kind identifies the type of a Value node.
type Kind uint8

const (
	KindNull   Kind = iota // JSON null, the zero Value
	KindBool               // true or false
	KindInt                // integer that fits int64
	KindFloat              // float64 rendered with FormatFloat
	KindNumber             // number literal kept verbatim
	KindString             // text
	KindObject             // ordered key/value members
	KindArray              // ordered items
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Member is one key/value pair of an object Value.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable JSON-shaped tree node. The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	i       int64
	f       float64
	s       string
	members []Member
	items   []Value
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Bool returns a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer Value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point Value. NaN and infinities become null,
// since JSON cannot carry them.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}

	return Value{kind: KindFloat, f: f}
}

// Number returns a Value holding the JSON number literal text verbatim. It is
// used for literals that neither int64 nor float64 reproduce exactly, such as
// 12345678901234567890, 1E+2 or 1e400.
func Number(text string) (Value, error) {
	if !validNumber(text) {
		return Value{}, fmt.Errorf("invalid JSON number %q", text)
	}

	return Value{kind: KindNumber, s: text}, nil
}

// String returns a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Time returns t as an ISO-8601 string Value.
func Time(t time.Time) Value { return String(format.FormatTime(t)) }

// Object returns an object Value holding a copy of members. A later member
// replaces an earlier one with the same key, keeping the earlier position.
func Object(members ...Member) Value {
	v := Value{kind: KindObject, members: make([]Member, 0, len(members))}
	for _, m := range members {
		if idx := v.indexOf(m.Key); idx >= 0 {
			v.members[idx].Value = m.Value
			continue
		}
		v.members = append(v.members, m)
	}

	return v
}

// Array returns an array Value holding a copy of items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: slices.Clone(items)}
}

// EmptyObject returns an object Value without members.
func EmptyObject() Value { return Value{kind: KindObject} }

// Kind returns the node type.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsObject reports whether v is an object.
func (v Value) IsObject() bool { return v.kind == KindObject }

// Len returns the number of members of an object or items of an array, 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.items)
	default:
		return 0
	}
}

// Keys returns the member keys of an object in insertion order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.members))
	for _, m := range v.members {
		keys = append(keys, m.Key)
	}

	return keys
}

// Members returns a copy of the members of an object.
func (v Value) Members() []Member {
	return slices.Clone(v.members)
}

// Get returns the member value stored under key. The second result is false
// when v is not an object or has no such member.
func (v Value) Get(key string) (Value, bool) {
	if idx := v.indexOf(key); idx >= 0 {
		return v.members[idx].Value, true
	}

	return Value{}, false
}

// Index returns the i-th item of an array.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}

	return v.items[i], true
}

// With returns a copy of object v where key maps to value. An existing member
// keeps its position; a new one is appended. Calling With on a non-object
// starts from an empty object.
func (v Value) With(key string, value Value) Value {
	out := Value{kind: KindObject}
	if v.kind == KindObject {
		out.members = make([]Member, len(v.members), len(v.members)+1)
		copy(out.members, v.members)
	}

	if idx := out.indexOf(key); idx >= 0 {
		out.members[idx].Value = value
		return out
	}
	out.members = append(out.members, Member{Key: key, Value: value})

	return out
}

// Without returns a copy of object v with key removed.
func (v Value) Without(key string) Value {
	out := Value{kind: KindObject}
	for _, m := range v.members {
		if m.Key != key {
			out.members = append(out.members, m)
		}
	}

	return out
}

// AsBool returns the boolean held by v. Strings "true" and "false" are accepted.
func (v Value) AsBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindString:
		b, err := strconv.ParseBool(v.s)
		return b, err == nil
	default:
		return false, false
	}
}

// AsInt returns v as an integer. Floats are truncated toward zero; numeric
// strings are parsed.
func (v Value) AsInt() (int64, bool) {
	switch v.kind {
	case KindInt:
		return v.i, true
	case KindFloat:
		if v.f < math.MinInt64 || v.f >= math.MaxInt64 {
			return 0, false
		}
		return int64(v.f), true
	case KindNumber, KindString:
		if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(v.s, 64); err == nil {
			return Float(f).AsInt()
		}
		return 0, false
	default:
		return 0, false
	}
}

// AsFloat returns v as a float. Integers are converted; numeric strings are parsed.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	case KindNumber, KindString:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// AsString returns v as text. Scalars are rendered in their JSON form;
// null, objects and arrays are not convertible.
func (v Value) AsString() (string, bool) {
	switch v.kind {
	case KindString:
		return v.s, true
	case KindBool, KindInt, KindFloat, KindNumber:
		return v.scalarText(), true
	default:
		return "", false
	}
}

// AsTime parses a string Value as an ISO-8601 timestamp.
func (v Value) AsTime() (time.Time, bool) {
	if v.kind != KindString {
		return time.Time{}, false
	}
	t, err := format.ParseTime(v.s)

	return t, err == nil
}

// Equal reports whether v and other are structurally identical.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindNumber, KindString:
		return v.s == other.s
	case KindObject:
		return slices.EqualFunc(v.members, other.members, func(a, b Member) bool {
			return a.Key == b.Key && a.Value.Equal(b.Value)
		})
	case KindArray:
		return slices.EqualFunc(v.items, other.items, Value.Equal)
	default:
		return false
	}
}

// scalarText renders a scalar node the way it appears in JSON, without quotes for strings.
func (v Value) scalarText() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return FormatFloat(v.f)
	case KindNumber, KindString:
		return v.s
	default:
		return "null"
	}
}

func (v Value) indexOf(key string) int {
	if v.kind != KindObject {
		return -1
	}
	for i, m := range v.members {
		if m.Key == key {
			return i
		}
	}

	return -1
}

// FormatFloat renders f as a JSON number that reads back as a float: integral
// values keep a trailing ".0", very large or very small magnitudes use exponent form.
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}

	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			return s
		}
	}

	return s + ".0"
}

// validNumber reports whether text is a JSON number literal:
// -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?
func validNumber(text string) bool {
	i, n := 0, len(text)
	if i < n && text[i] == '-' {
		i++
	}

	switch {
	case i < n && text[i] == '0':
		i++
	case i < n && text[i] >= '1' && text[i] <= '9':
		i = skipDigits(text, i)
	default:
		return false
	}

	if i < n && text[i] == '.' {
		j := skipDigits(text, i+1)
		if j == i+1 {
			return false
		}
		i = j
	}

	if i < n && (text[i] == 'e' || text[i] == 'E') {
		i++
		if i < n && (text[i] == '+' || text[i] == '-') {
			i++
		}
		j := skipDigits(text, i)
		if j == i {
			return false
		}
		i = j
	}

	return i == n
}

func skipDigits(text string, i int) int {
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}

	return i
}
