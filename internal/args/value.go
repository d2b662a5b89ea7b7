package args

import "strconv"

// valueKind discriminates the payload carried by a Value.
type valueKind uint8

const (
	kindFlag valueKind = iota // bare flag, no associated value
	kindBool
	kindString
	kindInt
)

// Value is a tagged server-argument value: a boolean, a string, an integer,
// or the no-value flag sentinel. Modeling the "value present vs. bare flag"
// distinction as an explicit kind avoids the untyped nil checks the harness
// would otherwise need at every use site.
type Value struct {
	kind valueKind
	b    bool
	s    string
	n    int
}

// Flag returns the no-value sentinel. An argument carrying it renders as a
// bare "-name" token with no "=" suffix.
func Flag() Value {
	return Value{kind: kindFlag}
}

// Bool returns a boolean argument value.
func Bool(v bool) Value {
	return Value{kind: kindBool, b: v}
}

// String returns a string argument value.
func String(s string) Value {
	return Value{kind: kindString, s: s}
}

// Int returns an integer argument value.
func Int(n int) Value {
	return Value{kind: kindInt, n: n}
}

// IsFlag reports whether v is the no-value flag sentinel.
func (v Value) IsFlag() bool {
	return v.kind == kindFlag
}

// AsBool returns the boolean payload. The second return is false when v does
// not carry a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == kindBool
}

// AsString returns the string payload. The second return is false when v does
// not carry a string.
func (v Value) AsString() (string, bool) {
	return v.s, v.kind == kindString
}

// raw returns the payload rendered as a bare string, without the "=" flag
// formatting. Only meaningful for value-carrying kinds.
func (v Value) raw() string {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindInt:
		return strconv.Itoa(v.n)
	default:
		return v.s
	}
}
