package args

import "strings"

// entry is one name/value pair in a List.
type entry struct {
	name  string
	value Value
}

// List is an ordered mapping of argument name to Value. Names are unique
// within a List; Set on an existing name replaces the value in place, keeping
// the position of the first insertion. This mirrors how caller overrides are
// merged over the default server arguments without reordering them.
//
// The zero value is an empty List ready for use.
type List struct {
	entries []entry
}

// Set adds or replaces the value for name, preserving insertion order.
func (l *List) Set(name string, v Value) {
	for i := range l.entries {
		if l.entries[i].name == name {
			l.entries[i].value = v
			return
		}
	}
	l.entries = append(l.entries, entry{name: name, value: v})
}

// Get returns the value for name and whether it is present.
func (l *List) Get(name string) (Value, bool) {
	for i := range l.entries {
		if l.entries[i].name == name {
			return l.entries[i].value, true
		}
	}
	return Value{}, false
}

// Len returns the number of arguments in the list.
func (l *List) Len() int {
	return len(l.entries)
}

// Clone returns a deep copy of the list. Value is a value type, so copying
// the entry slice is sufficient.
func (l *List) Clone() *List {
	c := &List{entries: make([]entry, len(l.entries))}
	copy(c.entries, l.entries)
	return c
}

// Range calls fn for every argument in insertion order.
func (l *List) Range(fn func(name string, v Value)) {
	for _, e := range l.entries {
		fn(e.name, e.value)
	}
}

// Tokens renders every argument through the preprocessing pipeline and
// returns the tokens in insertion order, one per argument. This is the argv
// form handed to exec.
func (l *List) Tokens(m Meta) []string {
	tokens := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		tokens = append(tokens, Render(e.name, e.value, m))
	}
	return tokens
}

// Build folds the pipeline over the whole list and returns the space-joined
// argument string in insertion order.
func (l *List) Build(m Meta) string {
	return strings.Join(l.Tokens(m), " ")
}
