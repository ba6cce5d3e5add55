package construct

import "regexp"

// None is the unit value returned by zero-width constructs (Pass,
// Padding, Seek, ...).
type None struct{}

// EnumValue is the tagged symbol produced by Enum: it carries both the
// mapped name and the underlying integer. It is a plain struct, so it
// does not compare equal to a bare string or integer; callers read Name
// or Value instead.
type EnumValue struct {
	Name    string
	Value   int64
	Mapped  bool // false when the parsed integer had no matching symbol
}

func (e EnumValue) String() string {
	if e.Mapped {
		return e.Name
	}
	return ""
}

// FlagsValue is the decomposed bitfield record produced by FlagsEnum:
// one boolean per declared flag name.
type FlagsValue map[string]bool

// entry is one key/value pair of a Record, kept in insertion order.
type entry struct {
	key   string
	value any
}

// Record is the ordered mapping from field name to value that Struct
// produces. Order of insertion is preserved; lookups are O(1) via the
// companion index.
type Record struct {
	entries []entry
	index   map[string]int
}

// NewRecord creates an empty, ready-to-use Record.
func NewRecord() *Record {
	return &Record{index: make(map[string]int)}
}

// Set inserts or overwrites a field, preserving first-insertion order.
func (r *Record) Set(key string, value any) {
	if i, ok := r.index[key]; ok {
		r.entries[i].value = value
		return
	}
	r.index[key] = len(r.entries)
	r.entries = append(r.entries, entry{key: key, value: value})
}

// Get returns a field's value by key.
func (r *Record) Get(key string) (any, bool) {
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.entries[i].value, true
}

// Keys returns field names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.entries))
	for i, e := range r.entries {
		keys[i] = e.key
	}
	return keys
}

// Len reports the number of fields.
func (r *Record) Len() int { return len(r.entries) }

// Each iterates fields in insertion order.
func (r *Record) Each(fn func(key string, value any)) {
	for _, e := range r.entries {
		fn(e.key, e.value)
	}
}

// Search performs a recursive, first-hit search for name among this
// record's own fields and any nested Record/List values.
func (r *Record) Search(name string) (any, bool) {
	hits := r.SearchAll(name, false)
	if len(hits) == 0 {
		return nil, false
	}
	return hits[0], true
}

// SearchAll recursively collects every value whose key matches name (or
// the compiled regex form of name when asRegex is set).
func (r *Record) SearchAll(pattern string, asRegex bool) []any {
	var re *regexp.Regexp
	if asRegex {
		re = regexp.MustCompile(pattern)
	}
	matches := func(key string) bool {
		if asRegex {
			return re.MatchString(key)
		}
		return key == pattern
	}
	var out []any
	var walk func(key string, value any)
	walk = func(key string, value any) {
		if matches(key) {
			out = append(out, value)
		}
		switch v := value.(type) {
		case *Record:
			v.Each(walk)
		case *List:
			for _, item := range v.items {
				walk("", item)
			}
		}
	}
	r.Each(walk)
	return out
}

// List is the ordered, unnamed sequence of values Sequence and the
// repeater constructs produce.
type List struct {
	items []any
}

// NewList creates an empty List, optionally pre-populated.
func NewList(items ...any) *List {
	return &List{items: items}
}

func (l *List) Append(v any)   { l.items = append(l.items, v) }
func (l *List) Len() int       { return len(l.items) }
func (l *List) At(i int) any   { return l.items[i] }
func (l *List) Items() []any   { return l.items }

// SearchAll recurses into nested Record/List items, since a List's own
// entries are unnamed and so never match a field-name pattern directly.
func (l *List) SearchAll(pattern string, asRegex bool) []any {
	var out []any
	for _, item := range l.items {
		switch v := item.(type) {
		case *Record:
			out = append(out, v.SearchAll(pattern, asRegex)...)
		case *List:
			out = append(out, v.SearchAll(pattern, asRegex)...)
		}
	}
	return out
}
