package construct

import "strings"

// Path is the dot-breadcrumb composites maintain while descending, used
// for error reporting only. It is never part of the value model.
type Path string

// rootPath starts a new breadcrumb tagged with the active operation.
func rootPath(op string) Path {
	return Path("(" + op + ")")
}

// Child extends the path with a named segment.
func (p Path) Child(name string) Path {
	if name == "" {
		return p
	}
	return Path(string(p) + " -> " + name)
}

func (p Path) String() string { return string(p) }

// reserved context keys, see spec.md 3 "Context frame".
const (
	keyParent   = "_"
	keyRoot     = "_root"
	keyParams   = "_params"
	keyIO       = "_io"
	keyIndex    = "_index"
	keyParsing  = "_parsing"
	keyBuilding = "_building"
	keySizing   = "_sizing"
	keySubcons  = "_subcons"

	// keyObj/keyList are additionally reserved by RepeatUntil's
	// predicate expression, mirroring original_source/construct's
	// obj_/list_ loop variables.
	keyObj  = "_obj"
	keyList = "_lst"
)

var reservedKeys = map[string]bool{
	keyParent: true, keyRoot: true, keyParams: true, keyIO: true,
	keyIndex: true, keyParsing: true, keyBuilding: true, keySizing: true,
	keySubcons: true, keyObj: true, keyList: true,
}

// IsReservedName reports whether name collides with an engine-owned
// context key. Named panics on field names that collide, per the
// "hidden context keys collision risk" design note.
func IsReservedName(name string) bool {
	return reservedKeys[name]
}

// Context is the chained, parent-linked mapping carrying already
// parsed/built peers plus the reserved keys described in spec.md 3.
type Context struct {
	parent *Context
	root   *Context
	params map[string]any
	values map[string]any
	io     Stream
	index  int

	parsing  bool
	building bool
	sizing   bool
}

// newRootContext builds the outermost frame for one top-level
// parse/build/size-of invocation.
func newRootContext(op string, params map[string]any, s Stream) *Context {
	c := &Context{
		params: params,
		values: make(map[string]any),
		io:     s,
	}
	c.root = c
	switch op {
	case "parsing":
		c.parsing = true
	case "building":
		c.building = true
	case "sizing":
		c.sizing = true
	}
	return c
}

// Child creates a new frame linked to the receiver, the way every
// composite construct does before descending into its subconstructs.
// _root, _params and the active operation flags are inherited; mutating
// the child's own values never reaches back into the parent (spec.md 8
// invariant 5, "context isolation").
func (c *Context) Child() *Context {
	child := &Context{
		parent:   c,
		root:     c.root,
		params:   c.params,
		values:   make(map[string]any),
		io:       c.io,
		parsing:  c.parsing,
		building: c.building,
		sizing:   c.sizing,
	}
	return child
}

// WithStream returns a shallow copy of c bound to a different stream,
// used by Pointer and Prefixed to delegate onto a substream without
// losing the caller's peer bindings.
func (c *Context) WithStream(s Stream) *Context {
	clone := *c
	clone.io = s
	return &clone
}

// Set records a named peer's value at this frame, reflecting it the
// way a parsed/built Struct field becomes visible to later siblings.
func (c *Context) Set(name string, value any) {
	if c.values == nil {
		c.values = make(map[string]any)
	}
	c.values[name] = value
}

func (c *Context) SetIndex(i int) { c.index = i }

// Get resolves name against reserved keys first, then this frame's own
// bindings, never against the parent (attribute lookups that need the
// parent go through "_" explicitly in an expression).
func (c *Context) Get(name string) (any, bool) {
	switch name {
	case keyParent:
		if c.parent == nil {
			return nil, false
		}
		return c.parent, true
	case keyRoot:
		return c.root, true
	case keyParams:
		return c.params, true
	case keyIO:
		return c.io, true
	case keyIndex:
		return c.index, true
	case keyParsing:
		return c.parsing, true
	case keyBuilding:
		return c.building, true
	case keySizing:
		return c.sizing, true
	}
	v, ok := c.values[name]
	return v, ok
}

// Param looks up an external keyword argument passed to the top-level
// Parse/Build/SizeOf call.
func (c *Context) Param(name string) (any, bool) {
	if c.params == nil {
		return nil, false
	}
	v, ok := c.params[name]
	return v, ok
}

func (c *Context) IO() Stream { return c.io }

// describeKeys is used by context errors to list what was available,
// a small debugging aid in the teacher's terse style.
func (c *Context) describeKeys() string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return strings.Join(keys, ", ")
}
