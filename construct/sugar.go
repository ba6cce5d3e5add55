package construct

// Package-level functions standing in for the composition operators
// spec.md 6 describes conceptually ("name / subcon", "A + B", "A >> B",
// "subcon[n]", "subcon[:]", "subcon * callable"). Go has no operator
// overloading, so each operator is expressed as a plain constructor or
// method instead of punctuation; the semantics are identical.

// namedConstruct is the wrapper Named/WithDoc return. Embedding the wrapped
// Construct promotes parse/build/sizeOf/IsFixedSize automatically, so
// the wrapper only needs to add the name/doc accessors.
type namedConstruct struct {
	Construct
	name string
	doc  string
}

func (n *namedConstruct) ConstructName() string { return n.name }
func (n *namedConstruct) ConstructDoc() string  { return n.doc }

// Named is the `name / subcon` sugar: it tags c with a field name so an
// enclosing Struct/Sequence inserts its result under that name.
func Named(name string, c Construct) Construct {
	if IsReservedName(name) {
		panic("construct: field name " + name + " collides with a reserved context key")
	}
	if nc, ok := c.(*namedConstruct); ok {
		clone := *nc
		clone.name = name
		return &clone
	}
	return &namedConstruct{Construct: c, name: name}
}

// WithDoc is the `subcon * "docstring"` sugar: it attaches a docstring
// without affecting parse/build behavior.
func WithDoc(doc string, c Construct) Construct {
	if nc, ok := c.(*namedConstruct); ok {
		clone := *nc
		clone.doc = doc
		return &clone
	}
	return &namedConstruct{Construct: c, doc: doc}
}

// processed wraps a subcon with a post-parse hook, the `subcon *
// callable` sugar. Build is a pure pass-through: the hook only ever
// observes parsed values, mirroring the way GreedyRange/RepeatUntil
// processing hooks are documented in spec.md 4.5/4.7.
type processed struct {
	Construct
	fn func(v any) (any, error)
}

func (p *processed) parse(s Stream, ctx *Context, path Path) (any, error) {
	v, err := p.Construct.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	return p.fn(v)
}

// Processed attaches a post-parse processing hook to c.
func Processed(c Construct, fn func(v any) (any, error)) Construct {
	return &processed{Construct: c, fn: fn}
}

// ArrayOf is the `subcon[n]` sugar: Array(n, subcon).
func ArrayOf(count any, subcon Construct) Construct { return Array(count, subcon) }

// GreedyRangeOf is the `subcon[:]` sugar: GreedyRange(subcon).
func GreedyRangeOf(subcon Construct) Construct { return GreedyRange(subcon, false) }
