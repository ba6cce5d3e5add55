package construct

import "fmt"

// structConstruct is Struct(fields...): parses/builds fields in order
// into/from a *Record, giving each later field's expressions access to
// every earlier field's value through a child Context (spec.md 4.5).
// Unnamed subconstructs (Padding, Check, Const...) still run but leave
// no trace in the Record.
type structConstruct struct {
	fields []Construct
}

// Struct builds a fixed, ordered sequence of named fields.
func Struct(fields ...Construct) Construct {
	return &structConstruct{fields: fields}
}

func (c *structConstruct) IsFixedSize() bool {
	for _, f := range c.fields {
		if !f.IsFixedSize() {
			return false
		}
	}
	return true
}

func (c *structConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	total := 0
	child := ctx.Child()
	for _, f := range c.fields {
		n, err := f.sizeOf(child, path.Child(nameOf(f)))
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (c *structConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	rec := NewRecord()
	child := ctx.Child()
	for i, f := range c.fields {
		child.SetIndex(i)
		name := nameOf(f)
		traceParse(path.Child(name), f)
		v, err := f.parse(s, child, path.Child(name))
		if err != nil {
			return nil, err
		}
		if name != "" {
			rec.Set(name, v)
			child.Set(name, v)
		}
	}
	return rec, nil
}

func (c *structConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rec, ok := v.(*Record)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("Struct expects a *Record, got %T", v)}, path)
	}
	out := NewRecord()
	child := ctx.Child()
	for i, f := range c.fields {
		child.SetIndex(i)
		name := nameOf(f)
		var fv any
		if name != "" {
			fv, _ = rec.Get(name)
		}
		traceBuild(path.Child(name), f)
		built, err := f.build(fv, s, child, path.Child(name))
		if err != nil {
			return nil, err
		}
		if name != "" {
			out.Set(name, built)
			child.Set(name, built)
		}
	}
	return out, nil
}
