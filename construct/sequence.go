package construct

import (
	"fmt"
	"strconv"
)

// sequenceConstruct is Sequence(subcons...): like Struct but produces
// an unnamed *List instead of a *Record. A named subcon's value is
// still reachable from later expressions, keyed by its stringified
// index (spec.md 4.5, "A >> B" sugar over this).
type sequenceConstruct struct {
	subcons []Construct
}

// Sequence builds a fixed, ordered sequence of unnamed subconstructs.
func Sequence(subcons ...Construct) Construct {
	return &sequenceConstruct{subcons: subcons}
}

func (c *sequenceConstruct) IsFixedSize() bool {
	for _, sc := range c.subcons {
		if !sc.IsFixedSize() {
			return false
		}
	}
	return true
}

func (c *sequenceConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	total := 0
	child := ctx.Child()
	for i, sc := range c.subcons {
		n, err := sc.sizeOf(child, path.Child(strconv.Itoa(i)))
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func (c *sequenceConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	lst := NewList()
	child := ctx.Child()
	for i, sc := range c.subcons {
		child.SetIndex(i)
		v, err := sc.parse(s, child, path.Child(strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		lst.Append(v)
		child.Set(strconv.Itoa(i), v)
	}
	return lst, nil
}

func (c *sequenceConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	lst, ok := v.(*List)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("Sequence expects a *List, got %T", v)}, path)
	}
	if lst.Len() != len(c.subcons) {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("Sequence expects %d values, got %d", len(c.subcons), lst.Len())}, path)
	}
	out := NewList()
	child := ctx.Child()
	for i, sc := range c.subcons {
		child.SetIndex(i)
		built, err := sc.build(lst.At(i), s, child, path.Child(strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out.Append(built)
		child.Set(strconv.Itoa(i), built)
	}
	return out, nil
}
