package construct

import (
	"fmt"
	"strconv"
)

// arrayConstruct is Array(count, subcon): repeats subcon a fixed
// number of times, count either a constant or an Expr evaluated once
// up front (spec.md 4.5).
type arrayConstruct struct {
	count  any
	subcon Construct
}

// Array builds a fixed-repetition construct; count may be an int or
// an Expr resolved against the enclosing context.
func Array(count any, subcon Construct) Construct {
	return &arrayConstruct{count: count, subcon: subcon}
}

func (c *arrayConstruct) IsFixedSize() bool {
	if _, ok := c.count.(Expr); ok {
		return false
	}
	return c.subcon.IsFixedSize()
}

func (c *arrayConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	n, err := resolveInt(c.count, ctx)
	if err != nil {
		return 0, err
	}
	each, err := c.subcon.sizeOf(ctx, path)
	if err != nil {
		return 0, err
	}
	return int(n) * each, nil
}

func (c *arrayConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	n, err := resolveInt(c.count, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	lst := NewList()
	child := ctx.Child()
	for i := int64(0); i < n; i++ {
		child.SetIndex(int(i))
		v, err := c.subcon.parse(s, child, path.Child(strconv.FormatInt(i, 10)))
		if err != nil {
			return nil, err
		}
		lst.Append(v)
		child.Set(keyList, lst)
	}
	return lst, nil
}

func (c *arrayConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	lst, ok := v.(*List)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("Array expects a *List, got %T", v)}, path)
	}
	n, err := resolveInt(c.count, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	if int64(lst.Len()) != n {
		return nil, withPath(ErrRange{Msg: fmt.Sprintf("Array expects %d elements, got %d", n, lst.Len())}, path)
	}
	out := NewList()
	child := ctx.Child()
	for i := 0; i < lst.Len(); i++ {
		child.SetIndex(i)
		built, err := c.subcon.build(lst.At(i), s, child, path.Child(strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out.Append(built)
		child.Set(keyList, out)
	}
	return out, nil
}

// greedyRangeConstruct is GreedyRange(subcon, discardErrors): repeats
// subcon until the stream is exhausted. A parse failure partway
// through a unit rewinds to the position the unit started at; it ends
// the loop quietly when discardErrors is set, otherwise it propagates.
type greedyRangeConstruct struct {
	subcon        Construct
	discardErrors bool
}

// GreedyRange is the `subcon[:]` sugar: repeat subcon to EOF.
func GreedyRange(subcon Construct, discardErrors bool) Construct {
	return &greedyRangeConstruct{subcon: subcon, discardErrors: discardErrors}
}

func (c *greedyRangeConstruct) IsFixedSize() bool { return false }

func (c *greedyRangeConstruct) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: "GreedyRange has no static size"}
}

func (c *greedyRangeConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	lst := NewList()
	child := ctx.Child()
	i := 0
	for {
		if isEOF(s) {
			break
		}
		pos, terr := s.Tell()
		if terr != nil {
			return nil, withPath(ErrStream{Msg: terr.Error()}, path)
		}
		child.SetIndex(i)
		v, err := c.subcon.parse(s, child, path.Child(strconv.Itoa(i)))
		if err != nil {
			if isCancelParsing(err) {
				s.Seek(pos, SeekStart)
				break
			}
			if c.discardErrors {
				s.Seek(pos, SeekStart)
				break
			}
			s.Seek(pos, SeekStart)
			return nil, err
		}
		lst.Append(v)
		child.Set(keyList, lst)
		i++
	}
	return lst, nil
}

func (c *greedyRangeConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	lst, ok := v.(*List)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("GreedyRange expects a *List, got %T", v)}, path)
	}
	out := NewList()
	child := ctx.Child()
	for i := 0; i < lst.Len(); i++ {
		child.SetIndex(i)
		built, err := c.subcon.build(lst.At(i), s, child, path.Child(strconv.Itoa(i)))
		if err != nil {
			if c.discardErrors {
				break
			}
			return nil, err
		}
		out.Append(built)
		child.Set(keyList, out)
	}
	return out, nil
}

// repeatUntilConstruct is RepeatUntil(predicate, subcon): repeats
// subcon, evaluating predicate after each element against a context
// exposing the just-parsed element as "_obj" and the list so far as
// "_lst"; stops, inclusive of the element that satisfied it, once
// predicate is true.
type repeatUntilConstruct struct {
	predicate Expr
	subcon    Construct
}

// RepeatUntil builds a repeater whose stop condition is an expression
// over the most recently parsed element and the accumulated list.
func RepeatUntil(predicate Expr, subcon Construct) Construct {
	return &repeatUntilConstruct{predicate: predicate, subcon: subcon}
}

func (c *repeatUntilConstruct) IsFixedSize() bool { return false }

func (c *repeatUntilConstruct) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: "RepeatUntil has no static size"}
}

func (c *repeatUntilConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	lst := NewList()
	child := ctx.Child()
	i := 0
	for {
		child.SetIndex(i)
		v, err := c.subcon.parse(s, child, path.Child(strconv.Itoa(i)))
		if err != nil {
			if isCancelParsing(err) {
				break
			}
			return nil, err
		}
		lst.Append(v)
		child.Set(keyObj, v)
		child.Set(keyList, lst)
		done, err := resolveBool(c.predicate, child)
		if err != nil {
			return nil, withPath(err, path)
		}
		i++
		if done {
			break
		}
	}
	return lst, nil
}

func (c *repeatUntilConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	lst, ok := v.(*List)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("RepeatUntil expects a *List, got %T", v)}, path)
	}
	out := NewList()
	child := ctx.Child()
	done := false
	for i := 0; i < lst.Len() && !done; i++ {
		child.SetIndex(i)
		built, err := c.subcon.build(lst.At(i), s, child, path.Child(strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		out.Append(built)
		child.Set(keyObj, built)
		child.Set(keyList, out)
		if done, err = resolveBool(c.predicate, child); err != nil {
			return nil, withPath(err, path)
		}
	}
	if !done {
		return nil, withPath(ErrRange{Msg: "RepeatUntil predicate never held over the supplied list"}, path)
	}
	return out, nil
}
