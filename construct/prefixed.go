package construct

import "fmt"

// prefixedConstruct is Prefixed(lengthField, subcon): reads a byte
// count via lengthField, then parses subcon from a substream bounded
// to exactly that many bytes (spec.md 4.6), so subcon can never read
// past its declared region even if it under-consumes or over-reads.
type prefixedConstruct struct {
	length  Construct
	subcon  Construct
	selfLen bool // length field counts its own encoded size too
}

// Prefixed builds a length-prefixed region. When includeLength is
// true, the encoded length counts the length field's own byte size in
// addition to the payload (some wire formats do this; most don't).
func Prefixed(length Construct, subcon Construct, includeLength bool) Construct {
	return &prefixedConstruct{length: length, subcon: subcon, selfLen: includeLength}
}

func (c *prefixedConstruct) IsFixedSize() bool { return false }

func (c *prefixedConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	lenSize, err := c.length.sizeOf(ctx, path)
	if err != nil {
		return 0, err
	}
	subSize, err := c.subcon.sizeOf(ctx, path)
	if err != nil {
		return 0, err
	}
	return lenSize + subSize, nil
}

func (c *prefixedConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	lv, err := c.length.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	n, ok := asInt64(lv)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("Prefixed length field produced a non-integer %T", lv)}, path)
	}
	if c.selfLen {
		lenSize, err := c.length.sizeOf(ctx, path)
		if err == nil {
			n -= int64(lenSize)
		}
	}
	if n < 0 {
		return nil, withPath(ErrRange{Msg: "Prefixed length is negative"}, path)
	}
	bounded := newBoundedStream(s, n)
	v, err := c.subcon.parse(bounded, ctx.WithStream(bounded), path)
	if err != nil {
		return nil, err
	}
	if _, err := bounded.Seek(n, SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	return v, nil
}

func (c *prefixedConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	staging := NewEmptyMemoryStream()
	built, err := c.subcon.build(v, staging, ctx.WithStream(staging), path)
	if err != nil {
		return nil, err
	}
	payload := staging.Bytes()
	n := int64(len(payload))
	if c.selfLen {
		if lenSize, err := c.length.sizeOf(ctx, path); err == nil {
			n += int64(lenSize)
		}
	}
	if _, err := c.length.build(n, s, ctx, path); err != nil {
		return nil, err
	}
	if _, err := s.Write(payload); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return built, nil
}

// prefixedArrayConstruct is PrefixedArray(countField, subcon): the
// count field gives an element count, not a byte length, so the
// subcon repeats directly against the outer stream (spec.md 4.6).
type prefixedArrayConstruct struct {
	count  Construct
	subcon Construct
}

// PrefixedArray builds an element-count-prefixed repetition.
func PrefixedArray(count Construct, subcon Construct) Construct {
	return &prefixedArrayConstruct{count: count, subcon: subcon}
}

func (c *prefixedArrayConstruct) IsFixedSize() bool { return false }

func (c *prefixedArrayConstruct) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: "PrefixedArray has no static size"}
}

func (c *prefixedArrayConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	nv, err := c.count.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	n, ok := asInt64(nv)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("PrefixedArray count field produced a non-integer %T", nv)}, path)
	}
	return Array(n, c.subcon).parse(s, ctx, path)
}

func (c *prefixedArrayConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	lst, ok := v.(*List)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("PrefixedArray expects a *List, got %T", v)}, path)
	}
	if _, err := c.count.build(int64(lst.Len()), s, ctx, path); err != nil {
		return nil, err
	}
	return Array(int64(lst.Len()), c.subcon).build(v, s, ctx, path)
}

// nullTerminatedConstruct is NullTerminated(subcon, term): scans ahead
// for the terminator byte, parses subcon from a substream bounded to
// the bytes preceding it, then consumes the terminator.
type nullTerminatedConstruct struct {
	subcon Construct
	term   byte
}

// NullTerminated builds a terminator-delimited region.
func NullTerminated(subcon Construct, term byte) Construct {
	return &nullTerminatedConstruct{subcon: subcon, term: term}
}

func (c *nullTerminatedConstruct) IsFixedSize() bool { return false }

func (c *nullTerminatedConstruct) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: "NullTerminated has no static size"}
}

func (c *nullTerminatedConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	start, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	var n int64
	var b [1]byte
	for {
		if _, err := s.Read(b[:]); err != nil {
			return nil, withPath(ErrTerminator{Msg: "terminator not found: " + err.Error()}, path)
		}
		if b[0] == c.term {
			break
		}
		n++
	}
	if _, err := s.Seek(start, SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	bounded := newBoundedStream(s, n)
	v, err := c.subcon.parse(bounded, ctx.WithStream(bounded), path)
	if err != nil {
		return nil, err
	}
	if _, err := s.Seek(start+n+1, SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	return v, nil
}

func (c *nullTerminatedConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	built, err := c.subcon.build(v, s, ctx, path)
	if err != nil {
		return nil, err
	}
	if _, err := s.Write([]byte{c.term}); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return built, nil
}
