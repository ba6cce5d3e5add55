package construct

import "fmt"

// computedConstruct is Computed(expr): consumes no stream bytes,
// derives its value purely from the context (spec.md 4.7). Building
// ignores the input value entirely.
type computedConstruct struct {
	expr Expr
}

// Computed builds a virtual field whose value comes from expr alone.
func Computed(expr Expr) Construct { return &computedConstruct{expr: expr} }

func (c *computedConstruct) IsFixedSize() bool { return true }

func (c *computedConstruct) sizeOf(*Context, Path) (int, error) { return 0, nil }

func (c *computedConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	v, err := c.expr.Eval(ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	return v, nil
}

func (c *computedConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rv, err := c.expr.Eval(ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	return rv, nil
}

// pointerConstruct is Pointer(offset, subcon): seeks to an absolute
// offset, runs subcon, then restores the original position (spec.md
// 4.7), so out-of-band references (e.g. a file's header pointing at a
// trailer) can be dereferenced in place.
type pointerConstruct struct {
	offset any
	subcon Construct
}

// Pointer builds a construct that parses/builds subcon at a given
// absolute offset without disturbing the caller's stream position.
func Pointer(offset any, subcon Construct) Construct {
	return &pointerConstruct{offset: offset, subcon: subcon}
}

func (c *pointerConstruct) IsFixedSize() bool { return false }

func (c *pointerConstruct) sizeOf(*Context, Path) (int, error) { return 0, nil }

func (c *pointerConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	off, err := resolveInt(c.offset, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	pos, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	if _, err := s.Seek(off, SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	v, err := c.subcon.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	if _, err := s.Seek(pos, SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	return v, nil
}

func (c *pointerConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	off, err := resolveInt(c.offset, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	pos, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	if _, err := s.Seek(off, SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	built, err := c.subcon.build(v, s, ctx, path)
	if err != nil {
		return nil, err
	}
	if _, err := s.Seek(pos, SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	return built, nil
}

// peekConstruct is Peek(subcon): parses subcon without consuming
// stream bytes, restoring position afterward regardless of success
// (spec.md 4.7, used to look ahead before committing to an
// alternative).
type peekConstruct struct {
	subcon Construct
}

// Peek parses subcon and rewinds the stream to where it started.
func Peek(subcon Construct) Construct { return &peekConstruct{subcon: subcon} }

func (c *peekConstruct) IsFixedSize() bool { return false }

func (c *peekConstruct) sizeOf(*Context, Path) (int, error) { return 0, nil }

func (c *peekConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	pos, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	v, perr := c.subcon.parse(s, ctx, path)
	if _, err := s.Seek(pos, SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	if perr != nil {
		return nil, perr
	}
	return v, nil
}

func (c *peekConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	return None{}, nil
}

// tellConstruct is Tell: a zero-width construct whose parsed/built
// value is the stream's current absolute position.
type tellConstruct struct{}

// Tell reports the current stream offset.
var Tell Construct = tellConstruct{}

func (tellConstruct) IsFixedSize() bool { return true }

func (tellConstruct) sizeOf(*Context, Path) (int, error) { return 0, nil }

func (tellConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	pos, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return pos, nil
}

func (tellConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	pos, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return pos, nil
}

// seekConstruct is Seek(offset, whence): a zero-width construct that
// repositions the stream and returns the resulting absolute offset.
type seekConstruct struct {
	offset any
	whence int
}

// Seek builds a construct that repositions the stream as a side
// effect and yields the new absolute offset.
func Seek(offset any, whence int) Construct { return &seekConstruct{offset: offset, whence: whence} }

func (c *seekConstruct) IsFixedSize() bool { return false }

func (c *seekConstruct) sizeOf(*Context, Path) (int, error) { return 0, nil }

func (c *seekConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	off, err := resolveInt(c.offset, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	pos, err := s.Seek(off, c.whence)
	if err != nil {
		return nil, withPath(err, path)
	}
	return pos, nil
}

func (c *seekConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	return c.parse(s, ctx, "")
}

// rawCopyConstruct is RawCopy(subcon): parses subcon normally but also
// captures the exact bytes it consumed, returning both as a Record
// with "value" and "raw" entries (spec.md 4.7, used ahead of Checksum
// so the digest can cover the untransformed bytes).
type rawCopyConstruct struct {
	subcon Construct
}

// RawCopy wraps subcon, exposing both its parsed value and the raw
// bytes it occupied.
func RawCopy(subcon Construct) Construct { return &rawCopyConstruct{subcon: subcon} }

func (c *rawCopyConstruct) IsFixedSize() bool { return c.subcon.IsFixedSize() }

func (c *rawCopyConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	return c.subcon.sizeOf(ctx, path)
}

func (c *rawCopyConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	start, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	v, err := c.subcon.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	end, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	if _, err := s.Seek(start, SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	raw := make([]byte, end-start)
	if _, err := s.Read(raw); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	rec := NewRecord()
	rec.Set("value", v)
	rec.Set("raw", raw)
	return rec, nil
}

func (c *rawCopyConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rec, ok := v.(*Record)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("RawCopy expects a *Record, got %T", v)}, path)
	}
	if raw, ok := rec.Get("raw"); ok {
		if buf, ok := raw.([]byte); ok && buf != nil {
			if _, err := s.Write(buf); err != nil {
				return nil, withPath(ErrStream{Msg: err.Error()}, path)
			}
			return rec, nil
		}
	}
	value, _ := rec.Get("value")
	start, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	built, err := c.subcon.build(value, s, ctx, path)
	if err != nil {
		return nil, err
	}
	end, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	if _, err := s.Seek(start, SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	raw := make([]byte, end-start)
	if _, err := s.Read(raw); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	out := NewRecord()
	out.Set("value", built)
	out.Set("raw", raw)
	return out, nil
}
