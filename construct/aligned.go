package construct

import "fmt"

// alignedConstruct is Aligned(modulus, subcon): after subcon runs,
// skips/writes zero bytes until the stream's absolute position is a
// multiple of modulus (spec.md 4.6).
type alignedConstruct struct {
	modulus int
	subcon  Construct
}

// Aligned pads subcon's output out to the next modulus boundary.
func Aligned(modulus int, subcon Construct) Construct {
	return &alignedConstruct{modulus: modulus, subcon: subcon}
}

func (c *alignedConstruct) IsFixedSize() bool { return false }

func (c *alignedConstruct) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: "Aligned has no static size independent of stream position"}
}

func padAmount(pos int64, modulus int) int64 {
	m := int64(modulus)
	rem := pos % m
	if rem == 0 {
		return 0
	}
	return m - rem
}

func (c *alignedConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	v, err := c.subcon.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	pos, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	pad := padAmount(pos, c.modulus)
	if pad > 0 {
		if _, err := s.Seek(pad, SeekCurrent); err != nil {
			return nil, withPath(err, path)
		}
	}
	return v, nil
}

func (c *alignedConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	built, err := c.subcon.build(v, s, ctx, path)
	if err != nil {
		return nil, err
	}
	pos, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	pad := padAmount(pos, c.modulus)
	if pad > 0 {
		if _, err := s.Write(make([]byte, pad)); err != nil {
			return nil, withPath(ErrStream{Msg: err.Error()}, path)
		}
	}
	return built, nil
}

// paddedConstruct is Padded(length, subcon): subcon must consume no
// more than length bytes; the remainder is padding, discarded on parse
// and zero-filled on build (spec.md 4.6).
type paddedConstruct struct {
	fixedSize
	length int
	subcon Construct
}

// Padded wraps subcon in a fixed-length region, like Prefixed but with
// a constant length instead of a length field.
func Padded(length int, subcon Construct) Construct {
	return &paddedConstruct{fixedSize: fixedSize{n: length}, length: length, subcon: subcon}
}

func (c *paddedConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	start, err := s.Tell()
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	bounded := newBoundedStream(s, int64(c.length))
	v, err := c.subcon.parse(bounded, ctx.WithStream(bounded), path)
	if err != nil {
		return nil, err
	}
	if _, err := s.Seek(start+int64(c.length), SeekStart); err != nil {
		return nil, withPath(err, path)
	}
	return v, nil
}

func (c *paddedConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	staging := NewEmptyMemoryStream()
	built, err := c.subcon.build(v, staging, ctx.WithStream(staging), path)
	if err != nil {
		return nil, err
	}
	payload := staging.Bytes()
	if len(payload) > c.length {
		return nil, withPath(ErrRange{Msg: fmt.Sprintf("Padded subcon produced %d bytes, exceeds length %d", len(payload), c.length)}, path)
	}
	buf := make([]byte, c.length)
	copy(buf, payload)
	if _, err := s.Write(buf); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return built, nil
}
