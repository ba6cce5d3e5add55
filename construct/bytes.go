package construct

import (
	"bytes"
	"fmt"
	"io"
)

// bytesConstruct is Bytes(n): exactly n raw bytes, parsed and built
// without interpretation.
type bytesConstruct struct {
	fixedSize
	n any // int or Expr
}

// Bytes reads/writes exactly n raw bytes. n may be a constant or an
// Expr evaluated against the context.
func Bytes(n any) Construct {
	size := 0
	if i, ok := n.(int); ok {
		size = i
	}
	return &bytesConstruct{fixedSize: fixedSize{n: size}, n: n}
}

func (c *bytesConstruct) resolveLen(ctx *Context, path Path) (int, error) {
	n, err := resolveInt(c.n, ctx)
	if err != nil {
		return 0, withPath(err, path)
	}
	return int(n), nil
}

func (c *bytesConstruct) IsFixedSize() bool {
	_, isExpr := c.n.(Expr)
	return !isExpr
}

func (c *bytesConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	return c.resolveLen(ctx, path)
}

func (c *bytesConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	n, err := c.resolveLen(ctx, path)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(s, buf); err != nil {
		return nil, withPath(ErrStream{Msg: fmt.Sprintf("short read for %d bytes: %v", n, err)}, path)
	}
	return buf, nil
}

func (c *bytesConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rv, err := resolveExpr(v, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	b, ok := rv.([]byte)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected []byte, got %T", rv)}, path)
	}
	n, err := c.resolveLen(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(b) != n {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected %d bytes, got %d", n, len(b))}, path)
	}
	if _, err := s.Write(b); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return b, nil
}

// greedyBytesConstruct is GreedyBytes: reads to EOF, writes as-is.
type greedyBytesConstruct struct{ variableSize }

// GreedyBytes reads every remaining byte of the stream on parse, and
// writes the value verbatim on build. Its size is never statically
// known.
var GreedyBytes Construct = &greedyBytesConstruct{variableSize{msg: "GreedyBytes has no static size"}}

func (c *greedyBytesConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	b, err := readAll(s)
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return b, nil
}

func (c *greedyBytesConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	b, ok := v.([]byte)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected []byte, got %T", v)}, path)
	}
	if _, err := s.Write(b); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return b, nil
}

// flagConstruct is Flag: one byte, true iff non-zero.
type flagConstruct struct{ fixedSize }

// Flag reads/writes a single boolean byte (0x00 / 0x01).
var Flag Construct = &flagConstruct{fixedSize{n: 1}}

func (c *flagConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	var buf [1]byte
	if _, err := io.ReadFull(s, buf[:]); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return buf[0] != 0, nil
}

func (c *flagConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	b := truthy(v)
	var out byte
	if b {
		out = 1
	}
	if _, err := s.Write([]byte{out}); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return b, nil
}

// paddingConstruct is Padding(n): n bytes discarded on parse, n zero
// bytes on build.
type paddingConstruct struct {
	fixedSize
	pattern byte
}

// Padding reads and discards n bytes on parse, and writes n bytes of
// pattern (default 0x00) on build.
func Padding(n int) Construct { return &paddingConstruct{fixedSize: fixedSize{n: n}} }

// PaddingWithPattern is Padding using a caller-supplied fill byte.
func PaddingWithPattern(n int, pattern byte) Construct {
	return &paddingConstruct{fixedSize: fixedSize{n: n}, pattern: pattern}
}

func (c *paddingConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	buf := make([]byte, c.n)
	if _, err := io.ReadFull(s, buf); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return None{}, nil
}

func (c *paddingConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	buf := bytes.Repeat([]byte{c.pattern}, c.n)
	if _, err := s.Write(buf); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return None{}, nil
}

// passConstruct is Pass: does nothing in either direction.
type passConstruct struct{ fixedSize }

// Pass consumes no input and writes no output.
var Pass Construct = &passConstruct{fixedSize{n: 0}}

func (c *passConstruct) parse(Stream, *Context, Path) (any, error)          { return None{}, nil }
func (c *passConstruct) build(any, Stream, *Context, Path) (any, error) { return None{}, nil }

// terminatedConstruct is Terminated: asserts EOF on parse, does
// nothing on build.
type terminatedConstruct struct{ fixedSize }

// Terminated asserts the stream is exhausted.
var Terminated Construct = &terminatedConstruct{fixedSize{n: 0}}

func (c *terminatedConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	if !isEOF(s) {
		return nil, withPath(ErrStream{Msg: "expected end of stream"}, path)
	}
	return None{}, nil
}

func (c *terminatedConstruct) build(any, Stream, *Context, Path) (any, error) {
	return None{}, nil
}

// constConstruct is Const(value): asserts the parsed bytes equal
// value, always emits value on build regardless of the supplied
// input (spec.md 8 scenario 1 and 4.9 "supplemented features").
type constConstruct struct {
	Construct
	value []byte
}

// ConstBytes wraps Bytes(len(value)) so parse asserts equality against
// value and build always emits value.
func ConstBytes(value []byte) Construct {
	return &constConstruct{Construct: Bytes(len(value)), value: value}
}

// ConstOf wraps an arbitrary subcon with the same assert-on-parse,
// always-emit-on-build behavior. value is always a []byte: parse fails
// unless subcon yields a []byte equal to it, and build hands value to
// subcon as a []byte, so a subcon that parses or builds any other type
// (an integer, an enum symbol) never matches.
func ConstOf(subcon Construct, value []byte) Construct {
	return &constConstruct{Construct: subcon, value: value}
}

func (c *constConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	v, err := c.Construct.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	b, ok := v.([]byte)
	if !ok || !bytes.Equal(b, c.value) {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected constant %x, got %v", c.value, v)}, path)
	}
	return v, nil
}

func (c *constConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	return c.Construct.build(c.value, s, ctx, path)
}
