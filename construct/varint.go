package construct

import (
	"fmt"
	"io"
)

// varIntConstruct is VarInt: base-128 group encoding, continuation bit
// in the MSB of each byte, little-endian group order (spec.md 4.3).
// Its size-of always fails (spec.md 8, "VarInt... fails" size-of).
type varIntConstruct struct{ variableSize }

// VarInt is the unsigned variable-length integer construct.
var VarInt Construct = &varIntConstruct{variableSize{msg: "VarInt size depends on the encoded value"}}

func (c *varIntConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	var result uint64
	var shift uint
	for {
		var b [1]byte
		if _, err := io.ReadFull(s, b[:]); err != nil {
			return nil, withPath(ErrStream{Msg: "truncated varint: " + err.Error()}, path)
		}
		result |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			break
		}
		shift += 7
		if shift >= 70 {
			return nil, withPath(ErrFormat{Msg: "varint too long"}, path)
		}
	}
	return result, nil
}

func (c *varIntConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rv, err := resolveExpr(v, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	result, ok := asUint64(rv)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected a non-negative integer, got %v", rv)}, path)
	}
	n := result
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			b |= 0x80
		}
		if _, err := s.Write([]byte{b}); err != nil {
			return nil, withPath(ErrStream{Msg: err.Error()}, path)
		}
		if n == 0 {
			break
		}
	}
	return result, nil
}

// zigZagConstruct is ZigZag: a signed integer folded onto VarInt via
// `(n << 1) ^ (n >> 63)` / its inverse `(n >> 1) ^ -(n & 1)`.
type zigZagConstruct struct{ variableSize }

// ZigZag is the signed variable-length integer construct.
var ZigZag Construct = &zigZagConstruct{variableSize{msg: "ZigZag size depends on the encoded value"}}

func zigZagEncode(n int64) uint64 {
	return uint64((n << 1) ^ (n >> 63))
}

func zigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

func (c *zigZagConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	v, err := VarInt.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	return zigZagDecode(v.(uint64)), nil
}

func (c *zigZagConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rv, err := resolveExpr(v, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	i, ok := asInt64(rv)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected an integer, got %v", rv)}, path)
	}
	if _, err := VarInt.build(zigZagEncode(i), s, ctx, path); err != nil {
		return nil, err
	}
	return i, nil
}
