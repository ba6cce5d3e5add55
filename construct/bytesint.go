package construct

import (
	"fmt"
	"io"
	"math/big"
)

// bytesIntConstruct is BytesInteger(n, signed, swapped): an integer of
// arbitrary byte width, big-endian by default, little-endian when
// swapped. Values that don't fit in 64 bits are represented as
// *big.Int; everything else collapses to int64/uint64 for ergonomics.
type bytesIntConstruct struct {
	fixedSize
	n       int
	signed  bool
	swapped bool
}

// BytesInteger builds an n-byte integer construct, decoding as
// big-endian unless swapped is true.
func BytesInteger(n int, signed, swapped bool) Construct {
	return &bytesIntConstruct{fixedSize: fixedSize{n: n}, n: n, signed: signed, swapped: swapped}
}

func (c *bytesIntConstruct) order() ByteOrder {
	if c.swapped {
		return LittleEndian
	}
	return BigEndian
}

func (c *bytesIntConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	buf := make([]byte, c.n)
	if _, err := io.ReadFull(s, buf); err != nil {
		return nil, withPath(ErrStream{Msg: fmt.Sprintf("short read for %d-byte integer: %v", c.n, err)}, path)
	}
	if c.n <= 8 {
		u := decodeUint(buf, c.order())
		if c.signed {
			return signExtend(u, c.n), nil
		}
		return u, nil
	}
	be := make([]byte, c.n)
	copy(be, buf)
	if c.swapped {
		reverseBytes(be)
	}
	v := new(big.Int).SetBytes(be)
	if c.signed && len(be) > 0 && be[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(c.n*8))
		v.Sub(v, mod)
	}
	return v, nil
}

func (c *bytesIntConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rv, err := resolveExpr(v, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	var buf []byte
	if c.n <= 8 {
		i, ok := asInt64(rv)
		if !ok {
			return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected an integer, got %T", rv)}, path)
		}
		buf = encodeUint(uint64(i), c.n, c.order())
	} else {
		bi, ok := toBigInt(rv)
		if !ok {
			return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected an integer, got %T", rv)}, path)
		}
		u := bi
		if bi.Sign() < 0 {
			mod := new(big.Int).Lsh(big.NewInt(1), uint(c.n*8))
			u = new(big.Int).Add(bi, mod)
		}
		be := u.Bytes()
		if len(be) > c.n {
			return nil, withPath(ErrFormat{Msg: "integer too large for byte width"}, path)
		}
		buf = make([]byte, c.n)
		copy(buf[c.n-len(be):], be)
		if c.swapped {
			reverseBytes(buf)
		}
	}
	if _, err := s.Write(buf); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return rv, nil
}

func reverseBytes(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

func toBigInt(v any) (*big.Int, bool) {
	switch x := v.(type) {
	case *big.Int:
		return x, true
	default:
		if i, ok := asInt64(v); ok {
			return big.NewInt(i), true
		}
	}
	return nil, false
}
