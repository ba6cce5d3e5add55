package construct

import (
	"fmt"
	"math/big"
)

// bitsIntConstruct is BitsInteger(n, signed, swapped): must run inside
// a bit-granular Stream (normally by nesting inside Bitwise); reads n
// one-bit units and assembles them into an integer. Size-of is
// reported as n bits, which the Bitwise size accounting interprets.
type bitsIntConstruct struct {
	n       int
	signed  bool
	swapped bool
}

// BitsInteger builds an n-bit integer construct for use inside a
// Bitwise region.
func BitsInteger(n int, signed, swapped bool) Construct {
	return &bitsIntConstruct{n: n, signed: signed, swapped: swapped}
}

func signExtendBits(u uint64, bits int) int64 {
	if bits >= 64 {
		return int64(u)
	}
	shift := 64 - uint(bits)
	return int64(u<<shift) >> shift
}

func (c *bitsIntConstruct) IsFixedSize() bool { return true }

func (c *bitsIntConstruct) sizeOf(*Context, Path) (int, error) { return c.n, nil }

func (c *bitsIntConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	bits := make([]byte, c.n)
	if _, err := s.Read(bits); err != nil {
		return nil, withPath(ErrStream{Msg: fmt.Sprintf("short read for %d-bit integer: %v", c.n, err)}, path)
	}
	if c.swapped {
		for i, j := 0, len(bits)-1; i < j; i, j = i+1, j-1 {
			bits[i], bits[j] = bits[j], bits[i]
		}
	}
	if c.n <= 64 {
		var u uint64
		for _, b := range bits {
			u = u<<1 | uint64(b)
		}
		if c.signed {
			return signExtendBits(u, c.n), nil
		}
		return u, nil
	}
	v := new(big.Int)
	for _, b := range bits {
		v.Lsh(v, 1)
		if b == 1 {
			v.Or(v, big.NewInt(1))
		}
	}
	if c.signed && bits[0] == 1 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(c.n))
		v.Sub(v, mod)
	}
	return v, nil
}

func (c *bitsIntConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rv, err := resolveExpr(v, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	bits := make([]byte, c.n)
	if c.n <= 64 {
		i, ok := asInt64(rv)
		if !ok {
			return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected an integer, got %T", rv)}, path)
		}
		u := uint64(i)
		for idx := c.n - 1; idx >= 0; idx-- {
			bits[idx] = convInt[uint64, byte](u & 1)
			u >>= 1
		}
	} else {
		bi, ok := toBigInt(rv)
		if !ok {
			return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected an integer, got %T", rv)}, path)
		}
		u := new(big.Int).Set(bi)
		if u.Sign() < 0 {
			mod := new(big.Int).Lsh(big.NewInt(1), uint(c.n))
			u.Add(u, mod)
		}
		for idx := c.n - 1; idx >= 0; idx-- {
			bits[idx] = byte(new(big.Int).And(u, big.NewInt(1)).Int64())
			u.Rsh(u, 1)
		}
	}
	if c.swapped {
		for i, j := 0, len(bits)-1; i < j; i, j = i+1, j-1 {
			bits[i], bits[j] = bits[j], bits[i]
		}
	}
	if _, err := s.Write(bits); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return rv, nil
}
