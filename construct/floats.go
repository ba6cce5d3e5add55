package construct

import (
	"fmt"
	"io"
	"math"
)

// floatConstruct is the generic IEEE-754 float builder backing the
// 16/32/64-bit, big/little endian table in spec.md 4.3.
type floatConstruct struct {
	fixedSize
	width int // 2, 4 or 8
	order ByteOrder
}

func newFloatConstruct(width int, order ByteOrder) *floatConstruct {
	return &floatConstruct{fixedSize: fixedSize{n: width}, width: width, order: order}
}

func (c *floatConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	buf := make([]byte, c.width)
	if _, err := io.ReadFull(s, buf); err != nil {
		return nil, withPath(ErrStream{Msg: fmt.Sprintf("short read for %d-byte float: %v", c.width, err)}, path)
	}
	bits := decodeUint(buf, c.order)
	switch c.width {
	case 2:
		return float16ToFloat64(uint16(bits)), nil
	case 4:
		return float64(math.Float32frombits(uint32(bits))), nil
	default:
		return math.Float64frombits(bits), nil
	}
}

func (c *floatConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rv, err := resolveExpr(v, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	f, ferr := asFloat64(rv)
	if ferr != nil {
		return nil, withPath(ferr, path)
	}
	var bits uint64
	switch c.width {
	case 2:
		bits = uint64(float64ToFloat16(f))
	case 4:
		bits = uint64(math.Float32bits(float32(f)))
	default:
		bits = math.Float64bits(f)
	}
	buf := encodeUint(bits, c.width, c.order)
	if _, err := s.Write(buf); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return f, nil
}

// Float builds an IEEE-754 float construct of the given byte width
// (2, 4 or 8) and byte order.
func Float(width int, order ByteOrder) Construct {
	return newFloatConstruct(width, order)
}

func float16ToFloat64(h uint16) float64 {
	sign := uint64(h>>15) & 1
	exp := uint64(h>>10) & 0x1f
	frac := uint64(h) & 0x3ff
	switch exp {
	case 0:
		if frac == 0 {
			if sign == 1 {
				return math.Copysign(0, -1)
			}
			return 0
		}
		// subnormal
		v := float64(frac) / 1024.0 * math.Pow(2, -14)
		if sign == 1 {
			v = -v
		}
		return v
	case 0x1f:
		if frac == 0 {
			if sign == 1 {
				return math.Inf(-1)
			}
			return math.Inf(1)
		}
		return math.NaN()
	default:
		v := (1.0 + float64(frac)/1024.0) * math.Pow(2, float64(exp)-15)
		if sign == 1 {
			v = -v
		}
		return v
	}
}

func float64ToFloat16(f float64) uint16 {
	bits := math.Float64bits(f)
	sign := uint16((bits >> 63) & 1)
	if f == 0 {
		return sign << 15
	}
	if math.IsNaN(f) {
		return sign<<15 | 0x7e00
	}
	if math.IsInf(f, 0) {
		return sign<<15 | 0x7c00
	}

	exp := int((bits>>52)&0x7ff) - 1023
	frac := bits & 0xfffffffffffff

	hexp := exp + 15
	switch {
	case hexp >= 0x1f:
		return sign<<15 | 0x7c00 // overflow -> inf
	case hexp <= 0:
		// subnormal or underflow to zero
		if hexp < -10 {
			return sign << 15
		}
		frac = (frac | 0x10000000000000) >> uint(1-hexp+42)
		return sign<<15 | uint16(frac)
	default:
		hfrac := uint16(frac >> 42)
		return sign<<15 | uint16(hexp)<<10 | hfrac
	}
}
