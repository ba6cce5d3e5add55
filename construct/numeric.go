package construct

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// asInt64/asFloat64/asFloat64-family conversions back the expression
// sub-language and every primitive builder's value coercion. Generic
// constraints come from golang.org/x/exp, the same module the teacher
// reaches for in std/types/optional, std/utils/utils.go and
// std/types/priority_queue for pre-stdlib-generics numeric code.
func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint:
		return int64(x), true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		return int64(x), true
	case EnumValue:
		return x.Value, true
	}
	return 0, false
}

// asUint64 is asInt64's unsigned counterpart: values that don't fit in
// an int64 (e.g. a VarInt or unsigned Int64ub at or above 2^63) must
// route through this instead of asInt64, which would silently wrap them
// negative.
func asUint64(v any) (uint64, bool) {
	switch x := v.(type) {
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case int:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int8:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int16:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int32:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int64:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case EnumValue:
		if x.Value < 0 {
			return 0, false
		}
		return uint64(x.Value), true
	}
	return 0, false
}

func asFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	default:
		if i, ok := asInt64(v); ok {
			return float64(i), nil
		}
	}
	return 0, ErrFormat{Msg: fmt.Sprintf("expected a number, got %T", v)}
}

func signedRange(width int) (min, max int64) {
	bits := uint(width * 8)
	max = int64(1)<<(bits-1) - 1
	min = -(int64(1) << (bits - 1))
	return
}

func unsignedMax(width int) uint64 {
	bits := uint(width * 8)
	if bits >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<bits - 1
}

// convInt narrows/widens between integer types, the value-copy
// counterpart of the teacher's ConvIntPtr[A, B constraints.Integer]
// (std/utils/utils.go), used wherever a construct accumulates into a
// wide integer and must hand a narrow one to a byte buffer.
func convInt[A, B constraints.Integer](a A) B {
	return B(a)
}

