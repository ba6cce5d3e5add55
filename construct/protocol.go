package construct

import (
	"encoding/binary"
	"os"
)

// Construct is the uniform contract every node in the tree implements:
// parse, build, size-of, described in spec.md 4.1. The methods are
// unexported because the family of construct kinds is closed by design
// (spec.md 9, "a closed... sum of construct kinds is preferable to
// class inheritance"); adapters and composites are built by wrapping an
// existing Construct value, never by satisfying this interface from
// outside the package.
type Construct interface {
	parse(s Stream, ctx *Context, path Path) (any, error)
	build(v any, s Stream, ctx *Context, path Path) (any, error)
	sizeOf(ctx *Context, path Path) (int, error)
	IsFixedSize() bool
}

// Namer is implemented by the wrapper Named returns, letting composites
// recover the field name a subconstruct was given without subclassing.
type Namer interface {
	ConstructName() string
}

// Docer is implemented by constructs carrying an attached docstring
// (spec.md 6: "subcon * \"docstring\" attaches documentation").
type Docer interface {
	ConstructDoc() string
}

func nameOf(c Construct) string {
	if n, ok := c.(Namer); ok {
		return n.ConstructName()
	}
	return ""
}

// ByteOrder selects how multi-byte primitives are encoded.
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
	NativeEndian
)

func (o ByteOrder) stdlib() binary.ByteOrder {
	switch o {
	case LittleEndian:
		return binary.LittleEndian
	case NativeEndian:
		return binary.NativeEndian
	default:
		return binary.BigEndian
	}
}

// Params carries the external keyword arguments spec.md 6 says are
// "forwarded into _params of the root context" on every top-level call.
type Params map[string]any

// Parse is the top-level entry point: wraps data in a MemoryStream,
// builds the initial _parsing=true context and dispatches to c.
func Parse(c Construct, data []byte, params Params) (any, error) {
	return ParseStream(c, NewMemoryStream(data), params)
}

// ParseStream parses directly from an existing Stream.
func ParseStream(c Construct, s Stream, params Params) (any, error) {
	ctx := newRootContext("parsing", params, s)
	return c.parse(s, ctx, rootPath("parsing"))
}

// ParseFile opens path in binary read mode and parses its contents.
func ParseFile(c Construct, path string, params Params) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrStream{Msg: err.Error()}
	}
	return Parse(c, data, params)
}

// Build is the top-level entry point for the reverse direction: writes
// into a fresh in-memory stream and returns the accumulated bytes.
func Build(c Construct, value any, params Params) ([]byte, error) {
	s := NewEmptyMemoryStream()
	if err := BuildStream(c, value, s, params); err != nil {
		return nil, err
	}
	return s.Bytes(), nil
}

// BuildStream builds value into an existing Stream.
func BuildStream(c Construct, value any, s Stream, params Params) error {
	ctx := newRootContext("building", params, s)
	_, err := c.build(value, s, ctx, rootPath("building"))
	return err
}

// BuildFile builds value and writes the result to path.
func BuildFile(c Construct, value any, path string, params Params) error {
	data, err := Build(c, value, params)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// SizeOf returns a byte length when statically determinable given the
// supplied params, else ErrSizeUnknown.
func SizeOf(c Construct, params Params) (int, error) {
	ctx := newRootContext("sizing", params, nil)
	return c.sizeOf(ctx, rootPath("sizing"))
}

// fixedSize is the size-of shared by every construct whose size never
// depends on context: it just returns n regardless of ctx/path.
type fixedSize struct{ n int }

func (f fixedSize) sizeOf(*Context, Path) (int, error) { return f.n, nil }
func (f fixedSize) IsFixedSize() bool                  { return true }

// variableSize marks a construct whose size-of always fails: the
// "size-unknown" taxonomy entry applied uniformly to greedy and
// variable-length primitives (VarInt, ZigZag, GreedyBytes).
type variableSize struct{ msg string }

func (v variableSize) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: v.msg}
}
func (v variableSize) IsFixedSize() bool { return false }
