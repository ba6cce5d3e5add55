package construct

import (
	"fmt"

	"github.com/cespare/xxhash"
	"golang.org/x/crypto/blake2b"
)

// checksumConstruct is Checksum(field, dataExpr): field stores a
// 64-bit xxhash of whatever bytes dataExpr resolves to (typically a
// sibling RawCopy's "raw" entry). Parsing verifies the stored value
// against a freshly computed one and fails with ErrValidation on
// mismatch; building always (re)computes it.
type checksumConstruct struct {
	field    Construct
	dataExpr Expr
}

// Checksum builds a verified xxhash-64 field over the bytes dataExpr
// resolves to.
func Checksum(field Construct, dataExpr Expr) Construct {
	return &checksumConstruct{field: field, dataExpr: dataExpr}
}

func (c *checksumConstruct) IsFixedSize() bool { return c.field.IsFixedSize() }

func (c *checksumConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	return c.field.sizeOf(ctx, path)
}

func dataBytes(expr Expr, ctx *Context, path Path) ([]byte, error) {
	v, err := expr.Eval(ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("checksum data expression produced %T, want []byte", v)}, path)
	}
	return b, nil
}

func (c *checksumConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	stored, err := c.field.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	storedSum, ok := asInt64(stored)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("checksum field produced a non-integer %T", stored)}, path)
	}
	data, err := dataBytes(c.dataExpr, ctx, path)
	if err != nil {
		return nil, err
	}
	computed := xxhash.Sum64(data)
	if uint64(storedSum) != computed {
		return nil, withPath(ErrValidation{Msg: fmt.Sprintf("checksum mismatch: stored %#x, computed %#x", uint64(storedSum), computed)}, path)
	}
	return computed, nil
}

func (c *checksumConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	data, err := dataBytes(c.dataExpr, ctx, path)
	if err != nil {
		return nil, err
	}
	computed := xxhash.Sum64(data)
	if _, err := c.field.build(computed, s, ctx, path); err != nil {
		return nil, err
	}
	return computed, nil
}

// digestConstruct is Digest(field, dataExpr): field stores a BLAKE2b-256
// digest of dataExpr's bytes, for formats that want a cryptographic
// integrity check rather than xxhash's fast non-cryptographic one.
type digestConstruct struct {
	field    Construct
	dataExpr Expr
}

// Digest builds a verified BLAKE2b-256 field over dataExpr's bytes.
// field should be a 32-byte construct (e.g. Bytes(32)).
func Digest(field Construct, dataExpr Expr) Construct {
	return &digestConstruct{field: field, dataExpr: dataExpr}
}

func (c *digestConstruct) IsFixedSize() bool { return c.field.IsFixedSize() }

func (c *digestConstruct) sizeOf(ctx *Context, path Path) (int, error) {
	return c.field.sizeOf(ctx, path)
}

func (c *digestConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	stored, err := c.field.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	storedBytes, ok := stored.([]byte)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("digest field produced %T, want []byte", stored)}, path)
	}
	data, err := dataBytes(c.dataExpr, ctx, path)
	if err != nil {
		return nil, err
	}
	computed := blake2b.Sum256(data)
	if string(storedBytes) != string(computed[:]) {
		return nil, withPath(ErrValidation{Msg: "digest mismatch"}, path)
	}
	return computed[:], nil
}

func (c *digestConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	data, err := dataBytes(c.dataExpr, ctx, path)
	if err != nil {
		return nil, err
	}
	computed := blake2b.Sum256(data)
	if _, err := c.field.build(computed[:], s, ctx, path); err != nil {
		return nil, err
	}
	return computed[:], nil
}
