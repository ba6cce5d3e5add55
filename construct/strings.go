package construct

import (
	"encoding/binary"
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"
)

// StringEncoding is the fixed allow-list spec.md 4.4 requires: only
// encodings whose NUL-unit size is unambiguous are supported, so
// PaddedString/CString can strip/detect terminators correctly.
type StringEncoding string

const (
	EncodingASCII   StringEncoding = "ascii"
	EncodingUTF8    StringEncoding = "utf-8"
	EncodingUTF16BE StringEncoding = "utf-16-be"
	EncodingUTF16LE StringEncoding = "utf-16-le"
	EncodingUTF32BE StringEncoding = "utf-32-be"
	EncodingUTF32LE StringEncoding = "utf-32-le"
	EncodingLatin1  StringEncoding = "latin-1"
)

func unitSize(enc StringEncoding) (int, error) {
	switch enc {
	case EncodingASCII, EncodingUTF8, EncodingLatin1:
		return 1, nil
	case EncodingUTF16BE, EncodingUTF16LE:
		return 2, nil
	case EncodingUTF32BE, EncodingUTF32LE:
		return 4, nil
	default:
		return 0, ErrString{Msg: "unsupported encoding: " + string(enc)}
	}
}

func encodeString(s string, enc StringEncoding) ([]byte, error) {
	switch enc {
	case EncodingASCII, EncodingUTF8:
		return []byte(s), nil
	case EncodingLatin1:
		buf := make([]byte, 0, len(s))
		for _, r := range s {
			if r > 0xff {
				return nil, ErrString{Msg: fmt.Sprintf("rune %U not representable in latin-1", r)}
			}
			buf = append(buf, byte(r))
		}
		return buf, nil
	case EncodingUTF16BE, EncodingUTF16LE:
		units := utf16.Encode([]rune(s))
		buf := make([]byte, len(units)*2)
		var order binary.ByteOrder = binary.BigEndian
		if enc == EncodingUTF16LE {
			order = binary.LittleEndian
		}
		for i, u := range units {
			order.PutUint16(buf[i*2:], u)
		}
		return buf, nil
	case EncodingUTF32BE, EncodingUTF32LE:
		runes := []rune(s)
		buf := make([]byte, len(runes)*4)
		var order binary.ByteOrder = binary.BigEndian
		if enc == EncodingUTF32LE {
			order = binary.LittleEndian
		}
		for i, r := range runes {
			order.PutUint32(buf[i*4:], uint32(r))
		}
		return buf, nil
	default:
		return nil, ErrString{Msg: "unsupported encoding: " + string(enc)}
	}
}

func decodeString(b []byte, enc StringEncoding) (string, error) {
	switch enc {
	case EncodingASCII:
		for _, c := range b {
			if c > 0x7f {
				return "", ErrString{Msg: "byte out of ascii range"}
			}
		}
		return string(b), nil
	case EncodingUTF8:
		if !utf8.Valid(b) {
			return "", ErrString{Msg: "invalid utf-8"}
		}
		return string(b), nil
	case EncodingLatin1:
		runes := make([]rune, len(b))
		for i, c := range b {
			runes[i] = rune(c)
		}
		return string(runes), nil
	case EncodingUTF16BE, EncodingUTF16LE:
		if len(b)%2 != 0 {
			return "", ErrString{Msg: "odd byte count for utf-16"}
		}
		var order binary.ByteOrder = binary.BigEndian
		if enc == EncodingUTF16LE {
			order = binary.LittleEndian
		}
		units := make([]uint16, len(b)/2)
		for i := range units {
			units[i] = order.Uint16(b[i*2:])
		}
		return string(utf16.Decode(units)), nil
	case EncodingUTF32BE, EncodingUTF32LE:
		if len(b)%4 != 0 {
			return "", ErrString{Msg: "byte count not a multiple of 4 for utf-32"}
		}
		var order binary.ByteOrder = binary.BigEndian
		if enc == EncodingUTF32LE {
			order = binary.LittleEndian
		}
		runes := make([]rune, len(b)/4)
		for i := range runes {
			runes[i] = rune(order.Uint32(b[i*4:]))
		}
		return string(runes), nil
	default:
		return "", ErrString{Msg: "unsupported encoding: " + string(enc)}
	}
}

func nulUnit(enc StringEncoding) ([]byte, error) {
	n, err := unitSize(enc)
	if err != nil {
		return nil, err
	}
	return make([]byte, n), nil
}

// paddedStringConstruct is PaddedString(length, encoding): build pads
// with NUL to length bytes then truncates; parse reads length bytes,
// strips trailing NULs (one encoding unit at a time), decodes. This
// direction is explicitly non-symmetric (spec.md 8 invariant 1): a
// string that doesn't fill length bytes loses its original padding.
type paddedStringConstruct struct {
	fixedSize
	length int
	enc    StringEncoding
}

// PaddedString builds a fixed-length, NUL-padded string construct.
func PaddedString(length int, enc StringEncoding) Construct {
	return &paddedStringConstruct{fixedSize: fixedSize{n: length}, length: length, enc: enc}
}

func (c *paddedStringConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	buf := make([]byte, c.length)
	if _, err := io.ReadFull(s, buf); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	unit, err := unitSize(c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	end := len(buf)
	for end >= unit {
		if isZero(buf[end-unit : end]) {
			end -= unit
		} else {
			break
		}
	}
	str, err := decodeString(buf[:end], c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	return str, nil
}

func isZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}

func (c *paddedStringConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	rv, err := resolveExpr(v, ctx)
	if err != nil {
		return nil, withPath(err, path)
	}
	str, ok := rv.(string)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected a string, got %T", rv)}, path)
	}
	enc, err := encodeString(str, c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	buf := make([]byte, c.length)
	if len(enc) > c.length {
		enc = enc[:c.length]
	}
	copy(buf, enc)
	if _, err := s.Write(buf); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return str, nil
}

// pascalStringConstruct is PascalString(lengthConstruct, encoding):
// build encodes then prefixes its byte count via lengthConstruct;
// parse inverts.
type pascalStringConstruct struct {
	length Construct
	enc    StringEncoding
}

// PascalString builds a length-prefixed string using lengthConstruct
// (e.g. Byte, Int32ub) to encode the byte count.
func PascalString(length Construct, enc StringEncoding) Construct {
	return &pascalStringConstruct{length: length, enc: enc}
}

func (c *pascalStringConstruct) IsFixedSize() bool { return false }

func (c *pascalStringConstruct) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: "PascalString size depends on the encoded value"}
}

func (c *pascalStringConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	n, err := c.length.parse(s, ctx, path)
	if err != nil {
		return nil, err
	}
	ni, ok := asInt64(n)
	if !ok {
		return nil, withPath(ErrFormat{Msg: "length prefix did not parse to an integer"}, path)
	}
	buf := make([]byte, ni)
	if _, err := io.ReadFull(s, buf); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	str, err := decodeString(buf, c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	return str, nil
}

func (c *pascalStringConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	str, ok := v.(string)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected a string, got %T", v)}, path)
	}
	enc, err := encodeString(str, c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	if _, err := c.length.build(int64(len(enc)), s, ctx, path); err != nil {
		return nil, err
	}
	if _, err := s.Write(enc); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return str, nil
}

// cStringConstruct is CString(encoding): reads until a NUL unit; build
// appends one.
type cStringConstruct struct{ enc StringEncoding }

// CString builds a NUL-terminated string construct.
func CString(enc StringEncoding) Construct { return &cStringConstruct{enc: enc} }

func (c *cStringConstruct) IsFixedSize() bool { return false }

func (c *cStringConstruct) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: "CString size depends on the encoded value"}
}

func (c *cStringConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	unit, err := unitSize(c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	var out []byte
	buf := make([]byte, unit)
	for {
		if _, err := io.ReadFull(s, buf); err != nil {
			return nil, withPath(ErrTerminator{Msg: "CString terminator not found: " + err.Error()}, path)
		}
		if isZero(buf) {
			break
		}
		out = append(out, buf...)
	}
	str, err := decodeString(out, c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	return str, nil
}

func (c *cStringConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	str, ok := v.(string)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected a string, got %T", v)}, path)
	}
	enc, err := encodeString(str, c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	nul, err := nulUnit(c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	if _, err := s.Write(append(enc, nul...)); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return str, nil
}

// greedyStringConstruct is GreedyString(encoding): GreedyBytes then
// decode.
type greedyStringConstruct struct{ enc StringEncoding }

// GreedyString reads to EOF and decodes the result.
func GreedyString(enc StringEncoding) Construct { return &greedyStringConstruct{enc: enc} }

func (c *greedyStringConstruct) IsFixedSize() bool { return false }

func (c *greedyStringConstruct) sizeOf(*Context, Path) (int, error) {
	return 0, ErrSizeUnknown{Msg: "GreedyString has no static size"}
}

func (c *greedyStringConstruct) parse(s Stream, ctx *Context, path Path) (any, error) {
	b, err := readAll(s)
	if err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	str, err := decodeString(b, c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	return str, nil
}

func (c *greedyStringConstruct) build(v any, s Stream, ctx *Context, path Path) (any, error) {
	str, ok := v.(string)
	if !ok {
		return nil, withPath(ErrFormat{Msg: fmt.Sprintf("expected a string, got %T", v)}, path)
	}
	enc, err := encodeString(str, c.enc)
	if err != nil {
		return nil, withPath(err, path)
	}
	if _, err := s.Write(enc); err != nil {
		return nil, withPath(ErrStream{Msg: err.Error()}, path)
	}
	return str, nil
}
