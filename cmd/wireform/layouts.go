package main

import (
	c "github.com/wireform/wireform/construct"
)

// layout is one entry in the built-in demo registry cmd/wireform's
// sizeof/parse/build subcommands operate over.
type layout struct {
	name string
	doc  string
	con  c.Construct
}

// bmpHeader mirrors a small bitmap-style header: a two-byte magic tag,
// a color-mode Enum, a width/height pair, a computed pixel count and a
// checksummed pixel payload.
func bmpHeader() c.Construct {
	return c.Struct(
		c.Named("magic", c.ConstBytes([]byte("BM"))),
		c.Named("mode", c.Enum(c.Byte, map[string]int64{
			"RGB":  1,
			"RGBA": 2,
		})),
		c.Named("width", c.Int16ub),
		c.Named("height", c.Int16ub),
		c.Named("pixelCount", c.Computed(c.This().Field("width").Mul(c.This().Field("height")))),
		c.Named("payload", c.RawCopy(c.Prefixed(c.Int16ub, c.GreedyBytes, false))),
		c.Named("checksum", c.Checksum(c.Int64ub, c.This().Field("payload").Item("raw"))),
	)
}

// measurements repeats a VarInt reading until a zero reading is seen.
func measurements() c.Construct {
	reading := c.Struct(
		c.Named("value", c.VarInt),
	)
	return c.RepeatUntil(c.This().Field("_obj").Item("value").Eq(c.Const(int64(0))), reading)
}

// tag is a length-prefixed UTF-8 label, the kind of field a config or
// manifest format commonly carries.
func tag() c.Construct {
	return c.Struct(
		c.Named("label", c.PascalString(c.Byte, c.EncodingUTF8)),
	)
}

var registry = map[string]layout{
	"bmp": {
		name: "bmp",
		doc:  "BMP-like header: magic, mode Enum, width/height, checksummed payload",
		con:  bmpHeader(),
	},
	"measurements": {
		name: "measurements",
		doc:  "RepeatUntil over VarInt readings, terminated by a zero reading",
		con:  measurements(),
	},
	"tag": {
		name: "tag",
		doc:  "single byte-length-prefixed UTF-8 label",
		con:  tag(),
	},
}
