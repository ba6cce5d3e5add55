package construct_test

import (
	"os"
	"path/filepath"
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestParseAndBuildRoundTripThroughMemory(t *testing.T) {
	data, err := c.Build(c.Int16ub, int64(300), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x2C}, data)

	v, err := c.Parse(c.Int16ub, data, nil)
	require.NoError(t, err)
	require.EqualValues(t, 300, v)
}

func TestParamsReachTheRootContext(t *testing.T) {
	con := c.Computed(c.Func(func(ctx *c.Context) (any, error) {
		v, _ := ctx.Param("scale")
		return v, nil
	}))
	v, err := c.Parse(con, nil, c.Params{"scale": int64(42)})
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestSizeOfFailsForAVariableLengthConstruct(t *testing.T) {
	_, err := c.SizeOf(c.GreedyBytes, nil)
	require.Error(t, err)
}

func TestSizeOfSucceedsForAFixedStruct(t *testing.T) {
	body := c.Struct(
		c.Named("a", c.Byte),
		c.Named("b", c.Int16ub),
	)
	n, err := c.SizeOf(body, nil)
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestParseFileAndBuildFileRoundTripThroughDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	err := c.BuildFile(c.Int32ub, int64(0x01020304), path, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3, 4}, data)

	v, err := c.ParseFile(c.Int32ub, path, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0x01020304, v)
}

func TestParseFileReportsAStreamErrorWhenMissing(t *testing.T) {
	_, err := c.ParseFile(c.Byte, filepath.Join(t.TempDir(), "missing.bin"), nil)
	require.Error(t, err)
}

// bmpHeader mirrors the end-to-end scenario of a small bitmap-style
// header: a magic tag, a checksummed length-prefixed pixel payload, a
// computed pixel count and a color-mode Enum.
func bmpHeader() c.Construct {
	return c.Struct(
		c.Named("magic", c.Bytes(2)),
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

func TestBMPLikeHeaderRoundTripsEndToEnd(t *testing.T) {
	rec := c.NewRecord()
	rec.Set("magic", []byte("BM"))
	rec.Set("mode", "RGBA")
	rec.Set("width", int64(2))
	rec.Set("height", int64(1))
	payloadRec := c.NewRecord()
	payloadRec.Set("value", []byte{0, 0, 255, 255, 0, 0, 255, 255})
	rec.Set("payload", payloadRec)

	data, err := c.Build(bmpHeader(), rec, nil)
	require.NoError(t, err)

	v, err := c.Parse(bmpHeader(), data, nil)
	require.NoError(t, err)
	out := v.(*c.Record)

	mode, _ := out.Get("mode")
	require.Equal(t, c.EnumValue{Name: "RGBA", Value: 2, Mapped: true}, mode)

	pixelCount, _ := out.Get("pixelCount")
	require.Equal(t, int64(2), pixelCount)

	payload, _ := out.Get("payload")
	payloadValue, _ := payload.(*c.Record).Get("value")
	require.Equal(t, []byte{0, 0, 255, 255, 0, 0, 255, 255}, payloadValue)
}

func TestBMPLikeHeaderRejectsATamperedChecksum(t *testing.T) {
	rec := c.NewRecord()
	rec.Set("magic", []byte("BM"))
	rec.Set("mode", "RGB")
	rec.Set("width", int64(1))
	rec.Set("height", int64(1))
	payloadRec := c.NewRecord()
	payloadRec.Set("value", []byte{1, 2, 3})
	rec.Set("payload", payloadRec)

	data, err := c.Build(bmpHeader(), rec, nil)
	require.NoError(t, err)
	data[len(data)-1] ^= 0xFF

	_, err = c.Parse(bmpHeader(), data, nil)
	require.Error(t, err)
}

func TestBMPLikeHeaderErrorReportsFieldPath(t *testing.T) {
	_, err := c.Parse(bmpHeader(), []byte{'B', 'M', 9}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "(parsing)")
	require.Contains(t, err.Error(), "width")
}
