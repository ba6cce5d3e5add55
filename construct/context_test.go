package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestReservedNamesAreRejectedAsFieldNames(t *testing.T) {
	require.True(t, c.IsReservedName("_"))
	require.True(t, c.IsReservedName("_root"))
	require.True(t, c.IsReservedName("_obj"))
	require.False(t, c.IsReservedName("width"))
}

func TestChildContextIsolatesWritesFromParent(t *testing.T) {
	v, err := c.Parse(c.Struct(
		c.Named("width", c.Byte),
		c.Named("inner", c.Struct(
			c.Named("local", c.Byte),
		)),
	), []byte{10, 20}, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	width, _ := rec.Get("width")
	require.EqualValues(t, 10, width)
	inner, _ := rec.Get("inner")
	innerRec := inner.(*c.Record)
	local, _ := innerRec.Get("local")
	require.EqualValues(t, 20, local)
}

func TestFieldExpressionSeesEarlierSiblings(t *testing.T) {
	body := c.Struct(
		c.Named("length", c.Byte),
		c.Named("payload", c.Bytes(c.This().Field("length"))),
	)
	v, err := c.Parse(body, []byte{3, 'a', 'b', 'c'}, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	payload, _ := rec.Get("payload")
	require.Equal(t, []byte("abc"), payload)
}
