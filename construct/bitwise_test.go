package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestBitwiseRejectsMisalignedSubcon(t *testing.T) {
	con := c.Bitwise(c.BitsInteger(4, false, false))
	_, err := c.Parse(con, []byte{0xF0}, nil)
	require.Error(t, err)
}

func TestBitsSwappedReadsLSBFirstOrdering(t *testing.T) {
	con := c.BitsSwapped(c.Struct(
		c.Named("a", c.BitsInteger(4, false, false)),
		c.Named("b", c.BitsInteger(4, false, false)),
	))
	v, err := c.Parse(con, []byte{0b10110000}, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	a, _ := rec.Get("a")
	require.EqualValues(t, 0b0000, a)
}

func TestByteSwappedReversesByteOrderOfFixedRegion(t *testing.T) {
	con := c.ByteSwapped(c.Int32ub)
	data, err := c.Build(con, int64(0x01020304), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, data)

	v, err := c.Parse(con, data, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0x01020304, v)
}
