package construct_test

import (
	"math/big"
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestBytesIntegerNarrowWidthUsesNativeInts(t *testing.T) {
	data, err := c.Build(c.BytesInteger(3, false, false), int64(0x010203), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03}, data)

	v, err := c.Parse(c.BytesInteger(3, false, false), data, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0x010203, v)
}

func TestBytesIntegerWideWidthUsesBigInt(t *testing.T) {
	want := new(big.Int)
	want.SetString("123456789012345678901234567890", 10)

	con := c.BytesInteger(16, false, false)
	data, err := c.Build(con, want, nil)
	require.NoError(t, err)

	v, err := c.Parse(con, data, nil)
	require.NoError(t, err)
	got, ok := v.(*big.Int)
	require.True(t, ok)
	require.Equal(t, 0, want.Cmp(got))
}

func TestBytesIntegerSwappedIsLittleEndian(t *testing.T) {
	data, err := c.Build(c.BytesInteger(2, false, true), int64(0x0102), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x02, 0x01}, data)
}

func TestBytesIntegerSignedWideNegative(t *testing.T) {
	con := c.BytesInteger(16, true, false)
	neg := big.NewInt(-42)
	data, err := c.Build(con, neg, nil)
	require.NoError(t, err)
	v, err := c.Parse(con, data, nil)
	require.NoError(t, err)
	got := v.(*big.Int)
	require.Equal(t, 0, neg.Cmp(got))
}
