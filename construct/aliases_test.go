package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestInt24ubParsesThreeBytesBigEndian(t *testing.T) {
	v, err := c.Parse(c.Int24ub, []byte{0x01, 0x02, 0x03}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0x010203, v)
}

func TestInt32slRoundTripNegative(t *testing.T) {
	data, err := c.Build(c.Int32sl, int64(-1), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF}, data)

	v, err := c.Parse(c.Int32sl, data, nil)
	require.NoError(t, err)
	require.EqualValues(t, -1, v)
}

func TestByteShortLongAreBigEndianAliases(t *testing.T) {
	v, err := c.Parse(c.Short, []byte{0x01, 0x00}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0x0100, v)

	v, err = c.Parse(c.Long, []byte{0x00, 0x00, 0x01, 0x00}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0x0100, v)
}

func TestFloat32bAndFloat32lDisagreeOnByteOrder(t *testing.T) {
	data, err := c.Build(c.Float32b, 1.5, nil)
	require.NoError(t, err)

	vb, err := c.Parse(c.Float32b, data, nil)
	require.NoError(t, err)
	require.InDelta(t, 1.5, vb.(float64), 0.0001)

	vl, err := c.Parse(c.Float32l, data, nil)
	require.NoError(t, err)
	require.NotEqual(t, vb, vl)
}
