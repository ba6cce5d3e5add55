package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestInt16ubParsesBigEndian(t *testing.T) {
	v, err := c.Parse(c.Int16ub, []byte{0x01, 0x00}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 256, v)
}

func TestInt16ulParsesLittleEndian(t *testing.T) {
	v, err := c.Parse(c.Int16ul, []byte{0x01, 0x00}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, v)
}

func TestInt8sbSignExtends(t *testing.T) {
	v, err := c.Parse(c.Int8sb, []byte{0xFF}, nil)
	require.NoError(t, err)
	require.EqualValues(t, -1, v)
}

func TestIntBuildRejectsOutOfRangeValue(t *testing.T) {
	_, err := c.Build(c.Int8ub, 256, nil)
	require.Error(t, err)
}

func TestIntRoundTrip(t *testing.T) {
	data, err := c.Build(c.Int32ub, int64(0x01020304), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, data)

	v, err := c.Parse(c.Int32ub, data, nil)
	require.NoError(t, err)
	require.EqualValues(t, 0x01020304, v)
}
