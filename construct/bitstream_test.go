package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestBitStreamReadsMSBFirst(t *testing.T) {
	bs := c.NewBitStream(c.NewMemoryStream([]byte{0b10110000}))
	buf := make([]byte, 4)
	_, err := bs.Read(buf)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0, 1, 1}, buf)
	require.True(t, bs.Aligned() == false)
}

func TestBitStreamReadsLSBFirstWhenSwapped(t *testing.T) {
	bs := c.NewLSBBitStream(c.NewMemoryStream([]byte{0b10110000}))
	buf := make([]byte, 4)
	_, err := bs.Read(buf)
	require.NoError(t, err)
	require.Equal(t, []byte{0, 0, 0, 0}, buf)
}

func TestBitStreamWriteFlushesResidualBitsAsZeroPadded(t *testing.T) {
	inner := c.NewEmptyMemoryStream()
	bs := c.NewBitStream(inner)
	_, err := bs.Write([]byte{1, 1, 0})
	require.NoError(t, err)
	require.False(t, bs.Aligned())
	require.NoError(t, bs.Flush())
	require.Equal(t, []byte{0b11000000}, inner.Bytes())
}

func TestBitStreamAlignedAfterAWholeByte(t *testing.T) {
	bs := c.NewBitStream(c.NewMemoryStream([]byte{0xFF}))
	buf := make([]byte, 8)
	_, err := bs.Read(buf)
	require.NoError(t, err)
	require.True(t, bs.Aligned())
}
