package construct_test

import (
	"bytes"
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func reverseBytesCopy(b []byte) ([]byte, error) {
	out := make([]byte, len(b))
	for i, x := range b {
		out[len(b)-1-i] = x
	}
	return out, nil
}

func TestTransformedAppliesCodecAroundSubcon(t *testing.T) {
	con := c.Transformed(c.GreedyBytes, reverseBytesCopy, reverseBytesCopy, 0)
	v, err := c.Parse(con, []byte{1, 2, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 2, 1}, v)
}

func TestTransformedBuildAppliesEncodeThenWrites(t *testing.T) {
	con := c.Transformed(c.GreedyBytes, reverseBytesCopy, reverseBytesCopy, 0)
	data, err := c.Build(con, []byte{1, 2, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 2, 1}, data)
}

func TestTransformedFixedLengthReadsExactlyThatMany(t *testing.T) {
	con := c.Transformed(c.GreedyBytes, func(b []byte) ([]byte, error) { return bytes.ToUpper(b), nil }, func(b []byte) ([]byte, error) { return b, nil }, 3)
	v, err := c.Parse(con, []byte("abcXYZ"), nil)
	require.NoError(t, err)
	require.Equal(t, []byte("ABC"), v)
}

func TestRestreamedIsTransformedUnderAnotherName(t *testing.T) {
	con := c.Restreamed(c.GreedyBytes, reverseBytesCopy, reverseBytesCopy)
	v, err := c.Parse(con, []byte{9, 8, 7}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{7, 8, 9}, v)
}
