package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestPrefixedBoundsSubconToDeclaredLength(t *testing.T) {
	body := c.Struct(
		c.Named("tag", c.Byte),
		c.Named("payload", c.Prefixed(c.Byte, c.Bytes(2), false)),
		c.Named("next", c.Byte),
	)
	// tag=0xAA, length=5, payload region is 5 bytes but Bytes(2) only
	// consumes the first 2 — the remaining 3 must still be skipped so
	// "next" lands right after the declared region.
	data := []byte{0xAA, 5, 1, 2, 3, 4, 5, 0xBB}
	v, err := c.Parse(body, data, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	payload, _ := rec.Get("payload")
	require.Equal(t, []byte{1, 2}, payload)
	next, _ := rec.Get("next")
	require.EqualValues(t, 0xBB, next)
}

func TestPrefixedRoundTrip(t *testing.T) {
	con := c.Prefixed(c.Byte, c.GreedyBytes, false)
	data, err := c.Build(con, []byte{1, 2, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 1, 2, 3}, data)

	v, err := c.Parse(con, data, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, v)
}

func TestPrefixedArrayCountsElementsNotBytes(t *testing.T) {
	con := c.PrefixedArray(c.Byte, c.Int16ub)
	data, err := c.Build(con, c.NewList(int64(1), int64(2), int64(3)), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{3, 0, 1, 0, 2, 0, 3}, data)

	v, err := c.Parse(con, data, nil)
	require.NoError(t, err)
	require.Equal(t, 3, v.(*c.List).Len())
}

func TestNullTerminatedConsumesTerminatorButExcludesItFromSubcon(t *testing.T) {
	con := c.Struct(
		c.Named("s", c.NullTerminated(c.GreedyBytes, 0x00)),
		c.Named("rest", c.Byte),
	)
	v, err := c.Parse(con, []byte{'h', 'i', 0x00, 0xFF}, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	s, _ := rec.Get("s")
	require.Equal(t, []byte("hi"), s)
	rest, _ := rec.Get("rest")
	require.EqualValues(t, 0xFF, rest)
}
