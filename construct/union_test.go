package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestSelectCommitsToFirstSuccessfulAlternative(t *testing.T) {
	con := c.Select(
		c.Named("asInt", c.ConstOf(c.Int32ub, []byte{1, 2, 3, 4})),
		c.Named("asBytes", c.Bytes(4)),
	)
	v, err := c.Parse(con, []byte{9, 9, 9, 9}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{9, 9, 9, 9}, v)
}

func TestSelectFailsWhenNoAlternativeMatches(t *testing.T) {
	con := c.Select(c.ConstBytes([]byte{1, 2}))
	_, err := c.Parse(con, []byte{9, 9}, nil)
	require.Error(t, err)
}

func TestUnionParsesEveryAlternativeFromSameOffset(t *testing.T) {
	con := c.Union(0,
		c.Named("asInt", c.Int32ub),
		c.Named("asBytes", c.Bytes(4)),
	)
	v, err := c.Parse(con, []byte{0, 0, 0, 1}, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	asInt, ok := rec.Get("asInt")
	require.True(t, ok)
	require.EqualValues(t, 1, asInt)
	asBytes, ok := rec.Get("asBytes")
	require.True(t, ok)
	require.Equal(t, []byte{0, 0, 0, 1}, asBytes)
}

func TestUnionAdvancesByTheParseFromAlternative(t *testing.T) {
	con := c.Struct(
		c.Named("u", c.Union(1,
			c.Named("asInt", c.Int16ub),
			c.Named("asBytes", c.Bytes(4)),
		)),
		c.Named("rest", c.Byte),
	)
	v, err := c.Parse(con, []byte{0, 0, 0, 1, 0xAA}, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	rest, _ := rec.Get("rest")
	require.EqualValues(t, 0xAA, rest)
}
