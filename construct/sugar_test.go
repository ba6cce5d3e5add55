package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestNamedPanicsOnReservedName(t *testing.T) {
	require.Panics(t, func() {
		c.Named("_root", c.Byte)
	})
}

func TestNamedRenamesAPreviouslyNamedConstruct(t *testing.T) {
	once := c.Named("a", c.Byte)
	renamed := c.Named("b", once)
	body := c.Struct(renamed)
	v, err := c.Parse(body, []byte{7}, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	val, ok := rec.Get("b")
	require.True(t, ok)
	require.EqualValues(t, 7, val)
	_, hasOld := rec.Get("a")
	require.False(t, hasOld)
}

func TestProcessedAppliesPostParseHook(t *testing.T) {
	con := c.Processed(c.Byte, func(v any) (any, error) {
		return v.(uint64) * 2, nil
	})
	v, err := c.Parse(con, []byte{5}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 10, v)
}

func TestArrayOfAndGreedyRangeOfAreSugarAliases(t *testing.T) {
	v1, err := c.Parse(c.ArrayOf(2, c.Byte), []byte{1, 2, 9}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, v1.(*c.List).Len())

	v2, err := c.Parse(c.GreedyRangeOf(c.Byte), []byte{1, 2, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, v2.(*c.List).Len())
}
