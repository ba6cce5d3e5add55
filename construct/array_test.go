package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestArrayFixedCountRoundTrip(t *testing.T) {
	con := c.Array(3, c.Byte)
	v, err := c.Parse(con, []byte{1, 2, 3, 9}, nil)
	require.NoError(t, err)
	lst := v.(*c.List)
	require.Equal(t, 3, lst.Len())

	data, err := c.Build(con, lst, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, data)
}

func TestArrayExprCountReadsFromAnEarlierField(t *testing.T) {
	body := c.Struct(
		c.Named("n", c.Byte),
		c.Named("items", c.Array(c.This().Field("n"), c.Byte)),
	)
	v, err := c.Parse(body, []byte{2, 10, 20}, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	items, _ := rec.Get("items")
	require.Equal(t, 2, items.(*c.List).Len())
}

func TestArrayBuildRejectsWrongCount(t *testing.T) {
	_, err := c.Build(c.Array(3, c.Byte), c.NewList(int64(1), int64(2)), nil)
	require.Error(t, err)
}

func TestGreedyRangeConsumesToEOF(t *testing.T) {
	v, err := c.Parse(c.GreedyRangeOf(c.Byte), []byte{1, 2, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, v.(*c.List).Len())
}

func TestGreedyRangeDiscardsTrailingPartialElement(t *testing.T) {
	con := c.GreedyRange(c.Int16ub, true)
	v, err := c.Parse(con, []byte{0, 1, 0, 2, 0xff}, nil)
	require.NoError(t, err)
	require.Equal(t, 2, v.(*c.List).Len())
}

func TestRepeatUntilStopsOnSentinelElement(t *testing.T) {
	con := c.RepeatUntil(c.This().Field("_obj").Eq(c.Const(int64(0))), c.Byte)
	v, err := c.Parse(con, []byte{1, 2, 0, 9}, nil)
	require.NoError(t, err)
	require.Equal(t, 3, v.(*c.List).Len())
}
