package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestPathErrorWrapsOnce(t *testing.T) {
	_, err := c.Parse(c.Bytes(4), []byte{1, 2}, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "(parsing)")
}

func TestCancelParsingPropagatesAsErrorOutsideARangeConsumer(t *testing.T) {
	require.Equal(t, "parsing cancelled", c.CancelParsing.Error())
	_, err := c.Parse(c.StopIf(c.Const(true)), nil, nil)
	require.ErrorIs(t, err, c.CancelParsing)
}

func TestCancelParsingEndsAGreedyRangeCleanly(t *testing.T) {
	body := c.Struct(
		c.Named("n", c.Byte),
		c.Named("stop", c.StopIf(c.This().Field("n").Eq(c.Const(int64(0))))),
	)
	v, err := c.Parse(c.GreedyRangeOf(body), []byte{1, 2, 0, 9}, nil)
	require.NoError(t, err)
	lst := v.(*c.List)
	require.Equal(t, 2, lst.Len())
}
