package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestSequenceRoundTrip(t *testing.T) {
	body := c.Sequence(c.Byte, c.Int16ub)
	lst := c.NewList(int64(1), int64(300))

	data, err := c.Build(body, lst, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 0x01, 0x2c}, data)

	v, err := c.Parse(body, data, nil)
	require.NoError(t, err)
	out := v.(*c.List)
	require.Equal(t, 2, out.Len())
	require.EqualValues(t, 1, out.At(0))
	require.EqualValues(t, 300, out.At(1))
}

func TestSequenceBuildRejectsWrongElementCount(t *testing.T) {
	body := c.Sequence(c.Byte, c.Byte)
	_, err := c.Build(body, c.NewList(int64(1)), nil)
	require.Error(t, err)
}
