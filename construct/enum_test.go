package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestEnumMapsKnownIntegerToName(t *testing.T) {
	con := c.Enum(c.Byte, map[string]int64{"RED": 1, "GREEN": 2})
	v, err := c.Parse(con, []byte{2}, nil)
	require.NoError(t, err)
	ev := v.(c.EnumValue)
	require.Equal(t, "GREEN", ev.Name)
	require.True(t, ev.Mapped)
}

func TestEnumUnknownIntegerStillParses(t *testing.T) {
	con := c.Enum(c.Byte, map[string]int64{"RED": 1})
	v, err := c.Parse(con, []byte{99}, nil)
	require.NoError(t, err)
	ev := v.(c.EnumValue)
	require.False(t, ev.Mapped)
	require.EqualValues(t, 99, ev.Value)
}

func TestEnumBuildAcceptsSymbolName(t *testing.T) {
	con := c.Enum(c.Byte, map[string]int64{"RED": 1})
	data, err := c.Build(con, "RED", nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1}, data)
}

func TestEnumBuildRejectsUnknownSymbol(t *testing.T) {
	con := c.Enum(c.Byte, map[string]int64{"RED": 1})
	_, err := c.Build(con, "BLUE", nil)
	require.Error(t, err)
}

func TestFlagsEnumDecomposesBits(t *testing.T) {
	con := c.FlagsEnum(c.Byte, map[string]int64{"READ": 0x1, "WRITE": 0x2, "EXEC": 0x4})
	v, err := c.Parse(con, []byte{0x3}, nil)
	require.NoError(t, err)
	flags := v.(c.FlagsValue)
	require.True(t, flags["READ"])
	require.True(t, flags["WRITE"])
	require.False(t, flags["EXEC"])
}

func TestFlagsEnumBuildRebuildsMask(t *testing.T) {
	con := c.FlagsEnum(c.Byte, map[string]int64{"READ": 0x1, "EXEC": 0x4})
	data, err := c.Build(con, c.FlagsValue{"READ": true, "EXEC": true}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{0x5}, data)
}
