package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestCheckFailsOnFalsePredicate(t *testing.T) {
	body := c.Struct(
		c.Named("n", c.Byte),
		c.Check(c.This().Field("n").Gt(c.Const(int64(0)))),
	)
	_, err := c.Parse(body, []byte{0}, nil)
	require.Error(t, err)
}

func TestCheckPassesOnTruePredicate(t *testing.T) {
	body := c.Struct(
		c.Named("n", c.Byte),
		c.Check(c.This().Field("n").Gt(c.Const(int64(0)))),
	)
	_, err := c.Parse(body, []byte{1}, nil)
	require.NoError(t, err)
}

func TestIfThenElseDispatchesOnPredicate(t *testing.T) {
	body := c.Struct(
		c.Named("hasValue", c.Flag),
		c.Named("value", c.IfThenElse(c.This().Field("hasValue"), c.Byte, c.Computed(c.Const(int64(0))))),
	)
	v, err := c.Parse(body, []byte{0, 9}, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	value, _ := rec.Get("value")
	require.Equal(t, int64(0), value)
}

func TestIfParsesSubconWhenTrueOtherwiseSkips(t *testing.T) {
	body := c.Struct(
		c.Named("hasValue", c.Flag),
		c.Named("value", c.If(c.This().Field("hasValue"), c.Byte)),
	)
	v, err := c.Parse(body, []byte{1, 9}, nil)
	require.NoError(t, err)
	rec := v.(*c.Record)
	value, _ := rec.Get("value")
	require.EqualValues(t, 9, value)
}

func TestDefaultSubstitutesOnNilBuildInput(t *testing.T) {
	con := c.Default(c.Byte, int64(7))
	data, err := c.Build(con, nil, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{7}, data)
}

func TestDefaultPassesThroughNonNilValue(t *testing.T) {
	con := c.Default(c.Byte, int64(7))
	data, err := c.Build(con, int64(3), nil)
	require.NoError(t, err)
	require.Equal(t, []byte{3}, data)
}
