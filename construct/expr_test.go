package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestArithmeticExprStaysIntegerWhenBothSidesAre(t *testing.T) {
	expr := c.Const(int64(4)).Mul(c.Const(int64(3))).Add(c.Const(int64(1)))
	v, err := expr.Eval(nil)
	require.NoError(t, err)
	require.Equal(t, int64(13), v)
}

func TestComparisonAndLogicalExpr(t *testing.T) {
	pred := c.Const(int64(10)).Gt(c.Const(int64(5))).And(c.Const(true))
	v, err := pred.Eval(nil)
	require.NoError(t, err)
	require.Equal(t, true, v)
}

func TestItemIndexesIntoARecord(t *testing.T) {
	rec := c.NewRecord()
	rec.Set("raw", []byte{1, 2, 3})
	expr := c.Const(rec).Item("raw")
	v, err := expr.Eval(nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, v)
}

func TestItemErrorsOnMissingKey(t *testing.T) {
	rec := c.NewRecord()
	expr := c.Const(rec).Item("missing")
	_, err := expr.Eval(nil)
	require.Error(t, err)
}

func TestFieldErrorsWhenBaseIsNotAContext(t *testing.T) {
	expr := c.Const(42).Field("x")
	_, err := expr.Eval(nil)
	require.Error(t, err)
}
