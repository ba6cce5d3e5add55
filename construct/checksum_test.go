package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func checksummedBody() c.Construct {
	return c.Struct(
		c.Named("body", c.RawCopy(c.Bytes(4))),
		c.Named("sum", c.Checksum(c.Int64ub, c.This().Field("body").Item("raw"))),
	)
}

func TestChecksumRoundTrip(t *testing.T) {
	con := checksummedBody()
	rec := c.NewRecord()
	bodyRec := c.NewRecord()
	bodyRec.Set("value", []byte{1, 2, 3, 4})
	rec.Set("body", bodyRec)

	data, err := c.Build(con, rec, nil)
	require.NoError(t, err)

	v, err := c.Parse(con, data, nil)
	require.NoError(t, err)
	out := v.(*c.Record)
	body, _ := out.Get("body")
	bodyValue, _ := body.(*c.Record).Get("value")
	require.Equal(t, []byte{1, 2, 3, 4}, bodyValue)
}

func TestChecksumParseFailsOnTamperedBytes(t *testing.T) {
	con := checksummedBody()
	rec := c.NewRecord()
	bodyRec := c.NewRecord()
	bodyRec.Set("value", []byte{1, 2, 3, 4})
	rec.Set("body", bodyRec)

	data, err := c.Build(con, rec, nil)
	require.NoError(t, err)
	data[0] ^= 0xFF

	_, err = c.Parse(con, data, nil)
	require.Error(t, err)
}

func digestedBody() c.Construct {
	return c.Struct(
		c.Named("body", c.RawCopy(c.Bytes(4))),
		c.Named("sum", c.Digest(c.Bytes(32), c.This().Field("body").Item("raw"))),
	)
}

func TestDigestRoundTrip(t *testing.T) {
	con := digestedBody()
	rec := c.NewRecord()
	bodyRec := c.NewRecord()
	bodyRec.Set("value", []byte{9, 8, 7, 6})
	rec.Set("body", bodyRec)

	data, err := c.Build(con, rec, nil)
	require.NoError(t, err)
	require.Len(t, data, 4+32)

	_, err = c.Parse(con, data, nil)
	require.NoError(t, err)
}
