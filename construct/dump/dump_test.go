package dump_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"
	"github.com/wireform/wireform/construct/dump"

	"github.com/stretchr/testify/require"
)

func TestMarshalPreservesFieldOrder(t *testing.T) {
	rec := c.NewRecord()
	rec.Set("b", int64(2))
	rec.Set("a", int64(1))

	out, err := dump.Marshal(rec)
	require.NoError(t, err)
	text := string(out)
	require.Less(t, indexOf(text, "b:"), indexOf(text, "a:"))
}

func TestMarshalRendersMappedEnumAsItsName(t *testing.T) {
	rec := c.NewRecord()
	rec.Set("mode", c.EnumValue{Name: "RGBA", Value: 2, Mapped: true})

	out, err := dump.Marshal(rec)
	require.NoError(t, err)
	require.Contains(t, string(out), "RGBA")
}

func TestUnmarshalRoundTripsThroughMarshal(t *testing.T) {
	rec := c.NewRecord()
	rec.Set("width", int64(2))
	rec.Set("height", int64(1))
	lst := c.NewList()
	lst.Append(int64(1))
	lst.Append(int64(2))
	rec.Set("pixels", lst)

	out, err := dump.Marshal(rec)
	require.NoError(t, err)

	v, err := dump.Unmarshal(out)
	require.NoError(t, err)
	back := v.(*c.Record)

	width, _ := back.Get("width")
	require.Equal(t, int64(2), width)

	pixels, _ := back.Get("pixels")
	require.Equal(t, 2, pixels.(*c.List).Len())
}

func TestMarshalJSONRendersRecordAsAnObject(t *testing.T) {
	rec := c.NewRecord()
	rec.Set("width", int64(2))
	rec.Set("height", int64(1))

	out, err := dump.MarshalJSON(rec)
	require.NoError(t, err)
	require.JSONEq(t, `{"width":2,"height":1}`, string(out))
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
