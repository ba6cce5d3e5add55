package construct_test

import (
	"testing"

	c "github.com/wireform/wireform/construct"

	"github.com/stretchr/testify/require"
)

func TestRecordPreservesInsertionOrder(t *testing.T) {
	rec := c.NewRecord()
	rec.Set("b", 2)
	rec.Set("a", 1)
	rec.Set("b", 20)
	require.Equal(t, []string{"b", "a"}, rec.Keys())
	v, ok := rec.Get("b")
	require.True(t, ok)
	require.Equal(t, 20, v)
}

func TestRecordSearchAllRecursesIntoNestedContainers(t *testing.T) {
	inner := c.NewRecord()
	inner.Set("id", 7)
	lst := c.NewList(inner, "id")
	outer := c.NewRecord()
	outer.Set("items", lst)
	outer.Set("id", 1)

	hits := outer.SearchAll("id", false)
	require.ElementsMatch(t, []any{1, 7}, hits)
}

func TestEnumValueStringIsEmptyWhenUnmapped(t *testing.T) {
	mapped := c.EnumValue{Name: "RED", Value: 1, Mapped: true}
	require.Equal(t, "RED", mapped.String())

	unmapped := c.EnumValue{Value: 99, Mapped: false}
	require.Equal(t, "", unmapped.String())
}
