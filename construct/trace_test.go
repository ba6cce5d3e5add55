package construct_test

import (
	"bytes"
	"testing"

	c "github.com/wireform/wireform/construct"
	"github.com/wireform/wireform/log"

	"github.com/stretchr/testify/require"
)

func TestSetTraceNilLeavesParsingSilent(t *testing.T) {
	c.SetTrace(nil)
	v, err := c.Parse(c.Byte, []byte{1}, nil)
	require.NoError(t, err)
	require.EqualValues(t, 1, v)
}

func TestSetTraceEmitsADebugEntryPerConstruct(t *testing.T) {
	var buf bytes.Buffer
	l := log.NewText(&buf)
	l.SetLevel(log.LevelDebug)
	c.SetTrace(l)
	defer c.SetTrace(nil)

	body := c.Struct(
		c.Named("a", c.Byte),
		c.Named("b", c.Byte),
	)
	_, err := c.Parse(body, []byte{1, 2}, nil)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "parse")
	require.Contains(t, out, "(parsing)")
}
