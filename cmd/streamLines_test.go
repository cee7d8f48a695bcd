package cmd

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
)

func TestStreamLines_SplitsAndKeepsTrailingLine(t *testing.T) {
	var got []string
	err := streamLines(strings.NewReader("one\r\ntwo\n\nthree"), func(l string) { got = append(got, l) })
	require.NoError(t, err)
	require.Equal(t, []string{"one", "two", "", "three"}, got)
}

func TestStreamLines_LongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	var got []string
	require.NoError(t, streamLines(strings.NewReader(long+"\nend\n"), func(l string) { got = append(got, l) }))
	require.Len(t, got, 2)
	require.Len(t, got[0], 1<<20)
}

func TestStreamLines_ReadError(t *testing.T) {
	boom := errors.New("boom")
	err := streamLines(iotest.ErrReader(boom), func(string) {})
	require.ErrorIs(t, err, boom)
}
