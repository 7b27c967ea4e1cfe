package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		Str  string
		Code Code
		OK   bool
	}{
		{"302", Found, true},
		{"301", MovedPermanently, true},
		{"404", NotFound, true},
		{"99", 0, false},
		{"600", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	} {
		code, ok := Parse(tc.Str)
		require.Equal(t, tc.OK, ok, tc.Str)
		require.Equal(t, tc.Code, code, tc.Str)
	}
}

func TestText(t *testing.T) {
	require.Equal(t, Status("Found"), Text(Found))
	require.Empty(t, Text(Code(299)))
}

func TestInterruptions(t *testing.T) {
	t.Run("redirect", func(t *testing.T) {
		r := &RedirectError{Path: "/foo", Status: "301"}
		require.Equal(t, MovedPermanently, r.Code())
		require.True(t, IsRedirect(r.Code()))

		r.Status = "bogus"
		require.Equal(t, Found, r.Code())
	})

	t.Run("not found", func(t *testing.T) {
		n := &NotFoundError{Message: "http://example.com/ not found."}
		require.Equal(t, NotFound, n.Code())
		require.Equal(t, "http://example.com/ not found.", n.Error())
	})
}
