package method

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, method := range List {
		assert.Equal(t, method, Parse(strings.ToUpper(method.String())))
	}

	require.Equal(t, Method("propfind"), Parse("PROPFIND"))
}

func TestResolve(t *testing.T) {
	t.Run("tunneled", func(t *testing.T) {
		require.Equal(t, PUT, Resolve("POST", "PUT"))
		require.Equal(t, DELETE, Resolve("post", "Delete"))
		require.Equal(t, Method("purge"), Resolve("POST", "PURGE"))
	})

	t.Run("empty override", func(t *testing.T) {
		require.Equal(t, POST, Resolve("POST", ""))
	})

	t.Run("not a post", func(t *testing.T) {
		require.Equal(t, GET, Resolve("GET", "DELETE"))
		require.Equal(t, PUT, Resolve("PUT", "DELETE"))
	})

	t.Run("unknown passes through", func(t *testing.T) {
		require.Equal(t, Method("brew"), Resolve("BREW", ""))
		require.True(t, Resolve("BREW", "").Is("brew"))
	})
}
