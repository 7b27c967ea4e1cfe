package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlackboard(t *testing.T) {
	board := NewBlackboard()
	board.
		Set("title", "Entries").
		Set("count", 3).
		Set("author", nil)

	require.Equal(t, 3, board.Len())
	assert.Equal(t, []string{"author", "count", "title"}, board.Keys())

	value, found := board.Get("count")
	require.True(t, found)
	assert.Equal(t, 3, value)

	assert.True(t, board.Has("author"))
	assert.Nil(t, board.Value("author"))
	assert.Nil(t, board.Value("missing"))

	board.Delete("author")
	assert.False(t, board.Has("author"))
	assert.Equal(t, 2, board.Len())
}
