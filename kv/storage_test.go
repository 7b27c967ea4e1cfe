package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	getParams := func() *Storage {
		return New().
			Add("Foo", "bar").
			Add("Hello", "World").
			Add("Lorem", "ipsum").
			Add("hello", "Pavlo")
	}

	t.Run("get", func(t *testing.T) {
		kv := getParams()
		value, found := kv.Get("HELLO")
		require.True(t, found)
		require.Equal(t, "World", value)

		value, found = kv.Last("hello")
		require.True(t, found)
		require.Equal(t, "Pavlo", value)

		_, found = kv.Get("missing")
		require.False(t, found)
		require.Equal(t, "default", kv.ValueOr("missing", "default"))
	})

	t.Run("values", func(t *testing.T) {
		require.Equal(t, []string{"World", "Pavlo"}, getParams().Values("hello"))
		require.Nil(t, getParams().Values("missing"))
	})

	t.Run("delete", func(t *testing.T) {
		kv := getParams().Delete("HELLO")

		want := []Pair{
			{"Foo", "bar"},
			{"Lorem", "ipsum"},
		}

		require.Equal(t, want, kv.Expose())
	})

	t.Run("set", func(t *testing.T) {
		kv := getParams().Set("HELLO", "no more Pavlo")

		want := []Pair{
			{"Foo", "bar"},
			{"HELLO", "no more Pavlo"},
			{"Lorem", "ipsum"},
		}

		require.Equal(t, want, kv.Expose())
	})

	t.Run("set new key", func(t *testing.T) {
		kv := New().
			Add("Pavlo", "the best").
			Set("Glory to", "Ukraine")

		want := []Pair{
			{"Pavlo", "the best"},
			{"Glory to", "Ukraine"},
		}

		require.Equal(t, want, kv.Expose())
	})

	t.Run("keys", func(t *testing.T) {
		require.Equal(t, []string{"Foo", "Hello", "Lorem"}, getParams().Keys())
		require.Equal(t, []string{"Foo", "Lorem"}, getParams().Delete("hello").Keys())
	})

	t.Run("pairs", func(t *testing.T) {
		var keys []string
		for key := range getParams().Pairs() {
			keys = append(keys, key)
			if len(keys) == 2 {
				break
			}
		}

		require.Equal(t, []string{"Foo", "Hello"}, keys)
	})

	t.Run("merge", func(t *testing.T) {
		kv := New().Add("a", "1").Merge(New().Add("A", "2"))
		require.Equal(t, 2, kv.Len())
		value, _ := kv.Last("a")
		require.Equal(t, "2", value)
	})

	t.Run("empty", func(t *testing.T) {
		kv := getParams()
		for _, key := range kv.Keys() {
			kv.Delete(key)
		}

		require.True(t, kv.Empty())
	})

	t.Run("case-sensitive", func(t *testing.T) {
		params := NewCaseSensitive().
			Add("_method", "put").
			Add("_METHOD", "delete")

		value, found := params.Last("_method")
		require.True(t, found)
		require.Equal(t, "put", value)
		require.False(t, params.Has("_Method"))
		require.Equal(t, []string{"_method", "_METHOD"}, params.Keys())

		params.Delete("_METHOD")
		require.Equal(t, 1, params.Len())
		require.True(t, params.Clone().Has("_method"))
		require.False(t, params.Clone().Has("_Method"))
	})
}
