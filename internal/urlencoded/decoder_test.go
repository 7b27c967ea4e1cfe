package urlencoded

import (
	"testing"

	"github.com/indigo-web/waves/http/status"
	"github.com/stretchr/testify/require"
)

func testDecoder(t *testing.T, decoder func([]byte, []byte) ([]byte, []byte, error)) {
	t.Run("no escaping", func(t *testing.T) {
		decoded, _, err := decoder([]byte("/hello"), []byte{})
		require.NoError(t, err)
		require.Equal(t, "/hello", string(decoded))
	})

	t.Run("corners", func(t *testing.T) {
		decoded, _, err := decoder([]byte("%2fhello%2F"), []byte{})
		require.NoError(t, err)
		require.Equal(t, "/hello/", string(decoded))
	})

	t.Run("multiple consecutive", func(t *testing.T) {
		decoded, _, err := decoder([]byte("%2f%20hello"), []byte{})
		require.NoError(t, err)
		require.Equal(t, "/ hello", string(decoded))
	})

	t.Run("incomplete sequence", func(t *testing.T) {
		_, _, err := decoder([]byte("%2"), []byte{})
		require.EqualError(t, err, status.ErrURLDecoding.Error())
	})

	t.Run("invalid code", func(t *testing.T) {
		_, _, err := decoder([]byte("%2j"), []byte{})
		require.EqualError(t, err, status.ErrURLDecoding.Error())
	})
}

func TestDecode(t *testing.T) {
	testDecoder(t, Decode)

	decoded, _, err := Decode([]byte("a+b"), nil)
	require.NoError(t, err)
	require.Equal(t, "a+b", string(decoded))
}

func TestExtendedDecode(t *testing.T) {
	testDecoder(t, ExtendedDecode)

	t.Run("pluses", func(t *testing.T) {
		decoded, _, err := ExtendedDecode([]byte("hello+world%21+"), nil)
		require.NoError(t, err)
		require.Equal(t, "hello world! ", string(decoded))
	})

	t.Run("string", func(t *testing.T) {
		decoded, err := ExtendedDecodeString("PUT")
		require.NoError(t, err)
		require.Equal(t, "PUT", decoded)

		decoded, err = ExtendedDecodeString("a%26b+c")
		require.NoError(t, err)
		require.Equal(t, "a&b c", decoded)
	})
}
