package strutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrip(t *testing.T) {
	require.Equal(t, "hello ", LStripWS(" \thello "))
	require.Equal(t, " hello", RStripWS(" hello\t "))
	require.Empty(t, LStripWS("  "))
	require.Empty(t, RStripWS("\t"))
}

func TestCutHeader(t *testing.T) {
	value, params := CutHeader("text/html;  charset=utf-8")
	require.Equal(t, "text/html", value)
	require.Equal(t, "charset=utf-8", params)

	value, params = CutHeader("text/html")
	require.Equal(t, "text/html", value)
	require.Empty(t, params)
}

func TestUnquote(t *testing.T) {
	require.Equal(t, "abc", Unquote(`"abc"`))
	require.Equal(t, `"abc`, Unquote(`"abc`))
}

func TestEnvKey(t *testing.T) {
	require.Equal(t, "HTTP_ACCEPT_CHARSET", EnvKey("Accept-Charset"))
	require.Equal(t, "HTTP_X_FORWARDED_FOR", EnvKey("x-forwarded-for"))
	require.Equal(t, "HTTP_HOST", EnvKey("Host"))
}
