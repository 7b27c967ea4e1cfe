package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/indigo-web/waves/http/mime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoZeroFields(t *testing.T) {
	cfg := Default()

	for _, field := range visit(newVar(*cfg), "Config", false) {
		assert.Fail(t, "zero-value field", field)
	}
}

type variable struct {
	Type  reflect.Type
	Value reflect.Value
}

func newVar(a any) variable {
	return variable{reflect.TypeOf(a), reflect.ValueOf(a)}
}

func visit(a variable, name string, nullable bool) (fields []string) {
	if nullable {
		return nil
	}

	if a.Type.Kind() == reflect.Struct {
		for field := range a.Value.NumField() {
			v1 := variable{a.Type.Field(field).Type, a.Value.Field(field)}
			fieldname := a.Type.Field(field).Name
			isNullable := a.Type.Field(field).Tag.Get("test") == "nullable"
			fields = append(fields, visit(v1, name+"."+fieldname, isNullable)...)
		}

		return fields
	}

	if a.Value.IsZero() {
		return []string{name}
	}

	return nil
}

func TestParse(t *testing.T) {
	t.Run("overrides only present fields", func(t *testing.T) {
		cfg := Default()
		err := Parse([]byte(`
server:
  addr: ":9090"
  shutdown_timeout: 3s
mime_types:
  /Feed.RSS: application/rss+xml
  /api/users: application/json, application/xml
session:
  store: pebble
`), cfg)
		require.NoError(t, err)
		require.Equal(t, ":9090", cfg.Server.Addr)
		require.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
		require.Equal(t, "nethttp", cfg.Server.Transport)
		require.Equal(t, "pebble", cfg.Session.Store)
		require.Equal(t, "waves.session", cfg.Session.CookieName)

		value, found := cfg.MimeTypes.Lookup("/feed.rss")
		require.True(t, found)
		require.Equal(t, mime.RSS, value)

		_, found = cfg.MimeTypes.Lookup("/Feed.RSS")
		require.False(t, found)
	})

	t.Run("extensions in mime types", func(t *testing.T) {
		cfg := Default()
		err := Parse([]byte(`
mime_types:
  /feed: .RSS
  /entries: .json, application/vnd.api+json, .nope
`), cfg)
		require.NoError(t, err)

		value, _ := cfg.MimeTypes.Lookup("/feed")
		require.Equal(t, mime.RSS, value)
		value, _ = cfg.MimeTypes.Lookup("/entries")
		require.Equal(t, "application/json, application/vnd.api+json, .nope", value)
	})

	t.Run("malformed", func(t *testing.T) {
		require.Error(t, Parse([]byte("server: [1, 2"), Default()))
	})
}

func TestLoad(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "waves.yaml")
		require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))

		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, "debug", cfg.Logging.Level)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("WAVES_ADDR", ":7070")
	t.Setenv("WAVES_RATE_RPS", "2.5")
	t.Setenv("WAVES_RATE_BURST", "4")
	t.Setenv("WAVES_METRICS", "true")
	t.Setenv("WAVES_AUTOCERT_DOMAINS", "a.example.com,b.example.com")

	cfg := Default()
	require.NoError(t, FromEnv(cfg))
	require.Equal(t, ":7070", cfg.Server.Addr)
	require.Equal(t, 2.5, cfg.RateLimit.RPS)
	require.Equal(t, 4, cfg.RateLimit.Burst)
	require.True(t, cfg.Server.Metrics)
	require.Equal(t, []string{"a.example.com", "b.example.com"}, cfg.Server.TLS.AutocertDomains)

	t.Setenv("WAVES_RATE_BURST", "many")
	require.Error(t, FromEnv(Default()))
}

func TestLoadDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("WAVES_DOTENV_PROBE=hello\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("WAVES_DOTENV_PROBE") })

	require.NoError(t, LoadDotenv(path, filepath.Join(t.TempDir(), "missing.env")))
	require.Equal(t, "hello", os.Getenv("WAVES_DOTENV_PROBE"))
}
