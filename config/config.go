package config

import (
	"strings"
	"time"

	"github.com/indigo-web/waves/http/mime"
)

type (
	TLS struct {
		// CertFile and KeyFile enable TLS with a static certificate.
		CertFile string `yaml:"cert_file"`
		KeyFile  string `yaml:"key_file"`
		// AutocertDomains enable TLS with certificates issued by Let's Encrypt for
		// the listed domains. Takes precedence over CertFile and KeyFile.
		AutocertDomains []string `yaml:"autocert_domains"`
		// AutocertCache is the directory the issued certificates are cached in.
		AutocertCache string `yaml:"autocert_cache"`
		// SelfSigned enables TLS with a generated self-signed certificate for local
		// development. Ignored if any other TLS option is set.
		SelfSigned bool `yaml:"self_signed"`
	}

	Server struct {
		// Addr is the address to listen at.
		Addr string `yaml:"addr"`
		// Transport is either "nethttp" or "fasthttp".
		Transport string `yaml:"transport"`
		// Metrics enables Prometheus metrics exposition at MetricsPath.
		Metrics     bool   `yaml:"metrics" test:"nullable"`
		MetricsPath string `yaml:"metrics_path"`
		// ShutdownTimeout limits how long the in-flight requests are waited for.
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
		TLS             TLS           `yaml:"tls" test:"nullable"`
	}

	Session struct {
		// CookieName is the name of the cookie carrying the session id.
		CookieName string `yaml:"cookie_name"`
		// IDLength is the length of newly generated session ids.
		IDLength int `yaml:"id_length"`
		// MaxAge is the lifetime of the session cookie. Stored sessions expire when
		// unused for as long.
		MaxAge time.Duration `yaml:"max_age"`
		// SweepInterval is how often expired sessions are removed from the store.
		SweepInterval time.Duration `yaml:"sweep_interval"`
		// Path is the cookie path.
		Path string `yaml:"path"`
		// Store is either "memory" or "pebble".
		Store string `yaml:"store"`
		// Dir is the pebble database directory.
		Dir string `yaml:"dir"`
	}

	RateLimit struct {
		// RPS is the number of requests per second allowed per remote address. Zero
		// disables the limiter.
		RPS   float64 `yaml:"rps" test:"nullable"`
		Burst int     `yaml:"burst" test:"nullable"`
		// IdleTTL is how long the bucket of a silent remote address is kept.
		IdleTTL time.Duration `yaml:"idle_ttl"`
	}

	Logging struct {
		// Level is one of debug, info, warn or error.
		Level string `yaml:"level"`
		// Format is either "console" or "json".
		Format string `yaml:"format"`
	}

	Body struct {
		// MaxFormSize limits the urlencoded body read in order to obtain the form
		// parameters.
		MaxFormSize int64 `yaml:"max_form_size"`
	}
)

// MimeTypes maps lowercase request paths to the MIME types they are served with.
type MimeTypes map[string]mime.MIME

// Lookup returns the MIME type configured for the path. The path must already be
// lowercased.
func (m MimeTypes) Lookup(path string) (mime.MIME, bool) {
	value, found := m[path]
	return value, found
}

// normalize lowercases the keys, so lookups by lowercased paths never miss. Entries
// written as file extensions (".rss") are replaced by their MIME types.
func (m MimeTypes) normalize() MimeTypes {
	normalized := make(MimeTypes, len(m))
	for path, value := range m {
		normalized[strings.ToLower(path)] = expandExtensions(value)
	}

	return normalized
}

func expandExtensions(value string) string {
	if !strings.Contains(value, ".") {
		return value
	}

	entries := strings.Split(value, ",")
	for i, entry := range entries {
		if mimeType, found := mime.Extension[strings.ToLower(strings.TrimSpace(entry))]; found {
			entries[i] = mimeType
		} else {
			entries[i] = strings.TrimSpace(entry)
		}
	}

	return strings.Join(entries, ", ")
}

// Config holds settings of the request core and everything around it: transports,
// sessions, rate limiting and logging.
//
// You should always start from defaults (returned via Default()) and never try to
// initialize the config manually.
type Config struct {
	Server    Server    `yaml:"server"`
	MimeTypes MimeTypes `yaml:"mime_types"`
	Session   Session   `yaml:"session"`
	RateLimit RateLimit `yaml:"rate_limit" test:"nullable"`
	Logging   Logging   `yaml:"logging"`
	Body      Body      `yaml:"body"`
}

// Default returns default config.
func Default() *Config {
	return &Config{
		Server: Server{
			Addr:            ":8080",
			Transport:       "nethttp",
			MetricsPath:     "/metrics",
			ShutdownTimeout: 10 * time.Second,
		},
		MimeTypes: make(MimeTypes),
		Session: Session{
			CookieName:    "waves.session",
			IDLength:      32,
			MaxAge:        24 * time.Hour,
			SweepInterval: time.Minute,
			Path:          "/",
			Store:         "memory",
			Dir:           "./sessions",
		},
		RateLimit: RateLimit{
			IdleTTL: 10 * time.Minute,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Body: Body{
			MaxFormSize: 2 * 1024 * 1024,
		},
	}
}
