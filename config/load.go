package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load reads the YAML file at path on top of the defaults. A missing file isn't an
// error, the defaults are returned instead.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}

		return nil, err
	}

	if err = Parse(data, cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML data into the cfg, overriding only the fields present.
func Parse(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	if cfg.MimeTypes == nil {
		cfg.MimeTypes = make(MimeTypes)
	}

	cfg.MimeTypes = cfg.MimeTypes.normalize()

	return nil
}

// LoadDotenv populates the process environment from the dotenv files. Missing files
// are ignored.
func LoadDotenv(files ...string) error {
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

// FromEnv overrides the cfg fields by WAVES_* environment variables.
func FromEnv(cfg *Config) error {
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && len(v) > 0 {
			*dst = v
		}
	}

	str("WAVES_ADDR", &cfg.Server.Addr)
	str("WAVES_TRANSPORT", &cfg.Server.Transport)
	str("WAVES_LOG_LEVEL", &cfg.Logging.Level)
	str("WAVES_LOG_FORMAT", &cfg.Logging.Format)
	str("WAVES_SESSION_STORE", &cfg.Session.Store)
	str("WAVES_SESSION_DIR", &cfg.Session.Dir)
	str("WAVES_TLS_CERT_FILE", &cfg.Server.TLS.CertFile)
	str("WAVES_TLS_KEY_FILE", &cfg.Server.TLS.KeyFile)

	if v := os.Getenv("WAVES_AUTOCERT_DOMAINS"); len(v) > 0 {
		cfg.Server.TLS.AutocertDomains = strings.Split(v, ",")
	}

	if v := os.Getenv("WAVES_METRICS"); len(v) > 0 {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: WAVES_METRICS: %w", err)
		}

		cfg.Server.Metrics = enabled
	}

	if v := os.Getenv("WAVES_RATE_RPS"); len(v) > 0 {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: WAVES_RATE_RPS: %w", err)
		}

		cfg.RateLimit.RPS = rps
	}

	if v := os.Getenv("WAVES_RATE_BURST"); len(v) > 0 {
		burst, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: WAVES_RATE_BURST: %w", err)
		}

		cfg.RateLimit.Burst = burst
	}

	return nil
}
