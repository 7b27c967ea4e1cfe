package transport

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/indigo-web/waves/config"
)

// Listen binds the address. Depending on the TLS settings, the listener is either plain,
// or serves certificates issued by Let's Encrypt, loaded from files or self-signed, in
// that order of precedence.
func Listen(addr string, cfg config.TLS, logger *zap.Logger) (net.Listener, error) {
	switch {
	case len(cfg.AutocertDomains) > 0:
		return autoTLSListener(addr, cfg, logger)
	case len(cfg.CertFile) > 0 && len(cfg.KeyFile) > 0:
		return tlsListener(addr, cfg.CertFile, cfg.KeyFile)
	case cfg.SelfSigned:
		cert, key, err := generateSelfSignedCert(cacheDir())
		if err != nil {
			return nil, err
		}

		return tlsListener(addr, cert, key)
	default:
		return net.Listen("tcp", addr)
	}
}

func tlsListener(addr, cert, key string) (net.Listener, error) {
	certificate, err := tls.LoadX509KeyPair(cert, key)
	if err != nil {
		return nil, err
	}

	return tls.Listen("tcp", addr, &tls.Config{
		Certificates: []tls.Certificate{certificate},
	})
}

func autoTLSListener(addr string, cfg config.TLS, logger *zap.Logger) (net.Listener, error) {
	m := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		HostPolicy: autocert.HostWhitelist(cfg.AutocertDomains...),
	}

	cache := cfg.AutocertCache
	if len(cache) == 0 {
		cache = cacheDir()
	}

	if err := mkdirIfNotExists(cache); err != nil {
		logger.Warn("auto HTTPS: not using a cache", zap.String("dir", cache), zap.Error(err))
	} else {
		m.Cache = autocert.DirCache(cache)
	}

	return tls.Listen("tcp", addr, m.TLSConfig())
}

func homeDir() string {
	if runtime.GOOS == "windows" {
		return os.Getenv("HOMEDRIVE") + os.Getenv("HOMEPATH")
	}
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	return "/"
}

func cacheDir() string {
	const base = "waves-autocert"
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir(), "Library", "Caches", base)
	case "windows":
		for _, ev := range []string{"APPDATA", "CSIDL_APPDATA", "TEMP", "TMP"} {
			if v := os.Getenv(ev); v != "" {
				return filepath.Join(v, base)
			}
		}

		return filepath.Join(homeDir(), base)
	}
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, base)
	}
	return filepath.Join(homeDir(), ".cache", base)
}

// generateSelfSignedCert writes a localhost certificate into the dir, unless there's
// one already.
func generateSelfSignedCert(dir string) (cert, key string, err error) {
	cert = filepath.Join(dir, "localhost.crt")
	key = filepath.Join(dir, "localhost.key")

	if fileExists(cert) && fileExists(key) {
		return cert, key, nil
	}

	if err = mkdirIfNotExists(dir); err != nil {
		return "", "", err
	}

	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return "", "", err
	}

	notBefore := time.Now()
	template := x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{Organization: []string{"Localhost"}},
		DNSNames:              []string{"localhost"},
		IPAddresses:           []net.IP{net.IPv4(127, 0, 0, 1), net.IPv6loopback},
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(10 * 365 * 24 * time.Hour),
		KeyUsage:              x509.KeyUsageKeyEncipherment | x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}

	certDER, err := x509.CreateCertificate(rand.Reader, &template, &template, &priv.PublicKey, priv)
	if err != nil {
		return "", "", err
	}

	privBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return "", "", err
	}

	if err = writePEM(cert, "CERTIFICATE", certDER); err != nil {
		return "", "", err
	}

	if err = writePEM(key, "PRIVATE KEY", privBytes); err != nil {
		return "", "", err
	}

	return cert, key, nil
}

func writePEM(filename, blockType string, data []byte) error {
	file, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}

	if err = pem.Encode(file, &pem.Block{Type: blockType, Bytes: data}); err != nil {
		_ = file.Close()
		return err
	}

	return file.Close()
}

func mkdirIfNotExists(dir string) error {
	if stat, err := os.Stat(dir); err == nil && stat.IsDir() {
		return nil
	}

	return os.MkdirAll(dir, 0700)
}

func fileExists(filename string) bool {
	stat, err := os.Stat(filename)

	return err == nil && !stat.IsDir()
}
