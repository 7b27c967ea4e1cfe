package waves

import (
	"context"
	"io"
	nethttp "net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/indigo-web/waves/config"
	"github.com/indigo-web/waves/dispatcher/middleware"
	"github.com/indigo-web/waves/http"
	"github.com/indigo-web/waves/session"
)

func getConfig(transport string) *config.Config {
	cfg := config.Default()
	cfg.Server.Addr = "127.0.0.1:0"
	cfg.Server.Transport = transport
	cfg.Server.Metrics = true
	cfg.Server.ShutdownTimeout = time.Second
	return cfg
}

func hello(request *http.Request) error {
	if request.Path() != "/hello" {
		return request.NotFound()
	}

	request.Response().String("hello, " + request.Method().String())
	return nil
}

// connections aren't reused, so the shutdown never waits for idle ones
var client = &nethttp.Client{
	Transport: &nethttp.Transport{DisableKeepAlives: true},
	Timeout:   5 * time.Second,
}

func get(t *testing.T, url string) (int, string, nethttp.Header) {
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header
}

func TestServe(t *testing.T) {
	for _, transport := range []string{TransportNetHTTP, TransportFastHTTP} {
		t.Run(transport, func(t *testing.T) {
			started, stopped := make(chan struct{}), make(chan struct{})
			app := New(getConfig(transport)).
				Handle(hello).
				Use(middleware.ServerHeader()).
				NotifyOnStart(func() { close(started) }).
				NotifyOnStop(func() { close(stopped) })

			ctx, cancel := context.WithCancel(context.Background())
			errCh := make(chan error, 1)
			go func() {
				errCh <- app.Serve(ctx)
			}()

			select {
			case <-started:
			case err := <-errCh:
				t.Fatalf("app failed to start: %v", err)
			}

			base := "http://" + app.Addr().String()

			code, body, headers := get(t, base+"/hello")
			require.Equal(t, nethttp.StatusOK, code)
			require.Equal(t, "hello, get", body)
			require.Equal(t, middleware.DefaultServerHeader, headers.Get("Server"))

			code, body, _ = get(t, base+"/nope")
			require.Equal(t, nethttp.StatusNotFound, code)
			require.True(t, strings.HasSuffix(body, "/nope not found."))

			code, body, _ = get(t, base+"/metrics")
			require.Equal(t, nethttp.StatusOK, code)
			require.Contains(t, body, `waves_requests_total{method="get",outcome="ok"} 1`)
			require.Contains(t, body, `waves_requests_total{method="get",outcome="not_found"} 1`)

			cancel()
			require.NoError(t, <-errCh)
			<-stopped
		})
	}
}

func TestUnknownTransport(t *testing.T) {
	err := New(getConfig("carrier-pigeon")).Serve(context.Background())
	require.ErrorIs(t, err, ErrUnknownTransport)
}

func TestSweepSessions(t *testing.T) {
	store := session.NewMemory()
	require.NoError(t, store.Save("stale", session.Data{"a": 1}, time.Millisecond))
	require.NoError(t, store.Save("kept", session.Data{"a": 2}, time.Hour))

	cfg := config.Default()
	cfg.Session.SweepInterval = 10 * time.Millisecond
	app := New(cfg).Sessions(store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.sweepSessions(ctx, store)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return store.Len() == 1
	}, time.Second, 10*time.Millisecond)

	_, err := store.Load("kept")
	require.NoError(t, err)

	cancel()
	<-done
}
