package waves

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/indigo-web/waves/config"
	"github.com/indigo-web/waves/dispatcher"
	"github.com/indigo-web/waves/http"
	"github.com/indigo-web/waves/session"
	"github.com/indigo-web/waves/transport"
)

const (
	TransportNetHTTP  = "nethttp"
	TransportFastHTTP = "fasthttp"
)

var ErrUnknownTransport = errors.New("unknown transport")

// App wires the dispatcher to a transport and runs it until the context is done.
type App struct {
	cfg         *config.Config
	logger      *zap.Logger
	sessions    session.Store
	handler     dispatcher.Handler
	middlewares []dispatcher.Middleware
	hooks       hooks
	addr        net.Addr
}

// New returns a new App instance. Until a handler is set, every request is answered
// with 404 Not Found. Sessions are kept in memory unless another store is set.
func New(cfg *config.Config) *App {
	return &App{
		cfg:      cfg,
		logger:   zap.NewNop(),
		sessions: session.NewMemory(),
		handler: func(request *http.Request) error {
			return request.NotFound()
		},
	}
}

func (a *App) Logger(logger *zap.Logger) *App {
	a.logger = logger
	return a
}

func (a *App) Sessions(store session.Store) *App {
	a.sessions = store
	return a
}

// Handle sets the handler every request is passed to.
func (a *App) Handle(handler dispatcher.Handler) *App {
	a.handler = handler
	return a
}

// Use adds middlewares, the first one being the outermost.
func (a *App) Use(middlewares ...dispatcher.Middleware) *App {
	a.middlewares = append(a.middlewares, middlewares...)
	return a
}

// NotifyOnStart calls the callback at the moment the listener is bound. The server
// accepts connections shortly after.
func (a *App) NotifyOnStart(cb func()) *App {
	a.hooks.OnStart = cb
	return a
}

// NotifyOnStop calls the callback at the moment the server is down.
func (a *App) NotifyOnStop(cb func()) *App {
	a.hooks.OnStop = cb
	return a
}

// Addr returns the bound address. It's known only after the start is notified.
func (a *App) Addr() net.Addr {
	return a.addr
}

// Serve runs the application until the context is done or the server fails. Requests
// in flight are awaited for at most the configured shutdown timeout.
func (a *App) Serve(ctx context.Context) error {
	var (
		registry *prometheus.Registry
		opts     = []dispatcher.Option{dispatcher.WithLogger(a.logger)}
	)

	if a.cfg.Server.Metrics {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, dispatcher.WithMetrics(dispatcher.NewMetrics(registry)))
	}

	d := dispatcher.New(a.cfg, a.sessions, a.handler, opts...).Use(a.middlewares...)

	srv, err := a.newServer(d, registry)
	if err != nil {
		return err
	}

	l, err := transport.Listen(a.cfg.Server.Addr, a.cfg.Server.TLS, a.logger)
	if err != nil {
		return err
	}

	a.addr = l.Addr()
	a.logger.Info("listening",
		zap.String("addr", a.addr.String()),
		zap.String("transport", a.cfg.Server.Transport),
	)

	if sweeper, ok := a.sessions.(session.Sweeper); ok && a.cfg.Session.SweepInterval > 0 {
		sweepCtx, cancel := context.WithCancel(ctx)
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.sweepSessions(sweepCtx, sweeper)
		}()
		// the store may be closed right after Serve returns
		defer wg.Wait()
		defer cancel()
	}

	return a.run(ctx, srv, l)
}

// sweepSessions removes expired sessions every sweep interval until the context is done.
func (a *App) sweepSessions(ctx context.Context, sweeper session.Sweeper) {
	ticker := time.NewTicker(a.cfg.Session.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			removed, err := sweeper.Sweep(now)
			if err != nil {
				a.logger.Warn("cannot sweep expired sessions", zap.Error(err))
				continue
			}

			if removed > 0 {
				a.logger.Debug("expired sessions swept", zap.Int("removed", removed))
			}
		}
	}
}

func (a *App) run(ctx context.Context, srv server, l net.Listener) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(l)
	}()

	callIfNotNil(a.hooks.OnStart)
	defer callIfNotNil(a.hooks.OnStop)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down", zap.Duration("timeout", a.cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// server is the common part of the supported HTTP servers.
type server interface {
	Serve(l net.Listener) error
	Shutdown(ctx context.Context) error
}

func (a *App) newServer(d *dispatcher.Dispatcher, registry *prometheus.Registry) (server, error) {
	formLimit := a.cfg.Body.MaxFormSize
	var metrics nethttp.Handler
	if registry != nil {
		metrics = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	}

	switch a.cfg.Server.Transport {
	case TransportNetHTTP, "":
		mux := nethttp.NewServeMux()
		if metrics != nil {
			mux.Handle(a.cfg.Server.MetricsPath, metrics)
		}
		mux.Handle("/", transport.NetHTTP(d, formLimit))

		return netHTTPServer{&nethttp.Server{
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ErrorLog:          zap.NewStdLog(a.logger),
		}}, nil
	case TransportFastHTTP:
		handler := transport.FastHTTP(d, formLimit)
		if metrics != nil {
			metricsHandler := fasthttpadaptor.NewFastHTTPHandler(metrics)
			next := handler
			handler = func(ctx *fasthttp.RequestCtx) {
				if string(ctx.Path()) == a.cfg.Server.MetricsPath {
					metricsHandler(ctx)
					return
				}

				next(ctx)
			}
		}

		return fastHTTPServer{&fasthttp.Server{
			Handler: handler,
			Name:    "waves",
			Logger:  zap.NewStdLog(a.logger),
		}}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, a.cfg.Server.Transport)
	}
}

type netHTTPServer struct {
	*nethttp.Server
}

func (n netHTTPServer) Serve(l net.Listener) error {
	if err := n.Server.Serve(l); !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}

	return nil
}

type fastHTTPServer struct {
	*fasthttp.Server
}

func (f fastHTTPServer) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		done <- f.Server.Shutdown()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type hooks struct {
	OnStart, OnStop func()
}

func callIfNotNil(f func()) {
	if f != nil {
		f()
	}
}
