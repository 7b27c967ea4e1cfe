// Package dispatcher is the boundary between transports and application code. It wraps
// every raw transaction into a Request, runs the handler and turns whatever the handler
// returned, panics included, into a response.
package dispatcher

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/indigo-web/waves/config"
	"github.com/indigo-web/waves/env"
	"github.com/indigo-web/waves/http"
	"github.com/indigo-web/waves/http/cookie"
	"github.com/indigo-web/waves/http/method"
	"github.com/indigo-web/waves/http/mime"
	"github.com/indigo-web/waves/http/status"
	"github.com/indigo-web/waves/session"
)

// ErrPanic wraps the values handlers panicked with.
var ErrPanic = errors.New("handler panicked")

type Dispatcher struct {
	cfg         *config.Config
	sessions    session.Store
	handler     Handler
	middlewares []Middleware
	chain       Handler
	logger      *zap.Logger
	metrics     *Metrics
	limiter     *limiterPool
}

type Option func(*Dispatcher)

// WithLogger sets the logger. Nothing is logged by default.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithMetrics enables metrics collection.
func WithMetrics(metrics *Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = metrics
	}
}

// New returns a dispatcher running the handler. Sessions are loaded from and saved into
// the store.
func New(cfg *config.Config, sessions session.Store, handler Handler, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:      cfg,
		sessions: sessions,
		handler:  handler,
		logger:   zap.NewNop(),
		limiter:  newLimiterPool(cfg.RateLimit),
	}

	for _, opt := range opts {
		opt(d)
	}

	d.chain = handler
	return d
}

// Use appends middlewares to the chain. Must not be called concurrently with Dispatch.
func (d *Dispatcher) Use(middlewares ...Middleware) *Dispatcher {
	d.middlewares = append(d.middlewares, middlewares...)
	d.chain = Compose(d.handler, d.middlewares...)
	return d
}

// Dispatch handles a single transaction. The returned response is always complete,
// errors are already translated into it.
func (d *Dispatcher) Dispatch(tx env.Transaction) *http.Response {
	start := time.Now()

	request, err := http.NewRequest(d.cfg, tx, d.sessions)
	if err != nil {
		d.logger.Error("cannot load session", zap.Error(err))
		// an empty store never fails, so the error response can still be built
		request, _ = http.NewRequest(d.cfg, tx, session.NewMemory())
		return d.finish(request, err, start)
	}

	if !d.limiter.Allow(tx.Env().Value(env.RemoteAddr)) {
		request.Response().Error(status.ErrTooManyRequests)
		return d.finish(request, status.ErrTooManyRequests, start)
	}

	err = d.run(request)
	if completed(err) {
		if serr := d.saveSession(request); serr != nil {
			err = serr
		}
	}

	return d.finish(request, err, start)
}

func (d *Dispatcher) run(request *http.Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return d.chain(request)
}

// completed tells whether the handler got to the end, even if by an interruption. Only
// completed requests save their sessions.
func completed(err error) bool {
	var (
		notFound *status.NotFoundError
		redirect *status.RedirectError
	)

	return err == nil || errors.As(err, &notFound) || errors.As(err, &redirect)
}

func (d *Dispatcher) saveSession(request *http.Request) error {
	sess := request.Session()
	fresh, dirty, cleared := sess.Fresh(), sess.Dirty(), sess.Cleared()

	if err := sess.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	switch {
	case cleared:
		request.Response().Cookie(d.sessionCookie(sess.ID(), -1))
	case fresh && dirty:
		request.Response().Cookie(d.sessionCookie(sess.ID(), int(d.cfg.Session.MaxAge.Seconds())))
	}

	return nil
}

func (d *Dispatcher) sessionCookie(id string, maxAge int) cookie.Cookie {
	value := id
	if maxAge < 0 {
		value = ""
	}

	return cookie.Build(d.cfg.Session.CookieName, value).
		Path(d.cfg.Session.Path).
		MaxAge(maxAge).
		SameSite(cookie.SameSiteLax).
		HttpOnly(true).
		Cookie()
}

// finish translates the error into the response, logs and counts the request.
func (d *Dispatcher) finish(request *http.Request, err error, start time.Time) *http.Response {
	response := request.Response()
	outcome := OutcomeOK

	var (
		notFound *status.NotFoundError
		redirect *status.RedirectError
	)

	switch {
	case err == nil:
	case errors.As(err, &notFound):
		outcome = OutcomeNotFound
		response.
			Code(notFound.Code()).
			ContentType(mime.Plain).
			String(notFound.Message)
	case errors.As(err, &redirect):
		outcome = OutcomeRedirect
		response.
			Code(redirect.Code()).
			SetHeader("Location", redirect.Path)
	case errors.Is(err, status.ErrTooManyRequests):
		outcome = OutcomeLimited
	case errors.Is(err, ErrPanic):
		outcome = OutcomePanic
		response.Clear().Error(status.ErrInternalServerError)
		d.logger.Error("handler panicked", zap.String("path", request.Path()), zap.Error(err))
	default:
		outcome = OutcomeError
		var known status.HTTPError
		if errors.As(err, &known) {
			response.Clear().Error(known)
		} else {
			response.Clear().Error(status.ErrInternalServerError)
			d.logger.Error("request failed", zap.String("path", request.Path()), zap.Error(err))
		}
	}

	elapsed := time.Since(start)
	label := metricMethod(request.Method())
	d.metrics.observe(label, outcome, elapsed.Seconds())

	fields := response.Reveal()
	d.logger.Info("request",
		zap.String("method", label),
		zap.String("path", request.Path()),
		zap.Uint16("code", uint16(fields.Code)),
		zap.String("outcome", outcome),
		zap.Duration("elapsed", elapsed),
	)

	return response
}

// metricMethod keeps the label cardinality bounded, as clients may send any method.
func metricMethod(m method.Method) string {
	if slices.Contains(method.List, m) {
		return m.String()
	}

	return "other"
}
