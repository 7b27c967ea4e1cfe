package dispatcher

import (
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/indigo-web/waves/config"
)

const (
	defaultBurst   = 10
	defaultIdleTTL = 10 * time.Minute
)

type limiterEntry struct {
	l        *rate.Limiter
	lastSeen time.Time
}

// limiterPool keeps a token bucket per remote address. Buckets of addresses silent for
// longer than the ttl are dropped, at most once per ttl.
type limiterPool struct {
	mu        sync.Mutex
	m         map[string]*limiterEntry
	rps       rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// newLimiterPool returns nil if the limiting is disabled.
func newLimiterPool(cfg config.RateLimit) *limiterPool {
	if cfg.RPS <= 0 {
		return nil
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}

	ttl := cfg.IdleTTL
	if ttl <= 0 {
		ttl = defaultIdleTTL
	}

	return &limiterPool{
		m:         make(map[string]*limiterEntry),
		rps:       rate.Limit(cfg.RPS),
		burst:     burst,
		ttl:       ttl,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (p *limiterPool) get(key string) *rate.Limiter {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	if now.Sub(p.lastSweep) >= p.ttl {
		p.sweep(now)
	}

	if e, ok := p.m[key]; ok {
		e.lastSeen = now
		return e.l
	}

	l := rate.NewLimiter(p.rps, p.burst)
	p.m[key] = &limiterEntry{l: l, lastSeen: now}
	return l
}

// sweep removes the entries unused for longer than the ttl. Must be called with the
// lock held.
func (p *limiterPool) sweep(now time.Time) {
	cutoff := now.Add(-p.ttl)
	for key, e := range p.m {
		if e.lastSeen.Before(cutoff) {
			delete(p.m, key)
		}
	}

	p.lastSweep = now
}

// Len returns the number of tracked addresses.
func (p *limiterPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.m)
}

// Allow reports whether the remote address may proceed. Nil pool allows everything.
func (p *limiterPool) Allow(remoteAddr string) bool {
	if p == nil {
		return true
	}

	return p.get(remoteHost(remoteAddr)).Allow()
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}

	return host
}
