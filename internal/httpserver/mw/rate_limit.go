package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/MrSnakeDoc/marks/internal/errs"
	"github.com/MrSnakeDoc/marks/internal/utils"
)

// RateLimitConfig configures a per-client token bucket. Each RateLimit
// middleware owns its buckets, so login and register are limited
// independently.
type RateLimitConfig struct {
	Burst             int
	RefillPerIPPerMin int
	MaxEntries        int
	SweepInterval     time.Duration
	IdleTTL           time.Duration
	TrustProxy        bool // resolve IP from proxy headers when true
	Now               func() time.Time
}

func (c RateLimitConfig) withDefaults() RateLimitConfig {
	if c.Burst < 1 {
		c.Burst = 1
	}
	if c.RefillPerIPPerMin < 1 {
		c.RefillPerIPPerMin = 1
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = time.Minute
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 15 * time.Minute
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type clientBucket struct {
	tokens  float64
	updated time.Time
}

// refill tops the bucket up for the time elapsed since the last update.
func (b *clientBucket) refill(now time.Time, perSec, capacity float64) {
	if dt := now.Sub(b.updated).Seconds(); dt > 0 {
		b.tokens = math.Min(capacity, b.tokens+dt*perSec)
		b.updated = now
	}
}

type decision struct {
	allowed    bool
	remaining  int
	retryAfter int // seconds, only set when !allowed
}

type buckets struct {
	cfg      RateLimitConfig
	perSec   float64
	capacity float64

	mu        sync.Mutex
	clients   map[string]*clientBucket
	lastSweep time.Time
}

func newBuckets(cfg RateLimitConfig) *buckets {
	cfg = cfg.withDefaults()
	return &buckets{
		cfg:       cfg,
		perSec:    float64(cfg.RefillPerIPPerMin) / 60,
		capacity:  float64(cfg.Burst),
		clients:   make(map[string]*clientBucket),
		lastSweep: cfg.Now(),
	}
}

// take spends one token from the client's bucket if it has one.
func (bs *buckets) take(client string, now time.Time) decision {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	full := bs.cfg.MaxEntries > 0 && len(bs.clients) >= bs.cfg.MaxEntries
	if full || now.Sub(bs.lastSweep) >= bs.cfg.SweepInterval {
		bs.evictIdle(now)
	}

	b, ok := bs.clients[client]
	if !ok {
		b = &clientBucket{tokens: bs.capacity, updated: now}
		bs.clients[client] = b
	}
	b.refill(now, bs.perSec, bs.capacity)

	if b.tokens < 1 {
		wait := int(math.Ceil((1 - b.tokens) / bs.perSec))
		return decision{retryAfter: max(wait, 1)}
	}
	b.tokens--
	return decision{allowed: true, remaining: int(b.tokens)}
}

// evictIdle drops buckets untouched for longer than IdleTTL.
func (bs *buckets) evictIdle(now time.Time) {
	for k, b := range bs.clients {
		if now.Sub(b.updated) > bs.cfg.IdleTTL {
			delete(bs.clients, k)
		}
	}
	bs.lastSweep = now
}

// RateLimit rejects clients that exhausted their bucket with 429.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	bs := newBuckets(cfg)
	limit := strconv.Itoa(bs.cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := bs.take(utils.ClientIP(r, bs.cfg.TrustProxy), bs.cfg.Now())

			h := w.Header()
			h.Set("X-RateLimit-Limit", limit)
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.remaining))
			if !d.allowed {
				h.Set("Retry-After", strconv.Itoa(d.retryAfter))
				writeJSONError(w, http.StatusTooManyRequests, errs.ErrRateLimited.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
