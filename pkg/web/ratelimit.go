package web

import (
	"sync"
	"time"
)

type window struct {
	used    int
	resetAt time.Time
}

// rateLimiter is a fixed-window counter keyed by client IP.
type rateLimiter struct {
	mu      sync.Mutex
	limit   RateLimit
	clients map[string]*window
}

func newRateLimiter(limit RateLimit) *rateLimiter {
	return &rateLimiter{
		limit:   limit,
		clients: make(map[string]*window),
	}
}

// allow spends one request from ip's window and reports whether it fit.
func (l *rateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.clients[ip]
	if !ok || !now.Before(w.resetAt) {
		l.sweep(now)
		w = &window{resetAt: now.Add(l.limit.Window)}
		l.clients[ip] = w
	}
	w.used++
	return w.used <= l.limit.Limit
}

// sweep forgets clients whose window has closed. Caller holds mu.
func (l *rateLimiter) sweep(now time.Time) {
	for ip, w := range l.clients {
		if !now.Before(w.resetAt) {
			delete(l.clients, ip)
		}
	}
}
