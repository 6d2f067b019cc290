package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ipLimiter hands out one token-bucket limiter per client IP and forgets
// buckets that have been idle for an hour.
type ipLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucketEntry
	rps      rate.Limit
	burst    int
	lastSeen time.Duration
}

type bucketEntry struct {
	limiter *rate.Limiter
	seen    time.Time
}

func newIPLimiter(rps rate.Limit, burst int) *ipLimiter {
	l := &ipLimiter{
		buckets:  make(map[string]*bucketEntry),
		rps:      rps,
		burst:    burst,
		lastSeen: time.Hour,
	}
	go l.sweep()
	return l
}

func (l *ipLimiter) get(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.buckets[ip]
	if !ok {
		entry = &bucketEntry{limiter: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = entry
	}
	entry.seen = time.Now()
	return entry.limiter
}

func (l *ipLimiter) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.evictIdle()
	}
}

func (l *ipLimiter) evictIdle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, entry := range l.buckets {
		if time.Since(entry.seen) > l.lastSeen {
			delete(l.buckets, ip)
		}
	}
}

// SubmissionRateLimit throttles the public submission endpoint per client
// IP. Staff/admin routes are not rate limited; they sit behind permission
// checks instead.
func SubmissionRateLimit(next http.Handler) http.Handler {
	limiter := newIPLimiter(rate.Every(2*time.Second), 5)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if !limiter.get(ip).Allow() {
			w.Header().Set("Retry-After", "2")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
