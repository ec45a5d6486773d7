package restapi

import (
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"golang.org/x/time/rate"

	"netbuild.opentransit.org/internal/logging"
)

// applyGzipMiddleware wraps a handler with gzip compression
func applyGzipMiddleware(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// clientRateLimiter provides per-client-address rate limiting.
type clientRateLimiter struct {
	limiters  map[string]*rate.Limiter
	mu        sync.Mutex
	rateLimit rate.Limit
	burst     int
}

// applyRateLimitMiddleware limits each client address to ratePerSecond
// requests per second, with a burst of the same size.
func applyRateLimitMiddleware(next http.Handler, ratePerSecond int) http.Handler {
	rl := &clientRateLimiter{
		limiters:  make(map[string]*rate.Limiter),
		rateLimit: rate.Every(time.Second / time.Duration(ratePerSecond)),
		burst:     ratePerSecond,
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.limiter(clientAddr(r)).Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *clientRateLimiter) limiter(addr string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, ok := rl.limiters[addr]
	if !ok {
		limiter = rate.NewLimiter(rl.rateLimit, rl.burst)
		rl.limiters[addr] = limiter
	}
	return limiter
}

func clientAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// applyRequestLogging logs method, path, status and duration of each request.
func applyRequestLogging(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		logging.LogHTTPRequest(logger, r.Method, r.URL.Path, rec.status,
			float64(time.Since(start).Microseconds())/1000.0)
	})
}
