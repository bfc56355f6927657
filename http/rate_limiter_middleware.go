package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
)

// RateLimitMiddleware rejects clients that exhausted their bucket with 429.
func RateLimitMiddleware(limiter *RateLimiter, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientIP(r)

			allowed, retryAfter := limiter.Allow(client)
			if !allowed {
				log.Warn().Str("client", client).Str("path", r.URL.Path).Msg("rate limit exceeded")
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
