package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"time"

	"goshop/internal/pkg/cache"
)

// Prefixo das chaves de contagem no Redis.
const rateLimitKeyPrefix = "rate-limit:"

// RateLimiter limita o número de requisições por IP dentro de uma janela,
// usando um contador no Redis com expiração. Ao estourar o limite, responde
// 429 sem encaminhar a requisição.
func RateLimiter(client cache.Client, limit int, period time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				// RemoteAddr sem porta (e.g., atrás de certos proxies)
				ip = r.RemoteAddr
			}
			key := rateLimitKeyPrefix + ip
			ctx := context.Background()

			count, err := client.GetInt(ctx, key)
			switch {
			case err == cache.ErrCacheMiss:
				// Primeira requisição da janela: inicia o contador com TTL
				client.Set(ctx, key, 1, period)
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-1))
				next.ServeHTTP(w, r)
				return
			case err != nil:
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if count >= limit {
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			client.Incr(ctx, key)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(limit-count-1))
			next.ServeHTTP(w, r)
		})
	}
}
