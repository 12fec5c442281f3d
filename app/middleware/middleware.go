package appMiddleware

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type CORSOptions struct {
	AllowedOrigins []string
	MaxAge         int
}

// CORS allows browser clients on the configured origins to post trip forms.
func CORS(opts CORSOptions) func(http.Handler) http.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	maxAge := opts.MaxAge
	if maxAge <= 0 {
		maxAge = 300
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         maxAge,
	})
}

// RateLimit caps requests per client IP. A non-positive limit disables it.
func RateLimit(requests int, window time.Duration, onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	opts := []httprate.Option{httprate.WithKeyFuncs(httprate.KeyByIP)}
	if onLimit != nil {
		opts = append(opts, httprate.WithLimitHandler(onLimit))
	}
	return httprate.Limit(requests, window, opts...)
}
