// Package middleware is the http middleware the api mounts
// modules reach chi only through here
package middleware

import (
	"net/http"

	"observafloresta/internal/platform/logger"
	pstrings "observafloresta/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

var (
	// RequestID keeps an inbound X-Request-ID or mints one
	RequestID = chimw.RequestID
	// RealIP trusts X-Forwarded-For and X-Real-IP, mount only behind a proxy
	RealIP       = chimw.RealIP
	NoCache      = chimw.NoCache
	StripSlashes = chimw.StripSlashes
	Timeout      = chimw.Timeout
	// Heartbeat answers GET on a path before routing, for load balancer probes
	Heartbeat = chimw.Heartbeat
)

// Compress encodes responses at level for clients that accept gzip or deflate
func Compress(level int) func(http.Handler) http.Handler { return chimw.Compress(level) }

// Annotate puts a request logger on the context, mount after RequestID
func Annotate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithRequest(r.Context(), chimw.GetReqID(r.Context()), ClientIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CORSOptions fill in read only api defaults for empty fields
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	ExposedHeaders []string
	MaxAge         int
}

func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: o.AllowedOrigins,
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-ID"}),
		ExposedHeaders: pstrings.IfEmpty(o.ExposedHeaders, []string{"X-Request-ID", "Retry-After"}),
		MaxAge:         o.MaxAge,
	})
}
