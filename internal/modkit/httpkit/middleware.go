package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "observafloresta/internal/platform/net/http"
	"observafloresta/internal/platform/net/middleware"
)

// PingPath answers 200 before routing for load balancer probes
const PingPath = "/api/v1/ping"

// CommonStack is the middleware in front of every /api/v1 route, outermost first
// empty origins allow any origin
func CommonStack(origins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID,
		middleware.RealIP,
		middleware.Annotate,
		middleware.RecoverJSON,
		middleware.AccessLog(middleware.AccessLogOptions{Slow: 500 * time.Millisecond}),
		middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins}),
		middleware.Heartbeat(PingPath),
		middleware.NoCache,
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes,
		middleware.Timeout(30 * time.Second),
	}
}

// RateLimit answers over budget clients with the 429 envelope
func RateLimit(l *middleware.Limiter) func(http.Handler) http.Handler {
	return middleware.RateLimit(l, phttp.JSON)
}
