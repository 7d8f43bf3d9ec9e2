package httpkit

import "observafloresta/internal/platform/net/middleware"

// Throttled groups routes behind a per client rate limit
// a nil limiter mounts the routes unthrottled
func Throttled(r Router, l *middleware.Limiter, fn func(Router)) {
	r.Group(func(gr Router) {
		if l != nil {
			gr.Use(RateLimit(l))
		}
		fn(gr)
	})
}
