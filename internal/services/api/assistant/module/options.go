package module

import (
	"observafloresta/internal/modkit"
	"observafloresta/internal/platform/config"
	"observafloresta/internal/platform/net/middleware"
	defdomain "observafloresta/internal/services/api/deforestation/domain"
)

// Options configures the assistant module
// Data is required, it is usually the deforestation module port
type Options struct {
	Data  defdomain.ServicePort
	Rate  float64 // asks per second per client, zero disables the limit
	Burst int
}

// FromConfig reads the limiter settings, the caller sets Data
func FromConfig(cfg config.Conf) Options {
	return Options{
		Rate:  cfg.MayFloat64("ASK_RATE", 5),
		Burst: cfg.MayInt("ASK_BURST", 10),
	}
}

func (o Options) limiter() *middleware.Limiter {
	if o.Rate <= 0 {
		return nil
	}
	return middleware.NewLimiter(middleware.RateOptions{Rate: o.Rate, Burst: o.Burst})
}

// WithPrefix sets the route prefix for the module
func WithPrefix(prefix string) modkit.Option { return modkit.WithPrefix(prefix) }
