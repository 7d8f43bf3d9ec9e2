// Package module wires deforestation data into the API using modkit
package module

import (
	"observafloresta/internal/core/lexicon"
	"observafloresta/internal/modkit"
	"observafloresta/internal/modkit/httpkit"
	"observafloresta/internal/platform/logger"
	"observafloresta/internal/services/api/deforestation/domain"
	defhttp "observafloresta/internal/services/api/deforestation/http"
	defsvc "observafloresta/internal/services/api/deforestation/service"
)

// Ports exposes the service port for cross-module lookups
type Ports struct {
	Service domain.ServicePort
}

// Module implements the deforestation module
type Module struct {
	b     modkit.Built
	ports Ports
	svc   defsvc.Service
}

// New constructs the deforestation module
// a backend that cannot be opened is fatal, the api has nothing to serve without it
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("deforestation"), modkit.WithPrefix("/deforestation")}, opts...)...)
	log := logger.Named(b.Name)

	r, err := OpenRepo(o.Backend, deps)
	if err != nil {
		log.Fatal().Err(err).Str("backend", o.Backend).Msg("open repo")
	}

	var svc defsvc.Service = defsvc.New(r, lexicon.Default())
	if o.CacheEnabled {
		svc = defsvc.NewCached(svc, o.CacheSize, o.CacheTTL)
	}
	log.Info().
		Str("backend", o.Backend).
		Bool("cache", o.CacheEnabled).
		Dur("cache_ttl", o.CacheTTL).
		Msg("deforestation module ready")

	return &Module{b: b, svc: svc, ports: Ports{Service: adaptPort{svc: svc}}}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { defhttp.Register(rr, m.svc) })
}

func (m *Module) Name() string { return m.b.Name }

// Prefix is where the module mounts below /api/v1
func (m *Module) Prefix() string { return m.b.Prefix }
