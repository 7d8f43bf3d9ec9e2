// Package module mounts the service meta endpoints
package module

import (
	"time"

	"observafloresta/internal/core/version"
	"observafloresta/internal/modkit"
	"observafloresta/internal/modkit/httpkit"
	defdomain "observafloresta/internal/services/api/deforestation/domain"
	metahttp "observafloresta/internal/services/api/meta/http"
)

// Options are the meta module dependencies beyond modkit.Deps
// PG and CH take the raw store handles so readiness can ping them
type Options struct {
	Backend string
	PG      any
	CH      any
	Data    defdomain.ServicePort
}

type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New builds the meta module, uptime counts from this call
func New(_ modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	return &Module{b: b, deps: metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   time.Now(),
		Backend:     o.Backend,
		PG:          o.PG,
		CH:          o.CH,
		Data:        o.Data,
	}}
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

func (m *Module) Name() string { return m.b.Name }

// Ports is nil, nothing consumes meta
func (m *Module) Ports() any { return nil }
