// Package module wires the assistant into the API using modkit
package module

import (
	"observafloresta/internal/core/query"
	"observafloresta/internal/modkit"
	"observafloresta/internal/modkit/httpkit"
	"observafloresta/internal/platform/logger"
	"observafloresta/internal/platform/net/middleware"
	"observafloresta/internal/services/api/assistant/domain"
	ahttp "observafloresta/internal/services/api/assistant/http"
	asvc "observafloresta/internal/services/api/assistant/service"
)

// Ports exposes the assistant for cross-module lookups
type Ports struct {
	Assistant domain.ServicePort
}

// Module implements the assistant module
type Module struct {
	b       modkit.Built
	svc     asvc.Service
	limiter *middleware.Limiter
}

// New constructs the assistant module
// it panics without a data port
func New(_ modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("assistant"), modkit.WithPrefix("/assistant")}, opts...)...)

	m := &Module{b: b, svc: asvc.New(o.Data, query.Default()), limiter: o.limiter()}

	logger.Named(b.Name).Info().
		Float64("ask_rate", o.Rate).
		Int("ask_burst", o.Burst).
		Msg("assistant module ready")
	return m
}

func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { ahttp.Register(rr, m.svc, m.limiter) })
}

func (m *Module) Name() string { return m.b.Name }

// Prefix is where the module mounts below /api/v1
func (m *Module) Prefix() string { return m.b.Prefix }

func (m *Module) Ports() any { return Ports{Assistant: m.svc} }
