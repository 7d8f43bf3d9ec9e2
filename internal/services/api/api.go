// Package api composes the modules into the versioned http api
package api

import (
	"observafloresta/internal/modkit"
	"observafloresta/internal/modkit/httpkit"
	"observafloresta/internal/modkit/module"
	"observafloresta/internal/modkit/swaggerkit"
	"observafloresta/internal/platform/config"
	phttp "observafloresta/internal/platform/net/http"
	"observafloresta/internal/platform/store"

	assistantmod "observafloresta/internal/services/api/assistant/module"
	defmod "observafloresta/internal/services/api/deforestation/module"
	metamod "observafloresta/internal/services/api/meta/module"
)

// Options configure Mount
type Options struct {
	Config         config.Conf
	Store          *store.Store // nil serves the embedded dataset only
	EnableSwagger  bool
	EnableProfiler bool
	CORSOrigins    []string // empty allows any origin
}

// Mount puts docs and pprof at the root and every module under /api/v1
func Mount(r phttp.Router, opt Options) {
	st := opt.Store
	if st == nil {
		st = &store.Store{}
	}
	deps := modkit.Deps{Cfg: opt.Config, PG: st.PG, CH: st.CH}

	// deforestation owns the data port the other modules read
	defOpts := defmod.FromConfig(deps.Cfg)
	deforestation := defmod.New(deps, defOpts)
	data := module.MustPortsOf[defmod.Ports](deforestation).Service

	askOpts := assistantmod.FromConfig(deps.Cfg)
	askOpts.Data = data

	metaOpts := metamod.Options{Backend: defOpts.Backend, Data: data}
	// typed nils would read as configured stores
	if st.PG != nil {
		metaOpts.PG = st.PG
	}
	if st.CH != nil {
		metaOpts.CH = st.CH
	}

	mods := []module.Module{
		metamod.New(deps, metaOpts),
		deforestation,
		assistantmod.New(deps, askOpts),
	}
	for _, m := range mods {
		module.Register(m.Name(), m.Ports())
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	if opt.EnableProfiler {
		phttp.MountProfiler(r, "/debug")
	}
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.CORSOrigins...), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})
}
