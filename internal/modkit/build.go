package modkit

import (
	"net/http"

	"observafloresta/internal/modkit/httpkit"
	str "observafloresta/internal/platform/strings"
)

// Option adjusts a module's name, route prefix or middleware
type Option func(*Built)

func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix mounts the module under prefix below /api/v1
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares runs mw, in order, on every route of the module
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// Built is the settled result of a module's options
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
}

// Build applies opts in order so later options win
// it panics on an empty name or prefix
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Name = str.MustString(b.Name, "module name")
	b.Prefix = str.MustPrefix(b.Prefix)
	return b
}

// Mount scopes register under the module prefix behind its middleware
func (b Built) Mount(r httpkit.Router, register func(httpkit.Router)) {
	r.Route(b.Prefix, func(sub httpkit.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		register(sub)
	})
}
