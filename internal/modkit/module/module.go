// Package module holds the module contract and the ports lookup between modules
package module

import (
	phttp "observafloresta/internal/platform/net/http"
)

// Module is one mountable slice of the api
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
