// Package modkit is the wiring every api module is built from
package modkit

import (
	"observafloresta/internal/modkit/module"
	"observafloresta/internal/modkit/repokit"
	"observafloresta/internal/platform/config"
	"observafloresta/internal/platform/store"
)

type Module = module.Module

// Deps are what the api hands every module
// PG and CH are nil unless that backend is configured
type Deps struct {
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse
}
