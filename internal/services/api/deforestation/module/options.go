package module

import (
	"fmt"
	"time"

	"observafloresta/internal/modkit"
	"observafloresta/internal/modkit/repokit"
	"observafloresta/internal/platform/config"
	"observafloresta/internal/services/api/deforestation/repo"
)

// Backends a deployment can read areas from
const (
	BackendMemory = "memory"
	BackendPG     = "pg"
	BackendCH     = "ch"
)

// Options configures the deforestation module
type Options struct {
	Backend      string
	CacheEnabled bool
	CacheTTL     time.Duration
	CacheSize    int
}

// FromConfig reads the module options from the environment
func FromConfig(cfg config.Conf) Options {
	return Options{
		Backend:      cfg.MayEnum("DATA_BACKEND", BackendMemory, BackendMemory, BackendPG, BackendCH),
		CacheEnabled: cfg.MayBool("CACHE_ENABLED", true),
		CacheTTL:     cfg.MayDuration("CACHE_TTL", time.Hour),
		CacheSize:    cfg.MayInt("CACHE_SIZE", 512),
	}
}

// OpenRepo picks the repo for a backend, the sql backends need their store seam in deps
func OpenRepo(backend string, deps modkit.Deps) (repo.Repo, error) {
	switch backend {
	case "", BackendMemory:
		return repo.NewMemory()
	case BackendPG:
		if deps.PG == nil {
			return nil, fmt.Errorf("deforestation: backend %q needs postgres enabled", backend)
		}
		return repokit.MustBind(repo.NewPG(), deps.PG), nil
	case BackendCH:
		if deps.CH == nil {
			return nil, fmt.Errorf("deforestation: backend %q needs clickhouse enabled", backend)
		}
		return repo.NewCH(deps.CH), nil
	default:
		return nil, fmt.Errorf("deforestation: unknown backend %q", backend)
	}
}

// WithPrefix sets the route prefix for the module
func WithPrefix(prefix string) modkit.Option { return modkit.WithPrefix(prefix) }
