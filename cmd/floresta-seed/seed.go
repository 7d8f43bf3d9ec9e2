package main

import (
	"context"
	"fmt"
	"os"

	"observafloresta/internal/core/lexicon"
	"observafloresta/internal/platform/config"
	"observafloresta/internal/platform/store"
	defmod "observafloresta/internal/services/api/deforestation/module"
	"observafloresta/internal/services/api/deforestation/repo"
)

// storeConfig enables only the backend being seeded
func storeConfig(root config.Conf, backend string) (store.Config, error) {
	switch backend {
	case defmod.BackendPG:
		pg := root.Prefix("FLORESTA_PG_")
		return store.Config{PG: store.PGConfig{
			Enabled:     true,
			URL:         pg.MustString("URL"),
			MaxConns:    int32(pg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pg.MayInt("SLOW_MS", 500),
			LogSQL:      pg.MayBool("LOG_SQL", false),
			AppName:     "floresta-seed",
		}}, nil
	case defmod.BackendCH:
		ch := root.Prefix("FLORESTA_CH_")
		return store.Config{CH: store.CHConfig{
			Enabled:    true,
			URL:        ch.MustString("URL"),
			ClientName: "observafloresta",
			ClientTag:  "seed",
		}}, nil
	default:
		return store.Config{}, fmt.Errorf("unknown backend %q, want pg or ch", backend)
	}
}

// loadRows reads the embedded dataset, or path when set
func loadRows(path string) ([]repo.Row, string, error) {
	var (
		m   *repo.Memory
		err error
	)
	if path == "" {
		m, err = repo.NewMemory()
	} else {
		var b []byte
		if b, err = os.ReadFile(path); err != nil {
			return nil, "", err
		}
		m, err = repo.LoadDataset(b, lexicon.Default())
	}
	if err != nil {
		return nil, "", err
	}
	return m.Rows(), m.Source(), nil
}

func seed(ctx context.Context, backend string, st *store.Store, rows []repo.Row, truncate bool) (int, error) {
	switch backend {
	case defmod.BackendPG:
		if st.PG == nil {
			return 0, fmt.Errorf("postgres is not enabled")
		}
		return repo.SeedPG(ctx, st.PG, rows, truncate)
	case defmod.BackendCH:
		if st.CH == nil {
			return 0, fmt.Errorf("clickhouse is not enabled")
		}
		return repo.SeedCH(ctx, st.CH, rows, truncate)
	default:
		return 0, fmt.Errorf("unknown backend %q", backend)
	}
}
