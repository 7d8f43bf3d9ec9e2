// @title         Observa Floresta API
// @version       0.1.0
// @description   Deforestation figures by state and biome, plus a question answering assistant

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"observafloresta/internal/modkit/repokit"
	"observafloresta/internal/platform/config"
	"observafloresta/internal/platform/logger"
	phttp "observafloresta/internal/platform/net/http"
	"observafloresta/internal/platform/store"

	"observafloresta/internal/services/api"
	defmod "observafloresta/internal/services/api/deforestation/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP and modules (FLORESTA_API_*)
	root := config.New()
	apiCfg := root.Prefix("FLORESTA_API_")

	l := logger.Get()

	// only the backend in use gets a connection
	backend := defmod.FromConfig(apiCfg).Backend
	cfg := store.Config{}
	switch backend {
	case defmod.BackendPG:
		pgCfg := root.Prefix("FLORESTA_PG_")
		cfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("URL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			AppName:     "floresta-api",
		}
	case defmod.BackendCH:
		chCfg := root.Prefix("FLORESTA_CH_")
		cfg.CH = store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("URL"),
			ClientName: "observafloresta",
			ClientTag:  "api",
		}
	}

	st, err := store.Open(ctx, cfg, store.WithLogger(*logger.Get()))
	if err != nil {
		l.Panic().Err(err).Str("backend", backend).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if backend != defmod.BackendMemory {
		repokit.MustGuard(ctx, st)
	}

	// http server (reads FLORESTA_API_PORT)
	srv := phttp.NewServer(apiCfg)

	api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Store:          st,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			CORSOrigins:    apiCfg.MayCSV("CORS_ORIGINS", nil),
		},
	)

	l.Info().Str("backend", backend).Msg("observa floresta api starting")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
