// Command floresta-seed loads the deforestation dataset into postgres or clickhouse
//
//	FLORESTA_PG_URL=postgres://... floresta-seed -backend pg -truncate
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"observafloresta/internal/modkit/repokit"
	"observafloresta/internal/platform/config"
	"observafloresta/internal/platform/logger"
	"observafloresta/internal/platform/store"
)

func main() {
	root := config.New()
	l := logger.Get()

	var (
		fBackend  = flag.String("backend", "pg", "target store: pg | ch")
		fTruncate = flag.Bool("truncate", false, "empty the table before loading")
		fFile     = flag.String("file", "", "dataset yaml to load instead of the embedded one")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := storeConfig(root, *fBackend)
	if err != nil {
		l.Fatal().Err(err).Msg("bad -backend")
	}
	rows, source, err := loadRows(*fFile)
	if err != nil {
		l.Fatal().Err(err).Str("file", *fFile).Msg("load dataset")
	}

	st, err := store.Open(ctx, cfg, store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	repokit.MustGuard(ctx, st)

	n, err := seed(ctx, *fBackend, st, rows, *fTruncate)
	if err != nil {
		l.Fatal().Err(err).Str("backend", *fBackend).Msg("seed failed")
	}
	l.Info().
		Str("backend", *fBackend).
		Str("source", source).
		Int("rows", n).
		Bool("truncate", *fTruncate).
		Msg("dataset seeded")
}
