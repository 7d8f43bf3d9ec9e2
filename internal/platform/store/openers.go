package store

import (
	"context"
	"fmt"
	"time"

	"observafloresta/internal/platform/logger"
	chx "observafloresta/internal/platform/store/ch"
	"observafloresta/internal/platform/store/pg"
)

const (
	defaultAttempts    = 20
	defaultPingTimeout = 3 * time.Second
	backoffStart       = 150 * time.Millisecond
	backoffMax         = 2 * time.Second
)

var sleep = time.Sleep

// waitReady pings until it succeeds, attempts run out or ctx ends
// the wait doubles from backoffStart up to backoffMax
func waitReady(ctx context.Context, name string, ping func(context.Context) error, attempts int, timeout time.Duration) error {
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	wait := backoffStart
	var err error
	for i := 0; i < attempts; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		sleep(wait)
		wait = min(wait*2, backoffMax)
	}
	return fmt.Errorf("%s not ready after %d attempts: %w", name, attempts, err)
}

func openPG(ctx context.Context, cfg PGConfig, log logger.Logger) (TxRunner, error) {
	var tracer pg.QueryTracer
	if cfg.LogSQL {
		tracer = pg.Tracer(log)
	}
	p, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		SlowMs:   cfg.SlowQueryMs,
		AppName:  cfg.AppName,
	}, tracer)
	if err != nil {
		return nil, err
	}
	// ping the bare pool so retries stay out of the sql trace
	if err := waitReady(ctx, "postgres", p.Pool.Ping, cfg.ConnectRetries, cfg.PingTimeout); err != nil {
		p.Close()
		return nil, err
	}
	return newPGAdapter(p), nil
}

// openCH leaves the connection lazy, Guard or the first query dials
func openCH(ctx context.Context, cfg CHConfig) (Clickhouse, error) {
	c, err := chx.Open(ctx, chx.Config{
		URL:        cfg.URL,
		ClientName: cfg.ClientName,
		ClientTag:  cfg.ClientTag,
	})
	if err != nil {
		return nil, err
	}
	return newCHAdapter(c), nil
}
