package pg

import (
	"context"
	"errors"
	"testing"

	"observafloresta/internal/platform/testkit"

	"github.com/jackc/pgx/v5/pgxpool"
)

func TestOpen_BadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "://bad"}, nil); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestOpen_PoolConfig(t *testing.T) {
	testkit.Serial(t)

	var seen *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, c *pgxpool.Config) (*pgxpool.Pool, error) {
		seen = c
		return &pgxpool.Pool{}, nil
	})

	p, err := Open(context.Background(), Config{
		URL:      "postgres://floresta:floresta@db:5432/floresta?sslmode=disable",
		MaxConns: 4,
		SlowMs:   250,
		AppName:  "floresta-api",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if seen.MaxConns != 4 {
		t.Fatalf("MaxConns = %d", seen.MaxConns)
	}
	if got := seen.ConnConfig.RuntimeParams["application_name"]; got != "floresta-api" {
		t.Fatalf("application_name = %q", got)
	}
	if p.SlowMs != 250 {
		t.Fatalf("SlowMs = %d", p.SlowMs)
	}
}

func TestOpen_PoolError(t *testing.T) {
	testkit.Serial(t)
	testkit.Swap(t, &newPool, func(context.Context, *pgxpool.Config) (*pgxpool.Pool, error) {
		return nil, errors.New("boom")
	})
	if _, err := Open(context.Background(), Config{URL: "postgres://h/db"}, nil); err == nil {
		t.Fatal("expected pool error")
	}
}

func TestClose_NilSafe(t *testing.T) {
	var p *PG
	p.Close()
	(&PG{}).Close()
}
