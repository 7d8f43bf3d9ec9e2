package repo

import (
	"context"
	"time"

	"observafloresta/internal/core/lexicon"
	"observafloresta/internal/platform/store"
)

// CHSchema creates the clickhouse relation
// reseeding a (state_code, year) pair keeps the newest version after merges
const CHSchema = `
CREATE TABLE IF NOT EXISTS deforestation_areas
(
  state_code LowCardinality(String),
  year       Int32,
  area_km2   Float64,
  loaded_at  DateTime DEFAULT now()
)
ENGINE = ReplacingMergeTree(loaded_at)
ORDER BY (year, state_code)
`

// CH reads areas from clickhouse
type CH struct {
	ch store.Clickhouse
}

var _ Repo = (*CH)(nil)

// NewCH returns a Repo over the clickhouse seam
func NewCH(ch store.Clickhouse) *CH {
	if ch == nil {
		panic("deforestation repo: nil clickhouse")
	}
	return &CH{ch: ch}
}

// Years implements Repo
func (r *CH) Years(ctx context.Context) ([]int, error) {
	rows, err := r.ch.Query(ctx, `SELECT DISTINCT year FROM deforestation_areas FINAL ORDER BY year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var y int32
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		out = append(out, int(y))
	}
	return out, rows.Err()
}

// ByYear implements Repo
func (r *CH) ByYear(ctx context.Context, year int) ([]Row, error) {
	return r.Series(ctx, year, year)
}

// Series implements Repo
func (r *CH) Series(ctx context.Context, from, to int) ([]Row, error) {
	const sql = `
SELECT state_code, year, area_km2
FROM deforestation_areas FINAL
WHERE year BETWEEN ? AND ?
ORDER BY year, state_code
`
	rows, err := r.ch.Query(ctx, sql, int32(from), int32(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var (
			code string
			year int32
			area float64
		)
		if err := rows.Scan(&code, &year, &area); err != nil {
			return nil, err
		}
		out = append(out, Row{State: lexicon.StateCode(code), Year: int(year), AreaKm2: area})
	}
	return out, rows.Err()
}

// SeedCH creates the schema and inserts rows in one batch
// truncate empties the relation first
func SeedCH(ctx context.Context, ch store.Clickhouse, rows []Row, truncate bool) (int, error) {
	if err := ch.Exec(ctx, CHSchema); err != nil {
		return 0, err
	}
	if truncate {
		if err := ch.Exec(ctx, `TRUNCATE TABLE IF EXISTS deforestation_areas`); err != nil {
			return 0, err
		}
	}
	now := time.Now().UTC()
	batch := make([][]any, 0, len(rows))
	for _, r := range rows {
		batch = append(batch, []any{string(r.State), int32(r.Year), r.AreaKm2, now})
	}
	if err := ch.Insert(ctx, Table, batch); err != nil {
		return 0, err
	}
	return len(batch), nil
}
