package repo

import (
	"context"

	"observafloresta/internal/core/lexicon"
	"observafloresta/internal/modkit/repokit"
	"observafloresta/internal/platform/store"
)

// PGSchema creates the postgres relation, safe to run more than once
const PGSchema = `
create table if not exists deforestation_areas (
  state_code text not null,
  year int not null,
  area_km2 double precision not null check (area_km2 >= 0),
  primary key (state_code, year)
);
create index if not exists deforestation_areas_year_idx on deforestation_areas (year);
`

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface over postgres
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Years(ctx context.Context) ([]int, error) {
	const sql = `
select distinct year
from deforestation_areas
order by year asc
`
	return store.Many(ctx, r.q, scanYear, sql)
}

func (r *queries) ByYear(ctx context.Context, year int) ([]Row, error) {
	return r.Series(ctx, year, year)
}

func (r *queries) Series(ctx context.Context, from, to int) ([]Row, error) {
	const sql = `
select state_code, year, area_km2
from deforestation_areas
where year between $1 and $2
order by year asc, state_code asc
`
	return store.Many(ctx, r.q, scanRow, sql, from, to)
}

func scanYear(row store.Row) (int, error) {
	var y int32
	err := row.Scan(&y)
	return int(y), err
}

func scanRow(row store.Row) (Row, error) {
	var (
		code string
		year int32
		rr   Row
	)
	if err := row.Scan(&code, &year, &rr.AreaKm2); err != nil {
		return Row{}, err
	}
	rr.State, rr.Year = lexicon.StateCode(code), int(year)
	return rr, nil
}

// SeedPG creates the schema and upserts rows in one transaction
// truncate empties the relation first
func SeedPG(ctx context.Context, db repokit.TxRunner, rows []Row, truncate bool) (int, error) {
	n := 0
	err := repokit.WithTx(ctx, db, func(q repokit.Queryer) error {
		if _, err := q.Exec(ctx, PGSchema); err != nil {
			return err
		}
		if truncate {
			if _, err := q.Exec(ctx, `truncate table deforestation_areas`); err != nil {
				return err
			}
		}
		const upsert = `
insert into deforestation_areas (state_code, year, area_km2)
values ($1, $2, $3)
on conflict (state_code, year) do update set area_km2 = excluded.area_km2
`
		for _, r := range rows {
			if _, err := q.Exec(ctx, upsert, string(r.State), r.Year, r.AreaKm2); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
