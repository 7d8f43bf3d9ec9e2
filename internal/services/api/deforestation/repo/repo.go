// Package repo provides storage access for yearly deforestation areas
// three backends share one surface: the embedded dataset, postgres and clickhouse
package repo

import (
	"context"

	"observafloresta/internal/core/lexicon"
)

// Table is the relation every backend reads from
const Table = "deforestation_areas"

// Repo is the minimal persistence surface for deforestation
type Repo interface {
	// Years lists the years with data in ascending order
	Years(ctx context.Context) ([]int, error)
	// ByYear lists every state area of year ordered by state code
	ByYear(ctx context.Context, year int) ([]Row, error)
	// Series lists areas between from and to inclusive ordered by year then state code
	Series(ctx context.Context, from, to int) ([]Row, error)
}

// Row is one state area in one year
type Row struct {
	State   lexicon.StateCode
	Year    int
	AreaKm2 float64
}
