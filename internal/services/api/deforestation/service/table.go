package service

import (
	"observafloresta/internal/core/lexicon"
	"observafloresta/internal/services/api/deforestation/repo"
)

// table indexes repo rows by year then state
type table map[int][]repo.Row

func newTable(rows []repo.Row) table {
	t := make(table)
	for _, r := range rows {
		t[r.Year] = append(t[r.Year], r)
	}
	return t
}

func (t table) has(year int) bool { return len(t[year]) > 0 }

func (t table) rows(year int) []repo.Row { return t[year] }

func (t table) area(year int, code lexicon.StateCode) (float64, bool) {
	for _, r := range t[year] {
		if r.State == code {
			return r.AreaKm2, true
		}
	}
	return 0, false
}

// total is the Brazil total of a year
func (t table) total(year int) float64 {
	var sum float64
	for _, r := range t[year] {
		sum += r.AreaKm2
	}
	return sum
}

func (t table) sum(year int, codes []lexicon.StateCode) float64 {
	var sum float64
	for _, c := range codes {
		if v, ok := t.area(year, c); ok {
			sum += v
		}
	}
	return sum
}
