package service

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	defdomain "observafloresta/internal/services/api/deforestation/domain"
)

// Table is plain text rows aligned by display width
// accented names and emoji keep their columns straight in a terminal
type Table struct {
	Header []string
	Rows   [][]string
	Right  []bool // right aligned columns, numbers usually
}

// String renders the header, a dashed rule and every row
func (t Table) String() string {
	cols := len(t.Header)
	for _, r := range t.Rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	widths := make([]int, cols)
	measure := func(row []string) {
		for i, c := range row {
			if w := runewidth.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Header)
	for _, r := range t.Rows {
		measure(r)
	}

	var b strings.Builder
	line := func(row []string) {
		for i := 0; i < cols; i++ {
			if i > 0 {
				b.WriteString("  ")
			}
			c := ""
			if i < len(row) {
				c = row[i]
			}
			if i < len(t.Right) && t.Right[i] {
				b.WriteString(runewidth.FillLeft(c, widths[i]))
			} else {
				b.WriteString(runewidth.FillRight(c, widths[i]))
			}
		}
		b.WriteByte('\n')
	}
	line(t.Header)
	rule := make([]string, cols)
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	line(rule)
	for _, r := range t.Rows {
		line(r)
	}
	return strings.TrimRight(b.String(), "\n")
}

// TableOf lays out the data of an answer, ok is false for shapes with no table
func TableOf(data any) (Table, bool) {
	switch d := data.(type) {
	case defdomain.Ranking:
		t := Table{
			Header: []string{"#", "Estado", "UF", "Área (km²)", "% do total"},
			Right:  []bool{true, false, false, true, true},
		}
		for _, r := range d.Ranking {
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(r.Position) + "º", r.State, r.StateCode, Num(r.AreaKm2), Fixed1(r.PercentageOfTotal),
			})
		}
		return t, true
	case defdomain.BiomeComparison:
		t := Table{
			Header: []string{"#", "Bioma", "Área (km²)", "% do total", "Estados"},
			Right:  []bool{true, false, true, true, true},
		}
		for i, b := range d.Biomes {
			t.Rows = append(t.Rows, []string{
				strconv.Itoa(i+1) + "º", b.Biome, Num(b.AreaKm2), Fixed1(b.PercentageOfTotal), strconv.Itoa(b.NumStates),
			})
		}
		return t, true
	case defdomain.Comparison:
		t := Table{
			Header: []string{"Ano", "Área (km²)"},
			Right:  []bool{false, true},
		}
		for _, p := range d.Data {
			t.Rows = append(t.Rows, []string{strconv.Itoa(p.Year), Fixed1(p.AreaKm2)})
		}
		return t, true
	default:
		return Table{}, false
	}
}
