package service

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	kit "observafloresta/internal/platform/testkit"
	defdomain "observafloresta/internal/services/api/deforestation/domain"
)

func TestNumbers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) string
		in   float64
		want string
	}{
		{"num grouping", Num, 3245.8, "3.245,8"},
		{"num integer", Num, 8399, "8.399"},
		{"num small", Num, 7.3, "7,3"},
		{"fixed1 rounds", Fixed1, 31.22, "31,2"},
		{"fixed1 pads", Fixed1, 16, "16,0"},
		{"fixed1 negative zero", Fixed1, -0.01, "0,0"},
		{"signed1 positive", Signed1, 726.4, "+726,4"},
		{"signed1 negative", Signed1, -15.96, "-16,0"},
		{"signed1 zero", Signed1, 0, "0,0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.fn(tc.in); got != tc.want {
				t.Fatalf("%s(%v) = %q, want %q", tc.name, tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatter_EveryVariantRenders(t *testing.T) {
	f := NewFormatter()
	area := 10.0
	data := map[Variant]any{
		VariantState: defdomain.StateData{State: "Acre", Year: 2021, ComparisonPreviousYear: defdomain.PreviousYear{Year: 2020, AreaKm2: &area}},
		VariantCompareIncreasing: defdomain.Comparison{State: "Acre"},
		VariantCompareDecreasing: defdomain.Comparison{State: "Acre"},
		VariantCompareStable:     defdomain.Comparison{State: "Acre"},
		VariantRankingDesc:       defdomain.Ranking{Year: 2024},
		VariantRankingAsc:        defdomain.Ranking{Year: 2024},
		VariantRankingBiome:      defdomain.Ranking{Year: 2024, BiomeFilter: "Pampa"},
		VariantBiomes:            defdomain.BiomeComparison{Year: 2024},
		VariantHelp:              struct{ Examples []string }{[]string{"x"}},
	}
	for v, d := range data {
		t.Run(string(v), func(t *testing.T) {
			out, err := f.Render(v, d)
			if err != nil {
				t.Fatalf("Render(%s) error = %v", v, err)
			}
			if out == "" || strings.HasSuffix(out, "\n") {
				t.Fatalf("Render(%s) = %q, want trimmed text", v, out)
			}
		})
	}
}

func TestFormatter_StateWithoutPreviousYear(t *testing.T) {
	out, err := NewFormatter().Render(VariantState, defdomain.StateData{
		State: "Pará", Year: 2020, AreaKm2: 5075.6, Biome: "Amazônia",
		ComparisonPreviousYear: defdomain.PreviousYear{Year: 2019},
	})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasSuffix(out, "**Comparação com 2019:**\nSem dados para 2019") {
		t.Fatalf("Render() = %q", out)
	}
}

func TestFormatter_UnknownVariant(t *testing.T) {
	if _, err := NewFormatter().Render("nope", nil); err == nil {
		t.Fatal("Render(nope) error = nil, want error")
	}
}

func TestVariantSelectors(t *testing.T) {
	if v := CompareVariant(defdomain.TrendDecreasing); v != VariantCompareDecreasing {
		t.Fatalf("CompareVariant(decreasing) = %q", v)
	}
	if v := CompareVariant(""); v != VariantCompareStable {
		t.Fatalf("CompareVariant(empty) = %q", v)
	}
	if v := RankingVariant(defdomain.Ranking{Order: "asc", BiomeFilter: "Pampa"}); v != VariantRankingBiome {
		t.Fatalf("RankingVariant(biome) = %q", v)
	}
	if v := RankingVariant(defdomain.Ranking{Order: "asc"}); v != VariantRankingAsc {
		t.Fatalf("RankingVariant(asc) = %q", v)
	}
}

func TestTableOf_AlignsByDisplayWidth(t *testing.T) {
	tbl, ok := TableOf(defdomain.Ranking{Ranking: []defdomain.RankingRow{
		{Position: 1, State: "Pará", StateCode: "PA", AreaKm2: 3245.8, PercentageOfTotal: 31.22},
		{Position: 2, State: "Amazonas", StateCode: "AM", AreaKm2: 1423.8, PercentageOfTotal: 13.7},
	}})
	if !ok {
		t.Fatal("TableOf(Ranking) ok = false")
	}
	out := tbl.String()
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("lines = %d, want header, rule and 2 rows:\n%s", len(lines), out)
	}
	w := runewidth.StringWidth(lines[0])
	for i, l := range lines {
		if got := runewidth.StringWidth(l); got != w {
			t.Fatalf("line %d width = %d, want %d:\n%s", i, got, w, out)
		}
	}
	kit.MustContain(t, out, "Pará      PA")
	kit.MustContain(t, out, "3.245,8")
}

func TestTableOf_UnsupportedShape(t *testing.T) {
	if _, ok := TableOf(defdomain.StateData{}); ok {
		t.Fatal("TableOf(StateData) ok = true, want false")
	}
}
