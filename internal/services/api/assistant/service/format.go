package service

import (
	"fmt"
	"math"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	defdomain "observafloresta/internal/services/api/deforestation/domain"
)

// Variant selects a response template
type Variant string

// Variants, one template each
const (
	VariantState             Variant = "state"
	VariantCompareIncreasing Variant = "compare/increasing"
	VariantCompareDecreasing Variant = "compare/decreasing"
	VariantCompareStable     Variant = "compare/stable"
	VariantRankingDesc       Variant = "ranking/desc"
	VariantRankingAsc        Variant = "ranking/asc"
	VariantRankingBiome      Variant = "ranking/biome"
	VariantBiomes            Variant = "biomes"
	VariantHelp              Variant = "help"
)

// GenericError replaces any data service failure in answers
const GenericError = "❌ Ocorreu um erro ao processar sua consulta. Por favor, tente novamente ou reformule a pergunta."

// shared blocks, referenced by the variants below
const partials = `
{{- define "compare/head" -}}
📊 **Comparação: {{.State}} ({{.YearStart}}-{{.YearEnd}})**
{{- end -}}

{{- define "compare/body" -}}
📉 Mudança total: {{signed1 .TotalChangeKm2}} km²
📊 Variação percentual: {{signed1 .PercentageChange}}%

**Dados por ano:**
{{range .Data}}{{.Year}}: {{fixed1 .AreaKm2}} km²
{{end}}
🏞️ Bioma: {{.Biome}}
{{- end -}}

{{- define "ranking/head" -}}
🏆 **Ranking de Desmatamento ({{.Year}})**

📊 Total Brasil: **{{num .TotalBrazilKm2}} km²**
{{- end -}}

{{- define "ranking/rows" -}}
{{range $i, $r := .Ranking}}{{if $i}}

{{end}}{{$r.Position}}º {{$r.State}} ({{$r.StateCode}})
   └─ {{num $r.AreaKm2}} km² ({{fixed1 $r.PercentageOfTotal}}% do total){{end}}
{{- end -}}
`

var templates = map[Variant]string{
	VariantState: `📊 **Desmatamento em {{.State}} ({{.Year}})**

🌳 Área desmatada: **{{num .AreaKm2}} km²**
📈 Percentual do total: **{{fixed1 .PercentageOfTotal}}%**
🏞️ Bioma: {{.Biome}}

**Comparação com {{.ComparisonPreviousYear.Year}}:**
{{with .ComparisonPreviousYear}}{{if .AreaKm2}}{{arrow .ChangeKm2}} {{signed1 .ChangePercentage}}% ({{signed1 .ChangeKm2}} km²){{else}}Sem dados para {{.Year}}{{end}}{{end}}`,

	VariantCompareIncreasing: `{{template "compare/head" .}}

📈 **Tendência: AUMENTO**

{{template "compare/body" .}}`,

	VariantCompareDecreasing: `{{template "compare/head" .}}

📉 **Tendência: REDUÇÃO**

{{template "compare/body" .}}`,

	VariantCompareStable: `{{template "compare/head" .}}

➡️ **Tendência: ESTÁVEL**

{{template "compare/body" .}}`,

	VariantRankingDesc: `{{template "ranking/head" .}}

**Estados que MAIS desmataram:**

{{template "ranking/rows" .}}`,

	VariantRankingAsc: `{{template "ranking/head" .}}

**Estados que MENOS desmataram:**

{{template "ranking/rows" .}}`,

	VariantRankingBiome: `🏆 **Ranking - {{.BiomeFilter}} ({{.Year}})**

{{range $i, $r := .Ranking}}{{if $i}}

{{end}}{{$r.Position}}º {{$r.State}} ({{$r.StateCode}})
   └─ {{num $r.AreaKm2}} km²{{end}}`,

	VariantBiomes: `🌍 **Comparação de Biomas ({{.Year}})**

📊 Total Brasil: **{{num .TotalBrazilKm2}} km²**

**Ranking por bioma:**

{{range $i, $b := .Biomes}}{{if $i}}

{{end}}{{inc $i}}º {{$b.Biome}}
   └─ {{num $b.AreaKm2}} km² ({{fixed1 $b.PercentageOfTotal}}% do total)
   └─ {{$b.NumStates}} {{plural $b.NumStates "estado" "estados"}} {{plural $b.NumStates "afetado" "afetados"}}{{end}}`,

	VariantHelp: `❓ Desculpe, não entendi sua pergunta. Tente perguntar sobre:

{{range .Examples}}• "{{.}}"
{{end}}`,
}

var funcs = template.FuncMap{
	"num":     Num,
	"fixed1":  Fixed1,
	"signed1": Signed1,
	"arrow":   arrow,
	"inc":     func(i int) int { return i + 1 },
	"plural": func(n int, one, many string) string {
		if n > 1 {
			return many
		}
		return one
	},
}

// Formatter renders data service results with the variant templates
type Formatter struct {
	t *template.Template
}

// NewFormatter parses every variant, a broken template panics
func NewFormatter() *Formatter {
	root := template.Must(template.New("partials").Funcs(funcs).Parse(partials))
	for v, src := range templates {
		template.Must(root.New(string(v)).Parse(src))
	}
	return &Formatter{t: root}
}

// Render executes the template of v over data
func (f *Formatter) Render(v Variant, data any) (string, error) {
	if f.t.Lookup(string(v)) == nil {
		return "", fmt.Errorf("assistant: no template for variant %q", v)
	}
	var b strings.Builder
	if err := f.t.ExecuteTemplate(&b, string(v), data); err != nil {
		return "", fmt.Errorf("assistant: render %s: %w", v, err)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// CompareVariant picks the template of a trend
func CompareVariant(t defdomain.Trend) Variant {
	switch t {
	case defdomain.TrendIncreasing:
		return VariantCompareIncreasing
	case defdomain.TrendDecreasing:
		return VariantCompareDecreasing
	default:
		return VariantCompareStable
	}
}

// RankingVariant picks the template of a ranking
func RankingVariant(r defdomain.Ranking) Variant {
	switch {
	case r.BiomeFilter != "":
		return VariantRankingBiome
	case r.Order == "asc":
		return VariantRankingAsc
	default:
		return VariantRankingDesc
	}
}

func printer() *message.Printer { return message.NewPrinter(language.BrazilianPortuguese) }

// Num formats v with pt-BR grouping and up to three decimals, 3245.8 is "3.245,8"
func Num(v float64) string {
	return printer().Sprint(number.Decimal(v, number.MaxFractionDigits(3)))
}

// Fixed1 formats v with exactly one pt-BR decimal
// halves round away from zero before formatting
func Fixed1(v float64) string {
	r := math.Round(v*10) / 10
	if r == 0 {
		r = 0
	}
	return printer().Sprint(number.Decimal(r, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
}

// Signed1 is Fixed1 with a leading plus on positive values
func Signed1(v float64) string {
	s := Fixed1(v)
	if math.Round(v*10) > 0 {
		return "+" + s
	}
	return s
}

func arrow(change float64) string {
	if change < 0 {
		return "📉"
	}
	return "📈"
}
