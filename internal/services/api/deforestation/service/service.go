// Package service computes deforestation figures from yearly state areas
package service

import (
	"cmp"
	"context"
	"math"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"observafloresta/internal/core/lexicon"
	perr "observafloresta/internal/platform/errors"
	"observafloresta/internal/services/api/deforestation/domain"
	"observafloresta/internal/services/api/deforestation/repo"
)

// Service defines the deforestation service contract
type Service interface {
	domain.ServicePort
}

// Defaults applied when a ranking leaves order or limit empty
const (
	DefaultOrder = "desc"
	DefaultLimit = 10
	MaxLimit     = 27
)

// trendThreshold is the percentage change beyond which a series has a trend
const trendThreshold = 5.0

// Brazil names the whole country as a comparison target
const (
	BrazilName  = "Brasil"
	BrazilCode  = "BR"
	BrazilBiome = "Todos os biomas"
)

// Svc implements the deforestation service
type Svc struct {
	Repo repo.Repo
	lex  *lexicon.Lexicon
}

var _ Service = (*Svc)(nil)

// New constructs a deforestation service
func New(r repo.Repo, lex *lexicon.Lexicon) *Svc {
	if r == nil {
		panic("deforestation.Service requires a non nil Repo")
	}
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Svc{Repo: r, lex: lex}
}

// StateData returns the area of one state in one year with the previous year alongside
func (s *Svc) StateData(ctx context.Context, in domain.StateInput) (domain.StateData, error) {
	st, ok := s.lex.LookupState(in.State)
	if !ok {
		return domain.StateData{}, perr.WithField(perr.NotFoundf("Estado '%s' não encontrado", in.State), "state")
	}
	years, err := s.years(ctx)
	if err != nil {
		return domain.StateData{}, err
	}
	year := in.Year
	if year == 0 {
		year = years[len(years)-1]
	}
	if err := requireYear(years, year, "year"); err != nil {
		return domain.StateData{}, err
	}

	t, err := s.load(ctx, year-1, year)
	if err != nil {
		return domain.StateData{}, err
	}
	area, ok := t.area(year, st.Code)
	if !ok {
		return domain.StateData{}, perr.NotFoundf("Sem dados para %s em %d", st.Name, year)
	}

	prev := domain.PreviousYear{Year: year - 1}
	if p, ok := t.area(year-1, st.Code); ok && p > 0 {
		pa := round2(p)
		prev.AreaKm2 = &pa
		prev.ChangeKm2 = round2(area - p)
		prev.ChangePercentage = round2((area - p) / p * 100)
	}

	return domain.StateData{
		State:                  st.Name,
		StateCode:              string(st.Code),
		Year:                   year,
		AreaKm2:                round2(area),
		PercentageOfTotal:      round2(percent(area, t.total(year))),
		Biome:                  string(st.Biome),
		ComparisonPreviousYear: prev,
	}, nil
}

// Compare returns the series of a state, a biome or Brasil across a year range
func (s *Svc) Compare(ctx context.Context, in domain.CompareInput) (domain.Comparison, error) {
	if in.YearStart >= in.YearEnd {
		return domain.Comparison{}, perr.WithField(perr.InvalidArgf("Ano inicial deve ser menor que ano final"), "year_start")
	}
	years, err := s.years(ctx)
	if err != nil {
		return domain.Comparison{}, err
	}
	if err := requireYear(years, in.YearStart, "year_start"); err != nil {
		return domain.Comparison{}, err
	}
	if err := requireYear(years, in.YearEnd, "year_end"); err != nil {
		return domain.Comparison{}, err
	}

	out := domain.Comparison{YearStart: in.YearStart, YearEnd: in.YearEnd}
	var members []lexicon.StateCode // nil means every state
	target := strings.TrimSpace(in.Target)
	switch {
	case isBrazil(target):
		out.State, out.StateCode, out.Biome = BrazilName, BrazilCode, BrazilBiome
	default:
		if b, ok := s.lex.Biome(target); ok {
			out.State, out.StateCode, out.Biome = string(b.Name), biomeCode(b.Name), string(b.Name)
			members = s.lex.StatesOf(b.Name)
			break
		}
		st, ok := s.lex.LookupState(target)
		if !ok {
			return domain.Comparison{}, perr.WithField(perr.NotFoundf("Estado ou bioma '%s' não encontrado", in.Target), "state_or_biome")
		}
		out.State, out.StateCode, out.Biome = st.Name, string(st.Code), string(st.Biome)
		members = []lexicon.StateCode{st.Code}
	}

	t, err := s.load(ctx, in.YearStart, in.YearEnd)
	if err != nil {
		return domain.Comparison{}, err
	}
	for y := in.YearStart; y <= in.YearEnd; y++ {
		if !t.has(y) {
			continue
		}
		v := t.total(y)
		if members != nil {
			v = t.sum(y, members)
		}
		out.Data = append(out.Data, domain.YearArea{Year: y, AreaKm2: round2(v)})
	}
	if len(out.Data) == 0 {
		return domain.Comparison{}, perr.NotFoundf("Sem dados para o período %d-%d", in.YearStart, in.YearEnd)
	}

	first, last := out.Data[0].AreaKm2, out.Data[len(out.Data)-1].AreaKm2
	out.TotalChangeKm2 = round2(last - first)
	if first != 0 {
		out.PercentageChange = round2((last - first) / first * 100)
	}
	out.Trend = trendOf(out.PercentageChange)
	return out, nil
}

// Ranking orders the states of a year by area, optionally within one biome
func (s *Svc) Ranking(ctx context.Context, in domain.RankingInput) (domain.Ranking, error) {
	order := strings.ToLower(strings.TrimSpace(in.Order))
	if order == "" {
		order = DefaultOrder
	}
	if order != "asc" && order != "desc" {
		return domain.Ranking{}, perr.WithField(perr.InvalidArgf("Ordem '%s' inválida, use asc ou desc", in.Order), "order")
	}
	limit := in.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return domain.Ranking{}, perr.WithField(perr.InvalidArgf("Limite deve estar entre 1 e %d", MaxLimit), "limit")
	}

	var (
		filter  string
		members []lexicon.StateCode
	)
	if strings.TrimSpace(in.Biome) != "" {
		b, ok := s.lex.Biome(in.Biome)
		if !ok {
			return domain.Ranking{}, perr.WithField(perr.InvalidArgf("Bioma '%s' não encontrado", in.Biome), "biome")
		}
		filter, members = string(b.Name), s.lex.StatesOf(b.Name)
	}

	years, err := s.years(ctx)
	if err != nil {
		return domain.Ranking{}, err
	}
	if err := requireYear(years, in.Year, "year"); err != nil {
		return domain.Ranking{}, err
	}
	t, err := s.load(ctx, in.Year, in.Year)
	if err != nil {
		return domain.Ranking{}, err
	}

	total := t.total(in.Year)
	rows := make([]domain.RankingRow, 0, MaxLimit)
	for _, r := range t.rows(in.Year) {
		if members != nil && !slices.Contains(members, r.State) {
			continue
		}
		rows = append(rows, domain.RankingRow{
			State:             s.lex.StateName(r.State),
			StateCode:         string(r.State),
			AreaKm2:           round2(r.AreaKm2),
			PercentageOfTotal: round2(percent(r.AreaKm2, total)),
			Biome:             s.primaryBiome(r.State),
		})
	}
	slices.SortStableFunc(rows, func(a, b domain.RankingRow) int {
		c := cmp.Compare(a.AreaKm2, b.AreaKm2)
		if order == "desc" {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.StateCode, b.StateCode)
	})
	if len(rows) > limit {
		rows = rows[:limit]
	}
	for i := range rows {
		rows[i].Position = i + 1
	}

	return domain.Ranking{
		Year:           in.Year,
		TotalBrazilKm2: round2(total),
		Order:          order,
		BiomeFilter:    filter,
		Ranking:        rows,
	}, nil
}

// CompareBiomes sums every biome of a year, largest first
// a state in several biomes counts toward each of them
func (s *Svc) CompareBiomes(ctx context.Context, in domain.BiomesInput) (domain.BiomeComparison, error) {
	years, err := s.years(ctx)
	if err != nil {
		return domain.BiomeComparison{}, err
	}
	if err := requireYear(years, in.Year, "year"); err != nil {
		return domain.BiomeComparison{}, err
	}
	t, err := s.load(ctx, in.Year, in.Year)
	if err != nil {
		return domain.BiomeComparison{}, err
	}

	total := t.total(in.Year)
	biomes := s.lex.Biomes()
	out := domain.BiomeComparison{
		Year:           in.Year,
		TotalBrazilKm2: round2(total),
		Biomes:         make([]domain.BiomeRow, 0, len(biomes)),
	}
	for _, b := range biomes {
		members := s.lex.StatesOf(b.Name)
		v := t.sum(in.Year, members)
		out.Biomes = append(out.Biomes, domain.BiomeRow{
			Biome:             string(b.Name),
			AreaKm2:           round2(v),
			PercentageOfTotal: round2(percent(v, total)),
			NumStates:         len(members),
		})
	}
	slices.SortStableFunc(out.Biomes, func(a, b domain.BiomeRow) int { return cmp.Compare(b.AreaKm2, a.AreaKm2) })
	return out, nil
}

// States lists the reference states, by name or restricted to one biome
func (s *Svc) States(_ context.Context, in domain.StatesInput) (domain.StateList, error) {
	var out domain.StateList
	if strings.TrimSpace(in.Biome) != "" {
		b, ok := s.lex.Biome(in.Biome)
		if !ok {
			return domain.StateList{}, perr.WithField(perr.NotFoundf("Bioma '%s' não encontrado", in.Biome), "biome")
		}
		out.BiomeFilter = string(b.Name)
		for _, code := range s.lex.StatesOf(b.Name) {
			out.States = append(out.States, s.info(code))
		}
	} else {
		for _, st := range s.lex.States() {
			out.States = append(out.States, s.info(st.Code))
		}
		coll := collate.New(language.BrazilianPortuguese)
		slices.SortFunc(out.States, func(a, b domain.StateInfo) int { return coll.CompareString(a.Name, b.Name) })
	}
	out.Total = len(out.States)
	return out, nil
}

// Years lists the years with data
func (s *Svc) Years(ctx context.Context) (domain.YearList, error) {
	years, err := s.years(ctx)
	if err != nil {
		return domain.YearList{}, err
	}
	return domain.YearList{Years: years, Total: len(years)}, nil
}

// Biomes lists the biome names in reference order
func (s *Svc) Biomes(context.Context) (domain.BiomeList, error) {
	bs := s.lex.Biomes()
	out := domain.BiomeList{Biomes: make([]string, 0, len(bs)), Total: len(bs)}
	for _, b := range bs {
		out.Biomes = append(out.Biomes, string(b.Name))
	}
	return out, nil
}

func (s *Svc) years(ctx context.Context) ([]int, error) {
	years, err := s.Repo.Years(ctx)
	if err != nil {
		return nil, perr.FromPostgres(err, "deforestation: list years")
	}
	if len(years) == 0 {
		return nil, perr.Unavailablef("Nenhum ano disponível na base de dados")
	}
	return years, nil
}

func (s *Svc) load(ctx context.Context, from, to int) (table, error) {
	rows, err := s.Repo.Series(ctx, from, to)
	if err != nil {
		return nil, perr.FromPostgres(err, "deforestation: load areas")
	}
	return newTable(rows), nil
}

func (s *Svc) info(code lexicon.StateCode) domain.StateInfo {
	return domain.StateInfo{Name: s.lex.StateName(code), Code: string(code), Biome: s.primaryBiome(code)}
}

func (s *Svc) primaryBiome(code lexicon.StateCode) string {
	if st, ok := s.lex.State(code); ok {
		return string(st.Biome)
	}
	return ""
}

func requireYear(years []int, year int, field string) error {
	if slices.Contains(years, year) {
		return nil
	}
	return perr.WithField(perr.NotFoundf("Ano %d não disponível. Anos: %d-%d", year, years[0], years[len(years)-1]), field)
}

func isBrazil(s string) bool {
	return strings.EqualFold(s, "brasil") || strings.EqualFold(s, "brazil")
}

// biomeCode is the upper cased first three letters, "Amazônia" -> "AMA"
func biomeCode(b lexicon.Biome) string {
	r := []rune(string(b))
	if len(r) > 3 {
		r = r[:3]
	}
	return strings.ToUpper(string(r))
}

func trendOf(pct float64) domain.Trend {
	switch {
	case pct > trendThreshold:
		return domain.TrendIncreasing
	case pct < -trendThreshold:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

func percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
