// Package service answers free form questions with the deforestation data port
// A question is parsed and validated first. Only an actionable query reaches
// the data port, and its result is rendered with the template of its variant
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"observafloresta/internal/core/extract"
	"observafloresta/internal/core/intent"
	"observafloresta/internal/core/query"
	perr "observafloresta/internal/platform/errors"
	"observafloresta/internal/platform/logger"
	"observafloresta/internal/services/api/assistant/domain"
	defdomain "observafloresta/internal/services/api/deforestation/domain"
)

// maxLimit is the number of states, a larger ranking is clamped
const maxLimit = 27

// Examples are the questions suggested by the help text
var Examples = []string{
	"Qual o desmatamento no [Estado] em [Ano]?",
	"Compare [Estado] entre [Ano] e [Ano]",
	"Quais os 5 estados que mais desmataram em [Ano]?",
	"Ranking da Amazônia em [Ano]",
	"Desmatamento por bioma em [Ano]",
}

// Service is the assistant contract
type Service interface {
	domain.ServicePort
}

// Svc implements Service
type Svc struct {
	data   defdomain.ServicePort
	parser *query.Parser
	tmpl   *Formatter
}

var _ Service = (*Svc)(nil)

// newID is swapped in tests
var newID = uuid.New

// New returns an assistant over the data port, a nil parser uses the embedded lexicon
func New(data defdomain.ServicePort, p *query.Parser) *Svc {
	if data == nil {
		panic("assistant.New requires a non nil data port")
	}
	if p == nil {
		p = query.Default()
	}
	return &Svc{data: data, parser: p, tmpl: NewFormatter()}
}

// Parse reads text into a query and reports whether it can be answered
func (s *Svc) Parse(text string) domain.ParseResult {
	q := s.parser.Parse(text)
	out := domain.ParseResult{
		Text:       text,
		Normalized: s.parser.Normalize(text),
		Query:      q,
		Valid:      true,
	}
	if err := query.Validate(q); err != nil {
		out.Valid = false
		out.Message = err.Error()
		if r, ok := query.ReasonOf(err); ok {
			out.Reason = r.String()
		}
	}
	return out
}

// Ask answers one question
// a question that is not actionable gets its remediation message and no data call
// a failed data call gets the generic error text, the cause is logged
func (s *Svc) Ask(ctx context.Context, text string) (domain.Answer, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Answer{}, perr.WithField(perr.InvalidArgf("text is required"), "text")
	}

	pr := s.Parse(text)
	a := domain.Answer{ID: newID(), Query: pr.Query, Kind: pr.Query.Kind}
	if !pr.Valid {
		a.Text, a.Error = pr.Message, pr.Reason
		return a, nil
	}

	v, data, err := s.dispatch(ctx, pr)
	if err != nil {
		logger.C(ctx).Warn().Err(err).
			Str("kind", pr.Query.Kind.String()).
			Str("text", text).
			Msg("assistant data call failed")
		a.Text, a.Error = GenericError, publicError(err)
		return a, nil
	}

	out, err := s.tmpl.Render(v, data)
	if err != nil {
		return domain.Answer{}, perr.Wrap(err, perr.ErrorCodeUnknown, "render answer")
	}
	a.Variant, a.Text, a.Data = string(v), out, data
	return a, nil
}

// Help renders the usage text
func (s *Svc) Help() domain.Help {
	ex := append([]string(nil), Examples...)
	out, err := s.tmpl.Render(VariantHelp, domain.Help{Examples: ex})
	if err != nil {
		out = strings.Join(ex, "\n")
	}
	return domain.Help{Text: out, Examples: ex}
}

func (s *Svc) dispatch(ctx context.Context, pr domain.ParseResult) (Variant, any, error) {
	q := pr.Query
	switch q.Kind {
	case intent.StateLookup:
		in := defdomain.StateInput{State: string(*q.State)}
		if explicitYear(pr) {
			in.Year = q.Year
		}
		d, err := s.data.StateData(ctx, in)
		return VariantState, d, err

	case intent.Compare:
		target, _ := q.Target()
		d, err := s.data.Compare(ctx, defdomain.CompareInput{Target: target, YearStart: *q.YearStart, YearEnd: *q.YearEnd})
		if err != nil {
			return "", nil, err
		}
		return CompareVariant(d.Trend), d, nil

	case intent.Ranking:
		year, err := s.year(ctx, pr)
		if err != nil {
			return "", nil, err
		}
		in := defdomain.RankingInput{Year: year, Order: q.Order.String(), Limit: clampLimit(q.Limit)}
		if q.Biome != nil {
			in.Biome = string(*q.Biome)
		}
		d, err := s.data.Ranking(ctx, in)
		if err != nil {
			return "", nil, err
		}
		return RankingVariant(d), d, nil

	case intent.Biome:
		year, err := s.year(ctx, pr)
		if err != nil {
			return "", nil, err
		}
		d, err := s.data.CompareBiomes(ctx, defdomain.BiomesInput{Year: year})
		return VariantBiomes, d, err
	}
	return "", nil, perr.InvalidArgf("unsupported kind %s", q.Kind)
}

// year is the year the question names, else the latest year with data
func (s *Svc) year(ctx context.Context, pr domain.ParseResult) (int, error) {
	if explicitYear(pr) {
		return pr.Query.Year, nil
	}
	ys, err := s.data.Years(ctx)
	if err != nil {
		return 0, err
	}
	if len(ys.Years) == 0 {
		return pr.Query.Year, nil
	}
	return ys.Years[len(ys.Years)-1], nil
}

// explicitYear reports whether the question names a year, a repaired partial year counts
func explicitYear(pr domain.ParseResult) bool {
	_, ok := extract.Year(pr.Normalized)
	return ok
}

func clampLimit(n int) int {
	switch {
	case n < 1:
		return 1
	case n > maxLimit:
		return maxLimit
	}
	return n
}

// publicError keeps messages meant for users and hides everything else
func publicError(err error) string {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeNotFound, perr.ErrorCodeInvalidArgument, perr.ErrorCodeValidation, perr.ErrorCodeTooManyRequests:
		return perr.WireFrom(err).Message
	}
	return "data_error"
}
