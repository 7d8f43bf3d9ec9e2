// Package query turns a free-form question into a validated Parsed query
// Parse never fails: it normalizes the text, runs every extractor and the
// classifier, and fills defaults. Validate is the single place that decides
// whether the result is actionable
package query

import (
	"sync"

	"observafloresta/internal/core/extract"
	"observafloresta/internal/core/intent"
	"observafloresta/internal/core/lexicon"
	"observafloresta/internal/core/normalize"
	ptime "observafloresta/internal/platform/time"
)

// DefaultLimit is the ranking size when the question names none
const DefaultLimit = 5

// Parsed is the structured form of one question
// it is a value built once per input and never changed afterwards
type Parsed struct {
	Kind      intent.Kind        `json:"kind" swaggertype:"string" enums:"state,compare,ranking,biome,unknown" example:"state"`
	State     *lexicon.StateCode `json:"state,omitempty" example:"PA"`
	Biome     *lexicon.Biome     `json:"biome,omitempty" example:"Amazônia"`
	Year      int                `json:"year" example:"2024"`
	YearStart *int               `json:"year_start,omitempty" example:"2020"`
	YearEnd   *int               `json:"year_end,omitempty" example:"2024"`
	Limit     int                `json:"limit" example:"5"`
	Order     extract.Order      `json:"order" swaggertype:"string" enums:"asc,desc" example:"desc"`
}

// HasRange reports whether both ends of a year range are present
func (p Parsed) HasRange() bool { return p.YearStart != nil && p.YearEnd != nil }

// Target returns the subject of a comparison, the state code when present, else the biome name
func (p Parsed) Target() (string, bool) {
	if p.State != nil {
		return string(*p.State), true
	}
	if p.Biome != nil {
		return string(*p.Biome), true
	}
	return "", false
}

// Parser wires a normalizer and an extractor over the same lexicon
type Parser struct {
	norm *normalize.Normalizer
	x    *extract.Extractor
}

// NewParser returns a Parser over lex
func NewParser(lex *lexicon.Lexicon) *Parser {
	return &Parser{norm: normalize.New(lex), x: extract.New(lex)}
}

var (
	defaultOnce sync.Once
	defaultP    *Parser
)

// Default returns a Parser over the embedded lexicon
func Default() *Parser {
	defaultOnce.Do(func() { defaultP = NewParser(lexicon.Default()) })
	return defaultP
}

// Parse runs the default Parser
func Parse(text string) Parsed { return Default().Parse(text) }

// Normalize exposes the normalizer the Parser runs before extraction
func (p *Parser) Normalize(text string) string { return p.norm.Normalize(text) }

// Parse normalizes text then extracts every entity and classifies it
func (p *Parser) Parse(text string) Parsed {
	text = p.norm.Normalize(text)

	q := Parsed{
		Kind:  intent.Classify(text),
		Year:  ptime.CurrentYear(),
		Limit: DefaultLimit,
		Order: extract.OrderOf(text),
	}
	if code, ok := p.x.State(text); ok {
		q.State = &code
	}
	if b, ok := p.x.Biome(text); ok {
		q.Biome = &b
	}
	if y, ok := extract.Year(text); ok {
		q.Year = y
	}
	if s, e, ok := extract.YearRange(text); ok {
		q.YearStart, q.YearEnd = &s, &e
	}
	if n, ok := extract.Limit(text); ok {
		q.Limit = n
	}
	return q
}
