// Package extract pulls typed entities out of a normalized question
// Every extractor is a pure function over its input. Each one scans an ordered
// table and returns the first match, or reports the entity as absent; none of
// them fails. Matching happens on the folded form of the text so accents and
// case never matter
package extract

import (
	"sync"

	"observafloresta/internal/core/fold"
	"observafloresta/internal/core/lexicon"
)

// Extractor binds the entity extractors to a lexicon
type Extractor struct {
	lex *lexicon.Lexicon
}

// New returns an Extractor over lex
func New(lex *lexicon.Lexicon) *Extractor { return &Extractor{lex: lex} }

var (
	defaultOnce sync.Once
	defaultX    *Extractor
)

// Default returns an Extractor over the embedded lexicon
func Default() *Extractor {
	defaultOnce.Do(func() { defaultX = New(lexicon.Default()) })
	return defaultX
}

// State returns the first state of the table mentioned in text
// a question naming two states yields only the earlier one in table order
func (x *Extractor) State(text string) (lexicon.StateCode, bool) {
	f := fold.String(text)
	for _, s := range x.lex.States() {
		if s.Match(f) {
			return s.Code, true
		}
	}
	return "", false
}

// Biome returns the first biome of the table mentioned in text
func (x *Extractor) Biome(text string) (lexicon.Biome, bool) {
	f := fold.String(text)
	for _, b := range x.lex.Biomes() {
		if b.Match(f) {
			return b.Name, true
		}
	}
	return "", false
}

// State runs the default Extractor
func State(text string) (lexicon.StateCode, bool) { return Default().State(text) }

// Biome runs the default Extractor
func Biome(text string) (lexicon.Biome, bool) { return Default().Biome(text) }
