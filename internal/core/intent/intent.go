// Package intent classifies a question into one kind of query
// Cue words overlap in real questions ("compare os biomas" has both a compare
// and a biome cue) so rules are evaluated top to bottom and the first rule
// with a matching cue decides. The order of rules is part of the contract
package intent

import (
	"fmt"
	"strings"

	"observafloresta/internal/core/fold"
)

// Kind is the classified intent of a question
type Kind int

const (
	// Unknown means no rule matched
	Unknown Kind = iota
	// StateLookup asks for one state in one year
	StateLookup
	// Compare asks for the evolution of a state or biome over a year range
	Compare
	// Ranking asks for states ordered by deforested area
	Ranking
	// Biome asks for all biomes side by side
	Biome
)

var kindNames = [...]string{
	Unknown:     "unknown",
	StateLookup: "state",
	Compare:     "compare",
	Ranking:     "ranking",
	Biome:       "biome",
}

// String returns the wire name of k
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(b []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range kindNames {
		if n == s {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("intent: unknown kind %q", string(b))
}

// Rule pairs a set of cues with the kind they select
type Rule struct {
	Kind Kind
	Cues []string // folded substrings, any one selects Kind
}

// rules is the classification table in priority order
var rules = []Rule{
	{Kind: Ranking, Cues: []string{"ranking", "top", "quais", "estados que mais", "estados que menos"}},
	{Kind: Compare, Cues: []string{"compar", "entre", "evolu"}},
	{Kind: Biome, Cues: []string{"bioma"}},
	{Kind: StateLookup, Cues: []string{"desmatamento", "area", "quanto", "qual"}},
}

// Rules returns a copy of the classification table in priority order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Kind: r.Kind, Cues: append([]string(nil), r.Cues...)}
	}
	return out
}

// Classify returns the kind of the first rule with a cue contained in text
func Classify(text string) Kind {
	f := fold.String(text)
	for _, r := range rules {
		for _, c := range r.Cues {
			if strings.Contains(f, c) {
				return r.Kind
			}
		}
	}
	return Unknown
}
