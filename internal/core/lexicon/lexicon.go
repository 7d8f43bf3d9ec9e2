// Package lexicon loads the reference tables used to understand questions:
// the 27 Brazilian states, the 6 biomes and the rewrite tables of the normalizer.
// Tables come from the embedded lexicon.yaml and are compiled once into an
// immutable Lexicon that is safe for concurrent reads
package lexicon

import (
	_ "embed"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"observafloresta/internal/core/fold"
)

//go:embed lexicon.yaml
var embedded []byte

// StateCode is the 2 letter code of a federative unit
type StateCode string

// Biome is the canonical name of a Brazilian biome
type Biome string

// State is one row of the state table
type State struct {
	Code  StateCode
	Name  string
	Biome Biome // primary biome

	pattern *regexp.Regexp
}

// Match reports whether folded text mentions the state by code or name
func (s State) Match(folded string) bool { return s.pattern.MatchString(folded) }

// BiomeInfo is one row of the biome table
type BiomeInfo struct {
	Name   Biome
	States []StateCode

	pattern *regexp.Regexp
}

// Match reports whether folded text mentions the biome
func (b BiomeInfo) Match(folded string) bool { return b.pattern.MatchString(folded) }

// Rewrite maps a surface form to its replacement
type Rewrite struct {
	From string
	To   string
}

type rawState struct {
	Code    string   `yaml:"code"`
	Name    string   `yaml:"name"`
	Biome   string   `yaml:"biome"`
	Aliases []string `yaml:"aliases,omitempty"`
}

type rawBiome struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
	States  []string `yaml:"states"`
}

type rawLexicon struct {
	Version  int        `yaml:"version"`
	States   []rawState `yaml:"states"`
	Biomes   []rawBiome `yaml:"biomes"`
	Rewrites struct {
		Shortcuts []Rewrite `yaml:"shortcuts"`
		Typos     []Rewrite `yaml:"typos"`
	} `yaml:"rewrites"`
}

// Lexicon is the compiled, read only form of lexicon.yaml
type Lexicon struct {
	states    []State
	byCode    map[StateCode]int
	biomes    []BiomeInfo
	byBiome   map[Biome]int
	shortcuts []Rewrite
	typos     []Rewrite
}

const wantStates = 27

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the lexicon compiled from the embedded tables
// it panics when the embedded document is invalid, which is a build defect
func Default() *Lexicon {
	defaultOnce.Do(func() {
		l, err := Load(embedded)
		if err != nil {
			panic(err)
		}
		defaultLex = l
	})
	return defaultLex
}

// Load parses and compiles a lexicon document
func Load(data []byte) (*Lexicon, error) {
	var raw rawLexicon
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("lexicon: parse: %w", err)
	}
	if raw.Version != 1 {
		return nil, fmt.Errorf("lexicon: unsupported version %d (want 1)", raw.Version)
	}
	if len(raw.States) != wantStates {
		return nil, fmt.Errorf("lexicon: %d states, want %d", len(raw.States), wantStates)
	}

	l := &Lexicon{
		byCode:    make(map[StateCode]int, len(raw.States)),
		byBiome:   make(map[Biome]int, len(raw.Biomes)),
		shortcuts: slices.Clone(raw.Rewrites.Shortcuts),
		typos:     slices.Clone(raw.Rewrites.Typos),
	}

	for i, b := range raw.Biomes {
		name := Biome(strings.TrimSpace(b.Name))
		if name == "" {
			return nil, fmt.Errorf("lexicon: biome %d has no name", i)
		}
		if _, dup := l.byBiome[name]; dup {
			return nil, fmt.Errorf("lexicon: duplicate biome %q", name)
		}
		re, err := wordPattern(append([]string{string(name)}, b.Aliases...))
		if err != nil {
			return nil, fmt.Errorf("lexicon: biome %q: %w", name, err)
		}
		codes := make([]StateCode, 0, len(b.States))
		for _, c := range b.States {
			codes = append(codes, StateCode(strings.ToUpper(strings.TrimSpace(c))))
		}
		l.byBiome[name] = len(l.biomes)
		l.biomes = append(l.biomes, BiomeInfo{Name: name, States: codes, pattern: re})
	}

	var prev StateCode
	for _, s := range raw.States {
		code := StateCode(strings.ToUpper(strings.TrimSpace(s.Code)))
		if len(code) != 2 {
			return nil, fmt.Errorf("lexicon: bad state code %q", s.Code)
		}
		if code <= prev {
			return nil, fmt.Errorf("lexicon: state %s out of order after %s", code, prev)
		}
		prev = code
		biome := Biome(strings.TrimSpace(s.Biome))
		if _, ok := l.byBiome[biome]; !ok {
			return nil, fmt.Errorf("lexicon: state %s has unknown biome %q", code, s.Biome)
		}
		alts := append([]string{string(code), s.Name}, s.Aliases...)
		re, err := wordPattern(alts)
		if err != nil {
			return nil, fmt.Errorf("lexicon: state %s: %w", code, err)
		}
		l.byCode[code] = len(l.states)
		l.states = append(l.states, State{Code: code, Name: s.Name, Biome: biome, pattern: re})
	}

	for _, b := range l.biomes {
		for _, c := range b.States {
			if _, ok := l.byCode[c]; !ok {
				return nil, fmt.Errorf("lexicon: biome %q lists unknown state %q", b.Name, c)
			}
		}
	}
	for _, rw := range append(slices.Clone(l.shortcuts), l.typos...) {
		if strings.TrimSpace(rw.From) == "" || strings.TrimSpace(rw.To) == "" {
			return nil, fmt.Errorf("lexicon: empty rewrite %q -> %q", rw.From, rw.To)
		}
	}
	return l, nil
}

// wordPattern builds a word bounded alternation over the folded alternatives
// spaces inside a name accept any whitespace run
func wordPattern(alts []string) (*regexp.Regexp, error) {
	seen := make(map[string]struct{}, len(alts))
	parts := make([]string, 0, len(alts))
	for _, a := range alts {
		f := strings.Join(strings.Fields(fold.String(a)), " ")
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		parts = append(parts, strings.ReplaceAll(regexp.QuoteMeta(f), " ", `\s+`))
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("no alternatives")
	}
	return regexp.Compile(`\b(?:` + strings.Join(parts, "|") + `)\b`)
}

// States returns the state table in match order
func (l *Lexicon) States() []State { return slices.Clone(l.states) }

// Biomes returns the biome table in match order
func (l *Lexicon) Biomes() []BiomeInfo {
	out := make([]BiomeInfo, len(l.biomes))
	for i, b := range l.biomes {
		b.States = slices.Clone(b.States)
		out[i] = b
	}
	return out
}

// Shortcuts returns the rewrites that map a surface form straight to a code
func (l *Lexicon) Shortcuts() []Rewrite { return slices.Clone(l.shortcuts) }

// Typos returns the unaccented spelling fixes in application order
func (l *Lexicon) Typos() []Rewrite { return slices.Clone(l.typos) }

// State returns the state for a code
func (l *Lexicon) State(code StateCode) (State, bool) {
	i, ok := l.byCode[StateCode(strings.ToUpper(string(code)))]
	if !ok {
		return State{}, false
	}
	return l.states[i], true
}

// StateName returns the full name for a code, or the code itself when unknown
func (l *Lexicon) StateName(code StateCode) string {
	if s, ok := l.State(code); ok {
		return s.Name
	}
	return string(code)
}

// Biome returns the biome whose folded name equals the folded input
func (l *Lexicon) Biome(name string) (BiomeInfo, bool) {
	f := fold.String(strings.TrimSpace(name))
	for _, b := range l.biomes {
		if fold.String(string(b.Name)) == f {
			return b, true
		}
	}
	return BiomeInfo{}, false
}

// LookupState resolves a code, a full name with or without accents,
// or a fragment of a name such as "grosso do sul"
func (l *Lexicon) LookupState(s string) (State, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return State{}, false
	}
	if len(s) == 2 {
		if st, ok := l.State(StateCode(s)); ok {
			return st, true
		}
	}
	f := fold.String(s)
	for _, st := range l.states {
		if fold.String(st.Name) == f {
			return st, true
		}
	}
	for _, st := range l.states {
		n := fold.String(st.Name)
		if strings.Contains(n, f) || strings.Contains(f, n) {
			return st, true
		}
	}
	return State{}, false
}

// StatesOf returns the states that belong to a biome in table order
func (l *Lexicon) StatesOf(b Biome) []StateCode {
	i, ok := l.byBiome[b]
	if !ok {
		return nil
	}
	return slices.Clone(l.biomes[i].States)
}
