package repo

import (
	"cmp"
	"context"
	_ "embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"

	"observafloresta/internal/core/lexicon"
)

//go:embed dataset.yaml
var dataset []byte

type rawDataset struct {
	Version int                             `yaml:"version"`
	Source  string                          `yaml:"source"`
	Years   []int                           `yaml:"years"`
	Areas   map[lexicon.StateCode][]float64 `yaml:"areas"`
}

// Memory serves rows from a dataset held in memory
// it is immutable after load and safe for concurrent reads
type Memory struct {
	source string
	years  []int
	rows   []Row // year asc then state code asc
}

var _ Repo = (*Memory)(nil)

// NewMemory loads the embedded dataset
func NewMemory() (*Memory, error) { return LoadDataset(dataset, lexicon.Default()) }

// LoadDataset parses a dataset document and checks it against the state table of lex
func LoadDataset(data []byte, lex *lexicon.Lexicon) (*Memory, error) {
	var raw rawDataset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("dataset: parse: %w", err)
	}
	if raw.Version != 1 {
		return nil, fmt.Errorf("dataset: unsupported version %d (want 1)", raw.Version)
	}
	if len(raw.Years) == 0 {
		return nil, fmt.Errorf("dataset: no years")
	}
	years := slices.Clone(raw.Years)
	slices.Sort(years)
	if len(slices.Compact(slices.Clone(years))) != len(years) {
		return nil, fmt.Errorf("dataset: duplicate years")
	}

	m := &Memory{source: raw.Source, years: years}
	for code, areas := range raw.Areas {
		if _, ok := lex.State(code); !ok {
			return nil, fmt.Errorf("dataset: unknown state %q", code)
		}
		if len(areas) != len(raw.Years) {
			return nil, fmt.Errorf("dataset: state %s has %d areas for %d years", code, len(areas), len(raw.Years))
		}
		for i, a := range areas {
			if a < 0 {
				return nil, fmt.Errorf("dataset: state %s year %d has negative area", code, raw.Years[i])
			}
			m.rows = append(m.rows, Row{State: code, Year: raw.Years[i], AreaKm2: a})
		}
	}
	slices.SortFunc(m.rows, compareRows)
	return m, nil
}

func compareRows(a, b Row) int {
	if c := cmp.Compare(a.Year, b.Year); c != 0 {
		return c
	}
	return cmp.Compare(a.State, b.State)
}

// Source names where the dataset came from
func (m *Memory) Source() string { return m.source }

// Rows returns a copy of every row, used to seed the sql backends
func (m *Memory) Rows() []Row { return slices.Clone(m.rows) }

// Years implements Repo
func (m *Memory) Years(context.Context) ([]int, error) { return slices.Clone(m.years), nil }

// ByYear implements Repo
func (m *Memory) ByYear(_ context.Context, year int) ([]Row, error) {
	return m.between(year, year), nil
}

// Series implements Repo
func (m *Memory) Series(_ context.Context, from, to int) ([]Row, error) {
	return m.between(from, to), nil
}

func (m *Memory) between(from, to int) []Row {
	var out []Row
	for _, r := range m.rows {
		if r.Year >= from && r.Year <= to {
			out = append(out, r)
		}
	}
	return out
}
