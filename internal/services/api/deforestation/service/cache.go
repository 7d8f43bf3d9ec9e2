package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"observafloresta/internal/core/fold"
	"observafloresta/internal/services/api/deforestation/domain"
)

// Cached memoizes successful results of another Service for ttl
// errors are never cached
type Cached struct {
	next Service
	lru  *expirable.LRU[string, any]
}

var _ Service = (*Cached)(nil)

// NewCached wraps next with an expirable LRU of size entries
func NewCached(next Service, size int, ttl time.Duration) *Cached {
	if next == nil {
		panic("deforestation.Cached requires a non nil Service")
	}
	if size <= 0 {
		size = 512
	}
	return &Cached{next: next, lru: expirable.NewLRU[string, any](size, nil, ttl)}
}

// Len reports how many results are held
func (c *Cached) Len() int { return c.lru.Len() }

// Purge drops every cached result
func (c *Cached) Purge() { c.lru.Purge() }

// memo stores a clone of each result and hands out clones on hits
func memo[T any](c *Cached, key string, clone func(T) T, fn func() (T, error)) (T, error) {
	if v, ok := c.lru.Get(key); ok {
		if out, ok := v.(T); ok {
			return clone(out), nil
		}
	}
	out, err := fn()
	if err != nil {
		return out, err
	}
	c.lru.Add(key, clone(out))
	return out, nil
}

func cloneState(v domain.StateData) domain.StateData {
	if p := v.ComparisonPreviousYear.AreaKm2; p != nil {
		a := *p
		v.ComparisonPreviousYear.AreaKm2 = &a
	}
	return v
}

func cloneComparison(v domain.Comparison) domain.Comparison {
	v.Data = slices.Clone(v.Data)
	return v
}

func cloneRanking(v domain.Ranking) domain.Ranking {
	v.Ranking = slices.Clone(v.Ranking)
	return v
}

func cloneBiomeComparison(v domain.BiomeComparison) domain.BiomeComparison {
	v.Biomes = slices.Clone(v.Biomes)
	return v
}

func cloneStateList(v domain.StateList) domain.StateList {
	v.States = slices.Clone(v.States)
	return v
}

func cloneYears(v domain.YearList) domain.YearList {
	v.Years = slices.Clone(v.Years)
	return v
}

func cloneBiomeList(v domain.BiomeList) domain.BiomeList {
	v.Biomes = slices.Clone(v.Biomes)
	return v
}

// StateData implements Service
func (c *Cached) StateData(ctx context.Context, in domain.StateInput) (domain.StateData, error) {
	key := fmt.Sprintf("state|%s|%d", fold.String(in.State), in.Year)
	return memo(c, key, cloneState, func() (domain.StateData, error) { return c.next.StateData(ctx, in) })
}

// Compare implements Service
func (c *Cached) Compare(ctx context.Context, in domain.CompareInput) (domain.Comparison, error) {
	key := fmt.Sprintf("compare|%s|%d|%d", fold.String(in.Target), in.YearStart, in.YearEnd)
	return memo(c, key, cloneComparison, func() (domain.Comparison, error) { return c.next.Compare(ctx, in) })
}

// Ranking implements Service
func (c *Cached) Ranking(ctx context.Context, in domain.RankingInput) (domain.Ranking, error) {
	key := fmt.Sprintf("ranking|%d|%s|%d|%s", in.Year, in.Order, in.Limit, fold.String(in.Biome))
	return memo(c, key, cloneRanking, func() (domain.Ranking, error) { return c.next.Ranking(ctx, in) })
}

// CompareBiomes implements Service
func (c *Cached) CompareBiomes(ctx context.Context, in domain.BiomesInput) (domain.BiomeComparison, error) {
	key := fmt.Sprintf("biomes|%d", in.Year)
	return memo(c, key, cloneBiomeComparison, func() (domain.BiomeComparison, error) { return c.next.CompareBiomes(ctx, in) })
}

// States implements Service
func (c *Cached) States(ctx context.Context, in domain.StatesInput) (domain.StateList, error) {
	key := "states|" + fold.String(in.Biome)
	return memo(c, key, cloneStateList, func() (domain.StateList, error) { return c.next.States(ctx, in) })
}

// Years implements Service
func (c *Cached) Years(ctx context.Context) (domain.YearList, error) {
	return memo(c, "years", cloneYears, func() (domain.YearList, error) { return c.next.Years(ctx) })
}

// Biomes implements Service
func (c *Cached) Biomes(ctx context.Context) (domain.BiomeList, error) {
	return memo(c, "biomes", cloneBiomeList, func() (domain.BiomeList, error) { return c.next.Biomes(ctx) })
}
