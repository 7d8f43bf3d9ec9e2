package module

import (
	"context"

	"observafloresta/internal/services/api/deforestation/domain"
	defsvc "observafloresta/internal/services/api/deforestation/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptPort struct{ svc defsvc.Service }

var _ domain.ServicePort = adaptPort{}

func (a adaptPort) StateData(ctx context.Context, in domain.StateInput) (domain.StateData, error) {
	return a.svc.StateData(ctx, in)
}

func (a adaptPort) Compare(ctx context.Context, in domain.CompareInput) (domain.Comparison, error) {
	return a.svc.Compare(ctx, in)
}

func (a adaptPort) Ranking(ctx context.Context, in domain.RankingInput) (domain.Ranking, error) {
	return a.svc.Ranking(ctx, in)
}

func (a adaptPort) CompareBiomes(ctx context.Context, in domain.BiomesInput) (domain.BiomeComparison, error) {
	return a.svc.CompareBiomes(ctx, in)
}

func (a adaptPort) States(ctx context.Context, in domain.StatesInput) (domain.StateList, error) {
	return a.svc.States(ctx, in)
}

func (a adaptPort) Years(ctx context.Context) (domain.YearList, error) { return a.svc.Years(ctx) }

func (a adaptPort) Biomes(ctx context.Context) (domain.BiomeList, error) { return a.svc.Biomes(ctx) }
