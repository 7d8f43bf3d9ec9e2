package domain

import "context"

// ServicePort is consumed by handlers, the assistant and the remote client
type ServicePort interface {
	StateData(ctx context.Context, in StateInput) (StateData, error)
	Compare(ctx context.Context, in CompareInput) (Comparison, error)
	Ranking(ctx context.Context, in RankingInput) (Ranking, error)
	CompareBiomes(ctx context.Context, in BiomesInput) (BiomeComparison, error)

	States(ctx context.Context, in StatesInput) (StateList, error)
	Years(ctx context.Context) (YearList, error)
	Biomes(ctx context.Context) (BiomeList, error)
}
