package dataservice

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"observafloresta/internal/services/api/deforestation/domain"
)

var _ domain.ServicePort = (*Client)(nil)

// StateData implements domain.ServicePort
func (c *Client) StateData(ctx context.Context, in domain.StateInput) (domain.StateData, error) {
	var out domain.StateData
	err := c.do(ctx, http.MethodPost, "/state", in, &out)
	return out, err
}

// Compare implements domain.ServicePort
func (c *Client) Compare(ctx context.Context, in domain.CompareInput) (domain.Comparison, error) {
	var out domain.Comparison
	err := c.do(ctx, http.MethodPost, "/compare", in, &out)
	return out, err
}

// Ranking implements domain.ServicePort
func (c *Client) Ranking(ctx context.Context, in domain.RankingInput) (domain.Ranking, error) {
	var out domain.Ranking
	err := c.do(ctx, http.MethodPost, "/ranking", in, &out)
	return out, err
}

// CompareBiomes implements domain.ServicePort
func (c *Client) CompareBiomes(ctx context.Context, in domain.BiomesInput) (domain.BiomeComparison, error) {
	var out domain.BiomeComparison
	err := c.do(ctx, http.MethodGet, "/biomes/compare/"+strconv.Itoa(in.Year), nil, &out)
	return out, err
}

// States implements domain.ServicePort
func (c *Client) States(ctx context.Context, in domain.StatesInput) (domain.StateList, error) {
	path := "/states"
	if in.Biome != "" {
		path += "?" + url.Values{"biome": {in.Biome}}.Encode()
	}
	var out domain.StateList
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// Years implements domain.ServicePort
func (c *Client) Years(ctx context.Context) (domain.YearList, error) {
	var out domain.YearList
	err := c.do(ctx, http.MethodGet, "/years", nil, &out)
	return out, err
}

// Biomes implements domain.ServicePort
func (c *Client) Biomes(ctx context.Context) (domain.BiomeList, error) {
	var out domain.BiomeList
	err := c.do(ctx, http.MethodGet, "/biomes", nil, &out)
	return out, err
}
