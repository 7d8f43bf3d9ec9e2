// Package http provides http transport for deforestation data
package http

import (
	stdhttp "net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"observafloresta/internal/modkit/httpkit"
	perr "observafloresta/internal/platform/errors"
	"observafloresta/internal/platform/net/http/bind"
	"observafloresta/internal/services/api/deforestation/domain"
	svc "observafloresta/internal/services/api/deforestation/service"
)

// Register mounts deforestation endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// one state in one year
	httpkit.Get(r, "/state/{state}", h.stateByPath)
	httpkit.PostJSON[domain.StateInput](r, "/state", h.state)

	// series of a state, a biome or Brasil
	httpkit.Get(r, "/compare/{target}", h.compareByPath)
	httpkit.PostJSON[domain.CompareInput](r, "/compare", h.compare)

	// top states of a year
	httpkit.Get(r, "/ranking/{year}", h.rankingByPath)
	httpkit.PostJSON[domain.RankingInput](r, "/ranking", h.ranking)

	httpkit.Get(r, "/biomes/compare/{year}", h.compareBiomes)

	// reference listings
	httpkit.Get(r, "/states", h.states)
	httpkit.Get(r, "/years", h.years)
	httpkit.Get(r, "/biomes", h.biomes)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /deforestation/state/{state} Deforestation deforestationStateGet
// @Summary Deforested area of a state
// @Tags Deforestation
// @Produce json
// @Param state path string true "State code or name"
// @Param year query int false "Year, latest when empty"
// @Success 200 {object} domain.StateData "ok"
// @Router /deforestation/state/{state} [get]
func (h *handlers) stateByPath(r *stdhttp.Request) (any, error) {
	year, err := bind.QueryInt(r, "year")
	if err != nil {
		return nil, err
	}
	in := domain.StateInput{State: pathParam(r, "state"), Year: year}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.StateData(r.Context(), in)
}

// swagger:route POST /deforestation/state Deforestation deforestationState
// @Summary Deforested area of a state
// @Tags Deforestation
// @Accept json
// @Produce json
// @Param payload body domain.StateInput true "Query"
// @Success 200 {object} domain.StateData "ok"
// @Router /deforestation/state [post]
func (h *handlers) state(r *stdhttp.Request, in domain.StateInput) (any, error) {
	return h.svc.StateData(r.Context(), in)
}

// swagger:route GET /deforestation/compare/{target} Deforestation deforestationCompareGet
// @Summary Evolution of a state, biome or Brasil
// @Tags Deforestation
// @Produce json
// @Param target path string true "State, biome or Brasil"
// @Param year_start query int true "First year"
// @Param year_end query int true "Last year"
// @Success 200 {object} domain.Comparison "ok"
// @Router /deforestation/compare/{target} [get]
func (h *handlers) compareByPath(r *stdhttp.Request) (any, error) {
	start, err := bind.QueryInt(r, "year_start")
	if err != nil {
		return nil, err
	}
	end, err := bind.QueryInt(r, "year_end")
	if err != nil {
		return nil, err
	}
	in := domain.CompareInput{Target: pathParam(r, "target"), YearStart: start, YearEnd: end}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.Compare(r.Context(), in)
}

// swagger:route POST /deforestation/compare Deforestation deforestationCompare
// @Summary Evolution of a state, biome or Brasil
// @Tags Deforestation
// @Accept json
// @Produce json
// @Param payload body domain.CompareInput true "Query"
// @Success 200 {object} domain.Comparison "ok"
// @Router /deforestation/compare [post]
func (h *handlers) compare(r *stdhttp.Request, in domain.CompareInput) (any, error) {
	return h.svc.Compare(r.Context(), in)
}

// swagger:route GET /deforestation/ranking/{year} Deforestation deforestationRankingGet
// @Summary Ranking of states by area
// @Tags Deforestation
// @Produce json
// @Param year path int true "Year"
// @Param order query string false "asc or desc" Enums(asc, desc)
// @Param limit query int false "1 to 27, default 10"
// @Param biome query string false "Restrict to one biome"
// @Success 200 {object} domain.Ranking "ok"
// @Router /deforestation/ranking/{year} [get]
func (h *handlers) rankingByPath(r *stdhttp.Request) (any, error) {
	year, err := pathYear(r)
	if err != nil {
		return nil, err
	}
	limit, err := bind.QueryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	q := r.URL.Query()
	in := domain.RankingInput{
		Year:  year,
		Order: strings.ToLower(q.Get("order")),
		Limit: limit,
		Biome: q.Get("biome"),
	}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.Ranking(r.Context(), in)
}

// swagger:route POST /deforestation/ranking Deforestation deforestationRanking
// @Summary Ranking of states by area
// @Tags Deforestation
// @Accept json
// @Produce json
// @Param payload body domain.RankingInput true "Query"
// @Success 200 {object} domain.Ranking "ok"
// @Router /deforestation/ranking [post]
func (h *handlers) ranking(r *stdhttp.Request, in domain.RankingInput) (any, error) {
	return h.svc.Ranking(r.Context(), in)
}

// swagger:route GET /deforestation/biomes/compare/{year} Deforestation deforestationBiomes
// @Summary Biomes ranked by area in a year
// @Tags Deforestation
// @Produce json
// @Param year path int true "Year"
// @Success 200 {object} domain.BiomeComparison "ok"
// @Router /deforestation/biomes/compare/{year} [get]
func (h *handlers) compareBiomes(r *stdhttp.Request) (any, error) {
	year, err := pathYear(r)
	if err != nil {
		return nil, err
	}
	in := domain.BiomesInput{Year: year}
	if err := bind.Validate(in); err != nil {
		return nil, err
	}
	return h.svc.CompareBiomes(r.Context(), in)
}

// swagger:route GET /deforestation/states Deforestation deforestationStates
// @Summary Reference states
// @Tags Deforestation
// @Produce json
// @Param biome query string false "Restrict to one biome"
// @Success 200 {object} domain.StateList "ok"
// @Router /deforestation/states [get]
func (h *handlers) states(r *stdhttp.Request) (any, error) {
	return h.svc.States(r.Context(), domain.StatesInput{Biome: r.URL.Query().Get("biome")})
}

// swagger:route GET /deforestation/years Deforestation deforestationYears
// @Summary Years with data
// @Tags Deforestation
// @Produce json
// @Success 200 {object} domain.YearList "ok"
// @Router /deforestation/years [get]
func (h *handlers) years(r *stdhttp.Request) (any, error) {
	return h.svc.Years(r.Context())
}

// swagger:route GET /deforestation/biomes Deforestation deforestationBiomeList
// @Summary Biome names
// @Tags Deforestation
// @Produce json
// @Success 200 {object} domain.BiomeList "ok"
// @Router /deforestation/biomes [get]
func (h *handlers) biomes(r *stdhttp.Request) (any, error) {
	return h.svc.Biomes(r.Context())
}

func pathParam(r *stdhttp.Request, name string) string {
	raw := chi.URLParam(r, name)
	if v, err := url.PathUnescape(raw); err == nil {
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(raw)
}

func pathYear(r *stdhttp.Request) (int, error) {
	year, err := strconv.Atoi(pathParam(r, "year"))
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("year must be an integer"), "year")
	}
	return year, nil
}
