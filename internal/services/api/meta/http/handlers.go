// Package http serves liveness, readiness, build and dataset info
package http

import (
	"context"
	"net/http"
	"time"

	"observafloresta/internal/core/lexicon"
	"observafloresta/internal/core/version"
	"observafloresta/internal/modkit/httpkit"
	defdomain "observafloresta/internal/services/api/deforestation/domain"
)

// readyTimeout bounds all readiness checks together
const readyTimeout = 2 * time.Second

// Pinger is any store handle readiness can probe
type Pinger interface {
	Ping(context.Context) error
}

// Deps feed the meta handlers
// a nil PG, CH or Data is reported as skipped
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Backend     string
	PG          any
	CH          any
	Data        defdomain.ServicePort
}

// Check statuses, unknown means the store handle cannot be pinged
const (
	CheckOK      = "ok"
	CheckFail    = "fail"
	CheckSkipped = "skipped"
	CheckUnknown = "unknown"
)

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"floresta-api"`
	Started string `json:"started" example:"2025-09-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// ReadyCheck is one dependency probe
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok, degraded when a store cannot be probed, or fail
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
}

// DatasetResponse names the backend and coverage behind every answer
type DatasetResponse struct {
	Backend string `json:"backend" example:"memory"`
	Years   []int  `json:"years"   example:"2020,2021,2022,2023,2024"`
	States  int    `json:"states"  example:"27"`
	Biomes  int    `json:"biomes"  example:"6"`
}

type handlers struct{ d Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := handlers{d: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/dataset", h.dataset)
}

// health godoc
// @Summary Liveness and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.d.ServiceName,
		Started: h.d.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(time.Since(h.d.StartedAt).Seconds()),
	}, nil
}

// ready godoc
// @Summary Readiness of stores and dataset
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	checks := []ReadyCheck{ping(ctx, "pg", h.d.PG), ping(ctx, "ch", h.d.CH), h.data(ctx)}
	return ReadyResponse{Status: overall(checks), Checks: checks}, nil
}

func ping(ctx context.Context, name string, store any) ReadyCheck {
	if store == nil {
		return ReadyCheck{Name: name, Status: CheckSkipped}
	}
	p, ok := store.(Pinger)
	if !ok {
		return ReadyCheck{Name: name, Status: CheckUnknown}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: CheckFail, Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: CheckOK}
}

// data fails when the port errors or serves no years
func (h handlers) data(ctx context.Context) ReadyCheck {
	if h.d.Data == nil {
		return ReadyCheck{Name: "data", Status: CheckSkipped}
	}
	ys, err := h.d.Data.Years(ctx)
	switch {
	case err != nil:
		return ReadyCheck{Name: "data", Status: CheckFail, Error: err.Error()}
	case len(ys.Years) == 0:
		return ReadyCheck{Name: "data", Status: CheckFail, Error: "no years loaded"}
	}
	return ReadyCheck{Name: "data", Status: CheckOK}
}

func overall(checks []ReadyCheck) string {
	status := CheckOK
	for _, c := range checks {
		if c.Status == CheckFail {
			return CheckFail
		}
		if c.Status == CheckUnknown {
			status = "degraded"
		}
	}
	return status
}

// version godoc
// @Summary Build info stamped at link time
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// dataset godoc
// @Summary Backend and years behind the answers
// @Tags Meta
// @Produce json
// @Success 200 {object} DatasetResponse
// @Router /meta/dataset [get]
func (h handlers) dataset(r *http.Request) (any, error) {
	lex := lexicon.Default()
	out := DatasetResponse{
		Backend: h.d.Backend,
		Years:   []int{},
		States:  len(lex.States()),
		Biomes:  len(lex.Biomes()),
	}
	if h.d.Data == nil {
		return out, nil
	}
	ys, err := h.d.Data.Years(r.Context())
	if err != nil {
		return nil, err
	}
	out.Years = ys.Years
	return out, nil
}
