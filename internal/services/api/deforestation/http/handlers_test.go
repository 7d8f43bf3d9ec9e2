package http

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"observafloresta/internal/core/lexicon"
	phttp "observafloresta/internal/platform/net/http"
	"observafloresta/internal/services/api/deforestation/repo"
	svc "observafloresta/internal/services/api/deforestation/service"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	m, err := repo.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), svc.New(m, lexicon.Default()))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func call(t *testing.T, srv *httptest.Server, method, path, body string) (int, envelope) {
	t.Helper()
	var rdr *strings.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	} else {
		rdr = strings.NewReader("")
	}
	req, _ := stdhttp.NewRequest(method, srv.URL+path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer res.Body.Close()
	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		t.Fatalf("%s %s: decode envelope: %v", method, path, err)
	}
	return res.StatusCode, env
}

func TestGetState(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	code, env := call(t, srv, stdhttp.MethodGet, "/state/Par%C3%A1?year=2024", "")
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	var got struct {
		StateCode string  `json:"state_code"`
		AreaKm2   float64 `json:"area_km2"`
	}
	_ = json.Unmarshal(env.Data, &got)
	if got.StateCode != "PA" || got.AreaKm2 != 3245.8 {
		t.Fatalf("data = %+v", got)
	}
}

func TestPostState(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	code, env := call(t, srv, stdhttp.MethodPost, "/state", `{"state":"AM","year":2020}`)
	if code != stdhttp.StatusOK || !strings.Contains(string(env.Data), `"area_km2":1454.1`) {
		t.Fatalf("status = %d data = %s", code, env.Data)
	}
}

func TestCompareAndRanking(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	cases := []struct {
		method, path, body string
		want               string
	}{
		{stdhttp.MethodGet, "/compare/Amazonas?year_start=2020&year_end=2024", "", `"trend":"stable"`},
		{stdhttp.MethodPost, "/compare", `{"state_or_biome":"Cerrado","year_start":2020,"year_end":2024}`, `"state_code":"CER"`},
		{stdhttp.MethodGet, "/ranking/2024?order=asc&limit=3", "", `"state_code":"DF"`},
		{stdhttp.MethodPost, "/ranking", `{"year":2024,"biome":"Pantanal"}`, `"biome_filter":"Pantanal"`},
		{stdhttp.MethodGet, "/biomes/compare/2024", "", `"num_states":17`},
		{stdhttp.MethodGet, "/states?biome=Pampa", "", `"total":1`},
		{stdhttp.MethodGet, "/years", "", `"years":[2020,2021,2022,2023,2024]`},
		{stdhttp.MethodGet, "/biomes", "", `"total":6`},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			code, env := call(t, srv, tc.method, tc.path, tc.body)
			if code != stdhttp.StatusOK {
				t.Fatalf("status = %d (%s)", code, env.Error)
			}
			if !strings.Contains(string(env.Data), tc.want) {
				t.Fatalf("data %s does not contain %s", env.Data, tc.want)
			}
		})
	}
}

func TestErrorStatuses(t *testing.T) {
	t.Parallel()

	srv := newServer(t)
	cases := []struct {
		method, path, body string
		status             int
		msg                string
	}{
		{stdhttp.MethodGet, "/state/Atlantida", "", stdhttp.StatusNotFound, "não encontrado"},
		{stdhttp.MethodGet, "/state/PA?year=abc", "", stdhttp.StatusUnprocessableEntity, "integer"},
		{stdhttp.MethodGet, "/compare/PA?year_start=2024&year_end=2020", "", stdhttp.StatusUnprocessableEntity, "Ano inicial deve ser menor"},
		{stdhttp.MethodGet, "/compare/PA?year_start=2020", "", stdhttp.StatusBadRequest, "year_end"},
		{stdhttp.MethodGet, "/ranking/2024?order=up", "", stdhttp.StatusBadRequest, "order"},
		{stdhttp.MethodGet, "/ranking/20x4", "", stdhttp.StatusUnprocessableEntity, "year"},
		{stdhttp.MethodPost, "/ranking", `{"year":2024,"limit":99}`, stdhttp.StatusBadRequest, "limit"},
		{stdhttp.MethodPost, "/state", `{"state":"PA","bogus":1}`, stdhttp.StatusBadRequest, "invalid JSON"},
		{stdhttp.MethodGet, "/biomes/compare/2019", "", stdhttp.StatusNotFound, "2019"},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			code, env := call(t, srv, tc.method, tc.path, tc.body)
			if code != tc.status {
				t.Fatalf("status = %d, want %d (%s)", code, tc.status, env.Error)
			}
			if !strings.Contains(env.Error, tc.msg) {
				t.Fatalf("error %q does not mention %q", env.Error, tc.msg)
			}
		})
	}
}
