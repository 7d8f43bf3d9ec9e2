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
	"observafloresta/internal/platform/net/middleware"
	asvc "observafloresta/internal/services/api/assistant/service"
	"observafloresta/internal/services/api/deforestation/repo"
	defsvc "observafloresta/internal/services/api/deforestation/service"
)

func newServer(t *testing.T, l *middleware.Limiter) *httptest.Server {
	t.Helper()
	m, err := repo.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), asvc.New(defsvc.New(m, lexicon.Default()), nil), l)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Error      string          `json:"error"`
	Data       json.RawMessage `json:"data"`
}

func post(t *testing.T, srv *httptest.Server, path, body string) (int, envelope) {
	t.Helper()
	res, err := srv.Client().Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer res.Body.Close()
	var env envelope
	if err := json.NewDecoder(res.Body).Decode(&env); err != nil {
		t.Fatalf("POST %s: decode envelope: %v", path, err)
	}
	return res.StatusCode, env
}

func TestAsk(t *testing.T) {
	t.Parallel()

	srv := newServer(t, nil)
	code, env := post(t, srv, "/ask", `{"text":"Qual o desmatamento no Pará em 2024?"}`)
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	var got struct {
		ID      string `json:"id"`
		Kind    string `json:"kind"`
		Variant string `json:"variant"`
		Text    string `json:"text"`
		Query   struct {
			State string `json:"state"`
			Year  int    `json:"year"`
		} `json:"query"`
		Data struct {
			StateCode string `json:"state_code"`
		} `json:"data"`
	}
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("decode answer: %v", err)
	}
	if got.Kind != "state" || got.Variant != "state" || got.Query.State != "PA" || got.Query.Year != 2024 {
		t.Fatalf("answer = %+v", got)
	}
	if got.ID == "" || got.Data.StateCode != "PA" {
		t.Fatalf("answer id/data missing: %+v", got)
	}
	if !strings.Contains(got.Text, "Desmatamento em Pará (2024)") {
		t.Fatalf("text = %q", got.Text)
	}
}

func TestAsk_NotActionableIsStillOK(t *testing.T) {
	t.Parallel()

	srv := newServer(t, nil)
	code, env := post(t, srv, "/ask", `{"text":"bananas"}`)
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	var got struct {
		Text  string `json:"text"`
		Error string `json:"error"`
	}
	_ = json.Unmarshal(env.Data, &got)
	if got.Error != "unrecognized_query" || !strings.HasPrefix(got.Text, "Não entendi sua pergunta") {
		t.Fatalf("answer = %+v", got)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	srv := newServer(t, nil)
	code, env := post(t, srv, "/parse", `{"text":"Compare Amazonas entre 2024 e 2020"}`)
	if code != stdhttp.StatusOK {
		t.Fatalf("status = %d (%s)", code, env.Error)
	}
	var got struct {
		Valid  bool   `json:"valid"`
		Reason string `json:"reason"`
		Query  struct {
			Kind      string `json:"kind"`
			YearStart int    `json:"year_start"`
			YearEnd   int    `json:"year_end"`
		} `json:"query"`
	}
	_ = json.Unmarshal(env.Data, &got)
	if got.Valid || got.Reason != "invalid_range" || got.Query.Kind != "compare" || got.Query.YearStart != 2024 || got.Query.YearEnd != 2020 {
		t.Fatalf("parse = %+v", got)
	}
}

func TestBadInput(t *testing.T) {
	t.Parallel()

	srv := newServer(t, nil)
	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"missing text", "/ask", `{}`, stdhttp.StatusBadRequest},
		{"unknown field", "/parse", `{"text":"x","extra":1}`, stdhttp.StatusBadRequest},
		{"broken json", "/ask", `{"text":`, stdhttp.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if code, env := post(t, srv, tc.path, tc.body); code != tc.want {
				t.Fatalf("status = %d (%s), want %d", code, env.Error, tc.want)
			}
		})
	}
}

func TestAsk_RateLimited(t *testing.T) {
	t.Parallel()

	srv := newServer(t, middleware.NewLimiter(middleware.RateOptions{Rate: 0.001, Burst: 1}))
	if code, _ := post(t, srv, "/ask", `{"text":"bananas"}`); code != stdhttp.StatusOK {
		t.Fatalf("first ask status = %d, want 200", code)
	}
	if code, _ := post(t, srv, "/ask", `{"text":"bananas"}`); code != stdhttp.StatusTooManyRequests {
		t.Fatalf("second ask status = %d, want 429", code)
	}
	// parse is not throttled
	if code, _ := post(t, srv, "/parse", `{"text":"bananas"}`); code != stdhttp.StatusOK {
		t.Fatalf("parse status = %d, want 200", code)
	}
}

func TestHelp(t *testing.T) {
	t.Parallel()

	srv := newServer(t, nil)
	res, err := srv.Client().Get(srv.URL + "/help")
	if err != nil {
		t.Fatalf("GET /help: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != stdhttp.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
}
