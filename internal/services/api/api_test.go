package api

import (
	"encoding/json"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"observafloresta/internal/platform/config"
	phttp "observafloresta/internal/platform/net/http"
)

func TestMount_MemoryBackend(t *testing.T) {
	t.Setenv("APITEST_DATA_BACKEND", "memory")
	t.Setenv("APITEST_ASK_RATE", "0")

	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), Options{Config: config.New().Prefix("APITEST_")})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	tests := []struct {
		method string
		path   string
		body   string
		want   string
	}{
		{stdhttp.MethodGet, "/api/v1/meta/ready", "", `"status":"ok"`},
		{stdhttp.MethodGet, "/api/v1/meta/dataset", "", `"backend":"memory"`},
		{stdhttp.MethodGet, "/api/v1/deforestation/ranking/2024?limit=1", "", `"state_code":"PA"`},
		{stdhttp.MethodPost, "/api/v1/assistant/ask", `{"text":"Desmatamento por bioma em 2024"}`, `"variant":"biomes"`},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			req, _ := stdhttp.NewRequest(tc.method, srv.URL+tc.path, strings.NewReader(tc.body))
			if tc.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			res, err := srv.Client().Do(req)
			if err != nil {
				t.Fatalf("%s %s: %v", tc.method, tc.path, err)
			}
			defer res.Body.Close()
			var raw json.RawMessage
			if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if res.StatusCode != stdhttp.StatusOK {
				t.Fatalf("%s %s = %d %s", tc.method, tc.path, res.StatusCode, raw)
			}
			if !strings.Contains(string(raw), tc.want) {
				t.Fatalf("%s %s body %s, want %s", tc.method, tc.path, raw, tc.want)
			}
		})
	}
}
