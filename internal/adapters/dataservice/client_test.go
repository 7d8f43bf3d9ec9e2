package dataservice

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"observafloresta/internal/core/lexicon"
	"observafloresta/internal/modkit"
	"observafloresta/internal/modkit/httpkit"
	perr "observafloresta/internal/platform/errors"
	phttp "observafloresta/internal/platform/net/http"
	kit "observafloresta/internal/platform/testkit"
	defmod "observafloresta/internal/services/api/deforestation/module"
	"observafloresta/internal/services/api/deforestation/domain"
	"observafloresta/internal/services/api/deforestation/repo"
	defsvc "observafloresta/internal/services/api/deforestation/service"
)

// upstream serves the real deforestation routes and counts requests
func upstream(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	m := defmod.New(modkit.Deps{}, defmod.Options{Backend: defmod.BackendMemory})
	mux := chi.NewRouter()
	httpkit.MountAPIV1(phttp.AdaptChi(mux), httpkit.CommonStack(), func(api httpkit.Router) {
		m.MountRoutes(api)
	})
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func local(t *testing.T) domain.ServicePort {
	t.Helper()
	r, err := repo.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	return defsvc.New(r, lexicon.Default())
}

func newClient(t *testing.T, base string, o Options) *Client {
	t.Helper()
	o.BaseURL = base
	c, err := New(o)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.sleep = func(context.Context, time.Duration) error { return nil }
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	if _, err := New(Options{BaseURL: "  "}); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("New(empty) err = %v", err)
	}
}

func TestClient_MatchesInProcessService(t *testing.T) {
	srv, _ := upstream(t)
	c := newClient(t, srv.URL+"/", Options{CacheTTL: -1})
	want := local(t)
	ctx := context.Background()

	check := func(name string, got, exp any, gerr, eerr error) {
		t.Helper()
		if gerr != nil || eerr != nil {
			t.Fatalf("%s: remote err %v, local err %v", name, gerr, eerr)
		}
		if !reflect.DeepEqual(got, exp) {
			t.Fatalf("%s mismatch\n got %+v\nwant %+v", name, got, exp)
		}
	}

	g1, e1 := c.StateData(ctx, domain.StateInput{State: "PA", Year: 2024})
	w1, x1 := want.StateData(ctx, domain.StateInput{State: "PA", Year: 2024})
	check("StateData", g1, w1, e1, x1)

	g2, e2 := c.Compare(ctx, domain.CompareInput{Target: "Amazonas", YearStart: 2020, YearEnd: 2024})
	w2, x2 := want.Compare(ctx, domain.CompareInput{Target: "Amazonas", YearStart: 2020, YearEnd: 2024})
	check("Compare", g2, w2, e2, x2)

	in := domain.RankingInput{Year: 2023, Order: "asc", Limit: 3}
	g3, e3 := c.Ranking(ctx, in)
	w3, x3 := want.Ranking(ctx, in)
	check("Ranking", g3, w3, e3, x3)

	g4, e4 := c.CompareBiomes(ctx, domain.BiomesInput{Year: 2024})
	w4, x4 := want.CompareBiomes(ctx, domain.BiomesInput{Year: 2024})
	check("CompareBiomes", g4, w4, e4, x4)

	g5, e5 := c.States(ctx, domain.StatesInput{Biome: "Pampa"})
	w5, x5 := want.States(ctx, domain.StatesInput{Biome: "Pampa"})
	check("States", g5, w5, e5, x5)

	g6, e6 := c.Years(ctx)
	w6, x6 := want.Years(ctx)
	check("Years", g6, w6, e6, x6)

	g7, e7 := c.Biomes(ctx)
	w7, x7 := want.Biomes(ctx)
	check("Biomes", g7, w7, e7, x7)
}

func TestClient_MapsRemoteErrors(t *testing.T) {
	srv, _ := upstream(t)
	c := newClient(t, srv.URL, Options{CacheTTL: -1})
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		code perr.ErrorCode
		msg  string
	}{
		{"unknown state", func() error {
			_, err := c.StateData(ctx, domain.StateInput{State: "Atlântida", Year: 2024})
			return err
		}, perr.ErrorCodeNotFound, "não encontrado"},
		{"reversed range", func() error {
			_, err := c.Compare(ctx, domain.CompareInput{Target: "Pará", YearStart: 2024, YearEnd: 2020})
			return err
		}, perr.ErrorCodeInvalidArgument, "Ano inicial"},
		{"unknown biome", func() error {
			_, err := c.States(ctx, domain.StatesInput{Biome: "Tundra"})
			return err
		}, perr.ErrorCodeNotFound, "Tundra"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if perr.CodeOf(err) != tc.code {
				t.Fatalf("code = %v, want %v (err %v)", perr.CodeOf(err), tc.code, err)
			}
			kit.MustContain(t, err.Error(), tc.msg)
		})
	}
}

func TestClient_CachesSuccessOnly(t *testing.T) {
	srv, hits := upstream(t)
	c := newClient(t, srv.URL, Options{CacheTTL: time.Minute})
	ctx := context.Background()

	for range 3 {
		if _, err := c.Years(ctx); err != nil {
			t.Fatalf("Years: %v", err)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Fatalf("upstream hits after cached Years = %d, want 1", n)
	}

	for range 2 {
		if _, err := c.StateData(ctx, domain.StateInput{State: "XX"}); err == nil {
			t.Fatal("expected not found")
		}
	}
	if n := hits.Load(); n != 3 {
		t.Fatalf("upstream hits after failures = %d, want 3", n)
	}

	c.Purge()
	if _, err := c.Years(ctx); err != nil {
		t.Fatalf("Years: %v", err)
	}
	if n := hits.Load(); n != 4 {
		t.Fatalf("upstream hits after purge = %d, want 4", n)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.URL.Path != "/api/v1/deforestation/years" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status_code":200,"status":"OK","data":{"years":[2023,2024],"total":2}}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, Options{CacheTTL: -1})
	var slept []time.Duration
	c.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}

	got, err := c.Years(context.Background())
	if err != nil {
		t.Fatalf("Years: %v", err)
	}
	if got.Total != 2 || !reflect.DeepEqual(got.Years, []int{2023, 2024}) {
		t.Fatalf("Years = %+v", got)
	}
	if hits.Load() != 2 || len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("hits = %d slept = %v", hits.Load(), slept)
	}
}

func TestClient_GivesUpAfterRetries(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, Options{MaxRetries: 2, CacheTTL: -1})
	_, err := c.Biomes(context.Background())
	if perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("code = %v (err %v)", perr.CodeOf(err), err)
	}
	if hits.Load() != 3 {
		t.Fatalf("hits = %d, want 3", hits.Load())
	}
}

func TestClient_NonEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, Options{MaxRetries: -1, CacheTTL: -1})
	_, err := c.Years(context.Background())
	if perr.CodeOf(err) != perr.ErrorCodeUnknown {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
	kit.MustContain(t, err.Error(), "Internal Server Error")
}

func TestClient_ThrottleHonoursContext(t *testing.T) {
	srv, _ := upstream(t)
	c := newClient(t, srv.URL, Options{Rate: 0.001, Burst: 1, CacheTTL: -1})

	if _, err := c.Years(context.Background()); err != nil {
		t.Fatalf("first Years: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := c.Years(ctx); perr.CodeOf(err) != perr.ErrorCodeUnavailable {
		t.Fatalf("throttled Years err = %v", err)
	}
}

func TestCodeFromStatus(t *testing.T) {
	tests := []struct {
		status int
		want   perr.ErrorCode
		back   int // status the code maps back to, 0 skips the check
	}{
		{http.StatusNotFound, perr.ErrorCodeNotFound, http.StatusNotFound},
		{http.StatusUnprocessableEntity, perr.ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{http.StatusBadRequest, perr.ErrorCodeValidation, http.StatusBadRequest},
		{http.StatusTooManyRequests, perr.ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{http.StatusServiceUnavailable, perr.ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{http.StatusBadGateway, perr.ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{http.StatusGatewayTimeout, perr.ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{http.StatusTeapot, perr.ErrorCodeUnknown, 0},
	}
	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			if got := codeFromStatus(tc.status); got != tc.want {
				t.Fatalf("codeFromStatus(%d) = %v, want %v", tc.status, got, tc.want)
			}
			if tc.back != 0 {
				if got := perr.HTTPStatusCode(tc.want); got != tc.back {
					t.Fatalf("HTTPStatusCode(%v) = %d, want %d", tc.want, got, tc.back)
				}
			}
		})
	}
}
