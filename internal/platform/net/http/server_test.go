package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"observafloresta/internal/platform/config"
	phttp "observafloresta/internal/platform/net/http"
)

func TestNewServer_Addr(t *testing.T) {
	cfg := config.New().Prefix("SRVTEST_")
	if got := phttp.NewServer(cfg).Addr(); got != ":4000" {
		t.Fatalf("default addr = %q", got)
	}
	t.Setenv("SRVTEST_PORT", ":12345")
	if got := phttp.NewServer(cfg).Addr(); got != ":12345" {
		t.Fatalf("addr = %q", got)
	}
}

func TestMountProfiler(t *testing.T) {
	r := phttp.NewServer(config.New().Prefix("SRVTEST_")).Router()
	phttp.MountProfiler(r, "/debug")

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d", path, rec.Code)
		}
	}
}

func TestServer_RunServesUntilCancel(t *testing.T) {
	t.Setenv("SRVTEST_PORT", "127.0.0.1:18473")
	srv := phttp.NewServer(config.New().Prefix("SRVTEST_"))
	srv.Router().Get("/health", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, ".") })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var body string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		res, err := http.Get("http://127.0.0.1:18473/health")
		if err == nil {
			b, _ := io.ReadAll(res.Body)
			_ = res.Body.Close()
			body = string(b)
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if body != "." {
		t.Fatalf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestServer_RunListenError(t *testing.T) {
	t.Setenv("SRVTEST_PORT", "127.0.0.1:abc")
	if err := phttp.NewServer(config.New().Prefix("SRVTEST_")).Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}
