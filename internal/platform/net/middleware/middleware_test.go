package middleware

import (
	"bytes"
	"compress/flate"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"observafloresta/internal/platform/logger"
	kit "observafloresta/internal/platform/testkit"

	chimw "github.com/go-chi/chi/v5/middleware"
)

var logs bytes.Buffer

// one root logger for the package, tests that read logs share it
func init() {
	logger.Init(logger.Options{Level: "debug", Writer: &logs})
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAnnotate(t *testing.T) {
	kit.Serial(t)
	logs.Reset()
	h := RequestID(Annotate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if chimw.GetReqID(r.Context()) == "" {
			t.Error("no request id")
		}
		logger.C(r.Context()).Info().Msg("inside")
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:5555"
	if rec := serve(h, req); rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	kit.MustContain(t, logs.String(), `"client_ip":"198.51.100.4"`)
	kit.MustContain(t, logs.String(), `"request_id":`)
}

func TestAccessLog(t *testing.T) {
	kit.Serial(t)
	cases := []struct {
		name   string
		opt    AccessLogOptions
		status int
		level  string
	}{
		{"ok", AccessLogOptions{}, http.StatusCreated, `"level":"info"`},
		{"slow", AccessLogOptions{Slow: time.Nanosecond}, http.StatusOK, `"level":"warn"`},
		{"server error", AccessLogOptions{Slow: time.Nanosecond}, http.StatusBadGateway, `"level":"error"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs.Reset()
			h := AccessLog(tc.opt)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, "hi")
				_, _ = io.WriteString(w, "there")
			}))
			rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/meta/health", nil))
			if rec.Code != tc.status || rec.Body.String() != "hithere" {
				t.Fatalf("response = %d %q", rec.Code, rec.Body.String())
			}
			out := logs.String()
			kit.MustContain(t, out, tc.level)
			kit.MustContain(t, out, `"bytes":7`)
			kit.MustContain(t, out, `"path":"/api/v1/meta/health"`)
		})
	}
}

func TestAccessLog_ImplicitOK(t *testing.T) {
	kit.Serial(t)
	logs.Reset()
	h := AccessLog(AccessLogOptions{})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	kit.MustContain(t, logs.String(), `"status":200`)
}

func TestRecoverJSON(t *testing.T) {
	kit.Serial(t)
	logs.Reset()
	h := RequestID(RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("lexicon not loaded")
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := serve(h, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") != "req-42" {
		t.Fatalf("request id header = %q", rec.Header().Get("X-Request-ID"))
	}
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env["request_id"] != "req-42" || env["status"] != "Internal Server Error" {
		t.Fatalf("envelope = %v", env)
	}
	kit.MustContain(t, logs.String(), "lexicon not loaded")
}

func TestRecoverJSON_AbortPassesThrough(t *testing.T) {
	h := RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic(http.ErrAbortHandler) }))
	msg := kit.MustPanic(t, func() { serve(h, httptest.NewRequest(http.MethodGet, "/", nil)) })
	kit.MustContain(t, msg, "abort Handler")
}

func TestCompress(t *testing.T) {
	h := Compress(flate.BestSpeed)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, strings.Repeat(`{"uf":"PA"}`, 400))
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	if enc := serve(h, req).Header().Get("Content-Encoding"); enc != "gzip" {
		t.Fatalf("Content-Encoding = %q", enc)
	}
}

func TestCORS_Defaults(t *testing.T) {
	h := CORS(CORSOptions{AllowedOrigins: []string{"https://floresta.example"}})(http.NotFoundHandler())
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://floresta.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := serve(h, req)
	if rec.Header().Get("Access-Control-Allow-Methods") != http.MethodPost {
		t.Fatalf("allow methods = %q", rec.Header().Get("Access-Control-Allow-Methods"))
	}
	if rec.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatal("allow headers missing")
	}
}
