package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dshills/cppscore/internal/catalog"
	"github.com/dshills/cppscore/internal/config"
	"github.com/dshills/cppscore/internal/review"
	"github.com/dshills/cppscore/internal/simulate"
)

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	rules, err := catalog.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	s := New(review.NewEngine(rules), cfg, log.New(io.Discard, "", 0))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAnalyze(t *testing.T) {
	ts := newTestServer(t, config.Default())

	resp := post(t, ts.URL+"/api/analyze", `{"code":"new int; new int;","version":"c++17","compiler":"gcc"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var res review.Result
	decodeBody(t, resp, &res)
	if res.Score != 77 {
		t.Errorf("score = %d, want 77", res.Score)
	}
	if len(res.Issues) != 2 || res.Issues[0].Severity != review.SeverityHigh {
		t.Errorf("unexpected issues: %+v", res.Issues)
	}
}

func TestAnalyzeDefaults(t *testing.T) {
	ts := newTestServer(t, config.Default())

	// c++17 default enables the NULL rule.
	resp := post(t, ts.URL+"/api/analyze", `{"code":"int* q = NULL;"}`)
	var res review.Result
	decodeBody(t, resp, &res)
	if res.Score != 97 {
		t.Errorf("score = %d, want 97", res.Score)
	}

	cfg := config.Default()
	cfg.Std = "c++98"
	ts98 := newTestServer(t, cfg)
	resp = post(t, ts98.URL+"/api/analyze", `{"code":"int* q = NULL;"}`)
	decodeBody(t, resp, &res)
	if res.Score != 99 {
		t.Errorf("score with c++98 default = %d, want 99", res.Score)
	}
}

func TestAnalyzeEmptyCode(t *testing.T) {
	ts := newTestServer(t, config.Default())
	resp := post(t, ts.URL+"/api/analyze", `{"code":""}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var res review.Result
	decodeBody(t, resp, &res)
	if len(res.Issues) != 1 || res.Issues[0].Severity != review.SeverityGood || res.Score != 99 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestAnalyzeBadRequests(t *testing.T) {
	ts := newTestServer(t, config.Default())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing code", `{"version":"c++17"}`, "Missing code"},
		{"malformed", `{"code":`, "Invalid JSON: unexpected EOF"},
		{"wrong field type", `{"code":"int x;","version":17}`, "Invalid JSON: json: cannot unmarshal number"},
		{"code not a string", `{"code":42}`, "Invalid JSON: json: cannot unmarshal number"},
		{"empty body", ``, "Missing code"},
		{"null code", `{"code":null}`, "Missing code"},
		{"unknown version", `{"code":"int x;","version":"c++26"}`, "Unsupported version: c++26"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/api/analyze", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}
			var e errorResponse
			decodeBody(t, resp, &e)
			if !strings.HasPrefix(e.Error, tt.want) {
				t.Errorf("error = %q, want prefix %q", e.Error, tt.want)
			}
		})
	}
}

func TestAnalyzeBodyTooLarge(t *testing.T) {
	ts := newTestServer(t, config.Default())
	body := `{"code":"` + strings.Repeat("a", maxBodyBytes) + `"}`

	for _, path := range []string{"/api/analyze", "/api/simulate"} {
		resp := post(t, ts.URL+path, body)
		if resp.StatusCode != http.StatusRequestEntityTooLarge {
			t.Fatalf("%s: status = %d, want 413", path, resp.StatusCode)
		}
		var e errorResponse
		decodeBody(t, resp, &e)
		if !strings.Contains(e.Error, "exceeds") {
			t.Errorf("%s: error = %q", path, e.Error)
		}
	}
}

func TestAnalyzeWrongMethod(t *testing.T) {
	ts := newTestServer(t, config.Default())
	resp, err := http.Get(ts.URL + "/api/analyze")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestSimulate(t *testing.T) {
	ts := newTestServer(t, config.Default())
	resp := post(t, ts.URL+"/api/simulate", `{"code":"std::cout << \"hi\" << std::endl;"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var out simulateResponse
	decodeBody(t, resp, &out)
	if out.Output != "hi\n" {
		t.Errorf("output = %q", out.Output)
	}

	resp = post(t, ts.URL+"/api/simulate", `{}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	resp = post(t, ts.URL+"/api/simulate", `{"code":""}`)
	decodeBody(t, resp, &out)
	if out.Output != simulate.NoOutput {
		t.Errorf("output = %q", out.Output)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, config.Default())
	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var body map[string]string
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestCORS(t *testing.T) {
	cfg := config.Default()
	cfg.Server.AllowOrigin = "https://example.test"
	ts := newTestServer(t, cfg)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/analyze", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://example.test" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestStaticIndex(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>cppscore</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Server.StaticDir = dir
	ts := newTestServer(t, cfg)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !bytes.Contains(body, []byte("<h1>cppscore</h1>")) {
		t.Errorf("unexpected body: %s", body)
	}
}

func TestNoStaticDir(t *testing.T) {
	ts := newTestServer(t, config.Default())
	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestListenAndServeShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := l.Addr().String()
	l.Close()

	rules, err := catalog.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Server.Addr = addr
	s := New(review.NewEngine(rules), cfg, log.New(io.Discard, "", 0))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/health")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("ListenAndServe returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
