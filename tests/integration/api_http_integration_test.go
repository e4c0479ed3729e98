//go:build integration

package integration

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"T9-Keypad/internal/api"
	metricsinfra "T9-Keypad/internal/infra/metrics"
	"T9-Keypad/internal/infra/ratelimit"
	"T9-Keypad/internal/service"
)

func TestMatchOverHTTPWithRateLimit(t *testing.T) {
	if !integrationEnabled() {
		t.Skip("set INTEGRATION=1 to run")
	}

	cfg := baseConfig()
	cfg.RateLimit.RequestsPerWindow = 3
	cfg.Static.Dir = t.TempDir()

	svc := service.NewWordService(cfg.T9.MaxInputLength, nilLogger(), nil)
	svc.InitWords([]string{"home", "gone", "good", "gap"})
	gate, err := ratelimit.NewSlidingWindow(cfg.RateLimit)
	if err != nil {
		t.Fatalf("gate: %v", err)
	}

	router := api.New(cfg, nilLogger(), svc, gate, metricsinfra.New())
	srv := httptest.NewServer(router)
	defer srv.Close()

	get := func(client string) (int, []byte) {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/words/match?digits=4663", nil)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		req.Header.Set("X-Forwarded-For", client)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("do: %v", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, body
	}

	for i := 0; i < 3; i++ {
		status, body := get("203.0.113.1")
		if status != http.StatusOK {
			t.Fatalf("request %d status=%d body=%s", i, status, body)
		}
		var resp api.MatchResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Words) != 3 || resp.IsStrict {
			t.Fatalf("resp=%+v", resp)
		}
	}

	if status, _ := get("203.0.113.1"); status != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", status)
	}
	if status, _ := get("203.0.113.2"); status != http.StatusOK {
		t.Fatalf("expected other client admitted, got %d", status)
	}
	if gate.Tracked() != 2 {
		t.Fatalf("tracked=%d", gate.Tracked())
	}
}
