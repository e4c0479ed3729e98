//go:build e2e

package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"
)

type matchResponse struct {
	Digits   string   `json:"digits"`
	IsStrict bool     `json:"isStrict"`
	Words    []string `json:"words"`
}

func TestE2EMatchFlowAndMetrics(t *testing.T) {
	if os.Getenv("E2E") != "1" {
		t.Skip("set E2E=1 to run")
	}

	baseURL := getenv("E2E_BASE_URL", "http://localhost:8080")
	metricsURL := getenv("E2E_METRICS_URL", "http://localhost:9090")

	waitReady(t, baseURL)

	status, body := get(t, baseURL+"/api/words/match?digits="+url.QueryEscape("4663"), "e2e-prefix")
	if status != http.StatusOK {
		t.Fatalf("prefix status=%d body=%s", status, body)
	}
	var prefix matchResponse
	if err := json.Unmarshal(body, &prefix); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if prefix.IsStrict || prefix.Digits != "4663" || prefix.Words == nil {
		t.Fatalf("prefix=%+v", prefix)
	}

	status, body = get(t, baseURL+"/api/words/match?digits=46630", "e2e-strict")
	if status != http.StatusOK {
		t.Fatalf("strict status=%d body=%s", status, body)
	}
	var strict matchResponse
	if err := json.Unmarshal(body, &strict); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strict.IsStrict || len(strict.Words) > len(prefix.Words) {
		t.Fatalf("strict=%+v prefix=%+v", strict, prefix)
	}

	status, body = get(t, baseURL+"/api/words/match?digits=12a", "e2e-invalid")
	if status != http.StatusBadRequest || !strings.Contains(string(body), "Only digits are allowed in the input") {
		t.Fatalf("invalid status=%d body=%s", status, body)
	}

	status, _ = get(t, baseURL+"/api/words/match", "e2e-invalid")
	if status != http.StatusBadRequest {
		t.Fatalf("missing digits status=%d", status)
	}

	assertMetric(t, metricsURL, "http_requests_total")
	assertMetric(t, metricsURL, "http_request_duration_seconds_bucket")
	assertMetric(t, metricsURL, "t9_lookups_total")
	assertMetric(t, metricsURL, "t9_dictionary_words")
	assertMetric(t, metricsURL, "ratelimit_tracked_clients")
}

func TestE2ERateLimit(t *testing.T) {
	if os.Getenv("E2E") != "1" {
		t.Skip("set E2E=1 to run")
	}

	baseURL := getenv("E2E_BASE_URL", "http://localhost:8080")
	waitReady(t, baseURL)

	client := "e2e-burst-" + time.Now().Format("150405.000")
	for i := 0; i < 1000; i++ {
		status, body := get(t, baseURL+"/api/words/match?digits=2", client)
		if status == http.StatusTooManyRequests {
			if !strings.Contains(string(body), "Too many requests. Please try again later.") {
				t.Fatalf("unexpected 429 body: %s", body)
			}
			return
		}
		if status != http.StatusOK {
			t.Fatalf("request %d status=%d", i, status)
		}
	}
	t.Fatalf("expected rate limiting within 1000 requests")
}

func get(t *testing.T, url, client string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
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

func assertMetric(t *testing.T, metricsURL, metric string) {
	t.Helper()
	resp, err := http.Get(metricsURL + "/metrics")
	if err != nil {
		t.Fatalf("scrape: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), metric) {
		t.Fatalf("metric %s not exposed", metric)
	}
}

func waitReady(t *testing.T, baseURL string) {
	t.Helper()
	deadline := time.Now().Add(20 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/ready")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		if resp != nil {
			resp.Body.Close()
		}
		time.Sleep(200 * time.Millisecond)
	}
	t.Fatalf("service not ready")
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
