package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveLookup(t *testing.T) {
	m := New()

	m.ObserveLookup(true, 3)
	m.ObserveLookup(true, 0)
	m.ObserveLookup(false, 0)
	m.ObserveLookup(false, 0)

	if got := testutil.ToFloat64(m.Lookups.WithLabelValues("strict", "hit")); got != 1 {
		t.Fatalf("strict hit=%v", got)
	}
	if got := testutil.ToFloat64(m.Lookups.WithLabelValues("prefix", "miss")); got != 2 {
		t.Fatalf("prefix miss=%v", got)
	}
}

func TestSetIndexSize(t *testing.T) {
	m := New()
	m.SetIndexSize(10, 7, 25)

	if got := testutil.ToFloat64(m.DictionaryWords); got != 10 {
		t.Fatalf("words=%v", got)
	}
	if got := testutil.ToFloat64(m.IndexKeys.WithLabelValues("prefix")); got != 25 {
		t.Fatalf("prefix keys=%v", got)
	}
}

func TestObserveRateLimit(t *testing.T) {
	m := New()
	m.ObserveRateLimit(false, 2)
	m.ObserveRateLimit(true, 3)

	if got := testutil.ToFloat64(m.RateLimitRejected); got != 1 {
		t.Fatalf("rejected=%v", got)
	}
	if got := testutil.ToFloat64(m.RateLimitTracked); got != 3 {
		t.Fatalf("tracked=%v", got)
	}
}

func TestNilMetricsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveLookup(true, 1)
	m.SetIndexSize(1, 1, 1)
	m.ObserveRateLimit(true, 1)
	m.IncDictionaryLoadError("file")
}
