package metrics

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	Registry            *prometheus.Registry
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
	HTTPInFlight        prometheus.Gauge
	HTTPErrors          *prometheus.CounterVec
	Lookups             *prometheus.CounterVec
	DictionaryWords     prometheus.Gauge
	IndexKeys           *prometheus.GaugeVec
	RateLimitRejected   prometheus.Counter
	RateLimitTracked    prometheus.Gauge
	DictionaryLoadError *prometheus.CounterVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "code"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_in_flight_requests",
				Help: "Number of in-flight HTTP requests.",
			},
		),
		HTTPErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_errors_total",
				Help: "Total number of HTTP 5xx errors.",
			},
			[]string{"method", "path", "code"},
		),
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "t9_lookups_total",
				Help: "Total number of T9 lookups by mode and outcome.",
			},
			[]string{"mode", "result"},
		),
		DictionaryWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "t9_dictionary_words",
				Help: "Number of words in the loaded index.",
			},
		),
		IndexKeys: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "t9_index_keys",
				Help: "Number of digit-sequence keys per index.",
			},
			[]string{"index"},
		),
		RateLimitRejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "ratelimit_rejected_total",
				Help: "Total number of requests rejected by the rate limiter.",
			},
		),
		RateLimitTracked: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "ratelimit_tracked_clients",
				Help: "Number of client identities currently tracked by the rate limiter.",
			},
		),
		DictionaryLoadError: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "t9_dictionary_load_errors_total",
				Help: "Total number of failed dictionary loads by source.",
			},
			[]string{"source"},
		),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.HTTPInFlight,
		m.HTTPErrors,
		m.Lookups,
		m.DictionaryWords,
		m.IndexKeys,
		m.RateLimitRejected,
		m.RateLimitTracked,
		m.DictionaryLoadError,
	)

	return m
}

func (m *Metrics) ObserveLookup(strict bool, hits int) {
	if m == nil {
		return
	}
	mode := "prefix"
	if strict {
		mode = "strict"
	}
	result := "hit"
	if hits == 0 {
		result = "miss"
	}
	m.Lookups.WithLabelValues(mode, result).Inc()
}

func (m *Metrics) SetIndexSize(words, exactKeys, prefixKeys int) {
	if m == nil {
		return
	}
	m.DictionaryWords.Set(float64(words))
	m.IndexKeys.WithLabelValues("exact").Set(float64(exactKeys))
	m.IndexKeys.WithLabelValues("prefix").Set(float64(prefixKeys))
}

func (m *Metrics) ObserveRateLimit(limited bool, tracked int) {
	if m == nil {
		return
	}
	if limited {
		m.RateLimitRejected.Inc()
	}
	m.RateLimitTracked.Set(float64(tracked))
}

func (m *Metrics) IncDictionaryLoadError(source string) {
	if m == nil {
		return
	}
	m.DictionaryLoadError.WithLabelValues(source).Inc()
}
