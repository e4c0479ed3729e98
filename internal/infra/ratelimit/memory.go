package ratelimit

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"T9-Keypad/internal/config"
	domain "T9-Keypad/internal/domain/ratelimit"
)

var (
	ErrInvalidLimit  = errors.New("requests per window must be positive")
	ErrInvalidWindow = errors.New("window size must be positive")
)

// SlidingWindow admits at most limit requests per client within any trailing
// window. Every call sweeps expired timestamps of all clients, so memory is
// bounded by the clients active within the last window.
type SlidingWindow struct {
	mu      sync.Mutex
	enabled bool
	limit   int
	window  time.Duration
	clients map[string][]time.Time
	now     func() time.Time
	logger  *slog.Logger
}

var _ domain.Gate = (*SlidingWindow)(nil)

type Option func(*SlidingWindow)

func WithClock(now func() time.Time) Option {
	return func(l *SlidingWindow) { l.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(l *SlidingWindow) { l.logger = logger }
}

func NewSlidingWindow(cfg config.RateLimitConfig, opts ...Option) (*SlidingWindow, error) {
	l := &SlidingWindow{
		enabled: cfg.Enabled,
		limit:   cfg.RequestsPerWindow,
		window:  time.Duration(cfg.WindowSizeInSeconds) * time.Second,
		clients: make(map[string][]time.Time),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.enabled {
		if l.limit <= 0 {
			return nil, ErrInvalidLimit
		}
		if l.window <= 0 {
			return nil, ErrInvalidWindow
		}
	}
	return l, nil
}

func (l *SlidingWindow) IsLimited(key string) bool {
	return l.Check(key).Limited
}

// Check records a request for key unless the key is over its budget. When
// limited, RetryAfter is the time until the oldest request leaves the window.
func (l *SlidingWindow) Check(key string) domain.Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || key == "" {
		return domain.Decision{Tracked: len(l.clients)}
	}

	now := l.now()
	l.sweep(now)

	log := l.clients[key]
	if len(log) >= l.limit {
		retryAfter := log[0].Add(l.window).Sub(now)
		if retryAfter <= 0 {
			retryAfter = time.Second
		}
		if l.logger != nil {
			l.logger.Debug("client over budget", slog.String("client", key), slog.Int("limit", l.limit))
		}
		return domain.Decision{Limited: true, RetryAfter: retryAfter, Tracked: len(l.clients)}
	}

	l.clients[key] = append(log, now)
	return domain.Decision{Tracked: len(l.clients)}
}

// Tracked returns the number of clients with requests inside the window.
func (l *SlidingWindow) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(l.now())
	return len(l.clients)
}

// sweep must be called with mu held. Logs are in insertion order, so expired
// entries always form a prefix.
func (l *SlidingWindow) sweep(now time.Time) {
	cutoff := now.Add(-l.window)
	for k, log := range l.clients {
		i := 0
		for i < len(log) && log[i].Before(cutoff) {
			i++
		}
		switch {
		case i == len(log):
			delete(l.clients, k)
		case i > 0:
			l.clients[k] = log[i:]
		}
	}
}
