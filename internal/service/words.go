package service

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	metricsinfra "T9-Keypad/internal/infra/metrics"
	"T9-Keypad/internal/t9"
	"T9-Keypad/internal/vocabulary"
)

// StrictSuffix marks a request for exact matching when it ends the input.
const StrictSuffix = "0"

type MatchResult struct {
	Digits string
	Strict bool
	Words  []string
}

type WordService struct {
	index   *t9.Index
	maxLen  int
	logger  *slog.Logger
	metrics *metricsinfra.Metrics
	ready   atomic.Bool
}

func NewWordService(maxLen int, logger *slog.Logger, metrics *metricsinfra.Metrics) *WordService {
	return &WordService{maxLen: maxLen, logger: logger, metrics: metrics}
}

// Init loads the vocabulary from src and builds the index. It must complete
// before Match is reachable by concurrent callers.
func (s *WordService) Init(ctx context.Context, src vocabulary.Source) error {
	start := time.Now()
	words, err := vocabulary.Load(ctx, src)
	if err != nil {
		return err
	}
	s.InitWords(words)
	if s.logger != nil {
		st := s.index.Stats()
		s.logger.Info("t9 index built",
			slog.Int("words", st.Words),
			slog.Int("exact_keys", st.ExactKeys),
			slog.Int("prefix_keys", st.PrefixKeys),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
	}
	return nil
}

// InitWords builds the index from an already validated word list.
func (s *WordService) InitWords(words []string) {
	s.index = t9.Build(words)
	st := s.index.Stats()
	s.metrics.SetIndexSize(st.Words, st.ExactKeys, st.PrefixKeys)
	s.ready.Store(true)
}

func (s *WordService) Ready() bool {
	return s.ready.Load()
}

func (s *WordService) MaxInputLength() int {
	return s.maxLen
}

// Match validates raw keypad input and looks it up. A trailing StrictSuffix
// requests an exact match and is not part of the looked-up sequence.
func (s *WordService) Match(raw string) (MatchResult, error) {
	digits, strict, err := ParseDigits(raw, s.maxLen)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("t9 match rejected", slog.String("reason", err.Error()), slog.Int("length", len(raw)))
		}
		return MatchResult{}, err
	}

	words := s.index.Match(digits, strict)
	s.metrics.ObserveLookup(strict, len(words))
	if s.logger != nil {
		s.logger.Debug("t9 match",
			slog.String("digits", raw),
			slog.String("processed", digits),
			slog.Bool("strict", strict),
			slog.Int("count", len(words)),
		)
	}
	return MatchResult{Digits: raw, Strict: strict, Words: words}, nil
}

// ParseDigits splits raw into the sequence to look up and the strict flag.
func ParseDigits(raw string, maxLen int) (digits string, strict bool, err error) {
	if raw == "" {
		return "", false, ErrDigitsRequired
	}
	if maxLen > 0 && len(raw) > maxLen {
		return "", false, ErrInputTooLong
	}
	strict = strings.HasSuffix(raw, StrictSuffix)
	digits = strings.TrimSuffix(raw, StrictSuffix)
	if digits == "" {
		return "", false, ErrDigitsRequired
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", false, ErrInvalidDigits
		}
	}
	return digits, strict, nil
}
