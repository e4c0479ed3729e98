// Package vocabulary loads and validates the word list the T9 index is built from.
package vocabulary

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	MinWordLength = 2
	MaxWordLength = 45
)

var (
	ErrNotFound = errors.New("dictionary not found")
	ErrEmpty    = errors.New("dictionary has no valid words")
)

// Source yields raw, unvalidated words.
type Source interface {
	Words(ctx context.Context) ([]string, error)
}

// Load fetches words from src and normalizes them.
func Load(ctx context.Context, src Source) ([]string, error) {
	raw, err := src.Words(ctx)
	if err != nil {
		return nil, err
	}
	words := Normalize(raw)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w (%d raw entries)", ErrEmpty, len(raw))
	}
	return words, nil
}

// Normalize trims and lowercases each entry and keeps only words of
// MinWordLength..MaxWordLength ASCII letters. Input order is preserved.
func Normalize(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, w := range raw {
		w = strings.ToLower(strings.TrimSpace(w))
		if Valid(w) {
			out = append(out, w)
		}
	}
	return out
}

// Valid reports whether w is an acceptable lowercase vocabulary word.
func Valid(w string) bool {
	if len(w) < MinWordLength || len(w) > MaxWordLength {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}
