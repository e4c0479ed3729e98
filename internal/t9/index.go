package t9

import (
	"slices"
	"strings"
)

// Index holds the exact and prefix lookup tables. It is immutable once
// built and safe for concurrent readers without locking.
type Index struct {
	exact  map[string][]string
	prefix map[string][]string
	words  int
}

// Stats describes the size of an Index.
type Stats struct {
	Words      int
	ExactKeys  int
	PrefixKeys int
}

// Build indexes words by digit sequence. Every word lands in the bucket of its
// full sequence and in one bucket per prefix of that sequence. Words with an
// empty sequence are skipped. The input slice is not modified.
func Build(words []string) *Index {
	idx := &Index{
		exact:  make(map[string][]string),
		prefix: make(map[string][]string),
	}

	for _, w := range words {
		seq := Sequence(w)
		if seq == "" {
			continue
		}
		idx.words++
		idx.exact[seq] = append(idx.exact[seq], w)
		for i := 1; i <= len(seq); i++ {
			p := seq[:i]
			idx.prefix[p] = append(idx.prefix[p], w)
		}
	}

	for k, b := range idx.exact {
		idx.exact[k] = sortBucket(b)
	}
	for k, b := range idx.prefix {
		idx.prefix[k] = sortBucket(b)
	}
	return idx
}

// Match returns the words whose digit sequence equals digits (strict) or
// starts with digits. A miss yields an empty, non-nil slice.
func (idx *Index) Match(digits string, strict bool) []string {
	if idx == nil || digits == "" {
		return []string{}
	}
	table := idx.prefix
	if strict {
		table = idx.exact
	}
	bucket, ok := table[digits]
	if !ok {
		return []string{}
	}
	return slices.Clone(bucket)
}

// Stats reports the number of indexed words and distinct keys per table.
func (idx *Index) Stats() Stats {
	if idx == nil {
		return Stats{}
	}
	return Stats{
		Words:      idx.words,
		ExactKeys:  len(idx.exact),
		PrefixKeys: len(idx.prefix),
	}
}

// sortBucket orders words case-insensitively, falling back to byte order so
// the result does not depend on input order, and drops duplicates.
func sortBucket(b []string) []string {
	slices.SortFunc(b, compareWords)
	return slices.Compact(b)
}

func compareWords(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
