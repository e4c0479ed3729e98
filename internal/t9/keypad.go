// Package t9 maps words to phone keypad digit sequences and answers strict
// and prefix lookups over a prebuilt index.
package t9

import "strings"

// groups lists the letters printed on keys 2 through 9.
var groups = [...]string{"abc", "def", "ghi", "jkl", "mno", "pqrs", "tuv", "wxyz"}

// keypad maps lowercase ASCII letters to their keypad digit. 0 and 1 carry no letters.
var keypad = func() (m [26]byte) {
	for i, g := range groups {
		for _, r := range g {
			m[r-'a'] = byte('2' + i)
		}
	}
	return m
}()

// Digit returns the keypad digit for r and whether r is mapped.
func Digit(r rune) (byte, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return keypad[r-'a'], true
}

// Sequence converts word to its digit sequence. Characters without a keypad
// digit are skipped, so the result may be shorter than word or empty.
func Sequence(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for _, r := range word {
		if d, ok := Digit(r); ok {
			b.WriteByte(d)
		}
	}
	return b.String()
}
