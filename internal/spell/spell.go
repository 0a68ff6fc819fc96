// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package spell corrects query typos against the corpus vocabulary. The
// vocabulary is counted from professor research interests and publication
// titles, so corrections stay inside the domain ("machne lerning" becomes
// "machine learning", not some dictionary word the corpus never uses).
package spell

import (
	"sort"
	"strings"
	"unicode"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// Checker is a frequency-weighted spelling corrector in the Norvig style:
// known words pass through untouched, unknown words are replaced by the
// most frequent known candidate within edit distance one, then two.
type Checker struct {
	words map[string]int
	total int
}

// NewChecker returns an empty checker. Feed it corpus text with Add before
// correcting.
func NewChecker() *Checker {
	return &Checker{words: make(map[string]int)}
}

// Add counts every word of text into the vocabulary.
func (c *Checker) Add(text string) {
	for _, w := range tokenize(text) {
		c.words[w]++
		c.total++
	}
}

// Len returns the vocabulary size in distinct words.
func (c *Checker) Len() int { return len(c.words) }

// Correct returns the most probable correction for a single lower-case
// word. Known words and words with no known candidates are returned as-is.
func (c *Checker) Correct(word string) string {
	if _, ok := c.words[word]; ok {
		return word
	}

	candidates := c.known(edits1(word))
	if len(candidates) == 0 {
		candidates = c.knownEdits2(word)
	}
	if len(candidates) == 0 {
		return word
	}

	// Highest corpus frequency wins; alphabetical order breaks ties so the
	// correction is deterministic.
	sort.Strings(candidates)
	best := candidates[0]
	for _, cand := range candidates[1:] {
		if c.words[cand] > c.words[best] {
			best = cand
		}
	}
	return best
}

// CorrectText lower-cases text and corrects each word, preserving the
// separators between them.
func (c *Checker) CorrectText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	lower := strings.ToLower(text)
	start := -1
	flush := func(end int) {
		if start >= 0 {
			b.WriteString(c.Correct(lower[start:end]))
			start = -1
		}
	}

	for i, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		b.WriteRune(r)
	}
	flush(len(lower))

	return b.String()
}

func (c *Checker) known(words []string) []string {
	var out []string
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		if _, ok := c.words[w]; ok {
			out = append(out, w)
		}
	}
	return out
}

// knownEdits2 collects known words at edit distance two without
// materializing the full distance-two set.
func (c *Checker) knownEdits2(word string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, e1 := range edits1(word) {
		for _, e2 := range edits1(e1) {
			if seen[e2] {
				continue
			}
			seen[e2] = true
			if _, ok := c.words[e2]; ok {
				out = append(out, e2)
			}
		}
	}
	return out
}

// edits1 generates every string one edit away from word: deletes,
// transposes, replaces, and inserts.
func edits1(word string) []string {
	var out []string
	for i := 0; i <= len(word); i++ {
		l, r := word[:i], word[i:]
		if len(r) > 0 {
			out = append(out, l+r[1:]) // delete
		}
		if len(r) > 1 {
			out = append(out, l+string(r[1])+string(r[0])+r[2:]) // transpose
		}
		for _, ch := range letters {
			if len(r) > 0 {
				out = append(out, l+string(ch)+r[1:]) // replace
			}
			out = append(out, l+string(ch)+r) // insert
		}
	}
	return out
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
