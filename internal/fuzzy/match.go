// Package fuzzy locates an approximate snippet inside a document when an
// exact substring lookup fails.
package fuzzy

import (
	"strings"
)

// Jaro calculates the Jaro similarity between two strings (0.0 to 1.0).
// Case- and whitespace-sensitive: the caller decides whether to normalize.
func Jaro(s1, s2 string) float64 {
	if s1 == s2 {
		return 1.0
	}
	if len(s1) == 0 || len(s2) == 0 {
		return 0.0
	}

	// Characters match when equal and within the standard Jaro window.
	matchDist := max(len(s1), len(s2))/2 - 1
	if matchDist < 0 {
		matchDist = 0
	}

	matched1 := make([]bool, len(s1))
	matched2 := make([]bool, len(s2))
	matches := 0

	for i := 0; i < len(s1); i++ {
		lo := i - matchDist
		if lo < 0 {
			lo = 0
		}
		hi := i + matchDist + 1
		if hi > len(s2) {
			hi = len(s2)
		}
		for j := lo; j < hi; j++ {
			if matched2[j] || s1[i] != s2[j] {
				continue
			}
			matched1[i] = true
			matched2[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0.0
	}

	// Count transpositions among matched characters
	transpositions := 0
	k := 0
	for i := 0; i < len(s1); i++ {
		if !matched1[i] {
			continue
		}
		for !matched2[k] {
			k++
		}
		if s1[i] != s2[k] {
			transpositions++
		}
		k++
	}
	transpositions /= 2

	m := float64(matches)
	return (m/float64(len(s1)) + m/float64(len(s2)) + (m-float64(transpositions))/m) / 3.0
}

// winklerPrefixLimit caps the common-prefix bonus at 4 characters, per the
// standard Jaro-Winkler definition.
const winklerPrefixLimit = 4

// winklerScale is the standard prefix scaling factor.
const winklerScale = 0.1

// JaroWinkler calculates the Jaro-Winkler similarity between two strings,
// boosting the score for strings sharing a common prefix.
func JaroWinkler(s1, s2 string) float64 {
	j := Jaro(s1, s2)

	prefix := 0
	for i := 0; i < len(s1) && i < len(s2) && i < winklerPrefixLimit; i++ {
		if s1[i] != s2[i] {
			break
		}
		prefix++
	}

	return j + float64(prefix)*winklerScale*(1.0-j)
}

// FindBestWindow slides a window of exactly len(snippet lines) consecutive
// lines across lines and scores each joined window against snippet with
// Jaro-Winkler similarity. It returns the best window as a half-open line
// range [start, end) together with its score. Ties keep the earliest window
// so matching is deterministic and favors the first textual occurrence.
//
// The matcher never rejects: callers enforce their own acceptance threshold
// and can report the best score on failure. When lines is empty or shorter
// than the snippet, ok is false and the score is 0.
func FindBestWindow(lines []string, snippet string) (start, end int, score float64, ok bool) {
	snippetLines := strings.Split(snippet, "\n")
	k := len(snippetLines)

	if len(lines) == 0 || len(lines) < k {
		return 0, 0, 0.0, false
	}

	bestScore := -1.0
	bestStart := 0

	for i := 0; i+k <= len(lines); i++ {
		window := strings.Join(lines[i:i+k], "\n")
		if s := JaroWinkler(window, snippet); s > bestScore {
			bestScore = s
			bestStart = i
		}
	}

	return bestStart, bestStart + k, bestScore, true
}
