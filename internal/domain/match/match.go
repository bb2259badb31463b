// Package match scores how alike two short text values are. The grid uses
// it to flag near-duplicate applications by company name and title.
package match

import (
	"strings"
)

// Similarity returns a normalized score in [0,1]: 1 for equal strings
// (ignoring case), 0 when exactly one side is empty. Defined as
// (L - distance) / L with L the longer length. Symmetric.
func Similarity(a, b string) float64 {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))

	if a == "" || b == "" {
		return 0
	}

	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}

	return float64(longest-Distance(ra, rb)) / float64(longest)
}

// Distance is the Levenshtein edit distance (insert, delete, substitute,
// unit cost) computed over a single rolling row, O(min(len)) memory.
func Distance(a, b []rune) int {
	// Roll over the shorter string.
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	row := make([]int, len(b)+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= len(a); i++ {
		prev := row[0] // row[i-1][j-1]
		row[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur := row[j]

			best := prev + cost // substitute
			if d := row[j] + 1; d < best { // delete
				best = d
			}
			if d := row[j-1] + 1; d < best { // insert
				best = d
			}

			row[j] = best
			prev = cur
		}
	}

	return row[len(b)]
}
