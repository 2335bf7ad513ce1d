package parser

// Similarity returns how alike two strings are, from 0 (nothing shared) to 1
// (identical): one minus the edit distance divided by the longer length.
// Two empty strings are identical.
func Similarity(a, b string) float64 {
	longer, shorter := []rune(a), []rune(b)
	if len(shorter) > len(longer) {
		longer, shorter = shorter, longer
	}

	if len(longer) == 0 {
		return 1.0
	}

	distance := levenshtein(longer, shorter)
	return float64(len(longer)-distance) / float64(len(longer))
}

// Levenshtein returns the unit-cost edit distance between a and b
func Levenshtein(a, b string) int {
	return levenshtein([]rune(a), []rune(b))
}

// levenshtein keeps only two rows of the classic DP table
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
