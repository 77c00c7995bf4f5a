package ordinal

import "sort"

// LexDenseRank assigns dense ranks (1 = lexicographically greatest, ties
// share a rank, no gaps) to a slice of equal-length integer vectors,
// comparing from index 0 (the top layer) downward. Used by both player
// lex-cel and group lex-cel, which differ only in how the vectors are
// built.
func LexDenseRank(vectors [][]int) []int {
	n := len(vectors)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return lexGreater(vectors[order[a]], vectors[order[b]])
	})

	ranks := make([]int, n)
	rank := 0
	for i, idx := range order {
		if i == 0 || !vecEqual(vectors[idx], vectors[order[i-1]]) {
			rank++
		}
		ranks[idx] = rank
	}
	return ranks
}

// lexGreater reports whether a is strictly lex-greater than b.
func lexGreater(a, b []int) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] > b[i]
		}
	}
	return false
}

func vecEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
