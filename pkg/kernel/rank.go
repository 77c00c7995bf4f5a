package kernel

import "sort"

// DenseRank assigns dense ranks (1 = best, ties share a rank, no gaps) to
// a slice of sort keys. descending=true means a larger key is better
// (gets rank 1); otherwise a smaller key is better. It is the one
// dense-rank routine for scalar keys, shared by the shapley_rank,
// banzhaf_rank and ordinal_banzhaf_rank columns and by rank synthesis;
// lex_cel_rank and group_lexcel_rank compare vectors and use
// ordinal.LexDenseRank instead.
func DenseRank(keys []float64, descending bool) []int {
	n := len(keys)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		if descending {
			return keys[order[a]] > keys[order[b]]
		}
		return keys[order[a]] < keys[order[b]]
	})

	ranks := make([]int, n)
	rank := 0
	for i, idx := range order {
		if i == 0 || keys[idx] != keys[order[i-1]] {
			rank++
		}
		ranks[idx] = rank
	}
	return ranks
}
