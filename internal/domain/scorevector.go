package domain

import "sort"

// ScoreVector maps each number 1..45 to a real-valued score. Index 0 is
// unused so that v[n] reads naturally. Each scoring model produces its own
// vector; vectors are value types and never shared mutably between stages.
type ScoreVector [MaxNumber + 1]float64

// UniformScoreVector returns the neutral vector every model degrades to when
// history is too short to say anything.
func UniformScoreVector() ScoreVector {
	var v ScoreVector
	for n := MinNumber; n <= MaxNumber; n++ {
		v[n] = 1.0 / float64(MaxNumber)
	}
	return v
}

// Normalized min-max rescales the scores into [0,1]. A degenerate vector
// (all values equal) keeps its values by treating the range as 1, so the
// operation never divides by zero and is idempotent on already-normalized
// input.
func (v ScoreVector) Normalized() ScoreVector {
	minVal, maxVal := v[MinNumber], v[MinNumber]
	for n := MinNumber + 1; n <= MaxNumber; n++ {
		if v[n] < minVal {
			minVal = v[n]
		}
		if v[n] > maxVal {
			maxVal = v[n]
		}
	}
	scale := maxVal - minVal
	if scale == 0 {
		scale = 1
	}
	var out ScoreVector
	for n := MinNumber; n <= MaxNumber; n++ {
		out[n] = (v[n] - minVal) / scale
	}
	return out
}

// Ranks converts scores to ranks where 1 is the best (highest) score. Ties
// are broken by number for determinism.
func (v ScoreVector) Ranks() map[int]int {
	numbers := make([]int, 0, MaxNumber)
	for n := MinNumber; n <= MaxNumber; n++ {
		numbers = append(numbers, n)
	}
	sort.Slice(numbers, func(i, j int) bool {
		if v[numbers[i]] != v[numbers[j]] {
			return v[numbers[i]] > v[numbers[j]]
		}
		return numbers[i] < numbers[j]
	})
	ranks := make(map[int]int, MaxNumber)
	for i, n := range numbers {
		ranks[n] = i + 1
	}
	return ranks
}

// TopN returns the n highest-scoring numbers, ties broken by number.
func (v ScoreVector) TopN(n int) []int {
	numbers := make([]int, 0, MaxNumber)
	for num := MinNumber; num <= MaxNumber; num++ {
		numbers = append(numbers, num)
	}
	sort.Slice(numbers, func(i, j int) bool {
		if v[numbers[i]] != v[numbers[j]] {
			return v[numbers[i]] > v[numbers[j]]
		}
		return numbers[i] < numbers[j]
	})
	if n > len(numbers) {
		n = len(numbers)
	}
	return numbers[:n]
}
