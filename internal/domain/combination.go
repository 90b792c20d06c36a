package domain

import (
	"fmt"
	"sort"
)

// Combination is exactly six distinct numbers in [1,45], kept sorted ascending
// for comparison and display. All scoring is order-independent.
type Combination []int

// NewCombination copies, sorts and validates a candidate pick.
func NewCombination(numbers []int) (Combination, error) {
	if len(numbers) != CombinationSize {
		return nil, fmt.Errorf("combination must have %d numbers, got %d", CombinationSize, len(numbers))
	}
	c := make(Combination, CombinationSize)
	copy(c, numbers)
	sort.Ints(c)
	for i, n := range c {
		if n < MinNumber || n > MaxNumber {
			return nil, fmt.Errorf("number %d out of range [%d,%d]", n, MinNumber, MaxNumber)
		}
		if i > 0 && c[i-1] == n {
			return nil, fmt.Errorf("duplicate number %d", n)
		}
	}
	return c, nil
}

// Contains reports whether n is part of the combination.
func (c Combination) Contains(n int) bool {
	for _, v := range c {
		if v == n {
			return true
		}
	}
	return false
}

// Sum returns the sum of all six numbers.
func (c Combination) Sum() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// OddCount returns how many numbers are odd.
func (c Combination) OddCount() int {
	count := 0
	for _, n := range c {
		if n%2 == 1 {
			count++
		}
	}
	return count
}

// LowCount returns how many numbers are <= 22 (the low half of the slip).
func (c Combination) LowCount() int {
	count := 0
	for _, n := range c {
		if n <= 22 {
			count++
		}
	}
	return count
}

// MaxConsecutiveRun returns the length of the longest run of consecutive
// integers (e.g. {4,5,6} contributes 3). Assumes sorted order.
func (c Combination) MaxConsecutiveRun() int {
	longest, run := 1, 1
	for i := 1; i < len(c); i++ {
		if c[i] == c[i-1]+1 {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

// MeanAdjacentGap returns the average gap between adjacent sorted numbers.
func (c Combination) MeanAdjacentGap() float64 {
	if len(c) < 2 {
		return 0
	}
	total := 0
	for i := 1; i < len(c); i++ {
		total += c[i] - c[i-1]
	}
	return float64(total) / float64(len(c)-1)
}

// ZoneCoverage returns how many of the five color zones the combination spans.
func (c Combination) ZoneCoverage() int {
	var zones [ZoneCount]bool
	for _, n := range c {
		zones[Zone(n)] = true
	}
	count := 0
	for _, hit := range zones {
		if hit {
			count++
		}
	}
	return count
}

// MaxZoneMembers returns the size of the most crowded zone.
func (c Combination) MaxZoneMembers() int {
	var counts [ZoneCount]int
	most := 0
	for _, n := range c {
		counts[Zone(n)]++
		if counts[Zone(n)] > most {
			most = counts[Zone(n)]
		}
	}
	return most
}

// LastDigitCount returns the number of distinct last digits.
func (c Combination) LastDigitCount() int {
	var digits [10]bool
	for _, n := range c {
		digits[n%10] = true
	}
	count := 0
	for _, hit := range digits {
		if hit {
			count++
		}
	}
	return count
}

// Range returns max minus min.
func (c Combination) Range() int {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1] - c[0]
}

// Max returns the largest number.
func (c Combination) Max() int {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1]
}

// IsArithmeticProgression reports whether all consecutive differences are
// equal (e.g. 5,10,15,20,25,30) - a pattern humans pick far more often than
// chance would produce.
func (c Combination) IsArithmeticProgression() bool {
	if len(c) < 3 {
		return false
	}
	diff := c[1] - c[0]
	for i := 2; i < len(c); i++ {
		if c[i]-c[i-1] != diff {
			return false
		}
	}
	return true
}

// OverlapWith counts how many numbers the combination shares with the given
// set of numbers.
func (c Combination) OverlapWith(numbers []int) int {
	count := 0
	for _, n := range numbers {
		if c.Contains(n) {
			count++
		}
	}
	return count
}

// Equal reports whether two combinations contain the same numbers.
func (c Combination) Equal(other Combination) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (c Combination) Clone() Combination {
	out := make(Combination, len(c))
	copy(out, c)
	return out
}
