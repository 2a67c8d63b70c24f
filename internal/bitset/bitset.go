package bitset

import "math/bits"

// Set is a compact set of non-negative ints using a bitmap.
// Sized for graph node indices, which are dense from zero.
type Set struct {
	bits []uint64
}

// New creates a Set that can hold values up to maxVal (inclusive) without
// growing.
func New(maxVal int) *Set {
	words := (maxVal + 64) / 64
	return &Set{bits: make([]uint64, words)}
}

// Add inserts val and reports whether it was absent.
func (s *Set) Add(val int) bool {
	word := val / 64
	if word >= len(s.bits) {
		s.grow(word + 1)
	}
	mask := uint64(1) << (val % 64)
	if s.bits[word]&mask != 0 {
		return false
	}
	s.bits[word] |= mask
	return true
}

// Remove deletes val from the set.
func (s *Set) Remove(val int) {
	word := val / 64
	if word < len(s.bits) {
		s.bits[word] &^= 1 << (val % 64)
	}
}

// Has returns true if val is in the set.
func (s *Set) Has(val int) bool {
	word := val / 64
	if val < 0 || word >= len(s.bits) {
		return false
	}
	return s.bits[word]&(1<<(val%64)) != 0
}

// Len returns the number of elements in the set.
func (s *Set) Len() int {
	count := 0
	for _, word := range s.bits {
		count += bits.OnesCount64(word)
	}
	return count
}

// Slice returns all values in ascending order.
func (s *Set) Slice() []int {
	var result []int
	for i, word := range s.bits {
		for word != 0 {
			bit := bits.TrailingZeros64(word)
			result = append(result, i*64+bit)
			word &= word - 1
		}
	}
	return result
}

// grow expands the set to n words.
// Callers guarantee n > len(s.bits).
func (s *Set) grow(n int) {
	newBits := make([]uint64, n)
	copy(newBits, s.bits)
	s.bits = newBits
}
