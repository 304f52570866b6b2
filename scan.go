package longbitset

import (
	"math/bits"
	"sync/atomic"
)

// NextSetBit returns the index of the first set bit at or after index, or -1
// if there is none. index must be less than Len.
func (b *BitSet) NextSetBit(index uint64) int64 {
	b.check(index)
	i := int(index >> log2WordSize)
	// Skip all the bits to the right of index.
	word := atomic.LoadUint64(&b.bits[i]) >> (index & (wordSize - 1))
	if word != 0 {
		return int64(index) + int64(bits.TrailingZeros64(word))
	}
	for i++; i < b.numWords; i++ {
		word = atomic.LoadUint64(&b.bits[i])
		if word != 0 {
			return int64(i)<<log2WordSize + int64(bits.TrailingZeros64(word))
		}
	}
	return -1
}

// PrevSetBit returns the index of the last set bit at or before index, or -1
// if there is none. index must be less than Len.
func (b *BitSet) PrevSetBit(index uint64) int64 {
	b.check(index)
	i := int(index >> log2WordSize)
	subIndex := index & (wordSize - 1)
	// Skip all the bits to the left of index.
	word := atomic.LoadUint64(&b.bits[i]) << (wordSize - 1 - subIndex)
	if word != 0 {
		return int64(i)<<log2WordSize + int64(subIndex) - int64(bits.LeadingZeros64(word))
	}
	for i--; i >= 0; i-- {
		word = atomic.LoadUint64(&b.bits[i])
		if word != 0 {
			return int64(i)<<log2WordSize + wordSize - 1 - int64(bits.LeadingZeros64(word))
		}
	}
	return -1
}

// ScanIsEmpty reports whether no bit is set. The name calls out the cost:
// this is a scan over every used word, not a constant-time check.
// Depends on the ghost bits being clear.
func (b *BitSet) ScanIsEmpty() bool {
	for i := 0; i < b.numWords; i++ {
		if atomic.LoadUint64(&b.bits[i]) != 0 {
			return false
		}
	}
	return true
}
