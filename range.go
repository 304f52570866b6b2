package longbitset

import "sync/atomic"

func (b *BitSet) checkRange(startIndex, endIndex uint64) {
	if startIndex >= b.numBits {
		panic(&ErrIndexRange{Index: startIndex, NumBits: b.numBits})
	}
	if endIndex > b.numBits {
		panic(&ErrIndexRange{Index: endIndex, NumBits: b.numBits})
	}
}

// SetRange sets the bits in the half-open range [startIndex, endIndex).
// A no-op when endIndex <= startIndex. Touches O(words spanned) memory, not
// O(bits spanned): partial words at the edges are masked, whole interior
// words are stored in one operation each.
func (b *BitSet) SetRange(startIndex, endIndex uint64) {
	b.checkRange(startIndex, endIndex)
	if endIndex <= startIndex {
		return
	}

	startWord := startIndex >> log2WordSize
	endWord := (endIndex - 1) >> log2WordSize

	startMask := allOnes << (startIndex & (wordSize - 1))
	// -endIndex & 63 is (64 - endIndex%64) % 64, so the mask covers the whole
	// word when the range ends on a word boundary.
	endMask := allOnes >> (-endIndex & (wordSize - 1))

	if startWord == endWord {
		orUint64(&b.bits[startWord], startMask&endMask)
		return
	}

	orUint64(&b.bits[startWord], startMask)
	for i := startWord + 1; i < endWord; i++ {
		atomic.StoreUint64(&b.bits[i], allOnes)
	}
	orUint64(&b.bits[endWord], endMask)
}

// ClearRange clears the bits in the half-open range [startIndex, endIndex).
// A no-op when endIndex <= startIndex.
func (b *BitSet) ClearRange(startIndex, endIndex uint64) {
	b.checkRange(startIndex, endIndex)
	if endIndex <= startIndex {
		return
	}

	startWord := startIndex >> log2WordSize
	endWord := (endIndex - 1) >> log2WordSize

	// Masks inverted since we are clearing.
	startMask := ^(allOnes << (startIndex & (wordSize - 1)))
	endMask := ^(allOnes >> (-endIndex & (wordSize - 1)))

	if startWord == endWord {
		andUint64(&b.bits[startWord], startMask|endMask)
		return
	}

	andUint64(&b.bits[startWord], startMask)
	for i := startWord + 1; i < endWord; i++ {
		atomic.StoreUint64(&b.bits[i], 0)
	}
	andUint64(&b.bits[endWord], endMask)
}

// FlipRange inverts the bits in the half-open range [startIndex, endIndex).
// A no-op when endIndex <= startIndex.
func (b *BitSet) FlipRange(startIndex, endIndex uint64) {
	b.checkRange(startIndex, endIndex)
	if endIndex <= startIndex {
		return
	}

	startWord := startIndex >> log2WordSize
	endWord := (endIndex - 1) >> log2WordSize

	startMask := allOnes << (startIndex & (wordSize - 1))
	endMask := allOnes >> (-endIndex & (wordSize - 1))

	if startWord == endWord {
		xorUint64(&b.bits[startWord], startMask&endMask)
		return
	}

	xorUint64(&b.bits[startWord], startMask)
	for i := startWord + 1; i < endWord; i++ {
		xorUint64(&b.bits[i], allOnes)
	}
	xorUint64(&b.bits[endWord], endMask)
}
