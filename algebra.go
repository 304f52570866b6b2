package longbitset

import "sync/atomic"

func (b *BitSet) checkSize(other *BitSet) {
	if other.numWords > b.numWords {
		panic(&ErrSizeMismatch{Words: b.numWords, OtherWords: other.numWords})
	}
}

// Or folds other into the receiver as a bitwise union. The receiver must
// span at least as many words as other.
func (b *BitSet) Or(other *BitSet) {
	b.checkSize(other)
	for i := 0; i < other.numWords; i++ {
		orUint64(&b.bits[i], atomic.LoadUint64(&other.bits[i]))
	}
}

// Xor folds other into the receiver as a bitwise symmetric difference. The
// receiver must span at least as many words as other.
func (b *BitSet) Xor(other *BitSet) {
	b.checkSize(other)
	for i := 0; i < other.numWords; i++ {
		xorUint64(&b.bits[i], atomic.LoadUint64(&other.bits[i]))
	}
}

// And intersects the receiver with other. Receiver words past other's last
// used word have no counterpart and are cleared outright, so sets of
// different sizes may be intersected without a size contract.
func (b *BitSet) And(other *BitSet) {
	pos := min(b.numWords, other.numWords)
	for i := 0; i < pos; i++ {
		andUint64(&b.bits[i], atomic.LoadUint64(&other.bits[i]))
	}
	for i := pos; i < b.numWords; i++ {
		atomic.StoreUint64(&b.bits[i], 0)
	}
}

// AndNot clears every receiver bit that is set in other. Receiver words past
// other's last used word are left untouched.
func (b *BitSet) AndNot(other *BitSet) {
	pos := min(b.numWords, other.numWords)
	for i := 0; i < pos; i++ {
		andUint64(&b.bits[i], ^atomic.LoadUint64(&other.bits[i]))
	}
}

// Intersects reports whether the receiver and other share at least one set
// bit. Only the overlapping words are examined.
func (b *BitSet) Intersects(other *BitSet) bool {
	pos := min(b.numWords, other.numWords)
	for i := 0; i < pos; i++ {
		if atomic.LoadUint64(&b.bits[i])&atomic.LoadUint64(&other.bits[i]) != 0 {
			return true
		}
	}
	return false
}
