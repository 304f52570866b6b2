/*
Package longbitset provides a bit set of fixed capacity, backed by a []uint64,
addressed with 64-bit indices and mutated through per-word atomic operations.
It is built as the storage layer for probabilistic set-membership structures
(cuckoo and bloom style filters) that may need to address more bits than a
32-bit-indexed bit vector can hold, with several goroutines hashing and
probing into the same set at once.

The concurrency contract is atomic at word granularity. Two operations
touching different 64-bit words never interfere, and two single-bit operations
on the same word linearize at that word: a concurrent Set and Clear on
different bits of one word both take effect, with no lost update. Operations
that traverse multiple words (the range operators, the scanners and the set
algebra) are not atomic as a whole and may observe a torn state while another
goroutine mutates the set. Callers that need a consistent global view must
serialize externally.

A BitSet of numBits bits uses WordsNeeded(numBits) words of its backing array;
the array may be longer when storage is reused or grown. Every bit position
past numBits, whether in the trailing part of the last used word or in words
beyond it, is a ghost bit and must read as zero. The invariant is maintained
by every mutator and is what lets ScanIsEmpty, Equal, Hash and the AND tail
truncation run whole-word scans with no trailing-bit masking. FromWords
verifies it on caller-supplied storage and rejects dirty arrays.

Capacity is fixed at construction. Growth is explicit: EnsureCapacity returns
either the original instance or a new one over a larger (possibly shared)
array, and must be performed with external exclusivity if other goroutines
hold references to the set being grown.

Typical use, sized for forty billion slots:

	bs := longbitset.New(40_000_000_000)
	bs.Set(31_337_000_000)
	if bs.Get(31_337_000_000) {
		...
	}
*/
package longbitset

import (
	"encoding/binary"
	"io"
	"math/bits"
	"sync/atomic"
)

const (
	log2WordSize = 6
	wordSize     = 64

	allOnes = ^uint64(0)
)

// BitSet is a fixed-capacity bit set backed by a []uint64, accessed with
// 64-bit indices. All bit access goes through sync/atomic word operations.
//
// Bit indices run over [0, Len()); passing an index outside that range panics
// with *ErrIndexRange. The contract is checked on every call, in every build,
// so a stray index can never touch ghost bits.
type BitSet struct {
	bits     []uint64
	numBits  uint64
	numWords int // exact words needed for numBits (<= len(bits))
}

// WordsNeeded returns the number of 64-bit words it takes to hold numBits
// bits, i.e. the word offset of the last bit plus one. numBits must be at
// least 1; the shift-based formula is meaningless for zero.
func WordsNeeded(numBits uint64) int {
	return int((numBits-1)>>log2WordSize) + 1
}

// New creates a BitSet of numBits bits. The backing array is allocated to
// exactly the size needed. Panics if numBits is zero.
func New(numBits uint64) *BitSet {
	if numBits == 0 {
		panic("longbitset: capacity must be at least one bit")
	}
	words := make([]uint64, WordsNeeded(numBits))
	return &BitSet{bits: words, numBits: numBits, numWords: len(words)}
}

// FromWords creates a BitSet of numBits bits over the provided words,
// adopting the slice as backing storage without copying. The slice must be
// large enough to hold numBits bits but may be larger; the extra, or ghost,
// bits must be clear. Returns *ErrCapacity when the slice is too small and
// *ErrGhostBits when bits past numBits are set.
//
// The caller must hand over ownership: mutating the slice directly after
// construction bypasses the atomic word contract.
func FromWords(words []uint64, numBits uint64) (*BitSet, error) {
	numWords := WordsNeeded(numBits)
	if numWords > len(words) {
		return nil, &ErrCapacity{Words: len(words), NumBits: numBits}
	}
	b := &BitSet{bits: words, numBits: numBits, numWords: numWords}
	if w := b.dirtyGhostWord(); w >= 0 {
		return nil, &ErrGhostBits{Word: w}
	}
	return b, nil
}

// EnsureCapacity returns b when it is large enough to hold numBits+1 bits,
// otherwise a new BitSet that can. The returned set reuses b's backing array
// when the array already has room, so calling Len on it may report more than
// numBits: capacity always rounds up to the full word-aligned capacity of the
// backing array.
//
// Growth is a single-writer operation. The old and the returned set may share
// words; after growth only the returned set may be mutated.
func EnsureCapacity(b *BitSet, numBits uint64) *BitSet {
	if numBits < b.numBits {
		return b
	}
	// Depends on the ghost bits being clear: every word of the array becomes
	// addressable in the returned set.
	numWords := WordsNeeded(numBits)
	arr := b.bits
	if numWords >= len(arr) {
		grown := make([]uint64, numWords+1)
		for i := range arr {
			grown[i] = atomic.LoadUint64(&arr[i])
		}
		arr = grown
	}
	return &BitSet{
		bits:     arr,
		numBits:  uint64(len(arr)) << log2WordSize,
		numWords: len(arr),
	}
}

// dirtyGhostWord scans the bits past numBits and returns the index of the
// first word carrying a set ghost bit, or -1 when the invariant holds.
func (b *BitSet) dirtyGhostWord() int {
	for i := b.numWords; i < len(b.bits); i++ {
		if atomic.LoadUint64(&b.bits[i]) != 0 {
			return i
		}
	}
	if b.numBits&(wordSize-1) == 0 {
		return -1
	}
	mask := allOnes << (b.numBits & (wordSize - 1))
	if atomic.LoadUint64(&b.bits[b.numWords-1])&mask != 0 {
		return b.numWords - 1
	}
	return -1
}

func (b *BitSet) check(i uint64) {
	if i >= b.numBits {
		panic(&ErrIndexRange{Index: i, NumBits: b.numBits})
	}
}

// xorUint64 atomically performs *addr ^= mask and returns the old value.
// sync/atomic has no XOR primitive, so it is built from compare-and-swap.
func xorUint64(addr *uint64, mask uint64) uint64 {
	for {
		old := atomic.LoadUint64(addr)
		if atomic.CompareAndSwapUint64(addr, old, old^mask) {
			return old
		}
	}
}

// orUint64 atomically performs *addr |= mask and returns the old value.
// sync/atomic has no OR primitive before Go 1.23, so it is built from
// compare-and-swap.
func orUint64(addr *uint64, mask uint64) uint64 {
	for {
		old := atomic.LoadUint64(addr)
		if atomic.CompareAndSwapUint64(addr, old, old|mask) {
			return old
		}
	}
}

// andUint64 atomically performs *addr &= mask and returns the old value.
// sync/atomic has no AND primitive before Go 1.23, so it is built from
// compare-and-swap.
func andUint64(addr *uint64, mask uint64) uint64 {
	for {
		old := atomic.LoadUint64(addr)
		if atomic.CompareAndSwapUint64(addr, old, old&mask) {
			return old
		}
	}
}

// Len returns the number of bits stored in this bit set.
func (b *BitSet) Len() uint64 {
	return b.numBits
}

// Get reports whether bit i is set.
func (b *BitSet) Get(i uint64) bool {
	b.check(i)
	mask := uint64(1) << (i & (wordSize - 1))
	return atomic.LoadUint64(&b.bits[i>>log2WordSize])&mask != 0
}

// Set sets bit i.
func (b *BitSet) Set(i uint64) {
	b.check(i)
	mask := uint64(1) << (i & (wordSize - 1))
	orUint64(&b.bits[i>>log2WordSize], mask)
}

// Clear clears bit i.
func (b *BitSet) Clear(i uint64) {
	b.check(i)
	mask := uint64(1) << (i & (wordSize - 1))
	andUint64(&b.bits[i>>log2WordSize], ^mask)
}

// Flip inverts bit i.
func (b *BitSet) Flip(i uint64) {
	b.check(i)
	mask := uint64(1) << (i & (wordSize - 1))
	xorUint64(&b.bits[i>>log2WordSize], mask)
}

// GetAndSet sets bit i and reports whether it was set before, as a single
// atomic step.
func (b *BitSet) GetAndSet(i uint64) bool {
	b.check(i)
	mask := uint64(1) << (i & (wordSize - 1))
	return orUint64(&b.bits[i>>log2WordSize], mask)&mask != 0
}

// GetAndClear clears bit i and reports whether it was set before, as a single
// atomic step.
func (b *BitSet) GetAndClear(i uint64) bool {
	b.check(i)
	mask := uint64(1) << (i & (wordSize - 1))
	return andUint64(&b.bits[i>>log2WordSize], ^mask)&mask != 0
}

// ClearAll clears every bit.
func (b *BitSet) ClearAll() {
	for i := 0; i < b.numWords; i++ {
		atomic.StoreUint64(&b.bits[i], 0)
	}
}

// Count returns the number of set bits.
// Also known as "popcount" or "population count".
func (b *BitSet) Count() uint64 {
	var n uint64
	for i := 0; i < b.numWords; i++ {
		n += uint64(bits.OnesCount64(atomic.LoadUint64(&b.bits[i])))
	}
	return n
}

// Clone returns a deep copy with the same capacity, set bits and physical
// storage length.
func (b *BitSet) Clone() *BitSet {
	return &BitSet{bits: b.Snapshot(), numBits: b.numBits, numWords: b.numWords}
}

// Equal reports whether both sets have the same capacity and the same bits
// set. Two sets of equal capacity over backing arrays of different physical
// length compare equal when their logical contents match.
func (b *BitSet) Equal(other *BitSet) bool {
	if b == other {
		return true
	}
	if other == nil || b.numBits != other.numBits {
		return false
	}
	// Depends on the ghost bits being clear: comparing the used words is
	// exact because both tails are all zero.
	for i := 0; i < b.numWords; i++ {
		if atomic.LoadUint64(&b.bits[i]) != atomic.LoadUint64(&other.bits[i]) {
			return false
		}
	}
	return true
}

// Hash returns a hash of the set bits. Sets that are Equal hash identically
// regardless of how much their backing arrays are overallocated.
func (b *BitSet) Hash() uint64 {
	// Depends on the ghost bits being clear.
	var h uint64
	for i := b.numWords - 1; i >= 0; i-- {
		h ^= atomic.LoadUint64(&b.bits[i])
		h = bits.RotateLeft64(h, 1)
	}
	// Fold the high half into the low half; the constant keeps the empty set
	// from hashing to zero.
	return (h>>32 ^ h) + 0x98761234
}

// Snapshot returns a copy of the backing words, safe for the caller to
// serialize or adopt. Each word is read atomically but the copy as a whole is
// not a consistent point-in-time view under concurrent mutation. The returned
// slice covers the full physical storage, which may be longer than
// WordsNeeded(Len()); the tail is zero by the ghost-bit invariant.
func (b *BitSet) Snapshot() []uint64 {
	words := make([]uint64, len(b.bits))
	for i := range words {
		words[i] = atomic.LoadUint64(&b.bits[i])
	}
	return words
}

// WriteTo writes a binary representation of the bit set to w: the capacity in
// bits followed by the used words, all big-endian. Equal sets serialize
// identically regardless of physical overallocation. It returns the number of
// bytes written.
func (b *BitSet) WriteTo(w io.Writer) (int64, error) {
	if err := binary.Write(w, binary.BigEndian, b.numBits); err != nil {
		return 0, err
	}
	words := make([]uint64, b.numWords)
	for i := range words {
		words[i] = atomic.LoadUint64(&b.bits[i])
	}
	if err := binary.Write(w, binary.BigEndian, words); err != nil {
		return 8, err
	}
	return int64(8 + 8*len(words)), nil
}

// ReadFrom replaces the contents of the bit set with one read from r, as
// written by WriteTo. It returns the number of bytes read. The stream is
// validated before the receiver is touched: a zero capacity yields
// *ErrCapacity and set bits past the declared capacity yield *ErrGhostBits.
// Not safe for use concurrently with any other operation on the receiver.
func (b *BitSet) ReadFrom(r io.Reader) (int64, error) {
	var numBits uint64
	if err := binary.Read(r, binary.BigEndian, &numBits); err != nil {
		return 0, err
	}
	if numBits == 0 {
		return 8, &ErrCapacity{Words: 0, NumBits: 0}
	}
	words := make([]uint64, WordsNeeded(numBits))
	if err := binary.Read(r, binary.BigEndian, words); err != nil {
		return 8, err
	}
	n := int64(8 + 8*len(words))
	nb := BitSet{bits: words, numBits: numBits, numWords: len(words)}
	if w := nb.dirtyGhostWord(); w >= 0 {
		return n, &ErrGhostBits{Word: w}
	}
	*b = nb
	return n, nil
}
