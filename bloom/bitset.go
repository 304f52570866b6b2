package bloom

import (
	"io"

	"github.com/HoangViet144/longbitset"
)

// BitSet is the storage contract a Bloom filter runs against. The canonical
// in-memory implementation is *longbitset.BitSet; RedisBitSet keeps the same
// bit layout in a Redis string so several processes can share one filter.
// Indices run over [0, Len()) and implementations panic with
// *longbitset.ErrIndexRange when an index is out of range.
type BitSet interface {
	// Len returns the number of bits the set can address.
	Len() uint64
	// Get reports whether bit i is set.
	Get(i uint64) bool
	// Set sets bit i to 1.
	Set(i uint64)
	// Clear sets bit i to 0.
	Clear(i uint64)
	// GetAndSet sets bit i and reports whether it was set before, as one
	// atomic step.
	GetAndSet(i uint64) bool
	// GetAndClear clears bit i and reports whether it was set before, as one
	// atomic step.
	GetAndClear(i uint64) bool
	// ClearAll clears the entire BitSet.
	ClearAll()
	// Count (number of set bits).
	// Also known as "popcount" or "population count".
	Count() uint64
	// Snapshot returns a copy of the bits as 64-bit words, low bit first
	// within each word. Words past Len() bits are zero.
	Snapshot() []uint64
	// WriteTo writes a BitSet to a stream.
	WriteTo(stream io.Writer) (int64, error)
	// ReadFrom reads a BitSet from a stream written using WriteTo.
	ReadFrom(stream io.Reader) (int64, error)
}

var (
	_ BitSet = (*longbitset.BitSet)(nil)
	_ BitSet = (*RedisBitSet)(nil)
)
