package longbitset

import "fmt"

// ErrCapacity indicates backing storage too small for the declared bit count.
//
// It is returned by FromWords and by ReadFrom when the serialized header
// declares zero bits.
type ErrCapacity struct {
	Words   int
	NumBits uint64
}

func (e *ErrCapacity) Error() string {
	return fmt.Sprintf("longbitset: %d words cannot hold %d bits", e.Words, e.NumBits)
}

// ErrGhostBits indicates that caller-supplied storage has bits set beyond the
// declared capacity. The ghost bits past numBits must be clear; emptiness,
// equality, hashing and the AND tail truncation all depend on it.
type ErrGhostBits struct {
	Word int
}

func (e *ErrGhostBits) Error() string {
	return fmt.Sprintf("longbitset: ghost bits set in word %d", e.Word)
}

// ErrIndexRange is the value passed to panic when a bit index is outside
// [0, numBits). Index contracts are checked on every call, in every build.
type ErrIndexRange struct {
	Index   uint64
	NumBits uint64
}

func (e *ErrIndexRange) Error() string {
	return fmt.Sprintf("longbitset: index %d out of range [0, %d)", e.Index, e.NumBits)
}

// ErrSizeMismatch is the value passed to panic when Or or Xor is called with
// an argument using more words than the receiver.
type ErrSizeMismatch struct {
	Words      int
	OtherWords int
}

func (e *ErrSizeMismatch) Error() string {
	return fmt.Sprintf("longbitset: receiver has %d words, other has %d", e.Words, e.OtherWords)
}
