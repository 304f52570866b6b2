package bloom

import (
	"context"
	"encoding/binary"
	"io"
	"math/bits"
	"time"

	"github.com/go-redis/redis/v9"

	"github.com/HoangViet144/longbitset"
)

// RedisBitSet stores a bit set of fixed capacity in a single Redis string,
// so that several processes can share one Bloom filter. Bit i of the set is
// bit i in SETBIT/GETBIT addressing, which counts the high bit of byte zero
// as offset zero; Snapshot and the serialization methods convert between
// that layout and the low-bit-first words of longbitset with bits.Reverse8.
//
// Single-bit reads and writes are atomic on the Redis side. The expiration
// is applied whenever the whole value is rewritten, not on single-bit
// writes.
type RedisBitSet struct {
	redisClient redis.UniversalClient
	bitsetKey   string
	numBits     uint64
	expiration  time.Duration
}

// NewRedisBitSet returns a RedisBitSet of numBits bits stored under
// bitsetKey. The key is not touched until the first write. Panics if numBits
// is zero.
func NewRedisBitSet(redisClient redis.UniversalClient, bitsetKey string, numBits uint64, expiration time.Duration) *RedisBitSet {
	if numBits == 0 {
		panic("bloom: capacity must be at least one bit")
	}
	return &RedisBitSet{
		redisClient: redisClient,
		bitsetKey:   bitsetKey,
		numBits:     numBits,
		expiration:  expiration,
	}
}

func (r *RedisBitSet) check(i uint64) {
	if i >= r.numBits {
		panic(&longbitset.ErrIndexRange{Index: i, NumBits: r.numBits})
	}
}

// Len returns the number of bits stored in this bit set.
func (r *RedisBitSet) Len() uint64 {
	return r.numBits
}

// Get reports whether bit i is set.
func (r *RedisBitSet) Get(i uint64) bool {
	r.check(i)
	return r.redisClient.GetBit(context.Background(), r.bitsetKey, int64(i)).Val() == 1
}

// Set sets bit i.
func (r *RedisBitSet) Set(i uint64) {
	r.check(i)
	r.redisClient.SetBit(context.Background(), r.bitsetKey, int64(i), 1)
}

// Clear clears bit i.
func (r *RedisBitSet) Clear(i uint64) {
	r.check(i)
	r.redisClient.SetBit(context.Background(), r.bitsetKey, int64(i), 0)
}

// GetAndSet sets bit i and reports whether it was set before. SETBIT replies
// with the previous value, so this is one round trip and atomic on the Redis
// side.
func (r *RedisBitSet) GetAndSet(i uint64) bool {
	r.check(i)
	return r.redisClient.SetBit(context.Background(), r.bitsetKey, int64(i), 1).Val() == 1
}

// GetAndClear clears bit i and reports whether it was set before.
func (r *RedisBitSet) GetAndClear(i uint64) bool {
	r.check(i)
	return r.redisClient.SetBit(context.Background(), r.bitsetKey, int64(i), 0).Val() == 1
}

// ClearAll clears the entire BitSet.
func (r *RedisBitSet) ClearAll() {
	r.redisClient.Set(context.Background(), r.bitsetKey, "", r.expiration)
}

// Count returns the number of set bits.
func (r *RedisBitSet) Count() uint64 {
	return uint64(r.redisClient.BitCount(context.Background(), r.bitsetKey, nil).Val())
}

// Snapshot returns a copy of the remote bits as longbitset-layout words.
// Redis addresses the high bit of each byte first while the words put the
// low bit first, so every byte goes through bits.Reverse8 on the way out.
func (r *RedisBitSet) Snapshot() []uint64 {
	words := make([]uint64, longbitset.WordsNeeded(r.numBits))
	raw := []byte(r.redisClient.Get(context.Background(), r.bitsetKey).Val())
	if limit := len(words) * 8; len(raw) > limit {
		raw = raw[:limit]
	}
	for i, by := range raw {
		words[i>>3] |= uint64(bits.Reverse8(by)) << ((i & 7) * 8)
	}
	return words
}

// store rewrites the whole value from longbitset-layout words and refreshes
// the expiration. words must hold at least Len bits.
func (r *RedisBitSet) store(words []uint64) error {
	raw := make([]byte, (r.numBits+7)/8)
	for i := range raw {
		raw[i] = bits.Reverse8(byte(words[i>>3] >> ((i & 7) * 8)))
	}
	return r.redisClient.Set(context.Background(), r.bitsetKey, raw, r.expiration).Err()
}

// Restore replaces the remote value with the given words, under the same
// contract as longbitset.FromWords: enough words for Len bits, no set bits
// past them.
func (r *RedisBitSet) Restore(words []uint64) error {
	if _, err := longbitset.FromWords(words, r.numBits); err != nil {
		return err
	}
	return r.store(words)
}

// Union folds the bits under other's key into this key with a server-side
// BITOP OR. Panics with *longbitset.ErrSizeMismatch when other spans more
// words than the receiver. Neither key's expiration is refreshed.
func (r *RedisBitSet) Union(other *RedisBitSet) error {
	words, otherWords := longbitset.WordsNeeded(r.numBits), longbitset.WordsNeeded(other.numBits)
	if otherWords > words {
		panic(&longbitset.ErrSizeMismatch{Words: words, OtherWords: otherWords})
	}
	return r.redisClient.BitOpOr(context.Background(), r.bitsetKey, r.bitsetKey, other.bitsetKey).Err()
}

// Key returns the Redis key the bits live under.
func (r *RedisBitSet) Key() string {
	return r.bitsetKey
}

// WriteTo writes the bit set to a stream in the same binary format as the
// in-memory implementation: the capacity in bits followed by the used words,
// big-endian. A set written from Redis can be read into process memory and
// the other way around.
func (r *RedisBitSet) WriteTo(stream io.Writer) (int64, error) {
	if err := binary.Write(stream, binary.BigEndian, r.numBits); err != nil {
		return 0, err
	}
	words := r.Snapshot()
	if err := binary.Write(stream, binary.BigEndian, words); err != nil {
		return 8, err
	}
	return int64(8 + 8*len(words)), nil
}

// ReadFrom replaces the remote value and the capacity with a stream written
// by WriteTo, on this or the in-memory implementation. The stream is
// validated before anything is written to Redis.
func (r *RedisBitSet) ReadFrom(stream io.Reader) (int64, error) {
	var numBits uint64
	if err := binary.Read(stream, binary.BigEndian, &numBits); err != nil {
		return 0, err
	}
	if numBits == 0 {
		return 8, &longbitset.ErrCapacity{Words: 0, NumBits: 0}
	}
	words := make([]uint64, longbitset.WordsNeeded(numBits))
	if err := binary.Read(stream, binary.BigEndian, words); err != nil {
		return 8, err
	}
	n := int64(8 + 8*len(words))
	if _, err := longbitset.FromWords(words, numBits); err != nil {
		return n, err
	}
	r.numBits = numBits
	if err := r.store(words); err != nil {
		return n, err
	}
	return n, nil
}
