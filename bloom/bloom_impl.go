/*
In this implementation, the hashing functions used is murmurhash,
a non-cryptographic hashing function.
*/
package bloom

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"io"
	"math"

	"github.com/HoangViet144/longbitset"
)

// A BloomFilter is a representation of a set of _n_ items, where the main
// requirement is to make membership queries; _i.e._, whether an item is a
// member of a set.
type bloomFilterImpl struct {
	m uint64
	k uint64
	b BitSet
}

// location returns the ith hashed location using the four base hash values
func (f *bloomFilterImpl) location(h [4]uint64, i uint64) uint64 {
	return location(h, i) % f.m
}

func (f *bloomFilterImpl) Cap() uint64 {
	return f.m
}

func (f *bloomFilterImpl) K() uint64 {
	return f.k
}

func (f *bloomFilterImpl) BitSet() BitSet {
	return f.b
}

func (f *bloomFilterImpl) Add(data []byte) BloomFilter {
	h := baseHashes(data)
	for i := uint64(0); i < f.k; i++ {
		f.b.Set(f.location(h, i))
	}
	return f
}

func (f *bloomFilterImpl) AddString(data string) BloomFilter {
	return f.Add([]byte(data))
}

func (f *bloomFilterImpl) Test(data []byte) bool {
	h := baseHashes(data)
	for i := uint64(0); i < f.k; i++ {
		if !f.b.Get(f.location(h, i)) {
			return false
		}
	}
	return true
}

func (f *bloomFilterImpl) TestString(data string) bool {
	return f.Test([]byte(data))
}

func (f *bloomFilterImpl) TestLocations(locs []uint64) bool {
	for i := 0; i < len(locs); i++ {
		if !f.b.Get(locs[i] % f.m) {
			return false
		}
	}
	return true
}

func (f *bloomFilterImpl) TestAndAdd(data []byte) bool {
	present := true
	h := baseHashes(data)
	for i := uint64(0); i < f.k; i++ {
		// GetAndSet both tests and sets the location in one atomic step.
		if !f.b.GetAndSet(f.location(h, i)) {
			present = false
		}
	}
	return present
}

func (f *bloomFilterImpl) TestAndAddString(data string) bool {
	return f.TestAndAdd([]byte(data))
}

func (f *bloomFilterImpl) TestOrAdd(data []byte) bool {
	present := true
	h := baseHashes(data)
	for i := uint64(0); i < f.k; i++ {
		l := f.location(h, i)
		if !f.b.Get(l) {
			present = false
			f.b.Set(l)
		}
	}
	return present
}

func (f *bloomFilterImpl) TestOrAddString(data string) bool {
	return f.TestOrAdd([]byte(data))
}

func (f *bloomFilterImpl) ClearAll() BloomFilter {
	f.b.ClearAll()
	return f
}

func (f *bloomFilterImpl) ApproximatedSize() uint32 {
	x := float64(f.b.Count())
	m := float64(f.Cap())
	k := float64(f.K())
	size := -1 * m / k * math.Log(1-x/m) / math.Log(math.E)
	return uint32(math.Floor(size + 0.5)) // round
}

// bloomFilterJSON is an unexported type for marshaling/unmarshaling BloomFilter struct.
// The bit set travels as its word snapshot, so filters over any provider
// decode the same way.
type bloomFilterJSON struct {
	M uint64   `json:"m"`
	K uint64   `json:"k"`
	B []uint64 `json:"b"`
}

func (f *bloomFilterImpl) MarshalJSON() ([]byte, error) {
	return json.Marshal(bloomFilterJSON{f.m, f.k, f.b.Snapshot()})
}

// UnmarshalJSON rebuilds the filter over an in-memory bit set, whatever
// provider the encoder ran against.
func (f *bloomFilterImpl) UnmarshalJSON(data []byte) error {
	var j bloomFilterJSON
	err := json.Unmarshal(data, &j)
	if err != nil {
		return err
	}
	b, err := longbitset.FromWords(j.B, j.M)
	if err != nil {
		return err
	}
	f.m = j.M
	f.k = j.K
	f.b = b
	return nil
}

func (f *bloomFilterImpl) WriteTo(stream io.Writer) (int64, error) {
	err := binary.Write(stream, binary.BigEndian, f.m)
	if err != nil {
		return 0, err
	}
	err = binary.Write(stream, binary.BigEndian, f.k)
	if err != nil {
		return 0, err
	}
	numBytes, err := f.b.WriteTo(stream)
	return numBytes + int64(2*binary.Size(uint64(0))), err
}

func (f *bloomFilterImpl) ReadFrom(stream io.Reader) (int64, error) {
	var m, k uint64
	err := binary.Read(stream, binary.BigEndian, &m)
	if err != nil {
		return 0, err
	}
	err = binary.Read(stream, binary.BigEndian, &k)
	if err != nil {
		return 0, err
	}
	numBytes, err := f.b.ReadFrom(stream)
	if err != nil {
		return numBytes + int64(2*binary.Size(uint64(0))), err
	}
	f.m = m
	f.k = k
	return numBytes + int64(2*binary.Size(uint64(0))), nil
}

func (f *bloomFilterImpl) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	if err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (f *bloomFilterImpl) GobDecode(data []byte) error {
	buf := bytes.NewBuffer(data)
	_, err := f.ReadFrom(buf)

	return err
}

// Equal tests for the equality of two Bloom filters by parameters and
// contents. Filters over different providers, or over backing arrays of
// different physical length, compare equal when the same bits are set.
func (f *bloomFilterImpl) Equal(g BloomFilter) bool {
	return f.m == g.Cap() && f.k == g.K() && wordsEqual(f.b.Snapshot(), g.BitSet().Snapshot())
}

func wordsEqual(a, b []uint64) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for i, w := range a {
		if w != b[i] {
			return false
		}
	}
	for _, w := range b[len(a):] {
		if w != 0 {
			return false
		}
	}
	return true
}
