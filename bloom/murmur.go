package bloom

import "github.com/twmb/murmur3"

// baseHashes returns the four hash values of data that are used to create k
// hashes
func baseHashes(data []byte) [4]uint64 {
	a1 := []byte{1} // to grab another bit of data
	hasher := murmur3.New128()
	hasher.Write(data) // #nosec
	v1, v2 := hasher.Sum128()
	hasher.Write(a1) // #nosec
	v3, v4 := hasher.Sum128()
	return [4]uint64{
		v1, v2, v3, v4,
	}
}

// location returns the ith hashed location using the four base hash values
func location(h [4]uint64, i uint64) uint64 {
	return h[i%2] + i*h[2+(((i+(i%2))%4)/2)]
}

// Locations returns a list of hash locations representing a data item.
func Locations(data []byte, k uint64) []uint64 {
	locs := make([]uint64, k)
	// calculate locations
	h := baseHashes(data)
	for i := uint64(0); i < k; i++ {
		locs[i] = location(h, i)
	}
	return locs
}
