package hashtable

import (
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
)

// Hasher maps a key to its hash code. The table reduces the code modulo its
// capacity, so a Hasher only needs to spread keys over the full uint64 range.
type Hasher[K any] func(key K) uint64

// IntHasher hashes an int to its absolute value, keeping the home slot of a
// key equal to |key| mod capacity.
func IntHasher(key int) uint64 {
	if key < 0 {
		return uint64(-key)
	}
	return uint64(key)
}

// StringHasher hashes a string with xxHash64.
func StringHasher(key string) uint64 {
	return xxhash.Sum64String(key)
}

// ComparableHasher returns a Hasher for any comparable key type backed by
// hash/maphash with a per-call random seed. Two tables built from separate
// ComparableHasher calls place the same key in different slots.
func ComparableHasher[K comparable]() Hasher[K] {
	seed := maphash.MakeSeed()
	return func(key K) uint64 {
		return maphash.Comparable(seed, key)
	}
}
