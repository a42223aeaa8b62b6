package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a canonical attribute descriptor string.
// The mesh collection keys its lookup index by this hash.
func ID(key string) uint64 {
	return xxhash.Sum64String(key)
}
