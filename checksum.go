package lexcode

import "github.com/cespare/xxhash/v2"

// Checksum returns a 64-bit hash of an encoded key, suitable for a
// corruption check on a stored key or for bucketing keys across shards.
// It is not part of the order-preserving format itself — two different
// keys with the same checksum still compare correctly against each other
// by their raw encoded bytes.
func Checksum(encoded []byte) uint64 {
	return xxhash.Sum64(encoded)
}
