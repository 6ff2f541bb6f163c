// Package hash provides a non-wire content fingerprint used for test
// assertions and cache keys. Nothing in the DEX wire format uses xxHash;
// the on-wire header.Checksum is Adler-32 and is handled in section.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Bytes computes the xxHash64 of the given byte slice.
func Bytes(data []byte) uint64 {
	return xxhash.Sum64(data)
}
