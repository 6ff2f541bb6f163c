package blob

import "github.com/dexcodec/dex/internal/hash"

// ContentHash returns a non-wire xxHash64 fingerprint of m's re-encoded
// byte image. It is not part of the dex format (the on-wire Adler-32
// checksum is carried verbatim in section.Header and never recomputed by
// this codec) — this exists for
// test assertions and for use as a cache key by the cache package.
func (m *Model) ContentHash() (uint64, error) {
	enc, err := NewEncoder()
	if err != nil {
		return 0, err
	}
	data, err := enc.Encode(m)
	if err != nil {
		return 0, err
	}
	return hash.Bytes(data), nil
}
