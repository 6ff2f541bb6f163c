// Package cache provides an on-disk cache for serialized dex blobs, keyed
// by content hash. It sits entirely outside the codec's byte-exact
// round-trip boundary: it only ever stores and retrieves the bytes
// Serialize already produced, compressed for cheaper storage between CI
// runs or repeated local builds of an unchanged blob.
package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dexcodec/dex/blob"
	"github.com/dexcodec/dex/compress"
	"github.com/dexcodec/dex/format"
)

// Cache stores serialized dex blobs under dir, compressed with codec and
// named by their content hash.
type Cache struct {
	dir   string
	codec compress.Codec
}

// New creates a Cache rooted at dir, compressing entries with compressionType.
func New(dir string, compressionType format.CompressionType) (*Cache, error) {
	codec, err := compress.GetCodec(compressionType)
	if err != nil {
		return nil, err
	}
	return &Cache{dir: dir, codec: codec}, nil
}

func (c *Cache) path(key uint64) string {
	return filepath.Join(c.dir, fmt.Sprintf("%016x.dexcache", key))
}

// Store serializes m, compresses the result, and writes it keyed by m's
// ContentHash. It returns the key so callers can Load it back later.
func (c *Cache) Store(m *blob.Model) (uint64, error) {
	enc, err := blob.NewEncoder()
	if err != nil {
		return 0, err
	}
	data, err := enc.Encode(m)
	if err != nil {
		return 0, err
	}

	key, err := m.ContentHash()
	if err != nil {
		return 0, err
	}

	compressed, err := c.codec.Compress(data)
	if err != nil {
		return 0, fmt.Errorf("cache: compress: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return 0, fmt.Errorf("cache: mkdir: %w", err)
	}
	if err := os.WriteFile(c.path(key), compressed, 0o644); err != nil {
		return 0, fmt.Errorf("cache: write: %w", err)
	}

	return key, nil
}

// Load decompresses and decodes the entry stored under key. It returns
// os.ErrNotExist (wrapped) if no entry exists.
func (c *Cache) Load(key uint64) (*blob.Model, error) {
	compressed, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, fmt.Errorf("cache: read: %w", err)
	}

	data, err := c.codec.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("cache: decompress: %w", err)
	}

	dec, err := blob.NewDecoder(data)
	if err != nil {
		return nil, err
	}
	return dec.Decode()
}

// Has reports whether an entry exists for key without decoding it.
func (c *Cache) Has(key uint64) bool {
	_, err := os.Stat(c.path(key))
	return err == nil
}
