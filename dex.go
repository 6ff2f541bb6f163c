// Package dex provides a thin convenience wrapper around the blob package
// for decoding and re-encoding Android dex container files.
//
// # Basic usage
//
//	model, err := dex.Deserialize(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, err := dex.Serialize(model)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// out is byte-identical to data.
//
// For fine-grained control over decoding or encoding behavior, construct a
// blob.Decoder or blob.Encoder directly and pass the matching options.
package dex

import "github.com/dexcodec/dex/blob"

// Deserialize parses data into a Model, walking the header and map list to
// materialize every section it references.
func Deserialize(data []byte, opts ...blob.DecoderOption) (*blob.Model, error) {
	dec, err := blob.NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}
	return dec.Decode()
}

// Serialize renders m back into its byte layout. Serialize(Deserialize(data))
// reproduces data byte-for-byte, since every section is placed back at the
// offset it was decoded from rather than a freshly computed layout.
func Serialize(m *blob.Model, opts ...blob.EncoderOption) ([]byte, error) {
	enc, err := blob.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}
	return enc.Encode(m)
}
