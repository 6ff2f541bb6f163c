package blob

import "github.com/dexcodec/dex/internal/options"

type decoderConfig struct {
	rejectHiddenapi bool
}

// DecoderOption configures a Decoder constructed by NewDecoder.
type DecoderOption = options.Option[*decoderConfig]

// WithRejectHiddenapi causes Decode to fail with errs.ErrUnsupportedFeature
// if the map list declares a hiddenapi_class_data section, instead of
// decoding it into Model.HiddenapiClassDataItem.
func WithRejectHiddenapi() DecoderOption {
	return options.NoError(func(c *decoderConfig) {
		c.rejectHiddenapi = true
	})
}

type encoderConfig struct {
	fileSizeOverride *uint32
}

// EncoderOption configures an Encoder constructed by NewEncoder.
type EncoderOption = options.Option[*encoderConfig]

// WithFileSizeOverride writes size as the header's file_size field and
// sizes the output buffer to it, instead of m.Header.FileSize. Useful when
// assembling a Model programmatically rather than round-tripping a
// decoded one, where the caller may not have computed the total size yet.
func WithFileSizeOverride(size uint32) EncoderOption {
	return options.NoError(func(c *encoderConfig) {
		c.fileSizeOverride = &size
	})
}
