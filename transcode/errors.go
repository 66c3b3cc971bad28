// SPDX-License-Identifier: EPL-2.0

package transcode

import "errors"

var (
	// ErrUnsupportedFormat is returned when no decoder is registered for
	// an input format.
	ErrUnsupportedFormat = errors.New("unsupported input format")

	ErrNotAiffFile = errors.New("not an AIFF file")
	ErrNotWavFile  = errors.New("not a WAV file")

	// ErrUnsupportedBitDepth is returned for integer PCM inputs that are
	// not 8, 16, 24 or 32 bits wide.
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")

	ErrInvalidRate = errors.New("invalid sample rate")
)
