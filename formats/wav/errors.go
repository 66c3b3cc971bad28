// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	// ErrMalformedContainer is the error kind for every header that cannot
	// be walked up to its data chunk.
	ErrMalformedContainer = errors.New("malformed WAV container")
	ErrNotWavFile         = errors.New("not a WAV file")
	ErrMissingFormat      = errors.New("data chunk before fmt chunk")
	ErrMissingData        = errors.New("no data chunk")
)
