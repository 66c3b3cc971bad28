// SPDX-License-Identifier: EPL-2.0

package transcode

import (
	"errors"
	"fmt"
	"io"
)

const readFrames = 4096

// readMono drains src and averages its channels into one.
func readMono(src Source) ([]float32, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d channels", ErrInvalidRate, channels)
	}

	buf := make([]float32, readFrames*channels)
	var (
		out  []float32
		tail []float32 // values of a frame split across reads
	)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			vals := buf[:n]
			if len(tail) > 0 {
				vals = append(tail, vals...)
				tail = nil
			}
			frames := len(vals) / channels
			out = mixDown(out, vals[:frames*channels], channels)
			if rest := vals[frames*channels:]; len(rest) > 0 {
				tail = append([]float32(nil), rest...)
			}
		}

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		if n == 0 {
			// a source that never reports EOF must still end
			return out, nil
		}
	}
}

func mixDown(out, vals []float32, channels int) []float32 {
	switch channels {
	case 1:
		return append(out, vals...)
	case 2:
		for f := 0; f < len(vals); f += 2 {
			out = append(out, (vals[f]+vals[f+1])*0.5)
		}
	default:
		inv := 1 / float32(channels)
		for f := 0; f < len(vals); f += channels {
			var sum float32
			for _, v := range vals[f : f+channels] {
				sum += v
			}
			out = append(out, sum*inv)
		}
	}
	return out
}
