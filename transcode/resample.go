// SPDX-License-Identifier: EPL-2.0

package transcode

// lowpassAlpha is the one-pole smoothing applied before downsampling.
const lowpassAlpha = 0.5

// resample converts mono samples from one rate to another with cubic
// interpolation. Downsampling is preceded by a one-pole low-pass filter.
func resample(in []float32, from, to int) []float32 {
	if from == to || len(in) == 0 {
		return in
	}

	ratio := float64(from) / float64(to)
	if ratio > 1 {
		in = lowpass(in, lowpassAlpha)
	}

	last := len(in) - 1
	at := func(i int) float32 {
		return in[max(0, min(i, last))]
	}

	out := make([]float32, int(float64(len(in))/ratio))
	for k := range out {
		x := float64(k) * ratio
		i := int(x)
		out[k] = cubic(at(i-1), at(i), at(i+1), at(i+2), float32(x-float64(i)))
	}

	return out
}

func lowpass(in []float32, alpha float32) []float32 {
	out := make([]float32, len(in))
	state := in[0]
	for i, v := range in {
		state = alpha*v + (1-alpha)*state
		out[i] = state
	}
	return out
}

// cubic is Catmull-Rom interpolation between y1 and y2 at x in [0, 1).
func cubic(y0, y1, y2, y3, x float32) float32 {
	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return a0*x*x*x + a1*x*x + a2*x + a3
}

// toInt16 clamps x to [-1, 1] and scales it to 16 bits.
func toInt16(x float32) int16 {
	switch {
	case x > 1:
		x = 1
	case x < -1:
		x = -1
	}
	return int16(x * 32767)
}
