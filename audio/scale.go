// SPDX-License-Identifier: EPL-2.0

package audio

import "encoding/binary"

// Scaler converts little-endian PCM samples into converter codes.
//
// 8-bit samples are unsigned. Wider samples are signed and get biased by
// half their range so silence lands on the converter midpoint. The biased
// value is then shifted from the source width to the converter resolution
// and masked. For 16-bit input and a 12-bit converter that is
//
//	((s + 32768) >> 4) & 0x0fff
//
// Samples wider than 4 bytes are scaled from their 4 most significant
// bytes.
type Scaler struct {
	res    Resolution
	width  int // bytes per sample in the stream
	skip   int // low-order bytes ignored
	bits   uint
	shift  int
	mask   uint32
	silent uint16
}

// NewScaler returns a Scaler for samples of bitsPerSample bits. bitsPerSample
// must be at least 8.
func NewScaler(bitsPerSample int, res Resolution) Scaler {
	width := bitsPerSample / 8
	used := min(width, 4)

	return Scaler{
		res:    res,
		width:  width,
		skip:   width - used,
		bits:   uint(used * 8),
		shift:  used*8 - int(res),
		mask:   uint32(res.Max()),
		silent: res.Midpoint(),
	}
}

// Width is the number of stream bytes consumed per sample.
func (s Scaler) Width() int { return s.width }

// Scale fills dst from src and returns how many whole samples src held.
// Entries of dst with no source sample are set to the converter midpoint.
func (s Scaler) Scale(src []byte, dst Buffer) int {
	n := min(len(src)/s.width, len(dst))

	switch s.bits {
	case 8:
		for i := range n {
			dst[i] = s.code(uint32(src[i*s.width+s.skip]))
		}
	case 16:
		for i := range n {
			v := int16(binary.LittleEndian.Uint16(src[i*s.width+s.skip:]))
			dst[i] = s.code(uint32(int32(v) + 1<<15))
		}
	default:
		for i := range n {
			dst[i] = s.code(s.biased(src[i*s.width+s.skip : (i+1)*s.width]))
		}
	}

	for i := n; i < len(dst); i++ {
		dst[i] = s.silent
	}

	return n
}

// biased reads a signed little-endian value of s.bits and offsets it into
// the unsigned range.
func (s Scaler) biased(b []byte) uint32 {
	var raw uint32
	for i := len(b) - 1; i >= 0; i-- {
		raw = raw<<8 | uint32(b[i])
	}

	// sign-extend to 32 bits
	v := int64(int32(raw<<(32-s.bits)) >> (32 - s.bits))
	return uint32(v + 1<<(s.bits-1))
}

func (s Scaler) code(u uint32) uint16 {
	if s.shift >= 0 {
		u >>= uint(s.shift)
	} else {
		u <<= uint(-s.shift)
	}
	return uint16(u & s.mask)
}
