// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"testing"
)

func TestScaler_16To12MatchesBiasAndShift(t *testing.T) {
	t.Parallel()

	s := NewScaler(16, Resolution12)

	for v := -32768; v <= 32767; v += 7 {
		src := make([]byte, 2)
		binary.LittleEndian.PutUint16(src, uint16(int16(v)))
		dst := make(Buffer, 1)

		s.Scale(src, dst)

		want := uint16(((uint32(uint16(int16(v))) + 32768) >> 4) & 0x0fff)
		if dst[0] != want {
			t.Fatalf("Scale(%d) = %#x, want %#x", v, dst[0], want)
		}
	}
}

func TestScaler_Codes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		bits int
		res  Resolution
		src  []byte
		want uint16
	}{
		{"8-bit silence", 8, Resolution12, []byte{0x80}, 0x800},
		{"8-bit min", 8, Resolution12, []byte{0x00}, 0x000},
		{"8-bit max", 8, Resolution12, []byte{0xff}, 0xff0},
		{"8-bit to 8-bit", 8, Resolution8, []byte{0x42}, 0x42},
		{"16-bit silence", 16, Resolution12, []byte{0x00, 0x00}, 0x800},
		{"16-bit min", 16, Resolution12, []byte{0x00, 0x80}, 0x000},
		{"16-bit max", 16, Resolution12, []byte{0xff, 0x7f}, 0xfff},
		{"16-bit to 16-bit silence", 16, Resolution16, []byte{0x00, 0x00}, 0x8000},
		{"16-bit to 10-bit max", 16, Resolution10, []byte{0xff, 0x7f}, 0x3ff},
		{"24-bit silence", 24, Resolution12, []byte{0x00, 0x00, 0x00}, 0x800},
		{"24-bit min", 24, Resolution12, []byte{0x00, 0x00, 0x80}, 0x000},
		{"24-bit max", 24, Resolution12, []byte{0xff, 0xff, 0x7f}, 0xfff},
		{"24-bit -1", 24, Resolution12, []byte{0xff, 0xff, 0xff}, 0x7ff},
		{"32-bit silence", 32, Resolution12, []byte{0, 0, 0, 0}, 0x800},
		{"32-bit max", 32, Resolution12, []byte{0xff, 0xff, 0xff, 0x7f}, 0xfff},
		{"32-bit min", 32, Resolution16, []byte{0, 0, 0, 0x80}, 0x0000},
		{"64-bit uses top bytes", 64, Resolution12, []byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 0x80}, 0x000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewScaler(tt.bits, tt.res)
			dst := make(Buffer, 1)

			n := s.Scale(tt.src, dst)
			if n != 1 {
				t.Fatalf("Scale() n = %d, want 1", n)
			}
			if dst[0] != tt.want {
				t.Errorf("Scale() = %#x, want %#x", dst[0], tt.want)
			}
		})
	}
}

func TestScaler_ShortSourcePadsWithSilence(t *testing.T) {
	t.Parallel()

	s := NewScaler(16, Resolution12)
	dst := make(Buffer, 4)
	for i := range dst {
		dst[i] = 0xabc
	}

	// one and a half samples
	n := s.Scale([]byte{0xff, 0x7f, 0x12}, dst)

	if n != 1 {
		t.Errorf("Scale() n = %d, want 1", n)
	}
	want := Buffer{0xfff, 0x800, 0x800, 0x800}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %#x, want %#x", i, dst[i], want[i])
		}
	}
}

func TestScaler_LongSourceIsTruncated(t *testing.T) {
	t.Parallel()

	s := NewScaler(16, Resolution12)
	dst := make(Buffer, 2)

	n := s.Scale(make([]byte, 20), dst)
	if n != 2 {
		t.Errorf("Scale() n = %d, want 2", n)
	}
}

func TestScaler_Monotonic(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{8, 16, 24, 32} {
		s := NewScaler(bits, Resolution12)
		width := bits / 8
		prev := uint16(0)

		// walk the signed range from min to max in coarse steps
		steps := 512
		for i := range steps + 1 {
			frac := float64(i) / float64(steps)
			src := make([]byte, width)
			if bits == 8 {
				src[0] = byte(frac * 255)
			} else {
				span := float64(uint64(1) << uint(bits))
				v := int64(frac*(span-1)) - int64(span/2)
				for b := range width {
					src[b] = byte(uint64(v) >> (8 * uint(b)))
				}
			}

			dst := make(Buffer, 1)
			s.Scale(src, dst)
			if dst[0] < prev {
				t.Fatalf("%d-bit: code %#x after %#x at step %d", bits, dst[0], prev, i)
			}
			prev = dst[0]
		}
	}
}

func TestScaler_Width(t *testing.T) {
	t.Parallel()

	for bits, want := range map[int]int{8: 1, 16: 2, 24: 3, 32: 4} {
		if got := NewScaler(bits, Resolution12).Width(); got != want {
			t.Errorf("NewScaler(%d).Width() = %d, want %d", bits, got, want)
		}
	}
}

// TestScaler_ZeroAllocs verifies the per-buffer path does not allocate.
func TestScaler_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	s := NewScaler(16, Resolution12)
	src := make([]byte, 512)
	dst := make(Buffer, 256)

	allocs := testing.AllocsPerRun(100, func() {
		s.Scale(src, dst)
	})
	if allocs > 0 {
		t.Errorf("Scale allocated %v times, want 0", allocs)
	}
}

// BenchmarkScaler_16To12 benchmarks one converter buffer.
func BenchmarkScaler_16To12(b *testing.B) {
	s := NewScaler(16, Resolution12)
	src := make([]byte, DefaultBufferSize*2)
	for i := range src {
		src[i] = byte(i)
	}
	dst := make(Buffer, DefaultBufferSize)

	b.ReportAllocs()

	for b.Loop() {
		s.Scale(src, dst)
	}
}

// BenchmarkScaler_24To12 benchmarks the generic width path.
func BenchmarkScaler_24To12(b *testing.B) {
	s := NewScaler(24, Resolution12)
	src := make([]byte, DefaultBufferSize*3)
	dst := make(Buffer, DefaultBufferSize)

	b.ReportAllocs()

	for b.Loop() {
		s.Scale(src, dst)
	}
}
