// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

const (
	DefaultResolution  = Resolution12
	DefaultBufferSize  = 256
	DefaultBufferCount = 16
)

// Resolution is the converter's native sample width in bits.
type Resolution int

const (
	Resolution8  Resolution = 8
	Resolution10 Resolution = 10
	Resolution12 Resolution = 12
	Resolution16 Resolution = 16
)

func (r Resolution) Valid() bool { return r >= 1 && r <= 16 }

// Max is the largest code the converter accepts.
func (r Resolution) Max() uint16 { return uint16(uint32(1)<<uint(r) - 1) }

// Midpoint is the code for a zero-amplitude (silent) sample.
func (r Resolution) Midpoint() uint16 { return uint16(1 << uint(r-1)) }

func (r Resolution) String() string { return fmt.Sprintf("%d-bit", int(r)) }

// Buffer is one block of converter codes. Its length is fixed by
// Config.BufferSize.
type Buffer []uint16

// Config is what a converter is started with.
type Config struct {
	Resolution  Resolution
	Frequency   int // output clock in Hz
	BufferSize  int // codes per buffer
	BufferCount int // buffers in the queue
}

// Validate reports configurations no converter can be started with.
func (c Config) Validate() error {
	switch {
	case !c.Resolution.Valid():
		return fmt.Errorf("%w: resolution %d", ErrConverterConfig, int(c.Resolution))
	case c.Frequency <= 0:
		return fmt.Errorf("%w: frequency %d Hz", ErrConverterConfig, c.Frequency)
	case c.BufferSize <= 0:
		return fmt.Errorf("%w: buffer size %d", ErrConverterConfig, c.BufferSize)
	case c.BufferCount <= 0:
		return fmt.Errorf("%w: buffer count %d", ErrConverterConfig, c.BufferCount)
	}
	return nil
}

// DAC is a digital-to-analog converter fed through a queue of buffers.
//
// Buffers move between the driver and its caller: Dequeue hands a free
// buffer out, Write hands it back filled. A caller must not keep a buffer
// after writing it.
type DAC interface {
	// Begin (re)starts output with cfg. Starting an already running
	// converter reconfigures it.
	Begin(cfg Config) error
	// Available reports whether a free buffer can be dequeued.
	Available() bool
	// Dequeue returns a free buffer of Config.BufferSize codes. Only valid
	// after Available returned true.
	Dequeue() Buffer
	// Write queues a filled buffer for output.
	Write(buf Buffer)
	// Stop halts output. Queued buffers are discarded.
	Stop()
}
