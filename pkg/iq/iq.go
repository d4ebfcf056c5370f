// Package iq implements the decoder's IQ source contract (§6): create a
// handle against a USB dongle or an rtl_tcp server, configure it, and
// stream raw samples into the IQ ring. Only the tcp and file kinds are
// implemented directly; usb requires a cgo librtlsdr binding which is out
// of scope for this pure-Go module (see DESIGN.md).
package iq

import (
	"context"
	"fmt"

	"github.com/dbehnke/trunkcore/pkg/ringbuf"
)

// GainMode selects automatic or a fixed tenth-dB gain, per §6.
type GainMode int

const (
	GainAuto GainMode = iota
	GainManual
)

// DirectSampling selects the direct-sampling ADC input, per §6.
type DirectSampling int

const (
	DirectSamplingOff DirectSampling = iota
	DirectSamplingI
	DirectSamplingQ
)

// Source is the decoder's IQ source contract (§6): create, configure, and
// stream. The file and rtl_tcp implementations read u8 IQ byte pairs and
// widen them to a signed centred representation with WidenU8 before
// pushing into the ring; there is no s16 input path.
type Source interface {
	SetFrequency(hz int64) error
	SetSampleRate(hz int) error
	SetGain(mode GainMode, tenthDB int) error
	SetPPM(ppm int) error
	SetDirectSampling(mode DirectSampling) error
	SetOffsetTuning(enabled bool) error
	SetTunerBandwidth(hz int) error
	SetBiasTee(enabled bool) error

	// StartAsync streams centred IQ sample pairs (I, Q) into ring until ctx
	// is cancelled or Close is called; bufLen bounds each read's sample
	// count.
	StartAsync(ctx context.Context, ring *ringbuf.Ring[Sample], bufLen int) error
	StopAsync() error

	// Mute discards the next n bytes of raw stream data without decoding
	// them, per §6's mute(bytes).
	Mute(n int) error

	Close() error
}

// Sample is one widened, centred IQ pair pushed into the IQ ring.
type Sample struct {
	I, Q int16
}

// WidenU8 widens an unsigned 8-bit IQ byte (USB dongle format, biased at
// 127.5) to a signed, DC-centred int16, per §6: "the source widens u8 to
// signed centred representation before filling the ring."
func WidenU8(b byte) int16 {
	return int16(int(b) - 128)
}

// ErrUnsupportedKind is returned by New for an IQ source kind this module
// does not implement.
type ErrUnsupportedKind struct{ Kind string }

func (e ErrUnsupportedKind) Error() string {
	return fmt.Sprintf("iq: unsupported source kind %q", e.Kind)
}
