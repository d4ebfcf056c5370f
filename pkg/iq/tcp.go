package iq

import (
	"context"
	"fmt"
	"io"
	"net"

	"github.com/bemasher/rtltcp"
	"github.com/dbehnke/trunkcore/pkg/ringbuf"
)

// TCPSource is an IQ source backed by an rtl_tcp server (§6's "tcp" kind):
// a dongle attached to a different host, streamed over rtl_tcp's
// protocol rather than direct libusb access.
type TCPSource struct {
	sdr     rtltcp.SDR
	stopped chan struct{}
}

// NewTCPSource connects to an rtl_tcp server at hostPort ("host:port").
func NewTCPSource(hostPort string) (*TCPSource, error) {
	addr, err := net.ResolveTCPAddr("tcp", hostPort)
	if err != nil {
		return nil, fmt.Errorf("iq: resolve %s: %w", hostPort, err)
	}
	s := &TCPSource{stopped: make(chan struct{})}
	if err := s.sdr.Connect(addr); err != nil {
		return nil, fmt.Errorf("iq: connect to rtl_tcp at %s: %w", hostPort, err)
	}
	return s, nil
}

// SetFrequency tunes the dongle's center frequency.
func (s *TCPSource) SetFrequency(hz int64) error {
	s.sdr.SetCenterFreq(uint32(hz))
	return nil
}

// SetSampleRate sets the dongle's ADC sample rate.
func (s *TCPSource) SetSampleRate(hz int) error {
	s.sdr.SetSampleRate(uint32(hz))
	return nil
}

// SetGain selects automatic gain or a fixed tenth-dB gain.
func (s *TCPSource) SetGain(mode GainMode, tenthDB int) error {
	s.sdr.SetGainMode(mode == GainAuto)
	if mode == GainManual {
		s.sdr.SetGain(uint32(tenthDB))
	}
	return nil
}

// SetPPM sets the frequency-correction offset in parts per million.
func (s *TCPSource) SetPPM(ppm int) error {
	s.sdr.SetFreqCorrection(uint32(ppm))
	return nil
}

// SetDirectSampling selects the direct-sampling ADC input.
func (s *TCPSource) SetDirectSampling(mode DirectSampling) error {
	s.sdr.SetDirectSampling(uint32(mode))
	return nil
}

// SetOffsetTuning enables or disables offset tuning (useful near DC for
// E4000 tuners).
func (s *TCPSource) SetOffsetTuning(enabled bool) error {
	s.sdr.SetOffsetTuning(enabled)
	return nil
}

// SetTunerBandwidth is a no-op over rtl_tcp: the protocol has no tuner
// intermediate-frequency bandwidth command, unlike direct libusb access.
func (s *TCPSource) SetTunerBandwidth(hz int) error {
	return nil
}

// SetBiasTee enables or disables the dongle's bias-tee output, where
// supported by the remote rtl_tcp server and tuner.
func (s *TCPSource) SetBiasTee(enabled bool) error {
	s.sdr.SetBiasTee(enabled)
	return nil
}

// Mute discards the next n bytes of the incoming IQ stream without
// decoding them.
func (s *TCPSource) Mute(n int) error {
	_, err := io.CopyN(io.Discard, &s.sdr, int64(n))
	return err
}

// StartAsync reads raw u8 IQ byte pairs from the rtl_tcp stream, widens
// each to a signed centred int16 (§6), and pushes the pairs into ring
// until ctx is cancelled.
func (s *TCPSource) StartAsync(ctx context.Context, ring *ringbuf.Ring[Sample], bufLen int) error {
	buf := make([]byte, bufLen*2)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopped:
			return nil
		default:
		}

		if _, err := io.ReadFull(&s.sdr, buf); err != nil {
			return fmt.Errorf("iq: rtl_tcp read: %w", err)
		}
		for i := 0; i+1 < len(buf); i += 2 {
			ring.Push(Sample{I: WidenU8(buf[i]), Q: WidenU8(buf[i+1])})
		}
	}
}

// StopAsync signals StartAsync's read loop to return.
func (s *TCPSource) StopAsync() error {
	close(s.stopped)
	return nil
}

// Close closes the rtl_tcp connection.
func (s *TCPSource) Close() error {
	return s.sdr.Close()
}
