package iq

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dbehnke/trunkcore/pkg/ringbuf"
)

// FileSource replays a captured u8 IQ file (e.g. a gqrx or rtl_sdr -f
// capture) through the same Source contract as a live dongle, for offline
// testing and repeatable worked-example runs. Configuration setters are
// no-ops (a recording has a fixed, already-known frequency/rate) except
// where noted.
type FileSource struct {
	f       *os.File
	stopped chan struct{}
}

// NewFileSource opens path for IQ replay.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("iq: open %s: %w", path, err)
	}
	return &FileSource{f: f, stopped: make(chan struct{})}, nil
}

func (s *FileSource) SetFrequency(hz int64) error             { return nil }
func (s *FileSource) SetSampleRate(hz int) error               { return nil }
func (s *FileSource) SetGain(mode GainMode, tenthDB int) error  { return nil }
func (s *FileSource) SetPPM(ppm int) error                      { return nil }
func (s *FileSource) SetDirectSampling(mode DirectSampling) error { return nil }
func (s *FileSource) SetOffsetTuning(enabled bool) error        { return nil }
func (s *FileSource) SetTunerBandwidth(hz int) error            { return nil }
func (s *FileSource) SetBiasTee(enabled bool) error             { return nil }

// Mute discards the next n bytes of the file without decoding them.
func (s *FileSource) Mute(n int) error {
	_, err := io.CopyN(io.Discard, s.f, int64(n))
	return err
}

// StartAsync reads u8 IQ byte pairs from the file, widens them, and pushes
// them into ring until EOF, ctx cancellation, or StopAsync.
func (s *FileSource) StartAsync(ctx context.Context, ring *ringbuf.Ring[Sample], bufLen int) error {
	buf := make([]byte, bufLen*2)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopped:
			return nil
		default:
		}

		n, err := s.f.Read(buf)
		if n > 0 {
			for i := 0; i+1 < n; i += 2 {
				ring.Push(Sample{I: WidenU8(buf[i]), Q: WidenU8(buf[i+1])})
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("iq: file read: %w", err)
		}
	}
}

// StopAsync signals StartAsync's read loop to return.
func (s *FileSource) StopAsync() error {
	close(s.stopped)
	return nil
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.f.Close()
}
