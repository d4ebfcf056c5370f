package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// paInitOnce guards portaudio.Initialize/Terminate, which are process-
// global: every PortAudioSink shares one initialization.
var (
	paInitOnce  sync.Once
	paInitErr   error
	paRefCount  int
	paRefMu     sync.Mutex
)

func paInit() error {
	paInitOnce.Do(func() { paInitErr = portaudio.Initialize() })
	return paInitErr
}

func paAcquire() error {
	paRefMu.Lock()
	defer paRefMu.Unlock()
	if err := paInit(); err != nil {
		return err
	}
	paRefCount++
	return nil
}

func paRelease() {
	paRefMu.Lock()
	defer paRefMu.Unlock()
	paRefCount--
	if paRefCount == 0 {
		portaudio.Terminate()
	}
}

// portAudioBufFrames is the fixed per-channel frame count of the output
// stream's write buffer; Write splits arbitrarily-sized sample slices into
// chunks of this size.
const portAudioBufFrames = 1024

// PortAudioSink plays decoded audio on the host's default output device
// via PortAudio, for live monitoring.
type PortAudioSink struct {
	stream   *portaudio.Stream
	buf      []int16
	channels int
}

// NewPortAudioSink returns a sink ready for Open.
func NewPortAudioSink() *PortAudioSink {
	return &PortAudioSink{}
}

// Open validates the format and opens the default output stream.
func (s *PortAudioSink) Open(rate SampleRate, channels Channels) error {
	if err := validateFormat(rate, channels); err != nil {
		return err
	}
	if err := paAcquire(); err != nil {
		return fmt.Errorf("audio: portaudio init: %w", err)
	}

	s.channels = int(channels)
	s.buf = make([]int16, portAudioBufFrames*s.channels)
	stream, err := portaudio.OpenDefaultStream(0, s.channels, float64(rate), portAudioBufFrames, &s.buf)
	if err != nil {
		paRelease()
		return fmt.Errorf("audio: open default stream: %w", err)
	}
	s.stream = stream
	return stream.Start()
}

// Write blocks writing samples to the output stream, one
// portAudioBufFrames*channels chunk at a time; a final short chunk is
// zero-padded.
func (s *PortAudioSink) Write(samples []int16) error {
	if s.stream == nil {
		return fmt.Errorf("audio: write before open")
	}
	chunk := portAudioBufFrames * s.channels
	for off := 0; off < len(samples); off += chunk {
		end := off + chunk
		if end > len(samples) {
			end = len(samples)
		}
		n := copy(s.buf, samples[off:end])
		for i := n; i < len(s.buf); i++ {
			s.buf[i] = 0
		}
		if err := s.stream.Write(); err != nil {
			return fmt.Errorf("audio: stream write: %w", err)
		}
	}
	return nil
}

// Drain is a no-op: PortAudio's blocking Write already drains each call.
func (s *PortAudioSink) Drain() error { return nil }

// Close stops the stream and releases the shared PortAudio initialization.
func (s *PortAudioSink) Close() error {
	if s.stream == nil {
		return nil
	}
	err := s.stream.Close()
	paRelease()
	return err
}
