// Package audio implements the decoder's audio sink contract (§6):
// open(rate_hz, channels), write(samples), drain(), close(). rate_hz is
// one of {8000, 48000}; channels is one of {1, 2}.
package audio

import "fmt"

// SampleRate is a sink's allowed PCM sample rate (§6).
type SampleRate int

const (
	SampleRate8k  SampleRate = 8000
	SampleRate48k SampleRate = 48000
)

// Channels is a sink's allowed channel count (§6).
type Channels int

const (
	Mono   Channels = 1
	Stereo Channels = 2
)

// Sink is the decoder's audio sink contract.
type Sink interface {
	Open(rate SampleRate, channels Channels) error
	Write(samples []int16) error
	Drain() error
	Close() error
}

// ErrUnsupportedFormat is returned by Open for a rate/channels combination
// outside §6's allowed set.
type ErrUnsupportedFormat struct {
	Rate     SampleRate
	Channels Channels
}

func (e ErrUnsupportedFormat) Error() string {
	return fmt.Sprintf("audio: unsupported format rate=%d channels=%d", e.Rate, e.Channels)
}

func validateFormat(rate SampleRate, channels Channels) error {
	if rate != SampleRate8k && rate != SampleRate48k {
		return ErrUnsupportedFormat{Rate: rate, Channels: channels}
	}
	if channels != Mono && channels != Stereo {
		return ErrUnsupportedFormat{Rate: rate, Channels: channels}
	}
	return nil
}
