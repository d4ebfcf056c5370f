package audio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
)

// FileSink writes raw little-endian s16 PCM to a file, for offline
// playback review and worked-example test fixtures — no container
// format, matching the "samples in, no metadata" shape of §6's contract.
type FileSink struct {
	f *os.File
	w *bufio.Writer
}

// NewFileSink opens path for writing.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("audio: create %s: %w", path, err)
	}
	return &FileSink{f: f, w: bufio.NewWriter(f)}, nil
}

// Open validates the requested format; a raw-PCM file has no header to
// record it in, so the caller is responsible for remembering rate/channels
// out of band.
func (s *FileSink) Open(rate SampleRate, channels Channels) error {
	return validateFormat(rate, channels)
}

// Write appends samples as little-endian s16 PCM.
func (s *FileSink) Write(samples []int16) error {
	buf := make([]byte, 2)
	for _, v := range samples {
		binary.LittleEndian.PutUint16(buf, uint16(v))
		if _, err := s.w.Write(buf); err != nil {
			return fmt.Errorf("audio: file write: %w", err)
		}
	}
	return nil
}

// Drain flushes buffered writes to the underlying file.
func (s *FileSink) Drain() error {
	return s.w.Flush()
}

// Close drains and closes the file.
func (s *FileSink) Close() error {
	if err := s.Drain(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}
