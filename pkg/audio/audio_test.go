package audio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateFormat_RejectsUnsupportedRate(t *testing.T) {
	if err := validateFormat(44100, Mono); err == nil {
		t.Fatal("expected rejection of 44100 Hz")
	}
}

func TestValidateFormat_AcceptsSpecRates(t *testing.T) {
	for _, rate := range []SampleRate{SampleRate8k, SampleRate48k} {
		for _, ch := range []Channels{Mono, Stereo} {
			if err := validateFormat(rate, ch); err != nil {
				t.Errorf("validateFormat(%d, %d) = %v, want nil", rate, ch, err)
			}
		}
	}
}

func TestFileSink_WritesLittleEndianPCM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.raw")
	sink, err := NewFileSink(path)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	if err := sink.Open(SampleRate8k, Mono); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := sink.Write([]int16{1, -1, 32767}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(data) != 6 {
		t.Fatalf("len(data) = %d, want 6", len(data))
	}
	if got := int16(binary.LittleEndian.Uint16(data[4:6])); got != 32767 {
		t.Errorf("third sample = %d, want 32767", got)
	}
}
