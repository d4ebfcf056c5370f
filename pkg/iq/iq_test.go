package iq

import (
	"context"
	"os"
	"testing"

	"github.com/dbehnke/trunkcore/pkg/ringbuf"
)

func TestWidenU8_CentresAroundZero(t *testing.T) {
	cases := []struct {
		in   byte
		want int16
	}{
		{0, -128},
		{128, 0},
		{255, 127},
	}
	for _, c := range cases {
		if got := WidenU8(c.in); got != c.want {
			t.Errorf("WidenU8(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNew_RejectsUnsupportedKind(t *testing.T) {
	if _, err := New(Config{Kind: "usb"}); err == nil {
		t.Fatal("expected ErrUnsupportedKind for usb")
	}
}

func TestFileSource_StreamsSamplesIntoRing(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "iq-*.raw")
	if err != nil {
		t.Fatal(err)
	}
	// Two IQ pairs: (128,128)=(0,0) and (0,255)=(-128,127).
	if _, err := f.Write([]byte{128, 128, 0, 255}); err != nil {
		t.Fatal(err)
	}
	f.Close()

	src, err := NewFileSource(f.Name())
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	defer src.Close()

	ring := ringbuf.NewRing[Sample](16)
	if err := src.StartAsync(context.Background(), ring, 2); err != nil {
		t.Fatalf("StartAsync: %v", err)
	}

	if ring.Len() != 2 {
		t.Fatalf("ring.Len() = %d, want 2", ring.Len())
	}
	first, _ := ring.Pop()
	if first.I != 0 || first.Q != 0 {
		t.Errorf("first sample = %+v, want {0 0}", first)
	}
	second, _ := ring.Pop()
	if second.I != -128 || second.Q != 127 {
		t.Errorf("second sample = %+v, want {-128 127}", second)
	}
}
