package proto

import (
	"testing"

	"github.com/dbehnke/trunkcore/pkg/frame"
)

func buildYSFVoiceFrame() []byte {
	payload := make([]byte, ysfHeaderLength)
	fich := ysfFICH{FI: ysfFICommunication, CS: 1, CM: 0, BN: 0, BT: 1}
	fich.encode(payload)
	return payload
}

func buildYSFHeaderFrame(source, dest string) []byte {
	payload := make([]byte, ysfHeaderLength)
	fich := ysfFICH{FI: ysfFIHeader}
	fich.encode(payload)

	copy(payload[30:40], padYSFCallsign(source))
	copy(payload[40:50], padYSFCallsign(dest))
	return payload
}

func padYSFCallsign(cs string) []byte {
	out := make([]byte, ysfCallsignLength)
	copy(out, cs)
	for i := len(cs); i < ysfCallsignLength; i++ {
		out[i] = ' '
	}
	return out
}

func TestYSFFramer_DecodesVoiceFrame(t *testing.T) {
	f := NewYSFFramer()
	fr, ok, err := f.ProcessBits(buildYSFVoiceFrame())
	if err != nil {
		t.Fatalf("ProcessBits error: %v", err)
	}
	if !ok {
		t.Fatal("expected a valid FICH decode")
	}
	if fr.Family != frame.FamilyYSF {
		t.Errorf("family = %v, want frame.FamilyYSF", fr.Family)
	}
	if fr.Kind != "voice" {
		t.Errorf("kind = %q, want %q", fr.Kind, "voice")
	}
}

func TestYSFFramer_DecodesHeaderCallsigns(t *testing.T) {
	f := NewYSFFramer()
	fr, ok, err := f.ProcessBits(buildYSFHeaderFrame("N0CALL", "ALL"))
	if err != nil {
		t.Fatalf("ProcessBits error: %v", err)
	}
	if !ok {
		t.Fatal("expected a valid FICH decode")
	}
	if want := "header src=N0CALL dst=ALL"; fr.Kind != want {
		t.Errorf("kind = %q, want %q", fr.Kind, want)
	}
}

func TestYSFFramer_RejectsShortPayload(t *testing.T) {
	f := NewYSFFramer()
	if _, ok, err := f.ProcessBits(make([]byte, 4)); ok || err == nil {
		t.Fatal("expected rejection of an undersized YSF payload")
	}
}

func TestYSFFICH_EncodeDecodeRoundTrip(t *testing.T) {
	payload := make([]byte, 48)
	want := ysfFICH{FI: ysfFITestFrame, CS: 1, CM: 1, BN: 1, BT: 0}
	if err := want.encode(payload); err != nil {
		t.Fatalf("encode error: %v", err)
	}

	var got ysfFICH
	ok, err := got.decode(payload)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !ok {
		t.Fatal("expected successful decode")
	}
	if got != want {
		t.Fatalf("decoded FICH = %+v, want %+v", got, want)
	}
}
