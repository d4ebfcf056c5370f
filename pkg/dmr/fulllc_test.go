package dmr

import "testing"

func TestFullLC_EncodeDecodeRoundTrip(t *testing.T) {
	lc := FullLC{
		FLCO:  FLCOGroupVoice,
		DstID: 0x123456,
		SrcID: 0x654321,
	}
	encoded := EncodeFullLC(lc)
	if len(encoded) != 196 {
		t.Fatalf("encoded Full LC length = %d, want 196", len(encoded))
	}

	decoded, errorsFixed, err := DecodeFullLC(encoded)
	if err != nil {
		t.Fatalf("DecodeFullLC: %v", err)
	}
	if errorsFixed != 0 {
		t.Fatalf("expected no corrected errors on a clean burst, got %d", errorsFixed)
	}
	if decoded.FLCO != lc.FLCO || decoded.DstID != lc.DstID || decoded.SrcID != lc.SrcID {
		t.Fatalf("decoded = %+v, want %+v", decoded, lc)
	}
}

func TestFullLC_CorrectsSingleBitError(t *testing.T) {
	lc := FullLC{FLCO: FLCOUnitToUnit, DstID: 0xABCDEF, SrcID: 0x112233}
	encoded := EncodeFullLC(lc)
	encoded[10] ^= 1

	decoded, errorsFixed, err := DecodeFullLC(encoded)
	if err != nil {
		t.Fatalf("DecodeFullLC: %v", err)
	}
	if errorsFixed == 0 {
		t.Fatalf("expected at least one corrected error")
	}
	if decoded.DstID != lc.DstID || decoded.SrcID != lc.SrcID {
		t.Fatalf("decoded = %+v, want recovered fields matching %+v", decoded, lc)
	}
}
