package dmr

import "testing"

func TestDecodeLRRP_RoundTripFixedPoint(t *testing.T) {
	lat := int32(407128000) // 40.7128 deg * 1e7
	lon := int32(-740060000)

	data := make([]byte, 9)
	data[0] = byte(LRRPLocationResponse)
	data[1] = byte(uint32(lat) >> 24)
	data[2] = byte(uint32(lat) >> 16)
	data[3] = byte(uint32(lat) >> 8)
	data[4] = byte(uint32(lat))
	data[5] = byte(uint32(lon) >> 24)
	data[6] = byte(uint32(lon) >> 16)
	data[7] = byte(uint32(lon) >> 8)
	data[8] = byte(uint32(lon))

	msg, err := DecodeLRRP(data)
	if err != nil {
		t.Fatalf("DecodeLRRP: %v", err)
	}
	if msg.Opcode != LRRPLocationResponse {
		t.Fatalf("Opcode = %#x, want %#x", msg.Opcode, LRRPLocationResponse)
	}
	wantLat := float64(lat) / 1e7
	wantLon := float64(lon) / 1e7
	if msg.Latitude != wantLat {
		t.Fatalf("Latitude = %v, want %v", msg.Latitude, wantLat)
	}
	if msg.Longitude != wantLon {
		t.Fatalf("Longitude = %v, want %v", msg.Longitude, wantLon)
	}
}

func TestDecodeLRRP_RejectsShortPDU(t *testing.T) {
	if _, err := DecodeLRRP([]byte{0x05, 0x01}); err == nil {
		t.Fatalf("expected an error decoding a too-short LRRP PDU")
	}
}
