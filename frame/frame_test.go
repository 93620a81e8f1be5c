package frame

import (
	"bytes"
	"testing"
)

func TestChecksumRoundTrip(t *testing.T) {
	buf := []byte{0x01, 0x5F, 0x01, 0x02, 0x03}
	cs := Checksum(buf)
	full := append(append([]byte{}, buf...), cs)

	var sum byte
	for _, b := range full {
		sum += b
	}
	if sum != 0 {
		t.Fatalf("sum of payload and checksum = %d, want 0", sum)
	}
	if !VerifyChecksum(full) {
		t.Fatalf("VerifyChecksum(%x) = false, want true", full)
	}
	full[0] ^= 0xFF
	if VerifyChecksum(full) {
		t.Fatalf("VerifyChecksum(%x) = true after corruption, want false", full)
	}
}

func TestXnor(t *testing.T) {
	cases := []struct{ a, b, want byte }{
		{0xFF, 0xFF, 0xFF},
		{0x00, 0x00, 0xFF},
		{0xFF, 0x00, 0x00},
		{0xAA, 0x55, 0x00},
	}
	for _, c := range cases {
		if got := Xnor(c.a, c.b); got != c.want {
			t.Errorf("Xnor(%#x, %#x) = %#x, want %#x", c.a, c.b, got, c.want)
		}
	}
}

func TestDeobfuscateAESKey(t *testing.T) {
	var proto [AESBlockLen]byte
	for i := range proto {
		proto[i] = byte(i)
	}
	key := DeobfuscateAESKey(proto)
	for i := range key {
		want := Xnor(proto[AESKeyIndex[i]], AESKeyBitmask[i])
		if key[i] != want {
			t.Errorf("key[%d] = %#x, want %#x", i, key[i], want)
		}
	}
}

func TestClampInt12(t *testing.T) {
	cases := []struct{ in, want int16 }{
		{0, 0},
		{2047, 2047},
		{2048, 2047},
		{30000, 2047},
		{-2048, -2048},
		{-2049, -2048},
		{-30000, -2048},
	}
	for _, c := range cases {
		if got := ClampInt12(c.in); got != c.want {
			t.Errorf("ClampInt12(%d) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNextChannelCoversAllChannels(t *testing.T) {
	seen := make(map[byte]bool)
	ch := Channels[0]
	for i := 0; i < len(Channels); i++ {
		seen[ch] = true
		ch = NextChannel(ch)
	}
	if len(seen) != len(Channels) {
		t.Fatalf("rotated through %d distinct channels, want %d", len(seen), len(Channels))
	}
	if ch != Channels[0] {
		t.Fatalf("rotation did not return to Channels[0] after a full cycle, got %d", ch)
	}
}

func TestNextChannelUnknownRestarts(t *testing.T) {
	if got := NextChannel(0); got != Channels[0] {
		t.Fatalf("NextChannel(0) = %d, want %d", got, Channels[0])
	}
}

func TestPairRequest1Layout(t *testing.T) {
	req := PairRequest1{ID: 0x01, Timeout: 20, ProductID: 0xC52B, DeviceType: 0x0100}
	b := req.Marshal()
	if len(b) != PairRequest1Len {
		t.Fatalf("len = %d, want %d", len(b), PairRequest1Len)
	}
	if b[0] != 0x01 || b[1] != 0x5F || b[2] != 0x01 {
		t.Fatalf("header = % X, want 01 5F 01 ...", b[:3])
	}
	if b[8] != 20 {
		t.Fatalf("timeout byte = %d, want 20", b[8])
	}
	if Uint16(b[9:]) != 0xC52B {
		t.Fatalf("product id = %#x, want 0xC52B", Uint16(b[9:]))
	}
	if b[11] != 0x04 {
		t.Fatalf("protocol byte = %#x, want 0x04", b[11])
	}
	if Uint16(b[13:]) != 0x0100 {
		t.Fatalf("device type = %#x, want 0x0100", Uint16(b[13:]))
	}
	if b[20] != 0x01 {
		t.Fatalf("trailing marker = %#x, want 0x01", b[20])
	}
	if !VerifyChecksum(b) {
		t.Fatalf("checksum invalid for %x", b)
	}
}

func TestPairResponse1RoundTrip(t *testing.T) {
	b := make([]byte, PairResponse1Len)
	b[0] = 0x01
	b[2] = 0x01
	addr := [AddressLen]byte{0x11, 0x22, 0x33, 0x44, 0x55}
	copy(b[3:8], addr[:])
	PutUint16(b[9:], 0xABCD)
	PutUint16(b[13:], 0x0200)
	b[21] = Checksum(b[:21])

	r, err := UnmarshalPairResponse1(b)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if r.ID != 0x01 || r.Step != 0x01 {
		t.Fatalf("id/step = %d/%d, want 1/1", r.ID, r.Step)
	}
	if r.Address != addr {
		t.Fatalf("address = %x, want %x", r.Address, addr)
	}
	if r.ProductID != 0xABCD || r.DeviceType != 0x0200 {
		t.Fatalf("product/type = %#x/%#x, want 0xABCD/0x0200", r.ProductID, r.DeviceType)
	}
}

func TestMouseMoveRequestLayout(t *testing.T) {
	r := MouseMoveRequest{Buttons: 0x01, MoveX: 171, MoveY: 205, WheelX: 1, WheelY: -1}
	b := r.Marshal()
	if len(b) != MouseMoveRequestLen {
		t.Fatalf("len = %d, want %d", len(b), MouseMoveRequestLen)
	}
	if b[2] != 0x01 {
		t.Fatalf("buttons = %#x, want 0x01", b[2])
	}
	// Decode the same high-nibble-split 12-bit pair the wire format uses
	// and check it reproduces the inputs.
	gotX := int16(b[4])<<4 | int16(b[5])>>4
	gotY := int16(b[5]&0x0F)<<8 | int16(b[6])
	if gotX != 171 || gotY != 205 {
		t.Errorf("packed X/Y decode to %d/%d, want 171/205", gotX, gotY)
	}
	if !VerifyChecksum(b) {
		t.Fatalf("checksum invalid for %x", b)
	}
}

func TestMouseMoveSaturates(t *testing.T) {
	r := MouseMoveRequest{MoveX: 30000, MoveY: -30000}
	b := r.Marshal()
	gotX := int16(b[4])<<4 | int16(b[5])>>4
	if gotX != 2047 {
		t.Errorf("MoveX not saturated to 2047, decoded %d", gotX)
	}
}

func TestIsWakeUp(t *testing.T) {
	long := make([]byte, WakeUpRequest1Len)
	long[1] = ReportLongAck
	if !IsWakeUp(long) {
		t.Errorf("IsWakeUp(long) = false, want true")
	}
	short := make([]byte, WakeUpRequest2Len)
	short[1] = ReportShortAck
	if !IsWakeUp(short) {
		t.Errorf("IsWakeUp(short) = false, want true")
	}
	other := make([]byte, HIDPP10ShortLen)
	other[1] = ReportShort
	if IsWakeUp(other) {
		t.Errorf("IsWakeUp(hidpp short) = true, want false")
	}
}

func TestEncryptedKeystrokeIVLayout(t *testing.T) {
	iv := EncryptedKeystrokeIV{Counter: 0x01020304}.Marshal()
	if !bytes.Equal(iv[0:7], AESNoncePrefix[:]) {
		t.Errorf("prefix = % X, want % X", iv[0:7], AESNoncePrefix)
	}
	if Uint32(iv[7:11]) != 0x01020304 {
		t.Errorf("counter = %#x, want 0x01020304", Uint32(iv[7:11]))
	}
	if !bytes.Equal(iv[11:16], AESNonceSuffix[:]) {
		t.Errorf("suffix = % X, want % X", iv[11:16], AESNonceSuffix)
	}
}
