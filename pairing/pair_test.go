package pairing

import (
	"testing"

	"unifying.dev/engine"
	"unifying.dev/frame"
)

// scriptedReceiver answers a device's pairing attempt by watching what the
// simulator transmits, building the matching scripted response once it
// sees a new request step, and re-delivering that response as the ACK
// payload of every subsequent transmission until the next step arrives —
// modeling a receiver that keeps acking with its queued reply until the
// device moves on, since the device may discard an ACK payload once
// (see Pair's post-attempt buffer clears) before explicitly waiting for one.
type scriptedReceiver struct {
	sim        *engine.Simulator
	deviceID   byte
	newAddress [frame.AddressLen]byte
	productID  uint16
	recvCrypto uint32
	recvSerial uint32

	pending []byte
}

func (r *scriptedReceiver) onTransmit(payload []byte) {
	switch {
	case len(payload) == frame.PairRequest1Len && payload[2] == 0x01:
		resp := make([]byte, frame.PairResponse1Len)
		resp[0] = r.deviceID
		resp[2] = 0x01
		copy(resp[3:8], r.newAddress[:])
		frame.PutUint16(resp[9:], r.productID)
		resp[21] = frame.Checksum(resp[:21])
		r.pending = resp
	case len(payload) == frame.PairRequest2Len && payload[2] == 0x02:
		resp := make([]byte, frame.PairResponse2Len)
		resp[2] = 0x02
		frame.PutUint32(resp[3:], r.recvCrypto)
		frame.PutUint32(resp[7:], r.recvSerial)
		resp[21] = frame.Checksum(resp[:21])
		r.pending = resp
	case len(payload) == frame.PairRequest3Len && payload[2] == 0x03:
		resp := make([]byte, frame.PairResponse3Len)
		resp[2] = 0x06
		resp[9] = frame.Checksum(resp[:9])
		r.pending = resp
	case len(payload) == frame.PairCompleteRequestLen && payload[1] == 0x0F:
		r.pending = nil
	}
	if r.pending != nil {
		r.sim.Deliver(r.pending)
	}
}

// drivingSimulator wraps Simulator so every Transmit also runs the
// receiver script, since the engine under test has no goroutine of its own
// to drive a separate receiver concurrently.
type drivingSimulator struct {
	*engine.Simulator
	onTransmit func([]byte)
}

func (d *drivingSimulator) Transmit(payload []byte) error {
	err := d.Simulator.Transmit(payload)
	if err == nil {
		// Advance the clock well past any keep-alive interval so the next
		// due check (whether for a retry or a fresh keep-alive) succeeds
		// without the test spinning on a frozen clock.
		d.Simulator.Advance(1000)
		d.onTransmit(payload)
	}
	return err
}

func TestPairFullHandshake(t *testing.T) {
	sim := engine.NewSimulator()
	recv := &scriptedReceiver{
		sim:        sim,
		deviceID:   0x01,
		newAddress: [frame.AddressLen]byte{0xAA, 0xBB, 0xCC, 0xDD, 0xEE},
		productID:  0xBEEF,
		recvCrypto: 0xCAFEBABE,
		recvSerial: 0x12345678,
	}
	drv := &drivingSimulator{Simulator: sim, onTransmit: recv.onTransmit}

	s := engine.New(drv, engine.SoftwareAES{}, 4, frame.PairingAddress, [frame.AESBlockLen]byte{}, 0, frame.DefaultTimeoutKeyboard, frame.Channels[0])

	err := Pair(s, recv.deviceID, 0xABCD, 0x0100, 0x11111111, 0x22222222, 0x000D, "test device")
	if err != nil {
		t.Fatalf("Pair: %v", err)
	}
	if s.Address != recv.newAddress {
		t.Fatalf("Address = %x, want %x", s.Address, recv.newAddress)
	}

	var zero [frame.AESBlockLen]byte
	if s.AESKey == zero {
		t.Fatalf("AESKey was never derived")
	}

	wantProto := frame.ProtoAESKey{
		DeviceProductID:   0xABCD,
		ReceiverProductID: recv.productID,
		DeviceCrypto:      0x11111111,
		ReceiverCrypto:    recv.recvCrypto,
	}
	copy(wantProto.BaseAddress[:], recv.newAddress[:len(wantProto.BaseAddress)])
	wantKey := frame.DeobfuscateAESKey(wantProto.Marshal())
	if s.AESKey != wantKey {
		t.Fatalf("AESKey = %x, want %x", s.AESKey, wantKey)
	}
}

func TestPairRejectsLongName(t *testing.T) {
	sim := engine.NewSimulator()
	s := engine.New(sim, engine.SoftwareAES{}, 4, frame.PairingAddress, [frame.AESBlockLen]byte{}, 0, frame.DefaultTimeoutKeyboard, frame.Channels[0])
	err := Pair(s, 0x01, 0, 0, 0, 0, 0, "this name is far too long to fit")
	if err == nil {
		t.Fatalf("Pair should reject an over-length name")
	}
}

func TestEncryptedKeystrokeAdvancesCounter(t *testing.T) {
	sim := engine.NewSimulator()
	s := engine.New(sim, engine.SoftwareAES{}, 4, frame.PairingAddress, [frame.AESBlockLen]byte{}, 7, frame.DefaultTimeoutKeyboard, frame.Channels[0])
	if err := EncryptedKeystroke(s, 0, [frame.KeysLen]byte{0x04}); err != nil {
		t.Fatalf("EncryptedKeystroke: %v", err)
	}
	if s.AESCounter != 8 {
		t.Fatalf("AESCounter = %d, want 8", s.AESCounter)
	}
	if s.TxQueue.Len() != 1 {
		t.Fatalf("TxQueue.Len() = %d, want 1", s.TxQueue.Len())
	}
}
