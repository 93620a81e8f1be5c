package main

import "unifying.dev/frame"

// demoReceiver answers a pairing attempt the way a real Unifying receiver
// would, entirely in-process, so the default invocation of this command
// needs no hardware to demonstrate the handshake end to end.
type demoReceiver struct {
	*engineSimulator
	deviceID   byte
	newAddress [frame.AddressLen]byte
	productID  uint16
	recvCrypto uint32
	recvSerial uint32

	pending []byte
}

func newDemoReceiver() *demoReceiver {
	r := &demoReceiver{
		engineSimulator: newEngineSimulator(),
		deviceID:        0x01,
		newAddress:      [frame.AddressLen]byte{0x11, 0x22, 0x33, 0x44, 0x55},
		productID:       0xBEEF,
		recvCrypto:      0xCAFEBABE,
		recvSerial:      0x12345678,
	}
	r.engineSimulator.onTransmit = r.onTransmit
	return r
}

func (r *demoReceiver) onTransmit(payload []byte) {
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
		r.Deliver(r.pending)
	}
}
