package engine

import "unifying.dev/frame"

// Radio is the hardware capability the engine drives. Implementations
// speak to an nRF24-compatible 2.4GHz transceiver; see driver/nrf24 for a
// concrete periph.io-based one, and Simulator in this package for a fake
// used by tests.
type Radio interface {
	// Transmit sends payload on the current channel and address. It
	// returns an error if the transmission (or its ACK) was not
	// acknowledged by the receiver.
	Transmit(payload []byte) error
	// Available reports whether a received payload is waiting to be read.
	Available() bool
	// Size returns the length of the payload Available reported, or 0.
	Size() int
	// Receive reads the waiting payload into buf, which must be at least
	// Size() bytes, and returns the number of bytes written.
	Receive(buf []byte) (int, error)
	// SetAddress changes the address the radio transmits and listens on.
	SetAddress(address [frame.AddressLen]byte) error
	// SetChannel changes the RF channel the radio transmits and listens
	// on.
	SetChannel(channel byte) error
	// Now returns the current time in milliseconds since some fixed,
	// monotonic epoch. Like the 32-bit millisecond clocks it models, it is
	// expected to wrap.
	Now() uint32
}

// AES performs the AES-128-CTR keystream transform over a keystroke's
// 8-byte plaintext block. Implementations may use a hardware AES engine;
// SoftwareAES uses the standard library's crypto/aes.
type AES interface {
	Encrypt(data *[frame.AESDataLen]byte, key [frame.AESBlockLen]byte, iv [frame.AESBlockLen]byte) error
}
