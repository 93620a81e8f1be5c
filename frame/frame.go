// Package frame implements the Unifying wire codec: fixed-position byte
// frames, their checksum, and the tables used to derive RF channels,
// addresses and the per-session AES key.
package frame

import "unifying.dev/unifyerr"

// Fixed sizes used throughout the wire format.
const (
	AESBlockLen       = 16
	AESNoncePrefixLen = 7
	AESNonceSuffixLen = 5
	AESDataLen        = 8

	ChannelsLen        = 25
	PairingChannelsLen = 11
	AddressLen         = 5
	MaxPayloadLen      = 22
	MaxNameLen         = 16
	KeysLen            = 6
)

// Frame lengths, in bytes.
const (
	PairRequest1Len              = 22
	PairResponse1Len             = 22
	PairRequest2Len              = 22
	PairResponse2Len             = 22
	PairRequest3Len              = 22
	PairResponse3Len             = 10
	PairCompleteRequestLen       = 10
	WakeUpRequest1Len            = 22
	WakeUpRequest2Len            = 10
	SetTimeoutRequestLen         = 10
	KeepAliveRequestLen          = 5
	HIDPP10ShortLen              = 10
	HIDPP10ShortParamsLen        = 4
	HIDPP10LongLen               = 22
	HIDPP10LongParamsLen         = 17
	EncryptedKeystrokeRequestLen = 22
	MouseMoveRequestLen          = 10
)

// HID++ 1.0 sub-IDs.
const (
	SubIDSetRegister     = 0x80
	SubIDGetRegister     = 0x81
	SubIDSetLongRegister = 0x82
	SubIDGetLongRegister = 0x83
	SubIDErrorMsg        = 0x8F
)

// HID++ 1.0 error codes, as carried in an ERROR_MSG response.
const (
	HIDPPErrorSuccess             = 0x00
	HIDPPErrorInvalidSubID        = 0x01
	HIDPPErrorInvalidAddress      = 0x02
	HIDPPErrorInvalidValue        = 0x03
	HIDPPErrorConnectFail         = 0x04
	HIDPPErrorTooManyDevices      = 0x05
	HIDPPErrorAlreadyExists       = 0x06
	HIDPPErrorBusy                = 0x07
	HIDPPErrorUnknownDevice       = 0x08
	HIDPPErrorResourceError       = 0x09
	HIDPPErrorRequestUnavailable  = 0x0A
	HIDPPErrorInvalidParamValue   = 0x0B
	HIDPPErrorWrongPinCode        = 0x0C
)

// Report bytes identifying a frame's shape on the air.
const (
	ReportShort    = 0x10
	ReportLong     = 0x11
	ReportShortAck = 0x50
	ReportLongAck  = 0x51
)

// Default keep-alive timeouts, in milliseconds, for the two device classes
// the HID++ 1.0 specification recognizes.
const (
	DefaultTimeoutKeyboard = 20
	DefaultTimeoutMouse    = 8
)

// AESKeyBitmask and AESKeyIndex together deobfuscate the AES key carried in
// a pairing exchange: aesKey[i] = xnor(protoKey[AESKeyIndex[i]], AESKeyBitmask[i]).
var AESKeyBitmask = [AESBlockLen]byte{
	0xFF, 0x00, 0xFF, 0xFF, 0xFF, 0x00, 0xAA, 0xFF, 0xFF, 0xFF, 0x00, 0xFF, 0xFF, 0xAA, 0xFF, 0xFF,
}

var AESKeyIndex = [AESBlockLen]byte{
	0x07, 0x01, 0x00, 0x03, 0x0A, 0x02, 0x09, 0x0E, 0x08, 0x06, 0x0C, 0x05, 0x0D, 0x0F, 0x04, 0x0B,
}

// AESNoncePrefix and AESNonceSuffix bracket the 32-bit keystroke counter to
// form the 16-byte AES-CTR initialization vector.
var AESNoncePrefix = [AESNoncePrefixLen]byte{0x04, 0x14, 0x1D, 0x1F, 0x27, 0x28, 0x0D}
var AESNonceSuffix = [AESNonceSuffixLen]byte{0x0A, 0x0D, 0x13, 0x26, 0x0E}

// Channels lists every RF channel used during normal operation, in rotation
// order.
var Channels = [ChannelsLen]byte{
	5, 8, 11, 14, 17, 20, 23, 26, 29, 32, 35, 38, 41, 44, 47, 50, 53, 56, 59, 62, 65, 68, 71, 74, 77,
}

// PairingChannels lists the RF channels tried, in order, while pairing.
var PairingChannels = [PairingChannelsLen]byte{5, 8, 17, 32, 35, 41, 44, 62, 65, 71, 74}

// PairingAddress is the fixed RF address a device pairs on before it learns
// the receiver-assigned address.
var PairingAddress = [AddressLen]byte{0xBB, 0x0A, 0xDC, 0xA5, 0x75}

// PutUint16 writes v to b[0:2], big-endian.
func PutUint16(b []byte, v uint16) {
	b[0] = byte(v >> 8)
	b[1] = byte(v)
}

// Uint16 reads a big-endian uint16 from b[0:2].
func Uint16(b []byte) uint16 {
	return uint16(b[0])<<8 | uint16(b[1])
}

// PutUint32 writes v to b[0:4], big-endian.
func PutUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

// Uint32 reads a big-endian uint32 from b[0:4].
func Uint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

// ClampInt12 saturates v to the signed 12-bit range [-2048, 2047].
func ClampInt12(v int16) int16 {
	if v > 2047 {
		return 2047
	}
	if v < -2048 {
		return -2048
	}
	return v
}

// Checksum returns the checksum byte for buf: the two's-complement negation
// of the sum of buf's bytes, such that the sum of buf followed by its
// checksum is congruent to zero mod 256.
func Checksum(buf []byte) byte {
	var sum byte
	for _, b := range buf {
		sum -= b
	}
	return sum
}

// VerifyChecksum reports whether buf's last byte is the correct checksum of
// the bytes preceding it. buf must be at least one byte long.
func VerifyChecksum(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}
	return Checksum(buf[:len(buf)-1]) == buf[len(buf)-1]
}

// Xnor returns the bitwise XNOR of a and b.
func Xnor(a, b byte) byte {
	return ^(a ^ b)
}

// DeobfuscateAESKey recovers a session AES key from the obfuscated 16-byte
// value assembled during pairing (see ProtoAESKey).
func DeobfuscateAESKey(protoKey [AESBlockLen]byte) [AESBlockLen]byte {
	var key [AESBlockLen]byte
	for i := range key {
		key[i] = Xnor(protoKey[AESKeyIndex[i]], AESKeyBitmask[i])
	}
	return key
}

// NextChannel returns the channel that follows current in the rotation
// table, wrapping around. If current is not a recognized channel, rotation
// restarts at Channels[0].
func NextChannel(current byte) byte {
	for i, c := range Channels {
		if c == current {
			return Channels[(i+1)%len(Channels)]
		}
	}
	return Channels[0]
}

// Validate verifies a received payload's checksum and, if want is nonzero,
// that its length matches want.
func Validate(payload []byte, want int) error {
	if !VerifyChecksum(payload) {
		return unifyerr.Checksum
	}
	if want != 0 && len(payload) != want {
		return unifyerr.PayloadLength
	}
	return nil
}
