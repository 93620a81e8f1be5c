package frame

// SetTimeoutRequest asks the receiver to change the device's keep-alive
// timeout.
type SetTimeoutRequest struct {
	Timeout uint16
}

// Marshal encodes r as a SetTimeoutRequestLen-byte frame.
func (r SetTimeoutRequest) Marshal() []byte {
	b := make([]byte, SetTimeoutRequestLen)
	b[1] = 0x4F
	PutUint16(b[3:], r.Timeout)
	b[9] = Checksum(b[:9])
	return b
}

// KeepAliveRequest carries no payload beyond the current timeout; it is
// transmitted whenever nothing else is queued, to keep the link alive.
type KeepAliveRequest struct {
	Timeout uint16
}

// Marshal encodes r as a KeepAliveRequestLen-byte frame.
func (r KeepAliveRequest) Marshal() []byte {
	b := make([]byte, KeepAliveRequestLen)
	b[1] = 0x40
	PutUint16(b[2:], r.Timeout)
	b[4] = Checksum(b[:4])
	return b
}

// HIDPP10Short is a 10-byte HID++ 1.0 frame: a query or a canned response
// to one.
type HIDPP10Short struct {
	Report byte
	Index  byte
	SubID  byte
	Params [HIDPP10ShortParamsLen]byte
}

// Marshal encodes h as a HIDPP10ShortLen-byte frame.
func (h HIDPP10Short) Marshal() []byte {
	b := make([]byte, HIDPP10ShortLen)
	b[1] = h.Report
	b[2] = h.Index
	b[3] = h.SubID
	copy(b[4:8], h.Params[:])
	b[9] = Checksum(b[:9])
	return b
}

// UnmarshalHIDPP10Short decodes a HIDPP10ShortLen-byte frame.
func UnmarshalHIDPP10Short(b []byte) (HIDPP10Short, error) {
	var h HIDPP10Short
	if err := Validate(b, HIDPP10ShortLen); err != nil {
		return h, err
	}
	h.Report = b[1]
	h.Index = b[2]
	h.SubID = b[3]
	copy(h.Params[:], b[4:8])
	return h, nil
}

// HIDPP10Long is a 22-byte HID++ 1.0 frame, used for longer queries.
type HIDPP10Long struct {
	Report byte
	Index  byte
	SubID  byte
	Params [HIDPP10LongParamsLen]byte
}

// Marshal encodes h as a HIDPP10LongLen-byte frame.
func (h HIDPP10Long) Marshal() []byte {
	b := make([]byte, HIDPP10LongLen)
	b[1] = h.Report
	b[2] = h.Index
	b[3] = h.SubID
	copy(b[4:21], h.Params[:])
	b[21] = Checksum(b[:21])
	return b
}

// UnmarshalHIDPP10Long decodes a HIDPP10LongLen-byte frame.
func UnmarshalHIDPP10Long(b []byte) (HIDPP10Long, error) {
	var h HIDPP10Long
	if err := Validate(b, HIDPP10LongLen); err != nil {
		return h, err
	}
	h.Report = b[1]
	h.Index = b[2]
	h.SubID = b[3]
	copy(h.Params[:], b[4:21])
	return h, nil
}

// IsWakeUp reports whether payload is a wake-up frame: one carrying report
// byte ReportLongAck or ReportShortAck at the position a HID++ frame would
// carry its report byte.
func IsWakeUp(payload []byte) bool {
	switch len(payload) {
	case WakeUpRequest1Len:
		return payload[1] == ReportLongAck
	case WakeUpRequest2Len:
		return payload[1] == ReportShortAck
	default:
		return false
	}
}

// EncryptedKeystrokePlaintext is the 8-byte plaintext block AES-encrypted
// to produce an EncryptedKeystrokeRequest's ciphertext.
type EncryptedKeystrokePlaintext struct {
	Modifiers byte
	Keys      [KeysLen]byte
}

// Marshal encodes p as an AESDataLen-byte plaintext block.
func (p EncryptedKeystrokePlaintext) Marshal() [AESDataLen]byte {
	var b [AESDataLen]byte
	b[0] = p.Modifiers
	copy(b[1:7], p.Keys[:])
	b[7] = 0xC9
	return b
}

// EncryptedKeystrokeIV assembles the AES-CTR initialization vector from the
// fixed nonce prefix/suffix and the session's current keystroke counter.
type EncryptedKeystrokeIV struct {
	Counter uint32
}

// Marshal encodes v as an AESBlockLen-byte IV.
func (v EncryptedKeystrokeIV) Marshal() [AESBlockLen]byte {
	var b [AESBlockLen]byte
	copy(b[0:7], AESNoncePrefix[:])
	PutUint32(b[7:11], v.Counter)
	copy(b[11:16], AESNonceSuffix[:])
	return b
}

// EncryptedKeystrokeRequest carries an AES-encrypted 8-byte keystroke block
// and the counter value used to derive its IV.
type EncryptedKeystrokeRequest struct {
	Ciphertext [AESDataLen]byte
	Counter    uint32
}

// Marshal encodes r as an EncryptedKeystrokeRequestLen-byte frame.
func (r EncryptedKeystrokeRequest) Marshal() []byte {
	b := make([]byte, EncryptedKeystrokeRequestLen)
	b[1] = 0xD3
	copy(b[2:10], r.Ciphertext[:])
	PutUint32(b[10:14], r.Counter)
	b[21] = Checksum(b[:21])
	return b
}

// MouseMoveRequest is an unencrypted relative mouse report.
type MouseMoveRequest struct {
	Buttons byte
	MoveX   int16 // clamp with ClampInt12 before constructing.
	MoveY   int16
	WheelX  int8
	WheelY  int8
}

// Marshal encodes r as a MouseMoveRequestLen-byte frame. X and Y are packed
// as a pair of big-endian signed 12-bit integers sharing a nibble.
func (r MouseMoveRequest) Marshal() []byte {
	b := make([]byte, MouseMoveRequestLen)
	b[1] = 0xC2
	b[2] = r.Buttons
	x := ClampInt12(r.MoveX)
	y := ClampInt12(r.MoveY)
	b[4] = byte(x>>4) & 0xFF
	b[5] = byte(x<<4) | byte(y>>8)&0x0F
	b[6] = byte(y) & 0xFF
	b[7] = byte(r.WheelX)
	b[8] = byte(r.WheelY)
	b[9] = Checksum(b[:9])
	return b
}
