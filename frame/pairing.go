package frame

// PairRequest1 is the first frame a device sends while pairing: it proposes
// a device ID, a keep-alive timeout and identifies the device's product and
// type to the receiver.
type PairRequest1 struct {
	ID         byte
	Timeout    byte // wire carries only the low byte of the keep-alive timeout here.
	ProductID  uint16
	DeviceType uint16
}

// Marshal encodes r as a PairRequest1Len-byte frame.
func (r PairRequest1) Marshal() []byte {
	b := make([]byte, PairRequest1Len)
	b[0] = r.ID
	b[1] = 0x5F
	b[2] = 0x01
	b[8] = r.Timeout
	PutUint16(b[9:], r.ProductID)
	b[11] = 0x04 // Unifying protocol marker.
	PutUint16(b[13:], r.DeviceType)
	b[20] = 0x01
	b[21] = Checksum(b[:21])
	return b
}

// PairResponse1 is the receiver's reply to PairRequest1: it assigns the
// device a fresh RF address for the remainder of the session.
type PairResponse1 struct {
	ID         byte
	Step       byte
	Address    [AddressLen]byte
	ProductID  uint16
	DeviceType uint16
}

// UnmarshalPairResponse1 decodes a PairResponse1Len-byte frame.
func UnmarshalPairResponse1(b []byte) (PairResponse1, error) {
	var r PairResponse1
	if err := Validate(b, PairResponse1Len); err != nil {
		return r, err
	}
	r.ID = b[0]
	r.Step = b[2]
	copy(r.Address[:], b[3:8])
	r.ProductID = Uint16(b[9:])
	r.DeviceType = Uint16(b[13:])
	return r, nil
}

// PairRequest2 carries the device's crypto seed, serial number and HID++
// capability bitmap.
type PairRequest2 struct {
	Crypto       uint32
	Serial       uint32
	Capabilities uint16
}

// Marshal encodes r as a PairRequest2Len-byte frame.
func (r PairRequest2) Marshal() []byte {
	b := make([]byte, PairRequest2Len)
	b[1] = 0x5F
	b[2] = 0x02
	PutUint32(b[3:], r.Crypto)
	PutUint32(b[7:], r.Serial)
	PutUint16(b[11:], r.Capabilities)
	b[20] = 0x01
	b[21] = Checksum(b[:21])
	return b
}

// PairResponse2 mirrors the receiver's own crypto seed, serial number and
// capability bitmap back to the device.
type PairResponse2 struct {
	Step         byte
	Crypto       uint32
	Serial       uint32
	Capabilities uint16
}

// UnmarshalPairResponse2 decodes a PairResponse2Len-byte frame.
func UnmarshalPairResponse2(b []byte) (PairResponse2, error) {
	var r PairResponse2
	if err := Validate(b, PairResponse2Len); err != nil {
		return r, err
	}
	r.Step = b[2]
	r.Crypto = Uint32(b[3:])
	r.Serial = Uint32(b[7:])
	r.Capabilities = Uint16(b[11:])
	return r, nil
}

// PairRequest3 carries the device's human-readable name.
type PairRequest3 struct {
	Name string // must fit MaxNameLen bytes.
}

// Marshal encodes r as a PairRequest3Len-byte frame.
func (r PairRequest3) Marshal() []byte {
	b := make([]byte, PairRequest3Len)
	b[1] = 0x5F
	b[2] = 0x03
	b[3] = 0x01
	b[4] = byte(len(r.Name))
	copy(b[5:21], r.Name)
	b[21] = Checksum(b[:21])
	return b
}

// PairResponse3 acknowledges the name exchange and signals that pairing may
// be completed.
type PairResponse3 struct {
	Step byte
}

// UnmarshalPairResponse3 decodes a PairResponse3Len-byte frame.
func UnmarshalPairResponse3(b []byte) (PairResponse3, error) {
	var r PairResponse3
	if err := Validate(b, PairResponse3Len); err != nil {
		return r, err
	}
	r.Step = b[2]
	return r, nil
}

// PairCompleteRequest tells the receiver pairing is finished. No response is
// expected.
type PairCompleteRequest struct{}

// Marshal encodes a PairCompleteRequestLen-byte frame.
func (PairCompleteRequest) Marshal() []byte {
	b := make([]byte, PairCompleteRequestLen)
	b[1] = 0x0F
	b[2] = 0x06
	b[3] = 0x01
	b[9] = Checksum(b[:9])
	return b
}

// ProtoAESKey is the 16-byte pre-key assembled from both sides' pairing
// data. DeobfuscateAESKey turns its packed form into the session AES key.
type ProtoAESKey struct {
	BaseAddress       [AddressLen - 1]byte
	DeviceProductID   uint16
	ReceiverProductID uint16
	DeviceCrypto      uint32
	ReceiverCrypto    uint32
}

// Marshal encodes k as an AESBlockLen-byte pre-key.
func (k ProtoAESKey) Marshal() [AESBlockLen]byte {
	var b [AESBlockLen]byte
	copy(b[0:4], k.BaseAddress[:])
	PutUint16(b[4:6], k.DeviceProductID)
	PutUint16(b[6:8], k.ReceiverProductID)
	PutUint32(b[8:12], k.DeviceCrypto)
	PutUint32(b[12:16], k.ReceiverCrypto)
	return b
}
