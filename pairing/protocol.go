// Package pairing drives the four-step Unifying pairing handshake and
// exposes the small set of operations (keep-alive, timeout changes,
// encrypted keystrokes) that enqueue payloads onto an engine.State.
package pairing

import (
	"unifying.dev/engine"
	"unifying.dev/frame"
	"unifying.dev/unifyerr"
)

// Step1 enqueues the first pairing request, proposing id, the engine's
// current keep-alive timeout, product ID and device type to the receiver.
func Step1(s *engine.State, id byte, productID, deviceType uint16) error {
	req := frame.PairRequest1{ID: id, Timeout: byte(s.Timeout), ProductID: productID, DeviceType: deviceType}
	return s.Enqueue(req.Marshal(), s.DefaultTimeout)
}

// Step2 enqueues the second pairing request, exchanging crypto material.
func Step2(s *engine.State, crypto, serial uint32, capabilities uint16) error {
	req := frame.PairRequest2{Crypto: crypto, Serial: serial, Capabilities: capabilities}
	return s.Enqueue(req.Marshal(), s.DefaultTimeout)
}

// Step3 enqueues the third pairing request, naming the device. name must
// fit frame.MaxNameLen bytes.
func Step3(s *engine.State, name string) error {
	req := frame.PairRequest3{Name: name}
	return s.Enqueue(req.Marshal(), s.DefaultTimeout)
}

// Complete enqueues the pairing-complete request. No response is expected.
func Complete(s *engine.State) error {
	return s.Enqueue(frame.PairCompleteRequest{}.Marshal(), s.DefaultTimeout)
}

// SetTimeout enqueues a request asking the receiver to adopt timeout as the
// device's new keep-alive interval.
func SetTimeout(s *engine.State, timeout uint16) error {
	req := frame.SetTimeoutRequest{Timeout: timeout}
	return s.Enqueue(req.Marshal(), timeout)
}

// KeepAlive enqueues an explicit keep-alive at the given timeout. Tick
// enqueues these automatically when nothing else is queued; this is for
// callers that want to force one immediately.
func KeepAlive(s *engine.State, timeout uint16) error {
	return s.Enqueue(frame.KeepAliveRequest{Timeout: timeout}.Marshal(), 0)
}

// EncryptedKeystroke encrypts a key report under the session's AES key and
// enqueues the ciphertext like any other outgoing frame. The keystroke
// counter advances only once the entry is successfully queued, so a full
// transmit queue leaves the counter (and the receiver's expectation of it)
// untouched.
func EncryptedKeystroke(s *engine.State, modifiers byte, keys [frame.KeysLen]byte) error {
	plaintext := frame.EncryptedKeystrokePlaintext{Modifiers: modifiers, Keys: keys}
	data := plaintext.Marshal()

	iv := frame.EncryptedKeystrokeIV{Counter: s.AESCounter}.Marshal()

	if err := s.AES.Encrypt(&data, s.AESKey, iv); err != nil {
		return unifyerr.Encryption
	}

	req := frame.EncryptedKeystrokeRequest{Ciphertext: data, Counter: s.AESCounter}
	if err := s.Enqueue(req.Marshal(), s.DefaultTimeout); err != nil {
		return err
	}

	s.AESCounter++
	return nil
}

// MouseMove enqueues an unencrypted relative mouse report.
func MouseMove(s *engine.State, buttons byte, moveX, moveY int16, wheelX, wheelY int8) error {
	req := frame.MouseMoveRequest{Buttons: buttons, MoveX: moveX, MoveY: moveY, WheelX: wheelX, WheelY: wheelY}
	return s.Enqueue(req.Marshal(), s.DefaultTimeout)
}
