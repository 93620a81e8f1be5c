package engine

import (
	"unifying.dev/frame"
	"unifying.dev/queue"
)

// TimeoutCoefficient is the fraction of the keep-alive timeout that must
// elapse before the engine transmits again, so a keep-alive reaches the
// receiver comfortably before it would otherwise time the link out.
const TimeoutCoefficient = 0.875

// Default keep-alive timeouts, in milliseconds, for the two device classes
// the HID++ 1.0 specification recognizes.
const (
	DefaultTimeoutKeyboard = frame.DefaultTimeoutKeyboard
	DefaultTimeoutMouse    = frame.DefaultTimeoutMouse
)

// State holds everything the tick scheduler needs: the injected hardware
// capabilities, the transmit/receive queues, the session's RF address and
// AES key, and the clock bookkeeping that drives keep-alives.
type State struct {
	Radio Radio
	AES   AES

	TxQueue *queue.Ring[queue.TxEntry]
	RxQueue *queue.Ring[queue.RxEntry]

	Address [frame.AddressLen]byte
	AESKey  [frame.AESBlockLen]byte

	// AESCounter is the next keystroke counter value; it advances by one
	// per successfully queued encrypted keystroke.
	AESCounter uint32

	// DefaultTimeout is the TimeoutOverride that the pairing, report and
	// HID++ response entries carry, so transmitting one of them sets
	// Timeout back to it. Entries with a zero override leave Timeout as is.
	DefaultTimeout uint16
	// Timeout is the current keep-alive interval, in milliseconds.
	Timeout uint16

	PreviousTransmit uint32
	NextTransmit     uint32

	Channel byte
}

// New builds a State with a queueCapacity-entry transmit and receive queue.
func New(radio Radio, aes AES, queueCapacity int, address [frame.AddressLen]byte, aesKey [frame.AESBlockLen]byte, aesCounter uint32, defaultTimeout uint16, channel byte) *State {
	return &State{
		Radio:          radio,
		AES:            aes,
		TxQueue:        queue.New[queue.TxEntry](queueCapacity),
		RxQueue:        queue.New[queue.RxEntry](queueCapacity),
		Address:        address,
		AESKey:         aesKey,
		AESCounter:     aesCounter,
		DefaultTimeout: defaultTimeout,
		Timeout:        defaultTimeout,
		Channel:        channel,
	}
}

// ClearTransmitBuffer discards every queued, not-yet-sent payload.
func (s *State) ClearTransmitBuffer() { s.TxQueue.Clear() }

// ClearReceiveBuffer discards every queued, not-yet-handled payload.
func (s *State) ClearReceiveBuffer() { s.RxQueue.Clear() }

// ClearBuffers discards both queues.
func (s *State) ClearBuffers() {
	s.ClearTransmitBuffer()
	s.ClearReceiveBuffer()
}

// SetChannel updates the current channel and pushes it down to the radio.
func (s *State) SetChannel(channel byte) error {
	s.Channel = channel
	return s.Radio.SetChannel(channel)
}

// SetAddress updates the current address and pushes it down to the radio.
func (s *State) SetAddress(address [frame.AddressLen]byte) error {
	s.Address = address
	return s.Radio.SetAddress(address)
}

// Enqueue wraps payload in a TxEntry and pushes it onto the transmit
// queue, applying timeoutOverride once the entry is actually transmitted
// (zero means "leave the timeout unchanged").
func (s *State) Enqueue(payload []byte, timeoutOverride uint16) error {
	return s.TxQueue.PushBack(queue.TxEntry{Payload: payload, TimeoutOverride: timeoutOverride})
}
