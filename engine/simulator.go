package engine

import "unifying.dev/frame"

// Simulator is a fake Radio for tests, modeled on the channel-driven fake
// hardware devices used elsewhere to exercise a driver without real
// silicon: it records everything transmitted and lets a test script what
// gets "received" and when.
type Simulator struct {
	clock uint32

	Address [frame.AddressLen]byte
	Channel byte

	// Transmitted records every payload handed to Transmit, in order.
	Transmitted [][]byte
	// FailNextTransmit, if set, makes the next Transmit call fail and
	// resets itself.
	FailNextTransmit bool

	// pending is the queue of payloads waiting to be "received" off the
	// air, fed to the engine via Available/Size/Receive.
	pending [][]byte
}

// NewSimulator returns a Simulator with its clock at zero.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Advance moves the simulated clock forward by ms milliseconds.
func (s *Simulator) Advance(ms uint32) { s.clock += ms }

// Deliver queues payload to be returned by the next Available/Receive call.
func (s *Simulator) Deliver(payload []byte) {
	s.pending = append(s.pending, payload)
}

func (s *Simulator) Transmit(payload []byte) error {
	if s.FailNextTransmit {
		s.FailNextTransmit = false
		return errSimulatedTransmitFailure
	}
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.Transmitted = append(s.Transmitted, cp)
	return nil
}

func (s *Simulator) Available() bool { return len(s.pending) > 0 }

func (s *Simulator) Size() int {
	if len(s.pending) == 0 {
		return 0
	}
	return len(s.pending[0])
}

func (s *Simulator) Receive(buf []byte) (int, error) {
	if len(s.pending) == 0 {
		return 0, errSimulatedNoPayload
	}
	n := copy(buf, s.pending[0])
	s.pending = s.pending[1:]
	return n, nil
}

func (s *Simulator) SetAddress(address [frame.AddressLen]byte) error {
	s.Address = address
	return nil
}

func (s *Simulator) SetChannel(channel byte) error {
	s.Channel = channel
	return nil
}

func (s *Simulator) Now() uint32 { return s.clock }

type simulatorError string

func (e simulatorError) Error() string { return string(e) }

const (
	errSimulatedTransmitFailure = simulatorError("simulated transmit failure")
	errSimulatedNoPayload       = simulatorError("no payload pending")
)
