package engine

import (
	"unifying.dev/frame"
	"unifying.dev/queue"
	"unifying.dev/unifyerr"
)

// handleReceived pops the head of the receive queue and turns it into a
// queued response: a wake-up frame is drained silently (a receiver waking
// the link isn't a query that needs answering), anything else is assumed
// to be an HID++ 1.0 query and gets a canned "unsupported sub-ID" reply,
// since this engine doesn't implement any HID++ registers.
func (s *State) handleReceived() error {
	entry, err := s.RxQueue.PeekFront()
	if err != nil {
		return err
	}

	if frame.IsWakeUp(entry.Payload) {
		_, err := s.RxQueue.PopFront()
		return err
	}

	entry, err = s.RxQueue.PopFront()
	if err != nil {
		return err
	}

	if err := frame.Validate(entry.Payload, 0); err != nil {
		return err
	}
	if len(entry.Payload) < 4 {
		return unifyerr.PayloadLength
	}

	resp := frame.HIDPP10Short{
		Report: frame.ReportShortAck,
		Index:  entry.Payload[2],
		SubID:  frame.SubIDErrorMsg,
		Params: [frame.HIDPP10ShortParamsLen]byte{
			entry.Payload[3],
			frame.HIDPPErrorInvalidSubID,
			0x00,
			0x00,
		},
	}

	return s.Enqueue(resp.Marshal(), s.DefaultTimeout)
}

// Tick advances the scheduler by one step. It should be called frequently;
// it is a no-op except at the keep-alive/transmit interval computed from
// the previous transmission. Two wraparound checks keep the interval sane
// across the 32-bit millisecond clock's rollover.
func (s *State) Tick() error {
	current := s.Radio.Now()

	if s.PreviousTransmit > s.NextTransmit && current > s.PreviousTransmit {
		// next_transmit has wrapped but current_time hasn't yet: not due.
		return nil
	}

	due := current >= s.NextTransmit ||
		(s.PreviousTransmit > current && s.NextTransmit > current)
	if !due {
		return nil
	}

	if !s.RxQueue.Empty() {
		// A received payload is waiting; queue a response for it. A
		// wake-up frame drains silently and queues nothing, so fall
		// through to the keep-alive check below rather than an else-if.
		s.handleReceived()
	}
	if s.TxQueue.Empty() {
		// Nothing queued to send; keep the link alive.
		s.Enqueue(frame.KeepAliveRequest{Timeout: s.Timeout}.Marshal(), 0)
	}

	entry, err := s.TxQueue.PeekFront()
	if err != nil {
		// We just ensured the queue is non-empty above; this should never
		// happen.
		return unifyerr.BufferEmpty
	}

	if err := s.Radio.Transmit(entry.Payload); err != nil {
		s.SetChannel(frame.NextChannel(s.Channel))
		return unifyerr.Transmit
	}

	if entry.TimeoutOverride != 0 {
		s.Timeout = entry.TimeoutOverride
	}
	s.PreviousTransmit = current
	s.NextTransmit = s.PreviousTransmit + uint32(float64(s.Timeout)*TimeoutCoefficient)

	s.TxQueue.PopFront()

	if s.Radio.Available() {
		if s.RxQueue.Full() {
			return unifyerr.BufferFull
		}

		length := s.Radio.Size()
		buf := make([]byte, length)
		n, err := s.Radio.Receive(buf)
		if err != nil {
			return unifyerr.Receive
		}
		if n != length {
			return unifyerr.PayloadLength
		}

		if err := s.RxQueue.PushBack(queue.RxEntry{Payload: buf}); err != nil {
			return unifyerr.BufferFull
		}
	}

	return nil
}

// Loop repeatedly calls Tick until one of the requested exit conditions is
// met: exitOnError stops at the first error, exitOnTransmit stops once the
// transmit queue drains, and exitOnReceive stops as soon as a payload is
// waiting to be handled.
func Loop(s *State, exitOnError, exitOnTransmit, exitOnReceive bool) error {
	var err error
	for {
		if exitOnError && err != nil {
			break
		}
		if exitOnTransmit && s.TxQueue.Empty() {
			break
		}
		if exitOnReceive && !s.RxQueue.Empty() {
			break
		}
		err = s.Tick()
	}
	return err
}
