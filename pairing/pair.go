package pairing

import (
	"unifying.dev/engine"
	"unifying.dev/frame"
	"unifying.dev/unifyerr"
)

// Pair runs the full four-step handshake against a receiver: it proposes
// id/productID/deviceType on the pairing address, tries each pairing
// channel until that first request is transmitted successfully, waits for
// the receiver's reply, exchanges crypto material and a name,
// and finally derives the session's AES key from both sides' contributions.
//
// On success s.Address and s.AESKey hold the values the device must use
// for every subsequent exchange with the receiver.
func Pair(s *engine.State, id byte, productID, deviceType uint16, crypto, serial uint32, capabilities uint16, name string) error {
	if len(name) > frame.MaxNameLen {
		return unifyerr.NameLength
	}

	if err := s.SetAddress(frame.PairingAddress); err != nil {
		return unifyerr.SetAddress
	}

	s.ClearBuffers()
	Step1(s, id, productID, deviceType)

	var err error
	for _, channel := range frame.PairingChannels {
		if err = s.SetChannel(channel); err != nil {
			err = unifyerr.SetChannel
			continue
		}
		err = engine.Loop(s, true, true, false)
		if err == nil {
			break
		}
	}

	// A stale payload may be sitting in the receive queue from a previous
	// attempt on another channel; it isn't a reply to this attempt.
	s.ClearBuffers()

	if err != nil {
		return err
	}

	if err := engine.Loop(s, true, false, true); err != nil {
		s.ClearBuffers()
		return err
	}

	entry, err := s.RxQueue.PopFront()
	if err != nil {
		return err
	}
	response1, err := frame.UnmarshalPairResponse1(entry.Payload)
	if err != nil {
		return err
	}
	if response1.Step != 1 {
		return unifyerr.PairStep
	}
	if response1.ID != id {
		return unifyerr.PairID
	}

	if err := s.SetAddress(response1.Address); err != nil {
		return unifyerr.SetAddress
	}

	if err := Step2(s, crypto, serial, capabilities); err != nil {
		return err
	}
	if err := engine.Loop(s, true, true, false); err != nil {
		s.ClearBuffers()
		return err
	}
	if err := engine.Loop(s, true, false, true); err != nil {
		s.ClearBuffers()
		return err
	}

	entry, err = s.RxQueue.PopFront()
	if err != nil {
		return err
	}
	response2, err := frame.UnmarshalPairResponse2(entry.Payload)
	if err != nil {
		return err
	}
	if response2.Step != 2 {
		return unifyerr.PairStep
	}

	if err := Step3(s, name); err != nil {
		return err
	}
	if err := engine.Loop(s, true, true, false); err != nil {
		s.ClearBuffers()
		return err
	}
	if err := engine.Loop(s, true, false, true); err != nil {
		s.ClearBuffers()
		return err
	}

	entry, err = s.RxQueue.PopFront()
	if err != nil {
		return err
	}
	response3, err := frame.UnmarshalPairResponse3(entry.Payload)
	if err != nil {
		return err
	}
	if response3.Step != 6 {
		return unifyerr.PairStep
	}

	if err := Complete(s); err != nil {
		return err
	}
	if err := engine.Loop(s, true, true, false); err != nil {
		s.ClearBuffers()
		return err
	}

	var baseAddress [frame.AddressLen - 1]byte
	copy(baseAddress[:], response1.Address[:len(baseAddress)])

	protoKey := frame.ProtoAESKey{
		BaseAddress:       baseAddress,
		DeviceProductID:   productID,
		ReceiverProductID: response1.ProductID,
		DeviceCrypto:      crypto,
		ReceiverCrypto:    response2.Crypto,
	}
	s.AESKey = frame.DeobfuscateAESKey(protoKey.Marshal())

	return nil
}
