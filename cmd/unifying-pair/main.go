// Command unifying-pair pairs a Unifying device against a receiver and
// sends a test keystroke, logging each step. With -hw it drives a real
// nRF24-class transceiver; otherwise it runs the handshake against a
// scripted in-process receiver for a self-contained demo.
package main

import (
	"flag"
	"log"

	"unifying.dev/driver/nrf24"
	"unifying.dev/engine"
	"unifying.dev/frame"
	"unifying.dev/pairing"
)

func main() {
	log.SetFlags(0)

	name := flag.String("name", "demo keyboard", "device name to pair as (at most 16 bytes)")
	productID := flag.Uint("product", 0xC52B, "USB product ID to advertise")
	hw := flag.Bool("hw", false, "drive a real nRF24 transceiver instead of the built-in demo receiver")
	flag.Parse()

	var radio engine.Radio
	if *hw {
		d, err := nrf24.Open()
		if err != nil {
			log.Fatalf("nrf24: %v", err)
		}
		radio = d
	} else {
		radio = newDemoReceiver()
	}

	s := engine.New(radio, engine.SoftwareAES{}, 8, frame.PairingAddress, [frame.AESBlockLen]byte{}, 0, frame.DefaultTimeoutKeyboard, frame.Channels[0])

	log.Printf("pairing as %q", *name)
	if err := pairing.Pair(s, 0x01, uint16(*productID), 0x0100, 0x11223344, 0x55667788, 0x000D, *name); err != nil {
		log.Fatalf("pair: %v", err)
	}
	log.Printf("paired: address=% X key=% X", s.Address, s.AESKey)

	keys := [frame.KeysLen]byte{0x04} // 'a'
	if err := pairing.EncryptedKeystroke(s, 0, keys); err != nil {
		log.Fatalf("encrypted keystroke: %v", err)
	}
	if err := engine.Loop(s, true, true, false); err != nil {
		log.Fatalf("transmit keystroke: %v", err)
	}
	log.Printf("sent keystroke, counter now %d", s.AESCounter)
}
