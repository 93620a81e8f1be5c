package main

import "unifying.dev/engine"

// engineSimulator wraps engine.Simulator so every successful transmission
// also runs a receiver callback and advances the clock, since this command
// has no goroutine of its own to drive a separate receiver concurrently.
type engineSimulator struct {
	*engine.Simulator
	onTransmit func([]byte)
}

func newEngineSimulator() *engineSimulator {
	return &engineSimulator{Simulator: engine.NewSimulator()}
}

func (e *engineSimulator) Transmit(payload []byte) error {
	err := e.Simulator.Transmit(payload)
	if err == nil {
		e.Simulator.Advance(1000)
		if e.onTransmit != nil {
			e.onTransmit(payload)
		}
	}
	return err
}
