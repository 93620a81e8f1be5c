// Package nrf24 implements the engine.Radio capability on top of an
// nRF24L01(+)-class 2.4GHz transceiver, reached over SPI and GPIO via
// periph.io.
package nrf24

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/bcm283x"

	"unifying.dev/frame"
)

// CE is the chip-enable GPIO line wired on the reference carrier board.
const CE = bcm283x.GPIO22

// Registers used by this driver. The chip exposes many more; these are the
// ones needed to drive the channel/address/transmit/receive surface the
// engine requires.
const (
	regConfig    = 0x00
	regEnAA      = 0x01
	regEnRxAddr  = 0x02
	regSetupAW   = 0x03
	regSetupRetr = 0x04
	regRFCh      = 0x05
	regRFSetup   = 0x06
	regStatus    = 0x07
	regRxPwP0    = 0x11
	regTxAddr    = 0x10
	regRxAddrP0  = 0x0A
	regFIFOStat  = 0x17

	cmdRRegister    = 0x00
	cmdWRegister    = 0x20
	cmdRRxPayload   = 0x61
	cmdWTxPayload   = 0xA0
	cmdFlushTX      = 0xE1
	cmdFlushRX      = 0xE2
	cmdNOP          = 0xFF

	statusTXDS   = 1 << 5
	statusMaxRT  = 1 << 4
	statusRXDR   = 1 << 6
)

// Device drives one nRF24-class chip. It satisfies engine.Radio.
type Device struct {
	conn spi.Conn
	ce   gpio.PinOut

	scratch [33]byte
	epoch   time.Time

	payloadLen int
}

// Open configures the first available SPI port and the CE GPIO pin as an
// nRF24-class transceiver in enhanced shockburst mode, ready to be handed
// to engine.New as a Radio.
func Open() (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("nrf24: %w", err)
	}

	p, err := spireg.Open("")
	if err != nil {
		return nil, fmt.Errorf("nrf24: %w", err)
	}
	c, err := p.Connect(8*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("nrf24: %w", err)
	}

	if err := CE.Out(gpio.Low); err != nil {
		p.Close()
		return nil, fmt.Errorf("nrf24: ce: %w", err)
	}

	d := &Device{conn: c, ce: CE, epoch: time.Now()}
	if err := d.configure(); err != nil {
		p.Close()
		return nil, err
	}
	return d, nil
}

func (d *Device) configure() error {
	// Power up in PRX-capable mode, CRC enabled, auto-ack and auto-retry
	// on, dynamic payload length off (the Unifying protocol uses
	// fixed-position frames, so a static payload width per packet is
	// enough).
	if err := d.writeReg(regConfig, 0x0F); err != nil {
		return err
	}
	if err := d.writeReg(regEnAA, 0x01); err != nil {
		return err
	}
	if err := d.writeReg(regEnRxAddr, 0x01); err != nil {
		return err
	}
	if err := d.writeReg(regSetupAW, 0x03); err != nil { // 5-byte address width.
		return err
	}
	if err := d.writeReg(regSetupRetr, 0x1A); err != nil {
		return err
	}
	return d.writeReg(regRFSetup, 0x0E) // 2Mbps, 0dBm.
}

func (d *Device) writeReg(reg, value byte) error {
	tx := [2]byte{cmdWRegister | reg, value}
	var rx [2]byte
	return d.conn.Tx(tx[:], rx[:])
}

func (d *Device) readReg(reg byte) (byte, error) {
	tx := [2]byte{cmdRRegister | reg, cmdNOP}
	var rx [2]byte
	if err := d.conn.Tx(tx[:], rx[:]); err != nil {
		return 0, err
	}
	return rx[1], nil
}

func (d *Device) command(cmd byte) error {
	tx := [1]byte{cmd}
	var rx [1]byte
	return d.conn.Tx(tx[:], rx[:])
}

func pulseCE(ce gpio.PinOut) error {
	if err := ce.Out(gpio.High); err != nil {
		return err
	}
	time.Sleep(10 * time.Microsecond)
	return ce.Out(gpio.Low)
}

// Transmit sends payload and blocks until the auto-ack either arrives or
// the configured retry budget is exhausted.
func (d *Device) Transmit(payload []byte) error {
	if err := d.command(cmdFlushTX); err != nil {
		return fmt.Errorf("nrf24: flush tx: %w", err)
	}

	tx := make([]byte, len(payload)+1)
	tx[0] = cmdWTxPayload
	copy(tx[1:], payload)
	rx := make([]byte, len(tx))
	if err := d.conn.Tx(tx, rx); err != nil {
		return fmt.Errorf("nrf24: tx payload: %w", err)
	}

	if err := pulseCE(d.ce); err != nil {
		return fmt.Errorf("nrf24: ce: %w", err)
	}

	deadline := time.Now().Add(5 * time.Millisecond)
	for time.Now().Before(deadline) {
		status, err := d.readReg(regStatus)
		if err != nil {
			return fmt.Errorf("nrf24: status: %w", err)
		}
		if status&statusTXDS != 0 {
			d.writeReg(regStatus, statusTXDS)
			return nil
		}
		if status&statusMaxRT != 0 {
			d.writeReg(regStatus, statusMaxRT)
			return fmt.Errorf("nrf24: max retries exceeded")
		}
	}
	return fmt.Errorf("nrf24: transmit timed out")
}

// Available reports whether the RX FIFO holds a payload.
func (d *Device) Available() bool {
	status, err := d.readReg(regStatus)
	if err != nil {
		return false
	}
	return status&statusRXDR != 0
}

// Size reports the width of the configured static payload. Fixed per the
// wire frames this engine exchanges; callers select it via SetPayloadLen
// once, ahead of use.
func (d *Device) Size() int { return d.payloadLen }

// SetPayloadLen fixes the static payload width the chip expects, in both
// directions. Unifying frames vary in length (5 to 22 bytes); callers
// switch this to match whatever frame shape they expect to receive next.
func (d *Device) SetPayloadLen(n int) error {
	d.payloadLen = n
	return d.writeReg(regRxPwP0, byte(n))
}

func (d *Device) Receive(buf []byte) (int, error) {
	n := d.payloadLen
	if n > len(buf) {
		n = len(buf)
	}
	tx := make([]byte, n+1)
	tx[0] = cmdRRxPayload
	rx := make([]byte, n+1)
	if err := d.conn.Tx(tx, rx); err != nil {
		return 0, fmt.Errorf("nrf24: rx payload: %w", err)
	}
	copy(buf, rx[1:])
	d.writeReg(regStatus, statusRXDR)
	return n, nil
}

func (d *Device) SetAddress(address [frame.AddressLen]byte) error {
	tx := make([]byte, len(address)+1)
	tx[0] = cmdWRegister | regTxAddr
	copy(tx[1:], address[:])
	rx := make([]byte, len(tx))
	if err := d.conn.Tx(tx, rx); err != nil {
		return fmt.Errorf("nrf24: tx addr: %w", err)
	}
	tx[0] = cmdWRegister | regRxAddrP0
	if err := d.conn.Tx(tx, rx); err != nil {
		return fmt.Errorf("nrf24: rx addr: %w", err)
	}
	return nil
}

func (d *Device) SetChannel(channel byte) error {
	if err := d.writeReg(regRFCh, channel); err != nil {
		return fmt.Errorf("nrf24: channel: %w", err)
	}
	return nil
}

// Now returns milliseconds elapsed since Open, truncated to 32 bits the
// same way a microcontroller's free-running millisecond timer would wrap.
func (d *Device) Now() uint32 {
	return uint32(time.Since(d.epoch).Milliseconds())
}
