// dwsim/sim.go

// Package dwsim is an in-memory model of a DW_apb UART register block. It
// implements dwuart.Mem32, so the driver can be exercised without hardware:
// loads and stores trigger the side effects the peripheral performs, FIFO
// levels track writes and drains, the sticky line status error bits clear
// when LSR is read, and the divisor latch access bit re-aliases the data and
// interrupt enable registers exactly as on silicon.
package dwsim

import (
	"sync"

	"github.com/jangala-dev/tinygo-dwuart/dwuart"
)

// FIFODepth is the modelled FIFO size in bytes, the most common DW_apb
// configuration. With FIFOs disabled the holding registers are one byte deep.
const FIFODepth = 16

// Component identification values reported by CPR/UCV/CTR. CTR is the
// DW_apb_uart peripheral type code.
const (
	CPRValue = 0x00013FF2
	UCVValue = 0x3430302A
	CTRValue = 0x44570110
)

const stickyMask = dwuart.LSROE | dwuart.LSRPE | dwuart.LSRFE | dwuart.LSRBI

// Write records one store observed by the model, in program order.
type Write struct {
	Off dwuart.Offset
	Val uint32
}

// Device is a behavioural model of the peripheral. All methods and the
// Mem32 accesses are safe for concurrent use; the model serializes itself
// the way hardware serializes register access.
type Device struct {
	mu sync.Mutex

	lcr    dwuart.LCR
	mcr    dwuart.MCR
	sticky dwuart.LSR // latched OE/PE/FE/BI, cleared by an LSR read
	msr    dwuart.MSR

	ier, dll, dlh, dlf uint32
	scr, far, htx      uint32
	fcr                uint32

	fifoEnabled bool
	busy        bool

	rx, tx []byte

	writes []Write
}

var _ dwuart.Mem32 = (*Device)(nil)

// New returns a device in its reset state: FIFOs disabled and empty, no
// pending errors, transmitter idle.
func New() *Device { return &Device{} }

func (d *Device) depth() int {
	if d.fifoEnabled {
		return FIFODepth
	}
	return 1
}

func (d *Device) dlab() bool { return d.lcr.Has(dwuart.LCRDLAB) }

// pushRX models a byte arriving at the receiver. A byte arriving at a full
// FIFO is lost and latches the overrun bit.
func (d *Device) pushRX(b byte) {
	if len(d.rx) >= d.depth() {
		d.sticky |= dwuart.LSROE
		return
	}
	d.rx = append(d.rx, b)
}

// Load implements dwuart.Loader32, with read side effects where the
// hardware has them.
func (d *Device) Load(off dwuart.Offset) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if off >= dwuart.OffSRBR && off < dwuart.OffSRBR+dwuart.NumSRBR*4 {
		return d.loadRBR()
	}

	switch off {
	case dwuart.OffRBR:
		if d.dlab() {
			return d.dll
		}
		return d.loadRBR()
	case dwuart.OffIER:
		if d.dlab() {
			return d.dlh
		}
		return d.ier
	case dwuart.OffIIR:
		if d.fifoEnabled {
			return 0xC1 // FIFOs enabled, no interrupt pending
		}
		return 0x01
	case dwuart.OffLCR:
		return uint32(d.lcr)
	case dwuart.OffMCR:
		return uint32(d.mcr)
	case dwuart.OffLSR:
		v := d.sticky
		if len(d.rx) > 0 {
			v |= dwuart.LSRDR
		}
		if len(d.tx) == 0 {
			v |= dwuart.LSRTHRE
			if !d.busy {
				v |= dwuart.LSRTEMT
			}
		}
		d.sticky = 0 // clear-on-read
		return uint32(v)
	case dwuart.OffMSR:
		v := d.msr
		d.msr &^= dwuart.MSRDDCD | dwuart.MSRTERI | dwuart.MSRDDSR | dwuart.MSRDCTS
		return uint32(v)
	case dwuart.OffSCR:
		return d.scr
	case dwuart.OffFAR:
		return d.far
	case dwuart.OffUSR:
		var v dwuart.USR
		if d.busy {
			v |= dwuart.USRBUSY
		}
		if len(d.tx) < d.depth() {
			v |= dwuart.USRTFNF
		}
		if len(d.tx) == 0 {
			v |= dwuart.USRTFE
		}
		if len(d.rx) > 0 {
			v |= dwuart.USRRFNE
		}
		if len(d.rx) >= d.depth() {
			v |= dwuart.USRRFF
		}
		return uint32(v)
	case dwuart.OffTFL:
		return uint32(len(d.tx))
	case dwuart.OffRFL:
		return uint32(len(d.rx))
	case dwuart.OffSFE:
		if d.fifoEnabled {
			return 1
		}
		return 0
	case dwuart.OffSBCR:
		if d.lcr.Has(dwuart.LCRBC) {
			return 1
		}
		return 0
	case dwuart.OffSRTS:
		if d.mcr.Has(dwuart.MCRRTS) {
			return 1
		}
		return 0
	case dwuart.OffHTX:
		return d.htx
	case dwuart.OffDLF:
		return d.dlf
	case dwuart.OffCPR:
		return CPRValue
	case dwuart.OffUCV:
		return UCVValue
	case dwuart.OffCTR:
		return CTRValue
	}
	return 0
}

func (d *Device) loadRBR() uint32 {
	if len(d.rx) == 0 {
		return 0
	}
	b := d.rx[0]
	d.rx = d.rx[1:]
	return uint32(b)
}

// Store implements the write half of dwuart.Mem32 and appends to the
// write log.
func (d *Device) Store(off dwuart.Offset, v uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.writes = append(d.writes, Write{Off: off, Val: v})

	if off >= dwuart.OffSRBR && off < dwuart.OffSRBR+dwuart.NumSRBR*4 {
		d.storeTHR(v)
		return
	}

	switch off {
	case dwuart.OffRBR:
		if d.dlab() {
			d.dll = v & 0xff
			return
		}
		d.storeTHR(v)
	case dwuart.OffIER:
		if d.dlab() {
			d.dlh = v & 0xff
			return
		}
		d.ier = v & 0x8f
	case dwuart.OffIIR: // FCR
		d.fcr = v
		d.fifoEnabled = dwuart.FCR(v).Has(dwuart.FCRFIFOE)
		if dwuart.FCR(v).Has(dwuart.FCRRFIFOR) {
			d.rx = nil
		}
		if dwuart.FCR(v).Has(dwuart.FCRXFIFOR) {
			d.tx = nil
		}
	case dwuart.OffLCR:
		d.lcr = dwuart.LCR(v)
	case dwuart.OffMCR:
		d.mcr = dwuart.MCR(v)
	case dwuart.OffSCR:
		d.scr = v
	case dwuart.OffFAR:
		d.far = v & 1
	case dwuart.OffRFW:
		// Test-mode receive FIFO write: bit 8 injects a parity error,
		// bit 9 a framing error, alongside the data byte.
		d.pushRX(byte(v))
		if v&(1<<8) != 0 {
			d.sticky |= dwuart.LSRPE
		}
		if v&(1<<9) != 0 {
			d.sticky |= dwuart.LSRFE
		}
	case dwuart.OffSRR:
		if v&(1<<0) != 0 {
			d.reset()
			return
		}
		if v&(1<<1) != 0 {
			d.rx = nil
		}
		if v&(1<<2) != 0 {
			d.tx = nil
		}
	case dwuart.OffSFE:
		d.fifoEnabled = v&1 != 0
	case dwuart.OffSBCR:
		if v&1 != 0 {
			d.lcr |= dwuart.LCRBC
		} else {
			d.lcr &^= dwuart.LCRBC
		}
	case dwuart.OffSRTS:
		if v&1 != 0 {
			d.mcr |= dwuart.MCRRTS
		} else {
			d.mcr &^= dwuart.MCRRTS
		}
	case dwuart.OffHTX:
		d.htx = v & 1
	case dwuart.OffDLF:
		d.dlf = v & 0xf
	}
}

// storeTHR models a write to the transmit holding register. In loopback mode
// the byte goes straight back to the receiver; otherwise it queues in the TX
// FIFO until DrainTX or PopTX takes it off the wire. Hardware discards
// writes to a full FIFO.
func (d *Device) storeTHR(v uint32) {
	if d.mcr.Has(dwuart.MCRLB) {
		d.pushRX(byte(v))
		return
	}
	if len(d.tx) >= d.depth() {
		return
	}
	d.tx = append(d.tx, byte(v))
}

func (d *Device) reset() {
	d.lcr, d.mcr, d.sticky, d.msr = 0, 0, 0, 0
	d.ier, d.dll, d.dlh, d.dlf = 0, 0, 0, 0
	d.scr, d.far, d.htx, d.fcr = 0, 0, 0, 0
	d.fifoEnabled = false
	d.busy = false
	d.rx, d.tx = nil, nil
}

// ---------------- test-harness side of the wire ----------------

// PushRX delivers bytes to the receiver, as if they arrived on the line.
// Bytes beyond the FIFO depth are dropped and latch the overrun bit.
func (d *Device) PushRX(p ...byte) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, b := range p {
		d.pushRX(b)
	}
}

// PopTX takes the oldest byte off the wire, making room in the TX FIFO.
func (d *Device) PopTX() (byte, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.tx) == 0 {
		return 0, false
	}
	b := d.tx[0]
	d.tx = d.tx[1:]
	return b, true
}

// DrainTX empties the TX FIFO and returns everything that was transmitted.
func (d *Device) DrainTX() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.tx
	d.tx = nil
	return out
}

// SetBusy latches or releases the USR busy bit, emulating an in-flight
// serial transfer.
func (d *Device) SetBusy(busy bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.busy = busy
}

// InjectLineError latches sticky line status error bits (OE/PE/FE/BI), as a
// receive-line fault would.
func (d *Device) InjectLineError(errs dwuart.LSR) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sticky |= errs & stickyMask
}

// SetModemStatus replaces the modem status register value.
func (d *Device) SetModemStatus(v dwuart.MSR) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.msr = v
}

// Divisor returns the programmed integer divisor (DLH:DLL).
func (d *Device) Divisor() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dlh<<8 | d.dll
}

// Fractional returns the programmed fractional divisor (DLF).
func (d *Device) Fractional() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dlf
}

// LCR returns the current line control value.
func (d *Device) LCR() dwuart.LCR {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.lcr
}

// FIFOEnabled reports whether the last FCR write enabled the FIFOs.
func (d *Device) FIFOEnabled() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fifoEnabled
}

// RXLen and TXLen return the current FIFO occupancies.
func (d *Device) RXLen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.rx)
}

func (d *Device) TXLen() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.tx)
}

// Writes returns a copy of the store log.
func (d *Device) Writes() []Write {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Write, len(d.writes))
	copy(out, d.writes)
	return out
}

// ResetWrites clears the store log.
func (d *Device) ResetWrites() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.writes = nil
}
