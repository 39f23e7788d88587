// dwuart/uart.go

// Package dwuart is a polled driver for the Synopsys DesignWare DW_apb UART.
// It speaks the register protocol directly: one-time line configuration over
// the divisor latch, byte-at-a-time transmit and receive against the hardware
// FIFOs, and the clear-on-read error protocol of the line status register.
// There are no interrupts and no software buffering; every wait is a busy
// poll of a status register, and all transfer state lives in the hardware.
package dwuart

import (
	"errors"
	"time"
)

// Receive line errors. ReadWord reports at most one per fault, because the
// line status read that detected it also cleared the sticky bits.
var (
	ErrBreak   = errors.New("dwuart: break condition")
	ErrFraming = errors.New("dwuart: framing error")
	ErrParity  = errors.New("dwuart: parity error")
	ErrOverrun = errors.New("dwuart: receive overrun")
)

// ErrRXEmpty is returned by the non-blocking ReadByte when no data is
// waiting in the receive FIFO.
var ErrRXEmpty = errors.New("dwuart: RX FIFO empty")

// UART is a single DW_apb UART instance. The UART owns its register block:
// exactly one goroutine may call the mutating operations (Configure,
// WriteWord, Write and friends). Status queries via Status() are read-only
// and may run concurrently with everything else.
type UART struct {
	regs  Regs
	stats Stats
}

// New returns a driver over mem. The caller hands over exclusive access to
// the register block for the lifetime of the UART.
func New(mem Mem32) *UART {
	return &UART{regs: NewRegs(mem)}
}

// Regs exposes the typed register view, for code that needs registers the
// driver does not manage itself (modem control, scratch, shadow registers).
func (u *UART) Regs() Regs { return u.regs }

// Configure sets the given baud rate with 8 data bits, no parity and 1 stop
// bit, and enables both FIFOs. It first spins until the UART is no longer
// busy, so it may block.
//
// serialClock is the frequency of the sclk input in Hz. The caller must
// ensure baudRate > 0 and serialClock >= 16*baudRate; out-of-range values
// program a nonsensical line speed, they are not detected here. Configure
// must not run concurrently with transmit or receive: the divisor latch
// temporarily re-aliases the data and interrupt enable registers.
func (u *UART) Configure(baudRate, serialClock uint32) {
	u.waitIdle()
	u.program(baudRate, serialClock)
}

func (u *UART) waitIdle() {
	for u.regs.USR().Has(USRBUSY) {
		u.dbgSpin()
		time.Sleep(0)
	}
}

func (u *UART) program(baudRate, serialClock uint32) {
	// Open the divisor latch access window.
	u.regs.SetLCR(LCRDLAB)

	divisor := serialClock / (16 * baudRate)
	fractional := (serialClock % (16 * baudRate)) / baudRate
	u.regs.SetDLF(fractional)
	u.regs.SetData(divisor & 0xff)
	u.regs.SetIER(divisor >> 8)

	// 8N1. Writing without DLAB also closes the divisor latch window,
	// restoring the normal RBR/THR and IER aliasing.
	u.regs.SetLCR(LCRDLS8)

	u.regs.SetFCR(FCRFIFOE)
}

// TXFIFOFull reports whether the transmit FIFO is full. While it is,
// WriteWord will block.
func (u *UART) TXFIFOFull() bool { return u.Status().TXFIFOFull() }

// WriteWord writes one byte, spinning until the transmit FIFO has room.
// It returns once the FIFO has accepted the byte, not once the byte is on
// the wire; use Flush for that.
func (u *UART) WriteWord(b byte) {
	for u.TXFIFOFull() {
		u.dbgSpin()
		time.Sleep(0)
	}
	u.regs.SetData(uint32(b))
	u.dbgTX()
}

// RXFIFOEmpty reports whether the receive FIFO is empty. While it is,
// ReadWord will report no data.
func (u *UART) RXFIFOEmpty() bool { return u.Status().RXFIFOEmpty() }

// ReadWord reads one byte if one is available. ok is false when the receive
// FIFO is empty; that is not an error, the caller may simply try again.
//
// A line fault is returned as one of ErrBreak, ErrFraming, ErrParity or
// ErrOverrun. The check order matters: a break also raises the framing bit,
// and a framing fault can raise the parity bit, so the more specific
// condition is reported. The single LSR read below is also what clears the
// sticky error bits, so each fault is observed exactly once.
func (u *UART) ReadWord() (b byte, ok bool, err error) {
	lsr := u.regs.LSR()
	switch {
	case lsr.Has(LSRBI):
		err = ErrBreak
	case lsr.Has(LSRFE):
		err = ErrFraming
	case lsr.Has(LSRPE):
		err = ErrParity
	case lsr.Has(LSROE):
		err = ErrOverrun
	case !lsr.Has(LSRDR):
		return 0, false, nil
	default:
		u.dbgRX()
		return byte(u.regs.Data()), true, nil
	}
	u.dbgErr(err)
	return 0, false, err
}

// Status returns a read-only view of this UART's status registers.
// StatusView values are cheap to copy and safe to use from any number of
// goroutines concurrently; they never mutate the device.
func (u *UART) Status() StatusView {
	return StatusView{regs: u.regs.Status()}
}

// StatusView answers readiness queries against the UART status register.
type StatusView struct {
	regs StatusRegs
}

// NewStatusView builds a view over a read-only register mapping without
// going through a UART, e.g. for monitoring a UART some other agent owns.
func NewStatusView(mem Loader32) StatusView {
	return StatusView{regs: NewStatusRegs(mem)}
}

// TXFIFOFull reports whether the transmit FIFO has no room left.
func (v StatusView) TXFIFOFull() bool { return !v.regs.USR().Has(USRTFNF) }

// RXFIFOEmpty reports whether the receive FIFO holds no data.
func (v StatusView) RXFIFOEmpty() bool { return !v.regs.USR().Has(USRRFNE) }

// Busy reports whether a serial transfer is in progress.
func (v StatusView) Busy() bool { return v.regs.USR().Has(USRBUSY) }

// TXLevel returns the number of words currently in the transmit FIFO.
func (v StatusView) TXLevel() uint32 { return v.regs.TFL() }

// RXLevel returns the number of words currently in the receive FIFO.
func (v StatusView) RXLevel() uint32 { return v.regs.RFL() }

// Drain spins until the transmit FIFO is empty, i.e. every byte previously
// accepted by WriteWord has been handed to the shift register. It only reads
// status, so concurrent callers are fine.
func (v StatusView) Drain() {
	for !v.regs.USR().Has(USRTFE) {
		time.Sleep(0)
	}
}

// Identify returns the component parameter, version and type registers.
// On real silicon CTR reads 0x44570110.
func (v StatusView) Identify() (cpr, ucv, ctr uint32) {
	return v.regs.CPR(), v.regs.UCV(), v.regs.CTR()
}
