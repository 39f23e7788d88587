// dwuart/context.go

package dwuart

import (
	"context"
	"time"
)

// Context-aware variants of the blocking operations. The core operations
// spin until the hardware condition holds, with no way out; these check the
// context once per poll so a caller can bound a wait on hardware that may
// never respond.

// WriteWordContext is WriteWord with cancellation. The byte is either
// accepted by the FIFO (nil) or not written at all (ctx error).
func (u *UART) WriteWordContext(ctx context.Context, b byte) error {
	for u.TXFIFOFull() {
		if err := ctx.Err(); err != nil {
			return err
		}
		u.dbgSpin()
		time.Sleep(0)
	}
	u.regs.SetData(uint32(b))
	u.dbgTX()
	return nil
}

// ReadWordContext blocks until a byte arrives, a line fault is observed, or
// ctx is done.
func (u *UART) ReadWordContext(ctx context.Context) (byte, error) {
	for {
		b, ok, err := u.ReadWord()
		if err != nil {
			return 0, err
		}
		if ok {
			return b, nil
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		u.dbgSpin()
		time.Sleep(0)
	}
}

// FlushContext is Flush with cancellation.
func (u *UART) FlushContext(ctx context.Context) error {
	v := u.Status()
	for !v.regs.USR().Has(USRTFE) {
		if err := ctx.Err(); err != nil {
			return err
		}
		u.dbgSpin()
		time.Sleep(0)
	}
	return nil
}

// ConfigureContext is Configure with a cancellation check while waiting for
// the UART to go idle. Once register programming has started it runs to
// completion; aborting halfway would leave the divisor latch open.
func (u *UART) ConfigureContext(ctx context.Context, baudRate, serialClock uint32) error {
	for u.regs.USR().Has(USRBUSY) {
		if err := ctx.Err(); err != nil {
			return err
		}
		u.dbgSpin()
		time.Sleep(0)
	}
	u.program(baudRate, serialClock)
	return nil
}
