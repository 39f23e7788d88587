// dwuart/debug_hooks.go

//go:build dwuartdebug

package dwuart

import (
	"errors"
	"sync/atomic"
)

// Stats holds counters since the last reset.
type Stats struct {
	SpinWaits uint32 // poll iterations that found the awaited condition not met
	TXWords   uint32 // bytes accepted by the transmit FIFO
	RXWords   uint32 // bytes taken from the receive FIFO

	// Line faults by kind, as observed by ReadWord.
	ErrBreak   uint32
	ErrFraming uint32
	ErrParity  uint32
	ErrOverrun uint32
}

// DebugReset zeroes the counters.
func (u *UART) DebugReset() { u.stats = Stats{} }

// DebugStats returns a copy of the counters.
func (u *UART) DebugStats() Stats {
	return Stats{
		SpinWaits:  atomic.LoadUint32(&u.stats.SpinWaits),
		TXWords:    atomic.LoadUint32(&u.stats.TXWords),
		RXWords:    atomic.LoadUint32(&u.stats.RXWords),
		ErrBreak:   atomic.LoadUint32(&u.stats.ErrBreak),
		ErrFraming: atomic.LoadUint32(&u.stats.ErrFraming),
		ErrParity:  atomic.LoadUint32(&u.stats.ErrParity),
		ErrOverrun: atomic.LoadUint32(&u.stats.ErrOverrun),
	}
}

func (u *UART) dbgSpin() { atomic.AddUint32(&u.stats.SpinWaits, 1) }
func (u *UART) dbgTX()   { atomic.AddUint32(&u.stats.TXWords, 1) }
func (u *UART) dbgRX()   { atomic.AddUint32(&u.stats.RXWords, 1) }

func (u *UART) dbgErr(err error) {
	switch {
	case errors.Is(err, ErrBreak):
		atomic.AddUint32(&u.stats.ErrBreak, 1)
	case errors.Is(err, ErrFraming):
		atomic.AddUint32(&u.stats.ErrFraming, 1)
	case errors.Is(err, ErrParity):
		atomic.AddUint32(&u.stats.ErrParity, 1)
	case errors.Is(err, ErrOverrun):
		atomic.AddUint32(&u.stats.ErrOverrun, 1)
	}
}
