// dwuart/debug_stubs.go

//go:build !dwuartdebug

package dwuart

type Stats struct{}

func (u *UART) DebugReset()       {}
func (u *UART) DebugStats() Stats { return Stats{} }

func (u *UART) dbgSpin()     {}
func (u *UART) dbgTX()       {}
func (u *UART) dbgRX()       {}
func (u *UART) dbgErr(error) {}
