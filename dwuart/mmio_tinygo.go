// dwuart/mmio_tinygo.go

//go:build tinygo

package dwuart

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO returns a Mem32 that performs volatile 32-bit accesses against the
// register block at base. The caller must hold the only reference to that
// address range for as long as the returned Mem32 is in use.
func MMIO(base unsafe.Pointer) Mem32 {
	return mmioMem{base: base}
}

type mmioMem struct {
	base unsafe.Pointer
}

func (m mmioMem) reg(off Offset) *volatile.Register32 {
	return (*volatile.Register32)(unsafe.Add(m.base, uintptr(off)))
}

func (m mmioMem) Load(off Offset) uint32 { return m.reg(off).Get() }

func (m mmioMem) Store(off Offset, v uint32) { m.reg(off).Set(v) }
