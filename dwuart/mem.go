// dwuart/mem.go

package dwuart

import (
	"errors"
	"unsafe"
)

// Loader32 is the read-only half of the MMIO boundary. Status queries only
// ever need a Loader32, so any number of them may share one.
type Loader32 interface {
	Load(off Offset) uint32
}

// Mem32 is 32-bit word access into one DW_apb register block. Exactly one
// owner may issue stores; implementations must make each Load and Store a
// single access of the full word, in program order.
type Mem32 interface {
	Loader32
	Store(off Offset, v uint32)
}

// ErrShortBlock is returned by NewRawMem when the supplied block cannot hold
// the whole register map.
var ErrShortBlock = errors.New("dwuart: block smaller than register map")

// RawMem accesses a register block through a caller-supplied byte slice,
// typically a /dev/mem mapping of the peripheral's physical base address.
// Accesses are plain 32-bit loads and stores of the naturally aligned word.
type RawMem struct {
	block []byte
}

// NewRawMem wraps block, which must be at least BlockSize bytes and 4-byte
// aligned (mmap'd pages always are).
func NewRawMem(block []byte) (*RawMem, error) {
	if len(block) < BlockSize {
		return nil, ErrShortBlock
	}
	return &RawMem{block: block}, nil
}

// Load returns the 32-bit word at off.
func (m *RawMem) Load(off Offset) uint32 {
	return *(*uint32)(unsafe.Pointer(&m.block[off]))
}

// Store writes the 32-bit word at off.
func (m *RawMem) Store(off Offset, v uint32) {
	*(*uint32)(unsafe.Pointer(&m.block[off])) = v
}
