// dwuart/registers.go

package dwuart

// Offset is a byte offset of a register within the DW_apb register block.
// All registers are 32-bit words on 4-byte boundaries.
type Offset uintptr

// Register offsets. Several offsets are aliased: what they address depends on
// LCR's divisor latch access bit (DLAB), or on the access direction.
const (
	OffRBR Offset = 0x00 // RBR (read) / THR (write); DLL when DLAB is set
	OffIER Offset = 0x04 // IER; DLH when DLAB is set
	OffIIR Offset = 0x08 // IIR (read) / FCR (write)
	OffLCR Offset = 0x0C // line control
	OffMCR Offset = 0x10 // modem control
	OffLSR Offset = 0x14 // line status (read-only)
	OffMSR Offset = 0x18 // modem status (read-only)
	OffSCR Offset = 0x1C // scratchpad

	OffLPDLL Offset = 0x20 // low-power divisor latch low
	OffLPDLH Offset = 0x24 // low-power divisor latch high

	OffSRBR Offset = 0x30 // shadow RBR/THR, 16 words through 0x6C

	OffFAR   Offset = 0x70 // FIFO access
	OffTFR   Offset = 0x74 // transmit FIFO read (read-only)
	OffRFW   Offset = 0x78 // receive FIFO write (write-only)
	OffUSR   Offset = 0x7C // UART status (read-only)
	OffTFL   Offset = 0x80 // transmit FIFO level (read-only)
	OffRFL   Offset = 0x84 // receive FIFO level (read-only)
	OffSRR   Offset = 0x88 // software reset (write-only)
	OffSRTS  Offset = 0x8C // shadow request to send
	OffSBCR  Offset = 0x90 // shadow break control
	OffSDMAM Offset = 0x94 // shadow DMA mode
	OffSFE   Offset = 0x98 // shadow FIFO enable
	OffSRT   Offset = 0x9C // shadow RCVR trigger
	OffSTET  Offset = 0xA0 // shadow TX empty trigger
	OffHTX   Offset = 0xA4 // halt TX
	OffDMASA Offset = 0xA8 // DMA software acknowledge (write-only)

	OffDLF Offset = 0xC0 // divisor latch fraction

	OffCPR Offset = 0xF4 // component parameters (read-only)
	OffUCV Offset = 0xF8 // component version (read-only)
	OffCTR Offset = 0xFC // component type (read-only)
)

// NumSRBR is the number of shadow RBR/THR words starting at OffSRBR.
const NumSRBR = 16

// BlockSize is the size of the whole register block in bytes.
const BlockSize = 0x100

// LCR is a line control register value.
type LCR uint32

const (
	LCRDLAB LCR = 1 << 7 // divisor latch access
	LCRBC   LCR = 1 << 6 // break control
	LCREPS  LCR = 1 << 4 // even parity select
	LCRPEN  LCR = 1 << 3 // parity enable
	LCRSTOP LCR = 1 << 2 // stop bits: clear = 1, set = 1.5 (5 data bits) or 2
)

// Data length select values for LCR bits 1:0.
const (
	LCRDLS5 LCR = 0b00 // 5 data bits
	LCRDLS6 LCR = 0b01 // 6 data bits
	LCRDLS7 LCR = 0b10 // 7 data bits
	LCRDLS8 LCR = 0b11 // 8 data bits
)

// Has reports whether all bits of f are set in v.
func (v LCR) Has(f LCR) bool { return v&f == f }

// MCR is a modem control register value.
type MCR uint32

const (
	MCRSIRE MCR = 1 << 6 // SIR mode enable
	MCRAFCE MCR = 1 << 5 // auto flow control enable
	MCRLB   MCR = 1 << 4 // loopback
	MCROUT2 MCR = 1 << 3 // user output 2 (inverted)
	MCROUT1 MCR = 1 << 2 // user output 1 (inverted)
	MCRRTS  MCR = 1 << 1 // request to send
	MCRDTR  MCR = 1 << 0 // data terminal ready
)

// Has reports whether all bits of f are set in v.
func (v MCR) Has(f MCR) bool { return v&f == f }

// LSR is a line status register value. Reading LSR clears the sticky
// OE/PE/FE/BI error bits in hardware.
type LSR uint32

const (
	LSRRFE  LSR = 1 << 7 // error somewhere in the receive FIFO
	LSRTEMT LSR = 1 << 6 // transmitter empty (FIFO and shift register)
	LSRTHRE LSR = 1 << 5 // transmit holding register empty
	LSRBI   LSR = 1 << 4 // break interrupt
	LSRFE   LSR = 1 << 3 // framing error
	LSRPE   LSR = 1 << 2 // parity error
	LSROE   LSR = 1 << 1 // receive overrun
	LSRDR   LSR = 1 << 0 // data ready
)

// Has reports whether all bits of f are set in v.
func (v LSR) Has(f LSR) bool { return v&f == f }

// MSR is a modem status register value. The delta bits record a change since
// the last read and clear when MSR is read.
type MSR uint32

const (
	MSRDCD  MSR = 1 << 7 // data carrier detect
	MSRRI   MSR = 1 << 6 // ring indicator
	MSRDSR  MSR = 1 << 5 // data set ready
	MSRCTS  MSR = 1 << 4 // clear to send
	MSRDDCD MSR = 1 << 3 // delta data carrier detect
	MSRTERI MSR = 1 << 2 // trailing edge of ring indicator
	MSRDDSR MSR = 1 << 1 // delta data set ready
	MSRDCTS MSR = 1 << 0 // delta clear to send
)

// Has reports whether all bits of f are set in v.
func (v MSR) Has(f MSR) bool { return v&f == f }

// USR is a UART status register value. Unlike LSR it is latched from the FIFO
// state directly and reading it has no side effects.
type USR uint32

const (
	USRRFF  USR = 1 << 4 // receive FIFO full
	USRRFNE USR = 1 << 3 // receive FIFO not empty
	USRTFE  USR = 1 << 2 // transmit FIFO empty
	USRTFNF USR = 1 << 1 // transmit FIFO not full
	USRBUSY USR = 1 << 0 // serial transfer in progress
)

// Has reports whether all bits of f are set in v.
func (v USR) Has(f USR) bool { return v&f == f }

// FCR is a FIFO control register value. FCR is write-only; it shares its
// offset with the read-only IIR.
type FCR uint32

const (
	FCRDMAM   FCR = 1 << 3 // DMA mode
	FCRXFIFOR FCR = 1 << 2 // reset transmit FIFO
	FCRRFIFOR FCR = 1 << 1 // reset receive FIFO
	FCRFIFOE  FCR = 1 << 0 // enable both FIFOs
)

// Receive trigger levels for FCR bits 7:6.
const (
	FCRRT1Char       FCR = 0b00 << 6
	FCRRTQuarterFull FCR = 0b01 << 6
	FCRRTHalfFull    FCR = 0b10 << 6
	FCRRT2Less       FCR = 0b11 << 6
)

// Transmit empty trigger levels for FCR bits 5:4.
const (
	FCRTETEmpty       FCR = 0b00 << 4
	FCRTET2Chars      FCR = 0b01 << 4
	FCRTETQuarterFull FCR = 0b10 << 4
	FCRTETHalfFull    FCR = 0b11 << 4
)

// Has reports whether all bits of f are set in v.
func (v FCR) Has(f FCR) bool { return v&f == f }

// IER is an interrupt enable register value. The driver is polled and leaves
// all of these clear, but the register is part of the map (and aliases DLH).
type IER uint32

const (
	IERPTIME IER = 1 << 7 // programmable THRE interrupt mode
	IEREDSSI IER = 1 << 3 // modem status interrupt
	IERELSI  IER = 1 << 2 // receiver line status interrupt
	IERETBEI IER = 1 << 1 // transmit holding register empty interrupt
	IERERBFI IER = 1 << 0 // received data available interrupt
)

// Has reports whether all bits of f are set in v.
func (v IER) Has(f IER) bool { return v&f == f }
