// dwuart/regs.go

package dwuart

// Regs is typed, named access to a DW_apb register block. It performs no I/O
// beyond single word loads and stores and never interprets what it moves.
// Registers the hardware defines as read-only have no setter; write-only
// registers have no getter. Aliased offsets (OffRBR, OffIER, OffIIR) keep one
// accessor per meaning, so the register names below say what the access does
// rather than where it lands.
type Regs struct {
	mem Mem32
}

// NewRegs overlays the register map on mem.
func NewRegs(mem Mem32) Regs { return Regs{mem: mem} }

// Status returns the shared, read-only view of the block.
func (r Regs) Status() StatusRegs { return StatusRegs{mem: r.mem} }

// Data reads the receive buffer register (RBR). With DLAB set the same read
// returns the low divisor byte instead.
func (r Regs) Data() uint32 { return r.mem.Load(OffRBR) }

// SetData writes the transmit holding register (THR), or the low divisor
// byte (DLL) while DLAB is set.
func (r Regs) SetData(v uint32) { r.mem.Store(OffRBR, v) }

// IER reads the interrupt enable register, or DLH while DLAB is set.
func (r Regs) IER() uint32 { return r.mem.Load(OffIER) }

// SetIER writes the interrupt enable register, or DLH while DLAB is set.
func (r Regs) SetIER(v uint32) { r.mem.Store(OffIER, v) }

// IIR reads the interrupt identification register.
func (r Regs) IIR() uint32 { return r.mem.Load(OffIIR) }

// SetFCR writes the FIFO control register, which shares its offset with IIR.
func (r Regs) SetFCR(v FCR) { r.mem.Store(OffIIR, uint32(v)) }

// LCR reads the line control register.
func (r Regs) LCR() LCR { return LCR(r.mem.Load(OffLCR)) }

// SetLCR writes the line control register.
func (r Regs) SetLCR(v LCR) { r.mem.Store(OffLCR, uint32(v)) }

// MCR reads the modem control register.
func (r Regs) MCR() MCR { return MCR(r.mem.Load(OffMCR)) }

// SetMCR writes the modem control register.
func (r Regs) SetMCR(v MCR) { r.mem.Store(OffMCR, uint32(v)) }

// LSR reads the line status register. The read clears the sticky OE/PE/FE/BI
// bits; callers must act on the value they got, not read again to confirm.
func (r Regs) LSR() LSR { return LSR(r.mem.Load(OffLSR)) }

// MSR reads the modem status register, clearing its delta bits.
func (r Regs) MSR() MSR { return MSR(r.mem.Load(OffMSR)) }

// SCR reads the scratchpad register.
func (r Regs) SCR() uint32 { return r.mem.Load(OffSCR) }

// SetSCR writes the scratchpad register.
func (r Regs) SetSCR(v uint32) { r.mem.Store(OffSCR, v) }

// USR reads the UART status register. No side effects.
func (r Regs) USR() USR { return USR(r.mem.Load(OffUSR)) }

// DLF reads the divisor latch fraction register.
func (r Regs) DLF() uint32 { return r.mem.Load(OffDLF) }

// SetDLF writes the divisor latch fraction register.
func (r Regs) SetDLF(v uint32) { r.mem.Store(OffDLF, v) }

// LPDLL and LPDLH access the low-power divisor latch.
func (r Regs) LPDLL() uint32     { return r.mem.Load(OffLPDLL) }
func (r Regs) SetLPDLL(v uint32) { r.mem.Store(OffLPDLL, v) }
func (r Regs) LPDLH() uint32     { return r.mem.Load(OffLPDLH) }
func (r Regs) SetLPDLH(v uint32) { r.mem.Store(OffLPDLH, v) }

// SRBR reads shadow receive buffer i (0..NumSRBR-1).
func (r Regs) SRBR(i int) uint32 { return r.mem.Load(OffSRBR + Offset(i)*4) }

// SetSTHR writes shadow transmit holding register i (0..NumSRBR-1).
func (r Regs) SetSTHR(i int, v uint32) { r.mem.Store(OffSRBR+Offset(i)*4, v) }

// FAR accesses the FIFO access register (test mode).
func (r Regs) FAR() uint32     { return r.mem.Load(OffFAR) }
func (r Regs) SetFAR(v uint32) { r.mem.Store(OffFAR, v) }

// TFR reads the transmit FIFO read register (test mode, read-only).
func (r Regs) TFR() uint32 { return r.mem.Load(OffTFR) }

// SetRFW writes the receive FIFO write register (test mode, write-only).
func (r Regs) SetRFW(v uint32) { r.mem.Store(OffRFW, v) }

// TFL reads the transmit FIFO level in words.
func (r Regs) TFL() uint32 { return r.mem.Load(OffTFL) }

// RFL reads the receive FIFO level in words.
func (r Regs) RFL() uint32 { return r.mem.Load(OffRFL) }

// SetSRR writes the software reset register. Bit 0 resets the whole UART,
// bits 1 and 2 reset the RX and TX FIFOs.
func (r Regs) SetSRR(v uint32) { r.mem.Store(OffSRR, v) }

// Shadow control registers, single-bit aliases of their LCR/MCR/FCR fields.
func (r Regs) SRTS() uint32      { return r.mem.Load(OffSRTS) }
func (r Regs) SetSRTS(v uint32)  { r.mem.Store(OffSRTS, v) }
func (r Regs) SBCR() uint32      { return r.mem.Load(OffSBCR) }
func (r Regs) SetSBCR(v uint32)  { r.mem.Store(OffSBCR, v) }
func (r Regs) SDMAM() uint32     { return r.mem.Load(OffSDMAM) }
func (r Regs) SetSDMAM(v uint32) { r.mem.Store(OffSDMAM, v) }
func (r Regs) SFE() uint32       { return r.mem.Load(OffSFE) }
func (r Regs) SetSFE(v uint32)   { r.mem.Store(OffSFE, v) }
func (r Regs) SRT() uint32       { return r.mem.Load(OffSRT) }
func (r Regs) SetSRT(v uint32)   { r.mem.Store(OffSRT, v) }
func (r Regs) STET() uint32      { return r.mem.Load(OffSTET) }
func (r Regs) SetSTET(v uint32)  { r.mem.Store(OffSTET, v) }

// HTX accesses the halt TX register.
func (r Regs) HTX() uint32     { return r.mem.Load(OffHTX) }
func (r Regs) SetHTX(v uint32) { r.mem.Store(OffHTX, v) }

// SetDMASA writes the DMA software acknowledge register (write-only).
func (r Regs) SetDMASA(v uint32) { r.mem.Store(OffDMASA, v) }

// CPR, UCV and CTR read the component identification registers.
func (r Regs) CPR() uint32 { return r.mem.Load(OffCPR) }
func (r Regs) UCV() uint32 { return r.mem.Load(OffUCV) }
func (r Regs) CTR() uint32 { return r.mem.Load(OffCTR) }

// StatusRegs is the read-only subset of Regs. It can only observe registers
// whose reads have no side effects, so copies may be used concurrently.
type StatusRegs struct {
	mem Loader32
}

// NewStatusRegs overlays the read-only register view on mem.
func NewStatusRegs(mem Loader32) StatusRegs { return StatusRegs{mem: mem} }

// USR reads the UART status register.
func (r StatusRegs) USR() USR { return USR(r.mem.Load(OffUSR)) }

// TFL reads the transmit FIFO level in words.
func (r StatusRegs) TFL() uint32 { return r.mem.Load(OffTFL) }

// RFL reads the receive FIFO level in words.
func (r StatusRegs) RFL() uint32 { return r.mem.Load(OffRFL) }

// CPR, UCV and CTR read the component identification registers.
func (r StatusRegs) CPR() uint32 { return r.mem.Load(OffCPR) }
func (r StatusRegs) UCV() uint32 { return r.mem.Load(OffUCV) }
func (r StatusRegs) CTR() uint32 { return r.mem.Load(OffCTR) }
