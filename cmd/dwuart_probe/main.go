// cmd/dwuart_probe/main.go

//go:build linux

// dwuart_probe maps a DW_apb UART register block out of /dev/mem and dumps
// the decoded control and status registers. Useful for checking what a
// bootloader or another OS left behind before this driver takes over.
//
//	dwuart_probe -base 0x1e784000
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"syscall"

	"github.com/davecgh/go-spew/spew"

	"github.com/jangala-dev/tinygo-dwuart/dwuart"
)

// snapshot is a decoded single read of every side-effect-free register.
type snapshot struct {
	LCR dwuart.LCR
	MCR dwuart.MCR
	USR dwuart.USR
	IER uint32
	IIR uint32
	SCR uint32
	TFL uint32
	RFL uint32
	CPR uint32
	UCV uint32
	CTR uint32
}

func main() {
	baseFlag := flag.String("base", "", "physical base address of the register block (required)")
	verbose := flag.Bool("v", false, "dump the raw snapshot structure")
	flag.Parse()

	if *baseFlag == "" {
		flag.Usage()
		os.Exit(2)
	}
	base, err := strconv.ParseUint(*baseFlag, 0, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid base address %q: %v\n", *baseFlag, err)
		os.Exit(2)
	}

	pageSize := uint64(syscall.Getpagesize())
	pageBase := base &^ (pageSize - 1)
	pageOff := base - pageBase

	f, err := os.OpenFile("/dev/mem", os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open /dev/mem: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	mapLen := int(pageOff) + dwuart.BlockSize
	block, err := syscall.Mmap(int(f.Fd()), int64(pageBase), mapLen,
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_SHARED)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmap /dev/mem at %#x: %v\n", pageBase, err)
		os.Exit(1)
	}
	defer syscall.Munmap(block)

	mem, err := dwuart.NewRawMem(block[pageOff:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	regs := dwuart.NewRegs(mem)

	snap := snapshot{
		LCR: regs.LCR(),
		MCR: regs.MCR(),
		USR: regs.USR(),
		IER: regs.IER(),
		IIR: regs.IIR(),
		SCR: regs.SCR(),
		TFL: regs.TFL(),
		RFL: regs.RFL(),
		CPR: regs.CPR(),
		UCV: regs.UCV(),
		CTR: regs.CTR(),
	}

	fmt.Printf("DW_apb UART at %#x\n", base)
	fmt.Printf("  component: type=%#08x version=%#08x params=%#08x\n", snap.CTR, snap.UCV, snap.CPR)
	fmt.Printf("  line:      lcr=%#02x dlab=%v break=%v parity=%v\n",
		uint32(snap.LCR), snap.LCR.Has(dwuart.LCRDLAB), snap.LCR.Has(dwuart.LCRBC), snap.LCR.Has(dwuart.LCRPEN))
	fmt.Printf("  modem:     mcr=%#02x loopback=%v rts=%v dtr=%v\n",
		uint32(snap.MCR), snap.MCR.Has(dwuart.MCRLB), snap.MCR.Has(dwuart.MCRRTS), snap.MCR.Has(dwuart.MCRDTR))
	fmt.Printf("  status:    busy=%v tx_full=%v rx_empty=%v tfl=%d rfl=%d\n",
		snap.USR.Has(dwuart.USRBUSY), !snap.USR.Has(dwuart.USRTFNF), !snap.USR.Has(dwuart.USRRFNE),
		snap.TFL, snap.RFL)

	if *verbose {
		spew.Dump(snap)
	}
}
