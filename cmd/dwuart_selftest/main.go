// cmd/dwuart_selftest/main.go

// dwuart_selftest exercises the driver against the dwsim device model and
// reports PASS/FAIL per check. It runs on the host, no hardware needed.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jangala-dev/tinygo-dwuart/dwsim"
	"github.com/jangala-dev/tinygo-dwuart/dwuart"
)

var failed bool

func check(name string, ok bool, detail string) {
	if ok {
		fmt.Printf("PASS: %s\n", name)
		return
	}
	failed = true
	fmt.Printf("FAIL: %s: %s\n", name, detail)
}

func main() {
	dev := dwsim.New()
	u := dwuart.New(dev)

	u.Configure(115200, 48_000_000)
	check("configure divisor", dev.Divisor() == 26,
		fmt.Sprintf("divisor=%d want 26", dev.Divisor()))
	check("configure 8N1", dev.LCR() == dwuart.LCRDLS8,
		fmt.Sprintf("lcr=%#x", uint32(dev.LCR())))
	check("configure FIFOs", dev.FIFOEnabled(), "FIFOs disabled")

	// Transmit through the FIFO and take it off the simulated wire.
	msg := "quick brown"
	if _, err := u.WriteString(msg); err != nil {
		check("write", false, err.Error())
	}
	got := string(dev.DrainTX())
	check("transmit order", got == msg, fmt.Sprintf("wire saw %q", got))

	// Receive path, including the error protocol.
	dev.PushRX('o')
	dev.InjectLineError(dwuart.LSRBI | dwuart.LSRFE | dwuart.LSRPE | dwuart.LSROE)
	_, _, err := u.ReadWord()
	check("break wins precedence", errors.Is(err, dwuart.ErrBreak),
		fmt.Sprintf("err=%v", err))
	b, ok, err := u.ReadWord()
	check("fault reported once", err == nil && ok && b == 'o',
		fmt.Sprintf("b=%q ok=%v err=%v", b, ok, err))

	// Loopback through the modem control register.
	u.Regs().SetMCR(dwuart.MCRLB)
	if _, err := u.WriteString("ping"); err != nil {
		check("loopback write", false, err.Error())
	}
	buf := make([]byte, 16)
	n, err := u.Read(buf)
	check("loopback echo", err == nil && string(buf[:n]) == "ping",
		fmt.Sprintf("got %q err=%v", buf[:n], err))

	cpr, ucv, ctr := u.Status().Identify()
	check("component id", ctr == dwsim.CTRValue,
		fmt.Sprintf("cpr=%#x ucv=%#x ctr=%#x", cpr, ucv, ctr))

	if failed {
		os.Exit(1)
	}
	fmt.Println("all checks passed")
}
