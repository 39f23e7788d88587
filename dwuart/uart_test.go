// dwuart/uart_test.go

package dwuart_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/jangala-dev/tinygo-dwuart/dwsim"
	"github.com/jangala-dev/tinygo-dwuart/dwuart"
)

func newTestUART() (*dwuart.UART, *dwsim.Device) {
	dev := dwsim.New()
	return dwuart.New(dev), dev
}

func TestConfigureProgramsDivisor(t *testing.T) {
	cases := []struct {
		name     string
		baud     uint32
		clock    uint32
		wantDiv  uint32
		wantFrac uint32
	}{
		{"115200@48MHz", 115200, 48_000_000, 26, 0},
		{"9600@1.8432MHz", 9600, 1_843_200, 12, 0},
		{"115200@100MHz", 115200, 100_000_000, 54, 4},
		// divisor > 255 exercises the high byte
		{"300@1.8432MHz", 300, 1_843_200, 384, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			u, dev := newTestUART()
			u.Configure(c.baud, c.clock)

			if got := dev.Divisor(); got != c.wantDiv {
				t.Errorf("divisor = %d, want %d", got, c.wantDiv)
			}
			if got := dev.Fractional(); got != c.wantFrac {
				t.Errorf("fractional = %d, want %d", got, c.wantFrac)
			}
			if got := dev.LCR(); got != dwuart.LCRDLS8 {
				t.Errorf("LCR = %#x, want 8N1 (%#x)", uint32(got), uint32(dwuart.LCRDLS8))
			}
			if !dev.FIFOEnabled() {
				t.Error("FIFOs not enabled")
			}
		})
	}
}

func TestConfigureWriteOrdering(t *testing.T) {
	u, dev := newTestUART()
	u.Configure(115200, 48_000_000)

	want := []dwsim.Write{
		{Off: dwuart.OffLCR, Val: uint32(dwuart.LCRDLAB)},
		{Off: dwuart.OffDLF, Val: 0},
		{Off: dwuart.OffRBR, Val: 26},
		{Off: dwuart.OffIER, Val: 0},
		{Off: dwuart.OffLCR, Val: uint32(dwuart.LCRDLS8)},
		{Off: dwuart.OffIIR, Val: uint32(dwuart.FCRFIFOE)},
	}
	got := dev.Writes()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("configure write sequence differs")
		spew.Dump(got)
		spew.Dump(want)
	}
}

func TestConfigureWaitsWhileBusy(t *testing.T) {
	u, dev := newTestUART()
	dev.SetBusy(true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		u.Configure(115200, 48_000_000)
	}()

	select {
	case <-done:
		t.Fatal("Configure returned while the UART was busy")
	case <-time.After(50 * time.Millisecond):
	}
	if len(dev.Writes()) != 0 {
		t.Fatalf("registers written while busy:\n%s", spew.Sdump(dev.Writes()))
	}

	dev.SetBusy(false)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Configure after busy cleared")
	}
	if got := dev.Divisor(); got != 26 {
		t.Fatalf("divisor = %d, want 26", got)
	}
}

func TestWriteWordBlocksWhenFIFOFull(t *testing.T) {
	u, dev := newTestUART()
	u.Configure(115200, 48_000_000)

	for i := 0; i < dwsim.FIFODepth; i++ {
		u.WriteWord(byte(i))
	}
	if !u.TXFIFOFull() {
		t.Fatal("TX FIFO should be full after FIFODepth writes")
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		u.WriteWord(0xAA)
	}()

	select {
	case <-done:
		t.Fatal("WriteWord returned while the FIFO was full")
	case <-time.After(50 * time.Millisecond):
	}

	if b, ok := dev.PopTX(); !ok || b != 0 {
		t.Fatalf("PopTX = %#x, %v; want byte 0", b, ok)
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for WriteWord after FIFO space freed")
	}
	if got := dev.TXLen(); got != dwsim.FIFODepth {
		t.Fatalf("TX FIFO holds %d bytes, want %d", got, dwsim.FIFODepth)
	}
}

func TestDrainWaitsForTransmitterEmpty(t *testing.T) {
	u, dev := newTestUART()
	u.Configure(115200, 48_000_000)
	u.WriteWord('x')
	u.WriteWord('y')

	done := make(chan struct{})
	go func() {
		defer close(done)
		u.Status().Drain()
	}()

	select {
	case <-done:
		t.Fatal("Drain returned with bytes still queued")
	case <-time.After(50 * time.Millisecond):
	}

	dev.DrainTX()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for Drain after TX FIFO emptied")
	}

	// With the FIFO already empty, Drain must return immediately.
	u.Status().Drain()
}

func TestReadWordErrorPrecedence(t *testing.T) {
	cases := []struct {
		name   string
		inject dwuart.LSR
		want   error
	}{
		{"break beats all", dwuart.LSRBI | dwuart.LSRFE | dwuart.LSRPE | dwuart.LSROE, dwuart.ErrBreak},
		{"framing beats parity and overrun", dwuart.LSRFE | dwuart.LSRPE | dwuart.LSROE, dwuart.ErrFraming},
		{"parity beats overrun", dwuart.LSRPE | dwuart.LSROE, dwuart.ErrParity},
		{"overrun alone", dwuart.LSROE, dwuart.ErrOverrun},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			u, dev := newTestUART()
			u.Configure(115200, 48_000_000)
			dev.PushRX('k')
			dev.InjectLineError(c.inject)

			_, ok, err := u.ReadWord()
			if ok || !errors.Is(err, c.want) {
				t.Fatalf("ReadWord = ok=%v err=%v, want %v", ok, err, c.want)
			}

			// The LSR read cleared the sticky bits, so the byte that was
			// already in the FIFO now reads cleanly: the fault is reported
			// exactly once.
			b, ok, err := u.ReadWord()
			if err != nil || !ok || b != 'k' {
				t.Fatalf("second ReadWord = %q ok=%v err=%v, want 'k', true, nil", b, ok, err)
			}
		})
	}
}

func TestReadWordDataReady(t *testing.T) {
	u, dev := newTestUART()
	u.Configure(115200, 48_000_000)
	dev.PushRX('A')

	b, ok, err := u.ReadWord()
	if err != nil || !ok || b != 'A' {
		t.Fatalf("ReadWord = %q ok=%v err=%v, want 'A', true, nil", b, ok, err)
	}
}

func TestReadWordNoData(t *testing.T) {
	u, _ := newTestUART()
	u.Configure(115200, 48_000_000)

	b, ok, err := u.ReadWord()
	if err != nil {
		t.Fatalf("no data must not be an error, got %v", err)
	}
	if ok || b != 0 {
		t.Fatalf("ReadWord on empty FIFO = %q ok=%v, want 0, false", b, ok)
	}
}

func TestStatusQueries(t *testing.T) {
	u, dev := newTestUART()
	u.Configure(115200, 48_000_000)
	st := u.Status()

	if st.TXFIFOFull() || !st.RXFIFOEmpty() {
		t.Fatal("fresh UART: TX should have room, RX should be empty")
	}
	for i := 0; i < dwsim.FIFODepth; i++ {
		u.WriteWord('.')
	}
	if !st.TXFIFOFull() {
		t.Fatal("TX FIFO should be full")
	}
	if got := st.TXLevel(); got != dwsim.FIFODepth {
		t.Fatalf("TXLevel = %d, want %d", got, dwsim.FIFODepth)
	}
	dev.PushRX(1, 2, 3)
	if st.RXFIFOEmpty() {
		t.Fatal("RX FIFO should not be empty")
	}
	if got := st.RXLevel(); got != 3 {
		t.Fatalf("RXLevel = %d, want 3", got)
	}
}

func TestIdentify(t *testing.T) {
	u, _ := newTestUART()
	cpr, ucv, ctr := u.Status().Identify()
	if cpr != dwsim.CPRValue || ucv != dwsim.UCVValue || ctr != dwsim.CTRValue {
		t.Fatalf("Identify = %#x %#x %#x", cpr, ucv, ctr)
	}
}

func TestReadWordContextCancels(t *testing.T) {
	u, _ := newTestUART()
	u.Configure(115200, 48_000_000)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	if _, err := u.ReadWordContext(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestWriteWordContextCancelsWhenFull(t *testing.T) {
	u, dev := newTestUART()
	u.Configure(115200, 48_000_000)
	for i := 0; i < dwsim.FIFODepth; i++ {
		u.WriteWord('.')
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := u.WriteWordContext(ctx, '!'); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	// The byte must not have been accepted.
	if got := dev.TXLen(); got != dwsim.FIFODepth {
		t.Fatalf("TX FIFO holds %d bytes, want %d", got, dwsim.FIFODepth)
	}
}

func TestConfigureContextCancelsWhileBusy(t *testing.T) {
	u, dev := newTestUART()
	dev.SetBusy(true)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := u.ConfigureContext(ctx, 115200, 48_000_000); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if len(dev.Writes()) != 0 {
		t.Fatal("registers must be untouched after a cancelled configure")
	}
}
