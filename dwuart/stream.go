// dwuart/stream.go

package dwuart

import (
	"errors"
	"io"
	"time"
)

// Flusher is implemented by types that can flush buffered output to the underlying device.
type Flusher interface{ Flush() error }

var (
	_ io.Reader       = (*UART)(nil)
	_ io.Writer       = (*UART)(nil)
	_ io.ByteWriter   = (*UART)(nil)
	_ io.StringWriter = (*UART)(nil)
	_ Flusher         = (*UART)(nil)
)

// Write implements io.Writer. It blocks until every byte of p has been
// accepted by the transmit FIFO. It does not wait for the UART to drain;
// use Flush for on-the-wire completion.
func (u *UART) Write(p []byte) (int, error) {
	for _, b := range p {
		u.WriteWord(b)
	}
	return len(p), nil
}

// WriteByte writes a single byte with the same blocking behaviour as Write.
func (u *UART) WriteByte(c byte) error {
	u.WriteWord(c)
	return nil
}

// WriteString writes s without copying it to a byte slice first.
func (u *UART) WriteString(s string) (int, error) {
	for i := 0; i < len(s); i++ {
		u.WriteWord(s[i])
	}
	return len(s), nil
}

// Flush blocks until the transmit FIFO is empty. The error is always nil; it
// exists to satisfy Flusher.
func (u *UART) Flush() error {
	u.Status().Drain()
	return nil
}

// Read implements io.Reader. It blocks until at least one byte is available,
// then returns what the receive FIFO holds without waiting for more. It does
// not return io.EOF for an idle line. A line fault surfaces as an error from
// the read that observed it; bytes received before the fault are returned
// alongside it.
func (u *UART) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	for {
		n, err := u.TryRead(p)
		if n > 0 || err != nil {
			return n, err
		}
		time.Sleep(0)
	}
}

// TryRead returns immediately with up to len(p) bytes. n == 0 with a nil
// error means no data now.
func (u *UART) TryRead(p []byte) (int, error) {
	n := 0
	for n < len(p) {
		b, ok, err := u.ReadWord()
		if err != nil {
			return n, err
		}
		if !ok {
			break
		}
		p[n] = b
		n++
	}
	return n, nil
}

// ReadByte reads a single byte without blocking. If the receive FIFO is
// empty it returns ErrRXEmpty.
func (u *UART) ReadByte() (byte, error) {
	b, ok, err := u.ReadWord()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrRXEmpty
	}
	return b, nil
}

// ReadReady reports whether a Read would return without blocking.
func (u *UART) ReadReady() bool { return !u.RXFIFOEmpty() }

// WriteReady reports whether a WriteWord would return without blocking.
func (u *UART) WriteReady() bool { return !u.TXFIFOFull() }

// IsInvalidData reports whether err marks bytes that arrived corrupted
// (framing or parity faults). Overrun and break are device conditions, not
// data corruption.
func IsInvalidData(err error) bool {
	return errors.Is(err, ErrFraming) || errors.Is(err, ErrParity)
}
