package packer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/chronos-tachyon/huffpack"
)

const magic = "HPK1"

var (
	// ErrUnknownSymbol is returned when writing a byte that the Encoder
	// has no code for.
	ErrUnknownSymbol = errors.New("packer: byte has no code")

	// ErrClosed is returned when writing to a closed Writer.
	ErrClosed = errors.New("packer: writer is closed")
)

// Writer packs bytes using the codes of an Encoder.
// It must be closed to write the sentinel and flush the last bits.
type Writer struct {
	enc         *huffpack.Encoder
	codes       [huffpack.NumSymbols]*huffpack.Code
	bw          *bitio.Writer
	wroteHeader bool
	closed      bool
}

// NewWriter returns a new Writer that writes the packed stream to out.
// The underlying io.Writer is not closed by Close.
func NewWriter(out io.Writer, enc *huffpack.Encoder) *Writer {
	w := &Writer{enc: enc, bw: bitio.NewWriter(out)}
	for _, entry := range enc.Entries() {
		hc := entry.Code
		w.codes[entry.Symbol] = &hc
	}
	return w
}

// Write packs every byte of p.  Packed bits are not necessarily flushed
// until the Writer is closed.
func (w *Writer) Write(p []byte) (n int, err error) {
	for i, b := range p {
		if err = w.WriteByte(b); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// WriteByte packs a single byte.
func (w *Writer) WriteByte(b byte) error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	return w.writeSymbol(huffpack.Symbol(b))
}

// Close writes the sentinel code and flushes the remaining bits, padded
// with zeroes to a byte boundary.
func (w *Writer) Close() error {
	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.writeSymbol(huffpack.EOFSymbol); err != nil {
		return err
	}
	w.closed = true
	if err := w.bw.Close(); err != nil {
		return fmt.Errorf("packer: failed to flush: %w", err)
	}
	return nil
}

func (w *Writer) writeHeader() error {
	if w.closed {
		return ErrClosed
	}
	if w.wroteHeader {
		return nil
	}
	w.wroteHeader = true

	ft := w.enc.Frequencies()
	symbols := ft.Symbols()

	bw := w.bw
	bw.TryWrite([]byte(magic))
	bw.TryWriteByte(byte(w.enc.Policy()))
	bw.TryWriteBits(uint64(len(symbols)), 16)

	var scratch [binary.MaxVarintLen64]byte
	for _, sym := range symbols {
		weight, _ := ft.Weight(sym)
		bw.TryWriteBits(uint64(sym), 16)
		n := binary.PutUvarint(scratch[:], weight)
		bw.TryWrite(scratch[:n])
	}
	if bw.TryError != nil {
		return fmt.Errorf("packer: failed to write header: %w", bw.TryError)
	}
	return nil
}

func (w *Writer) writeSymbol(sym huffpack.Symbol) error {
	if w.closed {
		return ErrClosed
	}
	hc := w.codes[sym]
	if hc == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSymbol, sym)
	}
	for i := uint16(0); i < hc.Size; i++ {
		if err := w.bw.WriteBool(hc.Bit(i) == 1); err != nil {
			return fmt.Errorf("packer: failed to write code: %w", err)
		}
	}
	return nil
}
