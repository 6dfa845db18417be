package packer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"

	"github.com/chronos-tachyon/huffpack"
)

var (
	// ErrBadMagic is returned when the stream does not start with the
	// packer magic.
	ErrBadMagic = errors.New("packer: not a packed stream")

	// ErrCorrupt is returned when the stream is structurally invalid.
	ErrCorrupt = errors.New("packer: corrupt stream")
)

// Reader unpacks a stream produced by Writer.
// It also implements io.ByteReader.
type Reader struct {
	br      *bitio.Reader
	enc     *huffpack.Encoder
	dec     huffpack.Decoder
	pending uint64
	done    bool
}

// NewReader reads the stream header from in and prepares to unpack the
// rest of it.
func NewReader(in io.Reader) (*Reader, error) {
	r := &Reader{br: bitio.NewReader(in)}
	if err := r.readHeader(); err != nil {
		return nil, err
	}
	return r, nil
}

// Encoder returns the code rebuilt from the stream header.
func (r *Reader) Encoder() *huffpack.Encoder {
	return r.enc
}

// Read unpacks up to len(p) bytes.
func (r *Reader) Read(p []byte) (n int, err error) {
	for i := range p {
		if p[i], err = r.ReadByte(); err != nil {
			return i, err
		}
	}
	return len(p), nil
}

// ReadByte unpacks a single byte.  It returns io.EOF once the sentinel has
// been read.
func (r *Reader) ReadByte() (byte, error) {
	if r.done {
		return 0, io.EOF
	}

	var hc huffpack.Code
	for {
		sym, _, maxSize := r.dec.Decode(hc)
		switch {
		case sym == huffpack.EOFSymbol:
			r.done = true
			if r.pending != 0 {
				return 0, fmt.Errorf("%w: sentinel reached with %d bytes missing", ErrCorrupt, r.pending)
			}
			return 0, io.EOF

		case sym >= 0:
			if r.pending == 0 {
				return 0, fmt.Errorf("%w: more bytes than the header announced", ErrCorrupt)
			}
			r.pending--
			return byte(sym), nil

		case maxSize == 0:
			return 0, fmt.Errorf("%w: no symbol has code %s", ErrCorrupt, hc)
		}

		bit, err := r.br.ReadBool()
		if err != nil {
			return 0, noEOF(err)
		}
		if bit {
			hc = hc.Append(1)
		} else {
			hc = hc.Append(0)
		}
	}
}

func (r *Reader) readHeader() error {
	var buf [len(magic)]byte
	if _, err := io.ReadFull(r.br, buf[:]); err != nil {
		return noEOF(err)
	}
	if string(buf[:]) != magic {
		return ErrBadMagic
	}

	br := r.br
	policy := huffpack.HeapPolicy(br.TryReadByte())
	count := br.TryReadBits(16)
	if br.TryError != nil {
		return noEOF(br.TryError)
	}
	if !policy.IsValid() {
		return fmt.Errorf("%w: unknown heap policy %d", ErrCorrupt, uint8(policy))
	}
	if count == 0 || count > huffpack.NumSymbols {
		return fmt.Errorf("%w: %d leaves", ErrCorrupt, count)
	}

	ft := huffpack.NewFrequencyTable(0)
	last := huffpack.InvalidSymbol
	for i := uint64(0); i < count; i++ {
		sym := huffpack.Symbol(br.TryReadBits(16))
		if br.TryError != nil {
			return noEOF(br.TryError)
		}
		if !sym.IsValid() || sym <= last {
			return fmt.Errorf("%w: leaf %d has symbol %d", ErrCorrupt, i, int(sym))
		}
		last = sym

		weight, err := binary.ReadUvarint(br)
		if err != nil {
			return noEOF(err)
		}
		ft.SetWeight(sym, weight)
	}
	if last != huffpack.EOFSymbol {
		return fmt.Errorf("%w: no sentinel leaf", ErrCorrupt)
	}

	r.enc = huffpack.NewEncoder(ft, &huffpack.Options{Policy: policy})
	if err := r.dec.Init(r.enc.Entries()); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	r.pending = ft.InputSize()
	return nil
}

func noEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
