package packer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/chronos-tachyon/huffpack"
)

// maxPreallocate caps how much Unpack trusts the size announced by a header.
const maxPreallocate = 1 << 24

// Pack builds the code for data and writes the packed stream to out.  It
// returns the Encoder that was used.
func Pack(out io.Writer, data []byte, o *huffpack.Options) (*huffpack.Encoder, error) {
	enc := huffpack.NewEncoder(huffpack.CountBytes(data, o), o)
	if err := packWith(out, data, enc); err != nil {
		return nil, err
	}
	return enc, nil
}

func packWith(out io.Writer, data []byte, enc *huffpack.Encoder) error {
	w := NewWriter(out, enc)
	if _, err := w.Write(data); err != nil {
		return err
	}
	return w.Close()
}

// Unpack reads a whole packed stream and returns the original bytes.
func Unpack(in io.Reader) ([]byte, error) {
	r, err := NewReader(in)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if r.pending < maxPreallocate {
		buf.Grow(int(r.pending))
	}
	if _, err := io.Copy(&buf, r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// PackFile reads the whole file at inPath, builds its code, and writes the
// packed stream to outPath.  On failure, outPath is removed.
func PackFile(inPath, outPath string, o *huffpack.Options) (*huffpack.Encoder, error) {
	data, ft, err := huffpack.ReadFile(inPath, o)
	if err != nil {
		return nil, err
	}
	enc := huffpack.NewEncoder(ft, o)

	err = writeOutput(outPath, func(w io.Writer) error {
		if err := packWith(w, data, enc); err != nil {
			return fmt.Errorf("failed to pack %q into %q: %w", inPath, outPath, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return enc, nil
}

// UnpackFile unpacks the stream stored at inPath into outPath.  On failure,
// outPath is removed; a truncated or corrupt stream never leaves a partial
// result behind.
func UnpackFile(inPath, outPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return fmt.Errorf("failed to open input %q: %w", inPath, err)
	}
	defer in.Close()

	r, err := NewReader(bufio.NewReader(in))
	if err != nil {
		return fmt.Errorf("failed to read header of %q: %w", inPath, err)
	}

	return writeOutput(outPath, func(w io.Writer) error {
		if _, err := io.Copy(w, r); err != nil {
			return fmt.Errorf("failed to unpack %q: %w", inPath, err)
		}
		return nil
	})
}

// writeOutput creates outPath and hands a buffered writer for it to fn.
// If anything fails, the file is closed and removed.
func writeOutput(outPath string, fn func(w io.Writer) error) (err error) {
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create output %q: %w", outPath, err)
	}
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = f.Close()
		}
		_ = os.Remove(outPath)
	}()

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write %q: %w", outPath, err)
	}
	closed = true
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output %q: %w", outPath, err)
	}
	return nil
}
