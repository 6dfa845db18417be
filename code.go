package huffpack

import (
	"fmt"
	"strings"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the bit length of the longest possible code, i.e. the depth
// of the deepest leaf in a tree holding NumSymbols leaves.
const MaxCodeSize = NumSymbols - 1

const codeWords = (MaxCodeSize + 63) / 64

// Code represents a sequence of bits: the path from the root of a tree to
// one of its leaves, 0 for each left step and 1 for each right step.
type Code struct {
	// Size holds the number of valid bits.
	Size uint16

	// Bits holds the actual values of the bits.  Bit i of the sequence is
	// bit (i % 64) of Bits[i / 64], so the least significant bit of Bits[0]
	// is the first bit.  Bits at or beyond Size are always zero.
	Bits [codeWords]uint64
}

// MakeCode is a convenience function that constructs a Code of at most 64
// bits.  The least significant bit of bits is the first bit.
func MakeCode(size uint16, bits uint64) Code {
	assert.Assertf(size <= 64, "size %d > 64", size)
	var hc Code
	hc.Size = size
	if size < 64 {
		bits &= (uint64(1) << size) - 1
	}
	hc.Bits[0] = bits
	return hc
}

// ParseCode constructs a Code from a string of '0' and '1' digits, first
// bit first.
func ParseCode(digits string) (Code, error) {
	var hc Code
	if len(digits) > MaxCodeSize {
		return hc, fmt.Errorf("code %q is too long: got %d bits, max %d", digits, len(digits), MaxCodeSize)
	}
	for _, ch := range digits {
		switch ch {
		case '0':
			hc = hc.Append(0)
		case '1':
			hc = hc.Append(1)
		default:
			return Code{}, fmt.Errorf("invalid digit %q in code %q", ch, digits)
		}
	}
	return hc, nil
}

// Bit returns the i'th bit of the sequence, 0 or 1.
func (hc Code) Bit(i uint16) uint {
	assert.Assertf(i < hc.Size, "bit index %d out of range for code of size %d", i, hc.Size)
	return uint(hc.Bits[i/64]>>(i%64)) & 1
}

// Append returns a copy of this Code with one more bit at the end.
func (hc Code) Append(bit uint) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code already holds %d bits", hc.Size)
	assert.Assertf(bit <= 1, "bit %d is neither 0 nor 1", bit)
	i := hc.Size
	hc.Bits[i/64] |= uint64(bit) << (i % 64)
	hc.Size++
	return hc
}

// Truncated returns the first size bits of this Code.
func (hc Code) Truncated(size uint16) Code {
	assert.Assertf(size <= hc.Size, "cannot truncate code of size %d to %d", hc.Size, size)
	for i := size; i < hc.Size; i++ {
		hc.Bits[i/64] &^= uint64(1) << (i % 64)
	}
	hc.Size = size
	return hc
}

// HasPrefix returns true iff the first prefix.Size bits of this Code equal
// prefix.  Every Code has the empty Code as a prefix, and itself.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Truncated(prefix.Size) == prefix
}

// Digits returns the bits as a string of '0' and '1', first bit first.
func (hc Code) Digits() string {
	var buf strings.Builder
	buf.Grow(int(hc.Size))
	for i := uint16(0); i < hc.Size; i++ {
		buf.WriteByte('0' + byte(hc.Bit(i)))
	}
	return buf.String()
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	return "\"" + hc.Digits() + "\""
}

var _ fmt.Stringer = Code{}

// flipped returns a copy of this Code with its last bit inverted.
func (hc Code) flipped() Code {
	i := hc.Size - 1
	hc.Bits[i/64] ^= uint64(1) << (i % 64)
	return hc
}
