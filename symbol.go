package huffpack

import (
	"strconv"
)

// Symbol represents a symbol in the 257-value alphabet: the 256 byte values
// plus EOFSymbol.  Negative symbols are not valid.
type Symbol int32

const (
	// EOFSymbol is the end-of-stream sentinel.
	EOFSymbol = Symbol(256)

	// NumSymbols is the size of the alphabet.
	NumSymbols = 257

	// MaxSymbol is the maximum valid symbol.
	MaxSymbol = EOFSymbol
)

// InvalidSymbol is returned by some functions to clearly indicate that no
// symbol is being returned.  Internal tree nodes also carry it.
const InvalidSymbol = Symbol(-1)

// IsValid returns true iff sym is a byte value or EOFSymbol.
func (sym Symbol) IsValid() bool {
	return sym >= 0 && sym <= MaxSymbol
}

// IsPrintable returns true iff sym is a printable ASCII character.
func (sym Symbol) IsPrintable() bool {
	return sym >= 0x20 && sym <= 0x7e
}

// String returns the character itself if printable, or a three-digit octal
// escape otherwise.
func (sym Symbol) String() string {
	if sym.IsPrintable() {
		return string(rune(sym))
	}
	if sym < 0 {
		return strconv.Itoa(int(sym))
	}
	s := strconv.FormatInt(int64(sym), 8)
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
