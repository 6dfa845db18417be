package huffpack

import (
	"bytes"
	"fmt"
	"io"
	mathbits "math/bits"
	"sort"
)

// Decoder implements a decoder for the codes produced by Encoder.
type Decoder struct {
	table   map[Code]decoderData
	minSize uint16
	maxSize uint16
	count   int
}

// Init initializes this Decoder.  The argument lists the code of every
// symbol, typically Encoder.Entries().  The entries must form a prefix-free
// code: no two entries may share a symbol or a code, and no code may be a
// prefix of another.
//
// A single entry with the empty code is permitted, as this is what a tree
// consisting only of the sentinel produces.  Such a code decodes without
// consuming any bit.
//
func (d *Decoder) Init(entries []Entry) error {
	numEntries := uint32(len(entries))
	if numEntries == 0 {
		*d = Decoder{}
		return nil
	}

	seen := make(map[Symbol]struct{}, numEntries)
	var minSize, maxSize uint16
	for i, entry := range entries {
		if !entry.Symbol.IsValid() {
			return fmt.Errorf("invalid symbol %d", int(entry.Symbol))
		}
		if _, dupe := seen[entry.Symbol]; dupe {
			return fmt.Errorf("symbol %d appears more than once", int(entry.Symbol))
		}
		seen[entry.Symbol] = struct{}{}

		size := entry.Code.Size
		if size > MaxCodeSize {
			return fmt.Errorf("invalid bit length: got %d, max %d", size, MaxCodeSize)
		}
		if size == 0 && numEntries > 1 {
			return fmt.Errorf("symbol %d has the empty code but is not alone", int(entry.Symbol))
		}
		if i == 0 || minSize > size {
			minSize = size
		}
		if i == 0 || maxSize < size {
			maxSize = size
		}
	}

	table := make(map[Code]decoderData, tableSize(numEntries))
	for _, entry := range entries {
		hc := entry.Code
		if dd, found := table[hc]; found {
			if dd.symbol >= 0 {
				return fmt.Errorf("symbols %d and %d share code %s", int(dd.symbol), int(entry.Symbol), hc)
			}
			return fmt.Errorf("code %s of symbol %d is a prefix of another code", hc, int(entry.Symbol))
		}
		for size := hc.Size; size > 0; size-- {
			prefix := hc.Truncated(size - 1)
			if dd, found := table[prefix]; found && dd.symbol >= 0 {
				return fmt.Errorf("code %s of symbol %d is a prefix of code %s of symbol %d", prefix, int(dd.symbol), hc, int(entry.Symbol))
			}
		}
		fillTable(table, entry.Symbol, hc)
	}

	*d = Decoder{
		table:   table,
		minSize: minSize,
		maxSize: maxSize,
		count:   len(entries),
	}
	return nil
}

// Decode looks up the first hc.Size bits of a stream, in the order they
// were read, among the codes passed to Init.
//
// When hc is a whole code, symbol is the symbol it stands for and minSize ==
// maxSize == hc.Size.
//
// When hc is a proper prefix of one or more codes, symbol is InvalidSymbol
// and every code that extends hc is between minSize and maxSize bits long;
// the caller reads at least minSize - hc.Size more bits before retrying.
//
// When no code starts with hc, the stream is corrupt: symbol is
// InvalidSymbol and minSize == maxSize == 0.
//
func (d Decoder) Decode(hc Code) (symbol Symbol, minSize uint16, maxSize uint16) {
	dd, found := d.table[hc]
	if !found {
		return InvalidSymbol, 0, 0
	}
	return dd.symbol, dd.minSize, dd.maxSize
}

// MinSize is the bit length of the shortest legal code.
func (d Decoder) MinSize() uint16 {
	return d.minSize
}

// MaxSize is the bit length of the longest legal code.
func (d Decoder) MaxSize() uint16 {
	return d.maxSize
}

// Len returns the number of symbols in the code.
func (d Decoder) Len() int {
	return d.count
}

// Dump writes a programmer-readable debugging dump of the Decoder's current
// state to the given writer.
func (d Decoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Decoder{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", d.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", d.maxSize)
	keys := make(byCode, 0, len(d.table))
	for hc := range d.table {
		keys = append(keys, hc)
	}
	keys.Sort()
	for _, hc := range keys {
		dd := d.table[hc]
		fmt.Fprintf(&buf, "\tDecode(%s) = {%d, %d, %d}\n", hc, dd.symbol, dd.minSize, dd.maxSize)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// tableSize estimates len(table) when filled: approximately n×log2(n).
func tableSize(n uint32) uint32 {
	if n < 2 {
		return 1
	}
	return n * uint32(mathbits.Len32(n))
}

type decoderData struct {
	symbol  Symbol
	minSize uint16
	maxSize uint16
}

func fillTable(table map[Code]decoderData, symbol Symbol, hc Code) {
	dd := decoderData{symbol, hc.Size, hc.Size}
	table[hc] = dd

	for hc.Size != 0 {
		// For each hc "...xxxa", look up "...xxxA" where A = NOT a.

		sibling := hc.flipped()

		// Merge the dd's from "...xxxa" (dd) and "...xxxA" (ddSibling)
		// into ddNew (the new parent for dd and ddSibling).

		ddNew := decoderData{InvalidSymbol, dd.minSize, dd.maxSize}
		if ddSibling, found := table[sibling]; found {
			if ddNew.minSize > ddSibling.minSize {
				ddNew.minSize = ddSibling.minSize
			}
			if ddNew.maxSize < ddSibling.maxSize {
				ddNew.maxSize = ddSibling.maxSize
			}
		}

		// Mutate hc from "...xxxa" to "...xxx".

		hc = hc.Truncated(hc.Size - 1)

		// If table[hc] already equals ddNew, we can stop recursing.

		if ddOld, found := table[hc]; found && ddOld == ddNew {
			break
		}

		// Update table[hc] with ddNew and continue recursing.

		table[hc] = ddNew
		dd = ddNew
	}
}

// type byCode {{{

type byCode []Code

func (list byCode) Sort() {
	sort.Sort(list)
}

func (list byCode) Len() int {
	return len(list)
}

func (list byCode) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list byCode) Less(i, j int) bool {
	a, b := list[i], list[j]
	if a.Size != b.Size {
		return a.Size < b.Size
	}
	for k := uint16(0); k < a.Size; k++ {
		if ab, bb := a.Bit(k), b.Bit(k); ab != bb {
			return ab < bb
		}
	}
	return false
}

var _ sort.Interface = byCode(nil)

// }}}
