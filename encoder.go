package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// Encoder holds the Huffman code built for one input.
type Encoder struct {
	entries []Entry
	index   map[Symbol]int
	freq    *FrequencyTable
	policy  HeapPolicy
	minSize uint16
	maxSize uint16
}

// NewEncoder is a convenience function that allocates an Encoder and calls
// Init on it.
func NewEncoder(ft *FrequencyTable, o *Options) *Encoder {
	e := new(Encoder)
	e.Init(ft, o)
	return e
}

// Init initializes this Encoder from a frequency table: it builds the tree,
// generates one code per leaf, and then discards the tree.
func (e *Encoder) Init(ft *FrequencyTable, o *Options) {
	o = checkOptions(o)

	t := Build(ft, o)
	err := t.Validate()
	assert.Assertf(err == nil, "built an invalid tree: %v", err)

	entries := GenerateCodes(t)
	t.Reset()

	index := make(map[Symbol]int, len(entries))
	var minSize, maxSize uint16
	for i, entry := range entries {
		index[entry.Symbol] = i
		size := entry.Code.Size
		if i == 0 {
			minSize, maxSize = size, size
		} else if minSize > size {
			minSize = size
		} else if maxSize < size {
			maxSize = size
		}
	}

	*e = Encoder{
		entries: entries,
		index:   index,
		freq:    ft,
		policy:  o.Policy,
		minSize: minSize,
		maxSize: maxSize,
	}
}

// Encode returns the code of a Symbol, and whether the Symbol has one.
func (e Encoder) Encode(symbol Symbol) (Code, bool) {
	entry, found := e.Entry(symbol)
	return entry.Code, found
}

// Entry returns everything known about a Symbol, and whether it has a leaf.
func (e Encoder) Entry(symbol Symbol) (Entry, bool) {
	i, found := e.index[symbol]
	if !found {
		return Entry{Symbol: symbol}, false
	}
	return e.entries[i], true
}

// Entries returns one Entry per leaf, in tree traversal order.
func (e Encoder) Entries() []Entry {
	out := make([]Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Len returns the number of symbols that have a code.
func (e Encoder) Len() int {
	return len(e.entries)
}

// MinSize is the bit length of the shortest legal code.
func (e Encoder) MinSize() uint16 {
	return e.minSize
}

// MaxSize is the bit length of the longest legal code.
func (e Encoder) MaxSize() uint16 {
	return e.maxSize
}

// Policy returns the heap policy the tree was built with.
func (e Encoder) Policy() HeapPolicy {
	return e.policy
}

// Frequencies returns the table this Encoder was built from.
func (e Encoder) Frequencies() *FrequencyTable {
	return e.freq
}

// SizeBySymbol returns an array containing the bit length for each Symbol in
// the alphabet, 0 for symbols without a leaf.
func (e Encoder) SizeBySymbol() []uint16 {
	out := make([]uint16, NumSymbols)
	for _, entry := range e.entries {
		out[entry.Symbol] = entry.Code.Size
	}
	return out
}

// EncodedBits returns the number of bits needed to encode every counted
// input byte plus one sentinel.
func (e Encoder) EncodedBits() uint64 {
	var sum uint64
	for _, entry := range e.entries {
		if entry.Symbol == EOFSymbol {
			sum += uint64(entry.Code.Size)
			continue
		}
		sum += entry.Weight * uint64(entry.Code.Size)
	}
	return sum
}

// Dump writes a programmer-readable debugging dump of the Encoder's current
// state to the given writer.  Symbols are listed in ascending order.
func (e Encoder) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("Encoder{\n")
	fmt.Fprintf(&buf, "\tPolicy() = %s\n", e.policy)
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", e.minSize)
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", e.maxSize)
	sorted := e.Entries()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Symbol < sorted[j].Symbol })
	for _, entry := range sorted {
		fmt.Fprintf(&buf, "\tEncode(%d) = %s\n", entry.Symbol, entry.Code)
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}

// Print writes one line per leaf, in tree traversal order: the symbol as a
// printable character or an octal escape, its weight, and its code with the
// first step first.
func (e Encoder) Print(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for _, entry := range e.entries {
		fmt.Fprintf(&buf, "%s:\t%d --> %s\n", entry.Symbol, entry.Weight, entry.Code.Digits())
	}
	return buf.WriteTo(w)
}
