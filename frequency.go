package huffpack

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/chronos-tachyon/assert"
)

// FrequencyTable maps each Symbol seen in the input to its number of
// occurrences.  The EOFSymbol entry always exists and keeps the fixed weight
// it was created with.
type FrequencyTable struct {
	weights   map[Symbol]uint64
	inputSize uint64
}

// NewFrequencyTable returns a table holding only the sentinel, with the
// given weight.
func NewFrequencyTable(sentinelWeight uint64) *FrequencyTable {
	ft := &FrequencyTable{weights: make(map[Symbol]uint64, NumSymbols)}
	ft.weights[EOFSymbol] = sentinelWeight
	return ft
}

// CountBytes scans p and returns its frequency table.
func CountBytes(p []byte, o *Options) *FrequencyTable {
	o = checkOptions(o)
	ft := NewFrequencyTable(o.SentinelWeight)
	ft.Count(p)
	return ft
}

// ReadFile reads the whole file at path and returns its contents together
// with their frequency table.
func ReadFile(path string, o *Options) ([]byte, *FrequencyTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input %q: %w", path, err)
	}
	return data, CountBytes(data, o), nil
}

// Count adds every byte of p to the table.
func (ft *FrequencyTable) Count(p []byte) {
	for _, b := range p {
		ft.weights[Symbol(b)]++
	}
	ft.inputSize += uint64(len(p))
}

// Write implements io.Writer by counting p.  It never fails.
func (ft *FrequencyTable) Write(p []byte) (int, error) {
	ft.Count(p)
	return len(p), nil
}

var _ io.Writer = (*FrequencyTable)(nil)

// SetWeight overwrites the weight of sym, creating its entry if needed.
// It is used to rebuild a table that was transmitted rather than scanned.
func (ft *FrequencyTable) SetWeight(sym Symbol, weight uint64) {
	assert.Assertf(sym.IsValid(), "symbol %d out of range", int(sym))
	if sym != EOFSymbol {
		ft.inputSize -= ft.weights[sym]
		ft.inputSize += weight
	}
	ft.weights[sym] = weight
}

// Weight returns the weight of sym, and whether sym has an entry at all.
func (ft *FrequencyTable) Weight(sym Symbol) (uint64, bool) {
	weight, found := ft.weights[sym]
	return weight, found
}

// Len returns the number of entries, sentinel included.
func (ft *FrequencyTable) Len() int {
	return len(ft.weights)
}

// Symbols returns every symbol with an entry, in ascending order.  The
// sentinel is therefore always last.
func (ft *FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(ft.weights))
	for sym := range ft.weights {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Total returns the sum of all weights, sentinel included.
func (ft *FrequencyTable) Total() uint64 {
	var sum uint64
	for _, weight := range ft.weights {
		sum += weight
	}
	return sum
}

// InputSize returns the number of input bytes counted.
func (ft *FrequencyTable) InputSize() uint64 {
	return ft.inputSize
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer.
func (ft *FrequencyTable) Dump(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteString("FrequencyTable{\n")
	for _, sym := range ft.Symbols() {
		fmt.Fprintf(&buf, "\tWeight(%d) = %d\n", sym, ft.weights[sym])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
