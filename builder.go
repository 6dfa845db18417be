package huffpack

import (
	"github.com/chronos-tachyon/assert"
)

// Build constructs the Huffman tree for the given frequency table.
//
// One leaf is created per table entry, in ascending symbol order, and
// queued as soon as it is created.  Then the two nodes at the front of the
// queue are repeatedly merged (first one on the left, second one on the
// right) and the merge is queued again, until only the root is left.  A
// table holding only the sentinel yields a single-leaf tree.
//
func Build(ft *FrequencyTable, o *Options) *Tree {
	o = checkOptions(o)
	assert.Assertf(ft.Len() > 0, "frequency table is empty")
	assert.Assertf(ft.Len() <= NumSymbols, "frequency table has %d entries, max %d", ft.Len(), NumSymbols)

	symbols := ft.Symbols()
	t := NewTree(len(symbols))
	q := NewQueue(t, o.Policy)
	for _, sym := range symbols {
		weight, _ := ft.Weight(sym)
		q.Insert(t.AddLeaf(sym, weight))
	}

	for q.Len() > 1 {
		left := q.ExtractMin()
		right := q.ExtractMin()
		q.Insert(t.Merge(left, right))
	}

	t.SetRoot(q.ExtractMin())
	return t
}
