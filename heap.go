package huffpack

import (
	"github.com/chronos-tachyon/assert"
)

// Queue is an array-backed binary min-heap of tree nodes, ordered by node
// weight.  It never holds more than NumSymbols nodes: the builder starts
// with at most one leaf per symbol, and each merge replaces two queued
// nodes with one.
type Queue struct {
	tree   *Tree
	list   []NodeID
	policy HeapPolicy
}

// NewQueue returns an empty Queue over the nodes of tree.
func NewQueue(tree *Tree, policy HeapPolicy) *Queue {
	assert.Assertf(policy.IsValid(), "unknown heap policy %d", uint8(policy))
	return &Queue{
		tree:   tree,
		list:   make([]NodeID, 0, tree.NumLeaves()),
		policy: policy,
	}
}

// Len returns the number of queued nodes.
func (q *Queue) Len() int {
	return len(q.list)
}

// Insert adds a node to the queue.
func (q *Queue) Insert(id NodeID) {
	assert.Assertf(len(q.list) < NumSymbols, "queue already holds %d nodes", len(q.list))
	q.list = append(q.list, id)
	q.siftUp(len(q.list) - 1)
}

// ExtractMin removes and returns the node in slot 0.  Calling it on an
// empty queue is a programming error.
//
// Under StandardHeap, slot 0 is always a lightest node.  Under
// ReferenceHeap it usually is, but not always.
//
func (q *Queue) ExtractMin() NodeID {
	n := len(q.list)
	assert.Assertf(n != 0, "ExtractMin called on an empty queue")

	top := q.list[0]
	last := n - 1
	q.list[0] = q.list[last]
	q.list[last] = NoNode
	q.list = q.list[:last]
	q.siftDown(0)
	return top
}

func (q *Queue) weight(i int) uint64 {
	return q.tree.Weight(q.list[i])
}

func (q *Queue) swap(i, j int) {
	q.list[i], q.list[j] = q.list[j], q.list[i]
}

func (q *Queue) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if q.weight(i) > q.weight(parent) {
			return
		}
		// ReferenceHeap gives up as soon as the parent is the root, so an
		// insert never displaces slot 0.
		if q.policy == ReferenceHeap && parent == 0 {
			return
		}
		q.swap(i, parent)
		i = parent
	}
}

func (q *Queue) siftDown(i int) {
	if q.policy == ReferenceHeap {
		q.siftDownReference(i)
		return
	}

	n := len(q.list)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		child := left
		if right := left + 1; right < n && !(q.weight(left) < q.weight(right)) {
			child = right
		}
		if q.weight(i) <= q.weight(child) {
			return
		}
		q.swap(i, child)
		i = child
	}
}

// siftDownReference always swaps the moved node with one of its children
// until it reaches the bottom.  A missing right child compares as the moved
// node itself, as if the slot just past the end still held it; "swapping"
// with it changes nothing.
func (q *Queue) siftDownReference(i int) {
	n := len(q.list)
	for {
		left := 2*i + 1
		if left >= n {
			return
		}
		right := left + 1
		rightWeight := q.weight(i)
		if right < n {
			rightWeight = q.weight(right)
		}
		if q.weight(left) < rightWeight {
			q.swap(i, left)
			i = left
			continue
		}
		if right >= n {
			return
		}
		q.swap(i, right)
		i = right
	}
}
