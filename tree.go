package huffpack

import (
	"fmt"

	"github.com/chronos-tachyon/assert"
)

// NodeID addresses a Node inside its Tree.
type NodeID int32

// NoNode marks a missing child, parent or root.
const NoNode = NodeID(-1)

// Node is one vertex of a Huffman tree.
//
// A leaf has no children and carries a valid Symbol.  An internal node has
// exactly two children, carries InvalidSymbol, and weighs the sum of its
// children.  Parent is a back reference kept for traversal only; the Tree
// owns every node.
type Node struct {
	Symbol Symbol
	Weight uint64
	Left   NodeID
	Right  NodeID
	Parent NodeID
}

// IsLeaf returns true iff this node has no children.
func (n Node) IsLeaf() bool {
	return n.Left == NoNode && n.Right == NoNode
}

// Tree is an arena of Huffman tree nodes.  Leaves are added first, then
// merged pairwise by the builder until a single root remains.
type Tree struct {
	nodes  []Node
	leaves map[Symbol]NodeID
	root   NodeID
}

// NewTree returns an empty Tree with room for the given number of leaves.
func NewTree(numLeaves int) *Tree {
	if numLeaves < 1 {
		numLeaves = 1
	}
	return &Tree{
		nodes:  make([]Node, 0, 2*numLeaves-1),
		leaves: make(map[Symbol]NodeID, numLeaves),
		root:   NoNode,
	}
}

// AddLeaf creates the leaf for sym.  Each symbol may have only one leaf.
func (t *Tree) AddLeaf(sym Symbol, weight uint64) NodeID {
	assert.Assertf(sym.IsValid(), "symbol %d out of range", int(sym))
	_, dupe := t.leaves[sym]
	assert.Assertf(!dupe, "symbol %d already has a leaf", int(sym))

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Symbol: sym,
		Weight: weight,
		Left:   NoNode,
		Right:  NoNode,
		Parent: NoNode,
	})
	t.leaves[sym] = id
	return id
}

// Merge creates an internal node owning left and right, which must be two
// distinct nodes that have no owner yet.
func (t *Tree) Merge(left, right NodeID) NodeID {
	assert.Assertf(left != right, "cannot merge node %d with itself", left)
	t.assertOrphan(left)
	t.assertOrphan(right)

	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		Symbol: InvalidSymbol,
		Weight: t.nodes[left].Weight + t.nodes[right].Weight,
		Left:   left,
		Right:  right,
		Parent: NoNode,
	})
	t.nodes[left].Parent = id
	t.nodes[right].Parent = id
	return id
}

func (t *Tree) assertOrphan(id NodeID) {
	assert.Assertf(t.has(id), "node %d does not exist", id)
	assert.Assertf(t.nodes[id].Parent == NoNode, "node %d is already owned by node %d", id, t.nodes[id].Parent)
	assert.Assertf(id != t.root, "node %d is the root", id)
}

func (t *Tree) has(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// SetRoot marks id as the entry point of the tree.
func (t *Tree) SetRoot(id NodeID) {
	assert.Assertf(t.has(id), "node %d does not exist", id)
	assert.Assertf(t.nodes[id].Parent == NoNode, "node %d has a parent", id)
	t.root = id
}

// Root returns the root node, or NoNode if none was set.
func (t *Tree) Root() NodeID {
	return t.root
}

// Node returns a copy of the node with the given id.
func (t *Tree) Node(id NodeID) Node {
	assert.Assertf(t.has(id), "node %d does not exist", id)
	return t.nodes[id]
}

// Weight returns the weight of the node with the given id.
func (t *Tree) Weight(id NodeID) uint64 {
	return t.nodes[id].Weight
}

// IsLeaf returns true iff the node with the given id has no children.
func (t *Tree) IsLeaf(id NodeID) bool {
	return t.Node(id).IsLeaf()
}

// Leaf returns the leaf holding sym, if any.
func (t *Tree) Leaf(sym Symbol) (NodeID, bool) {
	id, found := t.leaves[sym]
	return id, found
}

// Len returns the total number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// NumLeaves returns the number of leaves.
func (t *Tree) NumLeaves() int {
	return len(t.leaves)
}

// Path returns the code of the given node by climbing parent links up to
// the root.
func (t *Tree) Path(id NodeID) Code {
	var steps []uint
	for n := t.Node(id); n.Parent != NoNode; n = t.nodes[n.Parent] {
		parent := t.nodes[n.Parent]
		if parent.Right == id {
			steps = append(steps, 1)
		} else {
			steps = append(steps, 0)
		}
		id = n.Parent
	}
	var hc Code
	for i := len(steps) - 1; i >= 0; i-- {
		hc = hc.Append(steps[i])
	}
	return hc
}

// Reset discards every node.
func (t *Tree) Reset() {
	for i := range t.nodes {
		t.nodes[i] = Node{}
	}
	t.nodes = t.nodes[:0]
	for sym := range t.leaves {
		delete(t.leaves, sym)
	}
	t.root = NoNode
}

// Validate checks the structural invariants of a finished tree and returns
// an error describing the first violation found.
func (t *Tree) Validate() error {
	if t.root == NoNode {
		if len(t.nodes) == 0 {
			return nil
		}
		return fmt.Errorf("tree has %d nodes but no root", len(t.nodes))
	}
	if t.nodes[t.root].Parent != NoNode {
		return fmt.Errorf("root %d has parent %d", t.root, t.nodes[t.root].Parent)
	}

	seen := make([]bool, len(t.nodes))
	stack := []NodeID{t.root}
	for len(stack) != 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			return fmt.Errorf("node %d is reachable twice", id)
		}
		seen[id] = true

		n := t.nodes[id]
		switch {
		case n.IsLeaf():
			if !n.Symbol.IsValid() {
				return fmt.Errorf("leaf %d has invalid symbol %d", id, int(n.Symbol))
			}
			if leaf, found := t.leaves[n.Symbol]; !found || leaf != id {
				return fmt.Errorf("leaf %d for symbol %d is not registered", id, int(n.Symbol))
			}
		case n.Left == NoNode || n.Right == NoNode:
			return fmt.Errorf("internal node %d has only one child", id)
		default:
			l, r := t.nodes[n.Left], t.nodes[n.Right]
			if n.Weight != l.Weight+r.Weight {
				return fmt.Errorf("internal node %d weighs %d, children weigh %d + %d", id, n.Weight, l.Weight, r.Weight)
			}
			if l.Parent != id || r.Parent != id {
				return fmt.Errorf("children of node %d point to parents %d and %d", id, l.Parent, r.Parent)
			}
			stack = append(stack, n.Right, n.Left)
		}
	}

	for id, ok := range seen {
		if !ok {
			return fmt.Errorf("node %d is not reachable from root %d", id, t.root)
		}
	}
	if len(t.leaves) > NumSymbols {
		return fmt.Errorf("tree has %d leaves, max %d", len(t.leaves), NumSymbols)
	}
	return nil
}
