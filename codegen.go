package huffpack

// Entry is what the packer needs to know about one symbol: its weight and
// its code.
type Entry struct {
	Symbol Symbol
	Weight uint64
	Code   Code
}

// GenerateCodes walks the tree depth-first from the root, left subtree
// before right subtree, and returns one Entry per leaf in the order the
// leaves are reached.  The only leaf of a single-node tree gets the empty
// code.
func GenerateCodes(t *Tree) []Entry {
	root := t.Root()
	if root == NoNode {
		return nil
	}
	out := make([]Entry, 0, t.NumLeaves())
	return walkCodes(t, root, Code{}, out)
}

func walkCodes(t *Tree, id NodeID, path Code, out []Entry) []Entry {
	n := t.Node(id)
	if n.Left != NoNode {
		out = walkCodes(t, n.Left, path.Append(0), out)
	}
	if n.Right != NoNode {
		out = walkCodes(t, n.Right, path.Append(1), out)
	}
	if n.IsLeaf() {
		out = append(out, Entry{Symbol: n.Symbol, Weight: n.Weight, Code: path})
	}
	return out
}
