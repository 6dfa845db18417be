package huffpack

import (
	"fmt"
	"strings"
)

// HeapPolicy selects the ordering rules the Queue follows while the tree
// is being built.  Different policies can produce different (but equally
// valid) trees for the same frequencies.
type HeapPolicy uint8

const (
	// StandardHeap is a textbook binary min-heap and the default.  It
	// differs from ReferenceHeap in both directions: sift-up may displace
	// the root, and sift-down stops once the moved element is in place.
	// Slot 0 is therefore always a lightest node and the tree is optimal.
	StandardHeap HeapPolicy = iota

	// ReferenceHeap produces the same codes as the classic 257-leaf
	// packer.  Its sift-up never displaces the root and its sift-down
	// always descends to a leaf position, so the extracted node is not
	// always the lightest one and the tree is not always optimal.
	ReferenceHeap

	numHeapPolicies
)

var heapPolicyNames = [...]string{
	StandardHeap:  "standard",
	ReferenceHeap: "reference",
}

// IsValid returns true iff p is a known policy.
func (p HeapPolicy) IsValid() bool {
	return p < numHeapPolicies
}

// String returns the policy name accepted by ParseHeapPolicy.
func (p HeapPolicy) String() string {
	if p.IsValid() {
		return heapPolicyNames[p]
	}
	return fmt.Sprintf("HeapPolicy(%d)", uint8(p))
}

// ParseHeapPolicy is the inverse of HeapPolicy.String.
func ParseHeapPolicy(str string) (HeapPolicy, error) {
	for p, name := range heapPolicyNames {
		if strings.EqualFold(str, name) {
			return HeapPolicy(p), nil
		}
	}
	return 0, fmt.Errorf("unknown heap policy %q", str)
}

// Options configures table construction.
type Options struct {
	// Policy selects the Queue ordering rules.  Defaults to StandardHeap.
	Policy HeapPolicy

	// SentinelWeight is the fixed initial weight of the EOFSymbol leaf.
	// Scanning never changes it.  Defaults to 0.
	SentinelWeight uint64
}

var defaultOptions = Options{}

func checkOptions(o *Options) *Options {
	if o == nil {
		return &defaultOptions
	}
	return o
}
