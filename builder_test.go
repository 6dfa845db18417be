package huffpack

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

var policies = []HeapPolicy{StandardHeap, ReferenceHeap}

type expectEntry struct {
	sym    Symbol
	weight uint64
	code   string
}

func requireEntries(t *testing.T, expect []expectEntry, actual []Entry) {
	t.Helper()
	require.Len(t, actual, len(expect))
	for i, want := range expect {
		got := actual[i]
		require.Equal(t, want.sym, got.Symbol, "entry %d", i)
		require.Equal(t, want.weight, got.Weight, "entry %d", i)
		require.Equal(t, want.code, got.Code.Digits(), "entry %d", i)
	}
}

func TestBuild_Scenarios(t *testing.T) {
	type testRow struct {
		name   string
		input  string
		policy HeapPolicy
		expect []expectEntry
	}

	testData := [...]testRow{
		{
			name:   "empty/standard",
			input:  "",
			policy: StandardHeap,
			expect: []expectEntry{{EOFSymbol, 0, ""}},
		},
		{
			name:   "empty/reference",
			input:  "",
			policy: ReferenceHeap,
			expect: []expectEntry{{EOFSymbol, 0, ""}},
		},
		{
			name:   "aaab/standard",
			input:  "aaab",
			policy: StandardHeap,
			expect: []expectEntry{{EOFSymbol, 0, "00"}, {'b', 1, "01"}, {'a', 3, "1"}},
		},
		{
			name:   "aaab/reference",
			input:  "aaab",
			policy: ReferenceHeap,
			expect: []expectEntry{{'b', 1, "0"}, {'a', 3, "10"}, {EOFSymbol, 0, "11"}},
		},
		{
			name:   "ab/standard",
			input:  "ab",
			policy: StandardHeap,
			expect: []expectEntry{{EOFSymbol, 0, "00"}, {'b', 1, "01"}, {'a', 1, "1"}},
		},
		{
			name:   "ab/reference",
			input:  "ab",
			policy: ReferenceHeap,
			expect: []expectEntry{{'b', 1, "0"}, {'a', 1, "10"}, {EOFSymbol, 0, "11"}},
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			tree := Build(CountBytes([]byte(row.input), nil), &Options{Policy: row.policy})
			require.NoError(t, tree.Validate())
			requireEntries(t, row.expect, GenerateCodes(tree))
		})
	}
}

func TestBuild_SingleLeaf(t *testing.T) {
	for _, policy := range policies {
		tree := Build(CountBytes(nil, nil), &Options{Policy: policy})
		require.Equal(t, 1, tree.Len())
		root := tree.Root()
		require.True(t, tree.IsLeaf(root))
		require.Equal(t, EOFSymbol, tree.Node(root).Symbol)
		require.Equal(t, uint16(0), tree.Path(root).Size)
	}
}

// testInputs returns a deterministic mix of inputs: tiny, skewed, uniform
// and covering the whole alphabet.
func testInputs() [][]byte {
	rng := rand.New(rand.NewSource(42))
	out := [][]byte{
		nil,
		[]byte("a"),
		[]byte("aaaa"),
		[]byte("aaab"),
		[]byte("ab"),
		[]byte("abracadabra"),
		[]byte("the quick brown fox jumps over the lazy dog\n"),
	}

	all := make([]byte, 0, 3*256)
	for i := 0; i < 3; i++ {
		for b := 0; b < 256; b++ {
			all = append(all, byte(b))
		}
	}
	out = append(out, all)

	for round := 0; round < 20; round++ {
		n := rng.Intn(5000)
		alphabet := 1 + rng.Intn(256)
		data := make([]byte, n)
		for i := range data {
			// Squaring skews the distribution towards low byte values.
			x := rng.Intn(alphabet)
			data[i] = byte(x * x / alphabet)
		}
		out = append(out, data)
	}

	fib := []byte{}
	a, b := 1, 1
	for sym := 0; sym < 16; sym++ {
		for i := 0; i < a; i++ {
			fib = append(fib, byte('A'+sym))
		}
		a, b = b, a+b
	}
	out = append(out, fib)
	return out
}

func TestBuild_Properties(t *testing.T) {
	for _, policy := range policies {
		for _, sentinel := range []uint64{0, 3} {
			for idx, input := range testInputs() {
				o := &Options{Policy: policy, SentinelWeight: sentinel}
				checkTreeProperties(t, o, idx, input)
			}
		}
	}
}

func checkTreeProperties(t *testing.T, o *Options, idx int, input []byte) {
	t.Helper()
	ft := CountBytes(input, o)
	tree := Build(ft, o)
	require.NoError(t, tree.Validate(), "policy %s input %d", o.Policy, idx)

	entries := GenerateCodes(tree)
	require.Len(t, entries, ft.Len())

	var sum uint64
	for _, entry := range entries {
		sum += entry.Weight
		want, found := ft.Weight(entry.Symbol)
		require.True(t, found)
		require.Equal(t, want, entry.Weight)

		id, found := tree.Leaf(entry.Symbol)
		require.True(t, found)
		require.Equal(t, tree.Path(id), entry.Code, "symbol %s", entry.Symbol)
	}
	require.Equal(t, uint64(len(input))+o.SentinelWeight, sum, "policy %s sentinel %d input %d", o.Policy, o.SentinelWeight, idx)
	require.Equal(t, sum, tree.Weight(tree.Root()))

	requirePrefixFree(t, entries)
	if o.Policy == StandardHeap {
		requireMonotonic(t, entries)
	}
}

func TestBuild_StandardIsOptimal(t *testing.T) {
	cost := func(entries []Entry) uint64 {
		var sum uint64
		for _, entry := range entries {
			sum += entry.Weight * uint64(entry.Code.Size)
		}
		return sum
	}
	for idx, input := range testInputs() {
		ft := CountBytes(input, nil)
		standard := GenerateCodes(Build(ft, &Options{Policy: StandardHeap}))
		reference := GenerateCodes(Build(ft, &Options{Policy: ReferenceHeap}))
		require.LessOrEqual(t, cost(standard), cost(reference), "input %d", idx)
	}
}

func TestBuild_ReferenceQuirk(t *testing.T) {
	// ReferenceHeap pops 'a' before the lighter sentinel, so the
	// heaviest symbol ends up with the longest code.
	entries := GenerateCodes(Build(CountBytes([]byte("aaab"), nil), &Options{Policy: ReferenceHeap}))
	sizes := make(map[Symbol]uint16, len(entries))
	for _, entry := range entries {
		sizes[entry.Symbol] = entry.Code.Size
	}
	require.Greater(t, sizes['a'], sizes['b'])
}

func requirePrefixFree(t *testing.T, entries []Entry) {
	t.Helper()
	if len(entries) == 1 {
		require.Equal(t, uint16(0), entries[0].Code.Size)
		return
	}
	for i, a := range entries {
		require.NotZero(t, a.Code.Size, "symbol %s", a.Symbol)
		for j, b := range entries {
			if i == j {
				continue
			}
			require.False(t, b.Code.HasPrefix(a.Code), "%s (%s) is a prefix of %s (%s)", a.Code, a.Symbol, b.Code, b.Symbol)
		}
	}
}

func requireMonotonic(t *testing.T, entries []Entry) {
	t.Helper()
	for _, a := range entries {
		for _, b := range entries {
			if a.Weight > b.Weight {
				require.LessOrEqual(t, a.Code.Size, b.Code.Size, "%s weighs %d, %s weighs %d", a.Symbol, a.Weight, b.Symbol, b.Weight)
			}
		}
	}
}
