package huffpack

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountBytes_Empty(t *testing.T) {
	ft := CountBytes(nil, nil)
	require.Equal(t, 1, ft.Len())
	require.Equal(t, []Symbol{EOFSymbol}, ft.Symbols())
	weight, found := ft.Weight(EOFSymbol)
	require.True(t, found)
	require.Equal(t, uint64(0), weight)
	require.Equal(t, uint64(0), ft.Total())
	require.Equal(t, uint64(0), ft.InputSize())
}

func TestCountBytes(t *testing.T) {
	ft := CountBytes([]byte("aaab"), nil)
	require.Equal(t, []Symbol{'a', 'b', EOFSymbol}, ft.Symbols())

	weight, found := ft.Weight('a')
	require.True(t, found)
	require.Equal(t, uint64(3), weight)

	weight, found = ft.Weight('b')
	require.True(t, found)
	require.Equal(t, uint64(1), weight)

	_, found = ft.Weight('c')
	require.False(t, found)

	require.Equal(t, uint64(4), ft.Total())
	require.Equal(t, uint64(4), ft.InputSize())
}

func TestCountBytes_SentinelWeight(t *testing.T) {
	ft := CountBytes([]byte{0, 0xff, 0xff}, &Options{SentinelWeight: 5})
	weight, _ := ft.Weight(EOFSymbol)
	require.Equal(t, uint64(5), weight)
	require.Equal(t, uint64(8), ft.Total())
	require.Equal(t, uint64(3), ft.InputSize())
	require.Equal(t, []Symbol{0, 0xff, EOFSymbol}, ft.Symbols())
}

func TestFrequencyTable_Write(t *testing.T) {
	ft := NewFrequencyTable(0)
	n, err := io.Copy(ft, strings.NewReader("mississippi"))
	require.NoError(t, err)
	require.Equal(t, int64(11), n)

	expect := map[Symbol]uint64{'m': 1, 'i': 4, 's': 4, 'p': 2, EOFSymbol: 0}
	for sym, want := range expect {
		got, found := ft.Weight(sym)
		require.True(t, found, "symbol %s", sym)
		require.Equal(t, want, got, "symbol %s", sym)
	}
	require.Equal(t, len(expect), ft.Len())
}

func TestFrequencyTable_SetWeight(t *testing.T) {
	ft := CountBytes([]byte("aab"), nil)
	ft.SetWeight('a', 10)
	ft.SetWeight('z', 1)
	ft.SetWeight(EOFSymbol, 2)
	require.Equal(t, uint64(12), ft.InputSize())
	require.Equal(t, uint64(14), ft.Total())
	require.Panics(t, func() { ft.SetWeight(NumSymbols, 1) })
}

func TestFrequencyTable_Dump(t *testing.T) {
	ft := CountBytes([]byte("aab"), nil)
	var buf strings.Builder
	_, err := ft.Dump(&buf)
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"FrequencyTable{\n",
		"\tWeight(97) = 2\n",
		"\tWeight(98) = 1\n",
		"\tWeight(256) = 0\n",
		"}\n",
	}, ""), buf.String())
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("abcabc"), 0o666))

	data, ft, err := ReadFile(path, nil)
	require.NoError(t, err)
	require.Equal(t, []byte("abcabc"), data)
	require.Equal(t, 4, ft.Len())
	require.Equal(t, uint64(6), ft.InputSize())

	_, _, err = ReadFile(filepath.Join(dir, "missing"), nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}
