// Package huffpack builds a Huffman code for the byte alphabet of a single
// input and hands the resulting (symbol, weight, code) entries to a packer.
//
// The alphabet has NumSymbols symbols: the 256 byte values plus EOFSymbol,
// a sentinel leaf that is always present and marks the end of the packed
// stream.
//
// The pipeline is strictly linear:
//
//     bytes → FrequencyTable → Queue of leaves → Build → GenerateCodes
//
// Encoder runs the whole pipeline; Decoder turns the entries back into a
// prefix table.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffpack
