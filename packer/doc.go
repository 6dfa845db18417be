// Package packer writes and reads the compressed stream for a huffpack
// Encoder.
//
// Stream layout, most significant bit first:
//
//     "HPK1"                       magic, 4 bytes
//     policy                       1 byte, huffpack.HeapPolicy
//     count                        16 bits, number of leaves
//     count × (symbol, weight)     16 bits + uvarint, ascending symbol
//     code bits                    one code per input byte
//     sentinel code bits
//     zero padding to a byte boundary
//
// The header carries the whole frequency table, so the reader rebuilds the
// exact same tree with the same policy and needs no code lengths.
//
package packer
