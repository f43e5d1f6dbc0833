// Package huff is a static, two-pass Huffman codec for arbitrary byte streams.
//
// A symbol is one byte, so any file compresses, text or binary. Compression
// counts the bytes, builds a prefix tree with a deterministic greedy merge
// (equal weights leave the queue in the order they entered it), derives a
// code per byte and packs the codes msb-first into bytes. The tree travels
// with the data in pre-order form, so a container needs nothing else to be
// decoded.
//
// Container layout, version 1 (all integers big-endian):
//
//	magic      4 bytes   "HUF1"
//	padding    1 byte    zero bits appended to the last payload byte (0..7)
//	length     uvarint   number of symbols in the original input
//	tree bits  uint16    bit length of the serialized tree, 0 for empty input
//	tree       ceil(tree bits / 8) bytes, zero padded
//	payload    remaining bytes
//
// The tree section is a pre-order walk: a leaf writes 1 followed by its 8
// symbol bits, an internal node writes 0 followed by its left and right
// subtrees. Input with a single distinct byte is stored as an internal root
// holding one leaf, written as 0 followed by the leaf and nothing else.
package huff
