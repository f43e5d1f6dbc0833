package huff

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// BitString is a packed bit string. Within each byte, bits are addressed
// most significant first.
//
// Invariants:
//   - 0 <= BitLength <= len(Packed)*8
//   - bits past BitLength in the last byte are zero
type BitString struct {
	Packed    []byte
	BitLength int
}

// Bit returns bit i of bs.
func (bs BitString) Bit(i int) bool {
	return bs.Packed[i/8]&(0x80>>uint(i%8)) != 0
}

// HasPrefix reports whether p is a prefix of bs.
func (bs BitString) HasPrefix(p BitString) bool {
	if p.BitLength > bs.BitLength {
		return false
	}
	for i := 0; i < p.BitLength; i++ {
		if bs.Bit(i) != p.Bit(i) {
			return false
		}
	}
	return true
}

func (bs BitString) String() string {
	out := make([]byte, bs.BitLength)
	for i := range out {
		if bs.Bit(i) {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out)
}

// packPath packs a path of 0/1 values into a BitString.
func packPath(path []byte) BitString {
	packed := make([]byte, (len(path)+7)/8)
	for i, b := range path {
		if b != 0 {
			packed[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return BitString{Packed: packed, BitLength: len(path)}
}

// CodeTable maps every symbol to its code. An entry with zero BitLength
// means the symbol does not occur.
type CodeTable [256]BitString

// GenerateCodes walks the tree depth first, appending 0 for a left branch
// and 1 for a right branch, and records the path to every leaf. A nil root
// yields an empty table.
func GenerateCodes(root Node) *CodeTable {
	t := new(CodeTable)
	path := make([]byte, 0, 64)
	t.walk(root, path)
	return t
}

func (t *CodeTable) walk(n Node, path []byte) {
	switch n := n.(type) {
	case nil:
		return
	case *Leaf:
		t[n.Symbol] = packPath(path)
	case *Internal:
		t.walk(n.Left, append(path, 0))
		t.walk(n.Right, append(path, 1))
	default:
		panic(fmt.Sprintf("huff: unknown node type %T", n))
	}
}

// Len returns the number of symbols that have a code.
func (t *CodeTable) Len() int {
	n := 0
	for _, c := range t {
		if c.BitLength > 0 {
			n++
		}
	}
	return n
}

// Lookup returns the code of sym and whether it has one.
func (t *CodeTable) Lookup(sym byte) (BitString, bool) {
	c := t[sym]
	return c, c.BitLength > 0
}

// MaxLen returns the length of the longest code.
func (t *CodeTable) MaxLen() int {
	m := 0
	for _, c := range t {
		m = max(m, c.BitLength)
	}
	return m
}

// PrefixFree reports whether no code in t is a prefix of another.
func (t *CodeTable) PrefixFree() bool {
	for i, a := range t {
		if a.BitLength == 0 {
			continue
		}
		for j, b := range t {
			if i == j || b.BitLength == 0 {
				continue
			}
			if b.HasPrefix(a) {
				return false
			}
		}
	}
	return true
}

// EncodedBits returns the number of payload bits needed to encode input
// with frequencies f.
func (t *CodeTable) EncodedBits(f *Frequencies) uint64 {
	var bits uint64
	for sym, c := range f {
		bits += c * uint64(t[sym].BitLength)
	}
	return bits
}

// WriteTo writes the table as aligned columns, one coded symbol per row.
func (t *CodeTable) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "symbol\tbits\tcode")
	for sym, c := range t {
		if c.BitLength == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\n", symbolName(byte(sym)), c.BitLength, c)
	}
	err := tw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
