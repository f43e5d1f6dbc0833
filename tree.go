package huff

import (
	"container/heap"
	"fmt"
	"io"
	"strings"
)

// Node is a node of a Huffman tree. It is either a *Leaf or an *Internal.
type Node interface {
	// Weight returns the number of input symbols under the node. Trees read
	// back from a container carry zero weights.
	Weight() uint64
	node()
}

// Leaf is a tree node holding one symbol.
type Leaf struct {
	Symbol byte
	Count  uint64
}

// Internal is a tree node with two children. Right is nil only for the root
// of a single-symbol tree.
type Internal struct {
	Count       uint64
	Left, Right Node
}

func (l *Leaf) Weight() uint64     { return l.Count }
func (n *Internal) Weight() uint64 { return n.Count }

func (*Leaf) node()     {}
func (*Internal) node() {}

// queued is a heap entry. seq orders entries of equal weight by the time
// they were pushed.
type queued struct {
	n   Node
	seq int
}

type nodeHeap []queued

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	wi, wj := h[i].n.Weight(), h[j].n.Weight()
	if wi != wj {
		return wi < wj
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(queued))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// BuildTree builds the Huffman tree for f, or returns nil when f is empty.
//
// Leaves enter the queue in ascending symbol order. The two lightest nodes
// are merged repeatedly, the first one popped becoming the left child; nodes
// of equal weight leave the queue in the order they entered it, so the same
// table always yields the same tree.
func BuildTree(f *Frequencies) Node {
	h := make(nodeHeap, 0, 256)
	seq := 0
	for sym, c := range f {
		if c == 0 {
			continue
		}
		h = append(h, queued{n: &Leaf{Symbol: byte(sym), Count: c}, seq: seq})
		seq++
	}

	switch len(h) {
	case 0:
		return nil
	case 1:
		leaf := h[0].n
		return &Internal{Count: leaf.Weight(), Left: leaf}
	}

	heap.Init(&h)
	for h.Len() > 1 {
		a := heap.Pop(&h).(queued)
		b := heap.Pop(&h).(queued)
		merged := &Internal{
			Count: a.n.Weight() + b.n.Weight(),
			Left:  a.n,
			Right: b.n,
		}
		heap.Push(&h, queued{n: merged, seq: seq})
		seq++
	}
	return h[0].n
}

// Leaves returns the number of leaves under n.
func Leaves(n Node) int {
	switch n := n.(type) {
	case nil:
		return 0
	case *Leaf:
		return 1
	case *Internal:
		return Leaves(n.Left) + Leaves(n.Right)
	default:
		panic(fmt.Sprintf("huff: unknown node type %T", n))
	}
}

// Depth returns the length of the longest root-to-leaf path under n.
func Depth(n Node) int {
	switch n := n.(type) {
	case nil, *Leaf:
		return 0
	case *Internal:
		return 1 + max(Depth(n.Left), Depth(n.Right))
	default:
		panic(fmt.Sprintf("huff: unknown node type %T", n))
	}
}

// FormatTree writes an indented rendering of the tree to w, one node per
// line, with the branch bit leading each child.
func FormatTree(w io.Writer, root Node) error {
	var sb strings.Builder
	formatNode(&sb, root, "", "")
	_, err := io.WriteString(w, sb.String())
	return err
}

func formatNode(sb *strings.Builder, n Node, indent, edge string) {
	switch n := n.(type) {
	case nil:
		return
	case *Leaf:
		fmt.Fprintf(sb, "%s%s%s (%d)\n", indent, edge, symbolName(n.Symbol), n.Count)
	case *Internal:
		fmt.Fprintf(sb, "%s%s* (%d)\n", indent, edge, n.Count)
		if edge != "" {
			indent += "  "
		}
		formatNode(sb, n.Left, indent, "0 ")
		formatNode(sb, n.Right, indent, "1 ")
	}
}

// symbolName renders printable ASCII as a quoted character and anything else
// as hex.
func symbolName(b byte) string {
	if b >= 0x21 && b < 0x7f {
		return fmt.Sprintf("'%c'", b)
	}
	return fmt.Sprintf("0x%02x", b)
}
