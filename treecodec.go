package huff

import "fmt"

// maxTreeBits is the size of the largest tree over a byte alphabet:
// 256 leaves of 9 bits and 255 internal tags.
const maxTreeBits = 256*9 + 255

// SerializedTreeBits returns the number of bits WriteTree emits for n.
func SerializedTreeBits(n Node) int {
	switch n := n.(type) {
	case nil:
		return 0
	case *Leaf:
		return 9
	case *Internal:
		return 1 + SerializedTreeBits(n.Left) + SerializedTreeBits(n.Right)
	default:
		panic(fmt.Sprintf("huff: unknown node type %T", n))
	}
}

// WriteTree writes the pre-order encoding of the tree rooted at n.
func WriteTree(bw *BitWriter, n Node) error {
	writeNode(bw, n)
	return bw.Err()
}

func writeNode(bw *BitWriter, n Node) {
	switch n := n.(type) {
	case nil:
		return
	case *Leaf:
		bw.WriteBit(true)
		_ = bw.WriteByte(n.Symbol)
	case *Internal:
		bw.WriteBit(false)
		writeNode(bw, n.Left)
		writeNode(bw, n.Right)
	default:
		panic(fmt.Sprintf("huff: unknown node type %T", n))
	}
}

// ReadTree rebuilds a tree from its pre-order encoding. The reader must
// hold exactly the tree's bits: running out early or having bits left over
// are both ErrMalformedTree.
func ReadTree(br *BitReader) (Node, error) {
	tr := treeReader{br: br}
	root, err := tr.readNode(true)
	if err != nil {
		return nil, err
	}
	if _, ok := root.(*Leaf); ok {
		return nil, malformedTree("root is a leaf")
	}
	if left := br.Remaining(); left != 0 {
		return nil, malformedTree("%d trailing bits after root", left)
	}
	return root, nil
}

type treeReader struct {
	br   *BitReader
	seen [256]bool
}

func (tr *treeReader) readNode(root bool) (Node, error) {
	tag, err := tr.br.ReadBit()
	if err != nil {
		return nil, malformedTree("missing node tag")
	}

	if tag {
		sym, err := tr.br.ReadByte()
		if err != nil {
			return nil, malformedTree("leaf without a full symbol")
		}
		if tr.seen[sym] {
			return nil, malformedTree("symbol %s appears twice", symbolName(sym))
		}
		tr.seen[sym] = true
		return &Leaf{Symbol: sym}, nil
	}

	left, err := tr.readNode(false)
	if err != nil {
		return nil, err
	}
	// A root holding a single leaf is how one-symbol input is stored.
	if _, ok := left.(*Leaf); ok && root && tr.br.Remaining() == 0 {
		return &Internal{Left: left}, nil
	}
	right, err := tr.readNode(false)
	if err != nil {
		return nil, err
	}
	return &Internal{Left: left, Right: right}, nil
}
