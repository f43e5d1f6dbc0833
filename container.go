package huff

import (
	"bytes"
	"encoding/binary"
	"io"
)

const magic = "HUF1"

// maxHeaderLen is the size of the largest header: magic, padding, length
// and tree bits.
const maxHeaderLen = len(magic) + 1 + binary.MaxVarintLen64 + 2

// Container is the parsed form of a compressed blob.
type Container struct {
	// Padding is the number of zero bits appended to the last payload byte.
	Padding uint8
	// Length is the number of symbols in the original input.
	Length uint64
	// TreeBits is the bit length of the serialized tree in Tree.
	TreeBits uint16
	Tree     []byte
	Payload  []byte
}

// Empty reports whether c is the container of an empty input.
func (c *Container) Empty() bool {
	return c.TreeBits == 0 && c.Length == 0 && c.Padding == 0 && len(c.Payload) == 0
}

// PayloadBits returns the number of meaningful payload bits.
func (c *Container) PayloadBits() uint64 {
	total := uint64(len(c.Payload)) * 8
	if uint64(c.Padding) > total {
		return 0
	}
	return total - uint64(c.Padding)
}

// HeaderLen returns the encoded size of the header fields.
func (c *Container) HeaderLen() int {
	var tmp [binary.MaxVarintLen64]byte
	return len(magic) + 1 + binary.PutUvarint(tmp[:], c.Length) + 2
}

// Size returns the size of the marshaled container.
func (c *Container) Size() int {
	return c.HeaderLen() + len(c.Tree) + len(c.Payload)
}

// MarshalBinary encodes c in the version 1 layout.
func (c *Container) MarshalBinary() ([]byte, error) {
	var b bytes.Buffer
	b.Grow(c.Size())
	if err := writeHeader(&b, c.Padding, c.Length, c.TreeBits); err != nil {
		return nil, err
	}
	b.Write(c.Tree)
	b.Write(c.Payload)
	return b.Bytes(), nil
}

// UnmarshalBinary parses data into c. The tree and payload are copied.
func (c *Container) UnmarshalBinary(data []byte) error {
	parsed, err := ParseContainer(data)
	if err != nil {
		return err
	}
	*c = *parsed
	c.Tree = bytes.Clone(parsed.Tree)
	c.Payload = bytes.Clone(parsed.Payload)
	return nil
}

// ParseContainer splits data into header fields, tree section and payload.
// The returned sections alias data. Only the framing is checked here; the
// tree and payload are validated while decoding.
func ParseContainer(data []byte) (*Container, error) {
	if len(data) < len(magic) || string(data[:len(magic)]) != magic {
		return nil, ErrInvalidMagic
	}
	r := bytes.NewReader(data[len(magic):])

	var c Container
	var err error
	if c.Padding, err = r.ReadByte(); err != nil {
		return nil, malformedTree("header truncated before padding")
	}
	if c.Length, err = binary.ReadUvarint(r); err != nil {
		return nil, malformedTree("header truncated in length: %v", err)
	}
	if err = binary.Read(r, binary.BigEndian, &c.TreeBits); err != nil {
		return nil, malformedTree("header truncated in tree size")
	}
	if c.TreeBits > maxTreeBits {
		return nil, malformedTree("tree of %d bits exceeds %d", c.TreeBits, maxTreeBits)
	}

	rest := data[len(data)-r.Len():]
	treeLen := (int(c.TreeBits) + 7) / 8
	if len(rest) < treeLen {
		return nil, malformedTree("tree section needs %d bytes, have %d", treeLen, len(rest))
	}
	c.Tree = rest[:treeLen:treeLen]
	c.Payload = rest[treeLen:]
	return &c, nil
}

func writeHeader(w io.Writer, padding uint8, length uint64, treeBits uint16) error {
	var hdr [maxHeaderLen]byte
	n := copy(hdr[:], magic)
	hdr[n] = padding
	n++
	n += binary.PutUvarint(hdr[n:], length)
	binary.BigEndian.PutUint16(hdr[n:], treeBits)
	n += 2
	_, err := w.Write(hdr[:n])
	return err
}
