package huff

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Compress encodes src into a self-describing container. Empty input yields
// a header-only container.
func Compress(src []byte) ([]byte, error) {
	return NewEncoder().Encode(src)
}

// Decompress recovers the bytes stored in a container produced by Compress.
// It fails with ErrMalformedTree or ErrCorruptPayload and never returns
// partial output.
func Decompress(data []byte) ([]byte, error) {
	return NewDecoder().Decode(data)
}

// -----------------------------------------------------------------------------
// Encoder
// -----------------------------------------------------------------------------

// Encoder compresses byte streams. It keeps its output buffer between calls
// and is not safe for concurrent use; use one Encoder per goroutine.
type Encoder struct {
	// Parallel shards the counting pass of large inputs across CPUs.
	Parallel bool
	// Log receives a debug entry per encoded input. Nil disables logging.
	Log logrus.FieldLogger

	out bytes.Buffer
}

func NewEncoder() *Encoder {
	return &Encoder{Parallel: true}
}

// Encode compresses src and returns the container.
func (e *Encoder) Encode(src []byte) ([]byte, error) {
	if uint64(len(src)) > MaxInputSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds %d", ErrUnsupportedInput, len(src), uint64(MaxInputSize))
	}

	var f *Frequencies
	if e.Parallel {
		f = CountFrequencies(src)
	} else {
		f = new(Frequencies)
		f.count(src)
	}

	p := newPlan(f)
	e.out.Reset()
	e.out.Grow(p.size())
	if err := p.writeTo(&e.out, bytes.NewReader(src)); err != nil {
		return nil, err
	}
	e.logPlan(p)
	return bytes.Clone(e.out.Bytes()), nil
}

// EncodeTo compresses everything r holds from its current offset and writes
// the container to w. r is read twice: once to count, once to encode.
func (e *Encoder) EncodeTo(w io.Writer, r io.ReadSeeker) error {
	start, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return err
	}

	f := new(Frequencies)
	n, err := f.CountFrom(r)
	if err != nil {
		return fmt.Errorf("huff: counting pass: %w", err)
	}
	if uint64(n) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrUnsupportedInput, n, uint64(MaxInputSize))
	}
	if _, err := r.Seek(start, io.SeekStart); err != nil {
		return err
	}

	p := newPlan(f)
	bw := bufio.NewWriter(w)
	if err := p.writeTo(bw, r); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	e.logPlan(p)
	return nil
}

func (e *Encoder) logPlan(p *encodePlan) {
	if e.Log == nil {
		return
	}
	e.Log.WithFields(logrus.Fields{
		"symbols":      p.length,
		"distinct":     p.freq.Distinct(),
		"tree_bits":    p.treeBits,
		"payload_bits": p.payloadBits,
		"padding":      p.padding,
	}).Debug("huff: encoded")
}

// encodePlan holds everything known after the counting pass. The payload
// size, and so the padding, follows from the frequencies and code lengths
// before a single code is written.
type encodePlan struct {
	freq        *Frequencies
	root        Node
	codes       *CodeTable
	length      uint64
	treeBits    int
	payloadBits uint64
	padding     uint8
}

func newPlan(f *Frequencies) *encodePlan {
	p := &encodePlan{freq: f, length: f.Total()}
	p.root = BuildTree(f)
	if p.root == nil {
		return p
	}
	p.codes = GenerateCodes(p.root)
	p.treeBits = SerializedTreeBits(p.root)
	p.payloadBits = p.codes.EncodedBits(f)
	p.padding = uint8((8 - p.payloadBits%8) % 8)
	return p
}

func (p *encodePlan) size() int {
	return maxHeaderLen + (p.treeBits+7)/8 + int((p.payloadBits+7)/8)
}

func (p *encodePlan) writeTo(w io.Writer, src io.Reader) error {
	if err := writeHeader(w, p.padding, p.length, uint16(p.treeBits)); err != nil {
		return err
	}
	if p.root == nil {
		return nil
	}

	bw := NewBitWriter(w)
	if err := WriteTree(bw, p.root); err != nil {
		return err
	}
	if _, err := bw.Align(); err != nil {
		return err
	}

	n, err := encodeSymbols(bw, src, p.codes)
	if err != nil {
		return err
	}
	if n != p.length {
		return fmt.Errorf("huff: input changed between passes: counted %d bytes, encoded %d", p.length, n)
	}
	padding, err := bw.Align()
	if err != nil {
		return err
	}
	if padding != p.padding {
		return fmt.Errorf("huff: payload padding %d, expected %d", padding, p.padding)
	}
	return bw.Close()
}

// encodeSymbols writes the code of every byte read from src and returns the
// number of bytes encoded.
func encodeSymbols(bw *BitWriter, src io.Reader, codes *CodeTable) (uint64, error) {
	buf := make([]byte, 32*1024)
	var n uint64
	for {
		k, err := src.Read(buf)
		for _, b := range buf[:k] {
			code := codes[b]
			if code.BitLength == 0 {
				return n, fmt.Errorf("huff: input changed between passes: byte 0x%02x was not counted", b)
			}
			bw.WriteBitString(code)
		}
		n += uint64(k)
		if bw.Err() != nil {
			return n, bw.Err()
		}
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
}

// -----------------------------------------------------------------------------
// Decoder
// -----------------------------------------------------------------------------

// Decoder decompresses containers. It holds no per-call state and may be
// shared between goroutines.
type Decoder struct {
	// Log receives a debug entry per decoded container. Nil disables logging.
	Log logrus.FieldLogger
}

func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decompresses a container.
func (d *Decoder) Decode(data []byte) ([]byte, error) {
	c, err := ParseContainer(data)
	if err != nil {
		return nil, err
	}
	return d.DecodeContainer(c)
}

// DecodeFrom reads a whole container from r and decompresses it.
func (d *Decoder) DecodeFrom(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return d.Decode(data)
}

// DecodeContainer decompresses an already parsed container.
func (d *Decoder) DecodeContainer(c *Container) ([]byte, error) {
	if c.TreeBits == 0 {
		if !c.Empty() {
			return nil, malformedTree("no tree for %d symbols", c.Length)
		}
		return []byte{}, nil
	}

	root, err := ReadTree(NewBitReader(c.Tree, uint64(c.TreeBits)))
	if err != nil {
		return nil, err
	}

	if c.Padding > 7 {
		return nil, corruptPayload("padding of %d bits", c.Padding)
	}
	if c.Padding > 0 && len(c.Payload) == 0 {
		return nil, corruptPayload("padding of %d bits without payload", c.Padding)
	}
	bits := c.PayloadBits()
	if c.Length > bits {
		return nil, corruptPayload("%d symbols cannot fit in %d bits", c.Length, bits)
	}

	out, err := decodeSymbols(root, NewBitReader(c.Payload, bits), c.Length)
	if err != nil {
		return nil, err
	}
	if d.Log != nil {
		d.Log.WithFields(logrus.Fields{
			"symbols":      len(out),
			"tree_bits":    c.TreeBits,
			"payload_bits": bits,
		}).Debug("huff: decoded")
	}
	return out, nil
}

// decodeSymbols walks the tree from root, going left on 0 and right on 1,
// and emits a symbol at every leaf. The stream must end exactly at the root
// after length symbols.
func decodeSymbols(root Node, br *BitReader, length uint64) ([]byte, error) {
	total := br.Remaining()
	out := make([]byte, 0, length)
	n := root
	for {
		bit, err := br.ReadBit()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		in, ok := n.(*Internal)
		if !ok {
			return nil, malformedTree("root is not an internal node")
		}
		next := in.Left
		if bit {
			next = in.Right
		}

		switch next := next.(type) {
		case nil:
			return nil, corruptPayload("bit %d follows a missing branch", total-br.Remaining()-1)
		case *Leaf:
			if uint64(len(out)) == length {
				return nil, corruptPayload("more than %d symbols", length)
			}
			out = append(out, next.Symbol)
			n = root
		case *Internal:
			n = next
		}
	}

	if n != root {
		return nil, corruptPayload("payload ends inside a code after %d symbols", len(out))
	}
	if uint64(len(out)) != length {
		return nil, corruptPayload("decoded %d of %d symbols", len(out), length)
	}
	return out, nil
}
