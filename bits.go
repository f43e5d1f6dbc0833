package huff

import (
	"bytes"
	"io"

	"github.com/icza/bitio"
)

// BitWriter packs bits msb-first into bytes. The first write error is
// sticky: later writes are skipped and Close or Align report it.
type BitWriter struct {
	w   *bitio.Writer
	n   uint64
	err error
}

// NewBitWriter returns a BitWriter writing to w. If w is not an
// io.ByteWriter the output is buffered until Close.
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{w: bitio.NewWriter(w)}
}

// WriteBit writes a single bit.
func (bw *BitWriter) WriteBit(bit bool) {
	if bw.err != nil {
		return
	}
	bw.err = bw.w.WriteBool(bit)
	bw.n++
}

// WriteByte writes 8 bits, msb-first, at the current bit position.
func (bw *BitWriter) WriteByte(b byte) error {
	if bw.err != nil {
		return bw.err
	}
	bw.err = bw.w.WriteBits(uint64(b), 8)
	bw.n += 8
	return bw.err
}

// WriteBitString writes all bits of bs in order.
func (bw *BitWriter) WriteBitString(bs BitString) {
	full := bs.BitLength / 8
	for i := 0; i < full && bw.err == nil; i++ {
		bw.err = bw.w.WriteBits(uint64(bs.Packed[i]), 8)
	}
	if rem := uint8(bs.BitLength % 8); rem > 0 && bw.err == nil {
		bw.err = bw.w.WriteBits(uint64(bs.Packed[full]>>(8-rem)), rem)
	}
	bw.n += uint64(bs.BitLength)
}

// Bits returns the number of bits written since the last Align.
func (bw *BitWriter) Bits() uint64 {
	return bw.n
}

// Align pads the current byte with zero bits and returns how many were
// added (0..7).
func (bw *BitWriter) Align() (padding uint8, err error) {
	if bw.err != nil {
		return 0, bw.err
	}
	padding, bw.err = bw.w.Align()
	bw.n = 0
	return padding, bw.err
}

// Close aligns the output and flushes any buffered bytes. It does not
// close the underlying writer.
func (bw *BitWriter) Close() error {
	if bw.err != nil {
		return bw.err
	}
	bw.err = bw.w.Close()
	return bw.err
}

// Err returns the first write error, if any.
func (bw *BitWriter) Err() error {
	return bw.err
}

// BitReader is a bit cursor over a byte buffer. Only the first nbits bits
// belong to the stream; reading past them returns io.EOF.
type BitReader struct {
	r      *bitio.Reader
	left   uint64
	peek   bool
	peeked bool
}

// NewBitReader returns a cursor over the first nbits bits of p. nbits is
// clamped to the size of p.
func NewBitReader(p []byte, nbits uint64) *BitReader {
	nbits = min(nbits, uint64(len(p))*8)
	return &BitReader{r: bitio.NewReader(bytes.NewReader(p)), left: nbits}
}

// ReadBit returns the next bit, or io.EOF when the stream is exhausted.
func (br *BitReader) ReadBit() (bool, error) {
	if br.peeked {
		br.peeked = false
		return br.peek, nil
	}
	return br.next()
}

// PeekBit returns the next bit without consuming it.
func (br *BitReader) PeekBit() (bool, error) {
	if br.peeked {
		return br.peek, nil
	}
	bit, err := br.next()
	if err != nil {
		return false, err
	}
	br.peek, br.peeked = bit, true
	return bit, nil
}

// Remaining returns the number of unread bits.
func (br *BitReader) Remaining() uint64 {
	if br.peeked {
		return br.left + 1
	}
	return br.left
}

// ReadByte reads 8 bits msb-first. It returns io.ErrUnexpectedEOF if fewer
// than 8 bits remain and none are consumed.
func (br *BitReader) ReadByte() (byte, error) {
	if br.Remaining() < 8 {
		if br.Remaining() == 0 {
			return 0, io.EOF
		}
		return 0, io.ErrUnexpectedEOF
	}
	var b byte
	for i := 0; i < 8; i++ {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}
		b <<= 1
		if bit {
			b |= 1
		}
	}
	return b, nil
}

func (br *BitReader) next() (bool, error) {
	if br.left == 0 {
		return false, io.EOF
	}
	bit, err := br.r.ReadBool()
	if err != nil {
		return false, err
	}
	br.left--
	return bit, nil
}
