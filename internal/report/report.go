// Package report measures how well the codec does on an input and sets it
// against the zstd and huff0 encoders from klauspost/compress.
package report

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"text/tabwriter"

	"github.com/klauspost/compress/huff0"
	"github.com/klauspost/compress/zstd"

	"huff"
)

// Report describes one compressed input. Sizes are in bytes.
type Report struct {
	OriginalSize  int `json:"original_size"`
	ContainerSize int `json:"container_size"`
	HeaderSize    int `json:"header_size"`
	TreeSize      int `json:"tree_size"`
	PayloadSize   int `json:"payload_size"`
	PaddingBits   int `json:"padding_bits"`

	Distinct   int     `json:"distinct_symbols"`
	MaxCodeLen int     `json:"max_code_bits"`
	AvgCodeLen float64 `json:"avg_code_bits"`
	// Entropy is the order-0 Shannon entropy in bits per symbol, the lower
	// bound for AvgCodeLen.
	Entropy float64 `json:"entropy_bits"`
	// Ratio is OriginalSize / ContainerSize.
	Ratio float64 `json:"ratio"`

	Huff0Size int `json:"huff0_size"`
	ZstdSize  int `json:"zstd_size"`
}

// Analyze compresses src and reports on the result.
func Analyze(src []byte) (*Report, error) {
	comp, err := huff.Compress(src)
	if err != nil {
		return nil, err
	}
	c, err := huff.ParseContainer(comp)
	if err != nil {
		return nil, err
	}

	f := huff.CountFrequencies(src)
	codes := huff.GenerateCodes(huff.BuildTree(f))

	r := &Report{
		OriginalSize:  len(src),
		ContainerSize: len(comp),
		HeaderSize:    c.HeaderLen(),
		TreeSize:      len(c.Tree),
		PayloadSize:   len(c.Payload),
		PaddingBits:   int(c.Padding),
		Distinct:      f.Distinct(),
		MaxCodeLen:    codes.MaxLen(),
		Entropy:       entropy(f),
		Ratio:         float64(len(src)) / float64(len(comp)),
	}
	if total := f.Total(); total > 0 {
		r.AvgCodeLen = float64(codes.EncodedBits(f)) / float64(total)
	}

	if r.Huff0Size, err = huff0Size(src); err != nil {
		return nil, fmt.Errorf("huff0: %w", err)
	}
	r.ZstdSize = len(compressZstd(src))
	return r, nil
}

// WriteTo writes the report as a two-column table.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)
	rows := []struct {
		k string
		v any
	}{
		{"original", r.OriginalSize},
		{"container", r.ContainerSize},
		{"  header", r.HeaderSize},
		{"  tree", r.TreeSize},
		{"  payload", r.PayloadSize},
		{"padding bits", r.PaddingBits},
		{"distinct symbols", r.Distinct},
		{"max code bits", r.MaxCodeLen},
		{"avg code bits", fmt.Sprintf("%.3f", r.AvgCodeLen)},
		{"entropy bits", fmt.Sprintf("%.3f", r.Entropy)},
		{"ratio", fmt.Sprintf("%.2fx", r.Ratio)},
		{"huff0", r.Huff0Size},
		{"zstd", r.ZstdSize},
	}
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%v\n", row.k, row.v)
	}
	err := tw.Flush()
	return cw.n, err
}

func entropy(f *huff.Frequencies) float64 {
	total := float64(f.Total())
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, c := range f {
		if c == 0 {
			continue
		}
		p := float64(c) / total
		h -= p * math.Log2(p)
	}
	return h
}

// --- huff0 ---

// huff0Size compresses src in huff0 blocks with a fresh table per block and
// returns the total size. Blocks huff0 refuses are counted as stored raw,
// single-symbol blocks as one byte.
func huff0Size(src []byte) (int, error) {
	s := &huff0.Scratch{Reuse: huff0.ReusePolicyNone}
	size := 0
	for len(src) > 0 {
		n := min(len(src), huff0.BlockSizeMax)
		block := src[:n]
		src = src[n:]

		out, _, err := huff0.Compress1X(block, s)
		switch {
		case err == nil:
			size += len(out)
		case errors.Is(err, huff0.ErrIncompressible):
			size += len(block)
		case errors.Is(err, huff0.ErrUseRLE):
			size++
		default:
			return 0, err
		}
	}
	return size, nil
}

// --- ZSTD helpers ---

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		panic(err)
	}
	return enc
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

func compressZstd(data []byte) []byte {
	enc := zstdEncPool.Get().(*zstd.Encoder)
	out := enc.EncodeAll(data, nil)
	zstdEncPool.Put(enc)
	return out
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
