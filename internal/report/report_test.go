package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/klauspost/compress/huff0"
)

func TestAnalyze(t *testing.T) {
	src := []byte(strings.Repeat("the rain in spain stays mainly in the plain. ", 200))
	r, err := Analyze(src)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if r.OriginalSize != len(src) {
		t.Fatalf("OriginalSize = %d, want %d", r.OriginalSize, len(src))
	}
	if got := r.HeaderSize + r.TreeSize + r.PayloadSize; got != r.ContainerSize {
		t.Fatalf("sections add up to %d, container is %d", got, r.ContainerSize)
	}
	if r.ContainerSize >= r.OriginalSize || r.Ratio <= 1 {
		t.Fatalf("text did not shrink: %d -> %d (ratio %.2f)", r.OriginalSize, r.ContainerSize, r.Ratio)
	}
	// Huffman codes are within one bit of the entropy.
	if r.AvgCodeLen < r.Entropy-1e-9 || r.AvgCodeLen >= r.Entropy+1 {
		t.Fatalf("avg code length %.3f outside [%.3f, %.3f)", r.AvgCodeLen, r.Entropy, r.Entropy+1)
	}
	if r.Huff0Size <= 0 || r.ZstdSize <= 0 {
		t.Fatalf("baseline sizes missing: huff0=%d zstd=%d", r.Huff0Size, r.ZstdSize)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	r, err := Analyze(nil)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if r.OriginalSize != 0 || r.TreeSize != 0 || r.PayloadSize != 0 || r.Distinct != 0 {
		t.Fatalf("unexpected report for empty input: %+v", r)
	}
	if r.Entropy != 0 || r.AvgCodeLen != 0 || r.Huff0Size != 0 {
		t.Fatalf("unexpected statistics for empty input: %+v", r)
	}
}

func TestEntropy(t *testing.T) {
	r, err := Analyze([]byte("abcdabcdabcdabcd"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if math.Abs(r.Entropy-2) > 1e-9 || r.AvgCodeLen != 2 {
		t.Fatalf("entropy = %.3f avg = %.3f, want 2 and 2", r.Entropy, r.AvgCodeLen)
	}
}

func TestHuff0Size_SpecialBlocks(t *testing.T) {
	rle := bytes.Repeat([]byte{7}, 1000)
	if n, err := huff0Size(rle); err != nil || n != 1 {
		t.Fatalf("huff0Size(rle) = %d, %v; want 1, nil", n, err)
	}

	// Input spanning several blocks is split, not rejected.
	big := bytes.Repeat([]byte("abcdefgh"), huff0.BlockSizeMax/4)
	n, err := huff0Size(big)
	if err != nil {
		t.Fatalf("huff0Size(big): %v", err)
	}
	if n <= 0 || n >= len(big) {
		t.Fatalf("huff0Size(big) = %d for %d bytes", n, len(big))
	}
}

func TestReportWriteTo(t *testing.T) {
	r, err := Analyze([]byte("aaaaaaaaab"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	var sb strings.Builder
	n, err := r.WriteTo(&sb)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(sb.Len()) {
		t.Fatalf("WriteTo reported %d bytes, wrote %d", n, sb.Len())
	}
	for _, want := range []string{"original", "container", "entropy bits", "zstd"} {
		if !strings.Contains(sb.String(), want) {
			t.Fatalf("report misses %q:\n%s", want, sb.String())
		}
	}
}
