package huff

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestCountFrequencies(t *testing.T) {
	f := CountFrequencies([]byte("abracadabra"))
	want := map[byte]uint64{'a': 5, 'b': 2, 'r': 2, 'c': 1, 'd': 1}
	for sym, c := range f {
		if c != want[byte(sym)] {
			t.Fatalf("count[%q] = %d, want %d", byte(sym), c, want[byte(sym)])
		}
	}
	if got := f.Total(); got != 11 {
		t.Fatalf("Total = %d, want 11", got)
	}
	if got := f.Distinct(); got != 5 {
		t.Fatalf("Distinct = %d, want 5", got)
	}
}

func TestCountFrequencies_Empty(t *testing.T) {
	f := CountFrequencies(nil)
	if !f.Empty() || f.Total() != 0 {
		t.Fatalf("expected empty table, got total=%d distinct=%d", f.Total(), f.Distinct())
	}
}

func TestCountParallelMatchesSerial(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := make([]byte, 3*parallelCountThreshold+17)
	for i := range p {
		p[i] = byte(rng.Intn(40))
	}

	serial := new(Frequencies)
	serial.count(p)

	for _, workers := range []int{1, 2, 3, 8, 64} {
		if got := countParallel(p, workers); *got != *serial {
			t.Fatalf("workers=%d: sharded count differs from serial count", workers)
		}
	}
	if got := CountFrequencies(p); *got != *serial {
		t.Fatalf("CountFrequencies differs from serial count")
	}
	if got := serial.Total(); got != uint64(len(p)) {
		t.Fatalf("Total = %d, want %d", got, len(p))
	}
}

func TestCountParallel_TinyInput(t *testing.T) {
	got := countParallel([]byte{1, 2}, 16)
	if got[1] != 1 || got[2] != 1 || got.Total() != 2 {
		t.Fatalf("unexpected counts for tiny input: total=%d", got.Total())
	}
}

func TestFrequenciesCountFrom(t *testing.T) {
	src := bytes.Repeat([]byte("xyz"), 50000)
	f := new(Frequencies)
	n, err := f.CountFrom(bytes.NewReader(src))
	if err != nil {
		t.Fatalf("CountFrom: %v", err)
	}
	if n != int64(len(src)) {
		t.Fatalf("CountFrom read %d bytes, want %d", n, len(src))
	}
	if *f != *CountFrequencies(src) {
		t.Fatalf("CountFrom differs from CountFrequencies")
	}
}
