package huff

import (
	"io"
	"runtime"
	"sync"
)

// parallelCountThreshold is the input size from which CountFrequencies
// shards the counting pass across CPUs.
const parallelCountThreshold = 1 << 20

// Frequencies counts occurrences of every byte value. The index is the
// symbol. The zero value is the empty table.
type Frequencies [256]uint64

// CountFrequencies returns the byte frequencies of p. Large inputs are
// counted in stripes on all CPUs and merged before returning.
func CountFrequencies(p []byte) *Frequencies {
	if len(p) < parallelCountThreshold {
		f := new(Frequencies)
		f.count(p)
		return f
	}
	return countParallel(p, runtime.NumCPU())
}

// countParallel splits p into one stripe per worker, counts each stripe into
// a private table and sums the tables.
func countParallel(p []byte, workers int) *Frequencies {
	workers = max(min(workers, len(p)), 1)
	partial := make([]Frequencies, workers)
	stripe := (len(p) + workers - 1) / workers

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		start := i * stripe
		end := min(start+stripe, len(p))
		if start >= end {
			break
		}
		wg.Add(1)
		go countStripe(&partial[i], p[start:end], &wg)
	}
	wg.Wait()

	f := new(Frequencies)
	for i := range partial {
		f.Add(&partial[i])
	}
	return f
}

func countStripe(dst *Frequencies, p []byte, wg *sync.WaitGroup) {
	defer wg.Done()
	dst.count(p)
}

func (f *Frequencies) count(p []byte) {
	for _, b := range p {
		f[b]++
	}
}

// CountFrom adds every byte read from r until io.EOF and returns the number
// of bytes read.
func (f *Frequencies) CountFrom(r io.Reader) (int64, error) {
	buf := make([]byte, 64*1024)
	var n int64
	for {
		k, err := r.Read(buf)
		f.count(buf[:k])
		n += int64(k)
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
	}
}

// Add merges o into f.
func (f *Frequencies) Add(o *Frequencies) {
	for i, c := range o {
		f[i] += c
	}
}

// Total returns the sum of all counts, which is the input length.
func (f *Frequencies) Total() uint64 {
	var t uint64
	for _, c := range f {
		t += c
	}
	return t
}

// Distinct returns the number of symbols with a non-zero count.
func (f *Frequencies) Distinct() int {
	n := 0
	for _, c := range f {
		if c != 0 {
			n++
		}
	}
	return n
}

// Empty reports whether no symbol has been counted.
func (f *Frequencies) Empty() bool {
	return f.Distinct() == 0
}
