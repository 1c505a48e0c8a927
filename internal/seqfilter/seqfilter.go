// Package seqfilter implements a parallel record filter over FASTA/FASTQ
// input: the file is split into record-aligned chunks, processed by a fixed
// worker pool with per-chunk output buffers, and reduced back together in
// either input order or completion order.
package seqfilter

import (
	"bytes"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/krakenkit/krakenkit/internal/krerr"
)

// Format is the auto-detected sequence file format.
type Format int

const (
	FASTA Format = iota
	FASTQ
)

// DetectFormat inspects the first non-empty byte of data to decide whether
// it is FASTA or FASTQ.
func DetectFormat(data []byte) (Format, error) {
	for _, b := range data {
		switch b {
		case '>':
			return FASTA, nil
		case '@':
			return FASTQ, nil
		case '\n', '\r', ' ', '\t':
			continue
		default:
			return 0, krerr.New(krerr.FormatMismatch, "", "input begins with neither '>' nor '@'")
		}
	}
	return FASTA, nil // empty input: format is moot
}

// Options controls the worker pool and cancellation behavior.
type Options struct {
	Workers       int
	Unordered     bool
	TargetChunk   int // approximate bytes per chunk before alignment
	Cancel        *atomic.Bool
}

const defaultTargetChunk = 8 << 20 // 8 MiB

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.TargetChunk <= 0 {
		o.TargetChunk = defaultTargetChunk
	}
	if o.Cancel == nil {
		o.Cancel = new(atomic.Bool)
	}
	return o
}

// Result is the reduced output of Run: the concatenated matching records
// and the aggregated per-chunk statistics.
type Result struct {
	Output []byte
	Stats  Stats
}

type chunkResult struct {
	index int
	buf   []byte
	stats Stats
	err   error
}

// Run filters data (a fully-read sequence file) against included, emitting
// matching records. seqToTaxa, when non-nil, drives per-taxon statistics.
func Run(data []byte, path string, included map[string]struct{}, seqToTaxa map[string]uint32, opts Options) (Result, error) {
	opts = opts.withDefaults()

	format, err := DetectFormat(data)
	if err != nil {
		return Result{}, err
	}

	bounds, err := splitChunks(data, format, opts.Workers, opts.TargetChunk)
	if err != nil {
		return Result{}, err
	}

	jobs := make(chan int, len(bounds))
	results := make(chan chunkResult, len(bounds))
	var wg sync.WaitGroup

	// realErr latches the first genuine per-worker error (as opposed to the
	// Cancelled placeholder a worker emits after observing the cancel flag).
	// Several workers can race to set the flag and emit results concurrently;
	// without this, whichever chunkResult happens to drain first off the
	// channel determines the reported error, which can be the incidental
	// Cancelled placeholder instead of the error that caused cancellation.
	var realErrMu sync.Mutex
	var realErr error

	for w := 0; w < opts.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if opts.Cancel.Load() {
					results <- chunkResult{index: i, err: krerr.New(krerr.Cancelled, path, "cancelled")}
					continue
				}
				start, end := bounds[i][0], bounds[i][1]
				buf, stats, err := filterChunk(data[start:end], start, format, included, seqToTaxa, opts.Cancel)
				if err != nil {
					realErrMu.Lock()
					if realErr == nil {
						realErr = err
					}
					realErrMu.Unlock()
					opts.Cancel.Store(true)
				}
				results <- chunkResult{index: i, buf: buf, stats: stats, err: err}
			}
		}()
	}
	for i := range bounds {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]chunkResult, len(bounds))
	var firstErr error
	var completionOrder []int
	for res := range results {
		collected[res.index] = res
		completionOrder = append(completionOrder, res.index)
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
	}
	if realErr != nil {
		return Result{}, realErr
	}
	if firstErr != nil {
		return Result{}, firstErr
	}

	order := make([]int, len(bounds))
	if opts.Unordered {
		copy(order, completionOrder)
	} else {
		for i := range order {
			order[i] = i
		}
	}

	var out bytes.Buffer
	total := Stats{PerTaxon: make(map[uint32]int)}
	for _, idx := range order {
		out.Write(collected[idx].buf)
		total.merge(collected[idx].stats)
	}

	return Result{Output: out.Bytes(), Stats: total}, nil
}

// splitChunks computes up to min(len(data)/target, workers) record-aligned
// byte ranges (at least one) covering data, respecting each format's record
// boundaries.
func splitChunks(data []byte, format Format, workers, target int) ([][2]int, error) {
	if len(data) == 0 {
		return nil, nil
	}
	n := len(data) / target
	if n < 1 {
		n = 1
	}
	if n > workers {
		n = workers
	}
	if n < 1 {
		n = 1
	}

	starts := make([]int, 0, n)
	starts = append(starts, 0)
	for i := 1; i < n; i++ {
		coarse := (len(data) * i) / n
		aligned, found := alignToRecordStart(data, coarse, format)
		if !found || aligned <= starts[len(starts)-1] {
			continue // no valid split found; this boundary merges into the previous chunk
		}
		starts = append(starts, aligned)
	}

	bounds := make([][2]int, len(starts))
	for i := range starts {
		end := len(data)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		bounds[i] = [2]int{starts[i], end}
	}
	return sortedBounds(bounds), nil
}

func sortedBounds(b [][2]int) [][2]int {
	sort.Slice(b, func(i, j int) bool { return b[i][0] < b[j][0] })
	return b
}
