// Package gendata implements generate-test-data: synthetic report, log,
// FASTA, and FASTQ fixtures built with a depth-weighted recursive fragment
// split across a random number of children per node. Tested only for
// basic output shape, not biological realism.
package gendata

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
)

// ranksByDepth maps recursion depth to a standard taxonomic rank letter.
var ranksByDepth = []byte{'D', 'P', 'C', 'O', 'F', 'G'}

func rankForDepth(depth int) byte {
	if depth < len(ranksByDepth) {
		return ranksByDepth[depth]
	}
	return 'S'
}

// ReportParams controls synthetic report shape.
type ReportParams struct {
	Lines       int
	MaxDepth    int
	MaxChildren int
	Fragments   uint64
	Rand        *rand.Rand
}

func (p ReportParams) withDefaults() ReportParams {
	if p.MaxDepth <= 0 {
		p.MaxDepth = 15
	}
	if p.MaxChildren <= 0 {
		p.MaxChildren = 20
	}
	if p.Fragments == 0 {
		p.Fragments = 5_000_000
	}
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewSource(1))
	}
	return p
}

// GenerateReport writes a synthetic Kraken2 report with up to params.Lines
// taxon lines, plus the fixed unclassified and root lines.
func GenerateReport(w io.Writer, params ReportParams) (int, error) {
	params = params.withDefaults()
	bw := bufio.NewWriterSize(w, 1<<16)

	unclassified := params.Fragments / 10
	rootFragments := params.Fragments - unclassified

	lines := 0
	if unclassified > 0 {
		if _, err := fmt.Fprintf(bw, "0.00\t%d\t%d\tU\t0\tunclassified\n", unclassified, unclassified); err != nil {
			return 0, err
		}
		lines++
	}
	if _, err := fmt.Fprintf(bw, "100.00\t%d\t0\tR\t1\troot\n", rootFragments); err != nil {
		return 0, err
	}
	lines++

	budget := params.Lines
	written, err := distributeFragments(bw, rootFragments, params.Fragments, 0, params.MaxDepth, params.MaxChildren, &budget, params.Rand)
	if err != nil {
		return 0, err
	}
	lines += written

	return lines, bw.Flush()
}

// distributeFragments recursively splits fragments across a random number
// of children, writing one report line per non-zero child, stopping once
// the line budget is used up (budget is shared across the whole recursion so the
// caller's requested line count is honored as an upper bound).
func distributeFragments(w io.Writer, fragments, totalFragments uint64, depth, maxDepth, maxChildren int, budget *int, rng *rand.Rand) (int, error) {
	if fragments == 0 || depth >= maxDepth || *budget <= 0 {
		return 0, nil
	}

	numChildren := 1 + rng.Intn(maxChildren)
	depthFactor := 1.0 - (float64(depth)/float64(maxDepth))*0.8
	numChildren = int(float64(numChildren) * depthFactor)
	if numChildren == 0 {
		numChildren = 1
	}
	if numChildren > *budget {
		numChildren = *budget
	}

	childFragments := distributeWeighted(fragments, numChildren, rng)

	written := 0
	indent := make([]byte, depth*2)
	for i := range indent {
		indent[i] = ' '
	}

	for i := 0; i < numChildren && *budget > 0; i++ {
		frag := childFragments[i]
		if frag == 0 {
			continue
		}
		taxid := 10 + rng.Intn(999_990)
		assigned := uint64(rng.Intn(int(frag) + 1))
		pct := (float64(frag) / float64(totalFragments)) * 100.0
		name := fmt.Sprintf("taxon_%d", taxid)

		if _, err := fmt.Fprintf(w, "%.2f\t%d\t%d\t%c\t%d\t%s%s\n",
			pct, frag, assigned, rankForDepth(depth), taxid, indent, name); err != nil {
			return written, err
		}
		written++
		*budget--

		childWritten, err := distributeFragments(w, frag, totalFragments, depth+1, maxDepth, maxChildren, budget, rng)
		if err != nil {
			return written, err
		}
		written += childWritten
	}

	return written, nil
}

// distributeWeighted splits total across n buckets using randomized
// weights between 1 and 10; shares are floored and the last bucket takes
// the remainder, so small totals can leave some buckets at zero.
func distributeWeighted(total uint64, n int, rng *rand.Rand) []uint64 {
	weights := make([]float64, n)
	var sum float64
	for i := range weights {
		weights[i] = 1.0 + rng.Float64()*9.0
		sum += weights[i]
	}
	out := make([]uint64, n)
	var assigned uint64
	for i := 0; i < n-1; i++ {
		share := uint64(float64(total) * weights[i] / sum)
		out[i] = share
		assigned += share
	}
	if total > assigned {
		out[n-1] = total - assigned
	}
	return out
}
