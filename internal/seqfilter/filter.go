package seqfilter

import (
	"sync/atomic"
)

const cancelCheckInterval = 4096

// filterChunk processes one record-aligned chunk independently: no lock is
// held, and the only write targets are this chunk's own output buffer and
// Stats map.
func filterChunk(chunk []byte, baseOffset int, format Format, included map[string]struct{}, seqToTaxa map[string]uint32, cancel *atomic.Bool) ([]byte, Stats, error) {
	stats := Stats{PerTaxon: make(map[uint32]int)}
	out := make([]byte, 0, len(chunk)/2)
	var checked int
	var stopped bool

	switch format {
	case FASTA:
		iterateFASTA(chunk, func(rec fastaRecord) {
			if stopped {
				return
			}
			checked++
			if checked%cancelCheckInterval == 0 && cancel.Load() {
				stopped = true
				return
			}
			stats.TotalInput++
			if _, ok := included[rec.id]; !ok {
				return
			}
			out = append(out, chunk[rec.start:rec.end]...)
			stats.TotalExtracted++
			if taxid, ok := seqToTaxa[rec.id]; ok {
				stats.PerTaxon[taxid]++
			}
		})
	case FASTQ:
		err := iterateFASTQ(chunk, baseOffset, func(rec fastqRecord) {
			if stopped {
				return
			}
			checked++
			if checked%cancelCheckInterval == 0 && cancel.Load() {
				stopped = true
				return
			}
			stats.TotalInput++
			if _, ok := included[rec.id]; !ok {
				return
			}
			out = append(out, chunk[rec.start:rec.end]...)
			stats.TotalExtracted++
			if taxid, ok := seqToTaxa[rec.id]; ok {
				stats.PerTaxon[taxid]++
			}
		})
		if err != nil {
			return nil, stats, err
		}
	}

	if cancel.Load() {
		return nil, stats, nil
	}
	return out, stats, nil
}

func alignToRecordStart(data []byte, coarse int, format Format) (pos int, found bool) {
	switch format {
	case FASTA:
		return alignFASTAStart(data, coarse)
	case FASTQ:
		return alignFASTQStart(data, coarse)
	}
	return 0, false
}
