package seqfilter

// Stats accumulates per-worker counters, reduced by a single-threaded fold
// after all chunks complete.
type Stats struct {
	TotalInput     int
	TotalExtracted int
	PerTaxon       map[uint32]int
}

func (s *Stats) merge(other Stats) {
	s.TotalInput += other.TotalInput
	s.TotalExtracted += other.TotalExtracted
	for taxid, n := range other.PerTaxon {
		s.PerTaxon[taxid] += n
	}
}
