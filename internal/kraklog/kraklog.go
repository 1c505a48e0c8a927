// Package kraklog streams a Kraken2 classification log and computes the
// inclusion set of sequence identifiers for extraction in a single pass,
// rejecting lines with fewer than three fields or a non-numeric taxon id.
package kraklog

import (
	"io"
	"strconv"

	"github.com/krakenkit/krakenkit/internal/krerr"
	"github.com/krakenkit/krakenkit/internal/scan"
)

// Polarity selects which side of the taxon-id membership test to keep.
type Polarity int

const (
	Include Polarity = iota
	Exclude
)

// Plan is the extraction planner's output: a set of sequence ids to keep,
// plus (when KeepTaxonMap is requested) a map from sequence id to the
// taxon id it was classified as, retained only for statistics reporting.
type Plan struct {
	Included  map[string]struct{}
	SeqToTaxa map[string]uint32
}

// Options controls what the planner retains.
type Options struct {
	Polarity     Polarity
	KeepTaxonMap bool
}

// Build streams a Kraken log from r, testing each record's taxon id for
// membership in taxa, and returns the resulting Plan. O(L) in log bytes.
// The whole log is read into memory before scanning, so peak memory is
// O(L) plus the Plan; the Plan itself holds the matched ids and, when
// requested, a taxon map covering every log record.
func Build(r io.Reader, path string, taxa map[uint32]struct{}, opts Options) (*Plan, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, krerr.Wrap(krerr.IoError, path, "read log", err)
	}

	plan := &Plan{Included: make(map[string]struct{})}
	if opts.KeepTaxonMap {
		plan.SeqToTaxa = make(map[string]uint32)
	}

	s := scan.New(buf)
	var fields [][]byte
	for s.Scan() {
		line := s.Line()
		fields = scan.Fields(line, '\t', fields[:0])
		if len(fields) < 3 {
			return nil, krerr.WithLine(krerr.MalformedLog, path, s.LineNo(), "expected at least 3 tab-separated fields")
		}

		seqID := string(fields[1])
		taxidVal, err := strconv.ParseUint(string(fields[2]), 10, 32)
		if err != nil {
			return nil, krerr.WithLine(krerr.MalformedLog, path, s.LineNo(), "bad taxon id: "+err.Error())
		}
		taxid := uint32(taxidVal)

		_, inSet := taxa[taxid]
		keep := inSet
		if opts.Polarity == Exclude {
			keep = !inSet
		}
		if keep {
			plan.Included[seqID] = struct{}{}
		}
		if opts.KeepTaxonMap {
			plan.SeqToTaxa[seqID] = taxid
		}
	}
	return plan, nil
}

// TaxonSet converts a slice of taxon ids (e.g. from a resolver closure)
// into the membership-test set Build expects.
func TaxonSet(ids []uint32) map[uint32]struct{} {
	set := make(map[uint32]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
