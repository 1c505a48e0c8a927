package seqfilter

import "github.com/krakenkit/krakenkit/internal/krerr"

const maxFASTQCandidates = 64

// validateFASTQRecord checks that the 4-line record starting at pos is
// well-formed: third line starts with '+', second and fourth lines have
// equal length. Returns the offset just past the record and true on
// success.
func validateFASTQRecord(data []byte, pos int) (end int, ok bool) {
	header, p1, ok := nextLine(data, pos)
	if !ok || len(header) == 0 || header[0] != '@' {
		return 0, false
	}
	seq, p2, ok := nextLine(data, p1)
	if !ok {
		return 0, false
	}
	plus, p3, ok := nextLine(data, p2)
	if !ok || len(plus) == 0 || plus[0] != '+' {
		return 0, false
	}
	qual, p4, ok := nextLine(data, p3)
	if !ok || len(qual) != len(seq) {
		return 0, false
	}
	return p4, true
}

// alignFASTQStart finds, at or after coarse, the next '@' that begins a
// validated 4-line FASTQ record, examining up to 64 candidates. ok is false
// when no candidate validates, in which case the chunk boundary collapses
// into the previous chunk (no duplication, no loss).
func alignFASTQStart(data []byte, coarse int) (pos int, ok bool) {
	if coarse <= 0 {
		return 0, true
	}
	tried := 0
	for i := coarse; i < len(data) && tried < maxFASTQCandidates; i++ {
		if data[i] != '@' || data[i-1] != '\n' {
			continue
		}
		tried++
		if _, valid := validateFASTQRecord(data, i); valid {
			return i, true
		}
	}
	return 0, false
}

type fastqRecord struct {
	id         string
	start, end int
}

// iterateFASTQ walks chunk 4 lines at a time. A final partial record (fewer
// than 4 lines, or mismatched second/fourth line lengths) at true end of
// input produces a TruncatedRecord error carrying its byte offset.
func iterateFASTQ(chunk []byte, baseOffset int, fn func(fastqRecord)) error {
	pos := 0
	for pos < len(chunk) {
		recStart := pos
		end, ok := validateFASTQRecord(chunk, pos)
		if !ok {
			return krerr.WithOffset(krerr.TruncatedRecord, "", int64(baseOffset+recStart),
				"truncated or malformed FASTQ record")
		}
		header, p1, _ := nextLine(chunk, pos)
		id := recordID(header)
		_ = p1
		fn(fastqRecord{id: id, start: recStart, end: end})
		pos = end
	}
	return nil
}
