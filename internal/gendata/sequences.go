package gendata

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
)

var bases = [4]byte{'A', 'C', 'G', 'T'}

func randomSequence(rng *rand.Rand, minLen, maxLen int) []byte {
	n := minLen
	if maxLen > minLen {
		n += rng.Intn(maxLen - minLen)
	}
	seq := make([]byte, n)
	for i := range seq {
		seq[i] = bases[rng.Intn(len(bases))]
	}
	return seq
}

// LogParams controls synthetic Kraken2 log generation.
type LogParams struct {
	Lines  int
	Taxids []uint32 // drawn from a previously generated report; a small
	// built-in set is used when empty.
	Rand *rand.Rand
}

var defaultTaxids = []uint32{0, 1, 2, 3}

// GenerateLog writes a synthetic Kraken2 log with params.Lines records,
// each referencing a random taxid from params.Taxids.
func GenerateLog(w io.Writer, params LogParams) ([]string, error) {
	if params.Rand == nil {
		params.Rand = rand.New(rand.NewSource(1))
	}
	taxids := params.Taxids
	if len(taxids) == 0 {
		taxids = defaultTaxids
	}

	bw := bufio.NewWriterSize(w, 1<<16)
	seqIDs := make([]string, params.Lines)
	for i := 0; i < params.Lines; i++ {
		taxid := taxids[params.Rand.Intn(len(taxids))]
		flag := byte('C')
		if taxid == 0 {
			flag = 'U'
		}
		seqID := fmt.Sprintf("seq_%d", i)
		seqIDs[i] = seqID
		length := 100 + params.Rand.Intn(400)
		if _, err := fmt.Fprintf(bw, "%c\t%s\t%d\t%d\t0:1\n", flag, seqID, taxid, length); err != nil {
			return nil, err
		}
	}
	return seqIDs, bw.Flush()
}

// SeqParams controls synthetic FASTA/FASTQ generation.
type SeqParams struct {
	Lines int
	// IDs, when non-empty, names each sequence record (correlating with a
	// generated log's sequence ids); otherwise ids are seq_0, seq_1, ...
	IDs           []string
	MinLen, MaxLen int
	Rand          *rand.Rand
}

func (p SeqParams) withDefaults() SeqParams {
	if p.MinLen <= 0 {
		p.MinLen = 100
	}
	if p.MaxLen <= p.MinLen {
		p.MaxLen = p.MinLen + 400
	}
	if p.Rand == nil {
		p.Rand = rand.New(rand.NewSource(1))
	}
	return p
}

func (p SeqParams) ids() []string {
	if len(p.IDs) > 0 {
		return p.IDs
	}
	ids := make([]string, p.Lines)
	for i := range ids {
		ids[i] = fmt.Sprintf("seq_%d", i)
	}
	return ids
}

// GenerateFASTA writes params.Lines synthetic FASTA records.
func GenerateFASTA(w io.Writer, params SeqParams) error {
	params = params.withDefaults()
	bw := bufio.NewWriterSize(w, 1<<16)
	for _, id := range params.ids() {
		seq := randomSequence(params.Rand, params.MinLen, params.MaxLen)
		if _, err := fmt.Fprintf(bw, ">%s\n%s\n", id, seq); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// GenerateFASTQ writes params.Lines synthetic FASTQ records, with uniform
// high-quality scores (no biological realism is intended).
func GenerateFASTQ(w io.Writer, params SeqParams) error {
	params = params.withDefaults()
	bw := bufio.NewWriterSize(w, 1<<16)
	for _, id := range params.ids() {
		seq := randomSequence(params.Rand, params.MinLen, params.MaxLen)
		qual := make([]byte, len(seq))
		for i := range qual {
			qual[i] = 'I'
		}
		if _, err := fmt.Fprintf(bw, "@%s\n%s\n+\n%s\n", id, seq, qual); err != nil {
			return err
		}
	}
	return bw.Flush()
}
