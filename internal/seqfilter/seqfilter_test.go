package seqfilter

import (
	"strings"
	"testing"

	"github.com/krakenkit/krakenkit/internal/krerr"
)

func TestRun_FASTAIncludePreservesOrder(t *testing.T) {
	data := []byte(">a\nAAAA\n>b\nCCCC\n>c\nGGGG\n")
	included := map[string]struct{}{"a": {}, "c": {}}

	res, err := Run(data, "seq.fasta", included, nil, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := string(res.Output)
	if !strings.Contains(out, ">a") || !strings.Contains(out, ">c") || strings.Contains(out, ">b") {
		t.Fatalf("unexpected output: %q", out)
	}
	if strings.Index(out, ">a") > strings.Index(out, ">c") {
		t.Errorf("records out of order: %q", out)
	}
	if res.Stats.TotalExtracted != 2 {
		t.Errorf("TotalExtracted = %d, want 2", res.Stats.TotalExtracted)
	}
	if res.Stats.TotalInput != 3 {
		t.Errorf("TotalInput = %d, want 3", res.Stats.TotalInput)
	}
}

func TestRun_FASTAIncludeWithTaxonStats(t *testing.T) {
	data := []byte(">a\nAAAA\n>b\nCCCC\n>c\nGGGG\n")
	included := map[string]struct{}{"a": {}, "c": {}}
	seqToTaxa := map[string]uint32{"a": 3, "b": 9, "c": 3}

	res, err := Run(data, "seq.fasta", included, seqToTaxa, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stats.PerTaxon[3] != 2 {
		t.Errorf("PerTaxon[3] = %d, want 2", res.Stats.PerTaxon[3])
	}
}

func TestRun_FASTQExclude(t *testing.T) {
	data := []byte(
		"@r1\nACGT\n+\nIIII\n" +
			"@r2\nACGT\n+\nIIII\n" +
			"@r3\nACGT\n+\nIIII\n" +
			"@r4\nACGT\n+\nIIII\n")
	taxa := map[string]uint32{"r1": 3, "r2": 3, "r3": 9, "r4": 0}
	included := map[string]struct{}{} // exclude-taxon-3 included set: ids whose taxon != 3
	for id, taxid := range taxa {
		if taxid != 3 {
			included[id] = struct{}{}
		}
	}

	res, err := Run(data, "seq.fastq", included, taxa, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	out := string(res.Output)
	if !strings.Contains(out, "@r3") || !strings.Contains(out, "@r4") {
		t.Errorf("expected r3 and r4 in output, got %q", out)
	}
	if strings.Contains(out, "@r1") || strings.Contains(out, "@r2") {
		t.Errorf("did not expect r1/r2 in output, got %q", out)
	}
}

func TestRun_FASTQTruncatedRecord(t *testing.T) {
	data := []byte("@r1\nACGT\n+\nIIII\n@r2\nACGT\n+\n")
	_, err := Run(data, "seq.fastq", map[string]struct{}{}, nil, Options{Workers: 1})
	if err == nil {
		t.Fatal("expected TruncatedRecord error")
	}
}

func TestRun_PartitionSoundness(t *testing.T) {
	data := []byte(">a\nAAAA\n>b\nCCCC\n>c\nGGGG\n>d\nTTTT\n")
	taxa := map[string]uint32{"a": 3, "b": 9, "c": 3, "d": 0}
	include := map[string]struct{}{}
	exclude := map[string]struct{}{}
	for id, taxid := range taxa {
		if taxid == 3 {
			include[id] = struct{}{}
		} else {
			exclude[id] = struct{}{}
		}
	}

	incRes, err := Run(data, "seq.fasta", include, taxa, Options{Workers: 2})
	if err != nil {
		t.Fatalf("Run include: %v", err)
	}
	excRes, err := Run(data, "seq.fasta", exclude, taxa, Options{Workers: 2})
	if err != nil {
		t.Fatalf("Run exclude: %v", err)
	}
	if incRes.Stats.TotalExtracted+excRes.Stats.TotalExtracted != incRes.Stats.TotalInput {
		t.Errorf("partition not sound: include=%d exclude=%d total=%d",
			incRes.Stats.TotalExtracted, excRes.Stats.TotalExtracted, incRes.Stats.TotalInput)
	}
}

func TestRun_TruncatedRecordSurvivesCancellationRace(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 400; i++ {
		sb.WriteString("@r\nACGT\n+\nIIII\n")
	}
	sb.WriteString("@trunc\nACGT\n+\n") // missing quality line: truncated
	data := []byte(sb.String())

	for i := 0; i < 20; i++ {
		_, err := Run(data, "seq.fastq", map[string]struct{}{}, nil, Options{Workers: 8, TargetChunk: 64})
		if err == nil {
			t.Fatal("expected a TruncatedRecord error")
		}
		ke, ok := err.(*krerr.Error)
		if !ok || ke.Kind != krerr.TruncatedRecord {
			t.Fatalf("err = %v, want TruncatedRecord (got Cancelled placeholder instead of the real cause?)", err)
		}
	}
}

func TestRun_FormatMismatch(t *testing.T) {
	_, err := Run([]byte("not a sequence file\n"), "bad.txt", nil, nil, Options{})
	if err == nil {
		t.Fatal("expected FormatMismatch error")
	}
}

func TestRun_ParallelMatchesSingleWorker(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 200; i++ {
		sb.WriteString(">seq")
		sb.WriteString(strings.Repeat("x", 1))
		sb.WriteByte('\n')
		sb.WriteString("ACGTACGTACGT\n")
	}
	data := []byte(sb.String())

	single, err := Run(data, "seq.fasta", map[string]struct{}{}, nil, Options{Workers: 1})
	if err != nil {
		t.Fatalf("Run single: %v", err)
	}
	parallel, err := Run(data, "seq.fasta", map[string]struct{}{}, nil, Options{Workers: 4, TargetChunk: 64})
	if err != nil {
		t.Fatalf("Run parallel: %v", err)
	}
	if single.Stats.TotalInput != parallel.Stats.TotalInput {
		t.Errorf("TotalInput mismatch: single=%d parallel=%d", single.Stats.TotalInput, parallel.Stats.TotalInput)
	}
}
