package abundance

import (
	"strings"
	"testing"

	"github.com/krakenkit/krakenkit/internal/report"
)

const sample1Report = `100.00	10	0	R	1	root
100.00	10	0	D	2	  Bacteria
71.43	5	5	S	3	    Escherichia coli
28.57	2	2	S	4	    Bacillus subtilis
`

const sample2Report = `100.00	7	0	R	1	root
100.00	7	0	D	2	  Bacteria
100.00	7	7	S	3	    Staphylococcus aureus
`

func TestMatrix_TwoReportScenario(t *testing.T) {
	t1, err := report.Parse(strings.NewReader(sample1Report), "sample1.txt")
	if err != nil {
		t.Fatalf("parse sample1: %v", err)
	}
	t2, err := report.Parse(strings.NewReader(sample2Report), "sample2.txt")
	if err != nil {
		t.Fatalf("parse sample2: %v", err)
	}

	m := New(Options{Rank: 'S', Value: ReadsCovered})
	m.AddSample(t1, "sample1")
	m.AddSample(t2, "sample2")

	names := m.sortedRowNames()
	want := []string{"Bacillus subtilis", "Escherichia coli", "Staphylococcus aureus"}
	if len(names) != len(want) {
		t.Fatalf("rows = %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("row[%d] = %q, want %q", i, names[i], n)
		}
	}

	if got := m.Cell("Escherichia coli", "sample1"); got != 5 {
		t.Errorf("E.coli/sample1 = %v, want 5", got)
	}
	if got := m.Cell("Escherichia coli", "sample2"); got != 0 {
		t.Errorf("E.coli/sample2 = %v, want 0", got)
	}
	if got := m.Cell("Staphylococcus aureus", "sample1"); got != 0 {
		t.Errorf("S.aureus/sample1 = %v, want 0", got)
	}
	if got := m.Cell("Staphylococcus aureus", "sample2"); got != 7 {
		t.Errorf("S.aureus/sample2 = %v, want 7", got)
	}
}

func TestMatrix_MinAbundanceDropsRow(t *testing.T) {
	t1, err := report.Parse(strings.NewReader(sample1Report), "sample1.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	m := New(Options{Rank: 'S', Value: ReadsCovered, MinAbundance: 3})
	m.AddSample(t1, "sample1")

	names := m.sortedRowNames()
	for _, n := range names {
		if n == "Bacillus subtilis" {
			t.Errorf("expected Bacillus subtilis (count 2) dropped by MinAbundance=3")
		}
	}
}

func TestMatrix_WriteTSVColumnOrder(t *testing.T) {
	t1, _ := report.Parse(strings.NewReader(sample1Report), "sample1.txt")
	t2, _ := report.Parse(strings.NewReader(sample2Report), "sample2.txt")

	m := New(Options{Rank: 'S', Value: ReadsCovered})
	m.AddSample(t1, "sample2_file")
	m.AddSample(t2, "sample1_file")

	var buf strings.Builder
	if err := m.WriteTSV(&buf); err != nil {
		t.Fatalf("WriteTSV: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	header := lines[0]
	if header != "taxon\tsample2_file\tsample1_file" {
		t.Errorf("header = %q, want input-argument column order", header)
	}
}

func TestMatrix_IncludeUnclassified(t *testing.T) {
	withUnclassified := `100.00	17	0	U	0	unclassified
100.00	10	0	R	1	root
`
	tree, err := report.Parse(strings.NewReader(withUnclassified), "sample.txt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	m := New(Options{Rank: 'U', Value: ReadsCovered, IncludeUnclassified: true})
	m.AddSample(tree, "sample")

	if got := m.Cell("unclassified", "sample"); got != 17 {
		t.Errorf("unclassified cell = %v, want 17", got)
	}
}
