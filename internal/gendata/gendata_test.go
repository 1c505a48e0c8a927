package gendata

import (
	"bufio"
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/krakenkit/krakenkit/internal/report"
)

func TestGenerateReport_ParsesBack(t *testing.T) {
	var buf bytes.Buffer
	_, err := GenerateReport(&buf, ReportParams{Lines: 50, Rand: rand.New(rand.NewSource(42))})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}

	tree, err := report.Parse(&buf, "generated.txt")
	if err != nil {
		t.Fatalf("generated report did not parse: %v", err)
	}
	if len(tree.Nodes) == 0 {
		t.Fatal("expected at least one node")
	}
}

func TestGenerateLog_LineCount(t *testing.T) {
	var buf bytes.Buffer
	ids, err := GenerateLog(&buf, LogParams{Lines: 20, Rand: rand.New(rand.NewSource(1))})
	if err != nil {
		t.Fatalf("GenerateLog: %v", err)
	}
	if len(ids) != 20 {
		t.Errorf("len(ids) = %d, want 20", len(ids))
	}

	scanner := bufio.NewScanner(strings.NewReader(buf.String()))
	lines := 0
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 3 {
			t.Fatalf("log line has %d fields, want >= 3", len(fields))
		}
		lines++
	}
	if lines != 20 {
		t.Errorf("lines = %d, want 20", lines)
	}
}

func TestGenerateFASTA_ValidRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateFASTA(&buf, SeqParams{Lines: 10, Rand: rand.New(rand.NewSource(1))}); err != nil {
		t.Fatalf("GenerateFASTA: %v", err)
	}
	headers := strings.Count(buf.String(), ">")
	if headers != 10 {
		t.Errorf("headers = %d, want 10", headers)
	}
}

func TestGenerateFASTQ_ValidRecords(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateFASTQ(&buf, SeqParams{Lines: 10, Rand: rand.New(rand.NewSource(1))}); err != nil {
		t.Fatalf("GenerateFASTQ: %v", err)
	}
	lines := strings.Count(buf.String(), "\n")
	if lines != 40 {
		t.Errorf("lines = %d, want 40 (4 per record)", lines)
	}
}
