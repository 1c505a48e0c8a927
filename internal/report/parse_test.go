package report

import (
	"bytes"
	"strings"
	"testing"
)

const minimalReport = "100.00\t10\t0\tR\t1\troot\n" +
	"100.00\t10\t0\tD\t2\t  Bacteria\n" +
	"50.00\t5\t5\tS\t3\t    Escherichia coli\n"

func TestParse_MinimalReport(t *testing.T) {
	tree, err := ParseBytes([]byte(minimalReport), "report.txt")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tree.Nodes) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(tree.Nodes))
	}

	root, _ := tree.NodeByID(1)
	bact, _ := tree.NodeByID(2)
	ecoli, _ := tree.NodeByID(3)

	if bact.Parent != root.Index {
		t.Errorf("parent(2) = %d, want %d", bact.Parent, root.Index)
	}
	if ecoli.Parent != bact.Index {
		t.Errorf("parent(3) = %d, want %d", ecoli.Parent, bact.Index)
	}
	if ecoli.Name != "Escherichia coli" {
		t.Errorf("name = %q", ecoli.Name)
	}
	if ecoli.Rank.String() != "S" {
		t.Errorf("rank = %q", ecoli.Rank.String())
	}
}

func TestParse_ParentDepthInvariant(t *testing.T) {
	tree, err := ParseBytes([]byte(minimalReport), "report.txt")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	for i := range tree.Nodes {
		n := &tree.Nodes[i]
		if n.Parent < 0 {
			continue
		}
		parent := &tree.Nodes[n.Parent]
		if parent.Depth != n.Depth-1 {
			t.Errorf("node %d: depth(parent)=%d, depth(node)-1=%d", n.ID, parent.Depth, n.Depth-1)
		}
	}
}

func TestParse_DuplicateID(t *testing.T) {
	input := minimalReport + "10.00\t1\t1\tS\t3\t    Duplicate\n"
	if _, err := ParseBytes([]byte(input), "report.txt"); err == nil {
		t.Fatal("expected error for duplicate id")
	}
}

func TestParse_DepthJump(t *testing.T) {
	input := "100.00\t10\t0\tR\t1\troot\n" +
		"50.00\t5\t5\tS\t3\t      TooDeep\n"
	if _, err := ParseBytes([]byte(input), "report.txt"); err == nil {
		t.Fatal("expected error for depth jump")
	}
}

func TestParse_TooFewFields(t *testing.T) {
	input := "100.00\t10\t0\tR\troot\n"
	if _, err := ParseBytes([]byte(input), "report.txt"); err == nil {
		t.Fatal("expected error for missing fields")
	}
}

func TestParse_RoundTrip(t *testing.T) {
	tree, err := ParseBytes([]byte(minimalReport), "report.txt")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	if err := tree.WriteCanonical(&buf); err != nil {
		t.Fatalf("WriteCanonical: %v", err)
	}

	reparsed, err := ParseBytes(buf.Bytes(), "regenerated.txt")
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if len(reparsed.Nodes) != len(tree.Nodes) {
		t.Fatalf("node count mismatch: %d vs %d", len(reparsed.Nodes), len(tree.Nodes))
	}
	for i := range tree.Nodes {
		a, b := tree.Nodes[i], reparsed.Nodes[i]
		if a.ID != b.ID || a.Name != b.Name || a.Depth != b.Depth || a.Parent != b.Parent {
			t.Errorf("node %d mismatch: %+v vs %+v", i, a, b)
		}
	}
}

func TestParse_NameWithLeadingWhitespaceTolerated(t *testing.T) {
	input := "100.00\t10\t0\tR\t1\troot\n" +
		"50.00\t5\t5\tD\t2\t   Bacteria\n" // 3 leading spaces, not a clean multiple of 2
	tree, err := ParseBytes([]byte(input), "report.txt")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.Nodes[1].Name != "Bacteria" {
		t.Errorf("name = %q", tree.Nodes[1].Name)
	}
}

func TestWriteJSON_ChildOrderMatchesInsertion(t *testing.T) {
	input := "100.00\t10\t0\tR\t1\troot\n" +
		"10.00\t1\t1\tD\t2\t  A\n" +
		"10.00\t1\t1\tD\t3\t  B\n"
	tree, err := ParseBytes([]byte(input), "report.txt")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	var buf bytes.Buffer
	if err := tree.WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	out := buf.String()
	if strings.Index(out, `"id": 2`) > strings.Index(out, `"id": 3`) {
		t.Errorf("children out of insertion order: %s", out)
	}
}
