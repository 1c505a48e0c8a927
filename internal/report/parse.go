package report

import (
	"io"
	"strconv"

	"github.com/krakenkit/krakenkit/internal/krerr"
	"github.com/krakenkit/krakenkit/internal/scan"
)

const fieldsPerLine = 6

// Parse reads a full Kraken2 report from r and reconstructs its taxonomy.
// It reads the whole input into memory rather than streaming, since the
// ancestor-stack algorithm needs only O(max_depth) state beyond the output.
func Parse(r io.Reader, path string) (*Tree, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, krerr.Wrap(krerr.IoError, path, "read report", err)
	}
	return ParseBytes(buf, path)
}

// ParseBytes parses an already-read report buffer. buf is not retained by
// the returned Tree: node names and rank codes are copied out, and nothing
// aliases buf after this call returns.
func ParseBytes(buf []byte, path string) (*Tree, error) {
	tree := newTree(256)
	stack := make([]int, 0, 32) // stack[d] = index of most recent node at depth d

	s := scan.New(buf)
	var fields [][]byte
	for s.Scan() {
		line := s.Line()
		fields = scan.Fields(line, '\t', fields[:0])
		if len(fields) < fieldsPerLine {
			return nil, krerr.WithLine(krerr.MalformedReport, path, s.LineNo(),
				"expected 6 tab-separated fields")
		}

		pct, err := parsePercentage(fields[0])
		if err != nil {
			return nil, krerr.WithLine(krerr.MalformedReport, path, s.LineNo(), "bad percentage: "+err.Error())
		}
		covered, err := parseUint(fields[1], 64)
		if err != nil {
			return nil, krerr.WithLine(krerr.MalformedReport, path, s.LineNo(), "bad reads_covered: "+err.Error())
		}
		assigned, err := parseUint(fields[2], 64)
		if err != nil {
			return nil, krerr.WithLine(krerr.MalformedReport, path, s.LineNo(), "bad reads_assigned: "+err.Error())
		}
		rank := internRank(fields[3])
		id64, err := parseUint(fields[4], 32)
		if err != nil {
			return nil, krerr.WithLine(krerr.MalformedReport, path, s.LineNo(), "bad taxon id: "+err.Error())
		}
		id := uint32(id64)

		rawName := fields[5]
		depth, nameStart := countIndent(rawName)
		name := trimTrailing(rawName[nameStart:])

		if depth > len(stack) {
			return nil, krerr.WithLine(krerr.MalformedReport, path, s.LineNo(),
				"indentation jump implies a missing intermediate node")
		}
		if _, exists := tree.byID[id]; exists {
			return nil, krerr.WithLine(krerr.MalformedReport, path, s.LineNo(), "duplicate taxon id")
		}

		idx := len(tree.Nodes)
		parent := -1
		if depth > 0 {
			parent = stack[depth-1]
		}

		node := Node{
			ID:            id,
			Rank:          rank,
			Name:          string(name),
			Depth:         depth,
			Percentage:    pct,
			ReadsCovered:  covered,
			ReadsAssigned: assigned,
			Index:         idx,
			Parent:        parent,
		}
		tree.Nodes = append(tree.Nodes, node)
		tree.index(tree.Nodes[idx])

		if parent >= 0 {
			tree.Nodes[parent].Children = append(tree.Nodes[parent].Children, idx)
		}

		stack = stack[:depth]
		stack = append(stack, idx)
	}

	return tree, nil
}

// countIndent returns the depth (leading-space count / 2) and the byte
// offset of the first non-space character.
func countIndent(b []byte) (depth int, nameStart int) {
	i := 0
	for i < len(b) && b[i] == ' ' {
		i++
	}
	return i / 2, i
}

func trimTrailing(b []byte) []byte {
	end := len(b)
	for end > 0 && (b[end-1] == ' ' || b[end-1] == '\t' || b[end-1] == '\r') {
		end--
	}
	return b[:end]
}

func parsePercentage(b []byte) (float64, error) {
	return strconv.ParseFloat(string(b), 64)
}

func parseUint(b []byte, bits int) (uint64, error) {
	return strconv.ParseUint(string(b), 10, bits)
}
