package report

import (
	"fmt"
	"io"
	"strconv"
)

// WriteCanonical regenerates a report in the standard wire format from the
// parsed tree: same rank codes, same 2-per-depth space encoding. Used by
// the round-trip property test: Parse(WriteCanonical(t)) must equal t.
func (t *Tree) WriteCanonical(w io.Writer) error {
	for i := range t.Nodes {
		n := &t.Nodes[i]
		indent := ""
		for k := 0; k < n.Depth; k++ {
			indent += "  "
		}
		line := fmt.Sprintf("%s\t%d\t%d\t%s\t%d\t%s%s\n",
			strconv.FormatFloat(n.Percentage, 'f', 2, 64),
			n.ReadsCovered, n.ReadsAssigned, n.Rank.String(), n.ID, indent, n.Name)
		if _, err := io.WriteString(w, line); err != nil {
			return err
		}
	}
	return nil
}
