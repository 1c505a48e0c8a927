package report

import (
	"encoding/json"
	"io"
)

// jsonNode is the JSON tree shape: children in insertion order, rank
// rendered as its textual form.
type jsonNode struct {
	ID            uint32     `json:"id"`
	Rank          string     `json:"rank"`
	Name          string     `json:"name"`
	Depth         int        `json:"depth"`
	Percentage    float64    `json:"percentage"`
	ReadsCovered  uint64     `json:"reads_covered"`
	ReadsAssigned uint64     `json:"reads_assigned"`
	Children      []jsonNode `json:"children"`
}

func (t *Tree) toJSONNode(idx int) jsonNode {
	n := &t.Nodes[idx]
	children := make([]jsonNode, 0, len(n.Children))
	for _, c := range n.Children {
		children = append(children, t.toJSONNode(c))
	}
	return jsonNode{
		ID:            n.ID,
		Rank:          n.Rank.String(),
		Name:          n.Name,
		Depth:         n.Depth,
		Percentage:    n.Percentage,
		ReadsCovered:  n.ReadsCovered,
		ReadsAssigned: n.ReadsAssigned,
		Children:      children,
	}
}

// WriteJSON writes the tree as a JSON forest: {"roots": [...]}.
func (t *Tree) WriteJSON(w io.Writer) error {
	roots := t.Roots()
	nodes := make([]jsonNode, 0, len(roots))
	for _, idx := range roots {
		nodes = append(nodes, t.toJSONNode(idx))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Roots []jsonNode `json:"roots"`
	}{Roots: nodes})
}
