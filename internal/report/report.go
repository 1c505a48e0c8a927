// Package report implements a single-pass parser that reconstructs a
// Kraken2 report's hierarchical taxonomy into a flat node vector: one pass
// over the lines builds an id-indexed map and infers each node's parent
// from its indentation depth rather than an explicit parent column.
package report

import "strings"

// RankCode is an interned two-byte rank token: a letter from the closed
// alphabet {U,R,D,K,P,C,O,F,G,S}, optionally suffixed by a single ASCII
// digit (e.g. "S1"). A zero byte in either position means "absent".
type RankCode [2]byte

func internRank(b []byte) RankCode {
	var rc RankCode
	if len(b) > 0 {
		rc[0] = b[0]
	}
	if len(b) > 1 {
		rc[1] = b[1]
	}
	return rc
}

// String renders the rank code back to its textual form.
func (r RankCode) String() string {
	if r[1] == 0 {
		if r[0] == 0 {
			return ""
		}
		return string(r[0])
	}
	return string([]byte{r[0], r[1]})
}

// Letter returns the base rank letter, ignoring any numeric suffix.
func (r RankCode) Letter() byte { return r[0] }

// Node is a taxon node. Index is this node's position in Tree.Nodes;
// Parent is -1 for a root.
type Node struct {
	ID             uint32
	Rank           RankCode
	Name           string
	Depth          int
	Percentage     float64
	ReadsCovered   uint64
	ReadsAssigned  uint64
	Index          int
	Parent         int
	Children       []int
}

// Tree is the rooted forest produced by Parse: a flat node vector plus an
// id -> index map. Children hold indices, not ids, so traversal never
// touches the map.
type Tree struct {
	Nodes  []Node
	byID   map[uint32]int
	byName map[string][]int
}

// NodeByID looks up a node by its taxon id.
func (t *Tree) NodeByID(id uint32) (*Node, bool) {
	idx, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return &t.Nodes[idx], true
}

// NodesByName returns every node whose name matches a case-insensitively,
// in insertion order.
func (t *Tree) NodesByName(name string) []*Node {
	idxs := t.byName[strings.ToLower(name)]
	if len(idxs) == 0 {
		return nil
	}
	out := make([]*Node, len(idxs))
	for i, idx := range idxs {
		out[i] = &t.Nodes[idx]
	}
	return out
}

// Unclassified returns the node conventionally representing unclassified
// reads (taxon id 0), if the report contains one.
func (t *Tree) Unclassified() (*Node, bool) { return t.NodeByID(0) }

// Roots returns the indices of every node with no parent, in insertion
// order.
func (t *Tree) Roots() []int {
	var roots []int
	for i := range t.Nodes {
		if t.Nodes[i].Parent < 0 {
			roots = append(roots, i)
		}
	}
	return roots
}

func newTree(cap int) *Tree {
	return &Tree{
		Nodes:  make([]Node, 0, cap),
		byID:   make(map[uint32]int, cap),
		byName: make(map[string][]int, cap),
	}
}

func (t *Tree) index(n Node) {
	t.byID[n.ID] = n.Index
	key := strings.ToLower(n.Name)
	t.byName[key] = append(t.byName[key], n.Index)
}
