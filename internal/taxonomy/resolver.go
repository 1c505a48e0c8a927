// Package taxonomy implements a hierarchy resolver that expands a seed set
// of taxon ids into descendant/ancestor closures over a parsed
// report.Tree, and answers point queries against it.
package taxonomy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/krakenkit/krakenkit/internal/report"
)

// Mode selects how the resolver treats seed ids absent from the tree.
type Mode int

const (
	// Permissive drops unknown seed ids, aggregating them into a single
	// warning, and proceeds with the rest.
	Permissive Mode = iota
	// Strict fails the whole resolution on the first unknown seed id.
	Strict
)

// Resolver answers closure and point queries over a parsed Tree.
type Resolver struct {
	tree *report.Tree
	mode Mode
}

// New wraps tree for resolution in the given Mode.
func New(tree *report.Tree, mode Mode) *Resolver {
	return &Resolver{tree: tree, mode: mode}
}

// UnknownSeedsError aggregates every seed id absent from the tree into one
// error entry.
type UnknownSeedsError struct {
	IDs []uint32
}

func (e *UnknownSeedsError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("unknown taxon ids: %s", strings.Join(parts, ", "))
}

// resolveSeeds maps the requested ids to tree indices, applying Mode to
// unknowns. In Permissive mode it returns the known indices plus a non-nil
// *UnknownSeedsError when some ids were dropped (err is still non-fatal:
// callers may ignore it and use the returned indices). In Strict mode it
// returns a nil index slice and a fatal error on the first unknown id.
func (r *Resolver) resolveSeeds(ids []uint32) ([]int, error) {
	var known []int
	var unknown []uint32
	for _, id := range ids {
		idx, ok := r.tree.NodeByID(id)
		if !ok {
			if r.mode == Strict {
				return nil, &UnknownSeedsError{IDs: []uint32{id}}
			}
			unknown = append(unknown, id)
			continue
		}
		known = append(known, idx.Index)
	}
	if len(unknown) > 0 {
		return known, &UnknownSeedsError{IDs: unknown}
	}
	return known, nil
}

// Descendants computes the breadth-first descendant closure of seeds. Each
// seed is included in the result along with every node reachable by
// following Children. The result is sorted by node index for determinism.
func (r *Resolver) Descendants(ids []uint32) ([]uint32, error) {
	seeds, err := r.resolveSeeds(ids)
	var warn error
	if err != nil {
		if r.mode == Strict {
			return nil, err
		}
		warn = err
	}

	visited := make(map[int]bool, len(seeds)*4)
	queue := make([]int, 0, len(seeds))
	for _, s := range seeds {
		if !visited[s] {
			visited[s] = true
			queue = append(queue, s)
		}
	}
	for i := 0; i < len(queue); i++ {
		idx := queue[i]
		for _, c := range r.tree.Nodes[idx].Children {
			if !visited[c] {
				visited[c] = true
				queue = append(queue, c)
			}
		}
	}
	return r.sortedIDs(visited), warn
}

// Ancestors computes S↑: each seed plus every ancestor reached by
// repeatedly following Parent until a root is hit.
func (r *Resolver) Ancestors(ids []uint32) ([]uint32, error) {
	seeds, err := r.resolveSeeds(ids)
	var warn error
	if err != nil {
		if r.mode == Strict {
			return nil, err
		}
		warn = err
	}

	visited := make(map[int]bool, len(seeds)*4)
	for _, s := range seeds {
		idx := s
		for idx >= 0 && !visited[idx] {
			visited[idx] = true
			idx = r.tree.Nodes[idx].Parent
		}
	}
	return r.sortedIDs(visited), warn
}

// Combined computes S* ∪ S↑.
func (r *Resolver) Combined(ids []uint32) ([]uint32, error) {
	desc, err := r.Descendants(ids)
	if err != nil && r.mode == Strict {
		return nil, err
	}
	anc, ancErr := r.Ancestors(ids)
	if ancErr != nil && r.mode == Strict {
		return nil, ancErr
	}

	set := make(map[uint32]bool, len(desc)+len(anc))
	for _, id := range desc {
		set[id] = true
	}
	for _, id := range anc {
		set[id] = true
	}
	out := make([]uint32, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	if err != nil {
		return out, err
	}
	return out, ancErr
}

func (r *Resolver) sortedIDs(visited map[int]bool) []uint32 {
	idxs := make([]int, 0, len(visited))
	for idx := range visited {
		idxs = append(idxs, idx)
	}
	sort.Ints(idxs)
	out := make([]uint32, len(idxs))
	for i, idx := range idxs {
		out[i] = r.tree.Nodes[idx].ID
	}
	return out
}

// ByID is a thin point-query passthrough.
func (r *Resolver) ByID(id uint32) (*report.Node, bool) { return r.tree.NodeByID(id) }

// ByName is a case-insensitive exact-match point query.
func (r *Resolver) ByName(name string) []*report.Node { return r.tree.NodesByName(name) }

// SubtreeReport summarizes a node and its descendants: combined covered
// reads, combined assigned reads, node count, and a rank -> count
// histogram.
type SubtreeReport struct {
	RootID        uint32
	NodeCount     int
	ReadsCovered  uint64
	ReadsAssigned uint64
	Percentage    float64
	RankCounts    map[string]int
}

// Subtree builds a SubtreeReport rooted at id.
func (r *Resolver) Subtree(id uint32) (*SubtreeReport, error) {
	root, ok := r.tree.NodeByID(id)
	if !ok {
		return nil, &UnknownSeedsError{IDs: []uint32{id}}
	}

	rep := &SubtreeReport{
		RootID:     id,
		Percentage: root.Percentage,
		RankCounts: make(map[string]int),
	}
	var walk func(idx int)
	walk = func(idx int) {
		n := &r.tree.Nodes[idx]
		rep.NodeCount++
		rep.ReadsAssigned += n.ReadsAssigned
		rep.RankCounts[n.Rank.String()]++
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(root.Index)
	rep.ReadsCovered = root.ReadsCovered
	return rep, nil
}
