// Package abundance aggregates many parsed reports into a taxon-by-sample
// matrix at a chosen rank: a name -> sample -> value map plus a writer that
// keeps samples in input order and sorts taxa by name.
package abundance

import (
	"sort"

	"github.com/krakenkit/krakenkit/internal/report"
)

// Value selects which per-node field feeds the matrix cells.
type Value int

const (
	ReadsCovered Value = iota
	Percentage
)

// Matrix accumulates one column per sample at a fixed taxonomic rank.
type Matrix struct {
	rank                byte
	value               Value
	minAbundance        float64
	includeUnclassified bool

	samples []string
	rows    map[string]*row
}

type row struct {
	taxid uint32
	rank  string
	depth int
	cells map[string]float64
	max   float64
}

// Options configures matrix construction.
type Options struct {
	Rank                byte // one of S,G,F,O,C,P,K,D,R,U
	Value               Value
	MinAbundance        float64
	IncludeUnclassified bool
}

// New returns an empty matrix ready to accept samples via AddSample.
func New(opts Options) *Matrix {
	return &Matrix{
		rank:                opts.Rank,
		value:               opts.Value,
		minAbundance:        opts.MinAbundance,
		includeUnclassified: opts.IncludeUnclassified,
		rows:                make(map[string]*row),
	}
}

// AddSample walks tree, collecting every node whose rank letter matches the
// matrix's configured rank, keyed by name, into sample's column. Taxon id 0
// is never collected by rank; it is added as the "unclassified" row only
// when IncludeUnclassified is set. A node
// below minAbundance does not, by itself, suppress an existing row: the row
// survives if any sample clears the threshold.
func (m *Matrix) AddSample(tree *report.Tree, sample string) {
	m.samples = append(m.samples, sample)

	for i := range tree.Nodes {
		n := &tree.Nodes[i]
		if n.ID == 0 {
			continue // unclassified handled separately below
		}
		if n.Rank.Letter() != m.rank {
			continue
		}
		m.addCell(n.Name, n, sample)
	}

	if m.includeUnclassified {
		if u, ok := tree.Unclassified(); ok {
			m.addCell("unclassified", u, sample)
		}
	}
}

func (m *Matrix) addCell(name string, n *report.Node, sample string) {
	r, ok := m.rows[name]
	if !ok {
		r = &row{taxid: n.ID, rank: n.Rank.String(), depth: n.Depth, cells: make(map[string]float64)}
		m.rows[name] = r
	}
	var v float64
	switch m.value {
	case Percentage:
		v = n.Percentage
	default:
		v = float64(n.ReadsCovered)
	}
	r.cells[sample] = v
	if v > r.max {
		r.max = v
	}
}

// ToProportions rescales every sample column so each cell becomes a
// percentage of that sample's column total, then recomputes each row's
// maximum for the min-abundance threshold.
func (m *Matrix) ToProportions() {
	totals := make(map[string]float64, len(m.samples))
	for _, r := range m.rows {
		for s, v := range r.cells {
			totals[s] += v
		}
	}
	for _, r := range m.rows {
		for s, v := range r.cells {
			total := totals[s]
			if total == 0 {
				continue
			}
			r.cells[s] = (v / total) * 100.0
		}
	}
	for _, r := range m.rows {
		r.max = 0
		for _, v := range r.cells {
			if v > r.max {
				r.max = v
			}
		}
	}
}

// sortedRowNames returns row names passing the min-abundance threshold, in
// stable lexicographic order.
func (m *Matrix) sortedRowNames() []string {
	names := make([]string, 0, len(m.rows))
	for name, r := range m.rows {
		if r.max < m.minAbundance {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Cell returns the matrix value for name/sample, or 0 if absent.
func (m *Matrix) Cell(name, sample string) float64 {
	r, ok := m.rows[name]
	if !ok {
		return 0
	}
	return r.cells[sample]
}
