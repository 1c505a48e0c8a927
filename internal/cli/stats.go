package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/krakenkit/krakenkit/internal/report"
	"github.com/krakenkit/krakenkit/internal/seqfilter"
)

// writeExtractionStats renders extract's --stats-output Markdown: Totals, a
// per-taxid table, and a seed-vs-expansion summary. tree is nil when no
// report was parsed (neither --include-children nor --include-parents was
// given); then, or when a taxid is not in the tree, the name column falls
// back to the bare taxid and the rank column to "-".
func writeExtractionStats(w io.Writer, stats seqfilter.Stats, seeds, expanded []uint32, tree *report.Tree) error {
	seedSet := make(map[uint32]bool, len(seeds))
	for _, id := range seeds {
		seedSet[id] = true
	}

	fmt.Fprintln(w, "# Extraction statistics")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "## Totals")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Total input records: %d\n", stats.TotalInput)
	fmt.Fprintf(w, "- Total extracted records: %d\n", stats.TotalExtracted)
	if stats.TotalInput > 0 {
		fmt.Fprintf(w, "- Overall extraction rate: %.2f%%\n", 100*float64(stats.TotalExtracted)/float64(stats.TotalInput))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Per-taxid")
	fmt.Fprintln(w)
	pct := "%"
	fmt.Fprintln(w, "| taxid | name | rank | extracted | "+pct+"extracted | "+pct+"input | origin |")
	fmt.Fprintln(w, "|---|---|---|---|---|---|---|")

	taxids := make([]uint32, 0, len(stats.PerTaxon))
	for id := range stats.PerTaxon {
		taxids = append(taxids, id)
	}
	sort.Slice(taxids, func(i, j int) bool { return taxids[i] < taxids[j] })

	for _, id := range taxids {
		count := stats.PerTaxon[id]
		name, rank := fmt.Sprintf("%d", id), "-"
		if tree != nil {
			if n, ok := tree.NodeByID(id); ok {
				name, rank = n.Name, n.Rank.String()
			}
		}
		origin := "expansion"
		if seedSet[id] {
			origin = "seed"
		}
		pctExtracted, pctInput := 0.0, 0.0
		if stats.TotalExtracted > 0 {
			pctExtracted = 100 * float64(count) / float64(stats.TotalExtracted)
		}
		if stats.TotalInput > 0 {
			pctInput = 100 * float64(count) / float64(stats.TotalInput)
		}
		fmt.Fprintf(w, "| %d | %s | %s | %d | %.2f%% | %.2f%% | %s |\n",
			id, name, rank, count, pctExtracted, pctInput, origin)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Seed taxa: %d\n", len(seeds))
	fmt.Fprintf(w, "- Expanded taxa: %d\n", len(expanded))
	fmt.Fprintf(w, "- Added by expansion: %d\n", len(expanded)-len(seeds))

	return nil
}
