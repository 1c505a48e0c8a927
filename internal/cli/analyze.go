package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/krakenkit/krakenkit/internal/ioutil"
	"github.com/krakenkit/krakenkit/internal/krerr"
	"github.com/krakenkit/krakenkit/internal/progress"
	"github.com/krakenkit/krakenkit/internal/report"
	"github.com/krakenkit/krakenkit/internal/taxonomy"
)

func runAnalyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	jsonPath := fs.String("json", "", "write the parsed tree as JSON to this path")
	taxID := fs.Uint("tax-id", 0, "print a subtree summary for this taxon id")
	search := fs.String("search", "", "print every node whose name matches (case-insensitive)")
	progressOn := fs.Bool("progress", true, "show a progress bar on stderr")
	if err := fs.Parse(args); err != nil {
		return krerr.Wrap(krerr.InvalidArgument, "", "parse flags", err)
	}
	if fs.NArg() < 1 {
		return krerr.New(krerr.InvalidArgument, "", "usage: krakenkit analyze <report> [flags]")
	}
	path := fs.Arg(0)

	bar := progress.New(ioutil.FileSize(path), "analyze", *progressOn)
	rc, err := ioutil.OpenInput(path)
	if err != nil {
		return krerr.Wrap(krerr.IoError, path, "open report", err)
	}
	defer func() { _ = rc.Close() }()

	tree, err := report.Parse(rc, path)
	bar.Finish()
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d nodes, %d roots\n", path, len(tree.Nodes), len(tree.Roots()))

	if *jsonPath != "" {
		f, err := os.Create(*jsonPath)
		if err != nil {
			return krerr.Wrap(krerr.IoError, *jsonPath, "create json output", err)
		}
		defer func() { _ = f.Close() }()
		if err := tree.WriteJSON(f); err != nil {
			return krerr.Wrap(krerr.IoError, *jsonPath, "write json", err)
		}
	}

	if *taxID != 0 {
		resolver := taxonomy.New(tree, taxonomy.Permissive)
		sub, err := resolver.Subtree(uint32(*taxID))
		if err != nil {
			return krerr.Wrap(krerr.UnknownTaxon, path, "subtree summary", err)
		}
		printSubtree(sub)
	}

	if *search != "" {
		for _, n := range tree.NodesByName(*search) {
			fmt.Printf("%d\t%s\t%s\tdepth=%d\n", n.ID, n.Rank.String(), n.Name, n.Depth)
		}
	}

	return nil
}

func printSubtree(s *taxonomy.SubtreeReport) {
	fmt.Printf("taxon %d: %d nodes, reads_covered=%d reads_assigned=%d (%.2f%%)\n",
		s.RootID, s.NodeCount, s.ReadsCovered, s.ReadsAssigned, s.Percentage)
	for rank, count := range s.RankCounts {
		fmt.Printf("  %s: %d\n", rank, count)
	}
}
