package cli

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/krakenkit/krakenkit/internal/ioutil"
	"github.com/krakenkit/krakenkit/internal/kraklog"
	"github.com/krakenkit/krakenkit/internal/krerr"
	"github.com/krakenkit/krakenkit/internal/logx"
	"github.com/krakenkit/krakenkit/internal/progress"
	"github.com/krakenkit/krakenkit/internal/report"
	"github.com/krakenkit/krakenkit/internal/seqfilter"
	"github.com/krakenkit/krakenkit/internal/taxonomy"
)

func runExtract(args []string) error {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	taxidsCSV := fs.String("taxids", "", "comma-separated seed taxon ids")
	output := fs.String("output", "", "path to write filtered sequences")
	reportPath := fs.String("report", "", "report path, required for --include-children/--include-parents")
	includeChildren := fs.Bool("include-children", false, "expand seeds to their descendant closure")
	includeParents := fs.Bool("include-parents", false, "expand seeds to their ancestor closure")
	exclude := fs.Bool("exclude", false, "keep records NOT classified into the taxon set")
	statsOutput := fs.String("stats-output", "", "write a Markdown extraction report to this path")
	unordered := fs.Bool("unordered", false, "write output chunks in completion order instead of input order")
	workers := fs.Int("workers", 0, "worker pool size (0 = GOMAXPROCS)")
	progressOn := fs.Bool("progress", true, "show a progress bar on stderr")
	if err := fs.Parse(args); err != nil {
		return krerr.Wrap(krerr.InvalidArgument, "", "parse flags", err)
	}
	if fs.NArg() < 2 || *taxidsCSV == "" || *output == "" {
		return krerr.New(krerr.InvalidArgument, "",
			"usage: krakenkit extract <sequence> <log> --taxids CSV --output PATH [flags]")
	}
	seqPath, logPath := fs.Arg(0), fs.Arg(1)

	seeds, err := parseTaxidCSV(*taxidsCSV)
	if err != nil {
		return err
	}

	var tree *report.Tree
	expanded := seeds
	if *includeChildren || *includeParents {
		if *reportPath == "" {
			return krerr.New(krerr.InvalidArgument, "", "--include-children/--include-parents require --report")
		}
		rc, err := ioutil.OpenInput(*reportPath)
		if err != nil {
			return krerr.Wrap(krerr.IoError, *reportPath, "open report", err)
		}
		tree, err = report.Parse(rc, *reportPath)
		_ = rc.Close()
		if err != nil {
			return err
		}
		resolver := taxonomy.New(tree, taxonomy.Permissive)
		switch {
		case *includeChildren && *includeParents:
			expanded, err = resolver.Combined(seeds)
		case *includeChildren:
			expanded, err = resolver.Descendants(seeds)
		default:
			expanded, err = resolver.Ancestors(seeds)
		}
		if unk, ok := err.(*taxonomy.UnknownSeedsError); ok {
			logx.Warnf("%s", unk.Error())
		} else if err != nil {
			return err
		}
	}

	taxa := kraklog.TaxonSet(expanded)
	polarity := kraklog.Include
	if *exclude {
		polarity = kraklog.Exclude
	}

	logFile, err := ioutil.OpenInput(logPath)
	if err != nil {
		return krerr.Wrap(krerr.IoError, logPath, "open log", err)
	}
	plan, err := kraklog.Build(logFile, logPath, taxa, kraklog.Options{
		Polarity:     polarity,
		KeepTaxonMap: *statsOutput != "",
	})
	_ = logFile.Close()
	if err != nil {
		return err
	}

	data, err := ioutil.ReadAll(seqPath)
	if err != nil {
		return krerr.Wrap(krerr.IoError, seqPath, "read sequence file", err)
	}

	var cancel atomic.Bool
	bar := progress.New(int64(len(data)), "extract", *progressOn)
	res, err := seqfilter.Run(data, seqPath, plan.Included, plan.SeqToTaxa, seqfilter.Options{
		Workers:   *workers,
		Unordered: *unordered,
		Cancel:    &cancel,
	})
	bar.Add(int64(len(data)))
	bar.Finish()
	if err != nil {
		return err
	}

	out, err := ioutil.CreateOutput(*output, *workers)
	if err != nil {
		return krerr.Wrap(krerr.IoError, *output, "create output", err)
	}
	if _, err := out.Write(res.Output); err != nil {
		_ = out.Close()
		return krerr.Wrap(krerr.IoError, *output, "write output", err)
	}
	if err := out.Close(); err != nil {
		return krerr.Wrap(krerr.IoError, *output, "close output", err)
	}

	if *statsOutput != "" {
		f, err := os.Create(*statsOutput)
		if err != nil {
			return krerr.Wrap(krerr.IoError, *statsOutput, "create stats output", err)
		}
		defer func() { _ = f.Close() }()
		return writeExtractionStats(f, res.Stats, seeds, expanded, tree)
	}
	return nil
}

func parseTaxidCSV(csv string) ([]uint32, error) {
	parts := strings.Split(csv, ",")
	out := make([]uint32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, krerr.Wrap(krerr.InvalidArgument, "", "bad --taxids entry: "+p, err)
		}
		out = append(out, uint32(v))
	}
	if len(out) == 0 {
		return nil, krerr.New(krerr.InvalidArgument, "", "--taxids must name at least one taxon id")
	}
	return out, nil
}
