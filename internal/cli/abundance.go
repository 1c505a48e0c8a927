package cli

import (
	"flag"
	"path/filepath"

	"github.com/krakenkit/krakenkit/internal/abundance"
	"github.com/krakenkit/krakenkit/internal/ioutil"
	"github.com/krakenkit/krakenkit/internal/krerr"
	"github.com/krakenkit/krakenkit/internal/progress"
	"github.com/krakenkit/krakenkit/internal/report"
)

func runAbundanceMatrix(args []string) error {
	fs := flag.NewFlagSet("abundance-matrix", flag.ExitOnError)
	output := fs.String("output", "", "path to write the matrix")
	level := fs.String("level", "S", "taxonomic rank letter (S,G,F,O,C,P,K,D,R,U)")
	minAbundance := fs.Float64("min-abundance", 0, "drop rows whose maximum sample value is below this")
	normalize := fs.Bool("normalize", false, "rescale each sample column to percentages of its own total")
	proportions := fs.Bool("proportions", false, "use each node's report percentage as the cell value")
	absoluteCounts := fs.Bool("absolute-counts", false, "use reads_covered as the cell value (default)")
	includeUnclassified := fs.Bool("include-unclassified", false, "add a synthetic row for taxon id 0")
	format := fs.String("format", "tsv", "output format: tsv, biom, or arrow")
	progressOn := fs.Bool("progress", true, "show a progress bar on stderr")
	if err := fs.Parse(args); err != nil {
		return krerr.Wrap(krerr.InvalidArgument, "", "parse flags", err)
	}
	if fs.NArg() < 1 || *output == "" {
		return krerr.New(krerr.InvalidArgument, "",
			"usage: krakenkit abundance-matrix <report...> --output PATH [flags]")
	}
	if *proportions && *absoluteCounts {
		return krerr.New(krerr.InvalidArgument, "", "--proportions and --absolute-counts are mutually exclusive")
	}

	value := abundance.ReadsCovered
	if *proportions {
		value = abundance.Percentage
	}

	m := abundance.New(abundance.Options{
		Rank:                (*level)[0],
		Value:               value,
		MinAbundance:        *minAbundance,
		IncludeUnclassified: *includeUnclassified,
	})

	bar := progress.New(int64(fs.NArg()), "abundance-matrix", *progressOn)
	for _, path := range fs.Args() {
		rc, err := ioutil.OpenInput(path)
		if err != nil {
			return krerr.Wrap(krerr.IoError, path, "open report", err)
		}
		tree, err := report.Parse(rc, path)
		_ = rc.Close()
		if err != nil {
			return err
		}
		m.AddSample(tree, filepath.Base(path))
		bar.Add(1)
	}
	bar.Finish()

	if *normalize {
		m.ToProportions()
	}

	f, err := ioutil.CreateOutput(*output, 0)
	if err != nil {
		return krerr.Wrap(krerr.IoError, *output, "create output", err)
	}

	switch *format {
	case "tsv":
		err = m.WriteTSV(f)
	case "biom":
		err = m.WriteBIOM(f, "krakenkit_"+filepath.Base(*output), biomTimestamp)
	case "arrow":
		err = m.WriteArrow(f)
	default:
		_ = f.Close()
		return krerr.New(krerr.InvalidArgument, "", "unknown --format: "+*format)
	}
	if err != nil {
		_ = f.Close()
		return krerr.Wrap(krerr.IoError, *output, "write matrix", err)
	}
	if err := f.Close(); err != nil {
		return krerr.Wrap(krerr.IoError, *output, "close output", err)
	}
	return nil
}
