package cli

import (
	"flag"
	"math/rand"
	"os"
	"time"

	"github.com/krakenkit/krakenkit/internal/gendata"
	"github.com/krakenkit/krakenkit/internal/krerr"
)

func runGenerateTestData(args []string) error {
	fs := flag.NewFlagSet("generate-test-data", flag.ExitOnError)
	output := fs.String("output", "", "path to write the generated fixture")
	lines := fs.Int("lines", 100, "approximate number of records/lines to generate")
	dataType := fs.String("type", "report", "fixture type: report, log, fasta, or fastq")
	if err := fs.Parse(args); err != nil {
		return krerr.Wrap(krerr.InvalidArgument, "", "parse flags", err)
	}
	if *output == "" {
		return krerr.New(krerr.InvalidArgument, "",
			"usage: krakenkit generate-test-data --output PATH --lines N --type {report|log|fasta|fastq}")
	}

	f, err := os.Create(*output)
	if err != nil {
		return krerr.Wrap(krerr.IoError, *output, "create output", err)
	}
	defer func() { _ = f.Close() }()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	switch *dataType {
	case "report":
		_, err = gendata.GenerateReport(f, gendata.ReportParams{Lines: *lines, Rand: rng})
	case "log":
		_, err = gendata.GenerateLog(f, gendata.LogParams{Lines: *lines, Rand: rng})
	case "fasta":
		err = gendata.GenerateFASTA(f, gendata.SeqParams{Lines: *lines, Rand: rng})
	case "fastq":
		err = gendata.GenerateFASTQ(f, gendata.SeqParams{Lines: *lines, Rand: rng})
	default:
		return krerr.New(krerr.InvalidArgument, "", "unknown --type: "+*dataType)
	}
	if err != nil {
		return krerr.Wrap(krerr.IoError, *output, "generate fixture", err)
	}
	return nil
}
