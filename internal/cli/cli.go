// Package cli implements krakenkit's four-verb command surface: a flat
// switch over args[0], each verb owning its own flag.FlagSet rather than a
// framework.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/krakenkit/krakenkit/internal/krerr"
)

// biomTimestamp is stamped once at process start so BIOM output is
// deterministic within a single invocation.
var biomTimestamp = time.Now().Format(time.RFC3339)

// Execute parses args[0] as the verb and dispatches to its handler. It
// exits the process with the exit code assigned to the resulting error's
// Kind (0 on success).
func Execute(args []string) {
	if len(args) < 1 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch args[0] {
	case "analyze":
		err = runAnalyze(args[1:])
	case "extract":
		err = runExtract(args[1:])
	case "abundance-matrix":
		err = runAbundanceMatrix(args[1:])
	case "generate-test-data":
		err = runGenerateTestData(args[1:])
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(krerr.Code(err))
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "krakenkit - Kraken2 report/log/sequence toolkit")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  krakenkit <command> [options]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  analyze             Parse a report, optionally emit JSON or a subtree summary")
	fmt.Fprintln(os.Stderr, "  extract             Filter a FASTA/FASTQ file against a Kraken log + taxon set")
	fmt.Fprintln(os.Stderr, "  abundance-matrix    Aggregate many reports into a rank-level abundance matrix")
	fmt.Fprintln(os.Stderr, "  generate-test-data  Emit a synthetic report, log, FASTA, or FASTQ fixture")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Run 'krakenkit <command> -h' for command-specific options.")
}
