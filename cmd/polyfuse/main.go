// Command polyfuse fuses several TREC-style run files into a single
// ranked output per topic using one of eleven rank-fusion algorithms.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rmit-ir/polyfuse/internal/cliutil"
	"github.com/rmit-ir/polyfuse/internal/diagnostics"
	"github.com/rmit-ir/polyfuse/internal/fuse"
	"github.com/rmit-ir/polyfuse/internal/output"
	"github.com/rmit-ir/polyfuse/internal/runfile"
)

// weightList collects repeated -w flag occurrences in order, the way
// a flag.Value accumulator is meant to.
type weightList []float64

func (w *weightList) String() string {
	if w == nil {
		return ""
	}
	parts := make([]string, len(*w))
	for i, v := range *w {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (w *weightList) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid weight %q: %w", s, err)
	}
	*w = append(*w, v)
	return nil
}

func main() {
	// -v and -h are accepted wherever they appear, ahead of or after
	// the fusion name, per the usage string in spec.md section 6.
	var positional []string
	verbose := false
	help := false
	for _, a := range os.Args[1:] {
		switch a {
		case "-v", "--v":
			verbose = true
		case "-h", "--help":
			help = true
		default:
			positional = append(positional, a)
		}
	}

	if help {
		printUsage()
		os.Exit(0)
	}
	if len(positional) == 0 {
		printUsage()
		os.Exit(1)
	}

	fusionName := positional[0]
	fusion, ok := fuse.ParseFusion(fusionName)
	if !ok {
		printUsage()
		cliutil.Fatalf("unknown fusion %q", fusionName)
	}

	fs := flag.NewFlagSet("polyfuse", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	depth := fs.Int("d", 1000, "output depth")
	runID := fs.String("r", "", "run identifier written as the last output column")
	tiePrevention := fs.Bool("t", false, "enable tie-prevention scoring")
	normName := fs.String("n", "none", "score normalization: minmax|sum|minsum|std")
	phi := fs.Float64("p", 0.8, "RBC persistence, in (0,1)")
	rrfK := fs.Int("k", 60, "RRF constant")
	snapshotDir := fs.String("snapshot", "", "")

	var weights weightList
	fs.Var(&weights, "w", "per-input-file weight; repeat once per input file")

	if err := fs.Parse(positional[1:]); err != nil {
		printUsage()
		cliutil.Fatalf("%v", err)
	}

	files := fs.Args()
	if len(files) < 2 {
		printUsage()
		cliutil.Fatalf("at least two input run files are required")
	}
	if *depth <= 0 {
		cliutil.Fatalf("output depth must be positive, got %d", *depth)
	}

	norm := fuse.NormNone
	if *normName != "" && *normName != "none" {
		n, ok := fuse.ParseNormalization(*normName)
		if !ok {
			cliutil.Fatalf("unknown normalization %q", *normName)
		}
		norm = n
	}
	if fusion == fuse.RBC && (*phi <= 0 || *phi >= 1) {
		cliutil.Fatalf("RBC persistence -p must be in (0,1), got %v", *phi)
	}

	id := *runID
	if id == "" {
		id = "polyfuse-" + fusion.String()
	}

	engine := fuse.NewEngine(fusion, fuse.EngineConfig{
		Normalization: norm,
		RRFConstant:   *rrfK,
		RBCPersist:    *phi,
	})

	for i, path := range files {
		f, err := os.Open(path)
		if err != nil {
			cliutil.FatalErr("open "+path, err)
		}
		run, err := runfile.Read(f)
		f.Close()
		if err != nil {
			cliutil.FatalErr("parse "+path, err)
		}

		weight := 1.0
		if i < len(weights) {
			weight = weights[i]
		}

		if verbose {
			fmt.Printf("folded %s: %d entries, %d topics, weight %v\n", path, len(run.Entries), len(run.Topics), weight)
		}

		if err := engine.Fold(run, weight); err != nil {
			cliutil.FatalErr("fold "+path, err)
		}
	}

	if *snapshotDir != "" {
		snap, err := diagnostics.NewSnapshotter(*snapshotDir)
		if err != nil {
			cliutil.FatalErr("snapshot", err)
		}
		for _, qid := range engine.Topics() {
			if err := snap.WriteTopic(qid, engine.Accumulator(qid)); err != nil {
				cliutil.FatalErr("snapshot", err)
			}
		}
	}

	w := output.NewWriter(os.Stdout)
	if err := engine.Present(w, id, *depth, *tiePrevention); err != nil {
		cliutil.FatalErr("present", err)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: polyfuse [-v] [-h] <fusion> [options] run1 run2 [run3 ...]

fusions: borda combanz combmax combmed combmin combmnz combsum isr logisr rbc rrf

options:
  -d N     output depth (default 1000)
  -r ID    run identifier written as the last output column (default polyfuse-<fusion>)
  -t       enable tie-prevention scoring
  -n NORM  score normalization for score-based fusions: minmax|sum|minsum|std
  -p PHI   RBC persistence, phi in (0,1) (default 0.8)
  -k N     RRF constant (default 60)
  -w W     per-input-file weight; repeat once per input file in command-line order`)
}
