// fixatomlabels-batch relabels the equivalent side-chain atoms of many PDB
// files at once. Each fixed file is written to out-dir with the same base
// name as its input (without any '.gz' extension). Files that cannot be read
// or written are reported and skipped; they never stop the batch.
package main

import (
	"flag"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/AndrewCRMartin/FixAtomNames/cmd/util"
)

var flagOverwrite = false

func init() {
	flag.BoolVar(&flagOverwrite, "overwrite", flagOverwrite,
		"When set, existing files in out-dir will be overwritten.")
}

func main() {
	util.FlagUse("cpu", "ile", "v", "verbose")
	util.FlagParse("out-dir pdb-file [pdb-file ...]", "")
	util.AssertLeastNArg(2)

	outDir := util.Arg(0)
	util.AssertIsDir(outDir)

	jobs, err := makeJobs(outDir, util.Args()[1:])
	util.Assert(err)

	pool := newFixWorkers(util.FixerConfig(), max(1, util.FlagCpu))
	progress := util.NewProgress(len(jobs))
	doneReporting := reporter(pool, progress)

	for _, j := range jobs {
		pool.enqueue(j)
	}
	pool.done()
	<-doneReporting
	progress.Close()
}

// reporter prints the per-residue report of every finished file, in the
// order in which files finish, and tells the progress bar about it.
func reporter(pool pool, progress util.Progress) chan struct{} {
	quit := make(chan struct{})
	go func() {
		total, relabelled := 0, 0
		for res := range pool.results {
			if res.err == nil {
				writeReport(reportOut, res)
				total++
				relabelled += res.stats.Swapped
			}
			progress.JobDone(res.err)
		}
		util.Verbosef("%d files fixed, %d residues relabelled.",
			total, relabelled)
		quit <- struct{}{}
	}()
	return quit
}

// writeReport writes the per-residue report of a finished file, headed by the
// name of the input file. Nothing is written for an empty report.
func writeReport(w io.Writer, res result) {
	if len(res.report) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n%s", res.in, res.report)
}

// makeJobs pairs every input file with its output path. Two inputs that would
// be written to the same output file are an error.
func makeJobs(outDir string, pdbFiles []string) ([]job, error) {
	jobs := make([]job, len(pdbFiles))
	seen := make(map[string]string, len(pdbFiles))
	for i, pdbFile := range pdbFiles {
		out := outPath(outDir, pdbFile)
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("'%s' and '%s' would both be written to '%s'",
				prev, pdbFile, out)
		}
		seen[out] = pdbFile
		jobs[i] = job{pdbFile, out}
	}
	return jobs, nil
}

func outPath(outDir, pdbFile string) string {
	base := path.Base(pdbFile)
	base = strings.TrimSuffix(base, ".gz")
	return path.Join(outDir, base)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
