package main

import (
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/AndrewCRMartin/FixAtomNames/cmd/util"
	"github.com/AndrewCRMartin/FixAtomNames/labels"
	"github.com/AndrewCRMartin/FixAtomNames/pdb"
)

// reportOut is where per-residue reports are written.
var reportOut = os.Stderr

type pool struct {
	wg      *sync.WaitGroup
	jobs    chan job
	results chan result
}

type job struct {
	in, out string
}

type result struct {
	job
	stats  labels.Stats
	report string
	err    error
}

func newFixWorkers(conf labels.Config, numWorkers int) pool {
	jobs := make(chan job, numWorkers*2)
	results := make(chan result, numWorkers*2)
	wg := &sync.WaitGroup{}
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- fixFile(conf, j)
			}
		}()
	}
	return pool{wg, jobs, results}
}

func (p pool) done() {
	close(p.jobs)
	p.wg.Wait() // wait for workers to finish sending results
	close(p.results)
}

func (p pool) enqueue(j job) {
	p.jobs <- j
}

// fixFile reads, fixes and writes a single PDB file. Each file gets its own
// fixer and report buffer, so that reports from different files do not
// interleave.
func fixFile(conf labels.Config, j job) result {
	res := result{job: j}
	if _, err := os.Stat(j.out); err == nil && !flagOverwrite {
		res.err = fmt.Errorf("'%s' already exists; use '-overwrite'", j.out)
		return res
	}

	entry, err := pdb.New(j.in)
	if err != nil {
		res.err = fmt.Errorf("Could not read PDB file '%s': %s", j.in, err)
		return res
	}

	buf := new(bytes.Buffer)
	conf.Reporter = labels.NewTextReporter(buf, util.FlagReport)
	res.stats = labels.NewFixer(conf).Fix(util.Residues(entry))
	res.report = buf.String()

	f, err := os.Create(j.out)
	if err != nil {
		res.err = err
		return res
	}
	if err := entry.Write(f); err != nil {
		f.Close()
		res.err = fmt.Errorf("Could not write PDB file '%s': %s", j.out, err)
		return res
	}
	if err := f.Close(); err != nil {
		res.err = fmt.Errorf("Could not close PDB file '%s': %s", j.out, err)
	}
	return res
}
