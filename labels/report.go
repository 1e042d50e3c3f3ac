package labels

import (
	"fmt"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// Evaluation is the outcome of testing one residue against its rule.
type Evaluation struct {
	Type          string
	Chain         byte
	SequenceNum   int
	InsertionCode byte
	Class         Class

	// Tor1 and Tor2 are the torsions to atoms A and B of the rule, measured
	// before any swap.
	Tor1, Tor2 float64

	// Diff is AngleDiff(Tor1, Tor2). It is only set for SP3Branch residues.
	Diff float64

	// Swapped is true if the pair was found to be mislabelled.
	Swapped bool

	// DryRun is true if the swap was not carried out.
	DryRun bool
}

// Position returns the residue identifier as chain, sequence number and
// insertion code, e.g., "A42" or "B100A".
func (ev Evaluation) Position() string {
	pos := fmt.Sprintf("%s%d", identByte(ev.Chain), ev.SequenceNum)
	if ev.InsertionCode != ' ' && ev.InsertionCode != 0 {
		pos += string(ev.InsertionCode)
	}
	return pos
}

// Status returns "OK" if nothing was wrong with the residue, "SWAPPED" if it
// was relabelled and "SWAP NEEDED" if it was mislabelled in a dry run.
func (ev Evaluation) Status() string {
	switch {
	case !ev.Swapped:
		return "OK"
	case ev.DryRun:
		return "SWAP NEEDED"
	}
	return "SWAPPED"
}

// String returns a single report line for the evaluation.
func (ev Evaluation) String() string {
	if ev.Class == SP3Branch {
		return fmt.Sprintf("%-3s %-7s Tor1: %8.3f Tor2: %8.3f Diff: %8.3f %s",
			ev.Type, ev.Position(), ev.Tor1, ev.Tor2, ev.Diff, ev.Status())
	}
	return fmt.Sprintf("%-3s %-7s Tor1: %8.3f Tor2: %8.3f %s",
		ev.Type, ev.Position(), ev.Tor1, ev.Tor2, ev.Status())
}

func identByte(b byte) string {
	if b == 0 {
		return " "
	}
	return string(b)
}

// Reporter receives evaluations from a Fixer, in the order of the residues
// in the structure. Reporting never changes the outcome of a fix.
type Reporter interface {
	Report(ev Evaluation)
}

// Verbosity levels for a TextReporter.
const (
	Silent      = 0
	ReportSwaps = 1
	ReportAll   = 2
)

// TextReporter writes one line per evaluation to a writer.
type TextReporter struct {
	w         io.Writer
	verbosity int
	err       error
}

// NewTextReporter creates a reporter writing to w. With verbosity Silent,
// nothing is written. With ReportSwaps, only mislabelled residues are
// written. With ReportAll (or higher), every evaluated residue is written.
func NewTextReporter(w io.Writer, verbosity int) *TextReporter {
	return &TextReporter{w: w, verbosity: verbosity}
}

func (r *TextReporter) Report(ev Evaluation) {
	if r.err != nil {
		return
	}
	switch {
	case r.verbosity <= Silent:
		return
	case r.verbosity == ReportSwaps && !ev.Swapped:
		return
	}
	_, r.err = fmt.Fprintln(r.w, ev.String())
}

// Err returns the first error encountered while writing, if any. Once an
// error occurs, all subsequent reports are dropped.
func (r *TextReporter) Err() error {
	return r.err
}

// YAMLReporter collects evaluations and writes them as a single YAML
// document when Close is called.
type YAMLReporter struct {
	w       io.Writer
	name    string
	records []yamlEvaluation
}

type yamlDocument struct {
	Structure string           `yaml:"structure"`
	Residues  []yamlEvaluation `yaml:"residues"`
}

type yamlEvaluation struct {
	Residue  string   `yaml:"residue"`
	Position string   `yaml:"position"`
	Class    string   `yaml:"class"`
	Tor1     float64  `yaml:"tor1"`
	Tor2     float64  `yaml:"tor2"`
	Diff     *float64 `yaml:"diff,omitempty"`
	Status   string   `yaml:"status"`
}

// NewYAMLReporter creates a reporter that writes to w. The name identifies
// the structure in the output document.
func NewYAMLReporter(w io.Writer, name string) *YAMLReporter {
	return &YAMLReporter{w: w, name: name}
}

func (r *YAMLReporter) Report(ev Evaluation) {
	rec := yamlEvaluation{
		Residue:  ev.Type,
		Position: ev.Position(),
		Class:    ev.Class.String(),
		Tor1:     round3(ev.Tor1),
		Tor2:     round3(ev.Tor2),
		Status:   ev.Status(),
	}
	if ev.Class == SP3Branch {
		diff := round3(ev.Diff)
		rec.Diff = &diff
	}
	r.records = append(r.records, rec)
}

// Close encodes every evaluation received so far.
func (r *YAMLReporter) Close() error {
	enc := yaml.NewEncoder(r.w)
	enc.SetIndent(2)
	if err := enc.Encode(yamlDocument{r.name, r.records}); err != nil {
		return err
	}
	return enc.Close()
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}

// MultiReporter sends every evaluation to each of its reporters in turn.
type MultiReporter []Reporter

func (rs MultiReporter) Report(ev Evaluation) {
	for _, r := range rs {
		r.Report(ev)
	}
}
