package main

import (
	"flag"
	"io"
	"os"

	"github.com/AndrewCRMartin/FixAtomNames/cmd/util"
	"github.com/AndrewCRMartin/FixAtomNames/labels"
	"github.com/AndrewCRMartin/FixAtomNames/pdb"
	"github.com/AndrewCRMartin/FixAtomNames/rmsd"
)

var (
	flagYAML  = ""
	flagRef   = ""
	flagAfter = false
)

func init() {
	flag.StringVar(&flagYAML, "yaml", flagYAML,
		"When set, a YAML report of every residue evaluated is written to\n"+
			"this file.")
	flag.StringVar(&flagRef, "ref", flagRef,
		"When set, the all-atom RMSD against this reference PDB file is\n"+
			"printed before and after fixing.")
	flag.BoolVar(&flagAfter, "after", flagAfter,
		"When set, every residue is evaluated again after fixing and\n"+
			"reported to stderr. All of them should read OK.")

	util.FlagUse("v", "ile", "n", "verbose")
	util.FlagParse("in-pdb-file [out-pdb-file]", "")
	if util.NArg() < 1 || util.NArg() > 2 {
		util.Usage()
	}
}

func main() {
	entry := util.PDBRead(util.Arg(0))

	var ref *pdb.Entry
	if len(flagRef) > 0 {
		ref = util.PDBRead(flagRef)
		printRMSD("before", ref, entry)
	}

	conf := util.FixerConfig()
	text := labels.NewTextReporter(os.Stderr, util.FlagReport)
	reporters := labels.MultiReporter{text}

	var yamlOut *labels.YAMLReporter
	if len(flagYAML) > 0 {
		f := util.CreateFile(flagYAML)
		defer f.Close()
		yamlOut = labels.NewYAMLReporter(f, entry.Path)
		reporters = append(reporters, yamlOut)
	}
	conf.Reporter = reporters

	if flagAfter && util.FlagReport > labels.Silent {
		util.Warnf("Before fixing:")
	}
	fixer := labels.NewFixer(conf)
	stats := fixer.Fix(util.Residues(entry))
	util.Warning(text.Err(), "Could not write report")
	if flagAfter {
		util.Warnf("After fixing:")
		after := labels.NewTextReporter(os.Stderr, labels.ReportAll)
		fixer.Check(util.Residues(entry), after)
		util.Warning(after.Err(), "Could not write report")
	}
	if yamlOut != nil {
		util.Assert(yamlOut.Close(), "Could not write YAML report '%s'",
			flagYAML)
	}
	util.Verbosef("%s: %d residues, %d evaluated, %d relabelled, "+
		"%d skipped (missing atoms).", entry.Name(),
		stats.Residues, stats.Evaluated, stats.Swapped, stats.Skipped)

	if ref != nil {
		printRMSD("after", ref, entry)
	}

	var out io.Writer = os.Stdout
	if util.NArg() == 2 {
		f := util.CreateFile(util.Arg(1))
		defer f.Close()
		out = f
	}
	util.PDBWrite(out, entry)
}

func printRMSD(when string, ref, entry *pdb.Entry) {
	r, n, err := rmsd.PDB(ref, entry)
	if util.Warning(err, "Could not compare '%s' with '%s'",
		entry.Name(), ref.Name()) {
		return
	}
	util.Warnf("RMSD %s fixing: %0.4f (%d atoms)", when, r, n)
}
