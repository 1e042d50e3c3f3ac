package labels

import (
	"github.com/TuftsBCB/structure"
)

// Residue is the view of a residue that the fixer needs. Coordinates are
// mutated through the pointers returned by Atom.
type Residue interface {
	// Type returns the three letter residue name, e.g., "LEU".
	Type() string

	// Ident returns the chain identifier, sequence number and insertion
	// code of the residue. It is only used for reporting.
	Ident() (chain byte, seqNum int, iCode byte)

	// Atom returns the coordinates of the atom with the given name, or nil
	// if the residue has no such atom.
	Atom(name string) *structure.Coords
}

// Structure is an ordered sequence of residues.
type Structure interface {
	Len() int
	Residue(i int) Residue
}

// Residues is the simplest Structure: a slice of residues in chain order.
type Residues []Residue

func (rs Residues) Len() int              { return len(rs) }
func (rs Residues) Residue(i int) Residue { return rs[i] }

// Config controls a Fixer.
type Config struct {
	// FixIle enables relabelling of isoleucine CG1/CG2.
	FixIle bool

	// DryRun evaluates and reports every residue without moving any atom.
	DryRun bool

	// Reporter, when not nil, receives one Evaluation for every residue
	// that had all of the atoms needed to be evaluated.
	Reporter Reporter
}

// DefaultConfig returns the configuration used by the command line tools when
// no flags are given.
func DefaultConfig() Config {
	return Config{FixIle: true}
}

// Stats summarizes a single pass of a Fixer over a structure.
type Stats struct {
	// Residues is the total number of residues seen.
	Residues int

	// Evaluated is the number of fixable residues with complete geometry.
	Evaluated int

	// Swapped is the number of evaluated residues found to be mislabelled.
	// (In a dry run, nothing is actually swapped.)
	Swapped int

	// Skipped is the number of fixable residues with missing atoms.
	Skipped int
}

// Fixer relabels equivalent side-chain atoms. A Fixer holds no state between
// calls to Fix.
type Fixer struct {
	conf Config
}

// NewFixer creates a fixer with the given configuration.
func NewFixer(conf Config) *Fixer {
	return &Fixer{conf}
}

// Fix visits every residue of s in order and swaps the coordinates of any
// mislabelled pair. Residues without a rule, or with missing atoms, are left
// alone.
//
// Fix panics if s is nil.
func (f *Fixer) Fix(s Structure) Stats {
	if s == nil {
		panic("labels: Fix called with a nil structure")
	}

	var stats Stats
	for i := 0; i < s.Len(); i++ {
		stats.Residues++

		rule, ok := f.rule(s.Residue(i).Type())
		if !ok {
			continue
		}
		ev, ok := f.fixResidue(s.Residue(i), rule)
		if !ok {
			stats.Skipped++
			continue
		}
		stats.Evaluated++
		if ev.Swapped {
			stats.Swapped++
		}
		if f.conf.Reporter != nil {
			f.conf.Reporter.Report(ev)
		}
	}
	return stats
}

// Check evaluates every residue of s as a dry run would and sends each
// evaluation to r. No coordinates are changed. Running Check after Fix
// confirms that every evaluated residue now reads OK.
func (f *Fixer) Check(s Structure, r Reporter) Stats {
	conf := f.conf
	conf.DryRun = true
	conf.Reporter = r
	return NewFixer(conf).Fix(s)
}

// rule returns the rule for a residue name, honoring the ILE policy.
func (f *Fixer) rule(resType string) (Rule, bool) {
	if resType == "ILE" && !f.conf.FixIle {
		return Rule{}, false
	}
	rule, ok := Rules[resType]
	return rule, ok
}

// sideChain holds the atoms of one residue that take part in a rule.
type sideChain struct {
	anchor       [3]*structure.Coords
	a, b         *structure.Coords
	ringA, ringB *structure.Coords
}

func findSideChain(r Residue, rule Rule) sideChain {
	sc := sideChain{
		a: r.Atom(rule.A),
		b: r.Atom(rule.B),
	}
	for i, name := range rule.Anchor {
		sc.anchor[i] = r.Atom(name)
	}
	if rule.HasRing() {
		sc.ringA, sc.ringB = r.Atom(rule.RingA), r.Atom(rule.RingB)
	}
	return sc
}

// fixResidue evaluates a single residue. The returned bool is false when the
// residue lacks an atom needed by the rule, in which case nothing is changed.
func (f *Fixer) fixResidue(r Residue, rule Rule) (Evaluation, bool) {
	sc := findSideChain(r, rule)
	tor1 := Torsion(sc.anchor[0], sc.anchor[1], sc.anchor[2], sc.a)
	tor2 := Torsion(sc.anchor[0], sc.anchor[1], sc.anchor[2], sc.b)
	if !isTorsion(tor1) || !isTorsion(tor2) {
		return Evaluation{}, false
	}

	chain, seqNum, iCode := r.Ident()
	ev := Evaluation{
		Type:          r.Type(),
		Chain:         chain,
		SequenceNum:   seqNum,
		InsertionCode: iCode,
		Class:         rule.Class,
		Tor1:          tor1,
		Tor2:          tor2,
		Swapped:       NeedSwap(rule.Class, tor1, tor2),
		DryRun:        f.conf.DryRun,
	}
	if rule.Class == SP3Branch {
		ev.Diff = AngleDiff(tor1, tor2)
	}
	if ev.Swapped && !f.conf.DryRun {
		SwapCoords(sc.a, sc.b)
		SwapCoords(sc.ringA, sc.ringB)
	}
	return ev, true
}
