package labels

import (
	"sort"
	"testing"

	"github.com/TuftsBCB/structure"
)

type testResidue struct {
	name  string
	num   int
	atoms map[string]*structure.Coords
}

func newTestResidue(name string, num int) *testResidue {
	return &testResidue{
		name:  name,
		num:   num,
		atoms: make(map[string]*structure.Coords),
	}
}

func (r *testResidue) Type() string { return r.name }

func (r *testResidue) Ident() (byte, int, byte) { return 'A', r.num, ' ' }

func (r *testResidue) Atom(name string) *structure.Coords {
	return r.atoms[name]
}

func (r *testResidue) add(name string, c structure.Coords) *testResidue {
	r.atoms[name] = &c
	return r
}

func (r *testResidue) remove(name string) *testResidue {
	delete(r.atoms, name)
	return r
}

// snapshot copies the coordinates of every atom, keyed by atom name.
func (r *testResidue) snapshot() map[string]structure.Coords {
	snap := make(map[string]structure.Coords, len(r.atoms))
	for name, c := range r.atoms {
		snap[name] = *c
	}
	return snap
}

// residueWithTorsions builds a residue of the given type whose rule atoms
// give the torsions tor1 and tor2. A backbone O and (for rings) CE1/CE2/CZ
// are added too, so that it can be checked that they do not move.
func residueWithTorsions(name string, num int,
	tor1, tor2 float64) *testResidue {

	rule := Rules[name]
	r := newTestResidue(name, num)
	r.add(rule.Anchor[0], anchor1)
	r.add(rule.Anchor[1], anchor2)
	r.add(rule.Anchor[2], anchor3)
	r.add(rule.A, atTorsion(tor1))
	r.add(rule.B, atTorsion(tor2))
	if rule.HasRing() {
		r.add(rule.RingA, structure.Coords{X: 5, Y: 6, Z: 7})
		r.add(rule.RingB, structure.Coords{X: -5, Y: -6, Z: -7})
		r.add("CZ", structure.Coords{X: 0, Y: 9, Z: 0})
	}
	if _, ok := r.atoms["O"]; !ok {
		r.add("O", structure.Coords{X: -1, Y: -1, Z: -1})
	}
	return r
}

// mislabelled returns one wrongly labelled residue of every fixable type.
func mislabelled() []*testResidue {
	return []*testResidue{
		residueWithTorsions("LEU", 1, 170, 50),
		residueWithTorsions("VAL", 2, -60, -180),
		residueWithTorsions("ILE", 3, 60, -60),
		residueWithTorsions("PHE", 4, 100, -80),
		residueWithTorsions("TYR", 5, -95, 85),
		residueWithTorsions("ASP", 6, 150, -30),
		residueWithTorsions("GLU", 7, -140, 40),
		residueWithTorsions("ARG", 8, 179, -1),
	}
}

func structureOf(rs []*testResidue) Residues {
	s := make(Residues, len(rs))
	for i := range rs {
		s[i] = rs[i]
	}
	return s
}

func TestFixLeucine(t *testing.T) {
	leu := residueWithTorsions("LEU", 1, 170, 50)
	before := leu.snapshot()

	stats := NewFixer(DefaultConfig()).Fix(Residues{leu})
	if stats.Swapped != 1 || stats.Evaluated != 1 {
		t.Fatalf("Expected one evaluated and swapped residue, but got %+v.",
			stats)
	}

	after := leu.snapshot()
	if after["CD1"] != before["CD2"] || after["CD2"] != before["CD1"] {
		t.Fatalf("CD1/CD2 were not exchanged: before %v, after %v.",
			before, after)
	}
	for _, name := range []string{"CA", "CB", "CG", "O"} {
		if after[name] != before[name] {
			t.Fatalf("Atom %s moved from %v to %v.",
				name, before[name], after[name])
		}
	}
}

func TestFixLeucineCorrect(t *testing.T) {
	leu := residueWithTorsions("LEU", 1, 170, -70)
	before := leu.snapshot()

	stats := NewFixer(DefaultConfig()).Fix(Residues{leu})
	if stats.Swapped != 0 || stats.Evaluated != 1 {
		t.Fatalf("Expected one evaluated residue and no swaps, but got %+v.",
			stats)
	}
	assertUnchanged(t, leu, before)
}

func TestFixAllTypes(t *testing.T) {
	rs := mislabelled()
	befores := make([]map[string]structure.Coords, len(rs))
	for i, r := range rs {
		befores[i] = r.snapshot()
	}

	stats := NewFixer(DefaultConfig()).Fix(structureOf(rs))
	if stats.Swapped != len(rs) {
		t.Fatalf("Expected %d swaps but got %+v.", len(rs), stats)
	}
	for i, r := range rs {
		rule := Rules[r.name]
		after := r.snapshot()
		if after[rule.A] != befores[i][rule.B] ||
			after[rule.B] != befores[i][rule.A] {
			t.Fatalf("%s: %s/%s were not exchanged.", r.name, rule.A, rule.B)
		}
	}
}

func TestIdempotent(t *testing.T) {
	rs := mislabelled()
	rs = append(rs,
		residueWithTorsions("LEU", 9, 170, -70),
		residueWithTorsions("ASP", 10, 5, 175))
	fixer := NewFixer(DefaultConfig())

	fixer.Fix(structureOf(rs))
	once := make([]map[string]structure.Coords, len(rs))
	for i, r := range rs {
		once[i] = r.snapshot()
	}

	stats := fixer.Fix(structureOf(rs))
	if stats.Swapped != 0 {
		t.Fatalf("Second pass swapped %d residues.", stats.Swapped)
	}
	for i, r := range rs {
		assertUnchanged(t, r, once[i])
	}
}

func TestConservation(t *testing.T) {
	for _, r := range mislabelled() {
		before := sortedCoords(r)
		NewFixer(DefaultConfig()).Fix(Residues{r})
		after := sortedCoords(r)

		if len(before) != len(after) {
			t.Fatalf("%s: atom count changed from %d to %d.",
				r.name, len(before), len(after))
		}
		for i := range before {
			if before[i] != after[i] {
				t.Fatalf("%s: coordinates %v are not conserved.",
					r.name, before[i])
			}
		}
	}
}

func TestRingCoupling(t *testing.T) {
	phe := residueWithTorsions("PHE", 1, 150, -30)
	before := phe.snapshot()
	NewFixer(DefaultConfig()).Fix(Residues{phe})
	after := phe.snapshot()
	if after["CE1"] != before["CE2"] || after["CE2"] != before["CE1"] {
		t.Fatalf("CE1/CE2 did not move with CD1/CD2.")
	}
	if after["CZ"] != before["CZ"] {
		t.Fatalf("CZ moved.")
	}

	// Correctly labelled: the ring stays as it is.
	tyr := residueWithTorsions("TYR", 2, 10, -170)
	before = tyr.snapshot()
	NewFixer(DefaultConfig()).Fix(Residues{tyr})
	assertUnchanged(t, tyr, before)

	// A ring with a missing CE2 still gets its CD pair fixed, but CE1 is
	// left alone.
	phe = residueWithTorsions("PHE", 3, 150, -30).remove("CE2")
	before = phe.snapshot()
	NewFixer(DefaultConfig()).Fix(Residues{phe})
	after = phe.snapshot()
	if after["CD1"] != before["CD2"] {
		t.Fatalf("CD1/CD2 were not exchanged.")
	}
	if after["CE1"] != before["CE1"] {
		t.Fatalf("CE1 moved without a CE2 to swap with.")
	}
}

func TestMissingAtoms(t *testing.T) {
	for i, r := range mislabelled() {
		rule := Rules[r.name]
		for _, missing := range append(rule.Anchor[:], rule.A, rule.B) {
			r := mislabelled()[i].remove(missing)
			before := r.snapshot()

			stats := NewFixer(DefaultConfig()).Fix(Residues{r})
			if stats.Skipped != 1 || stats.Evaluated != 0 {
				t.Fatalf("%s without %s: expected a skip but got %+v.",
					r.name, missing, stats)
			}
			assertUnchanged(t, r, before)
		}
	}
}

func TestUntouchedTypes(t *testing.T) {
	gly := newTestResidue("GLY", 1)
	gly.add("N", anchor1).add("CA", anchor2).add("C", anchor3)
	gly.add("CD1", atTorsion(170)).add("CD2", atTorsion(50))
	gly.add("CB", anchor2).add("CG", anchor3)
	before := gly.snapshot()

	stats := NewFixer(DefaultConfig()).Fix(Residues{gly})
	if stats.Residues != 1 || stats.Evaluated != 0 || stats.Skipped != 0 {
		t.Fatalf("GLY should be ignored, but got %+v.", stats)
	}
	assertUnchanged(t, gly, before)
}

func TestIlePolicy(t *testing.T) {
	ile := residueWithTorsions("ILE", 1, 60, -60)
	before := ile.snapshot()

	conf := DefaultConfig()
	conf.FixIle = false
	stats := NewFixer(conf).Fix(Residues{ile})
	if stats.Evaluated != 0 {
		t.Fatalf("ILE should not be evaluated, but got %+v.", stats)
	}
	assertUnchanged(t, ile, before)

	conf.FixIle = true
	NewFixer(conf).Fix(Residues{ile})
	if ile.snapshot()["CG1"] != before["CG2"] {
		t.Fatalf("ILE CG1/CG2 were not exchanged.")
	}
}

func TestDryRun(t *testing.T) {
	rs := mislabelled()
	befores := make([]map[string]structure.Coords, len(rs))
	for i, r := range rs {
		befores[i] = r.snapshot()
	}

	var evs collector
	conf := DefaultConfig()
	conf.DryRun = true
	conf.Reporter = &evs
	stats := NewFixer(conf).Fix(structureOf(rs))
	if stats.Swapped != len(rs) {
		t.Fatalf("Expected %d residues needing a swap, got %+v.", len(rs), stats)
	}
	for i, r := range rs {
		assertUnchanged(t, r, befores[i])
	}
	for _, ev := range evs {
		if ev.Status() != "SWAP NEEDED" {
			t.Fatalf("Expected 'SWAP NEEDED' but got '%s'.", ev.Status())
		}
	}
}

func TestCheckAfterFix(t *testing.T) {
	rs := mislabelled()
	fixer := NewFixer(DefaultConfig())

	var before collector
	stats := fixer.Check(structureOf(rs), &before)
	if stats.Swapped != len(rs) || len(before) != len(rs) {
		t.Fatalf("Expected %d residues needing a swap, got %+v.", len(rs), stats)
	}
	for _, ev := range before {
		if ev.Status() != "SWAP NEEDED" {
			t.Fatalf("%s: expected 'SWAP NEEDED' but got '%s'.",
				ev.Type, ev.Status())
		}
	}

	fixer.Fix(structureOf(rs))
	fixed := make([]map[string]structure.Coords, len(rs))
	for i, r := range rs {
		fixed[i] = r.snapshot()
	}

	var after collector
	stats = fixer.Check(structureOf(rs), &after)
	if stats.Swapped != 0 || len(after) != len(rs) {
		t.Fatalf("Expected every residue to read OK after fixing, got %+v.",
			stats)
	}
	for _, ev := range after {
		if ev.Status() != "OK" {
			t.Fatalf("%s: expected 'OK' but got '%s'.", ev.Type, ev.Status())
		}
	}
	for i, r := range rs {
		assertUnchanged(t, r, fixed[i])
	}
}

func TestNilStructure(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("Fix(nil) should panic.")
		}
	}()
	NewFixer(DefaultConfig()).Fix(nil)
}

func assertUnchanged(t *testing.T, r *testResidue,
	before map[string]structure.Coords) {

	after := r.snapshot()
	for name, c := range before {
		if after[name] != c {
			t.Fatalf("%s %d: atom %s moved from %v to %v.",
				r.name, r.num, name, c, after[name])
		}
	}
}

type coordsList []structure.Coords

func (cs coordsList) Len() int      { return len(cs) }
func (cs coordsList) Swap(i, j int) { cs[i], cs[j] = cs[j], cs[i] }
func (cs coordsList) Less(i, j int) bool {
	a, b := cs[i], cs[j]
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}

func sortedCoords(r *testResidue) coordsList {
	cs := make(coordsList, 0, len(r.atoms))
	for _, c := range r.atoms {
		cs = append(cs, *c)
	}
	sort.Sort(cs)
	return cs
}

type collector []Evaluation

func (c *collector) Report(ev Evaluation) {
	*c = append(*c, ev)
}
