package labels

// Class is the geometric class of the atom pair that a rule relabels. The
// class determines which decision rule is used on the two torsion angles.
type Class int

const (
	// SP3Branch is a pair of atoms branching from a tetrahedral carbon.
	SP3Branch Class = iota

	// SP2Symmetric is a pair of atoms on a planar (sp2) group.
	SP2Symmetric
)

func (c Class) String() string {
	switch c {
	case SP3Branch:
		return "sp3-branch"
	case SP2Symmetric:
		return "sp2-symmetric"
	}
	return "unknown"
}

// Rule describes which atoms of a residue type are used to decide whether its
// equivalent pair is mislabelled.
//
// Torsions are measured as Anchor[0]-Anchor[1]-Anchor[2]-A and
// Anchor[0]-Anchor[1]-Anchor[2]-B. RingA and RingB are empty unless a second
// pair must be swapped together with A and B.
type Rule struct {
	Class        Class
	Anchor       [3]string
	A, B         string
	RingA, RingB string
}

// HasRing returns true if the rule carries a coupled second pair.
func (r Rule) HasRing() bool {
	return len(r.RingA) > 0 && len(r.RingB) > 0
}

// Rules maps a three letter residue name to its relabelling rule. Residue
// types not in this map are never touched.
//
// N.B. ILE uses CG2 as atom A and CG1 as atom B. Its numbering follows the
// opposite convention to LEU and VAL, so the same decision rule works with the
// pair reversed.
var Rules = map[string]Rule{
	"LEU": {
		Class:  SP3Branch,
		Anchor: [3]string{"CA", "CB", "CG"},
		A:      "CD1",
		B:      "CD2",
	},
	"VAL": {
		Class:  SP3Branch,
		Anchor: [3]string{"N", "CA", "CB"},
		A:      "CG1",
		B:      "CG2",
	},
	"ILE": {
		Class:  SP3Branch,
		Anchor: [3]string{"N", "CA", "CB"},
		A:      "CG2",
		B:      "CG1",
	},
	"PHE": {
		Class:  SP2Symmetric,
		Anchor: [3]string{"CA", "CB", "CG"},
		A:      "CD1",
		B:      "CD2",
		RingA:  "CE1",
		RingB:  "CE2",
	},
	"TYR": {
		Class:  SP2Symmetric,
		Anchor: [3]string{"CA", "CB", "CG"},
		A:      "CD1",
		B:      "CD2",
		RingA:  "CE1",
		RingB:  "CE2",
	},
	"ASP": {
		Class:  SP2Symmetric,
		Anchor: [3]string{"CA", "CB", "CG"},
		A:      "OD1",
		B:      "OD2",
	},
	"GLU": {
		Class:  SP2Symmetric,
		Anchor: [3]string{"CB", "CG", "CD"},
		A:      "OE1",
		B:      "OE2",
	},
	"ARG": {
		Class:  SP2Symmetric,
		Anchor: [3]string{"CD", "NE", "CZ"},
		A:      "NH1",
		B:      "NH2",
	},
}
