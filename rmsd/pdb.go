package rmsd

import (
	"fmt"

	"github.com/AndrewCRMartin/FixAtomNames/pdb"
	"github.com/TuftsBCB/structure"
)

// atomKey identifies an atom across two entries of the same protein.
type atomKey struct {
	chain   byte
	seqNum  int
	iCode   byte
	resName string
	name    string
}

// PDB is a convenience function for computing the all-atom RMSD between two
// PDB entries of the same protein. Atoms are paired by chain identifier,
// residue sequence number, insertion code, residue name and atom name. Only
// the first model of each entry is used, and only the first record of an atom
// with alternate locations.
//
// The RMSD and the number of atoms paired are returned. An error is returned
// if fewer than three atoms could be paired.
func PDB(entry1, entry2 *pdb.Entry) (float64, int, error) {
	atoms2 := firstModelAtoms(entry2)

	struct1 := make([]structure.Coords, 0, len(atoms2))
	struct2 := make([]structure.Coords, 0, len(atoms2))
	seen := make(map[atomKey]bool, len(atoms2))
	for _, res := range firstModel(entry1) {
		for _, atom := range res.Atoms {
			key := keyOf(res, atom)
			if seen[key] {
				continue
			}
			seen[key] = true

			if other, ok := atoms2[key]; ok {
				struct1 = append(struct1, atom.Coords)
				struct2 = append(struct2, other)
			}
		}
	}
	if len(struct1) < 3 {
		return 0.0, len(struct1), fmt.Errorf("Only %d atoms in '%s' could be "+
			"paired with atoms in '%s'. At least 3 are needed to compute "+
			"an RMSD.", len(struct1), entry1.Name(), entry2.Name())
	}

	// We're good to go...
	return RMSD(struct1, struct2), len(struct1), nil
}

func keyOf(res *pdb.Residue, atom *pdb.Atom) atomKey {
	return atomKey{res.Chain, res.SequenceNum, res.InsertionCode,
		res.Name, atom.Name}
}

// firstModel returns the residues of the first model in the entry.
func firstModel(entry *pdb.Entry) []*pdb.Residue {
	if len(entry.Residues) == 0 {
		return nil
	}
	model := entry.Residues[0].Model
	for i, res := range entry.Residues {
		if res.Model != model {
			return entry.Residues[:i]
		}
	}
	return entry.Residues
}

func firstModelAtoms(entry *pdb.Entry) map[atomKey]structure.Coords {
	atoms := make(map[atomKey]structure.Coords)
	for _, res := range firstModel(entry) {
		for _, atom := range res.Atoms {
			key := keyOf(res, atom)
			if _, ok := atoms[key]; !ok {
				atoms[key] = atom.Coords
			}
		}
	}
	return atoms
}
