package util

import (
	"io"
	"os"

	"github.com/AndrewCRMartin/FixAtomNames/labels"
	"github.com/AndrewCRMartin/FixAtomNames/pdb"
)

func PDBRead(path string) *pdb.Entry {
	entry, err := pdb.New(path)
	Assert(err, "Could not open PDB file '%s'", path)
	return entry
}

func PDBWrite(w io.Writer, entry *pdb.Entry) {
	Assert(entry.Write(w), "Could not write PDB file '%s'", entry.Path)
}

// Residues returns every residue of a PDB entry as a structure the label
// fixer can work on.
func Residues(entry *pdb.Entry) labels.Residues {
	rs := make(labels.Residues, len(entry.Residues))
	for i, res := range entry.Residues {
		rs[i] = res
	}
	return rs
}

func OpenFile(path string) *os.File {
	f, err := os.Open(path)
	Assert(err, "Could not open file '%s'", path)
	return f
}

func CreateFile(path string) *os.File {
	f, err := os.Create(path)
	Assert(err, "Could not create file '%s'", path)
	return f
}

// AssertOverwritable quits with an error if the path exists and overwrite is
// not set.
func AssertOverwritable(path string, overwrite bool) {
	if _, err := os.Stat(path); err == nil && !overwrite {
		Fatalf("File '%s' already exists. Use '-overwrite' to replace it.",
			path)
	}
}
