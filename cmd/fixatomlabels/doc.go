/*
fixatomlabels makes the naming of chemically equivalent side-chain atoms in a
PDB file follow a single convention. For LEU, VAL, ILE, PHE, TYR, ASP, GLU and
ARG, the torsion angles to the two equivalent atoms are measured, and if the
labels are the wrong way round the coordinates of the two atoms are swapped.
No record is added, removed or renamed; every other column of the file is
written out as it was read.

A PDB file may either be plain text or compressed using gzip. If the PDB file
is gzipped, it must end with a '.gz' extension. The fixed PDB file is written
to out-pdb-file, or to stdout if it is omitted.

Usage:
	fixatomlabels [flags] in-pdb-file [out-pdb-file]

The flags are:
	-v level
		Report residues to stderr. 1 reports only relabelled residues and 2
		reports every residue that could be evaluated.
	-ile
		Relabel isoleucine CG1/CG2 too (default true).
	-n
		Dry run: report, but write the structure unchanged.
	-yaml file
		Write a YAML document with every residue evaluated.
	-ref pdb-file
		Print the all-atom RMSD against a reference structure before and
		after fixing.
	-after
		Evaluate every residue again after fixing and report it to stderr.
		With -n, residues that need a swap still read SWAP NEEDED.
	-verbose
		Print a summary of the fix to stderr.

Example report line:

	LEU A42     Tor1:  170.000 Tor2:   50.000 Diff:  240.000 SWAPPED
*/
package main
