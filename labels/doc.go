/*
Package labels fixes the naming of chemically equivalent side-chain atoms in
protein structures.

Several amino acids end in two atoms that are indistinguishable chemically,
for example the two delta carbons of leucine or the two carboxylate oxygens of
aspartate. Which one is called "1" and which one "2" is a convention, and
structures coming from different programs (or from a crystallographer with a
graphics program) do not always agree on it. This matters as soon as two
structures are compared atom by atom: an RMSD over mislabelled side chains is
inflated for no physical reason.

For each residue type in the fixable set, a fixed anchor of three atoms is used
to measure the torsion angle to each atom of the equivalent pair. The two
torsions are then tested against the convention for the residue's class:

	SP3Branch     LEU, VAL, ILE   swap unless tor2-tor1 (mod 360) is in [90, 180]
	SP2Symmetric  PHE, TYR, ASP,  swap when atom 1 is further from a zero
	              GLU, ARG        torsion than atom 2

When the convention is violated, the coordinates of the two atoms are
exchanged. Atom records are never created, removed or renamed. For PHE and TYR
the ring atoms CE1/CE2 move together with CD1/CD2.

Residues that are missing any of the atoms needed are left alone.
*/
package labels
