/*
Package rmsd computes the root-mean-square deviation between two sets of atom
coordinates after optimal superposition, using the Kabsch algorithm as
described here: http://cnx.org/content/m11608/latest/

A convenience function for computing the all-atom RMSD between two PDB entries
is also provided. It matches atoms by name, which is exactly where mislabelled
equivalent atoms (see package labels) show up as a spurious deviation.
*/
package rmsd
