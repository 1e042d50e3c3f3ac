package rmsd

import (
	"fmt"
	"math"

	"github.com/TuftsBCB/structure"

	matrix "github.com/skelterjohn/go.matrix"
)

// RMSD implements a version of the Kabsch alogrithm that is described here:
// http://cnx.org/content/m11608/latest/
//
// A brief, high-level overview:
//
// Build the 3xN matrices X and Y containing, for the sets x and y
// respectively, the coordinates for each of the N atoms after centering
// the atoms by subtracting the centroids.
//
// Compute the covariance matrix C=X(Y^T)
//
// Compute the SVD (Singular Value Decomposition) of C=US(V^T)
//
// Compute d=sign(det(C))
//
// Compute the optimal rotation R as R = V([1 0 0] [0 1 0] [0 0 d])(U^T)
//
// Note that RMSD will panic if the lengths of struct1 and struct2 differ.
// RMSD will also panic if the calculation of the SVD returns an error.
func RMSD(struct1, struct2 []structure.Coords) float64 {
	if len(struct1) != len(struct2) {
		panic(fmt.Sprintf("Computing the RMSD of two structures require that "+
			"they have equal length. But the lengths of the two structures "+
			"provided are %d and %d.", len(struct1), len(struct2)))
	}

	// In order to "center" the coordinates, we
	// subtract the centroid for each set of atom coordinates.
	c1 := centroid(struct1)
	c2 := centroid(struct2)

	// We end up with two 3xN matrices (X and Y), where N is the length of
	// struct1 and struct2.
	cols := len(struct1)
	X := make([]float64, 3*cols)
	Y := make([]float64, 3*cols)
	for i := 0; i < cols; i++ {
		a1, a2 := struct1[i], struct2[i]
		X[0*cols+i] = a1.X - c1.X
		X[1*cols+i] = a1.Y - c1.Y
		X[2*cols+i] = a1.Z - c1.Z

		Y[0*cols+i] = a2.X - c2.X
		Y[1*cols+i] = a2.Y - c2.Y
		Y[2*cols+i] = a2.Z - c2.Z
	}
	Xm := matrix.MakeDenseMatrix(X, 3, cols)
	Ym := matrix.MakeDenseMatrix(Y, 3, cols)

	// Compute the covariance matrix C = X(Y^T)
	C := must(Xm.TimesDense(Ym.Transpose()))

	// Compute the Singular Value Decomposition of C = US(V^T)
	U, _, V, err := C.SVD()
	if err != nil {
		panic(err)
	}

	// If the determinant of C is negative, then the best rotation would be
	// an "improper rotation" (a reflection). To correct for it, we flip the
	// sign of the last column of V.
	d := 1.0
	if det3(C.Array()) < 0 {
		d = -1.0
	}
	adjust := matrix.MakeDenseMatrix([]float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, d,
	}, 3, 3)
	R := must(must(V.TimesDense(adjust)).TimesDense(U.Transpose()))

	// Apply the rotational matrix R to X to get the best possible alignment
	// with Y.
	Xbest := must(R.TimesDense(Xm)).Array()

	// Now compute the RMSD between Xbest and Y.
	var rmsd, dist float64 = 0.0, 0.0
	for i := range Y {
		dist = Xbest[i] - Y[i]
		rmsd += dist * dist
	}
	return math.Sqrt(rmsd / float64(cols))
}

// centroid calculates the average position of a set of atoms.
func centroid(atoms []structure.Coords) structure.Coords {
	var c structure.Coords
	for _, atom := range atoms {
		c.X += atom.X
		c.Y += atom.Y
		c.Z += atom.Z
	}
	n := float64(len(atoms))
	c.X, c.Y, c.Z = c.X/n, c.Y/n, c.Z/n
	return c
}

// det3 computes the determinant of a 3x3 matrix in row-major order.
func det3(m []float64) float64 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// must panics if the result of a dense matrix operation returns an error.
func must(A *matrix.DenseMatrix, err error) *matrix.DenseMatrix {
	if err != nil {
		panic(err)
	}
	return A
}
