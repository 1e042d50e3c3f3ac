package labels

import (
	"math"

	"github.com/TuftsBCB/structure"
)

// TorsionError is returned by Torsion when one of its atoms is missing. It is
// well outside the range of any real torsion angle.
const TorsionError = 9999.0

// Torsion computes the dihedral angle, in degrees, of the four points
// p1-p2-p3-p4. The result is in the range [-180, 180].
//
// If any of the points is nil, TorsionError is returned.
func Torsion(p1, p2, p3, p4 *structure.Coords) float64 {
	if p1 == nil || p2 == nil || p3 == nil || p4 == nil {
		return TorsionError
	}

	b1 := sub(*p2, *p1)
	b2 := sub(*p3, *p2)
	b3 := sub(*p4, *p3)

	n1 := cross(b1, b2)
	n2 := cross(b2, b3)

	y := norm(b2) * dot(b1, n2)
	x := dot(n1, n2)
	return math.Atan2(y, x) * 180.0 / math.Pi
}

// isTorsion returns false for the TorsionError sentinel.
func isTorsion(tor float64) bool {
	return tor < TorsionError-1
}

// AngleDiff returns tor2 - tor1 mapped into the range [0, 360).
func AngleDiff(tor1, tor2 float64) float64 {
	diff := tor2 - tor1
	for diff < 0 {
		diff += 360
	}
	for diff >= 360 {
		diff -= 360
	}
	return diff
}

// DistanceFromZero returns how far a torsion angle is from zero, after
// putting it in the range (-180, 180].
func DistanceFromZero(angle float64) float64 {
	if angle > 180.0 {
		angle -= 360.0
	}
	return math.Abs(angle)
}

// NeedSwap reports whether a pair with torsions tor1 (atom A) and tor2
// (atom B) is mislabelled according to the convention for class c.
func NeedSwap(c Class, tor1, tor2 float64) bool {
	switch c {
	case SP3Branch:
		diff := AngleDiff(tor1, tor2)
		return diff < 90 || diff > 180
	case SP2Symmetric:
		return DistanceFromZero(tor1) > DistanceFromZero(tor2)
	}
	return false
}

// SwapCoords exchanges the coordinates of two atoms. Nothing happens if
// either is nil.
func SwapCoords(a, b *structure.Coords) {
	if a == nil || b == nil {
		return
	}
	tmp := *a
	a.X, a.Y, a.Z = b.X, b.Y, b.Z
	b.X, b.Y, b.Z = tmp.X, tmp.Y, tmp.Z
}

func sub(a, b structure.Coords) structure.Coords {
	return structure.Coords{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func dot(a, b structure.Coords) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func cross(a, b structure.Coords) structure.Coords {
	return structure.Coords{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func norm(a structure.Coords) float64 {
	return math.Sqrt(dot(a, a))
}
