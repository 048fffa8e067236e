package uff

import (
	"math"

	v3 "github.com/latticecad/latticecad/vec/v3"
)

// TorsionEnergy returns the periodic torsion energy E = 0.5*V*(1 -
// cos(n*phi - phi0)) over the dihedral p1-p2-p3-p4, and its gradient on
// all four positions. V has already been divided by the number of
// torsions sharing the central j-k bond (spec §4.E "torsion... divided
// by the count of torsions sharing the central bond").
func TorsionEnergy(p1, p2, p3, p4 v3.Vec, v, n, phi0 float64) (e float64, g1, g2, g3, g4 v3.Vec) {
	b1 := p2.Sub(p1)
	b2 := p3.Sub(p2)
	b3 := p4.Sub(p3)

	n1 := b1.Cross(b2)
	n2 := b2.Cross(b3)
	ln1, ln2 := n1.Length(), n2.Length()
	lb2 := b2.Length()
	if ln1 == 0 || ln2 == 0 || lb2 == 0 {
		return 0, v3.Vec{}, v3.Vec{}, v3.Vec{}, v3.Vec{}
	}

	phi := math.Atan2(lb2*b1.Dot(n2), n1.Dot(n2))

	e = 0.5 * v * (1 - math.Cos(n*phi-phi0))
	dEdPhi := 0.5 * v * n * math.Sin(n*phi-phi0)

	// Standard Blondel-Karplus dihedral gradient decomposition.
	g1v := n1.MulScalar(-lb2 / (ln1 * ln1))
	g4v := n2.MulScalar(lb2 / (ln2 * ln2))

	b1b2 := b1.Dot(b2) / (lb2 * lb2)
	b3b2 := b3.Dot(b2) / (lb2 * lb2)

	g2v := g1v.Neg().Add(g1v.MulScalar(b1b2)).Sub(g4v.MulScalar(b3b2))
	g3v := g4v.Neg().Sub(g1v.MulScalar(b1b2)).Add(g4v.MulScalar(b3b2))

	g1 = g1v.MulScalar(dEdPhi)
	g2 = g2v.MulScalar(dEdPhi)
	g3 = g3v.MulScalar(dEdPhi)
	g4 = g4v.MulScalar(dEdPhi)
	return e, g1, g2, g3, g4
}
