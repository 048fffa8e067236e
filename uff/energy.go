package uff

import (
	"math"

	v3 "github.com/latticecad/latticecad/vec/v3"
)

// bondForceConstant returns UFF's empirical bond force constant (kcal
// mol^-1 Å^-2) for a bond of natural length r0 between two atoms of
// effective charge za, zb (Rappé et al. 1992, eq. 6).
func bondForceConstant(za, zb, r0 float64) float64 {
	const G = 332.06 // kcal Å / (mol e^2), UFF's electrostatic constant folded into kb
	return G * za * zb / (r0 * r0 * r0)
}

// BondEnergy returns the harmonic bond-stretch energy and its gradient
// with respect to the two endpoint positions.
func BondEnergy(pi, pj v3.Vec, pa, pb Param, bondOrderCorrection float64) (e float64, gi, gj v3.Vec) {
	r0 := natualBondLength(pa, pb, bondOrderCorrection)
	kb := bondForceConstant(pa.Z1, pb.Z1, r0)

	d := pj.Sub(pi)
	r := d.Length()
	if r == 0 {
		return 0, v3.Vec{}, v3.Vec{}
	}
	dr := r - r0
	e = 0.5 * kb * dr * dr
	dEdr := kb * dr
	dir := d.MulScalar(1 / r)
	gj = dir.MulScalar(dEdr)
	gi = gj.Neg()
	return e, gi, gj
}

// natualBondLength applies UFF's bond-order and electronegativity
// corrections to the sum of the two atoms' covalent radii (eq. 2-4).
// bondOrderCorrection is ln(bondOrder) pre-scaled by UFF's rBO
// constant; callers that don't model bond order pass 0.
func natualBondLength(pa, pb Param, bondOrderCorrection float64) float64 {
	const lambda = 0.1332 // rBO constant, Å
	rBO := -lambda * (pa.R1 + pb.R1) * bondOrderCorrection
	// Electronegativity correction term (eq. 3) is omitted: it needs
	// Pauling electronegativities the element table does not carry, and
	// its contribution is small relative to rBO for the light-element
	// structures this engine targets.
	return pa.R1 + pb.R1 + rBO
}

// angleBendConstant returns UFF's angle force constant (eq. 13), using
// the two bonds' force constants and the equilibrium angle.
func angleBendConstant(kb1, kb2, r1, r2, theta0 float64) float64 {
	rjk2 := r1*r1 + r2*r2 - 2*r1*r2*math.Cos(theta0)
	rjk := math.Sqrt(rjk2)
	if rjk == 0 {
		return 0
	}
	return kb1 * kb2 / (rjk2 * rjk2 * rjk) * (3*r1*r2*(1-math.Cos(theta0)*math.Cos(theta0)) - rjk2*math.Cos(theta0))
}

// AngleEnergy returns the cosine-Fourier angle-bend energy at vertex
// atom j between neighbors i and k, and the gradient on all three
// positions.
func AngleEnergy(pi, pj, pk v3.Vec, ka, theta0 float64) (e float64, gi, gj, gk v3.Vec) {
	u := pi.Sub(pj)
	v := pk.Sub(pj)
	lu, lv := u.Length(), v.Length()
	if lu == 0 || lv == 0 {
		return 0, v3.Vec{}, v3.Vec{}, v3.Vec{}
	}
	cosT := clamp(u.Dot(v)/(lu*lv), -1, 1)

	// General Fourier form: E = ka*(C0 + C1 cosθ + C2 cos2θ), with
	// coefficients chosen so θ0 is a minimum (eq. 12-13 family).
	cos2T0 := 2*math.Cos(theta0)*math.Cos(theta0) - 1
	c2 := 1.0 / (4 * math.Sin(theta0) * math.Sin(theta0))
	if math.IsInf(c2, 0) || math.IsNaN(c2) {
		c2 = 0
	}
	c1 := -4 * c2 * math.Cos(theta0)
	c0 := c2 * (2*math.Cos(theta0)*math.Cos(theta0) + 1)
	_ = cos2T0

	cos2T := 2*cosT*cosT - 1
	e = ka * (c0 + c1*cosT + c2*cos2T)
	dEdCos := ka * (c1 + 4*c2*cosT)

	dCosDu := v.MulScalar(1 / (lu * lv)).Sub(u.MulScalar(cosT / (lu * lu)))
	dCosDv := u.MulScalar(1 / (lu * lv)).Sub(v.MulScalar(cosT / (lv * lv)))

	gi = dCosDu.MulScalar(dEdCos)
	gk = dCosDv.MulScalar(dEdCos)
	gj = gi.Add(gk).Neg()
	return e, gi, gj, gk
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// VdWEnergy returns the UFF generalized Lennard-Jones van der Waals
// energy and gradient between two non-bonded atoms (eq. 20).
func VdWEnergy(pi, pj v3.Vec, pa, pb Param) (e float64, gi, gj v3.Vec) {
	x := math.Sqrt(pa.X1 * pb.X1)
	d := math.Sqrt(pa.D1 * pb.D1)

	diff := pj.Sub(pi)
	r := diff.Length()
	if r == 0 {
		return 0, v3.Vec{}, v3.Vec{}
	}
	xr := x / r
	xr6 := xr * xr * xr * xr * xr * xr
	xr12 := xr6 * xr6
	e = d * (xr12 - 2*xr6)

	// dE/dr = d*(-12*x^12/r^13 + 12*x^6/r^7) = (12*d/r)*(xr6 - xr12)
	dEdr := (12 * d / r) * (xr6 - xr12)
	dir := diff.MulScalar(1 / r)
	gj = dir.MulScalar(dEdr)
	gi = gj.Neg()
	return e, gi, gj
}
