package uff

import (
	"fmt"
	"math"

	"github.com/latticecad/latticecad/atom"
	v3 "github.com/latticecad/latticecad/vec/v3"
)

type bondTerm struct {
	i, j               atom.ID
	pa, pb             Param
	bondOrderLn        float64
}

type angleTerm struct {
	i, j, k atom.ID
	ka      float64
	theta0  float64
}

type torsionTerm struct {
	i, j, k, l atom.ID
	v, n, phi0 float64
}

type inversionTerm struct {
	i, j, k, l atom.ID
	k0, c0, c1, c2 float64
}

type vdwPair struct {
	i, j   atom.ID
	pa, pb Param
}

// System assembles every UFF energy term for a structure and exposes
// the gonum/optimize Problem surface (Func, Grad) over its free
// (non-frozen) atom coordinates.
type System struct {
	s     *atom.Structure
	ids   []atom.ID // free (non-frozen) atoms, in optimization-vector order
	idx   map[atom.ID]int
	fixed map[atom.ID]v3.Vec

	bonds      []bondTerm
	angles     []angleTerm
	torsions   []torsionTerm
	inversions []inversionTerm
	vdw        []vdwPair
}

// NewSystem types every atom in s and assembles the bonded and
// non-bonded term lists. frozen marks atoms excluded from the
// optimization vector (their positions are held fixed).
func NewSystem(s *atom.Structure, frozen map[atom.ID]bool) (*System, error) {
	types, err := TypeAll(s)
	if err != nil {
		return nil, err
	}
	params := make(map[atom.ID]Param, len(types))
	for id, label := range types {
		p, ok := Lookup(label)
		if !ok {
			return nil, fmt.Errorf("uff: label %q has no parameter table row", label)
		}
		params[id] = p
	}

	sys := &System{s: s, fixed: make(map[atom.ID]v3.Vec)}
	for _, id := range s.Atoms() {
		if frozen != nil && frozen[id] {
			a, _ := s.Atom(id)
			sys.fixed[id] = a.Pos
			continue
		}
		sys.ids = append(sys.ids, id)
	}
	sys.idx = make(map[atom.ID]int, len(sys.ids))
	for i, id := range sys.ids {
		sys.idx[id] = i
	}

	for _, b := range s.Bonds() {
		sys.bonds = append(sys.bonds, bondTerm{
			i: b.A, j: b.B, pa: params[b.A], pb: params[b.B],
			bondOrderLn: math.Log(float64(maxInt(b.Order, 1))),
		})
	}

	for _, id := range s.Atoms() {
		nbrs := s.Neighbors(id)
		for a := 0; a < len(nbrs); a++ {
			for b := a + 1; b < len(nbrs); b++ {
				pj := params[id]
				sys.angles = append(sys.angles, angleTerm{
					i: nbrs[a].ID, j: id, k: nbrs[b].ID,
					ka:     angleBendConstant(bondForceConstant(params[nbrs[a].ID].Z1, pj.Z1, params[nbrs[a].ID].R1+pj.R1), bondForceConstant(pj.Z1, params[nbrs[b].ID].Z1, pj.R1+params[nbrs[b].ID].R1), params[nbrs[a].ID].R1+pj.R1, pj.R1+params[nbrs[b].ID].R1, pj.Theta0),
					theta0: pj.Theta0,
				})
			}
		}
		if len(nbrs) == 3 {
			p := params[id]
			// Trigonal center: Wilson-angle inversion, summed over the
			// three choices of which substituent plays "l".
			j, k, l := nbrs[0].ID, nbrs[1].ID, nbrs[2].ID
			k0, c0, c1, c2 := inversionCoefficients(p)
			sys.inversions = append(sys.inversions,
				inversionTerm{i: id, j: j, k: k, l: l, k0: k0, c0: c0, c1: c1, c2: c2},
				inversionTerm{i: id, j: k, k: l, l: j, k0: k0, c0: c0, c1: c1, c2: c2},
				inversionTerm{i: id, j: l, k: j, l: k, k0: k0, c0: c0, c1: c1, c2: c2},
			)
		}
	}

	for _, b := range s.Bonds() {
		jNbrs := s.Neighbors(b.A)
		kNbrs := s.Neighbors(b.B)
		sharedCount := 0
		for _, jn := range jNbrs {
			if jn.ID == b.B {
				continue
			}
			for _, kn := range kNbrs {
				if kn.ID == b.A || kn.ID == jn.ID {
					continue
				}
				sharedCount++
			}
		}
		if sharedCount == 0 {
			continue
		}
		pj, pk := params[b.A], params[b.B]
		n, phi0, vTotal := torsionParams(pj, pk)
		vPer := vTotal / float64(sharedCount)
		for _, jn := range jNbrs {
			if jn.ID == b.B {
				continue
			}
			for _, kn := range kNbrs {
				if kn.ID == b.A || kn.ID == jn.ID {
					continue
				}
				sys.torsions = append(sys.torsions, torsionTerm{i: jn.ID, j: b.A, k: b.B, l: kn.ID, v: vPer, n: n, phi0: phi0})
			}
		}
	}

	excluded := make(map[[2]atom.ID]bool)
	mark := func(a, b atom.ID) {
		if a > b {
			a, b = b, a
		}
		excluded[[2]atom.ID{a, b}] = true
	}
	for _, b := range s.Bonds() {
		mark(b.A, b.B)
	}
	for _, at := range sys.angles {
		mark(at.i, at.k)
	}
	ids := s.Atoms()
	for a := 0; a < len(ids); a++ {
		for b := a + 1; b < len(ids); b++ {
			ka, kb := ids[a], ids[b]
			if ka > kb {
				ka, kb = kb, ka
			}
			if excluded[[2]atom.ID{ka, kb}] {
				continue
			}
			sys.vdw = append(sys.vdw, vdwPair{i: ids[a], j: ids[b], pa: params[ids[a]], pb: params[ids[b]]})
		}
	}

	return sys, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// inversionCoefficients derives the Fourier coefficients for a
// trigonal-planar inversion center whose equilibrium Wilson angle is
// zero (sp2 carbon/nitrogen, eq. 19-20 family): C0=1, C1=-1, C2=0, so
// the energy is a minimum at omega=0 and rises as the center pyramidalizes.
func inversionCoefficients(p Param) (k0, c0, c1, c2 float64) {
	return 6.0, 1, -1, 0
}

// torsionParams returns the periodicity, phase, and total barrier
// height for the bond type between pa and pb.
func torsionParams(pa, pb Param) (n, phi0, v float64) {
	switch {
	case pa.V1 == 0 || pb.V1 == 0:
		return 3, math.Pi, 0.1 // generic low-barrier single bond default
	default:
		vTotal := math.Sqrt(pa.V1 * pb.V1)
		return 3, math.Pi, vTotal
	}
}

func (sys *System) index(id atom.ID) (int, bool) {
	i, ok := sys.idx[id]
	return i, ok
}

func (sys *System) position(x []float64, id atom.ID) v3.Vec {
	if p, ok := sys.fixed[id]; ok {
		return p
	}
	i, _ := sys.index(id)
	return v3.Vec{X: x[3*i], Y: x[3*i+1], Z: x[3*i+2]}
}

func (sys *System) addGrad(grad []float64, id atom.ID, g v3.Vec) {
	if _, ok := sys.fixed[id]; ok {
		return
	}
	i, _ := sys.index(id)
	grad[3*i] += g.X
	grad[3*i+1] += g.Y
	grad[3*i+2] += g.Z
}

// X0 returns the initial optimization vector, the flattened positions
// of every free atom.
func (sys *System) X0() []float64 {
	x := make([]float64, 3*len(sys.ids))
	for i, id := range sys.ids {
		a, _ := sys.s.Atom(id)
		x[3*i], x[3*i+1], x[3*i+2] = a.Pos.X, a.Pos.Y, a.Pos.Z
	}
	return x
}

// Func evaluates the total UFF energy (kcal/mol) at x.
func (sys *System) Func(x []float64) float64 {
	total := 0.0
	for _, b := range sys.bonds {
		e, _, _ := BondEnergy(sys.position(x, b.i), sys.position(x, b.j), b.pa, b.pb, b.bondOrderLn)
		total += e
	}
	for _, a := range sys.angles {
		e, _, _, _ := AngleEnergy(sys.position(x, a.i), sys.position(x, a.j), sys.position(x, a.k), a.ka, a.theta0)
		total += e
	}
	for _, t := range sys.torsions {
		e, _, _, _, _ := TorsionEnergy(sys.position(x, t.i), sys.position(x, t.j), sys.position(x, t.k), sys.position(x, t.l), t.v, t.n, t.phi0)
		total += e
	}
	for _, inv := range sys.inversions {
		e, _, _, _, _ := InversionEnergy(sys.position(x, inv.i), sys.position(x, inv.j), sys.position(x, inv.k), sys.position(x, inv.l), inv.k0, inv.c0, inv.c1, inv.c2)
		total += e
	}
	for _, vw := range sys.vdw {
		e, _, _ := VdWEnergy(sys.position(x, vw.i), sys.position(x, vw.j), vw.pa, vw.pb)
		total += e
	}
	return total
}

// Grad fills grad with the gradient of Func at x.
func (sys *System) Grad(grad, x []float64) {
	for i := range grad {
		grad[i] = 0
	}
	for _, b := range sys.bonds {
		_, gi, gj := BondEnergy(sys.position(x, b.i), sys.position(x, b.j), b.pa, b.pb, b.bondOrderLn)
		sys.addGrad(grad, b.i, gi)
		sys.addGrad(grad, b.j, gj)
	}
	for _, a := range sys.angles {
		_, gi, gj, gk := AngleEnergy(sys.position(x, a.i), sys.position(x, a.j), sys.position(x, a.k), a.ka, a.theta0)
		sys.addGrad(grad, a.i, gi)
		sys.addGrad(grad, a.j, gj)
		sys.addGrad(grad, a.k, gk)
	}
	for _, t := range sys.torsions {
		_, g1, g2, g3, g4 := TorsionEnergy(sys.position(x, t.i), sys.position(x, t.j), sys.position(x, t.k), sys.position(x, t.l), t.v, t.n, t.phi0)
		sys.addGrad(grad, t.i, g1)
		sys.addGrad(grad, t.j, g2)
		sys.addGrad(grad, t.k, g3)
		sys.addGrad(grad, t.l, g4)
	}
	for _, inv := range sys.inversions {
		_, gi, gj, gk, gl := InversionEnergy(sys.position(x, inv.i), sys.position(x, inv.j), sys.position(x, inv.k), sys.position(x, inv.l), inv.k0, inv.c0, inv.c1, inv.c2)
		sys.addGrad(grad, inv.i, gi)
		sys.addGrad(grad, inv.j, gj)
		sys.addGrad(grad, inv.k, gk)
		sys.addGrad(grad, inv.l, gl)
	}
	for _, vw := range sys.vdw {
		_, gi, gj := VdWEnergy(sys.position(x, vw.i), sys.position(x, vw.j), vw.pa, vw.pb)
		sys.addGrad(grad, vw.i, gi)
		sys.addGrad(grad, vw.j, gj)
	}
}

// WriteBack copies the optimization vector x back into the structure's
// atom positions.
func (sys *System) WriteBack(x []float64) {
	for i, id := range sys.ids {
		a, err := sys.s.Atom(id)
		if err != nil {
			continue
		}
		a.Pos = v3.Vec{X: x[3*i], Y: x[3*i+1], Z: x[3*i+2]}
		_ = sys.s.SetAtom(id, a)
	}
}
