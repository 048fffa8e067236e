package uff

import (
	"fmt"
	"math"

	"github.com/latticecad/latticecad/atom"
	"gonum.org/v1/gonum/optimize"
)

// Report summarizes one minimization run (spec §4.E "minimizer
// diagnostics"): the starting and final energy, iteration count, and
// why the optimizer stopped.
type Report struct {
	InitialEnergy float64
	FinalEnergy   float64
	Iterations    int
	Status        optimize.Status
	GradientNorm  float64
}

// MinimizeOptions configures a minimization run.
type MinimizeOptions struct {
	// Frozen atoms are excluded from the optimization vector entirely.
	Frozen map[atom.ID]bool
	// MaxIterations caps the optimizer's major iteration count; zero
	// uses gonum/optimize's own default.
	MaxIterations int
	// GradientThreshold is the gradient infinity-norm convergence target
	// (kcal/mol/Å); zero uses gonum/optimize's default.
	GradientThreshold float64
}

// Minimize relaxes s in place under the UFF force field using an
// L-BFGS quasi-Newton optimizer, returning a diagnostic Report.
func Minimize(s *atom.Structure, opts MinimizeOptions) (Report, error) {
	sys, err := NewSystem(s, opts.Frozen)
	if err != nil {
		return Report{}, err
	}
	if len(sys.ids) == 0 {
		return Report{}, fmt.Errorf("uff: nothing to minimize, every atom is frozen")
	}

	x0 := sys.X0()
	initial := sys.Func(x0)

	problem := optimize.Problem{
		Func: sys.Func,
		Grad: sys.Grad,
	}

	settings := &optimize.Settings{}
	if opts.MaxIterations > 0 {
		settings.MajorIterations = opts.MaxIterations
	}
	if opts.GradientThreshold > 0 {
		settings.GradientThreshold = opts.GradientThreshold
	}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.LBFGS{})
	if err != nil && result == nil {
		return Report{}, fmt.Errorf("uff: minimization failed: %w", err)
	}

	sys.WriteBack(result.X)
	grad := make([]float64, len(result.X))
	sys.Grad(grad, result.X)
	gn := 0.0
	for _, g := range grad {
		gn += g * g
	}

	return Report{
		InitialEnergy: initial,
		FinalEnergy:   result.F,
		Iterations:    result.Stats.MajorIterations,
		Status:        result.Status,
		GradientNorm:  math.Sqrt(gn),
	}, nil
}
