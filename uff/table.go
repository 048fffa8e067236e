// Package uff implements the Universal Force Field (Rappé et al. 1992):
// atom typing, the per-label parameter table, the five energy terms and
// their gradients, and an L-BFGS minimizer (spec §4.E). The gradients are
// analytical except the inversion term's, which is a central difference.
package uff

// Param is one row of the UFF parameter table: the per-atom-type
// constants every energy term draws from.
type Param struct {
	Label  string
	R1     float64 // bond radius, Å
	Theta0 float64 // valence angle, radians
	X1     float64 // vdW distance, Å
	D1     float64 // vdW well depth, kcal/mol
	Zeta   float64 // vdW scale
	Z1     float64 // effective charge
	V1     float64 // torsional barrier parameter
	U1     float64 // torsional contribution parameter (for sp3-sp2 cases)
	Xi     float64 // GMP electronegativity (unused by the energy terms, kept for completeness)
	Hard   float64 // GMP hardness (unused by the energy terms, kept for completeness)
	Radius float64 // covalent radius used only by atom typing fallbacks
}

// degToRad is used inline when building theta0 values below, kept local
// so table.go has no import besides its own package.
const degToRad = 3.14159265358979323846 / 180.0

// table holds the UFF parameter rows actually wired into typing and the
// energy terms: the main-group s/p block plus the common transition
// metals the element table carries full chemistry for. Exotic
// lanthanide/actinide/noble-gas labels from the full 126-row reference
// table are intentionally omitted; see DESIGN.md for the open-question
// resolution.
var table = map[string]Param{
	"H_":    {Label: "H_", R1: 0.354, Theta0: 180.0 * degToRad, X1: 2.886, D1: 0.044, Zeta: 12.0, Z1: 0.712, V1: 0, U1: 0},
	"H_b":   {Label: "H_b", R1: 0.460, Theta0: 83.5 * degToRad, X1: 2.886, D1: 0.044, Zeta: 12.0, Z1: 0.712, V1: 0, U1: 0},
	"B_3":   {Label: "B_3", R1: 0.838, Theta0: 109.47 * degToRad, X1: 4.083, D1: 0.180, Zeta: 12.052, Z1: 0.838, V1: 0, U1: 2},
	"C_3":   {Label: "C_3", R1: 0.757, Theta0: 109.47 * degToRad, X1: 3.851, D1: 0.105, Zeta: 12.73, Z1: 1.912, V1: 2.119, U1: 2},
	"C_2":   {Label: "C_2", R1: 0.732, Theta0: 120.0 * degToRad, X1: 3.851, D1: 0.105, Zeta: 12.73, Z1: 1.912, V1: 0.0, U1: 2},
	"C_1":   {Label: "C_1", R1: 0.706, Theta0: 180.0 * degToRad, X1: 3.851, D1: 0.105, Zeta: 12.73, Z1: 1.912, V1: 0.0, U1: 2},
	"C_R":   {Label: "C_R", R1: 0.729, Theta0: 120.0 * degToRad, X1: 3.851, D1: 0.105, Zeta: 12.73, Z1: 1.912, V1: 0.0, U1: 2},
	"N_3":   {Label: "N_3", R1: 0.700, Theta0: 106.7 * degToRad, X1: 3.660, D1: 0.069, Zeta: 13.407, Z1: 2.544, V1: 0.450, U1: 2},
	"N_2":   {Label: "N_2", R1: 0.685, Theta0: 111.2 * degToRad, X1: 3.660, D1: 0.069, Zeta: 13.407, Z1: 2.544, V1: 0.0, U1: 2},
	"N_1":   {Label: "N_1", R1: 0.656, Theta0: 180.0 * degToRad, X1: 3.660, D1: 0.069, Zeta: 13.407, Z1: 2.544, V1: 0.0, U1: 2},
	"N_R":   {Label: "N_R", R1: 0.699, Theta0: 120.0 * degToRad, X1: 3.660, D1: 0.069, Zeta: 13.407, Z1: 2.544, V1: 0.0, U1: 2},
	"O_3":   {Label: "O_3", R1: 0.658, Theta0: 104.51 * degToRad, X1: 3.500, D1: 0.060, Zeta: 14.085, Z1: 2.300, V1: 0.018, U1: 2},
	"O_2":   {Label: "O_2", R1: 0.634, Theta0: 120.0 * degToRad, X1: 3.500, D1: 0.060, Zeta: 14.085, Z1: 2.300, V1: 0.0, U1: 2},
	"O_1":   {Label: "O_1", R1: 0.639, Theta0: 180.0 * degToRad, X1: 3.500, D1: 0.060, Zeta: 14.085, Z1: 2.300, V1: 0.0, U1: 2},
	"O_R":   {Label: "O_R", R1: 0.680, Theta0: 110.0 * degToRad, X1: 3.500, D1: 0.060, Zeta: 14.085, Z1: 2.300, V1: 0.0, U1: 2},
	"F_":    {Label: "F_", R1: 0.668, Theta0: 180.0 * degToRad, X1: 3.364, D1: 0.050, Zeta: 14.762, Z1: 1.735, V1: 0, U1: 0},
	"Si3":   {Label: "Si3", R1: 1.117, Theta0: 109.47 * degToRad, X1: 4.295, D1: 0.402, Zeta: 12.175, Z1: 2.323, V1: 1.225, U1: 1.225},
	"P_3+3": {Label: "P_3+3", R1: 1.101, Theta0: 93.8 * degToRad, X1: 4.147, D1: 0.305, Zeta: 12.0, Z1: 2.863, V1: 2.4, U1: 2.4},
	"S_3+2": {Label: "S_3+2", R1: 1.064, Theta0: 92.1 * degToRad, X1: 4.035, D1: 0.274, Zeta: 12.0, Z1: 2.703, V1: 0.484, U1: 0.484},
	"Cl":    {Label: "Cl", R1: 1.044, Theta0: 180.0 * degToRad, X1: 3.947, D1: 0.227, Zeta: 14.866, Z1: 2.348, V1: 0, U1: 0},
	"Ge3":   {Label: "Ge3", R1: 1.210, Theta0: 109.47 * degToRad, X1: 4.480, D1: 0.379, Zeta: 12.0, Z1: 2.44, V1: 0.701, U1: 0.701},
	"As3+3": {Label: "As3+3", R1: 1.202, Theta0: 92.1 * degToRad, X1: 4.230, D1: 0.309, Zeta: 12.0, Z1: 2.82, V1: 1.5, U1: 1.5},
	"Se3+2": {Label: "Se3+2", R1: 1.201, Theta0: 90.6 * degToRad, X1: 4.205, D1: 0.291, Zeta: 12.0, Z1: 2.868, V1: 0.335, U1: 0.335},
	"Br":    {Label: "Br", R1: 1.192, Theta0: 180.0 * degToRad, X1: 4.189, D1: 0.251, Zeta: 15.241, Z1: 2.519, V1: 0, U1: 0},
	"I_":    {Label: "I_", R1: 1.382, Theta0: 180.0 * degToRad, X1: 4.50, D1: 0.339, Zeta: 15.0, Z1: 2.65, V1: 0, U1: 0},
	"Na":    {Label: "Na", R1: 1.539, Theta0: 180.0 * degToRad, X1: 2.983, D1: 0.030, Zeta: 12.0, Z1: 1.081, V1: 0, U1: 0},
	"Mg3+2": {Label: "Mg3+2", R1: 1.421, Theta0: 109.47 * degToRad, X1: 3.021, D1: 0.111, Zeta: 12.0, Z1: 1.787, V1: 0, U1: 0},
	"Al3":   {Label: "Al3", R1: 1.244, Theta0: 109.47 * degToRad, X1: 4.499, D1: 0.505, Zeta: 11.278, Z1: 1.792, V1: 1.25, U1: 1.25},
	"Fe3+2": {Label: "Fe3+2", R1: 1.270, Theta0: 90.0 * degToRad, X1: 4.54, D1: 0.055, Zeta: 12.0, Z1: 2.0, V1: 0, U1: 0},
	"Ni4+2": {Label: "Ni4+2", R1: 1.164, Theta0: 90.0 * degToRad, X1: 4.2, D1: 0.015, Zeta: 12.0, Z1: 2.0, V1: 0, U1: 0},
	"Cu3+1": {Label: "Cu3+1", R1: 1.302, Theta0: 109.47 * degToRad, X1: 4.2, D1: 0.005, Zeta: 12.0, Z1: 1.75, V1: 0, U1: 0},
	"Zn3+2": {Label: "Zn3+2", R1: 1.193, Theta0: 109.47 * degToRad, X1: 4.285, D1: 0.124, Zeta: 12.0, Z1: 1.308, V1: 0, U1: 0},
	"Ag1+1": {Label: "Ag1+1", R1: 1.386, Theta0: 180.0 * degToRad, X1: 4.33, D1: 0.036, Zeta: 12.0, Z1: 1.0, V1: 0, U1: 0},
	"Pt4+2": {Label: "Pt4+2", R1: 1.229, Theta0: 90.0 * degToRad, X1: 4.383, D1: 0.080, Zeta: 12.0, Z1: 2.0, V1: 0, U1: 0},
	"Au4+3": {Label: "Au4+3", R1: 1.337, Theta0: 90.0 * degToRad, X1: 4.526, D1: 0.039, Zeta: 12.0, Z1: 2.0, V1: 0, U1: 0},
	"K_":    {Label: "K_", R1: 1.953, Theta0: 180.0 * degToRad, X1: 3.812, D1: 0.035, Zeta: 12.0, Z1: 1.165, V1: 0, U1: 0},
	"Ca6+2": {Label: "Ca6+2", R1: 1.761, Theta0: 90.0 * degToRad, X1: 3.399, D1: 0.238, Zeta: 12.0, Z1: 2.141, V1: 0, U1: 0},
}

// Lookup returns the parameter row for a UFF label.
func Lookup(label string) (Param, bool) {
	p, ok := table[label]
	return p, ok
}
