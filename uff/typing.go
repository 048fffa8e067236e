package uff

import (
	"fmt"

	"github.com/latticecad/latticecad/atom"
)

// Type assigns a UFF atom-type label to id based on its element and the
// order of its incident bonds: aromatic bonds (order BondAromatic)
// select the "_R" resonant label, the bond-order histogram otherwise
// picks sp/sp2/sp3 hybridization, and metals/halogens with only one
// plausible label return it directly.
func Type(s *atom.Structure, id atom.ID) (string, error) {
	a, err := s.Atom(id)
	if err != nil {
		return "", err
	}
	neighbors := s.Neighbors(id)

	hasAromatic, hasTriple, hasDouble := false, false, false
	for _, n := range neighbors {
		switch n.Order {
		case atom.BondAromatic:
			hasAromatic = true
		case atom.BondTriple:
			hasTriple = true
		case atom.BondDouble:
			hasDouble = true
		}
	}

	switch a.Element.Symbol {
	case "H":
		return "H_", nil
	case "B":
		return "B_3", nil
	case "C":
		switch {
		case hasAromatic:
			return "C_R", nil
		case hasTriple:
			return "C_1", nil
		case hasDouble:
			return "C_2", nil
		default:
			return "C_3", nil
		}
	case "N":
		switch {
		case hasAromatic:
			return "N_R", nil
		case hasTriple:
			return "N_1", nil
		case hasDouble:
			return "N_2", nil
		default:
			return "N_3", nil
		}
	case "O":
		switch {
		case hasAromatic:
			return "O_R", nil
		case hasTriple:
			return "O_1", nil
		case hasDouble:
			return "O_2", nil
		default:
			return "O_3", nil
		}
	case "F":
		return "F_", nil
	case "Si":
		return "Si3", nil
	case "P":
		return "P_3+3", nil
	case "S":
		return "S_3+2", nil
	case "Cl":
		return "Cl", nil
	case "Ge":
		return "Ge3", nil
	case "As":
		return "As3+3", nil
	case "Se":
		return "Se3+2", nil
	case "Br":
		return "Br", nil
	case "I":
		return "I_", nil
	case "Na":
		return "Na", nil
	case "Mg":
		return "Mg3+2", nil
	case "Al":
		return "Al3", nil
	case "Fe":
		return "Fe3+2", nil
	case "Ni":
		return "Ni4+2", nil
	case "Cu":
		return "Cu3+1", nil
	case "Zn":
		return "Zn3+2", nil
	case "Ag":
		return "Ag1+1", nil
	case "Pt":
		return "Pt4+2", nil
	case "Au":
		return "Au4+3", nil
	case "K":
		return "K_", nil
	case "Ca":
		return "Ca6+2", nil
	default:
		return "", fmt.Errorf("uff: no UFF type known for element %s", a.Element.Symbol)
	}
}

// TypeAll types every atom in s, returning a map keyed by atom ID.
func TypeAll(s *atom.Structure) (map[atom.ID]string, error) {
	out := make(map[atom.ID]string, s.Len())
	for _, id := range s.Atoms() {
		t, err := Type(s, id)
		if err != nil {
			return nil, err
		}
		out[id] = t
	}
	return out, nil
}
