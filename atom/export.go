package atom

import (
	"fmt"
	"io"
)

// WriteXYZ writes s in the plain XYZ format: an atom count, a comment
// line, then one "symbol x y z" line per atom. This is a documented
// export boundary, not part of the core data model (spec §6).
func (s *Structure) WriteXYZ(w io.Writer, comment string) error {
	if _, err := fmt.Fprintf(w, "%d\n%s\n", s.Len(), comment); err != nil {
		return err
	}
	for _, id := range s.Atoms() {
		a, err := s.Atom(id)
		if err != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-3s %12.6f %12.6f %12.6f\n", a.Element.Symbol, a.Pos.X, a.Pos.Y, a.Pos.Z); err != nil {
			return err
		}
	}
	return nil
}

// WriteMOL writes s in the V2000 MOL format: a three-line header block,
// a counts line, then the atom and bond blocks.
func (s *Structure) WriteMOL(w io.Writer, name string) error {
	ids := s.Atoms()
	index := make(map[ID]int, len(ids))
	for i, id := range ids {
		index[id] = i + 1 // MOL format is 1-indexed
	}
	bonds := s.Bonds()

	if _, err := fmt.Fprintf(w, "%s\n  latticecad\n\n", name); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", len(ids), len(bonds)); err != nil {
		return err
	}
	for _, id := range ids {
		a, err := s.Atom(id)
		if err != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n", a.Pos.X, a.Pos.Y, a.Pos.Z, a.Element.Symbol); err != nil {
			return err
		}
	}
	for _, b := range bonds {
		order := b.Order
		if order > 4 {
			order = 1 // MOL V2000 bond block only encodes orders 1-3 (plus 4=aromatic)
		}
		if _, err := fmt.Fprintf(w, "%3d%3d%3d  0\n", index[b.A], index[b.B], order); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "M  END")
	return err
}
