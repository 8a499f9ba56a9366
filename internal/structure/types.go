// Package structure parses macromolecular structure files (mmCIF and PDB)
// into a model → chain → residue → atom hierarchy and writes PDB output.
package structure

import "fmt"

// Format identifies a structure file format.
type Format string

const (
	FormatCIF Format = "cif"
	FormatPDB Format = "pdb"
)

// Atom is a single atom record.
type Atom struct {
	Serial     int     `json:"serial"`
	Name       string  `json:"name"`
	AltLoc     string  `json:"alt_loc,omitempty"`
	Element    string  `json:"element,omitempty"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Occupancy  float64 `json:"occupancy"`
	TempFactor float64 `json:"temp_factor"`
	Het        bool    `json:"het,omitempty"`
}

// Residue groups the atoms of one residue within a chain.
type Residue struct {
	Name   string `json:"name"`
	SeqNum int    `json:"seq_num"`
	ICode  string `json:"i_code,omitempty"`
	Atoms  []Atom `json:"atoms"`
}

// Chain groups the residues sharing one chain identifier.
type Chain struct {
	ID       string    `json:"id"`
	Residues []Residue `json:"residues"`
}

// Model is one coordinate set. X-ray entries have a single model; NMR
// entries typically have many.
type Model struct {
	Number int     `json:"number"`
	Chains []Chain `json:"chains"`
}

// UnitCell holds crystallographic unit cell parameters.
type UnitCell struct {
	A     float64 `json:"a"`
	B     float64 `json:"b"`
	C     float64 `json:"c"`
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
}

// Header holds entry-level metadata. All fields are optional in practice:
// minimal coordinate files carry none of them.
type Header struct {
	EntryID        string    `json:"entry_id,omitempty"`
	Title          string    `json:"title,omitempty"`
	Method         string    `json:"method,omitempty"`
	DepositionDate string    `json:"deposition_date,omitempty"`
	SpaceGroup     string    `json:"space_group,omitempty"`
	Resolution     float64   `json:"resolution,omitempty"`
	Cell           *UnitCell `json:"cell,omitempty"`
}

// Structure is a parsed structure file.
type Structure struct {
	Name   string `json:"name"`
	Header Header `json:"header"`
	Models []Model `json:"models"`
}

// AtomCount returns the total number of atoms across all models.
func (s *Structure) AtomCount() int {
	n := 0
	for _, m := range s.Models {
		for _, c := range m.Chains {
			for _, r := range c.Residues {
				n += len(r.Atoms)
			}
		}
	}
	return n
}

// ParseError describes a malformed structure file.
type ParseError struct {
	Format Format
	Line   int
	Msg    string
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s parse error at line %d: %s", e.Format, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Msg)
}
