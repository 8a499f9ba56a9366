package structure

import (
	"strings"
	"testing"
)

const testCIF = `data_1ABC
#
_entry.id   1ABC
_struct.title
;Crystal structure of a test dipeptide
;
_exptl.method 'X-RAY DIFFRACTION'
_pdbx_database_status.recvd_initial_deposition_date 2020-01-15
_symmetry.space_group_name_H-M 'P 21 21 21'
_reflns.d_resolution_high 1.74
_cell.length_a 42.50
_cell.length_b 51.30
_cell.length_c 89.76
_cell.angle_alpha 90.00
_cell.angle_beta 90.00
_cell.angle_gamma 90.00
#
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.type_symbol
_atom_site.label_atom_id
_atom_site.label_alt_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_seq_id
_atom_site.pdbx_PDB_ins_code
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.occupancy
_atom_site.B_iso_or_equiv
_atom_site.auth_seq_id
_atom_site.auth_comp_id
_atom_site.auth_asym_id
_atom_site.auth_atom_id
_atom_site.pdbx_PDB_model_num
ATOM 1 N N . GLY A 1 ? 11.104 6.134 -6.504 1.00 10.53 1 GLY A N 1
ATOM 2 C CA . GLY A 1 ? 11.639 6.071 -5.147 1.00 10.38 1 GLY A CA 1
ATOM 3 C C . GLY A 1 ? 12.697 7.143 -4.937 1.00 9.97 1 GLY A C 1
ATOM 4 N N . ALA A 2 ? 13.441 7.023 -3.845 1.00 9.97 2 ALA A N 1
ATOM 5 C CA . ALA A 2 ? 14.497 7.983 -3.539 1.00 10.05 2 ALA A CA 1
ATOM 6 N N . SER B 1 ? 1.000 2.000 3.000 1.00 12.00 1 SER B N 1
HETATM 7 O O . HOH C 1 ? 5.000 5.000 5.000 1.00 30.00 101 HOH B O 1
#
`

func TestParseCIF(t *testing.T) {
	s, err := ParseCIF(strings.NewReader(testCIF))
	if err != nil {
		t.Fatalf("ParseCIF: %v", err)
	}

	if s.Name != "1ABC" {
		t.Errorf("name: got %q, want 1ABC", s.Name)
	}
	if s.Header.EntryID != "1ABC" {
		t.Errorf("entry id: got %q", s.Header.EntryID)
	}
	if s.Header.Title != "Crystal structure of a test dipeptide" {
		t.Errorf("title: got %q", s.Header.Title)
	}
	if s.Header.Method != "X-RAY DIFFRACTION" {
		t.Errorf("method: got %q", s.Header.Method)
	}
	if s.Header.DepositionDate != "2020-01-15" {
		t.Errorf("deposition date: got %q", s.Header.DepositionDate)
	}
	if s.Header.SpaceGroup != "P 21 21 21" {
		t.Errorf("space group: got %q", s.Header.SpaceGroup)
	}
	if s.Header.Resolution != 1.74 {
		t.Errorf("resolution: got %g", s.Header.Resolution)
	}
	if s.Header.Cell == nil {
		t.Fatal("expected unit cell")
	}
	if s.Header.Cell.A != 42.50 || s.Header.Cell.B != 51.30 || s.Header.Cell.C != 89.76 {
		t.Errorf("cell lengths: got %+v", s.Header.Cell)
	}
	if s.Header.Cell.Alpha != 90 || s.Header.Cell.Beta != 90 || s.Header.Cell.Gamma != 90 {
		t.Errorf("cell angles: got %+v", s.Header.Cell)
	}
}

func TestParseCIFHierarchy(t *testing.T) {
	s, err := ParseCIF(strings.NewReader(testCIF))
	if err != nil {
		t.Fatalf("ParseCIF: %v", err)
	}

	sum := s.Summarize()
	if sum.Models != 1 {
		t.Errorf("models: got %d, want 1", sum.Models)
	}
	if sum.Chains != 2 {
		t.Errorf("chains: got %d, want 2", sum.Chains)
	}
	if sum.Residues != 4 {
		t.Errorf("residues: got %d, want 4", sum.Residues)
	}
	if sum.Atoms != 7 {
		t.Errorf("atoms: got %d, want 7", sum.Atoms)
	}
	if sum.HetAtoms != 1 {
		t.Errorf("het atoms: got %d, want 1", sum.HetAtoms)
	}
	if s.AtomCount() != 7 {
		t.Errorf("AtomCount: got %d, want 7", s.AtomCount())
	}

	if len(sum.PerChain) != 2 {
		t.Fatalf("per-chain rows: got %d, want 2", len(sum.PerChain))
	}
	a := sum.PerChain[0]
	if a.ID != "A" || a.Residues != 2 || a.Atoms != 5 {
		t.Errorf("chain A summary: got %+v", a)
	}
	b := sum.PerChain[1]
	if b.ID != "B" || b.Residues != 2 || b.Atoms != 2 {
		t.Errorf("chain B summary: got %+v", b)
	}

	// The auth chain for the water is B, not the label chain C.
	chainB := s.Models[0].Chains[1]
	water := chainB.Residues[1]
	if water.Name != "HOH" || water.SeqNum != 101 {
		t.Errorf("water residue: got %+v", water)
	}
	if len(water.Atoms) != 1 || !water.Atoms[0].Het {
		t.Errorf("water atom: got %+v", water.Atoms)
	}
}

func TestParseCIFAtomFields(t *testing.T) {
	s, err := ParseCIF(strings.NewReader(testCIF))
	if err != nil {
		t.Fatalf("ParseCIF: %v", err)
	}

	first := s.Models[0].Chains[0].Residues[0].Atoms[0]
	if first.Serial != 1 || first.Name != "N" || first.Element != "N" {
		t.Errorf("first atom identity: got %+v", first)
	}
	if first.X != 11.104 || first.Y != 6.134 || first.Z != -6.504 {
		t.Errorf("first atom coordinates: got %+v", first)
	}
	if first.Occupancy != 1.00 || first.TempFactor != 10.53 {
		t.Errorf("first atom occupancy/B: got %+v", first)
	}
	if first.AltLoc != "" {
		t.Errorf("alt loc '.' should normalize to empty, got %q", first.AltLoc)
	}
}

func TestParseCIFNotCIF(t *testing.T) {
	_, err := ParseCIF(strings.NewReader("this is not a cif file at all\n"))
	if err == nil {
		t.Fatal("expected error for non-CIF input")
	}
}

func TestParseCIFBadCoordinate(t *testing.T) {
	bad := `data_bad
loop_
_atom_site.group_PDB
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
ATOM oops 2.0 3.0
`
	_, err := ParseCIF(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected error for unparseable coordinate")
	}
	if !strings.Contains(err.Error(), "cartn_x") {
		t.Errorf("error should mention the bad column, got %v", err)
	}
}

func TestParseCIFRaggedLoop(t *testing.T) {
	bad := `data_bad
loop_
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
1.0 2.0
`
	_, err := ParseCIF(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected error for ragged loop rows")
	}
}

func TestParseCIFHeaderOnly(t *testing.T) {
	s, err := ParseCIF(strings.NewReader("data_hdr\n_entry.id hdr\n"))
	if err != nil {
		t.Fatalf("ParseCIF: %v", err)
	}
	if s.AtomCount() != 0 {
		t.Errorf("expected zero atoms, got %d", s.AtomCount())
	}
}

func TestParseCIFMultiModel(t *testing.T) {
	cif := `data_nmr
loop_
_atom_site.group_PDB
_atom_site.id
_atom_site.label_atom_id
_atom_site.label_comp_id
_atom_site.label_asym_id
_atom_site.label_seq_id
_atom_site.Cartn_x
_atom_site.Cartn_y
_atom_site.Cartn_z
_atom_site.pdbx_PDB_model_num
ATOM 1 CA GLY A 1 1.0 2.0 3.0 1
ATOM 2 CA GLY A 1 1.1 2.1 3.1 2
ATOM 3 CA GLY A 1 1.2 2.2 3.2 3
`
	s, err := ParseCIF(strings.NewReader(cif))
	if err != nil {
		t.Fatalf("ParseCIF: %v", err)
	}
	if len(s.Models) != 3 {
		t.Fatalf("models: got %d, want 3", len(s.Models))
	}
	if s.Models[2].Number != 3 {
		t.Errorf("third model number: got %d", s.Models[2].Number)
	}
	if s.AtomCount() != 3 {
		t.Errorf("atoms: got %d, want 3", s.AtomCount())
	}
}
