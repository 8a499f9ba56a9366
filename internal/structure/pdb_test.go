package structure

import (
	"bytes"
	"strings"
	"testing"
)

const testPDB = `HEADER    HYDROLASE                               15-JAN-20   1ABC
TITLE     TEST DIPEPTIDE STRUCTURE
EXPDTA    X-RAY DIFFRACTION
REMARK   2 RESOLUTION.    1.74 ANGSTROMS.
CRYST1   42.500   51.300   89.760  90.00  90.00  90.00 P 21 21 21
ATOM      1  N   GLY A   1      17.047  14.099   3.625  1.00 13.79           N
ATOM      2  CA  GLY A   1      16.967  12.784   4.338  1.00 10.80           C
ATOM      3  C   GLY A   1      15.685  12.755   5.133  1.00  9.19           C
ATOM      4  N   ALA A   2      15.115  11.555   5.265  1.00  9.10           N
ATOM      5  CA  ALA A   2      13.856  11.469   6.066  1.00  8.84           C
TER       6      ALA A   2
HETATM    7  O   HOH B 101      10.000  10.000  10.000  1.00 30.00           O
END
`

func TestParsePDB(t *testing.T) {
	s, err := ParsePDB(strings.NewReader(testPDB))
	if err != nil {
		t.Fatalf("ParsePDB: %v", err)
	}

	if s.Header.EntryID != "1ABC" {
		t.Errorf("entry id: got %q", s.Header.EntryID)
	}
	if s.Header.Title != "TEST DIPEPTIDE STRUCTURE" {
		t.Errorf("title: got %q", s.Header.Title)
	}
	if s.Header.DepositionDate != "15-JAN-20" {
		t.Errorf("deposition date: got %q", s.Header.DepositionDate)
	}
	if s.Header.Method != "X-RAY DIFFRACTION" {
		t.Errorf("method: got %q", s.Header.Method)
	}
	if s.Header.Resolution != 1.74 {
		t.Errorf("resolution: got %g", s.Header.Resolution)
	}
	if s.Header.SpaceGroup != "P 21 21 21" {
		t.Errorf("space group: got %q", s.Header.SpaceGroup)
	}
	if s.Header.Cell == nil || s.Header.Cell.A != 42.5 || s.Header.Cell.Gamma != 90 {
		t.Errorf("cell: got %+v", s.Header.Cell)
	}

	sum := s.Summarize()
	if sum.Models != 1 || sum.Chains != 2 || sum.Residues != 3 || sum.Atoms != 6 {
		t.Errorf("summary: got %+v", sum)
	}
	if sum.HetAtoms != 1 {
		t.Errorf("het atoms: got %d, want 1", sum.HetAtoms)
	}

	first := s.Models[0].Chains[0].Residues[0].Atoms[0]
	if first.Name != "N" || first.X != 17.047 || first.TempFactor != 13.79 || first.Element != "N" {
		t.Errorf("first atom: got %+v", first)
	}
}

func TestParsePDBMultiModel(t *testing.T) {
	pdb := `MODEL        1
ATOM      1  CA  GLY A   1       1.000   2.000   3.000  1.00  0.00           C
ENDMDL
MODEL        2
ATOM      1  CA  GLY A   1       1.100   2.100   3.100  1.00  0.00           C
ENDMDL
END
`
	s, err := ParsePDB(strings.NewReader(pdb))
	if err != nil {
		t.Fatalf("ParsePDB: %v", err)
	}
	if len(s.Models) != 2 {
		t.Fatalf("models: got %d, want 2", len(s.Models))
	}
	if s.AtomCount() != 2 {
		t.Errorf("atoms: got %d, want 2", s.AtomCount())
	}
}

func TestParsePDBNotPDB(t *testing.T) {
	_, err := ParsePDB(strings.NewReader("once upon a time\nthere was no protein\n"))
	if err == nil {
		t.Fatal("expected error for non-PDB input")
	}
}

func TestParsePDBBadCoordinate(t *testing.T) {
	bad := "ATOM      1  CA  GLY A   1       x.xxx   2.000   3.000  1.00  0.00           C\n"
	_, err := ParsePDB(strings.NewReader(bad))
	if err == nil {
		t.Fatal("expected error for bad coordinate")
	}
}

func TestWritePDBRoundTrip(t *testing.T) {
	orig, err := ParsePDB(strings.NewReader(testPDB))
	if err != nil {
		t.Fatalf("ParsePDB: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePDB(&buf, orig); err != nil {
		t.Fatalf("WritePDB: %v", err)
	}

	back, err := ParsePDB(&buf)
	if err != nil {
		t.Fatalf("reparsing written PDB: %v", err)
	}

	if back.AtomCount() != orig.AtomCount() {
		t.Errorf("atom count changed: got %d, want %d", back.AtomCount(), orig.AtomCount())
	}
	if back.Header.Resolution != orig.Header.Resolution {
		t.Errorf("resolution changed: got %g", back.Header.Resolution)
	}
	if back.Header.Cell == nil || back.Header.Cell.A != orig.Header.Cell.A {
		t.Errorf("cell changed: got %+v", back.Header.Cell)
	}
}

func TestCIFToPDBPreservesAtoms(t *testing.T) {
	s, err := ParseCIF(strings.NewReader(testCIF))
	if err != nil {
		t.Fatalf("ParseCIF: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePDB(&buf, s); err != nil {
		t.Fatalf("WritePDB: %v", err)
	}

	converted, err := ParsePDB(&buf)
	if err != nil {
		t.Fatalf("parsing converted PDB: %v", err)
	}

	if converted.AtomCount() != s.AtomCount() {
		t.Errorf("conversion changed atom count: got %d, want %d",
			converted.AtomCount(), s.AtomCount())
	}

	sum := converted.Summarize()
	if sum.Chains != 2 {
		t.Errorf("chains after conversion: got %d, want 2", sum.Chains)
	}
	if sum.HetAtoms != 1 {
		t.Errorf("het atoms after conversion: got %d, want 1", sum.HetAtoms)
	}
}

func TestWritePDBMultiModel(t *testing.T) {
	s := &Structure{
		Models: []Model{
			{Number: 1, Chains: []Chain{{ID: "A", Residues: []Residue{
				{Name: "GLY", SeqNum: 1, Atoms: []Atom{{Serial: 1, Name: "CA", X: 1, Y: 2, Z: 3, Occupancy: 1}}},
			}}}},
			{Number: 2, Chains: []Chain{{ID: "A", Residues: []Residue{
				{Name: "GLY", SeqNum: 1, Atoms: []Atom{{Serial: 1, Name: "CA", X: 1.1, Y: 2.1, Z: 3.1, Occupancy: 1}}},
			}}}},
		},
	}

	var buf bytes.Buffer
	if err := WritePDB(&buf, s); err != nil {
		t.Fatalf("WritePDB: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "MODEL ") || !strings.Contains(out, "ENDMDL") {
		t.Error("expected MODEL/ENDMDL records for multi-model structure")
	}

	back, err := ParsePDB(strings.NewReader(out))
	if err != nil {
		t.Fatalf("reparsing: %v", err)
	}
	if len(back.Models) != 2 {
		t.Errorf("models after round-trip: got %d, want 2", len(back.Models))
	}
}
