package structure

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// WritePDB writes the structure in PDB format. Atom serials are
// renumbered sequentially; every atom of the input appears exactly once
// in the output. Fields PDB cannot carry (long chain IDs, large residue
// numbers) are truncated to fit the fixed columns.
func WritePDB(w io.Writer, s *Structure) error {
	bw := bufio.NewWriter(w)

	writeHeaderRecords(bw, s)

	multiModel := len(s.Models) > 1
	serial := 0
	for _, m := range s.Models {
		if multiModel {
			fmt.Fprintf(bw, "MODEL     %4d\n", m.Number)
		}
		for _, c := range m.Chains {
			lastRes := ""
			lastSeq := 0
			hadPolymer := false
			for _, r := range c.Residues {
				for _, a := range r.Atoms {
					serial++
					record := "ATOM"
					if a.Het {
						record = "HETATM"
					} else {
						hadPolymer = true
					}
					fmt.Fprintf(bw, "%-6s%5d %-4s%1s%3s %1s%4d%1s   %8.3f%8.3f%8.3f%6.2f%6.2f          %2s\n",
						record,
						serial%100000,
						pdbAtomName(a.Name),
						clip(a.AltLoc, 1),
						clip(r.Name, 3),
						clip(c.ID, 1),
						r.SeqNum%10000,
						clip(r.ICode, 1),
						a.X, a.Y, a.Z,
						a.Occupancy, a.TempFactor,
						clip(a.Element, 2),
					)
					lastRes, lastSeq = r.Name, r.SeqNum
				}
			}
			if hadPolymer {
				serial++
				fmt.Fprintf(bw, "TER   %5d      %3s %1s%4d\n",
					serial%100000, clip(lastRes, 3), clip(c.ID, 1), lastSeq%10000)
			}
		}
		if multiModel {
			fmt.Fprintln(bw, "ENDMDL")
		}
	}

	fmt.Fprintln(bw, "END")
	return bw.Flush()
}

func writeHeaderRecords(bw *bufio.Writer, s *Structure) {
	if s.Header.EntryID != "" || s.Header.DepositionDate != "" {
		fmt.Fprintf(bw, "HEADER    %-40s%-9s   %4s\n",
			"", clip(s.Header.DepositionDate, 9), clip(strings.ToUpper(s.Header.EntryID), 4))
	}
	if s.Header.Title != "" {
		fmt.Fprintf(bw, "TITLE     %s\n", clip(s.Header.Title, 70))
	}
	if s.Header.Method != "" {
		fmt.Fprintf(bw, "EXPDTA    %s\n", clip(strings.ToUpper(s.Header.Method), 69))
	}
	if s.Header.Resolution > 0 {
		fmt.Fprintf(bw, "REMARK   2 RESOLUTION. %7.2f ANGSTROMS.\n", s.Header.Resolution)
	}
	if cell := s.Header.Cell; cell != nil {
		fmt.Fprintf(bw, "CRYST1%9.3f%9.3f%9.3f%7.2f%7.2f%7.2f %-11s\n",
			cell.A, cell.B, cell.C, cell.Alpha, cell.Beta, cell.Gamma,
			clip(s.Header.SpaceGroup, 11))
	}
}

// pdbAtomName applies the PDB convention: names shorter than four
// characters start in column 14, leaving column 13 blank.
func pdbAtomName(name string) string {
	name = clip(name, 4)
	if len(name) < 4 {
		return " " + name
	}
	return name
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}
