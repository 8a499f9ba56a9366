package structure

// ChainSummary holds per-chain counts from the first model.
type ChainSummary struct {
	ID       string `json:"id"`
	Residues int    `json:"residues"`
	Atoms    int    `json:"atoms"`
}

// Summary holds derived counts for display.
type Summary struct {
	Models   int            `json:"models"`
	Chains   int            `json:"chains"`
	Residues int            `json:"residues"`
	Atoms    int            `json:"atoms"`
	HetAtoms int            `json:"het_atoms"`
	PerChain []ChainSummary `json:"per_chain"`
}

// Summarize walks the hierarchy and counts chains, residues and atoms
// across all models. Per-chain rows come from the first model only, which
// is what the chart and the viewer sidebar show.
func (s *Structure) Summarize() Summary {
	sum := Summary{Models: len(s.Models)}

	for mi, m := range s.Models {
		for _, c := range m.Chains {
			sum.Chains++
			cs := ChainSummary{ID: c.ID}
			for _, r := range c.Residues {
				sum.Residues++
				cs.Residues++
				for _, a := range r.Atoms {
					sum.Atoms++
					cs.Atoms++
					if a.Het {
						sum.HetAtoms++
					}
				}
			}
			if mi == 0 {
				sum.PerChain = append(sum.PerChain, cs)
			}
		}
	}

	return sum
}
