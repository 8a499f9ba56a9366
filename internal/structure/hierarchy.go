package structure

// builder assembles the model/chain/residue hierarchy while atoms stream
// in. It keeps indices to the most recent model, chain and residue so the
// common case (consecutive atoms of the same residue) is O(1); out-of-order
// records fall back to a linear search.
type builder struct {
	s  *Structure
	mi int
	ci int
	ri int
}

func newBuilder(s *Structure) *builder {
	return &builder{s: s, mi: -1, ci: -1, ri: -1}
}

func (b *builder) model(num int) *Model {
	if b.mi >= 0 && b.s.Models[b.mi].Number == num {
		return &b.s.Models[b.mi]
	}
	for i := range b.s.Models {
		if b.s.Models[i].Number == num {
			b.mi, b.ci, b.ri = i, -1, -1
			return &b.s.Models[i]
		}
	}
	b.s.Models = append(b.s.Models, Model{Number: num})
	b.mi, b.ci, b.ri = len(b.s.Models)-1, -1, -1
	return &b.s.Models[b.mi]
}

func (b *builder) chain(m *Model, id string) *Chain {
	if b.ci >= 0 && b.ci < len(m.Chains) && m.Chains[b.ci].ID == id {
		return &m.Chains[b.ci]
	}
	for i := range m.Chains {
		if m.Chains[i].ID == id {
			b.ci, b.ri = i, -1
			return &m.Chains[i]
		}
	}
	m.Chains = append(m.Chains, Chain{ID: id})
	b.ci, b.ri = len(m.Chains)-1, -1
	return &m.Chains[b.ci]
}

func (b *builder) residue(c *Chain, name string, seq int, iCode string) *Residue {
	if b.ri >= 0 && b.ri < len(c.Residues) {
		r := &c.Residues[b.ri]
		if r.SeqNum == seq && r.ICode == iCode && r.Name == name {
			return r
		}
	}
	for i := range c.Residues {
		r := &c.Residues[i]
		if r.SeqNum == seq && r.ICode == iCode && r.Name == name {
			b.ri = i
			return r
		}
	}
	c.Residues = append(c.Residues, Residue{Name: name, SeqNum: seq, ICode: iCode})
	b.ri = len(c.Residues) - 1
	return &c.Residues[b.ri]
}

func (b *builder) addAtom(modelNum int, chainID, resName string, seq int, iCode string, a Atom) {
	m := b.model(modelNum)
	c := b.chain(m, chainID)
	r := b.residue(c, resName, seq, iCode)
	r.Atoms = append(r.Atoms, a)
}
