package structure

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// ParsePDB parses a plain-text PDB file: HEADER, TITLE, EXPDTA, CRYST1,
// REMARK 2 resolution, MODEL/ENDMDL and ATOM/HETATM records. Everything
// else is skipped.
func ParsePDB(r io.Reader) (*Structure, error) {
	s := &Structure{}
	p := &pdbParser{
		b:        newBuilder(s),
		curModel: 1,
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1024*1024)
	sawRecord := false
	for sc.Scan() {
		p.lineNum++
		p.line = sc.Text()
		record := p.cols(1, 6)
		switch record {
		case "HEADER", "TITLE", "EXPDTA", "CRYST1", "REMARK",
			"MODEL", "ENDMDL", "ATOM", "HETATM", "TER", "END", "SEQRES", "COMPND":
			sawRecord = true
		}
		if err := p.parseLine(record); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if !sawRecord {
		return nil, &ParseError{FormatPDB, 0, "no recognizable records; not a PDB file"}
	}

	s.Header.Title = strings.TrimSpace(p.title.String())
	return s, nil
}

type pdbParser struct {
	b        *builder
	line     string
	lineNum  int
	curModel int
	title    strings.Builder
}

func (p *pdbParser) parseLine(record string) error {
	switch record {
	case "HEADER":
		p.b.s.Header.EntryID = p.cols(63, 66)
		p.b.s.Header.DepositionDate = p.cols(51, 59)
	case "TITLE":
		if p.title.Len() > 0 {
			p.title.WriteByte(' ')
		}
		p.title.WriteString(p.cols(11, 80))
	case "EXPDTA":
		p.b.s.Header.Method = p.cols(11, 79)
	case "CRYST1":
		p.parseCryst1()
	case "REMARK":
		p.parseRemark()
	case "MODEL":
		if n, err := strconv.Atoi(p.cols(11, 14)); err == nil {
			p.curModel = n
		}
	case "ATOM":
		return p.parseAtom(false)
	case "HETATM":
		return p.parseAtom(true)
	}
	return nil
}

// parseCryst1 reads the unit cell and space group. A CRYST1 with garbage
// numbers is ignored rather than fatal; plenty of tools emit placeholder
// records.
func (p *pdbParser) parseCryst1() {
	a, errA := p.atof(7, 15)
	b, errB := p.atof(16, 24)
	c, errC := p.atof(25, 33)
	alpha, _ := p.atof(34, 40)
	beta, _ := p.atof(41, 47)
	gamma, _ := p.atof(48, 54)
	if errA != nil || errB != nil || errC != nil {
		return
	}
	p.b.s.Header.Cell = &UnitCell{A: a, B: b, C: c, Alpha: alpha, Beta: beta, Gamma: gamma}
	p.b.s.Header.SpaceGroup = p.cols(56, 66)
}

// parseRemark looks for "REMARK   2 RESOLUTION.    1.74 ANGSTROMS."
func (p *pdbParser) parseRemark() {
	if p.cols(8, 10) != "2" {
		return
	}
	rest := p.cols(12, 80)
	if !strings.HasPrefix(rest, "RESOLUTION.") {
		return
	}
	fields := strings.Fields(strings.TrimPrefix(rest, "RESOLUTION."))
	if len(fields) == 0 {
		return
	}
	if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
		p.b.s.Header.Resolution = v
	}
}

func (p *pdbParser) parseAtom(het bool) error {
	atom := Atom{Het: het}

	var err error
	if atom.Serial, err = p.atoi(7, 11); err != nil {
		return &ParseError{FormatPDB, p.lineNum, "bad atom serial"}
	}
	atom.Name = p.cols(13, 16)
	atom.AltLoc = p.cols(17, 17)
	resName := p.cols(18, 20)
	chainID := p.cols(22, 22)
	seqNum, err := p.atoi(23, 26)
	if err != nil {
		return &ParseError{FormatPDB, p.lineNum, "bad residue sequence number"}
	}
	iCode := p.cols(27, 27)

	if atom.X, err = p.atof(31, 38); err != nil {
		return &ParseError{FormatPDB, p.lineNum, "bad x coordinate"}
	}
	if atom.Y, err = p.atof(39, 46); err != nil {
		return &ParseError{FormatPDB, p.lineNum, "bad y coordinate"}
	}
	if atom.Z, err = p.atof(47, 54); err != nil {
		return &ParseError{FormatPDB, p.lineNum, "bad z coordinate"}
	}

	atom.Occupancy = 1.0
	if v, err := p.atof(55, 60); err == nil {
		atom.Occupancy = v
	}
	if v, err := p.atof(61, 66); err == nil {
		atom.TempFactor = v
	}
	atom.Element = p.cols(77, 78)

	p.b.addAtom(p.curModel, chainID, resName, seqNum, iCode, atom)
	return nil
}

func (p *pdbParser) atoi(start, end int) (int, error) {
	return strconv.Atoi(p.cols(start, end))
}

func (p *pdbParser) atof(start, end int) (float64, error) {
	return strconv.ParseFloat(p.cols(start, end), 64)
}

// cols returns the trimmed 1-indexed inclusive column range, or "" when
// the line is too short.
func (p *pdbParser) cols(start, end int) string {
	rs, re := start-1, end
	if rs < 0 || rs >= len(p.line) {
		return ""
	}
	if re > len(p.line) {
		re = len(p.line)
	}
	if re < rs {
		return ""
	}
	return strings.TrimSpace(p.line[rs:re])
}
