package structure

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseCIF parses an mmCIF file. Only the first data block is read: the
// atom_site loop becomes the coordinate hierarchy, and the header
// categories (_entry, _struct, _cell, _symmetry, _reflns, _exptl,
// _pdbx_database_status) become the Header.
func ParseCIF(r io.Reader) (*Structure, error) {
	lx := newCIFLexer(r)
	s := &Structure{}
	items := make(map[string]string)
	sawData := false

scan:
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		switch {
		case tok.quoted:
			// Stray value outside any item or loop; skip.
		case strings.HasPrefix(tok.text, "data_"):
			if sawData {
				// Additional data blocks are ignored.
				break scan
			}
			sawData = true
			s.Name = strings.TrimPrefix(tok.text, "data_")
		case strings.EqualFold(tok.text, "loop_"):
			if err := parseCIFLoop(lx, s, items); err != nil {
				return nil, err
			}
		case strings.HasPrefix(tok.text, "_"):
			val, ok := lx.next()
			if !ok {
				return nil, &ParseError{FormatCIF, tok.line, "missing value for " + tok.text}
			}
			key := strings.ToLower(tok.text)
			if _, exists := items[key]; !exists {
				items[key] = cifValue(val)
			}
		}
	}
	if err := lx.Err(); err != nil {
		return nil, fmt.Errorf("reading CIF: %w", err)
	}
	if !sawData {
		return nil, &ParseError{FormatCIF, 0, "missing data_ block; not a CIF file"}
	}

	s.Header = headerFromItems(items)
	if s.Header.EntryID == "" {
		s.Header.EntryID = s.Name
	}
	return s, nil
}

// parseCIFLoop consumes one loop_: its tag list and all of its rows.
// The atom_site loop builds the structure hierarchy. Other single-row
// loops are folded into the item map so headers written in loop form
// (as some software emits them) are still picked up.
func parseCIFLoop(lx *cifLexer, s *Structure, items map[string]string) error {
	var tags []string
	loopLine := 0
	for {
		tok, ok := lx.peek()
		if !ok || tok.quoted || !strings.HasPrefix(tok.text, "_") {
			break
		}
		lx.next()
		tags = append(tags, strings.ToLower(tok.text))
		loopLine = tok.line
	}
	if len(tags) == 0 {
		return &ParseError{FormatCIF, loopLine, "loop_ without tags"}
	}

	category := tags[0]
	if i := strings.IndexByte(category, '.'); i >= 0 {
		category = category[:i]
	}

	var values []cifToken
	for {
		tok, ok := lx.peek()
		if !ok {
			break
		}
		if !tok.quoted {
			t := tok.text
			if strings.HasPrefix(t, "_") || strings.HasPrefix(t, "data_") ||
				strings.EqualFold(t, "loop_") || strings.EqualFold(t, "stop_") {
				break
			}
		}
		lx.next()
		values = append(values, tok)
	}

	if len(values)%len(tags) != 0 {
		return &ParseError{FormatCIF, loopLine,
			fmt.Sprintf("loop %s: %d values do not fill rows of %d columns", category, len(values), len(tags))}
	}
	rows := len(values) / len(tags)

	if category == "_atom_site" {
		return buildAtomSite(s, tags, values, rows)
	}

	// Header categories occasionally appear as one-row loops.
	if rows == 1 {
		for i, tag := range tags {
			if _, exists := items[tag]; !exists {
				items[tag] = cifValue(values[i])
			}
		}
	}
	return nil
}

// buildAtomSite converts atom_site rows into models, chains, residues and
// atoms. auth_* identifiers are preferred over label_* ones, matching what
// deposition tools show users.
func buildAtomSite(s *Structure, tags []string, values []cifToken, rows int) error {
	col := make(map[string]int, len(tags))
	for i, tag := range tags {
		col[strings.TrimPrefix(tag, "_atom_site.")] = i
	}

	pick := func(row int, names ...string) (cifToken, bool) {
		for _, n := range names {
			if i, ok := col[n]; ok {
				return values[row*len(tags)+i], true
			}
		}
		return cifToken{}, false
	}

	for _, required := range []string{"cartn_x", "cartn_y", "cartn_z"} {
		if _, ok := col[required]; !ok {
			return &ParseError{FormatCIF, 0, "atom_site loop missing " + required}
		}
	}

	b := newBuilder(s)
	for row := 0; row < rows; row++ {
		var atom Atom
		var err error

		if t, ok := pick(row, "group_pdb"); ok {
			atom.Het = strings.EqualFold(cifValue(t), "HETATM")
		}
		if t, ok := pick(row, "id"); ok {
			atom.Serial, _ = strconv.Atoi(cifValue(t))
		}
		if atom.Serial == 0 {
			atom.Serial = row + 1
		}
		if t, ok := pick(row, "auth_atom_id", "label_atom_id"); ok {
			atom.Name = cifValue(t)
		}
		if t, ok := pick(row, "label_alt_id"); ok {
			atom.AltLoc = cifValue(t)
		}
		if t, ok := pick(row, "type_symbol"); ok {
			atom.Element = cifValue(t)
		}

		coord := func(name string) (float64, error) {
			t, _ := pick(row, name)
			v, err := strconv.ParseFloat(cifValue(t), 64)
			if err != nil {
				return 0, &ParseError{FormatCIF, t.line, fmt.Sprintf("bad %s value %q", name, cifValue(t))}
			}
			return v, nil
		}
		if atom.X, err = coord("cartn_x"); err != nil {
			return err
		}
		if atom.Y, err = coord("cartn_y"); err != nil {
			return err
		}
		if atom.Z, err = coord("cartn_z"); err != nil {
			return err
		}

		atom.Occupancy = 1.0
		if t, ok := pick(row, "occupancy"); ok {
			if v, err := strconv.ParseFloat(cifValue(t), 64); err == nil {
				atom.Occupancy = v
			}
		}
		if t, ok := pick(row, "b_iso_or_equiv"); ok {
			if v, err := strconv.ParseFloat(cifValue(t), 64); err == nil {
				atom.TempFactor = v
			}
		}

		modelNum := 1
		if t, ok := pick(row, "pdbx_pdb_model_num"); ok {
			if v, err := strconv.Atoi(cifValue(t)); err == nil {
				modelNum = v
			}
		}

		chainID := ""
		if t, ok := pick(row, "auth_asym_id", "label_asym_id"); ok {
			chainID = cifValue(t)
		}
		resName := ""
		if t, ok := pick(row, "auth_comp_id", "label_comp_id"); ok {
			resName = cifValue(t)
		}
		seqNum := 0
		if t, ok := pick(row, "auth_seq_id", "label_seq_id"); ok {
			seqNum, _ = strconv.Atoi(cifValue(t))
		}
		iCode := ""
		if t, ok := pick(row, "pdbx_pdb_ins_code"); ok {
			iCode = cifValue(t)
		}

		b.addAtom(modelNum, chainID, resName, seqNum, iCode, atom)
	}
	return nil
}

// headerFromItems extracts entry metadata from the key-value items.
func headerFromItems(items map[string]string) Header {
	h := Header{
		EntryID:        items["_entry.id"],
		Title:          items["_struct.title"],
		Method:         items["_exptl.method"],
		DepositionDate: items["_pdbx_database_status.recvd_initial_deposition_date"],
		SpaceGroup:     items["_symmetry.space_group_name_h-m"],
	}

	if v, ok := cifFloat(items, "_reflns.d_resolution_high"); ok {
		h.Resolution = v
	} else if v, ok := cifFloat(items, "_refine.ls_d_res_high"); ok {
		h.Resolution = v
	}

	if a, ok := cifFloat(items, "_cell.length_a"); ok {
		cell := &UnitCell{A: a}
		cell.B, _ = cifFloat(items, "_cell.length_b")
		cell.C, _ = cifFloat(items, "_cell.length_c")
		cell.Alpha, _ = cifFloat(items, "_cell.angle_alpha")
		cell.Beta, _ = cifFloat(items, "_cell.angle_beta")
		cell.Gamma, _ = cifFloat(items, "_cell.angle_gamma")
		h.Cell = cell
	}

	return h
}

func cifFloat(items map[string]string, key string) (float64, bool) {
	raw, ok := items[key]
	if !ok || raw == "" {
		return 0, false
	}
	// Some entries carry an esd suffix like "42.50(3)".
	if i := strings.IndexByte(raw, '('); i > 0 {
		raw = raw[:i]
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// cifValue normalizes a token: the CIF null ('.') and unknown ('?')
// placeholders become empty strings.
func cifValue(t cifToken) string {
	if !t.quoted && (t.text == "." || t.text == "?") {
		return ""
	}
	return t.text
}

// cifToken is one lexical unit of a CIF file. quoted marks values that
// came from quoted strings or semicolon text fields, which are never
// keywords no matter what they contain.
type cifToken struct {
	text   string
	line   int
	quoted bool
}

type cifLexer struct {
	sc      *bufio.Scanner
	line    int
	pending []cifToken
	err     error
}

func newCIFLexer(r io.Reader) *cifLexer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &cifLexer{sc: sc}
}

func (lx *cifLexer) Err() error { return lx.err }

func (lx *cifLexer) peek() (cifToken, bool) {
	if len(lx.pending) == 0 && !lx.fill() {
		return cifToken{}, false
	}
	return lx.pending[0], true
}

func (lx *cifLexer) next() (cifToken, bool) {
	if len(lx.pending) == 0 && !lx.fill() {
		return cifToken{}, false
	}
	tok := lx.pending[0]
	lx.pending = lx.pending[1:]
	return tok, true
}

// fill reads lines until at least one token is pending.
func (lx *cifLexer) fill() bool {
	for lx.sc.Scan() {
		lx.line++
		line := lx.sc.Text()

		// Semicolon text field: everything until a line starting with ';'
		// is a single value.
		if strings.HasPrefix(line, ";") {
			var sb strings.Builder
			sb.WriteString(line[1:])
			start := lx.line
			for lx.sc.Scan() {
				lx.line++
				l := lx.sc.Text()
				if strings.HasPrefix(l, ";") {
					break
				}
				if sb.Len() > 0 {
					sb.WriteByte('\n')
				}
				sb.WriteString(l)
			}
			lx.pending = append(lx.pending, cifToken{
				text:   strings.TrimSpace(sb.String()),
				line:   start,
				quoted: true,
			})
			return true
		}

		lx.splitLine(line)
		if len(lx.pending) > 0 {
			return true
		}
	}
	if err := lx.sc.Err(); err != nil {
		lx.err = err
	}
	return false
}

// splitLine tokenizes one line, honoring single/double quotes and
// truncating at a comment.
func (lx *cifLexer) splitLine(line string) {
	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '#':
			return
		case c == '\'' || c == '"':
			quote := c
			j := i + 1
			for j < len(line) && line[j] != quote {
				j++
			}
			lx.pending = append(lx.pending, cifToken{
				text:   line[i+1 : min(j, len(line))],
				line:   lx.line,
				quoted: true,
			})
			i = j + 1
		default:
			j := i
			for j < len(line) && line[j] != ' ' && line[j] != '\t' {
				j++
			}
			lx.pending = append(lx.pending, cifToken{
				text: line[i:j],
				line: lx.line,
			})
			i = j
		}
	}
}
