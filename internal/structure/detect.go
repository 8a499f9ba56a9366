package structure

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DetectFormat decides whether data is a CIF or PDB file, using the file
// extension first and falling back to content sniffing. Binary uploads
// are rejected outright.
func DetectFormat(name string, data []byte) (Format, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", fmt.Errorf("file is empty")
	}

	mtype := mimetype.Detect(data)
	if !isTextual(mtype) {
		return "", fmt.Errorf("unsupported content type %s: expected a text CIF or PDB file", mtype.String())
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".cif", ".mmcif":
		return FormatCIF, nil
	case ".pdb", ".ent":
		return FormatPDB, nil
	}

	// No telling extension; look at the content.
	if bytes.Contains(data, []byte("_atom_site.")) || bytes.HasPrefix(bytes.TrimSpace(data), []byte("data_")) {
		return FormatCIF, nil
	}
	for _, prefix := range []string{"HEADER", "ATOM  ", "HETATM", "MODEL ", "TITLE "} {
		if bytes.HasPrefix(data, []byte(prefix)) {
			return FormatPDB, nil
		}
	}

	return "", fmt.Errorf("unrecognized structure format for %q", name)
}

func isTextual(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// Parse dispatches on the detected format and returns the parsed
// structure along with the format it chose.
func Parse(name string, data []byte) (*Structure, Format, error) {
	format, err := DetectFormat(name, data)
	if err != nil {
		return nil, "", err
	}

	var s *Structure
	switch format {
	case FormatCIF:
		s, err = ParseCIF(bytes.NewReader(data))
	case FormatPDB:
		s, err = ParsePDB(bytes.NewReader(data))
	}
	if err != nil {
		return nil, format, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return s, format, nil
}
